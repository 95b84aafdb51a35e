// Package resolve settles conflicts left by a restore: a file written under
// a restore name next to an original it did not overwrite.
package resolve

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/bamsammich/homeward/internal/engine"
)

// Disposition is what to do with one conflict.
type Disposition int

const (
	// AdoptNew replaces the original with the restored file.
	AdoptNew Disposition = iota + 1
	// KeepOriginal discards the restored file.
	KeepOriginal
	// LeaveBoth keeps both files as they are.
	LeaveBoth
)

func (d Disposition) String() string {
	switch d {
	case AdoptNew:
		return "adopt-new"
	case KeepOriginal:
		return "keep-original"
	case LeaveBoth:
		return "leave-both"
	default:
		return "unknown"
	}
}

// ParseDisposition accepts the canonical names and a few short aliases.
func ParseDisposition(s string) (Disposition, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "adopt-new", "adopt", "overwrite":
		return AdoptNew, nil
	case "keep-original", "keep":
		return KeepOriginal, nil
	case "leave-both", "leave":
		return LeaveBoth, nil
	}
	return 0, fmt.Errorf("unknown conflict disposition %q (want adopt-new, keep-original or leave-both)", s)
}

// Resolve applies d to c.
//
// AdoptNew renames the restore file over the original. KeepOriginal removes
// the restore file. LeaveBoth changes nothing but still fails if the restore
// file has disappeared, so a second resolution of the same conflict always
// reports an error.
func Resolve(c engine.Conflict, d Disposition) error {
	switch d {
	case AdoptNew:
		if err := os.Rename(c.RestorePath, c.OriginalPath); err != nil {
			return fmt.Errorf("adopt %s: %w", c.RestorePath, err)
		}
	case KeepOriginal:
		if err := os.Remove(c.RestorePath); err != nil {
			return fmt.Errorf("discard %s: %w", c.RestorePath, err)
		}
	case LeaveBoth:
		if _, err := os.Lstat(c.RestorePath); err != nil {
			return fmt.Errorf("leave %s: %w", c.RestorePath, err)
		}
	default:
		return fmt.Errorf("resolve %s: invalid disposition %d", c.RestorePath, int(d))
	}
	return nil
}

// Failure is a conflict whose resolution failed.
type Failure struct {
	Conflict    engine.Conflict
	Disposition Disposition
	Err         error
}

func (f Failure) Error() string {
	return fmt.Sprintf("%s (%s): %v", f.Conflict.RestorePath, f.Disposition, f.Err)
}

func (f Failure) Unwrap() error { return f.Err }

// ResolveAll resolves every conflict with the disposition choose returns
// for it. A failure never stops the remaining conflicts.
func ResolveAll(conflicts []engine.Conflict, choose func(engine.Conflict) Disposition) []Failure {
	var failures []Failure
	for _, c := range conflicts {
		d := choose(c)
		if err := Resolve(c, d); err != nil {
			failures = append(failures, Failure{Conflict: c, Disposition: d, Err: err})
		}
	}
	return failures
}

// All returns a chooser that gives d for every conflict.
func All(d Disposition) func(engine.Conflict) Disposition {
	return func(engine.Conflict) Disposition { return d }
}

// IsGone reports whether err means the restore file no longer exists.
func IsGone(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}
