package engine

import (
	"fmt"

	"github.com/bamsammich/homeward/internal/stddir"
)

// CopiedFile is a file written to its planned destination.
type CopiedFile struct {
	Src  string
	Dst  string
	Size int64
	Dir  stddir.Dir
}

// Conflict is a file written beside an existing one. RestorePath did not
// exist when it was created; OriginalPath was left untouched.
type Conflict struct {
	RestorePath  string
	OriginalPath string
	Size         int64
	Dir          stddir.Dir
}

// CopyFailure records a file that could not be restored.
type CopyFailure struct {
	Src string
	Dst string
	Dir stddir.Dir
	Err error
}

func (f CopyFailure) Error() string {
	return fmt.Sprintf("%s -> %s: %v", f.Src, f.Dst, f.Err)
}

func (f CopyFailure) Unwrap() error { return f.Err }

// Result holds exactly one record per planned file.
type Result struct {
	Copied      []CopiedFile
	Conflicts   []Conflict
	Failures    []CopyFailure
	BytesCopied int64
}

// Total is the number of terminal records.
func (r *Result) Total() int {
	return len(r.Copied) + len(r.Conflicts) + len(r.Failures)
}

// HasFailures reports whether any file failed.
func (r *Result) HasFailures() bool {
	return len(r.Failures) > 0
}

// merge appends a worker's partial result.
func (r *Result) merge(part *Result) {
	r.Copied = append(r.Copied, part.Copied...)
	r.Conflicts = append(r.Conflicts, part.Conflicts...)
	r.Failures = append(r.Failures, part.Failures...)
	r.BytesCopied += part.BytesCopied
}
