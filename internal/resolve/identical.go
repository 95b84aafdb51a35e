package resolve

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/zeebo/blake3"

	"github.com/bamsammich/homeward/internal/engine"
)

// Identical reports whether the restored file has exactly the bytes of the
// original. Sizes are compared first; digests only when they match.
func Identical(c engine.Conflict) (bool, error) {
	orig, err := os.Stat(c.OriginalPath)
	if err != nil {
		return false, err
	}
	restored, err := os.Stat(c.RestorePath)
	if err != nil {
		return false, err
	}
	if !orig.Mode().IsRegular() || orig.Size() != restored.Size() {
		return false, nil
	}

	a, err := hashFile(c.OriginalPath)
	if err != nil {
		return false, err
	}
	b, err := hashFile(c.RestorePath)
	if err != nil {
		return false, err
	}
	return bytes.Equal(a, b), nil
}

// SplitIdentical separates conflicts whose restored copy duplicates the
// original from the rest. A conflict that cannot be compared counts as
// different.
func SplitIdentical(conflicts []engine.Conflict) (same, different []engine.Conflict) {
	for _, c := range conflicts {
		if ok, err := Identical(c); err == nil && ok {
			same = append(same, c)
		} else {
			different = append(different, c)
		}
	}
	return same, different
}

func hashFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	h := blake3.New()
	buf := make([]byte, 32*1024)
	if _, err := io.CopyBuffer(h, f, buf); err != nil {
		return nil, fmt.Errorf("hash %s: %w", path, err)
	}
	return h.Sum(nil), nil
}
