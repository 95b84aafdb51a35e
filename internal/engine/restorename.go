package engine

import (
	"path/filepath"
	"strconv"
	"strings"
)

const restoreTag = ".restore"

// RestoreCandidate returns the alternate name tried for original on the
// given attempt when original is already occupied:
//
//	photo.jpg, 1  -> photo.restore.jpg
//	photo.jpg, 3  -> photo.restore.3.jpg
//	Makefile, 1   -> Makefile.restore
//	.bashrc, 2    -> .bashrc.restore.2
//
// Attempts below 1 are treated as 1. It never touches the filesystem.
func RestoreCandidate(original string, attempt int) string {
	dir, stem, ext := splitName(original)

	var b strings.Builder
	b.Grow(len(stem) + len(restoreTag) + len(ext) + 4)
	b.WriteString(stem)
	b.WriteString(restoreTag)
	if attempt > 1 {
		b.WriteByte('.')
		b.WriteString(strconv.Itoa(attempt))
	}
	b.WriteString(ext)

	if dir == "" {
		return b.String()
	}
	return filepath.Join(dir, b.String())
}

// splitName breaks p into its directory, the base name up to the last dot,
// and the extension including the dot. A base whose only dot is the first
// character has no extension.
func splitName(p string) (dir, stem, ext string) {
	base := filepath.Base(p)
	if base != p {
		dir = filepath.Dir(p)
	}
	ext = filepath.Ext(base)
	if ext == base {
		ext = ""
	}
	return dir, strings.TrimSuffix(base, ext), ext
}
