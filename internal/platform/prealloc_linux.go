//go:build linux

package platform

import (
	"os"

	"golang.org/x/sys/unix"
)

// preallocate reserves size bytes for dst without changing its length, so a
// source that shrinks mid-copy never leaves zero padding behind.
//
//nolint:gosec // G115: fd values are small non-negative integers
func preallocate(dst *os.File, size int64) {
	if size <= 0 {
		return
	}
	//nolint:errcheck // advisory; many filesystems reject fallocate
	unix.Fallocate(int(dst.Fd()), unix.FALLOC_FL_KEEP_SIZE, 0, size)
}
