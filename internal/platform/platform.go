// Package platform holds the byte-moving primitives used by the copy engine.
// The kernel-assisted paths are Linux-only; every platform has the buffered
// read/write fallback.
package platform

import "os"

// CopyMethod identifies which syscall/strategy was used for a copy.
type CopyMethod int

const (
	ReadWrite     CopyMethod = iota
	CopyFileRange            // Linux copy_file_range(2)
	Sendfile                 // Linux sendfile(2)
)

func (m CopyMethod) String() string {
	switch m {
	case ReadWrite:
		return "read_write"
	case CopyFileRange:
		return "copy_file_range"
	case Sendfile:
		return "sendfile"
	default:
		return "unknown"
	}
}

// CopyResult reports the outcome of a copy operation.
type CopyResult struct {
	BytesWritten int64
	Method       CopyMethod
}

// CopyFileParams describes what to copy. Both files must already be open;
// Dst is positioned at offset 0 and Src is read from offset 0.
type CopyFileParams struct {
	Src  *os.File
	Dst  *os.File
	Size int64 // size of Src at open time; used as a hint only
}
