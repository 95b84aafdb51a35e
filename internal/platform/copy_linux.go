//go:build linux

package platform

import (
	"errors"

	"golang.org/x/sys/unix"
)

// maxChunk bounds a single copy_file_range/sendfile call.
const maxChunk = 1 << 30

// CopyFile tries the most efficient copy method available on Linux,
// falling through on unsupported/cross-device errors. A fast path only
// falls through when it wrote nothing, so the next strategy always starts
// from offset 0.
func CopyFile(params CopyFileParams) (CopyResult, error) {
	preallocate(params.Dst, params.Size)

	result, err := copyFileRange(params)
	if err == nil {
		return result, nil
	}
	if result.BytesWritten > 0 || !isFallbackErr(err) {
		return result, err
	}

	result, err = copySendfile(params)
	if err == nil {
		return result, nil
	}
	if result.BytesWritten > 0 || !isFallbackErr(err) {
		return result, err
	}

	return copyReadWrite(params)
}

//nolint:gosec // G115: fd values are small non-negative integers
func copyFileRange(params CopyFileParams) (CopyResult, error) {
	var roff, woff int64
	var total int64
	for {
		n, err := unix.CopyFileRange(int(params.Src.Fd()), &roff, int(params.Dst.Fd()), &woff, maxChunk, 0)
		if err != nil {
			return CopyResult{BytesWritten: total, Method: CopyFileRange}, err
		}
		if n == 0 {
			break
		}
		total += int64(n)
	}
	// An empty result on a non-empty source means the filesystem reports
	// nothing to copy (e.g. procfs); let the next strategy try.
	if total == 0 && params.Size > 0 {
		return CopyResult{Method: CopyFileRange}, unix.EINVAL
	}
	return CopyResult{BytesWritten: total, Method: CopyFileRange}, nil
}

//nolint:gosec // G115: fd values are small non-negative integers
func copySendfile(params CopyFileParams) (CopyResult, error) {
	var offset int64
	var total int64
	for {
		n, err := unix.Sendfile(int(params.Dst.Fd()), int(params.Src.Fd()), &offset, maxChunk)
		if err != nil {
			return CopyResult{BytesWritten: total, Method: Sendfile}, err
		}
		if n == 0 {
			break
		}
		total += int64(n)
	}
	if total == 0 && params.Size > 0 {
		return CopyResult{Method: Sendfile}, unix.EINVAL
	}
	return CopyResult{BytesWritten: total, Method: Sendfile}, nil
}

// isFallbackErr returns true if err should trigger a fallback to the next copy strategy.
func isFallbackErr(err error) bool {
	return errors.Is(err, unix.ENOSYS) ||
		errors.Is(err, unix.EXDEV) ||
		errors.Is(err, unix.EINVAL) ||
		errors.Is(err, unix.ENOTSUP) ||
		errors.Is(err, unix.EOPNOTSUPP)
}
