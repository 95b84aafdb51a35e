package platform

import (
	"io"
	"sync"
)

const bufferSize = 1 << 20 // 1 MiB

var bufPool = sync.Pool{
	New: func() any {
		b := make([]byte, bufferSize)
		return &b
	},
}

// copyReadWrite copies the whole of params.Src into params.Dst with a pooled buffer.
func copyReadWrite(params CopyFileParams) (CopyResult, error) {
	n, err := CopyStream(params.Dst, params.Src)
	return CopyResult{BytesWritten: n, Method: ReadWrite}, err
}

// CopyStream copies src to dst until EOF using a pooled 1 MiB buffer. It is
// the path used when the reader is not a plain file, e.g. when throttled.
func CopyStream(dst io.Writer, src io.Reader) (int64, error) {
	bufp := bufPool.Get().(*[]byte)
	defer bufPool.Put(bufp)

	// Hide ReaderFrom/WriterTo so CopyBuffer actually uses our buffer.
	return io.CopyBuffer(struct{ io.Writer }{dst}, struct{ io.Reader }{src}, *bufp)
}
