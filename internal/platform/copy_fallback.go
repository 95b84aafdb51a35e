//go:build !linux

package platform

// CopyFile falls back to read/write on platforms without kernel copy offload.
func CopyFile(params CopyFileParams) (CopyResult, error) {
	preallocate(params.Dst, params.Size)
	return copyReadWrite(params)
}
