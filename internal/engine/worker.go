package engine

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"golang.org/x/sys/unix"

	"github.com/bamsammich/homeward/internal/event"
	"github.com/bamsammich/homeward/internal/plan"
	"github.com/bamsammich/homeward/internal/platform"
)

type worker struct {
	id  int
	cfg Config
}

// place copies one file and appends exactly one record to part. Record
// sizes are the bytes written; progress advances by the planned size.
func (w *worker) place(ctx context.Context, op plan.CopyOp, part *Result) {
	written, n, err := w.copyFile(ctx, op)
	w.cfg.Stats.AddBytesDone(op.Size)

	switch {
	case err != nil:
		part.Failures = append(part.Failures, CopyFailure{Src: op.Src, Dst: op.Dst, Dir: op.Dir, Err: err})
		w.cfg.Stats.AddFilesFailed(1)
		slog.Debug("copy failed", "worker", w.id, "src", op.Src, "error", err)
		emitEvent(w.cfg.Events, event.Event{
			Type: event.FileFailed, Path: op.Dst, Size: op.Size, Dir: op.Dir, Error: err, WorkerID: w.id,
		})
		return

	case written != op.Dst:
		part.Conflicts = append(part.Conflicts, Conflict{
			RestorePath: written, OriginalPath: op.Dst, Size: n, Dir: op.Dir,
		})
		w.cfg.Stats.AddFilesConflicted(1)
		emitEvent(w.cfg.Events, event.Event{
			Type: event.FileConflict, Path: op.Dst, RestorePath: written, Size: n, Dir: op.Dir, WorkerID: w.id,
		})

	default:
		part.Copied = append(part.Copied, CopiedFile{Src: op.Src, Dst: op.Dst, Size: n, Dir: op.Dir})
		w.cfg.Stats.AddFilesCopied(1)
		emitEvent(w.cfg.Events, event.Event{
			Type: event.FileCopied, Path: op.Dst, Size: n, Dir: op.Dir, WorkerID: w.id,
		})
	}

	part.BytesCopied += n
	w.cfg.Stats.AddBytesCopied(n)
}

// copyFile writes op.Src to op.Dst, or to the first free restore candidate
// when op.Dst is taken. It returns the path actually written.
func (w *worker) copyFile(ctx context.Context, op plan.CopyOp) (string, int64, error) {
	src, err := os.Open(op.Src)
	if err != nil {
		return "", 0, err
	}
	defer src.Close()

	info, err := src.Stat()
	if err != nil {
		return "", 0, fmt.Errorf("stat source: %w", err)
	}
	perm := info.Mode().Perm()

	dst, err := createExclusive(op.Dst, perm)
	for attempt := 1; errors.Is(err, fs.ErrExist); attempt++ {
		dst, err = createExclusive(RestoreCandidate(op.Dst, attempt), perm)
	}
	if err != nil {
		return "", 0, err
	}

	path := dst.Name()
	inFlight.add(path)
	defer inFlight.remove(path)

	n, err := w.stream(ctx, src, dst, info.Size())
	if err != nil {
		dst.Close()
		_ = os.Remove(path)
		return "", 0, fmt.Errorf("copy to %s: %w", path, err)
	}

	// The umask may have narrowed the create mode.
	_ = unix.Fchmod(int(dst.Fd()), uint32(perm))

	if err := dst.Close(); err != nil {
		_ = os.Remove(path)
		return "", 0, fmt.Errorf("close %s: %w", path, err)
	}
	return path, n, nil
}

func (w *worker) stream(ctx context.Context, src, dst *os.File, size int64) (int64, error) {
	if w.cfg.Limiter != nil {
		return platform.CopyStream(dst, newRateLimitedReader(ctx, src, w.cfg.Limiter))
	}
	res, err := platform.CopyFile(platform.CopyFileParams{Src: src, Dst: dst, Size: size})
	return res.BytesWritten, err
}

// createExclusive creates path, failing with fs.ErrExist if anything is
// already there.
func createExclusive(path string, perm fs.FileMode) (*os.File, error) {
	return os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
}
