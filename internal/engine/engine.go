// Package engine restores a planned file set into place without ever
// overwriting an existing file.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/bamsammich/homeward/internal/event"
	"github.com/bamsammich/homeward/internal/plan"
	"github.com/bamsammich/homeward/internal/stats"
)

// DefaultWorkers is the worker count used when none is configured.
const DefaultWorkers = 4

// Config controls a restore run.
type Config struct {
	Workers int
	Stats   *stats.Collector
	Events  chan<- event.Event
	// Limiter, when set, throttles aggregate copy throughput and forces the
	// buffered copy path.
	Limiter *rate.Limiter
}

// Run creates every planned directory, then copies the planned files with a
// fixed pool of workers. Each file ends up as exactly one record in the
// returned Result. Only a directory that cannot be created is fatal; in that
// case no file is copied and Run returns a nil Result.
func Run(ctx context.Context, p plan.Plan, cfg Config) (*Result, error) {
	workers := max(cfg.Workers, 1)
	if cfg.Stats == nil {
		cfg.Stats = stats.NewCollector()
	}
	cfg.Stats.SetTotals(int64(len(p.Files)), p.TotalBytes)

	emitEvent(cfg.Events, event.Event{
		Type:      event.CopyStarted,
		Total:     int64(len(p.Files)),
		TotalSize: p.TotalBytes,
	})

	for _, d := range p.Dirs {
		if err := os.MkdirAll(d.Dst, 0o755); err != nil {
			return nil, fmt.Errorf("create directory %s: %w", d.Dst, err)
		}
		cfg.Stats.AddDirsCreated(1)
		emitEvent(cfg.Events, event.Event{Type: event.DirCreated, Path: d.Dst})
	}

	slog.Debug("copy phase starting",
		"files", len(p.Files),
		"bytes", p.TotalBytes,
		"workers", workers,
		"throttled", cfg.Limiter != nil,
	)

	var (
		mu  sync.Mutex
		res = &Result{}
		g   errgroup.Group
	)
	for id := range workers {
		g.Go(func() error {
			w := worker{id: id, cfg: cfg}
			part := &Result{}
			for _, op := range partition(p.Files, id, workers) {
				w.place(ctx, op, part)
			}
			mu.Lock()
			res.merge(part)
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait() // workers record failures instead of returning them

	emitEvent(cfg.Events, event.Event{
		Type:      event.CopyComplete,
		Total:     int64(res.Total()),
		TotalSize: res.BytesCopied,
	})
	return res, nil
}

// partition returns worker id's share of ops: indices id, id+n, id+2n, ...
func partition(ops []plan.CopyOp, id, n int) []plan.CopyOp {
	if id >= len(ops) {
		return nil
	}
	out := make([]plan.CopyOp, 0, (len(ops)-id+n-1)/n)
	for i := id; i < len(ops); i += n {
		out = append(out, ops[i])
	}
	return out
}

// emitEvent sends without blocking; a slow consumer drops events rather
// than stalling the copy.
func emitEvent(ch chan<- event.Event, e event.Event) {
	if ch == nil {
		return
	}
	e.Timestamp = time.Now()
	select {
	case ch <- e:
	default:
	}
}
