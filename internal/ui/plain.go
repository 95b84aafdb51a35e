package ui

import (
	"fmt"
	"io"
	"time"

	"github.com/bamsammich/homeward/internal/event"
	"github.com/bamsammich/homeward/internal/stats"
)

// plainPresenter writes one line per conflict or failure (and per copied
// file when verbose) to w, and periodic progress to errW.
type plainPresenter struct {
	w          io.Writer
	errW       io.Writer
	stats      stats.ReadTicker
	root       string
	verbose    bool
	noProgress bool
}

func (p *plainPresenter) Run(events <-chan Event) error {
	tick := time.NewTicker(time.Second)
	defer tick.Stop()
	progress := time.NewTicker(5 * time.Second)
	defer progress.Stop()

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			p.handleEvent(ev)
		case <-tick.C:
			p.stats.Tick()
		case <-progress.C:
			if !p.noProgress {
				p.printProgress()
			}
		}
	}
}

func (p *plainPresenter) handleEvent(ev Event) {
	path := StripRoot(p.root, ev.Path)
	switch ev.Type {
	case event.CopyStarted:
		if p.verbose {
			fmt.Fprintf(p.w, "restoring %s files (%s)\n", FormatCount(ev.Total), FormatBytes(ev.TotalSize))
		}
	case event.FileCopied:
		if p.verbose {
			fmt.Fprintf(p.w, "%s  %s\n", path, FormatBytes(ev.Size))
		}
	case event.FileConflict:
		fmt.Fprintf(p.w, "conflict: %s  saved as %s\n", path, StripRoot(p.root, ev.RestorePath))
	case event.FileFailed:
		errMsg := "error"
		if ev.Error != nil {
			errMsg = ev.Error.Error()
		}
		fmt.Fprintf(p.w, "failed: %s  %s\n", path, errMsg)
	case event.DirCreated, event.CopyComplete:
	}
}

func (p *plainPresenter) printProgress() {
	snap := p.stats.Snapshot()
	if snap.BytesTotal > 0 {
		pct := float64(snap.BytesDone) / float64(snap.BytesTotal) * 100
		fmt.Fprintf(p.errW, "progress: %.0f%% %s/%s %s/%s files %s eta %s\n",
			pct,
			FormatBytes(snap.BytesDone), FormatBytes(snap.BytesTotal),
			FormatCount(snap.FilesDone()), FormatCount(snap.FilesTotal),
			FormatRate(p.stats.RollingSpeed(10)),
			FormatETA(p.stats.ETA()),
		)
		return
	}
	fmt.Fprintf(p.errW, "progress: %s files\n", FormatCount(snap.FilesDone()))
}

func (p *plainPresenter) Summary() string {
	return CompletionSummary(p.stats.Snapshot())
}
