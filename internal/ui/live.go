package ui

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/bamsammich/homeward/internal/event"
	"github.com/bamsammich/homeward/internal/stats"
)

// livePresenter prints a feed of notable outcomes and keeps a two-line
// status block redrawn in place beneath it.
type livePresenter struct {
	w       io.Writer
	stats   stats.ReadTicker
	root    string
	verbose bool
	width   int

	drawn    bool
	lines    int
	lastDraw time.Time
}

const (
	sparklineWidth   = 20
	progressBarWidth = 20
	minRedraw        = 50 * time.Millisecond
	// columns kept free for the marker, size and error text
	pathReserve      = 24
)

func (p *livePresenter) Run(events <-chan Event) error {
	// First tick comes early to seed the speed window.
	secTicker := time.NewTicker(250 * time.Millisecond)
	defer secTicker.Stop()
	seeded := false

	redraw := time.NewTicker(100 * time.Millisecond)
	defer redraw.Stop()

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				p.clear()
				return nil
			}
			p.handleEvent(ev)
			if time.Since(p.lastDraw) >= minRedraw {
				p.draw()
			}
		case <-redraw.C:
			p.draw()
		case <-secTicker.C:
			p.stats.Tick()
			if !seeded {
				seeded = true
				secTicker.Reset(time.Second)
			}
		}
	}
}

func (p *livePresenter) handleEvent(ev Event) {
	var line string
	switch ev.Type {
	case event.FileCopied:
		if !p.verbose {
			return
		}
		line = fmt.Sprintf("%s  %s  %s",
			styleOK.Render("✓"), p.styledPath(ev.Path), styleMuted.Render(FormatBytes(ev.Size)))
	case event.FileConflict:
		line = fmt.Sprintf("%s  %s  %s %s",
			styleWarn.Render("≠"), p.styledPath(ev.Path),
			styleMuted.Render("saved as"), filepath.Base(ev.RestorePath))
	case event.FileFailed:
		msg := "error"
		if ev.Error != nil {
			msg = ev.Error.Error()
		}
		line = fmt.Sprintf("%s  %s  %s",
			styleError.Render("✗"), p.styledPath(ev.Path), styleError.Render(msg))
	default:
		return
	}
	p.clear()
	fmt.Fprintln(p.w, line)
	p.draw()
}

func (p *livePresenter) draw() {
	p.clear()
	snap := p.stats.Snapshot()

	var pct float64
	if snap.BytesTotal > 0 {
		pct = float64(snap.BytesDone) / float64(snap.BytesTotal)
	}

	spark := Sparkline(p.stats.SparklineData(sparklineWidth), sparklineWidth)
	fmt.Fprintf(p.w, "       %s   %s   %s / %s\n",
		styleSpark.Render(spark), FormatRate(p.stats.RollingSpeed(10)),
		FormatBytes(snap.BytesDone), FormatBytes(snap.BytesTotal))

	fmt.Fprintf(p.w, " %3.0f%%  %s   %s / %s files   eta %s\n",
		pct*100, styleProgress.Render(ProgressBar(pct, progressBarWidth)),
		FormatCount(snap.FilesDone()), FormatCount(snap.FilesTotal),
		FormatETA(p.stats.ETA()))

	p.drawn = true
	p.lines = 2
	p.lastDraw = time.Now()
}

func (p *livePresenter) clear() {
	if !p.drawn {
		return
	}
	// Cursor up over the status block, then clear to end of screen.
	fmt.Fprintf(p.w, "\033[%dA\033[J", p.lines)
	p.drawn = false
}

func (p *livePresenter) Summary() string {
	return CompletionSummary(p.stats.Snapshot())
}

// styledPath dims the directory part so the file name stands out.
func (p *livePresenter) styledPath(path string) string {
	path = StripRoot(p.root, path)
	if p.width > 0 {
		path = TruncatePath(path, p.width-pathReserve)
	}
	dir, base := filepath.Split(path)
	if dir == "" {
		return base
	}
	return styleMuted.Render(dir) + base
}

// StripRoot removes a root prefix from a path, returning a clean relative path.
func StripRoot(root, path string) string {
	if root == "" {
		return path
	}
	if !strings.HasSuffix(root, string(filepath.Separator)) {
		root += string(filepath.Separator)
	}
	if strings.HasPrefix(path, root) {
		return path[len(root):]
	}
	return path
}
