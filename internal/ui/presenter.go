package ui

import (
	"io"

	"github.com/bamsammich/homeward/internal/event"
	"github.com/bamsammich/homeward/internal/stats"
)

// Event is the engine's progress event.
type Event = event.Event

// Presenter consumes events and displays progress.
type Presenter interface {
	// Run consumes events until the channel closes. Blocks until done.
	Run(events <-chan Event) error
	// Summary returns the final summary line.
	Summary() string
}

// Config configures a Presenter.
type Config struct {
	Writer     io.Writer
	ErrWriter  io.Writer
	Stats      stats.ReadTicker
	HomeRoot   string // stripped from displayed destination paths
	IsTTY      bool
	Width      int // terminal columns; 0 disables path truncation
	Quiet      bool
	Verbose    bool
	NoProgress bool
}

// NewPresenter creates the appropriate presenter based on configuration.
//
//nolint:ireturn // picks one of several presenters
func NewPresenter(cfg Config) Presenter {
	if cfg.Quiet {
		return &quietPresenter{}
	}
	if !cfg.IsTTY || cfg.NoProgress {
		return &plainPresenter{
			w:          cfg.Writer,
			errW:       cfg.ErrWriter,
			stats:      cfg.Stats,
			root:       cfg.HomeRoot,
			verbose:    cfg.Verbose,
			noProgress: cfg.NoProgress,
		}
	}
	return &livePresenter{
		w:       cfg.ErrWriter, // the status lines redraw on the terminal
		stats:   cfg.Stats,
		root:    cfg.HomeRoot,
		verbose: cfg.Verbose,
		width:   cfg.Width,
	}
}
