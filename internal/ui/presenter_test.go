package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bamsammich/homeward/internal/event"
	"github.com/bamsammich/homeward/internal/stats"
)

func TestNewPresenter(t *testing.T) {
	base := Config{Writer: &bytes.Buffer{}, ErrWriter: &bytes.Buffer{}, Stats: stats.NewCollector()}

	quiet := base
	quiet.Quiet = true
	quiet.IsTTY = true
	assert.IsType(t, &quietPresenter{}, NewPresenter(quiet))

	assert.IsType(t, &plainPresenter{}, NewPresenter(base))

	tty := base
	tty.IsTTY = true
	assert.IsType(t, &livePresenter{}, NewPresenter(tty))

	tty.NoProgress = true
	assert.IsType(t, &plainPresenter{}, NewPresenter(tty))
}

func TestQuietPresenter(t *testing.T) {
	events := make(chan Event, 2)
	events <- Event{Type: event.FileFailed}
	events <- Event{Type: event.FileCopied}
	close(events)

	p := &quietPresenter{}
	require.NoError(t, p.Run(events))
	assert.Empty(t, p.Summary())
}

func TestLivePresenter(t *testing.T) {
	var out bytes.Buffer
	c := stats.NewCollector()
	c.SetTotals(3, 3072)

	p := &livePresenter{w: &out, stats: c, root: "/home/u"}
	events := make(chan Event, 4)
	events <- Event{Type: event.FileCopied, Path: "/home/u/Documents/quiet.txt", Size: 1024}
	events <- Event{Type: event.FileConflict, Path: "/home/u/Pictures/p.jpg", RestorePath: "/home/u/Pictures/p.restore.jpg"}
	events <- Event{Type: event.FileFailed, Path: "/home/u/Music/m.mp3", Error: assert.AnError}
	close(events)

	require.NoError(t, p.Run(events))
	s := out.String()

	assert.NotContains(t, s, "quiet.txt", "copied files only show when verbose")
	assert.Contains(t, s, "p.jpg")
	assert.Contains(t, s, "saved as p.restore.jpg")
	assert.Contains(t, s, assert.AnError.Error())
	assert.Contains(t, s, "files   eta")
	// Status block is cleared on exit.
	assert.True(t, strings.HasSuffix(s, "\033[2A\033[J"))
}

func TestLivePresenter_Verbose(t *testing.T) {
	var out bytes.Buffer
	p := &livePresenter{w: &out, stats: stats.NewCollector(), verbose: true}
	events := make(chan Event, 1)
	events <- Event{Type: event.FileCopied, Path: "dir/file.txt", Size: 10}
	close(events)

	require.NoError(t, p.Run(events))
	assert.Contains(t, out.String(), "✓")
	assert.Contains(t, out.String(), "file.txt")
}
