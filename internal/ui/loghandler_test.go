package ui_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bamsammich/homeward/internal/event"
	"github.com/bamsammich/homeward/internal/stddir"
	"github.com/bamsammich/homeward/internal/ui"
)

// newRunLogger mirrors the CLI setup: text on the terminal at level, JSON at
// debug for the log file.
func newRunLogger(level slog.Level) (*slog.Logger, *bytes.Buffer, *bytes.Buffer) {
	var term, file bytes.Buffer
	h := ui.NewMultiHandler(
		slog.NewTextHandler(&term, &slog.HandlerOptions{Level: level}),
		slog.NewJSONHandler(&file, &slog.HandlerOptions{Level: slog.LevelDebug}),
	)
	return slog.New(h), &term, &file
}

func TestMultiHandler_FileGetsEverything(t *testing.T) {
	t.Parallel()

	logger, term, file := newRunLogger(slog.LevelWarn)
	logger.Debug("planned", "files", 12)
	logger.Warn("scan", "error", "permission denied")

	assert.NotContains(t, term.String(), "planned")
	assert.Contains(t, term.String(), "error=\"permission denied\"")

	lines := strings.Split(strings.TrimSpace(file.String()), "\n")
	require.Len(t, lines, 2)
	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &rec))
	assert.Equal(t, "planned", rec["msg"])
	assert.EqualValues(t, 12, rec["files"])
}

func TestMultiHandler_Enabled(t *testing.T) {
	t.Parallel()

	quiet := ui.NewMultiHandler(
		slog.NewTextHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelError}),
		slog.NewTextHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelWarn}),
	)
	ctx := context.Background()
	for level, want := range map[slog.Level]bool{
		slog.LevelDebug: false,
		slog.LevelInfo:  false,
		slog.LevelWarn:  true,
		slog.LevelError: true,
	} {
		assert.Equal(t, want, quiet.Enabled(ctx, level), level.String())
	}
}

func TestMultiHandler_WithAttrsReachesEveryHandler(t *testing.T) {
	t.Parallel()

	logger, term, file := newRunLogger(slog.LevelInfo)
	logger.With("run_id", "abc").Info("restore finished")

	assert.Contains(t, term.String(), "run_id=abc")
	assert.Contains(t, file.String(), `"run_id":"abc"`)
}

func TestMultiHandler_WithGroup(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	h := slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo})
	m := ui.NewMultiHandler(h)
	logger := slog.New(m.WithGroup("restore"))

	logger.Info("event", "type", "FileCopied")

	lines := strings.TrimSpace(buf.String())
	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines), &rec))

	group, ok := rec["restore"].(map[string]any)
	require.True(t, ok, "expected group 'restore' in JSON output")
	assert.Equal(t, "FileCopied", group["type"])
}

func TestLogEvent(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))

	ui.LogEvent(logger, event.Event{Type: event.FileCopied, Path: "/h/Documents/a.txt", Size: 3})
	ui.LogEvent(logger, event.Event{
		Type: event.FileConflict, Path: "/h/Pictures/p.jpg", RestorePath: "/h/Pictures/p.restore.jpg", Dir: stddir.Pictures,
	})
	ui.LogEvent(logger, event.Event{Type: event.FileFailed, Path: "/h/Music/x.mp3", Error: errors.New("denied")})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2, "copied events log at debug and are filtered")

	var conflict, failed map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &conflict))
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &failed))

	assert.Equal(t, "FileConflict", conflict["type"])
	assert.Equal(t, "Pictures", conflict["dir"])
	assert.Equal(t, "/h/Pictures/p.restore.jpg", conflict["restore_path"])
	assert.Equal(t, "WARN", failed["level"])
	assert.Equal(t, "denied", failed["error"])
}
