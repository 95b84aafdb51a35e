package ui

import (
	"context"
	"errors"
	"log/slog"
)

// MultiHandler fans each record out to several slog handlers, e.g. the
// stderr text log and the --log JSON file.
type MultiHandler struct {
	handlers []slog.Handler
}

// NewMultiHandler returns a handler writing to every h.
func NewMultiHandler(h ...slog.Handler) *MultiHandler {
	return &MultiHandler{handlers: h}
}

// Enabled reports whether any handler accepts level.
func (m *MultiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range m.handlers {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

//nolint:gocritic // slog.Handler interface fixes the signature
func (m *MultiHandler) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, h := range m.handlers {
		if !h.Enabled(ctx, r.Level) {
			continue
		}
		if err := h.Handle(ctx, r.Clone()); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m *MultiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	hs := make([]slog.Handler, len(m.handlers))
	for i, h := range m.handlers {
		hs[i] = h.WithAttrs(attrs)
	}
	return &MultiHandler{handlers: hs}
}

func (m *MultiHandler) WithGroup(name string) slog.Handler {
	hs := make([]slog.Handler, len(m.handlers))
	for i, h := range m.handlers {
		hs[i] = h.WithGroup(name)
	}
	return &MultiHandler{handlers: hs}
}

// LogEvent records an engine outcome event as a structured log entry.
// Failures log at Warn, conflicts at Info and everything else at Debug.
func LogEvent(logger *slog.Logger, ev Event) {
	attrs := []slog.Attr{
		slog.String("type", ev.Type.String()),
		slog.String("path", ev.Path),
	}
	if ev.Dir.Valid() {
		attrs = append(attrs, slog.String("dir", ev.Dir.String()))
	}
	if ev.Size > 0 {
		attrs = append(attrs, slog.Int64("size", ev.Size))
	}
	if ev.RestorePath != "" {
		attrs = append(attrs, slog.String("restore_path", ev.RestorePath))
	}
	if ev.Total > 0 {
		attrs = append(attrs, slog.Int64("total", ev.Total), slog.Int64("total_size", ev.TotalSize))
	}

	level := slog.LevelDebug
	switch {
	case ev.Error != nil:
		level = slog.LevelWarn
		attrs = append(attrs, slog.String("error", ev.Error.Error()))
	case ev.RestorePath != "":
		level = slog.LevelInfo
	}
	logger.LogAttrs(context.Background(), level, "event", attrs...)
}
