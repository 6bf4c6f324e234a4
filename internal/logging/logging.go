// Package logging builds the leveled logger shared by the store and services.
//
// Records go to two daily-rotating files in the log directory:
//
//	library-YYYY-MM-DD.log   everything at or above the configured level
//	error-YYYY-MM-DD.log     errors only
//
// The logger is always injected; nothing in the application reaches for a
// package-level instance.
package logging

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// Logger is the leveled sink the core reports state changes and rejections to.
// *slog.Logger satisfies it.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type Config struct {
	Dir         string
	Level       string
	BackupCount int
}

// New opens the rotating log files and returns a logger writing to both.
// The returned closer releases the files.
func New(cfg Config) (*slog.Logger, io.Closer, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, nil, err
	}

	library, err := openDaily(cfg.Dir, "library-", cfg.BackupCount)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open library log: %w", err)
	}
	errorsLog, err := openDaily(cfg.Dir, "error-", cfg.BackupCount)
	if err != nil {
		library.Close()
		return nil, nil, fmt.Errorf("failed to open error log: %w", err)
	}

	handler := &fanoutHandler{handlers: []slog.Handler{
		slog.NewTextHandler(library, &slog.HandlerOptions{Level: level}),
		slog.NewTextHandler(errorsLog, &slog.HandlerOptions{Level: slog.LevelError}),
	}}

	logger := slog.New(handler)
	logger.Info("~~~~~~~~~~~~~~~~~~ Logger Initialized ~~~~~~~~~~~~~~~~~~~")

	return logger, multiCloser{library, errorsLog}, nil
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// ParseLevel accepts debug, info, warn(ing) or error, case-insensitive.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return level, fmt.Errorf("unknown log level %q", s)
	}
	return level, nil
}

// fanoutHandler passes every record to each handler that accepts its level.
type fanoutHandler struct {
	handlers []slog.Handler
}

func (h *fanoutHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, hh := range h.handlers {
		if hh.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (h *fanoutHandler) Handle(ctx context.Context, record slog.Record) error {
	var errs []error
	for _, hh := range h.handlers {
		if !hh.Enabled(ctx, record.Level) {
			continue
		}
		if err := hh.Handle(ctx, record.Clone()); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (h *fanoutHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := make([]slog.Handler, len(h.handlers))
	for i, hh := range h.handlers {
		next[i] = hh.WithAttrs(attrs)
	}
	return &fanoutHandler{handlers: next}
}

func (h *fanoutHandler) WithGroup(name string) slog.Handler {
	next := make([]slog.Handler, len(h.handlers))
	for i, hh := range h.handlers {
		next[i] = hh.WithGroup(name)
	}
	return &fanoutHandler{handlers: next}
}

type multiCloser []io.Closer

func (m multiCloser) Close() error {
	var errs []error
	for _, c := range m {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
