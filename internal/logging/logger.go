// Package logging provides the structured logger used by the sss tools.
package logging

import (
	"io"
	"log/slog"
	"os"
	"time"
)

// Logger wraps a slog text handler with a debug toggle.
// Callers log operation metadata only, never secrets or share values.
type Logger struct {
	logger *slog.Logger
	debug  bool
}

// NewLogger creates a logger writing to w. A nil w selects os.Stderr.
func NewLogger(w io.Writer, debug bool) *Logger {
	if w == nil {
		w = os.Stderr
	}
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return &Logger{
		logger: slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})),
		debug:  debug,
	}
}

// Discard returns a logger that drops everything.
func Discard() *Logger {
	return NewLogger(io.Discard, false)
}

// With returns a logger that adds args to every record.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{logger: l.logger.With(args...), debug: l.debug}
}

// Info logs an informational message
func (l *Logger) Info(msg string, args ...any) {
	l.logger.Info(msg, args...)
}

// Debug logs a debug message
func (l *Logger) Debug(msg string, args ...any) {
	if l.debug {
		l.logger.Debug(msg, args...)
	}
}

// Warn logs a warning message
func (l *Logger) Warn(msg string, args ...any) {
	l.logger.Warn(msg, args...)
}

// Timed logs msg at debug level with the time elapsed since start.
func (l *Logger) Timed(msg string, start time.Time, args ...any) {
	l.Debug(msg, append(args, "elapsed", time.Since(start))...)
}
