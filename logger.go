package rankdb

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
)

// Logger wraps slog.Logger with rankdb-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NewConsoleLogger creates a Logger with colored output for terminals.
func NewConsoleLogger(level slog.Level) *Logger {
	return NewLogger(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: time.TimeOnly,
	}))
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return NewLogger(slog.DiscardHandler)
}

// WithDatabase adds the database name to the logger.
func (l *Logger) WithDatabase(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("database", name),
	}
}

// LogOpen logs opening a database.
func (l *Logger) LogOpen(ctx context.Context, path string, err error) {
	if err != nil {
		l.ErrorContext(ctx, "open failed",
			"path", path,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "database opened",
			"path", path,
		)
	}
}

// LogLoad logs a table load. full is true for LoadFull.
func (l *Logger) LogLoad(ctx context.Context, full bool, columns, rows int, duration time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "load failed",
			"full", full,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "load completed",
			"full", full,
			"columns", columns,
			"rows", rows,
			"duration", duration,
		)
	}
}

// LogResident logs materializing a memory-resident table.
func (l *Logger) LogResident(ctx context.Context, bytes int64, duration time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "resident load failed",
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "database resident in memory",
			"bytes", bytes,
			"duration", duration,
		)
	}
}
