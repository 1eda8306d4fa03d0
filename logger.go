package geobuf

import (
	"context"
	"log/slog"
	"os"

	"github.com/hupe1980/geobuf/geometry"
)

// Logger wraps slog.Logger with geobuf-specific context.
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
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return &Logger{
		Logger: slog.New(slog.DiscardHandler),
	}
}

// WithKind adds a geometry kind field to the logger.
func (l *Logger) WithKind(kind geometry.Kind) *Logger {
	return &Logger{
		Logger: l.Logger.With("kind", kind.String()),
	}
}

// WithRows adds a row count field to the logger.
func (l *Logger) WithRows(rows int) *Logger {
	return &Logger{
		Logger: l.Logger.With("rows", rows),
	}
}

// WithDataset adds a dataset name field to the logger.
func (l *Logger) WithDataset(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("dataset", name),
	}
}

// LogEncode logs an encode operation.
func (l *Logger) LogEncode(ctx context.Context, element geometry.Element, rows int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "encode failed",
			"element", element.String(),
			"rows", rows,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "encode completed",
			"element", element.String(),
			"rows", rows,
		)
	}
}

// LogSave logs a save operation.
func (l *Logger) LogSave(ctx context.Context, name string, bytes int64, err error) {
	if err != nil {
		l.ErrorContext(ctx, "save failed",
			"dataset", name,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "dataset saved",
			"dataset", name,
			"bytes", bytes,
		)
	}
}

// LogLoad logs a load operation.
func (l *Logger) LogLoad(ctx context.Context, name string, rows int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "load failed",
			"dataset", name,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "dataset loaded",
			"dataset", name,
			"rows", rows,
		)
	}
}
