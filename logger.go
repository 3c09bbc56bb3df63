package pointgo

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with pointgo-specific context.
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
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithK adds a k (neighbor count) field to the logger.
func (l *Logger) WithK(k int) *Logger {
	return &Logger{
		Logger: l.Logger.With("k", k),
	}
}

// WithCount adds a point count field to the logger.
func (l *Logger) WithCount(count int) *Logger {
	return &Logger{
		Logger: l.Logger.With("count", count),
	}
}

// LogStructureBuild logs a spatial structure build.
func (l *Logger) LogStructureBuild(ctx context.Context, structure string, n int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "structure build failed",
			"structure", structure,
			"points", n,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "structure build completed",
			"structure", structure,
			"points", n,
		)
	}
}

// LogNeighborhood logs a neighborhood query, including whether the cached
// result was reused.
func (l *Logger) LogNeighborhood(ctx context.Context, k int, metric string, cached bool, err error) {
	if err != nil {
		l.ErrorContext(ctx, "neighborhood query failed",
			"k", k,
			"metric", metric,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "neighborhood query completed",
			"k", k,
			"metric", metric,
			"cached", cached,
		)
	}
}

// LogFeature logs a feature extraction.
func (l *Logger) LogFeature(ctx context.Context, name string, fields int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "feature extraction failed",
			"feature", name,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "feature extraction completed",
			"feature", name,
			"fields", fields,
		)
	}
}

// LogFilter logs a filter run.
func (l *Logger) LogFilter(ctx context.Context, name string, kept, total int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "filter failed",
			"filter", name,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "filter completed",
			"filter", name,
			"kept", kept,
			"total", total,
		)
	}
}
