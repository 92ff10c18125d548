package logger

import (
	"context"
	"log/slog"
)

// contextKey is a private type for the logger context key to avoid
// collisions with other packages' context values.
type contextKey struct{}

var loggerKey = contextKey{}

// WithLogger returns a copy of ctx carrying the given logger. Middleware
// uses this to attach a request-scoped logger (with trace ID and other
// request attributes) that downstream code can retrieve.
func WithLogger(ctx context.Context, log *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, log)
}

// FromContext retrieves the logger from the context, or the process
// default logger if none has been attached.
func FromContext(ctx context.Context) *slog.Logger {
	if log, ok := ctx.Value(loggerKey).(*slog.Logger); ok && log != nil {
		return log
	}
	return slog.Default()
}

// FromContextOrDefault retrieves the logger from the context, falling
// back to the provided default. Components pass their component-scoped
// logger as the fallback so log lines stay attributable even when a
// request context is absent.
func FromContextOrDefault(ctx context.Context, def *slog.Logger) *slog.Logger {
	if log, ok := ctx.Value(loggerKey).(*slog.Logger); ok && log != nil {
		return log
	}
	if def != nil {
		return def
	}
	return slog.Default()
}
