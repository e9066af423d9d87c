// Package logger configures the process-wide slog logger and carries
// request-scoped loggers through context.
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
)

type ctxKey struct{}

// New builds a logger for the given environment: JSON lines in production,
// human-readable text everywhere else.
func New(env string, w io.Writer) *slog.Logger {
	if w == nil {
		w = os.Stdout
	}
	switch env {
	case "production", "prod":
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
}

// Setup builds the logger for env and installs it as the slog default.
func Setup(env string) *slog.Logger {
	l := New(env, os.Stdout)
	slog.SetDefault(l)
	return l
}

// WithLogger stores l in ctx.
func WithLogger(ctx context.Context, l *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// FromContext returns the request logger stored in ctx, or the default logger.
func FromContext(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok && l != nil {
		return l
	}
	return slog.Default()
}
