// Package logging wraps log/slog behind a small context-aware interface so
// handlers and the entry point do not depend on a concrete logger.
package logging

import "context"

// Logger is a structured logger. The variadic args are key-value pairs:
//
//	log.Info(ctx, "server started", "addr", addr)
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that always includes the given pairs.
	With(args ...any) Logger
}
