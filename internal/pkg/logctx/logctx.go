package logctx

import (
	"context"
	"log/slog"
)

type ctxKey struct{}

// WithAttrs appends the provided attributes to the context.
func WithAttrs(ctx context.Context, attrs ...slog.Attr) context.Context {
	if len(attrs) == 0 {
		return ctx
	}
	combined := make([]slog.Attr, 0, len(attrs))
	if existing := Attrs(ctx); len(existing) > 0 {
		combined = append(combined, existing...)
	}
	combined = append(combined, attrs...)
	return context.WithValue(ctx, ctxKey{}, combined)
}

// WithField adds a single key/value attribute to the context.
func WithField(ctx context.Context, key string, value any) context.Context {
	return WithAttrs(ctx, slog.Any(key, value))
}

// Attrs returns the attributes stored in the context.
func Attrs(ctx context.Context) []slog.Attr {
	attrs, ok := ctx.Value(ctxKey{}).([]slog.Attr)
	if ok {
		return attrs
	}
	return nil
}

// WrapLogger returns a logger that injects context attributes on every record.
func WrapLogger(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return nil
	}
	return slog.New(NewContextHandler(logger.Handler()))
}
