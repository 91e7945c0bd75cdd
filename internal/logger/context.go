package logger

import (
	"context"
	"fmt"
	"log/slog"
)

// contextKey is a private type to avoid collisions in context.
type contextKey string

const (
	ctxRID       contextKey = "rid"
	ctxLogger    contextKey = "logger"
	ctxTransport contextKey = "transport"
	ctxUserID    contextKey = "user_id"
)

// WithLogger stores the provided slog.Logger in context for propagation across layers.
func WithLogger(ctx context.Context, log *slog.Logger) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	if log == nil {
		return ctx
	}
	return context.WithValue(ctx, ctxLogger, log)
}

// FromContext extracts slog.Logger from context or returns the base logger.
func FromContext(ctx context.Context) *slog.Logger {
	if ctx != nil {
		if v := ctx.Value(ctxLogger); v != nil {
			if l, ok := v.(*slog.Logger); ok {
				return l
			}
		}
	}
	if L != nil {
		return L
	}
	return slog.Default()
}

// WithRID attaches a request correlation id to context.
func WithRID(ctx context.Context, rid string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxRID, rid)
}

// RIDFrom extracts rid from context if present.
func RIDFrom(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v := ctx.Value(ctxRID); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// WithUser attaches transport tag and user id to context.
func WithUser(ctx context.Context, transport, userID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = context.WithValue(ctx, ctxTransport, transport)
	return context.WithValue(ctx, ctxUserID, userID)
}

// UserFrom extracts transport tag and user id from context.
func UserFrom(ctx context.Context) (string, string) {
	if ctx == nil {
		return "", ""
	}
	transport, _ := ctx.Value(ctxTransport).(string)
	userID, _ := ctx.Value(ctxUserID).(string)
	return transport, userID
}

// BuildRID returns a correlation identifier in the format transport:updateID:userID.
func BuildRID(transport string, updateID int, userID string) string {
	return fmt.Sprintf("%s:%d:%s", transport, updateID, userID)
}
