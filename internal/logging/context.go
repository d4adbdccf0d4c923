package logging

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type contextKey string

const requestIDKey contextKey = "request_id"

// GenerateRequestID returns a new UUID request id.
func GenerateRequestID() string {
	return uuid.New().String()
}

// ContextWithRequestID stores id in ctx.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromContext returns the stored request id or "".
func RequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}

// Ctx returns the global logger with request_id attached when ctx carries one.
//
//	logging.Ctx(ctx).Warn().Err(err).Msg("falling back")
func Ctx(ctx context.Context) *zerolog.Logger {
	l := Logger()
	if ctx != nil {
		if id := RequestIDFromContext(ctx); id != "" {
			l = l.With().Str("request_id", id).Logger()
		}
	}
	return &l
}
