// Package trace provides request-ID propagation for outbound requests.
// The executor stamps an X-Request-ID header on every attempt so that
// all retries of one logical call share an ID in logs and on the wire.
package trace

import (
	"context"

	"github.com/google/uuid"
)

// contextKey is the type for context keys to avoid collisions
type contextKey string

// requestIDKey is the context key for request ID values
const requestIDKey contextKey = "request_id"

// HeaderXRequestID is the standard header name for request tracing
const HeaderXRequestID = "X-Request-ID"

// WithRequestID adds a request ID to the context
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// IDFromContext returns a request ID from context if present
func IDFromContext(ctx context.Context) (string, bool) {
	if id, ok := ctx.Value(requestIDKey).(string); ok && id != "" {
		return id, true
	}
	return "", false
}

// EnsureRequestID returns an existing request ID from context or
// generates a new one
func EnsureRequestID(ctx context.Context) string {
	if id, ok := IDFromContext(ctx); ok {
		return id
	}
	return uuid.New().String()
}
