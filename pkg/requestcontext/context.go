// Package requestcontext provides HTTP-independent context accessors for
// request-scoped values.
//
// Middleware sets the values; services and handlers only read them:
//
//	sessionRef := requestcontext.SessionRef(ctx)
//	requestID := requestcontext.RequestID(ctx)
//	now := requestcontext.Now(ctx)
//
// Tests inject values directly:
//
//	ctx = requestcontext.WithTime(ctx, fixedTime)
package requestcontext

import (
	"context"
	"time"
)

type (
	sessionRefKey  struct{}
	eriUserIDKey   struct{}
	requestIDKey   struct{}
	requestTimeKey struct{}
)

// Exported context keys for tests that need context.WithValue.
var (
	ContextKeySessionRef  = sessionRefKey{}
	ContextKeyEriUserID   = eriUserIDKey{}
	ContextKeyRequestID   = requestIDKey{}
	ContextKeyRequestTime = requestTimeKey{}
)

// -----------------------------------------------------------------------------
// Session context
// -----------------------------------------------------------------------------

// SessionRef retrieves the reference of the authenticated session. The
// session token itself is never placed in the context.
func SessionRef(ctx context.Context) string {
	if v, ok := ctx.Value(ContextKeySessionRef).(string); ok {
		return v
	}
	return ""
}

// EriUserID retrieves the ERI user that opened the session.
func EriUserID(ctx context.Context) string {
	if v, ok := ctx.Value(ContextKeyEriUserID).(string); ok {
		return v
	}
	return ""
}

// WithSession injects the authenticated session identity into the context.
func WithSession(ctx context.Context, sessionRef, eriUserID string) context.Context {
	ctx = context.WithValue(ctx, ContextKeySessionRef, sessionRef)
	return context.WithValue(ctx, ContextKeyEriUserID, eriUserID)
}

// -----------------------------------------------------------------------------
// Request metadata
// -----------------------------------------------------------------------------

// RequestID retrieves the request ID from the context.
func RequestID(ctx context.Context) string {
	if v, ok := ctx.Value(ContextKeyRequestID).(string); ok {
		return v
	}
	return ""
}

// WithRequestID injects a request ID into the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ContextKeyRequestID, requestID)
}

// -----------------------------------------------------------------------------
// Request time
// -----------------------------------------------------------------------------

// Now retrieves the request-scoped time from context.
// Falls back to time.Now() outside of HTTP requests (tests, CLI).
func Now(ctx context.Context) time.Time {
	if t, ok := ctx.Value(ContextKeyRequestTime).(time.Time); ok {
		return t
	}
	return time.Now()
}

// WithTime injects a specific time into a context.
func WithTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, ContextKeyRequestTime, t)
}
