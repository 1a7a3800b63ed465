package auth

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	dErrors "erigateway/pkg/domain-errors"
	"erigateway/pkg/platform/httputil"
	"erigateway/pkg/requestcontext"
)

// Principal is the identity attached to a verified session. SessionRef is a
// reference to the session, not the bearer token.
type Principal struct {
	SessionRef string
	ClientID   string
	EriUserID  string
}

// SessionValidator resolves a bare session token to its principal. It returns
// an error for missing, unknown or expired sessions.
type SessionValidator interface {
	ValidateSession(ctx context.Context, sessionID string) (*Principal, error)
}

// TokenFromRequest returns the session token from the Authorization header.
// The protocol sends the bare token; a "Bearer " prefix is tolerated.
func TokenFromRequest(r *http.Request) string {
	token := strings.TrimSpace(r.Header.Get("Authorization"))
	if after, ok := strings.CutPrefix(token, "Bearer "); ok {
		token = strings.TrimSpace(after)
	}
	return token
}

// RequireSession rejects requests without a live session and injects the
// session identity into the request context for downstream handlers.
func RequireSession(validator SessionValidator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			requestID := requestcontext.RequestID(ctx)

			token := TokenFromRequest(r)
			if token == "" {
				logger.WarnContext(ctx, "unauthorized access - missing session",
					"request_id", requestID,
				)
				httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "Invalid or expired session"))
				return
			}

			principal, err := validator.ValidateSession(ctx, token)
			if err != nil {
				if dErrors.HasCode(err, dErrors.CodeUnauthorized) {
					logger.WarnContext(ctx, "unauthorized access - invalid session",
						"error", err,
						"request_id", requestID,
					)
					httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "Invalid or expired session"))
					return
				}
				logger.ErrorContext(ctx, "failed to validate session",
					"error", err,
					"request_id", requestID,
				)
				httputil.WriteError(w, err)
				return
			}

			ctx = requestcontext.WithSession(ctx, principal.SessionRef, principal.EriUserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
