package envelope

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	dErrors "erigateway/pkg/domain-errors"
	"erigateway/pkg/platform/httputil"
	"erigateway/pkg/requestcontext"
)

type payloadKey struct{}

// WithPayload stores a decoded payload in ctx.
func WithPayload(ctx context.Context, payload json.RawMessage) context.Context {
	return context.WithValue(ctx, payloadKey{}, payload)
}

// Payload returns the payload stored by Require.
func Payload(ctx context.Context) (json.RawMessage, bool) {
	p, ok := ctx.Value(payloadKey{}).(json.RawMessage)
	return p, ok
}

// Validatable is implemented by request types that check their own fields.
type Validatable interface {
	Validate() error
}

// Require opens the envelope before any session or resource check runs, so a
// malformed or unsigned call is rejected without touching state.
func Require(codec *Codec, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			env, err := Read(r.Body)
			if err == nil {
				var payload json.RawMessage
				payload, err = codec.Open(env)
				if err == nil {
					next.ServeHTTP(w, r.WithContext(WithPayload(ctx, payload)))
					return
				}
			}
			logger.WarnContext(ctx, "rejected request envelope",
				"request_id", requestcontext.RequestID(ctx),
				"path", r.URL.Path,
				"error", err,
			)
			httputil.WriteError(w, err)
		})
	}
}

// DecodeRequest pulls the payload opened by Require, decodes it into T and
// runs its validation. On failure the error response is already written.
func DecodeRequest[T any, PT interface {
	*T
	Validatable
}](w http.ResponseWriter, r *http.Request, logger *slog.Logger) (*T, bool) {
	ctx := r.Context()
	payload, ok := Payload(ctx)
	if !ok {
		logger.ErrorContext(ctx, "envelope payload missing from context",
			"request_id", requestcontext.RequestID(ctx),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeInternal, "envelope context error"))
		return nil, false
	}

	req, err := Decode[T](payload)
	if err == nil {
		err = PT(req).Validate()
	}
	if err != nil {
		logger.WarnContext(ctx, "invalid request payload",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return nil, false
	}
	return req, true
}
