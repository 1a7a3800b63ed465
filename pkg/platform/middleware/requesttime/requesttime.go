// Package requesttime pins a single "now" per request so session expiry
// checks, record timestamps and acknowledgement years agree within one call.
package requesttime

import (
	"net/http"
	"time"

	"erigateway/pkg/requestcontext"
)

// Middleware captures the current time at the start of the request.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := requestcontext.WithTime(r.Context(), time.Now())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
