package testutil

import (
	"net/http"
	"time"

	"erigateway/pkg/requestcontext"
)

// WithTime pins the request-scoped clock.
func WithTime(req *http.Request, now time.Time) *http.Request {
	return req.WithContext(requestcontext.WithTime(req.Context(), now))
}
