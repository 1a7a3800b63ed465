package httptransport

import (
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	"erigateway/internal/platform/metrics"
	"erigateway/pkg/platform/middleware/request"
	"erigateway/pkg/requestcontext"
	"erigateway/pkg/testutil"
)

type pingModule struct{}

func (pingModule) Register(r chi.Router) {
	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Seen-Request-ID", requestcontext.RequestID(r.Context()))
		w.WriteHeader(http.StatusNoContent)
	})
	r.Get("/panic", func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})
}

func newTestRouter() http.Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewRouter(logger, metrics.New(), pingModule{})
}

func TestNewRouter(t *testing.T) {
	router := newTestRouter()

	t.Run("propagates request id", func(t *testing.T) {
		req := testutil.NewRequestWithBody(t, http.MethodGet, "/ping", "")
		req.Header.Set(request.HeaderRequestID, "req-123")
		rr := testutil.DoRequest(router, req)

		assert.Equal(t, http.StatusNoContent, rr.Code)
		assert.Equal(t, "req-123", rr.Header().Get(request.HeaderRequestID))
		assert.Equal(t, "req-123", rr.Header().Get("X-Seen-Request-ID"))
	})

	t.Run("mints a request id when absent", func(t *testing.T) {
		rr := testutil.DoRequest(router, testutil.NewRequestWithBody(t, http.MethodGet, "/ping", ""))
		assert.NotEmpty(t, rr.Header().Get(request.HeaderRequestID))
	})

	t.Run("unknown route is a json 404", func(t *testing.T) {
		rr := testutil.DoRequest(router, testutil.NewRequestWithBody(t, http.MethodGet, "/nope", ""))
		testutil.AssertStatusAndError(t, rr, http.StatusNotFound, "not_found")
	})

	t.Run("wrong verb is a 405", func(t *testing.T) {
		rr := testutil.DoRequest(router, testutil.NewRequestWithBody(t, http.MethodPost, "/ping", ""))
		testutil.AssertStatusAndError(t, rr, http.StatusMethodNotAllowed, "method_not_allowed")
	})

	t.Run("panics become internal errors", func(t *testing.T) {
		rr := testutil.DoRequest(router, testutil.NewRequestWithBody(t, http.MethodGet, "/panic", ""))
		testutil.AssertStatus(t, rr, http.StatusInternalServerError)
	})

	t.Run("metrics are exposed", func(t *testing.T) {
		testutil.DoRequest(router, testutil.NewRequestWithBody(t, http.MethodGet, "/ping", ""))
		rr := testutil.DoRequest(router, testutil.NewRequestWithBody(t, http.MethodGet, MetricsPath, ""))

		testutil.AssertStatusOK(t, rr)
		assert.Contains(t, rr.Body.String(), "eri_http_request_duration_seconds")
	})
}

func TestProtocolEndpoints(t *testing.T) {
	assert.Len(t, ProtocolEndpoints, 9)
	assert.Equal(t, "POST /api/v1/auth/login", ProtocolEndpoints[0])
	assert.Equal(t, "POST /api/v1/auth/logout", ProtocolEndpoints[8])
}
