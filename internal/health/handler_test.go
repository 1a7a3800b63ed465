package health

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	filingmodels "erigateway/internal/filing/models"
	"erigateway/pkg/testutil"
)

type stubSessions struct {
	count int
	err   error
}

func (s stubSessions) ActiveCount(context.Context) (int, error) { return s.count, s.err }

type stubStats filingmodels.Stats

func (s stubStats) Stats(context.Context) filingmodels.Stats { return filingmodels.Stats(s) }

func newRouter(sessions SessionCounter) http.Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := New(sessions, stubStats{TotalClients: 3, TotalSubmissions: 1},
		[]string{"POST /api/v1/auth/login"},
		TestCredentials{ClientID: "ERI_TEST_CLIENT", ClientSecret: "test_secret_123"},
		logger,
	)
	r := chi.NewRouter()
	h.Register(r)
	return r
}

func TestHandleHealth(t *testing.T) {
	now := time.Date(2025, 7, 31, 10, 30, 0, 0, time.UTC)

	t.Run("reports counts", func(t *testing.T) {
		req := testutil.WithTime(testutil.NewRequestWithBody(t, http.MethodGet, HealthPath, ""), now)
		rr := testutil.DoRequest(newRouter(stubSessions{count: 2}), req)

		testutil.AssertStatusOK(t, rr)
		resp := testutil.UnmarshalResponse[Response](t, rr)
		assert.Equal(t, StatusHealthy, resp.Status)
		assert.Equal(t, "2025-07-31T10:30:00Z", resp.Timestamp)
		assert.Equal(t, 2, resp.ActiveSessions)
		assert.Equal(t, 3, resp.TotalClients)
		assert.Equal(t, 1, resp.TotalSubmissions)
	})

	t.Run("session count failure still reports healthy", func(t *testing.T) {
		req := testutil.NewRequestWithBody(t, http.MethodGet, HealthPath, "")
		rr := testutil.DoRequest(newRouter(stubSessions{err: errors.New("boom")}), req)

		testutil.AssertStatusOK(t, rr)
		resp := testutil.UnmarshalResponse[Response](t, rr)
		assert.Equal(t, 0, resp.ActiveSessions)
		assert.Equal(t, 3, resp.TotalClients)
	})
}

func TestHandleBanner(t *testing.T) {
	rr := testutil.DoRequest(newRouter(stubSessions{}), testutil.NewRequestWithBody(t, http.MethodGet, RootPath, ""))

	testutil.AssertStatusOK(t, rr)
	resp := testutil.UnmarshalResponse[BannerResponse](t, rr)
	assert.Equal(t, "ERI Type-2 Mock ITR API Server", resp.Message)
	assert.Equal(t, "1.0.0", resp.Version)
	require.Len(t, resp.Endpoints, 1)
	assert.Equal(t, "ERI_TEST_CLIENT", resp.TestCredentials.ClientID)
}
