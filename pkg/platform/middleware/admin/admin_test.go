package admin

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func guarded(token string) http.Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return RequireAdminToken(token, logger)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
}

func TestRequireAdminToken(t *testing.T) {
	tests := []struct {
		name     string
		expected string
		sent     string
		status   int
	}{
		{"matching token", "ops-secret", "ops-secret", http.StatusNoContent},
		{"wrong token", "ops-secret", "guess", http.StatusUnauthorized},
		{"missing token", "ops-secret", "", http.StatusUnauthorized},
		{"disabled when unset", "", "", http.StatusNotFound},
		{"disabled even with a header", "", "anything", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin/audit", nil)
			if tt.sent != "" {
				req.Header.Set(HeaderAdminToken, tt.sent)
			}
			rr := httptest.NewRecorder()
			guarded(tt.expected).ServeHTTP(rr, req)
			assert.Equal(t, tt.status, rr.Code)
		})
	}
}
