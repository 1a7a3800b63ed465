// Package health serves the liveness report and the service banner.
package health

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	filingmodels "erigateway/internal/filing/models"
	"erigateway/pkg/platform/httputil"
	"erigateway/pkg/requestcontext"
)

const (
	HealthPath = "/health"
	RootPath   = "/"

	StatusHealthy = "healthy"
	bannerMessage = "ERI Type-2 Mock ITR API Server"
	bannerVersion = "1.0.0"
)

// SessionCounter reports live sessions.
type SessionCounter interface {
	ActiveCount(ctx context.Context) (int, error)
}

// FilingStats reports registry sizes.
type FilingStats interface {
	Stats(ctx context.Context) filingmodels.Stats
}

// TestCredentials are advertised on the banner so integrators can log in.
type TestCredentials struct {
	ClientID     string `json:"clientId"`
	ClientSecret string `json:"clientSecret"`
	EriUserID    string `json:"eriUserId"`
	EriPassword  string `json:"eriPassword"`
}

type Response struct {
	Status           string `json:"status"`
	Timestamp        string `json:"timestamp"`
	ActiveSessions   int    `json:"activeSessions"`
	TotalClients     int    `json:"totalClients"`
	TotalSubmissions int    `json:"totalSubmissions"`
}

type BannerResponse struct {
	Message         string          `json:"message"`
	Version         string          `json:"version"`
	Endpoints       []string        `json:"endpoints"`
	TestCredentials TestCredentials `json:"testCredentials"`
}

type Handler struct {
	logger    *slog.Logger
	sessions  SessionCounter
	filing    FilingStats
	endpoints []string
	creds     TestCredentials
}

// New builds the handler. endpoints is the list advertised on the banner.
func New(sessions SessionCounter, filing FilingStats, endpoints []string, creds TestCredentials, logger *slog.Logger) *Handler {
	return &Handler{
		logger:    logger,
		sessions:  sessions,
		filing:    filing,
		endpoints: endpoints,
		creds:     creds,
	}
}

func (h *Handler) Register(r chi.Router) {
	r.Get(RootPath, h.HandleBanner)
	r.Get(HealthPath, h.HandleHealth)
}

// HandleHealth reports registry counts. A failing session count is logged
// and reported as zero so the probe itself stays up.
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	active, err := h.sessions.ActiveCount(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to count sessions",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		active = 0
	}
	stats := h.filing.Stats(ctx)

	httputil.WriteJSON(w, http.StatusOK, Response{
		Status:           StatusHealthy,
		Timestamp:        requestcontext.Now(ctx).Format(time.RFC3339),
		ActiveSessions:   active,
		TotalClients:     stats.TotalClients,
		TotalSubmissions: stats.TotalSubmissions,
	})
}

func (h *Handler) HandleBanner(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, BannerResponse{
		Message:         bannerMessage,
		Version:         bannerVersion,
		Endpoints:       h.endpoints,
		TestCredentials: h.creds,
	})
}
