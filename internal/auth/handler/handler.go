package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"erigateway/internal/auth/models"
	"erigateway/internal/envelope"
	dErrors "erigateway/pkg/domain-errors"
	"erigateway/pkg/platform/httputil"
	authmw "erigateway/pkg/platform/middleware/auth"
	"erigateway/pkg/requestcontext"
)

const (
	LoginPath  = "/api/v1/auth/login"
	LogoutPath = "/api/v1/auth/logout"
)

// Service defines the session operations the handler needs.
type Service interface {
	Login(ctx context.Context, creds models.Credentials) (*models.LoginResult, error)
	Logout(ctx context.Context, sessionID string) error
}

// Handler serves login and logout.
type Handler struct {
	logger *slog.Logger
	auth   Service
	codec  *envelope.Codec
}

// New creates a new auth Handler.
func New(auth Service, codec *envelope.Codec, logger *slog.Logger) *Handler {
	return &Handler{
		logger: logger,
		auth:   auth,
		codec:  codec,
	}
}

// Register registers the session routes. Login carries a signed envelope;
// logout reads only the Authorization header and is never rejected.
func (h *Handler) Register(r chi.Router) {
	r.With(envelope.Require(h.codec, h.logger)).Post(LoginPath, h.HandleLogin)
	r.Post(LogoutPath, h.HandleLogout)
}

// HandleLogin opens a session. It expects Require to have opened the envelope.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := envelope.DecodeRequest[models.LoginRequest](w, r, h.logger)
	if !ok {
		return
	}

	result, err := h.auth.Login(ctx, req.Credentials())
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeUnauthorized) {
			h.logger.WarnContext(ctx, "login rejected",
				"request_id", requestID,
				"eri_user_id", req.EriUserID,
			)
		} else {
			h.logger.ErrorContext(ctx, "login failed",
				"request_id", requestID,
				"error", err,
			)
		}
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "session opened",
		"request_id", requestID,
		"eri_user_id", req.EriUserID,
	)
	httputil.WriteJSON(w, http.StatusOK, &models.LoginResponse{
		Status:    models.StatusSuccess,
		SessionID: result.SessionID,
		ExpiresIn: int64(result.ExpiresIn.Seconds()),
	})
}

// HandleLogout ends the session named by the Authorization header, if any.
func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.auth.Logout(ctx, authmw.TokenFromRequest(r)); err != nil {
		h.logger.ErrorContext(ctx, "logout failed",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
	}
	httputil.WriteJSON(w, http.StatusOK, &models.LogoutResponse{Status: models.StatusLoggedOut})
}
