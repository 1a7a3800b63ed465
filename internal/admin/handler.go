// Package admin exposes operator-only views over in-process state.
package admin

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"erigateway/internal/audit"
	dErrors "erigateway/pkg/domain-errors"
	"erigateway/pkg/platform/httputil"
	adminmw "erigateway/pkg/platform/middleware/admin"
	"erigateway/pkg/requestcontext"
)

const AuditPath = "/admin/audit"

// AuditReader lists recorded audit events.
type AuditReader interface {
	ListAll(ctx context.Context) ([]audit.Event, error)
	ListBySession(ctx context.Context, sessionRef string) ([]audit.Event, error)
}

// Handler serves the audit trail to operators.
type Handler struct {
	logger     *slog.Logger
	events     AuditReader
	adminToken string
}

func New(events AuditReader, adminToken string, logger *slog.Logger) *Handler {
	return &Handler{logger: logger, events: events, adminToken: adminToken}
}

// Register mounts the admin routes behind the admin token.
func (h *Handler) Register(r chi.Router) {
	r.With(adminmw.RequireAdminToken(h.adminToken, h.logger)).Get(AuditPath, h.HandleListAudit)
}

// HandleListAudit lists events, optionally filtered by ?session_ref=.
func (h *Handler) HandleListAudit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var (
		events []audit.Event
		err    error
	)
	if sessionRef := r.URL.Query().Get("session_ref"); sessionRef != "" {
		events, err = h.events.ListBySession(ctx, sessionRef)
	} else {
		events, err = h.events.ListAll(ctx)
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list audit events",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list audit events"))
		return
	}

	resp := AuditListResponse{Events: make([]AuditEventResponse, 0, len(events)), Total: len(events)}
	for _, e := range events {
		resp.Events = append(resp.Events, toResponse(e))
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

func toResponse(e audit.Event) AuditEventResponse {
	return AuditEventResponse{
		Timestamp:  e.Timestamp,
		Action:     string(e.Action),
		SessionRef: e.SessionRef,
		EriUserID:  e.EriUserID,
		Subject:    e.Subject,
		Reference:  e.Reference,
		RequestID:  e.RequestID,
		Detail:     e.Detail,
	}
}
