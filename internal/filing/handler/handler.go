package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"erigateway/internal/envelope"
	"erigateway/internal/filing"
	"erigateway/internal/filing/models"
	dErrors "erigateway/pkg/domain-errors"
	"erigateway/pkg/platform/httputil"
	authmw "erigateway/pkg/platform/middleware/auth"
	"erigateway/pkg/requestcontext"
)

const (
	AddClientPath           = "/api/v1/client/add"
	PrefillPath             = "/api/v1/prefill/get"
	ValidatePath            = "/api/v1/itr/validate"
	SaveDraftPath           = "/api/v1/itr/save-draft"
	SetVerificationModePath = "/api/v1/verification/set-mode"
	SubmitPath              = "/api/v1/itr/submit"
	AcknowledgementPath     = "/api/v1/acknowledgement/get"
)

// Service defines the filing stages the handler drives.
type Service interface {
	AddClient(ctx context.Context, pan, assessmentYear string) (string, error)
	GetPrefill(ctx context.Context, pan, assessmentYear string) (*filing.Prefill, error)
	ValidateITR(ctx context.Context, pan, assessmentYear, itrType string, itrData json.RawMessage) (*models.ValidationResult, error)
	SaveDraft(ctx context.Context, validationID string) (string, error)
	SetVerificationMode(ctx context.Context, draftID string, mode models.VerificationMode) error
	SubmitITR(ctx context.Context, draftID, signedITRData string) (*models.Submission, error)
	GetAcknowledgement(ctx context.Context, ackNumber string) (*models.Acknowledgement, error)
}

// Handler serves the authenticated filing stages.
type Handler struct {
	logger   *slog.Logger
	filing   Service
	codec    *envelope.Codec
	sessions authmw.SessionValidator
}

// New creates a new filing Handler.
func New(
	svc Service,
	codec *envelope.Codec,
	sessions authmw.SessionValidator,
	logger *slog.Logger) *Handler {
	return &Handler{
		logger:   logger,
		filing:   svc,
		codec:    codec,
		sessions: sessions,
	}
}

// Register registers the filing routes. Each call is checked in order:
// envelope, then session, then the stage's own references.
func (h *Handler) Register(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(envelope.Require(h.codec, h.logger))
		r.Use(authmw.RequireSession(h.sessions, h.logger))

		r.Post(AddClientPath, h.HandleAddClient)
		r.Post(PrefillPath, h.HandleGetPrefill)
		r.Post(ValidatePath, h.HandleValidateITR)
		r.Post(SaveDraftPath, h.HandleSaveDraft)
		r.Post(SetVerificationModePath, h.HandleSetVerificationMode)
		r.Post(SubmitPath, h.HandleSubmitITR)
		r.Post(AcknowledgementPath, h.HandleGetAcknowledgement)
	})
}

func (h *Handler) HandleAddClient(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := envelope.DecodeRequest[models.AddClientRequest](w, r, h.logger)
	if !ok {
		return
	}

	ref, err := h.filing.AddClient(ctx, req.PAN, req.AssessmentYear)
	if err != nil {
		h.writeError(ctx, w, "add client", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, &models.AddClientResponse{
		Status:            models.StatusSuccess,
		ClientReferenceID: ref,
	})
}

func (h *Handler) HandleGetPrefill(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := envelope.DecodeRequest[models.PrefillRequest](w, r, h.logger)
	if !ok {
		return
	}

	prefill, err := h.filing.GetPrefill(ctx, req.PAN, req.AssessmentYear)
	if err != nil {
		h.writeError(ctx, w, "get prefill", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, prefill)
}

// HandleValidateITR reports rule findings as a normal 200 response.
func (h *Handler) HandleValidateITR(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := envelope.DecodeRequest[models.ValidateITRRequest](w, r, h.logger)
	if !ok {
		return
	}

	result, err := h.filing.ValidateITR(ctx, req.PAN, req.AssessmentYear, req.ITRType, req.ITRData)
	if err != nil {
		h.writeError(ctx, w, "validate itr", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, &models.ValidateITRResponse{
		IsValid:      result.Valid(),
		ValidationID: result.ValidationID,
		Errors:       result.Issues,
	})
}

func (h *Handler) HandleSaveDraft(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := envelope.DecodeRequest[models.SaveDraftRequest](w, r, h.logger)
	if !ok {
		return
	}

	draftID, err := h.filing.SaveDraft(ctx, req.ValidationID)
	if err != nil {
		h.writeError(ctx, w, "save draft", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, &models.SaveDraftResponse{
		Status:  models.StatusSaved,
		DraftID: draftID,
	})
}

func (h *Handler) HandleSetVerificationMode(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := envelope.DecodeRequest[models.SetVerificationModeRequest](w, r, h.logger)
	if !ok {
		return
	}

	if err := h.filing.SetVerificationMode(ctx, req.DraftID, req.VerificationMode); err != nil {
		h.writeError(ctx, w, "set verification mode", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, &models.SetVerificationModeResponse{
		Status: models.StatusVerificationModeSet,
	})
}

func (h *Handler) HandleSubmitITR(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := envelope.DecodeRequest[models.SubmitITRRequest](w, r, h.logger)
	if !ok {
		return
	}

	submission, err := h.filing.SubmitITR(ctx, req.DraftID, req.SignedITRData)
	if err != nil {
		h.writeError(ctx, w, "submit itr", err)
		return
	}
	h.logger.InfoContext(ctx, "return submitted",
		"request_id", requestcontext.RequestID(ctx),
		"acknowledgement_number", submission.AcknowledgementNumber,
	)
	httputil.WriteJSON(w, http.StatusOK, &models.SubmitITRResponse{
		Status:                submission.Status,
		AcknowledgementNumber: submission.AcknowledgementNumber,
		SubmissionDate:        submission.SubmittedAt.Format(time.RFC3339),
	})
}

func (h *Handler) HandleGetAcknowledgement(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := envelope.DecodeRequest[models.AcknowledgementRequest](w, r, h.logger)
	if !ok {
		return
	}

	ack, err := h.filing.GetAcknowledgement(ctx, req.AcknowledgementNumber)
	if err != nil {
		h.writeError(ctx, w, "get acknowledgement", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, &models.AcknowledgementResponse{
		Status:        models.StatusSuccess,
		PDFURL:        ack.PDFURL,
		ITRVAvailable: ack.ITRVAvailable,
	})
}

// writeError logs client mistakes at WARN and everything else at ERROR.
func (h *Handler) writeError(ctx context.Context, w http.ResponseWriter, stage string, err error) {
	args := []any{
		"request_id", requestcontext.RequestID(ctx),
		"session_ref", requestcontext.SessionRef(ctx),
		"error", err,
	}
	if dErrors.CodeOf(err) == dErrors.CodeInternal {
		h.logger.ErrorContext(ctx, stage+" failed", args...)
	} else {
		h.logger.WarnContext(ctx, stage+" rejected", args...)
	}
	httputil.WriteError(w, err)
}
