package service

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"erigateway/internal/audit"
	"erigateway/internal/filing"
	"erigateway/internal/filing/models"
	"erigateway/internal/platform/metrics"
	"erigateway/pkg/attrs"
	dErrors "erigateway/pkg/domain-errors"
	"erigateway/pkg/platform/sentinel"
	"erigateway/pkg/requestcontext"
)

const tracerName = "erigateway/filing"

// Stage names used for metrics and spans.
const (
	StageAddClient       = "add_client"
	StagePrefill         = "prefill"
	StageValidate        = "validate"
	StageSaveDraft       = "save_draft"
	StageSetMode         = "set_mode"
	StageSubmit          = "submit"
	StageAcknowledgement = "acknowledgement"
)

// Registry is a keyed, internally synchronized resource table.
type Registry[T any] interface {
	Put(ctx context.Context, key string, record T) error
	Swap(ctx context.Context, key string, record T) (T, bool, error)
	PutIfAbsent(ctx context.Context, key string, record T) error
	Get(ctx context.Context, key string) (T, error)
	Exists(ctx context.Context, key string) bool
	Update(ctx context.Context, key string, mutate func(record *T) error) (T, error)
	Count(ctx context.Context) int
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Stores are the four resource registries, each owned by one Service.
type Stores struct {
	Clients     Registry[models.ClientMapping]
	Validations Registry[models.Validation]
	Drafts      Registry[models.Draft]
	Submissions Registry[models.Submission]
}

// Config holds filing settings.
type Config struct {
	// PortalBaseURL prefixes acknowledgement download links.
	PortalBaseURL string
}

// Service runs the ordered filing stages. Every stage checks that the
// identifiers it references resolve before it changes anything.
type Service struct {
	stores         Stores
	cfg            Config
	rules          *filing.RuleEngine
	ackNumber      func(now time.Time) (string, error)
	logger         *slog.Logger
	auditPublisher AuditPublisher
	metrics        *metrics.Metrics
	tracer         trace.Tracer
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(s *Service) {
		s.auditPublisher = publisher
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithRuleEngine replaces the default return rules.
func WithRuleEngine(engine *filing.RuleEngine) Option {
	return func(s *Service) {
		s.rules = engine
	}
}

// WithAcknowledgementSource replaces acknowledgement number generation.
func WithAcknowledgementSource(fn func(now time.Time) (string, error)) Option {
	return func(s *Service) {
		s.ackNumber = fn
	}
}

// New constructs a Service.
func New(stores Stores, cfg Config, opts ...Option) *Service {
	s := &Service{
		stores:    stores,
		cfg:       cfg,
		rules:     filing.NewRuleEngine(),
		ackNumber: filing.NewAcknowledgementNumber,
		tracer:    otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AddClient maps pan to a fresh client reference. A second add for the same
// PAN replaces the earlier mapping.
func (s *Service) AddClient(ctx context.Context, pan, assessmentYear string) (ref string, err error) {
	ctx, end := s.startStage(ctx, StageAddClient)
	defer func() { end(err) }()

	ref, err = filing.NewClientReferenceID()
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to generate client reference")
	}
	mapping := models.ClientMapping{
		PAN:               pan,
		ClientReferenceID: ref,
		AssessmentYear:    assessmentYear,
		AddedAt:           requestcontext.Now(ctx),
	}
	previous, replaced, err := s.stores.Clients.Swap(ctx, pan, mapping)
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to store client mapping")
	}
	if replaced {
		if s.logger != nil {
			s.logger.WarnContext(ctx, "client mapping overwritten",
				"request_id", requestcontext.RequestID(ctx),
				"previous_reference", previous.ClientReferenceID,
				"reference", ref,
			)
		}
		s.logAudit(ctx, audit.ActionClientRemapped, "pan", pan, "reference", ref,
			"detail", "replaces "+previous.ClientReferenceID)
	}
	s.logAudit(ctx, audit.ActionClientAdded, "pan", pan, "reference", ref)
	return ref, nil
}

// GetPrefill returns the synthetic prefill for a PAN that has been added.
// It changes nothing.
func (s *Service) GetPrefill(ctx context.Context, pan, assessmentYear string) (prefill *filing.Prefill, err error) {
	ctx, end := s.startStage(ctx, StagePrefill)
	defer func() { end(err) }()

	if !s.stores.Clients.Exists(ctx, pan) {
		return nil, dErrors.New(dErrors.CodeNotFound, "Client not added. Call add_client first")
	}
	s.logAudit(ctx, audit.ActionPrefillFetched, "pan", pan)
	return filing.GeneratePrefill(pan, assessmentYear), nil
}

// ValidateITR runs the rule engine. A clean return is stored and its id
// returned; otherwise the findings are returned and nothing is stored.
func (s *Service) ValidateITR(ctx context.Context, pan, assessmentYear, itrType string, itrData json.RawMessage) (result *models.ValidationResult, err error) {
	ctx, end := s.startStage(ctx, StageValidate)
	defer func() { end(err) }()

	issues, err := s.rules.Evaluate(itrType, itrData)
	if err != nil {
		return nil, err
	}
	if len(issues) > 0 {
		found := make([]string, 0, len(issues))
		for _, issue := range issues {
			found = append(found, issue.Code)
			s.recordValidationError(issue.Code)
		}
		s.logAudit(ctx, audit.ActionITRValidationFailed, "pan", pan,
			"detail", strings.Join(found, ","))
		return &models.ValidationResult{Issues: issues}, nil
	}

	id, err := filing.NewValidationID()
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to generate validation id")
	}
	validation := models.Validation{
		ID:             id,
		PAN:            pan,
		AssessmentYear: assessmentYear,
		ITRType:        itrType,
		ITRData:        itrData,
		ValidatedAt:    requestcontext.Now(ctx),
	}
	if err := s.stores.Validations.Put(ctx, id, validation); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to store validation")
	}
	s.logAudit(ctx, audit.ActionITRValidated, "pan", pan, "reference", id)
	return &models.ValidationResult{ValidationID: id}, nil
}

// SaveDraft snapshots a validation into a new draft.
func (s *Service) SaveDraft(ctx context.Context, validationID string) (id string, err error) {
	ctx, end := s.startStage(ctx, StageSaveDraft)
	defer func() { end(err) }()

	validation, err := s.stores.Validations.Get(ctx, validationID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return "", dErrors.Wrap(err, dErrors.CodeNotFound, "Invalid validation ID")
		}
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to load validation")
	}

	id, err = filing.NewDraftID()
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to generate draft id")
	}
	draft := models.Draft{
		ID:           id,
		ValidationID: validationID,
		Validation:   validation,
		SavedAt:      requestcontext.Now(ctx),
	}
	if err := s.stores.Drafts.Put(ctx, id, draft); err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to store draft")
	}
	s.logAudit(ctx, audit.ActionDraftSaved, "pan", validation.PAN, "reference", id)
	return id, nil
}

// SetVerificationMode attaches mode to an existing draft. The draft lookup,
// the mode check and the write happen under one registry lock.
func (s *Service) SetVerificationMode(ctx context.Context, draftID string, mode models.VerificationMode) (err error) {
	ctx, end := s.startStage(ctx, StageSetMode)
	defer func() { end(err) }()

	draft, err := s.stores.Drafts.Update(ctx, draftID, func(d *models.Draft) error {
		if !mode.IsValid() {
			return dErrors.New(dErrors.CodeValidation, "Invalid verification mode")
		}
		d.VerificationMode = mode
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, sentinel.ErrNotFound):
			return dErrors.Wrap(err, dErrors.CodeNotFound, "Invalid draft ID")
		case dErrors.HasCode(err, dErrors.CodeValidation):
			return err
		default:
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to update draft")
		}
	}
	s.logAudit(ctx, audit.ActionVerificationModeSet, "pan", draft.Validation.PAN,
		"reference", draftID, "detail", string(mode))
	return nil
}

// SubmitITR files a draft that has a verification mode and returns the
// stored submission.
func (s *Service) SubmitITR(ctx context.Context, draftID, signedITRData string) (submission *models.Submission, err error) {
	ctx, end := s.startStage(ctx, StageSubmit)
	defer func() { end(err) }()

	draft, err := s.stores.Drafts.Get(ctx, draftID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.Wrap(err, dErrors.CodeNotFound, "Invalid draft ID")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load draft")
	}
	if !draft.HasVerificationMode() {
		return nil, dErrors.New(dErrors.CodePreconditionFailed, "Verification mode not set")
	}

	now := requestcontext.Now(ctx)
	ack, err := s.ackNumber(now)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to generate acknowledgement number")
	}
	submission = &models.Submission{
		AcknowledgementNumber: ack,
		DraftID:               draftID,
		Draft:                 draft,
		SignedITRData:         signedITRData,
		SubmittedAt:           now,
		Status:                models.SubmissionStatusSubmitted,
	}
	if err := s.stores.Submissions.PutIfAbsent(ctx, ack, *submission); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to store submission")
	}

	s.incrementSubmissions()
	s.logAudit(ctx, audit.ActionITRSubmitted, "pan", draft.Validation.PAN, "reference", ack)
	return submission, nil
}

// GetAcknowledgement returns the download link for a filed return.
func (s *Service) GetAcknowledgement(ctx context.Context, ackNumber string) (ack *models.Acknowledgement, err error) {
	ctx, end := s.startStage(ctx, StageAcknowledgement)
	defer func() { end(err) }()

	submission, err := s.stores.Submissions.Get(ctx, ackNumber)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.Wrap(err, dErrors.CodeNotFound, "Acknowledgement not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load submission")
	}
	s.logAudit(ctx, audit.ActionAcknowledgementFetched,
		"pan", submission.Draft.Validation.PAN, "reference", ackNumber)
	return &models.Acknowledgement{
		AcknowledgementNumber: ackNumber,
		PDFURL:                strings.TrimRight(s.cfg.PortalBaseURL, "/") + "/" + ackNumber + "/download",
		ITRVAvailable:         true,
	}, nil
}

// Stats returns registry sizes.
func (s *Service) Stats(ctx context.Context) models.Stats {
	return models.Stats{
		TotalClients:     s.stores.Clients.Count(ctx),
		TotalSubmissions: s.stores.Submissions.Count(ctx),
	}
}

// startStage opens a span for stage. The returned func records the outcome
// on the span and in metrics, then ends the span.
func (s *Service) startStage(ctx context.Context, stage string) (context.Context, func(error)) {
	ctx, span := s.tracer.Start(ctx, "filing."+stage,
		trace.WithAttributes(attribute.String("eri.stage", stage)))
	return ctx, func(err error) {
		outcome := "success"
		if err != nil {
			outcome = string(dErrors.CodeOf(err))
			span.RecordError(err)
			span.SetStatus(codes.Error, dErrors.MessageOf(err))
		}
		s.recordStage(stage, outcome)
		span.End()
	}
}

func (s *Service) logAudit(ctx context.Context, action audit.Action, attributes ...any) {
	if requestID := requestcontext.RequestID(ctx); requestID != "" {
		attributes = append(attributes, "request_id", requestID)
	}
	args := append(attributes, "event", string(action), "log_type", "audit")
	if s.logger != nil {
		s.logger.InfoContext(ctx, string(action), args...)
	}
	if s.auditPublisher == nil {
		return
	}
	_ = s.auditPublisher.Emit(ctx, audit.Event{
		Action:    action,
		Subject:   attrs.ExtractString(attributes, "pan"),
		Reference: attrs.ExtractString(attributes, "reference"),
		Detail:    attrs.ExtractString(attributes, "detail"),
	})
}

func (s *Service) recordStage(stage, outcome string) {
	if s.metrics != nil {
		s.metrics.RecordStage(stage, outcome)
	}
}

func (s *Service) recordValidationError(code string) {
	if s.metrics != nil {
		s.metrics.RecordValidationError(code)
	}
}

func (s *Service) incrementSubmissions() {
	if s.metrics != nil {
		s.metrics.IncrementSubmissions()
	}
}
