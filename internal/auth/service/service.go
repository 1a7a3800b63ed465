package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"log/slog"
	"time"

	"erigateway/internal/audit"
	"erigateway/internal/auth/models"
	"erigateway/internal/platform/metrics"
	"erigateway/pkg/attrs"
	dErrors "erigateway/pkg/domain-errors"
	"erigateway/pkg/platform/sentinel"
	"erigateway/pkg/requestcontext"
)

const sessionTokenBytes = 32

type SessionStore interface {
	Create(ctx context.Context, session *models.Session) error
	FindActive(ctx context.Context, id string, now time.Time) (*models.Session, error)
	Delete(ctx context.Context, id string) (bool, error)
	Count(ctx context.Context) (int, error)
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Config holds the login policy.
type Config struct {
	TestClientID string
	SessionTTL   time.Duration
}

// Service issues, checks and ends ERI sessions.
type Service struct {
	sessions       SessionStore
	cfg            Config
	logger         *slog.Logger
	auditPublisher AuditPublisher
	metrics        *metrics.Metrics
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

// New constructs a Service.
func New(sessions SessionStore, cfg Config, opts ...Option) *Service {
	s := &Service{sessions: sessions, cfg: cfg}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Login checks the client id and opens a session for the ERI user.
func (s *Service) Login(ctx context.Context, creds models.Credentials) (*models.LoginResult, error) {
	if creds.ClientID != s.cfg.TestClientID {
		s.incrementAuthFailures()
		s.logAudit(ctx, audit.ActionLoginRejected,
			"eri_user_id", creds.EriUserID,
			"client_id", creds.ClientID,
		)
		return nil, dErrors.New(dErrors.CodeUnauthorized, "Invalid credentials")
	}

	token, err := newSessionToken()
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to generate session id")
	}

	now := requestcontext.Now(ctx)
	session := &models.Session{
		ID:        token,
		ClientID:  creds.ClientID,
		EriUserID: creds.EriUserID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.cfg.SessionTTL),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create session")
	}

	s.logAudit(ctx, audit.ActionLogin,
		"session_ref", session.Ref(),
		"eri_user_id", session.EriUserID,
	)
	s.incrementSessionsCreated()

	return &models.LoginResult{SessionID: session.ID, ExpiresIn: s.cfg.SessionTTL}, nil
}

// ValidateSession returns the live session for id. Unknown and expired
// sessions are reported as unauthorized.
func (s *Service) ValidateSession(ctx context.Context, id string) (*models.Session, error) {
	if id == "" {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "session id is required")
	}
	session, err := s.sessions.FindActive(ctx, id, requestcontext.Now(ctx))
	switch {
	case err == nil:
		return session, nil
	case errors.Is(err, sentinel.ErrExpired):
		s.incrementSessionsExpired()
		s.logAudit(ctx, audit.ActionSessionExpired, "session_ref", models.SessionRef(id))
		return nil, dErrors.Wrap(err, dErrors.CodeUnauthorized, "session expired")
	case errors.Is(err, sentinel.ErrNotFound):
		return nil, dErrors.Wrap(err, dErrors.CodeUnauthorized, "session not found")
	default:
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load session")
	}
}

// Verify reports whether id names a live session.
func (s *Service) Verify(ctx context.Context, id string) bool {
	_, err := s.ValidateSession(ctx, id)
	return err == nil
}

// Logout removes the session. It succeeds whether or not the session exists.
func (s *Service) Logout(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	existed, err := s.sessions.Delete(ctx, id)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete session")
	}
	if existed {
		s.logAudit(ctx, audit.ActionLogout, "session_ref", models.SessionRef(id))
	}
	return nil
}

// ActiveCount returns the number of stored sessions.
func (s *Service) ActiveCount(ctx context.Context) (int, error) {
	n, err := s.sessions.Count(ctx)
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "failed to count sessions")
	}
	return n, nil
}

func newSessionToken() (string, error) {
	b := make([]byte, sessionTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
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
		Action:     action,
		SessionRef: attrs.ExtractString(attributes, "session_ref"),
		EriUserID:  attrs.ExtractString(attributes, "eri_user_id"),
	})
}

func (s *Service) incrementSessionsCreated() {
	if s.metrics != nil {
		s.metrics.IncrementSessionsCreated()
	}
}

func (s *Service) incrementSessionsExpired() {
	if s.metrics != nil {
		s.metrics.IncrementSessionsExpired()
	}
}

func (s *Service) incrementAuthFailures() {
	if s.metrics != nil {
		s.metrics.IncrementAuthFailures()
	}
}
