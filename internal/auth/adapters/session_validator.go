package adapters

import (
	"context"

	"erigateway/internal/auth/models"
	authmw "erigateway/pkg/platform/middleware/auth"
)

// sessionValidator is the interface that the auth service implements.
// Defined locally so the middleware package never imports auth internals.
type sessionValidator interface {
	ValidateSession(ctx context.Context, id string) (*models.Session, error)
}

// SessionValidator adapts the auth service to authmw.SessionValidator.
type SessionValidator struct {
	svc sessionValidator
}

// NewSessionValidator wraps the auth service.
func NewSessionValidator(svc sessionValidator) *SessionValidator {
	return &SessionValidator{svc: svc}
}

// ValidateSession resolves a bare token and maps the session to a principal.
func (a *SessionValidator) ValidateSession(ctx context.Context, sessionID string) (*authmw.Principal, error) {
	session, err := a.svc.ValidateSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return mapPrincipal(session), nil
}

func mapPrincipal(s *models.Session) *authmw.Principal {
	return &authmw.Principal{
		SessionRef: s.Ref(),
		ClientID:   s.ClientID,
		EriUserID:  s.EriUserID,
	}
}
