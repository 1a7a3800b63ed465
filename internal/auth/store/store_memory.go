package store

import (
	"context"
	"sync"
	"time"

	"erigateway/internal/auth/models"
	"erigateway/pkg/platform/sentinel"
)

// InMemorySessionStore keeps sessions for the life of the process. Expiry is
// lazy: a session is evicted by the lookup that first finds it expired.
type InMemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*models.Session
}

// New creates an empty session store.
func New() *InMemorySessionStore {
	return &InMemorySessionStore{sessions: make(map[string]*models.Session)}
}

// Create stores a new session.
func (s *InMemorySessionStore) Create(_ context.Context, session *models.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.sessions[session.ID]; exists {
		return sentinel.ErrConflict
	}
	cp := *session
	s.sessions[session.ID] = &cp
	return nil
}

// FindActive returns the session if it is still valid at now. An expired
// session is deleted under the same lock and reported as sentinel.ErrExpired,
// so exactly one caller observes the expiry; later lookups see ErrNotFound.
func (s *InMemorySessionStore) FindActive(_ context.Context, id string, now time.Time) (*models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	if session.IsExpired(now) {
		delete(s.sessions, id)
		return nil, sentinel.ErrExpired
	}
	cp := *session
	return &cp, nil
}

// Delete removes a session. Deleting an absent session is not an error.
func (s *InMemorySessionStore) Delete(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, existed := s.sessions[id]
	delete(s.sessions, id)
	return existed, nil
}

// Count returns the number of stored sessions, including ones that have
// expired but not yet been looked up.
func (s *InMemorySessionStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions), nil
}
