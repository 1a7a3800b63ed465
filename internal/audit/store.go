package audit

import (
	"context"
	"sync"
)

// DefaultCapacity bounds the in-memory trail when no capacity is configured.
const DefaultCapacity = 10000

// Store persists audit events.
type Store interface {
	Append(ctx context.Context, event Event) error
}

// InMemoryStore keeps the most recent events in a fixed-size ring. Once full,
// each append overwrites the oldest event.
type InMemoryStore struct {
	mu     sync.RWMutex
	events []Event
	start  int
	size   int
}

// NewInMemoryStore builds a store holding at most capacity events. A
// non-positive capacity selects DefaultCapacity.
func NewInMemoryStore(capacity int) *InMemoryStore {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &InMemoryStore{events: make([]Event, capacity)}
}

func (s *InMemoryStore) Append(_ context.Context, event Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	capacity := len(s.events)
	if s.size < capacity {
		s.events[(s.start+s.size)%capacity] = event
		s.size++
		return nil
	}
	s.events[s.start] = event
	s.start = (s.start + 1) % capacity
	return nil
}

// ListAll returns a copy of the retained events in emission order.
func (s *InMemoryStore) ListAll(_ context.Context) ([]Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Event, 0, s.size)
	s.each(func(e Event) {
		out = append(out, e)
	})
	return out, nil
}

// ListBySession returns the retained events recorded under one session
// reference.
func (s *InMemoryStore) ListBySession(_ context.Context, sessionRef string) ([]Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Event
	s.each(func(e Event) {
		if e.SessionRef == sessionRef {
			out = append(out, e)
		}
	})
	return out, nil
}

// each visits events oldest first. Must be called while holding s.mu.
func (s *InMemoryStore) each(fn func(Event)) {
	capacity := len(s.events)
	for i := range s.size {
		fn(s.events[(s.start+i)%capacity])
	}
}
