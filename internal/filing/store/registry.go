package store

import (
	"context"
	"fmt"
	"sync"

	"erigateway/pkg/platform/sentinel"
)

// Error Contract:
// - Get and Update return ErrNotFound when the key is absent
// - PutIfAbsent returns ErrConflict when the key is taken
// - Update returns the callback's error unchanged and leaves the record as it was
//
// Registry is a keyed, process-lifetime table for one resource kind. Records
// are stored by value, so callers never share mutable state with the table.
type Registry[T any] struct {
	kind  string
	mu    sync.RWMutex
	items map[string]T
}

// NewRegistry creates an empty registry. kind names the resource in errors.
func NewRegistry[T any](kind string) *Registry[T] {
	return &Registry[T]{kind: kind, items: make(map[string]T)}
}

// Put stores record under key, replacing any existing record.
func (r *Registry[T]) Put(ctx context.Context, key string, record T) error {
	_, _, err := r.Swap(ctx, key, record)
	return err
}

// Swap stores record under key and returns the record it replaced, if any.
func (r *Registry[T]) Swap(_ context.Context, key string, record T) (previous T, replaced bool, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	previous, replaced = r.items[key]
	r.items[key] = record
	return previous, replaced, nil
}

// PutIfAbsent stores record only when key is unused.
func (r *Registry[T]) PutIfAbsent(_ context.Context, key string, record T) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.items[key]; exists {
		return fmt.Errorf("%s %s already exists: %w", r.kind, key, sentinel.ErrConflict)
	}
	r.items[key] = record
	return nil
}

func (r *Registry[T]) Get(_ context.Context, key string) (T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	record, ok := r.items[key]
	if !ok {
		var zero T
		return zero, fmt.Errorf("%s %s not found: %w", r.kind, key, sentinel.ErrNotFound)
	}
	return record, nil
}

func (r *Registry[T]) Exists(_ context.Context, key string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.items[key]
	return ok
}

// Update applies mutate to a copy of the record under the write lock and
// stores the result only if mutate succeeds. The lookup and the write are
// one atomic step.
func (r *Registry[T]) Update(_ context.Context, key string, mutate func(record *T) error) (T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	record, ok := r.items[key]
	if !ok {
		var zero T
		return zero, fmt.Errorf("%s %s not found: %w", r.kind, key, sentinel.ErrNotFound)
	}
	if err := mutate(&record); err != nil {
		var zero T
		return zero, err
	}
	r.items[key] = record
	return record, nil
}

func (r *Registry[T]) Count(_ context.Context) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items)
}
