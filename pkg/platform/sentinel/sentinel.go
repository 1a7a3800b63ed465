package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores return these (optionally
// wrapped) so services can translate them into domain errors.
//
// - ErrNotFound: entity does not exist in store
// - ErrExpired: session has passed its expiry instant and was evicted
// - ErrConflict: key already present where an insert-only write was requested
var (
	ErrNotFound = errors.New("not found")
	ErrExpired  = errors.New("expired")
	ErrConflict = errors.New("conflict")
)
