package models

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// sessionRefLen is the number of hex characters kept from the token digest.
const sessionRefLen = 8

// Session is an authenticated ERI session. It is created by login, checked by
// every authenticated call and removed by logout or on expiry detection.
type Session struct {
	ID        string
	ClientID  string
	EriUserID string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// IsExpired reports whether the session is no longer valid at now.
// A session is invalid from its expiry instant onwards.
func (s *Session) IsExpired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// Ref returns the loggable reference for this session.
func (s *Session) Ref() string {
	return SessionRef(s.ID)
}

// SessionRef derives a short stable reference from a session token for logs,
// spans and audit records. The token is the bearer credential, so only the
// reference may leave the session store.
func SessionRef(token string) string {
	if token == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])[:sessionRefLen]
}

// Credentials is the login payload. Only ClientID is checked against the
// configured test client.
type Credentials struct {
	ClientID     string
	ClientSecret string
	EriUserID    string
	EriPassword  string
}

// LoginResult is returned by a successful login.
type LoginResult struct {
	SessionID string
	ExpiresIn time.Duration
}
