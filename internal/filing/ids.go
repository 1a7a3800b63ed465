package filing

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"math/big"
	"time"
)

const (
	ClientReferencePrefix = "CLT_"
	ValidationPrefix      = "VAL_"
	DraftPrefix           = "DRF_"
)

var ackSuffixBound = big.NewInt(10_000_000_000)

func token(prefix string, n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}
	return prefix + hex.EncodeToString(b), nil
}

// NewClientReferenceID returns CLT_ followed by 16 hex characters.
func NewClientReferenceID() (string, error) {
	return token(ClientReferencePrefix, 8)
}

// NewValidationID returns VAL_ followed by 32 hex characters.
func NewValidationID() (string, error) {
	return token(ValidationPrefix, 16)
}

// NewDraftID returns DRF_ followed by 32 hex characters.
func NewDraftID() (string, error) {
	return token(DraftPrefix, 16)
}

// NewAcknowledgementNumber returns the 14-digit acknowledgement number: the
// four-digit year of now followed by a zero-padded random ten-digit suffix.
func NewAcknowledgementNumber(now time.Time) (string, error) {
	n, err := rand.Int(rand.Reader, ackSuffixBound)
	if err != nil {
		return "", fmt.Errorf("draw acknowledgement suffix: %w", err)
	}
	return fmt.Sprintf("%04d%010d", now.Year(), n.Int64()), nil
}
