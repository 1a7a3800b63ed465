package testutil

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestSignature is long enough to pass the default length verifier.
const TestSignature = "MOCK-DSC-SIGNATURE-0123456789ABCDEF"

// Seal wraps payload in the signed transport envelope used by every
// payload-bearing endpoint.
func Seal(t *testing.T, payload any) map[string]string {
	t.Helper()
	raw, err := json.Marshal(payload)
	require.NoError(t, err, "failed to marshal envelope payload")
	return map[string]string{
		"data":      base64.StdEncoding.EncodeToString(raw),
		"signature": TestSignature,
	}
}

// NewEnvelopeRequest builds a POST carrying payload inside an envelope and,
// when sessionID is non-empty, the bare session token.
func NewEnvelopeRequest(t *testing.T, path, sessionID string, payload any) *http.Request {
	t.Helper()
	req := NewJSONRequest(t, http.MethodPost, path, Seal(t, payload))
	if sessionID != "" {
		req.Header.Set("Authorization", sessionID)
	}
	return req
}
