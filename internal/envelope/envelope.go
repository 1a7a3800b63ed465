// Package envelope implements the signed request wrapper carried by every
// payload-bearing protocol call: {"data": base64(JSON), "signature": "..."}.
package envelope

import (
	"encoding/base64"
	"encoding/json"
	"io"

	dErrors "erigateway/pkg/domain-errors"
)

// MaxBodyBytes bounds how much of a request body is read as an envelope.
const MaxBodyBytes = 1 << 20

// Envelope is the transport wrapper.
type Envelope struct {
	Data      string `json:"data"`
	Signature string `json:"signature"`
}

// SignatureVerifier decides whether a signature is trusted. Implementations
// must be pure.
type SignatureVerifier interface {
	Verify(signature string) bool
}

// LengthVerifier is the mock trust policy: any signature longer than
// MinLength passes.
type LengthVerifier struct {
	MinLength int
}

func (v LengthVerifier) Verify(signature string) bool {
	return len(signature) > v.MinLength
}

// VerifierFunc adapts a function to SignatureVerifier.
type VerifierFunc func(signature string) bool

func (f VerifierFunc) Verify(signature string) bool {
	return f(signature)
}

// Codec verifies envelopes and unwraps their payload.
type Codec struct {
	verifier SignatureVerifier
}

// NewCodec builds a codec around verifier.
func NewCodec(verifier SignatureVerifier) *Codec {
	return &Codec{verifier: verifier}
}

// wireEnvelope tells an absent field apart from an empty one.
type wireEnvelope struct {
	Data      *string `json:"data"`
	Signature *string `json:"signature"`
}

// Read parses the outer envelope from r. Both fields must be present; a
// missing or null field is a malformed request, not a signature failure.
func Read(r io.Reader) (Envelope, error) {
	var wire wireEnvelope
	dec := json.NewDecoder(io.LimitReader(r, MaxBodyBytes))
	if err := dec.Decode(&wire); err != nil {
		return Envelope{}, dErrors.Wrap(err, dErrors.CodeBadRequest, "invalid request format")
	}
	if wire.Data == nil || wire.Signature == nil {
		return Envelope{}, dErrors.New(dErrors.CodeBadRequest, "invalid request format")
	}
	return Envelope{Data: *wire.Data, Signature: *wire.Signature}, nil
}

// Open checks the signature and returns the decoded JSON payload.
// A rejected signature is an auth failure; anything malformed is a bad request.
func (c *Codec) Open(env Envelope) (json.RawMessage, error) {
	if !c.verifier.Verify(env.Signature) {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "Invalid signature")
	}
	return DecodeData(env.Data)
}

// DecodeData base64-decodes data and checks that it holds a JSON value.
func DecodeData(data string) (json.RawMessage, error) {
	raw, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeBadRequest, "invalid request format")
	}
	if !json.Valid(raw) {
		return nil, dErrors.New(dErrors.CodeBadRequest, "invalid request format")
	}
	return json.RawMessage(raw), nil
}

// Decode unmarshals a payload into T.
func Decode[T any](payload json.RawMessage) (*T, error) {
	var v T
	if err := json.Unmarshal(payload, &v); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeBadRequest, "invalid request format")
	}
	return &v, nil
}
