package models

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "erigateway/pkg/domain-errors"
)

func TestVerificationModeIsValid(t *testing.T) {
	for _, m := range []VerificationMode{"DSC", "eVerify Later", "ITR-V"} {
		assert.True(t, m.IsValid(), string(m))
	}
	for _, m := range []VerificationMode{"", "dsc", "EVC", "eVerify later"} {
		assert.False(t, m.IsValid(), string(m))
	}
}

func TestDraftHasVerificationMode(t *testing.T) {
	d := &Draft{}
	assert.False(t, d.HasVerificationMode())
	d.VerificationMode = VerificationModeITRV
	assert.True(t, d.HasVerificationMode())
}

func TestAddClientRequestPANLength(t *testing.T) {
	for n := 0; n <= 15; n++ {
		req := AddClientRequest{PAN: strings.Repeat("A", n), AssessmentYear: "2024-25"}
		err := req.Validate()
		if n == PANLength {
			assert.NoError(t, err, "length %d", n)
			continue
		}
		require.Error(t, err, "length %d", n)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
		assert.Equal(t, "Invalid PAN format", dErrors.MessageOf(err))
	}
}

func TestAddClientRequestCountsCharacters(t *testing.T) {
	req := AddClientRequest{PAN: "ÀBCDE1234F", AssessmentYear: "2024-25"}
	assert.NoError(t, req.Validate())
}

func TestValidateITRRequest(t *testing.T) {
	base := func() ValidateITRRequest {
		return ValidateITRRequest{
			PAN:            "ABCDE1234F",
			AssessmentYear: "2024-25",
			ITRType:        "ITR-1",
			ITRData:        json.RawMessage(`{"personalInfo":{}}`),
		}
	}

	ok := base()
	require.NoError(t, ok.Validate())

	tests := []struct {
		name   string
		mutate func(r *ValidateITRRequest)
	}{
		{"missing itrType", func(r *ValidateITRRequest) { r.ITRType = "" }},
		{"missing itrData", func(r *ValidateITRRequest) { r.ITRData = nil }},
		{"itrData is an array", func(r *ValidateITRRequest) { r.ITRData = json.RawMessage(`[1,2]`) }},
		{"itrData is null", func(r *ValidateITRRequest) { r.ITRData = json.RawMessage(`null`) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := base()
			tt.mutate(&req)
			err := req.Validate()
			require.Error(t, err)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
		})
	}
}

func TestSetVerificationModeRequestChecksPresenceOnly(t *testing.T) {
	req := SetVerificationModeRequest{DraftID: "DRF_x", VerificationMode: "carrier pigeon"}
	assert.NoError(t, req.Validate())

	req.VerificationMode = ""
	assert.Error(t, req.Validate())
}

func TestSubmitITRRequestSignedDataOptional(t *testing.T) {
	req := SubmitITRRequest{DraftID: "DRF_x"}
	assert.NoError(t, req.Validate())
}

func TestValidationResponseOmitsEmptyFields(t *testing.T) {
	raw, err := json.Marshal(ValidateITRResponse{IsValid: true, ValidationID: "VAL_1"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"isValid":true,"validationId":"VAL_1"}`, string(raw))
}
