package models

import (
	"bytes"
	"encoding/json"
	"strings"
	"unicode/utf8"

	dErrors "erigateway/pkg/domain-errors"
)

// PANLength is the exact length of a Permanent Account Number.
const PANLength = 10

func required(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return dErrors.New(dErrors.CodeValidation, name+" is required")
	}
	return nil
}

type AddClientRequest struct {
	PAN            string `json:"pan"`
	AssessmentYear string `json:"assessmentYear"`
}

func (r *AddClientRequest) Validate() error {
	if utf8.RuneCountInString(r.PAN) != PANLength {
		return dErrors.New(dErrors.CodeValidation, "Invalid PAN format")
	}
	return required("assessmentYear", r.AssessmentYear)
}

type PrefillRequest struct {
	PAN            string `json:"pan"`
	AssessmentYear string `json:"assessmentYear"`
}

func (r *PrefillRequest) Validate() error {
	if err := required("pan", r.PAN); err != nil {
		return err
	}
	return required("assessmentYear", r.AssessmentYear)
}

type ValidateITRRequest struct {
	PAN            string          `json:"pan"`
	AssessmentYear string          `json:"assessmentYear"`
	ITRType        string          `json:"itrType"`
	ITRData        json.RawMessage `json:"itrData"`
}

func (r *ValidateITRRequest) Validate() error {
	for _, f := range []struct{ name, value string }{
		{"pan", r.PAN},
		{"assessmentYear", r.AssessmentYear},
		{"itrType", r.ITRType},
	} {
		if err := required(f.name, f.value); err != nil {
			return err
		}
	}
	data := bytes.TrimSpace(r.ITRData)
	if len(data) == 0 || data[0] != '{' {
		return dErrors.New(dErrors.CodeValidation, "itrData must be an object")
	}
	return nil
}

type SaveDraftRequest struct {
	ValidationID string `json:"validationId"`
}

func (r *SaveDraftRequest) Validate() error {
	return required("validationId", r.ValidationID)
}

type SetVerificationModeRequest struct {
	DraftID          string           `json:"draftId"`
	VerificationMode VerificationMode `json:"verificationMode"`
}

// Validate checks presence only; the mode value is checked after the draft
// resolves so an unknown draft is reported first.
func (r *SetVerificationModeRequest) Validate() error {
	if err := required("draftId", r.DraftID); err != nil {
		return err
	}
	return required("verificationMode", string(r.VerificationMode))
}

type SubmitITRRequest struct {
	DraftID       string `json:"draftId"`
	SignedITRData string `json:"signedItrData,omitempty"`
}

func (r *SubmitITRRequest) Validate() error {
	return required("draftId", r.DraftID)
}

type AcknowledgementRequest struct {
	AcknowledgementNumber string `json:"acknowledgementNumber"`
}

func (r *AcknowledgementRequest) Validate() error {
	return required("acknowledgementNumber", r.AcknowledgementNumber)
}
