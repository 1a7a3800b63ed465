package models

import (
	"encoding/json"
	"time"
)

// VerificationMode is how the taxpayer will verify a submitted return.
type VerificationMode string

const (
	VerificationModeDSC          VerificationMode = "DSC"
	VerificationModeEVerifyLater VerificationMode = "eVerify Later"
	VerificationModeITRV         VerificationMode = "ITR-V"
)

// IsValid reports whether m is one of the accepted modes.
func (m VerificationMode) IsValid() bool {
	switch m {
	case VerificationModeDSC, VerificationModeEVerifyLater, VerificationModeITRV:
		return true
	}
	return false
}

const SubmissionStatusSubmitted = "SUBMITTED"

// ClientMapping authorizes the ERI to act for a PAN. Keyed by PAN; a later
// add for the same PAN replaces it.
type ClientMapping struct {
	PAN               string
	ClientReferenceID string
	AssessmentYear    string
	AddedAt           time.Time
}

// Validation is a return that passed the rule engine.
type Validation struct {
	ID             string
	PAN            string
	AssessmentYear string
	ITRType        string
	ITRData        json.RawMessage
	ValidatedAt    time.Time
}

// Draft is a saved snapshot of a validation awaiting verification mode and
// submission.
type Draft struct {
	ID               string
	ValidationID     string
	Validation       Validation
	SavedAt          time.Time
	VerificationMode VerificationMode
}

// HasVerificationMode reports whether a mode has been attached.
func (d *Draft) HasVerificationMode() bool {
	return d.VerificationMode != ""
}

// Submission is a filed return keyed by its acknowledgement number.
type Submission struct {
	AcknowledgementNumber string
	DraftID               string
	Draft                 Draft
	SignedITRData         string
	SubmittedAt           time.Time
	Status                string
}

// Acknowledgement is what the portal returns for a filed return.
type Acknowledgement struct {
	AcknowledgementNumber string
	PDFURL                string
	ITRVAvailable         bool
}

// ValidationIssue is one rule engine finding.
type ValidationIssue struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ValidationResult is the outcome of running the rule engine. ValidationID is
// set only when Issues is empty.
type ValidationResult struct {
	ValidationID string
	Issues       []ValidationIssue
}

// Valid reports whether the rule engine found nothing.
func (r *ValidationResult) Valid() bool {
	return len(r.Issues) == 0
}

// Stats summarizes registry sizes for the health endpoint.
type Stats struct {
	TotalClients     int
	TotalSubmissions int
}
