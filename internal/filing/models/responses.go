package models

const (
	StatusSuccess             = "SUCCESS"
	StatusSaved               = "SAVED"
	StatusVerificationModeSet = "VERIFICATION_MODE_SET"
)

type AddClientResponse struct {
	Status            string `json:"status"`
	ClientReferenceID string `json:"clientReferenceId"`
}

type ValidateITRResponse struct {
	IsValid      bool              `json:"isValid"`
	ValidationID string            `json:"validationId,omitempty"`
	Errors       []ValidationIssue `json:"errors,omitempty"`
}

type SaveDraftResponse struct {
	Status  string `json:"status"`
	DraftID string `json:"draftId"`
}

type SetVerificationModeResponse struct {
	Status string `json:"status"`
}

type SubmitITRResponse struct {
	Status                string `json:"status"`
	AcknowledgementNumber string `json:"acknowledgementNumber"`
	SubmissionDate        string `json:"submissionDate"`
}

type AcknowledgementResponse struct {
	Status        string `json:"status"`
	PDFURL        string `json:"pdfUrl"`
	ITRVAvailable bool   `json:"itrVAvailable"`
}
