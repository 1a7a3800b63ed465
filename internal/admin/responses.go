package admin

import "time"

// AuditEventResponse is the HTTP response DTO for one audit event.
type AuditEventResponse struct {
	Timestamp  time.Time `json:"timestamp"`
	Action     string    `json:"action"`
	SessionRef string    `json:"session_ref,omitempty"`
	EriUserID  string    `json:"eri_user_id,omitempty"`
	Subject    string    `json:"subject,omitempty"`
	Reference  string    `json:"reference,omitempty"`
	RequestID  string    `json:"request_id,omitempty"`
	Detail     string    `json:"detail,omitempty"`
}

// AuditListResponse wraps the list of events for HTTP response.
type AuditListResponse struct {
	Events []AuditEventResponse `json:"events"`
	Total  int                  `json:"total"`
}
