package audit

import "time"

// Action names a protocol step worth recording.
type Action string

const (
	ActionLogin                  Action = "login"
	ActionLoginRejected          Action = "auth_failed"
	ActionLogout                 Action = "logout"
	ActionSessionExpired         Action = "session_expired"
	ActionClientAdded            Action = "client_added"
	ActionClientRemapped         Action = "client_remapped"
	ActionPrefillFetched         Action = "prefill_fetched"
	ActionITRValidated           Action = "itr_validated"
	ActionITRValidationFailed    Action = "itr_validation_failed"
	ActionDraftSaved             Action = "draft_saved"
	ActionVerificationModeSet    Action = "verification_mode_set"
	ActionITRSubmitted           Action = "itr_submitted"
	ActionAcknowledgementFetched Action = "acknowledgement_fetched"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	Timestamp time.Time
	Action    Action
	// SessionRef identifies the session without exposing its token.
	SessionRef string
	EriUserID  string
	// Subject is the taxpayer PAN when the step concerns one.
	Subject string
	// Reference is the identifier the step created or resolved
	// (client reference, validation, draft or acknowledgement number).
	Reference string
	RequestID string
	Detail    string
}
