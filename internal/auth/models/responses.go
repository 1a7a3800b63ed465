package models

const (
	StatusSuccess   = "SUCCESS"
	StatusLoggedOut = "LOGGED_OUT"
)

type LoginResponse struct {
	Status    string `json:"status"`
	SessionID string `json:"sessionId"`
	ExpiresIn int64  `json:"expiresIn"`
}

type LogoutResponse struct {
	Status string `json:"status"`
}
