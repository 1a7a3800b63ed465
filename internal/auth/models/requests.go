package models

import (
	"strings"

	dErrors "erigateway/pkg/domain-errors"
)

// LoginRequest is the decoded payload of the login envelope.
type LoginRequest struct {
	ClientID     string `json:"clientId"`
	ClientSecret string `json:"clientSecret"`
	EriUserID    string `json:"eriUserId"`
	EriPassword  string `json:"eriPassword"`
}

func (r *LoginRequest) Validate() error {
	required := []struct {
		name  string
		value string
	}{
		{"clientId", r.ClientID},
		{"clientSecret", r.ClientSecret},
		{"eriUserId", r.EriUserID},
		{"eriPassword", r.EriPassword},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return dErrors.New(dErrors.CodeValidation, f.name+" is required")
		}
	}
	return nil
}

func (r *LoginRequest) Credentials() Credentials {
	return Credentials{
		ClientID:     r.ClientID,
		ClientSecret: r.ClientSecret,
		EriUserID:    r.EriUserID,
		EriPassword:  r.EriPassword,
	}
}
