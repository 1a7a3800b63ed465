package auth

import (
	"context"
	"fmt"

	"github.com/cucumber/godog"
)

const (
	testClientID     = "ERI_TEST_CLIENT"
	testClientSecret = "test_secret_123"
	testEriUserID    = "test_user"
	testEriPassword  = "test_pass"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	POST(path string, body interface{}) error
	POSTRaw(path, body string) error
	GetResponseField(field string) (interface{}, error)
	GetLastStatus() int
	GetSessionID() string
	SetSessionID(id string)
}

// RegisterSteps registers login and logout step definitions
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &authSteps{tc: tc}

	ctx.Step(`^I am logged in as the test client$`, steps.loginAsTestClient)
	ctx.Step(`^I log in with client id "([^"]*)"$`, steps.loginWithClientID)
	ctx.Step(`^I use session "([^"]*)"$`, steps.useSession)
	ctx.Step(`^I log out$`, steps.logout)
}

type authSteps struct {
	tc TestContext
}

func (s *authSteps) loginAsTestClient(ctx context.Context) error {
	if err := s.loginWithClientID(ctx, testClientID); err != nil {
		return err
	}
	if status := s.tc.GetLastStatus(); status != 200 {
		return fmt.Errorf("login failed with status %d", status)
	}
	sessionID, err := s.tc.GetResponseField("sessionId")
	if err != nil {
		return err
	}
	s.tc.SetSessionID(sessionID.(string))
	return nil
}

func (s *authSteps) loginWithClientID(ctx context.Context, clientID string) error {
	return s.tc.POST("/api/v1/auth/login", map[string]interface{}{
		"clientId":     clientID,
		"clientSecret": testClientSecret,
		"eriUserId":    testEriUserID,
		"eriPassword":  testEriPassword,
	})
}

func (s *authSteps) useSession(ctx context.Context, sessionID string) error {
	s.tc.SetSessionID(sessionID)
	return nil
}

func (s *authSteps) logout(ctx context.Context) error {
	return s.tc.POSTRaw("/api/v1/auth/logout", "")
}
