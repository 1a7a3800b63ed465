package filing

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/cucumber/godog"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	POST(path string, body interface{}) error
	Recall(name string) (string, error)
}

// RegisterSteps registers filing-stage step definitions
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &filingSteps{tc: tc}

	ctx.Step(`^I add client "([^"]*)" for assessment year "([^"]*)"$`, steps.addClient)
	ctx.Step(`^I request prefill for "([^"]*)" and assessment year "([^"]*)"$`, steps.requestPrefill)
	ctx.Step(`^I validate an "([^"]*)" return for "([^"]*)" and assessment year "([^"]*)" with:$`, steps.validateReturn)
	ctx.Step(`^I save a draft from validation "([^"]*)"$`, steps.saveDraft)
	ctx.Step(`^I save a draft from validation id "([^"]*)"$`, steps.saveDraftByID)
	ctx.Step(`^I set verification mode "([^"]*)" on draft "([^"]*)"$`, steps.setVerificationMode)
	ctx.Step(`^I submit draft "([^"]*)"$`, steps.submitDraft)
	ctx.Step(`^I fetch acknowledgement "([^"]*)"$`, steps.fetchAcknowledgement)
}

type filingSteps struct {
	tc TestContext
}

func (s *filingSteps) addClient(ctx context.Context, pan, ay string) error {
	return s.tc.POST("/api/v1/client/add", map[string]interface{}{
		"pan":            pan,
		"assessmentYear": ay,
	})
}

func (s *filingSteps) requestPrefill(ctx context.Context, pan, ay string) error {
	return s.tc.POST("/api/v1/prefill/get", map[string]interface{}{
		"pan":            pan,
		"assessmentYear": ay,
	})
}

func (s *filingSteps) validateReturn(ctx context.Context, itrType, pan, ay string, doc *godog.DocString) error {
	var itrData json.RawMessage
	if err := json.Unmarshal([]byte(doc.Content), &itrData); err != nil {
		return fmt.Errorf("itrData doc string: %w", err)
	}
	return s.tc.POST("/api/v1/itr/validate", map[string]interface{}{
		"pan":            pan,
		"assessmentYear": ay,
		"itrType":        itrType,
		"itrData":        itrData,
	})
}

func (s *filingSteps) saveDraft(ctx context.Context, name string) error {
	id, err := s.tc.Recall(name)
	if err != nil {
		return err
	}
	return s.saveDraftByID(ctx, id)
}

func (s *filingSteps) saveDraftByID(ctx context.Context, id string) error {
	return s.tc.POST("/api/v1/itr/save-draft", map[string]interface{}{"validationId": id})
}

func (s *filingSteps) setVerificationMode(ctx context.Context, mode, name string) error {
	id, err := s.tc.Recall(name)
	if err != nil {
		return err
	}
	return s.tc.POST("/api/v1/verification/set-mode", map[string]interface{}{
		"draftId":          id,
		"verificationMode": mode,
	})
}

func (s *filingSteps) submitDraft(ctx context.Context, name string) error {
	id, err := s.tc.Recall(name)
	if err != nil {
		return err
	}
	return s.tc.POST("/api/v1/itr/submit", map[string]interface{}{"draftId": id})
}

func (s *filingSteps) fetchAcknowledgement(ctx context.Context, name string) error {
	ack, err := s.tc.Recall(name)
	if err != nil {
		return err
	}
	return s.tc.POST("/api/v1/acknowledgement/get", map[string]interface{}{"acknowledgementNumber": ack})
}
