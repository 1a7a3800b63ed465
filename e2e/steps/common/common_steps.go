package common

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/cucumber/godog"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	GET(path string, headers map[string]string) error
	POSTRaw(path, body string) error
	GetResponseField(field string) (interface{}, error)
	GetLastStatus() int
	GetLastBody() []byte
	SetSignature(sig string)
	Remember(name, ref string)
}

// RegisterSteps registers generic request and assertion steps
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &commonSteps{tc: tc}

	// Requests
	ctx.Step(`^I GET "([^"]*)"$`, steps.get)
	ctx.Step(`^I POST raw body '([^']*)' to "([^"]*)"$`, steps.postRaw)
	ctx.Step(`^I sign requests with "([^"]*)"$`, steps.signWith)

	// Assertions
	ctx.Step(`^the response status should be (\d+)$`, steps.statusShouldBe)
	ctx.Step(`^the error code should be "([^"]*)"$`, steps.errorCodeShouldBe)
	ctx.Step(`^the response field "([^"]*)" should equal "([^"]*)"$`, steps.fieldShouldEqual)
	ctx.Step(`^the response field "([^"]*)" should equal number (-?\d+)$`, steps.fieldShouldEqualNumber)
	ctx.Step(`^the response field "([^"]*)" should be (true|false)$`, steps.fieldShouldBeBool)
	ctx.Step(`^the response field "([^"]*)" should match "([^"]*)"$`, steps.fieldShouldMatch)
	ctx.Step(`^the response field "([^"]*)" should start with the current year$`, steps.fieldShouldStartWithYear)
	ctx.Step(`^I remember the response field "([^"]*)" as "([^"]*)"$`, steps.rememberField)
}

type commonSteps struct {
	tc TestContext
}

func (s *commonSteps) get(ctx context.Context, path string) error {
	return s.tc.GET(path, nil)
}

func (s *commonSteps) postRaw(ctx context.Context, body, path string) error {
	return s.tc.POSTRaw(path, body)
}

func (s *commonSteps) signWith(ctx context.Context, sig string) error {
	s.tc.SetSignature(sig)
	return nil
}

func (s *commonSteps) statusShouldBe(ctx context.Context, expected int) error {
	if got := s.tc.GetLastStatus(); got != expected {
		return fmt.Errorf("expected status %d, got %d: %s", expected, got, s.tc.GetLastBody())
	}
	return nil
}

func (s *commonSteps) errorCodeShouldBe(ctx context.Context, code string) error {
	return s.fieldShouldEqual(ctx, "error", code)
}

func (s *commonSteps) fieldString(field string) (string, error) {
	v, err := s.tc.GetResponseField(field)
	if err != nil {
		return "", err
	}
	str, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("field %q is %T, not a string", field, v)
	}
	return str, nil
}

func (s *commonSteps) fieldShouldEqual(ctx context.Context, field, expected string) error {
	got, err := s.fieldString(field)
	if err != nil {
		return err
	}
	if got != expected {
		return fmt.Errorf("field %q: expected %q, got %q", field, expected, got)
	}
	return nil
}

func (s *commonSteps) fieldShouldEqualNumber(ctx context.Context, field string, expected int) error {
	v, err := s.tc.GetResponseField(field)
	if err != nil {
		return err
	}
	n, ok := v.(float64)
	if !ok || n != float64(expected) {
		return fmt.Errorf("field %q: expected %d, got %v", field, expected, v)
	}
	return nil
}

func (s *commonSteps) fieldShouldBeBool(ctx context.Context, field, expected string) error {
	v, err := s.tc.GetResponseField(field)
	if err != nil {
		return err
	}
	want, _ := strconv.ParseBool(expected)
	if b, ok := v.(bool); !ok || b != want {
		return fmt.Errorf("field %q: expected %s, got %v", field, expected, v)
	}
	return nil
}

func (s *commonSteps) fieldShouldMatch(ctx context.Context, field, pattern string) error {
	got, err := s.fieldString(field)
	if err != nil {
		return err
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return err
	}
	if !re.MatchString(got) {
		return fmt.Errorf("field %q: %q does not match %s", field, got, pattern)
	}
	return nil
}

func (s *commonSteps) fieldShouldStartWithYear(ctx context.Context, field string) error {
	got, err := s.fieldString(field)
	if err != nil {
		return err
	}
	year := strconv.Itoa(time.Now().Year())
	if !strings.HasPrefix(got, year) {
		return fmt.Errorf("field %q: %q does not start with %s", field, got, year)
	}
	return nil
}

func (s *commonSteps) rememberField(ctx context.Context, field, name string) error {
	got, err := s.fieldString(field)
	if err != nil {
		return err
	}
	s.tc.Remember(name, got)
	return nil
}
