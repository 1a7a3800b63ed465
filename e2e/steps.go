package e2e

import (
	"github.com/cucumber/godog"

	"erigateway/e2e/steps/auth"
	"erigateway/e2e/steps/common"
	"erigateway/e2e/steps/filing"
)

// RegisterSteps registers all step definitions from modular packages
func RegisterSteps(ctx *godog.ScenarioContext, tc *TestContext) {
	// Generic requests and assertions
	common.RegisterSteps(ctx, tc)

	// Login and logout
	auth.RegisterSteps(ctx, tc)

	// Filing stages
	filing.RegisterSteps(ctx, tc)
}
