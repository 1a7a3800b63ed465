// Package filing holds the pure parts of the filing workflow: the return
// rule engine, the prefill fixture and identifier generation.
package filing

import (
	"bytes"
	"encoding/json"
	"slices"

	"erigateway/internal/filing/models"
	dErrors "erigateway/pkg/domain-errors"
)

const (
	CodePersonalInfoMissing   = "ERR_ITR_001"
	CodeBusinessIncomeMissing = "ERR_ITR_045"
	CodeNegativeTotalIncome   = "ERR_ITR_078"
)

// Sections is a return's top-level sections, left undecoded.
type Sections map[string]json.RawMessage

// Has reports whether section is present and not null.
func (s Sections) Has(section string) bool {
	raw, ok := s[section]
	return ok && !bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// Rule is one check over a return. ITRTypes limits the rule to those return
// types; empty means every type.
type Rule struct {
	Code     string
	Message  string
	ITRTypes []string
	Violated func(s Sections) bool
}

func (r Rule) appliesTo(itrType string) bool {
	return len(r.ITRTypes) == 0 || slices.Contains(r.ITRTypes, itrType)
}

// DefaultRules is the portal's rule set in evaluation order.
var DefaultRules = []Rule{
	{
		Code:    CodePersonalInfoMissing,
		Message: "Personal information is mandatory",
		Violated: func(s Sections) bool {
			return !s.Has("personalInfo")
		},
	},
	{
		Code:     CodeBusinessIncomeMissing,
		Message:  "Business income details required for ITR-3/4",
		ITRTypes: []string{"ITR-3", "ITR-4"},
		Violated: func(s Sections) bool {
			return !s.Has("businessIncome")
		},
	},
	{
		Code:     CodeNegativeTotalIncome,
		Message:  "Total income cannot be negative",
		Violated: negativeTotalIncome,
	},
}

// negativeTotalIncome is violated only by a numeric totalIncome below zero.
// A missing or non-numeric value is not this rule's concern.
func negativeTotalIncome(s Sections) bool {
	if !s.Has("taxComputation") {
		return false
	}
	var computation struct {
		TotalIncome json.RawMessage `json:"totalIncome"`
	}
	if err := json.Unmarshal(s["taxComputation"], &computation); err != nil {
		return false
	}
	var total float64
	if err := json.Unmarshal(computation.TotalIncome, &total); err != nil {
		return false
	}
	return total < 0
}

// RuleEngine evaluates a fixed list of rules.
type RuleEngine struct {
	rules []Rule
}

// NewRuleEngine builds an engine over rules, or DefaultRules when none are given.
func NewRuleEngine(rules ...Rule) *RuleEngine {
	if len(rules) == 0 {
		rules = DefaultRules
	}
	return &RuleEngine{rules: rules}
}

// Evaluate runs every applicable rule and returns the findings in rule order.
// An empty result means the return is valid.
func (e *RuleEngine) Evaluate(itrType string, itrData json.RawMessage) ([]models.ValidationIssue, error) {
	var sections Sections
	if err := json.Unmarshal(itrData, &sections); err != nil || sections == nil {
		return nil, dErrors.New(dErrors.CodeValidation, "itrData must be an object")
	}

	var issues []models.ValidationIssue
	for _, rule := range e.rules {
		if !rule.appliesTo(itrType) || !rule.Violated(sections) {
			continue
		}
		issues = append(issues, models.ValidationIssue{Code: rule.Code, Message: rule.Message})
	}
	return issues, nil
}
