// Package intent maps an allowed user message to a coarse intent label.
// Classification is total: every input resolves to exactly one label.
package intent

import (
	"strings"

	"github.com/unhbank/banking-assistant/internal/infra/config"
)

// Labels produced outside the configured intent rules.
const (
	LabelFollowup  = "followup"
	LabelGreetings = "greetings"
	LabelGeneral   = "general"
)

// Classifier resolves intent labels from immutable keyword tables.
type Classifier struct {
	rules     []config.IntentRule
	followups map[string]struct{}
	greetings map[string]struct{}
}

// NewClassifier builds a Classifier from the policy tables.
func NewClassifier(policy config.Policy) *Classifier {
	return &Classifier{
		rules:     policy.IntentRules,
		followups: toSet(policy.FollowupPhrases),
		greetings: toSet(policy.Greetings),
	}
}

// Classify resolves the intent of text, in strict priority order:
// follow-up filler phrases (exact match), then the configured rules in table
// order (first rule with any keyword contained in the text wins), then
// greetings (exact match), otherwise "general". Pure, deterministic.
func (c *Classifier) Classify(text string) string {
	t := strings.TrimSpace(strings.ToLower(text))

	if _, ok := c.followups[t]; ok {
		return LabelFollowup
	}

	for _, rule := range c.rules {
		for _, kw := range rule.Keywords {
			if strings.Contains(t, kw) {
				return rule.Label
			}
		}
	}

	if _, ok := c.greetings[t]; ok {
		return LabelGreetings
	}

	return LabelGeneral
}

// toSet builds a membership set from a phrase list.
func toSet(phrases []string) map[string]struct{} {
	set := make(map[string]struct{}, len(phrases))
	for _, p := range phrases {
		set[p] = struct{}{}
	}
	return set
}
