// Package safety classifies incoming messages as allowed / risky / sensitive
// before anything else in the pipeline runs. Classification is a pure keyword
// containment scan over immutable tables; risky keywords always win over
// sensitive ones.
package safety

import (
	"strings"

	"github.com/unhbank/banking-assistant/internal/infra/config"
)

// Category labels the outcome of a safety check.
type Category string

const (
	CategoryAllowed   Category = "allowed"
	CategoryRisky     Category = "risky"
	CategorySensitive Category = "sensitive"
)

// Result is the outcome of checking one message. Request-scoped.
type Result struct {
	Allowed   bool
	Category  Category
	Message   string // refusal text, set iff not allowed
	Risky     bool
	Sensitive bool
}

// Filter is the safety gate. Immutable after construction.
type Filter struct {
	riskyKeywords     []string
	sensitiveKeywords []string
	refusalRisky      string
	refusalSensitive  string
}

// NewFilter builds a Filter from the policy tables.
func NewFilter(policy config.Policy) *Filter {
	return &Filter{
		riskyKeywords:     policy.RiskyKeywords,
		sensitiveKeywords: policy.SensitiveKeywords,
		refusalRisky:      policy.RefusalRisky,
		refusalSensitive:  policy.RefusalSensitive,
	}
}

// Check classifies text. Pure function of the input and the keyword tables:
// lower-case the text, scan risky keywords first, then sensitive ones.
func (f *Filter) Check(text string) Result {
	t := strings.ToLower(text)

	if containsAny(t, f.riskyKeywords) {
		return Result{
			Allowed:  false,
			Category: CategoryRisky,
			Message:  f.refusalRisky,
			Risky:    true,
		}
	}

	if containsAny(t, f.sensitiveKeywords) {
		return Result{
			Allowed:   false,
			Category:  CategorySensitive,
			Message:   f.refusalSensitive,
			Sensitive: true,
		}
	}

	return Result{Allowed: true, Category: CategoryAllowed}
}

// containsAny reports whether any keyword is a substring of t.
func containsAny(t string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(t, k) {
			return true
		}
	}
	return false
}
