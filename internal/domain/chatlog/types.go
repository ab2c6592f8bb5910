// Package chatlog persists one record per chat turn.
//
// Two sinks are available: a newline-delimited JSON file (the default, one
// object per line, append-only) and a SQLite table for deployments that want
// queryable history. Both are append-only; records are never updated or
// deleted by the service.
package chatlog

import (
	"context"
	"time"
)

// InteractionRecord captures everything observable about a single chat turn.
// GuardrailTriggered is empty for allowed messages and carries the category
// ("risky" or "sensitive") when the safety gate refused.
type InteractionRecord struct {
	ID                 string            `json:"id"`
	Timestamp          time.Time         `json:"timestamp"`
	UserMsg            string            `json:"user_msg"`
	Intent             string            `json:"intent"`
	Response           string            `json:"response"`
	Model              string            `json:"model"`
	LatencyMS          int64             `json:"latency_ms"`
	RiskFlag           bool              `json:"risk_flag"`
	SensitiveFlag      bool              `json:"sensitive_flag"`
	RetrievedDocIDs    []string          `json:"retrieved_doc_ids"`
	GuardrailTriggered string            `json:"guardrail_triggered,omitempty"`
	Extra              map[string]string `json:"extra,omitempty"`
}

// Logger is the append side of an interaction log.
type Logger interface {
	Log(ctx context.Context, rec InteractionRecord) error
}

// Filter narrows a read over the log. Zero values match everything.
type Filter struct {
	Intent        string // exact intent label
	GuardrailOnly bool   // only refused turns
	Limit         int    // 0 means no limit
}

// Matches reports whether rec passes the filter.
func (f Filter) Matches(rec InteractionRecord) bool {
	if f.Intent != "" && rec.Intent != f.Intent {
		return false
	}
	if f.GuardrailOnly && rec.GuardrailTriggered == "" {
		return false
	}
	return true
}
