// Package chat coordinates the guardrail-gated answer pipeline: safety gate,
// intent classification, snippet retrieval, prompt assembly, generation, and
// the interaction log. The orchestrator owns the ordering; every stage behind
// it is an interface so tests can swap in fakes.
package chat

import "github.com/unhbank/banking-assistant/internal/domain/rag"

// Message roles accepted in conversation history. Turns with any other role
// are ignored by the prompt builder.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one turn of conversation history supplied by the client.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Reply is the envelope returned for every chat turn, refused or answered.
type Reply struct {
	ID        string        `json:"id"`
	Intent    string        `json:"intent"`
	Response  string        `json:"response"`
	Sources   []rag.Snippet `json:"sources"`
	LatencyMS int64         `json:"latency_ms"`
}
