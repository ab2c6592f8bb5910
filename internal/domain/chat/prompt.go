package chat

import (
	"strings"

	"github.com/unhbank/banking-assistant/internal/domain/rag"
)

// historyWindow caps how many trailing history turns reach the prompt.
const historyWindow = 6

// BuildPrompt assembles the single prompt string sent to the model: system
// instructions, a context block built from the retrieved snippets (or a
// stay-general instruction when retrieval came back empty), the last turns of
// history, and finally the user message with an "Assistant:" cue.
func BuildPrompt(systemPrompt, userMsg string, history []Message, snippets []rag.Snippet) string {
	var ctx strings.Builder
	if len(snippets) > 0 {
		ctx.WriteString("Relevant banking context (RBI/bank-aligned snippets):\n")
		for _, s := range snippets {
			ctx.WriteString("- ")
			ctx.WriteString(s.Text)
			ctx.WriteString("\n")
		}
	} else {
		ctx.WriteString("No specific context found; answer only if you are confident and stay general.\n")
	}

	var hist strings.Builder
	for _, turn := range tail(history, historyWindow) {
		if turn.Role != RoleUser && turn.Role != RoleAssistant {
			continue
		}
		hist.WriteString(capitalize(turn.Role))
		hist.WriteString(": ")
		hist.WriteString(turn.Content)
		hist.WriteString("\n")
	}

	var b strings.Builder
	b.WriteString(systemPrompt)
	b.WriteString("\n\n")
	b.WriteString(ctx.String())
	b.WriteString("\n\nConversation so far:\n")
	b.WriteString(hist.String())
	b.WriteString("\nUser: ")
	b.WriteString(userMsg)
	b.WriteString("\nAssistant:")
	return b.String()
}

func tail(history []Message, n int) []Message {
	if len(history) <= n {
		return history
	}
	return history[len(history)-n:]
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
