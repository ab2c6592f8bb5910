package chat

import (
	"fmt"
	"strings"
	"testing"

	"github.com/unhbank/banking-assistant/internal/domain/rag"
)

const testSystemPrompt = "You are a careful banking assistant."

func TestBuildPrompt_WithContext(t *testing.T) {
	t.Parallel()

	snippets := []rag.Snippet{
		{ID: "a", Text: "Cards can be blocked via the helpline."},
		{ID: "b", Text: "Branches open at 10:00."},
	}

	prompt := BuildPrompt(testSystemPrompt, "how do I block my card", nil, snippets)

	if !strings.HasPrefix(prompt, testSystemPrompt) {
		t.Error("prompt must start with the system prompt")
	}
	if !strings.Contains(prompt, "Relevant banking context (RBI/bank-aligned snippets):") {
		t.Error("prompt missing context header")
	}
	if !strings.Contains(prompt, "- Cards can be blocked via the helpline.\n") {
		t.Error("prompt missing first snippet bullet")
	}
	if !strings.Contains(prompt, "- Branches open at 10:00.\n") {
		t.Error("prompt missing second snippet bullet")
	}
	if !strings.Contains(prompt, "\nUser: how do I block my card\nAssistant:") {
		t.Error("prompt missing user message and assistant cue")
	}
	if !strings.HasSuffix(prompt, "Assistant:") {
		t.Error("prompt must end with the assistant cue")
	}
}

func TestBuildPrompt_NoContext(t *testing.T) {
	t.Parallel()

	prompt := BuildPrompt(testSystemPrompt, "hello", nil, nil)

	if !strings.Contains(prompt, "No specific context found; answer only if you are confident and stay general.") {
		t.Error("prompt missing stay-general instruction")
	}
	if strings.Contains(prompt, "Relevant banking context") {
		t.Error("prompt must not carry a context header without snippets")
	}
}

func TestBuildPrompt_HistoryWindowAndRoles(t *testing.T) {
	t.Parallel()

	var history []Message
	for i := 0; i < 5; i++ {
		history = append(history,
			Message{Role: RoleUser, Content: fmt.Sprintf("question %d", i)},
			Message{Role: RoleAssistant, Content: fmt.Sprintf("answer %d", i)},
		)
	}
	history = append(history, Message{Role: "system", Content: "injected"})

	prompt := BuildPrompt(testSystemPrompt, "next", history, nil)

	// Only the trailing turns survive; the window is 6 turns including the
	// non-user/assistant one that gets filtered after slicing.
	if strings.Contains(prompt, "question 0") || strings.Contains(prompt, "answer 1") {
		t.Error("old history turns must fall outside the window")
	}
	if !strings.Contains(prompt, "User: question 4\n") {
		t.Error("recent user turn missing from history block")
	}
	if !strings.Contains(prompt, "Assistant: answer 4\n") {
		t.Error("recent assistant turn missing from history block")
	}
	if strings.Contains(prompt, "injected") {
		t.Error("non user/assistant roles must be dropped")
	}
}

func TestBuildPrompt_EmptyHistory(t *testing.T) {
	t.Parallel()

	prompt := BuildPrompt(testSystemPrompt, "hi", []Message{}, nil)
	if !strings.Contains(prompt, "Conversation so far:\n\nUser: hi") {
		t.Error("empty history must leave a bare conversation block")
	}
}
