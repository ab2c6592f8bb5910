package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/unhbank/banking-assistant/internal/domain/chat"
	"github.com/unhbank/banking-assistant/internal/domain/rag"
)

type chatServiceStub struct {
	reply       chat.Reply
	err         error
	lastMsg     string
	lastHistory []chat.Message
}

func (s *chatServiceStub) Handle(_ context.Context, userMsg string, history []chat.Message) (chat.Reply, error) {
	s.lastMsg = userMsg
	s.lastHistory = history
	if s.err != nil {
		return chat.Reply{}, s.err
	}
	return s.reply, nil
}

func TestChatHandler_OK(t *testing.T) {
	stub := &chatServiceStub{reply: chat.Reply{
		ID:        "abc",
		Intent:    "branch_info",
		Response:  "Branches open at 10.",
		Sources:   []rag.Snippet{{ID: "branch_timings_1", Score: 0.9}},
		LatencyMS: 5,
	}}
	h := NewChatHandler(stub)

	body, _ := json.Marshal(map[string]any{
		"message": "branch timings?",
		"history": []map[string]string{{"role": "user", "content": "hi"}},
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/chat", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	h.Chat(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}

	var got chat.Reply
	if err := json.Unmarshal(rr.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.ID != "abc" || got.Intent != "branch_info" {
		t.Errorf("reply = %+v; want stub envelope", got)
	}
	if len(got.Sources) != 1 || got.Sources[0].ID != "branch_timings_1" {
		t.Errorf("sources = %v; want stub snippet", got.Sources)
	}

	if stub.lastMsg != "branch timings?" {
		t.Errorf("service received %q; want the raw message", stub.lastMsg)
	}
	if len(stub.lastHistory) != 1 || stub.lastHistory[0].Role != "user" {
		t.Errorf("history = %v; want one user turn", stub.lastHistory)
	}
}

func TestChatHandler_Validation(t *testing.T) {
	h := NewChatHandler(&chatServiceStub{})

	t.Run("invalid body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/chat", bytes.NewBufferString("{not json"))
		rr := httptest.NewRecorder()
		h.Chat(rr, req)
		if rr.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rr.Code)
		}
	})

	t.Run("empty message", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/chat", bytes.NewBufferString(`{"message":""}`))
		rr := httptest.NewRecorder()
		h.Chat(rr, req)
		if rr.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rr.Code)
		}
	})
}

func TestChatHandler_ServiceError(t *testing.T) {
	h := NewChatHandler(&chatServiceStub{err: errors.New("pipeline down")})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/chat", bytes.NewBufferString(`{"message":"hi"}`))
	rr := httptest.NewRecorder()
	h.Chat(rr, req)

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rr.Code)
	}
	var errBody map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &errBody); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if errBody["error"] == "" {
		t.Error("error body must carry an error message")
	}
}
