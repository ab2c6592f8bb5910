package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/unhbank/banking-assistant/internal/domain/chat"
)

// maxChatBodyBytes bounds the request body so a single client cannot feed the
// model an arbitrarily large prompt.
const maxChatBodyBytes = 64 * 1024

// ChatService runs the full pipeline for one chat turn.
type ChatService interface {
	Handle(ctx context.Context, userMsg string, history []chat.Message) (chat.Reply, error)
}

// ChatHandler exposes the chat pipeline over HTTP.
type ChatHandler struct {
	chatService ChatService
}

func NewChatHandler(chatService ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

type chatRequest struct {
	Message string         `json:"message"`
	History []chat.Message `json:"history,omitempty"`
}

// Chat handles POST /api/v1/chat. Refusals from the safety gate are normal
// 200 replies; only transport and pipeline failures map to error statuses.
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxChatBodyBytes)

	var req chatRequest
	if decodeErr := json.NewDecoder(r.Body).Decode(&req); decodeErr != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Message == "" {
		writeError(w, http.StatusBadRequest, "message is required")
		return
	}

	reply, err := h.chatService.Handle(r.Context(), req.Message, req.History)
	if err != nil {
		log.WithError(err).Error("chat turn failed")
		writeError(w, http.StatusInternalServerError, "chat failed")
		return
	}

	writeJSON(w, http.StatusOK, reply)
}
