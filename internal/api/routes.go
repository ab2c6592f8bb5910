// Route registration and go-chi router setup.
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/unhbank/banking-assistant/internal/api/handlers"
)

// NewRouter wires the HTTP surface: an unauthenticated health probe and the
// chat endpoint under /api/v1.
func NewRouter(
	chatService handlers.ChatService,
	model handlers.ModelHealth,
	corpus handlers.CorpusSize,
) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware (runs on all routes)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Health check — used by load balancers and readiness probes
	healthHandler := handlers.NewHealthHandler(model, corpus)
	r.Get("/health", healthHandler.Health)

	chatHandler := handlers.NewChatHandler(chatService)
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/chat", chatHandler.Chat) // POST /api/v1/chat
	})

	return r
}
