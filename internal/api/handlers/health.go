package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/unhbank/banking-assistant/internal/infra/llm"
)

// healthCheckTimeout bounds the provider probe so a hung model backend cannot
// stall load-balancer health checks.
const healthCheckTimeout = 2 * time.Second

// ModelHealth is the slice of llm.Provider the health endpoint needs.
type ModelHealth interface {
	HealthCheck(ctx context.Context) error
	ModelInfo() llm.ModelMeta
}

// CorpusSize reports how many snippets the retriever currently serves.
type CorpusSize interface {
	Size() int
}

// HealthHandler reports service liveness plus model/corpus readiness.
type HealthHandler struct {
	model  ModelHealth
	corpus CorpusSize
}

func NewHealthHandler(model ModelHealth, corpus CorpusSize) *HealthHandler {
	return &HealthHandler{model: model, corpus: corpus}
}

type healthResponse struct {
	Status   string `json:"status"`
	Model    string `json:"model"`
	Provider string `json:"provider"`
	Snippets int    `json:"snippets"`
}

// Health handles GET /health. Returns 200 with status "ok" when the model
// backend answers, 503 with status "degraded" when it does not. The service
// itself is alive either way.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
	defer cancel()

	meta := h.model.ModelInfo()
	resp := healthResponse{
		Status:   "ok",
		Model:    meta.ID,
		Provider: meta.Provider,
		Snippets: h.corpus.Size(),
	}

	status := http.StatusOK
	if err := h.model.HealthCheck(ctx); err != nil {
		resp.Status = "degraded"
		status = http.StatusServiceUnavailable
	}

	writeJSON(w, status, resp)
}
