// Resilient wrapper around a Provider. Generation failures (network errors,
// timeouts, non-2xx, malformed bodies) are never propagated to the pipeline:
// the user gets a fixed non-technical message and the underlying error is
// logged for operators. Embed and HealthCheck pass through unchanged so the
// retriever and health endpoint still see real errors.
package llm

import (
	"context"

	log "github.com/sirupsen/logrus"
)

// FallbackAnswer is the fixed user-facing text returned when the generation
// backend fails. Internal errors are never exposed verbatim to end users.
const FallbackAnswer = "I’m experiencing technical difficulties accessing the model. Please try again later."

// Resilient decorates a Provider with generation-failure recovery.
type Resilient struct {
	inner Provider
}

// NewResilient wraps the given provider.
func NewResilient(inner Provider) *Resilient {
	return &Resilient{inner: inner}
}

// Generate delegates to the wrapped provider and converts any error into the
// fixed fallback answer. The error is recorded for diagnostics only.
func (r *Resilient) Generate(ctx context.Context, prompt string) (string, error) {
	answer, err := r.inner.Generate(ctx, prompt)
	if err != nil {
		log.WithError(err).WithField("model", r.inner.ModelInfo().ID).
			Error("generation backend failure, returning fallback answer")
		return FallbackAnswer, nil
	}
	return answer, nil
}

// Embed passes through to the wrapped provider.
func (r *Resilient) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	return r.inner.Embed(ctx, texts)
}

// ModelInfo passes through to the wrapped provider.
func (r *Resilient) ModelInfo() ModelMeta {
	return r.inner.ModelInfo()
}

// HealthCheck passes through to the wrapped provider.
func (r *Resilient) HealthCheck(ctx context.Context) error {
	return r.inner.HealthCheck(ctx)
}
