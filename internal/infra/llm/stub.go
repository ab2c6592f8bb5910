// Stub provider: offline fallback when no real model is configured.
// Generation returns a fixed placeholder text; embeddings are deterministic
// hashed bag-of-words vectors so retrieval stays functional (and testable)
// without any external service.
package llm

import (
	"context"
	"hash/fnv"
	"strings"
)

// StubModelID identifies the stub in interaction logs and envelopes.
const StubModelID = "stub"

// stubAnswer is the fixed placeholder response. It describes itself as a
// placeholder on purpose: this variant exists so the service can run before
// a real model is wired up, not to fake answers.
const stubAnswer = "This is the UNH Banking Assistant demo using a simplified response engine. " +
	"Set GEN_PROVIDER=ollama to get full LLM-generated answers grounded in RBI-aligned policies."

// stubEmbedDim is the fixed embedding dimension of the stub embedder.
const stubEmbedDim = 64

// StubProvider implements Provider without any external calls.
type StubProvider struct{}

// NewStubProvider creates a StubProvider.
func NewStubProvider() *StubProvider {
	return &StubProvider{}
}

// Generate ignores the prompt and returns the fixed placeholder text.
func (p StubProvider) Generate(_ context.Context, _ string) (string, error) {
	return stubAnswer, nil
}

// Embed maps each text to a bag-of-words vector: every lower-cased token is
// hashed into one of stubEmbedDim buckets and counted. Identical texts always
// produce identical vectors, and texts sharing vocabulary land close together,
// which is enough signal for cosine ranking over a small snippet store.
func (p StubProvider) Embed(_ context.Context, texts []string) ([][]float32, error) {
	embeddings := make([][]float32, len(texts))
	for i, text := range texts {
		embeddings[i] = hashEmbed(text)
	}
	return embeddings, nil
}

// ModelInfo returns static metadata for the stub.
func (p StubProvider) ModelInfo() ModelMeta {
	return ModelMeta{ID: StubModelID, Provider: "stub"}
}

// HealthCheck always succeeds: there is nothing to reach.
func (p StubProvider) HealthCheck(_ context.Context) error {
	return nil
}

// hashEmbed builds the bag-of-words bucket vector for one text.
func hashEmbed(text string) []float32 {
	vec := make([]float32, stubEmbedDim)
	for _, tok := range strings.Fields(strings.ToLower(text)) {
		h := fnv.New32a()
		h.Write([]byte(tok)) //nolint:errcheck // fnv.Write never fails
		vec[h.Sum32()%stubEmbedDim]++
	}
	return vec
}
