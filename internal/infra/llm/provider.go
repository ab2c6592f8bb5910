// Package llm defines the model-agnostic provider abstraction for text
// generation and embeddings. Adapters (Ollama, stub) implement Provider so
// the chat pipeline is never coupled to a specific backend.
package llm

import "context"

// Provider is the interface every generation/embedding backend implements.
type Provider interface {
	// Generate completes a single prompt and returns the answer text.
	Generate(ctx context.Context, prompt string) (string, error)

	// Embed computes dense vector representations for a batch of texts.
	// Embeddings[i] corresponds to texts[i]. Vectors are returned raw;
	// unit-normalization is the caller's responsibility.
	Embed(ctx context.Context, texts []string) ([][]float32, error)

	// ModelInfo returns static metadata about the provider/model.
	ModelInfo() ModelMeta

	// HealthCheck returns nil if the provider is reachable and operational.
	HealthCheck(ctx context.Context) error
}

// ModelMeta describes the model / provider identity.
type ModelMeta struct {
	ID       string // e.g. "llama3.2:3b", "nomic-embed-text", "stub"
	Provider string // e.g. "ollama", "stub"
}
