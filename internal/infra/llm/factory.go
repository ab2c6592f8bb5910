// Provider selection. The closed variant set (stub, ollama) is resolved once
// at startup from configuration; there is no runtime switching mid-conversation.
package llm

import (
	"fmt"

	"github.com/unhbank/banking-assistant/internal/infra/config"
)

// NewGenerator builds the generation backend from configuration.
// The networked variant is always wrapped in Resilient so transport errors
// never reach the pipeline.
func NewGenerator(cfg config.Config) (Provider, error) {
	switch cfg.GenProvider {
	case config.ProviderStub:
		return NewStubProvider(), nil
	case config.ProviderOllama:
		return NewResilient(NewOllamaProvider(cfg.OllamaURL, cfg.GenModel)), nil
	default:
		return nil, fmt.Errorf("llm: unknown generation provider %q (want %q or %q)",
			cfg.GenProvider, config.ProviderStub, config.ProviderOllama)
	}
}

// NewEmbedder builds the embedding backend from configuration.
// Embedding errors propagate to the retriever, which degrades gracefully,
// so no resilient wrapper is applied here.
func NewEmbedder(cfg config.Config) (Provider, error) {
	switch cfg.EmbedProvider {
	case config.ProviderStub:
		return NewStubProvider(), nil
	case config.ProviderOllama:
		return NewOllamaProvider(cfg.OllamaURL, cfg.EmbedModel), nil
	default:
		return nil, fmt.Errorf("llm: unknown embedding provider %q (want %q or %q)",
			cfg.EmbedProvider, config.ProviderStub, config.ProviderOllama)
	}
}
