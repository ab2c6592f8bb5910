// Package config provides application-wide configuration loaded from env vars.
// All fields have safe defaults so the binary runs locally without any env
// setup: the stub generation and embedding providers need no external service.
package config

import "os"

// Config holds runtime configuration for the banking assistant.
type Config struct {
	// Generation backend
	GenProvider string // GEN_PROVIDER — "stub" | "ollama", default: "stub"
	OllamaURL   string // OLLAMA_URL — default: "http://localhost:11434"
	GenModel    string // OLLAMA_MODEL — default: "llama3.2:3b"

	// Embedding backend
	EmbedProvider string // EMBED_PROVIDER — "stub" | "ollama", default: "stub"
	EmbedModel    string // EMBED_MODEL — default: "nomic-embed-text"

	// Interaction log
	LogBackend string // LOG_BACKEND — "jsonl" | "sqlite", default: "jsonl"
	LogFile    string // LOG_FILE — default: "chatlogs.jsonl"
	SQLitePath string // SQLITE_PATH — default: "chatlogs.db"

	// Policy corpus
	PolicyDir   string // POLICY_DIR — default: "data/policies"
	PolicyFile  string // POLICY_FILE — optional YAML overriding the built-in policy tables
	WatchCorpus bool   // WATCH_CORPUS — default: true; rebuild the index when PolicyDir changes

	// Operator logging
	LogLevel string // LOG_LEVEL — "debug" | "info" | "warn" | "error", default: "info"
}

const (
	envKeyGenProvider   = "GEN_PROVIDER"
	envKeyOllamaURL     = "OLLAMA_URL"
	envKeyGenModel      = "OLLAMA_MODEL"
	envKeyEmbedProvider = "EMBED_PROVIDER"
	envKeyEmbedModel    = "EMBED_MODEL"
	envKeyLogBackend    = "LOG_BACKEND"
	envKeyLogFile       = "LOG_FILE"
	envKeySQLitePath    = "SQLITE_PATH"
	envKeyPolicyDir     = "POLICY_DIR"
	envKeyPolicyFile    = "POLICY_FILE"
	envKeyWatchCorpus   = "WATCH_CORPUS"
	envKeyLogLevel      = "LOG_LEVEL"
)

// Provider names accepted by GEN_PROVIDER and EMBED_PROVIDER.
const (
	ProviderStub   = "stub"
	ProviderOllama = "ollama"
)

// Log backends accepted by LOG_BACKEND.
const (
	LogBackendJSONL  = "jsonl"
	LogBackendSQLite = "sqlite"
)

// Load reads configuration from environment variables, applying defaults for missing values.
func Load() Config {
	return Config{
		GenProvider:   envOr(envKeyGenProvider, ProviderStub),
		OllamaURL:     envOr(envKeyOllamaURL, "http://localhost:11434"),
		GenModel:      envOr(envKeyGenModel, "llama3.2:3b"),
		EmbedProvider: envOr(envKeyEmbedProvider, ProviderStub),
		EmbedModel:    envOr(envKeyEmbedModel, "nomic-embed-text"),
		LogBackend:    envOr(envKeyLogBackend, LogBackendJSONL),
		LogFile:       envOr(envKeyLogFile, "chatlogs.jsonl"),
		SQLitePath:    envOr(envKeySQLitePath, "chatlogs.db"),
		PolicyDir:     envOr(envKeyPolicyDir, "data/policies"),
		PolicyFile:    os.Getenv(envKeyPolicyFile),
		WatchCorpus:   envOr(envKeyWatchCorpus, "true") != "false",
		LogLevel:      envOr(envKeyLogLevel, "info"),
	}
}

// envOr returns the value of the environment variable key, or fallback if not set.
func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
