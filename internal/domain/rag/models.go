// Package rag implements the retrieval side of the chat pipeline: the policy
// snippet store, the cosine-similarity retriever, and corpus hot-reload.
package rag

// Snippet is a retrievable unit of policy/reference text.
// Store snippets are read-only after loading; retrieval returns new Snippet
// values with Score populated, never mutating the originals.
type Snippet struct {
	ID     string  `json:"id"`
	Text   string  `json:"text"`
	Score  float64 `json:"score"`
	Source string  `json:"source,omitempty"`
}
