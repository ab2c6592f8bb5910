// Cosine-similarity retriever. The snippet embedding matrix is computed once
// at construction (batch) and never mutated afterwards, so concurrent
// retrievals need no locking; construction is the initialization barrier.
package rag

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/unhbank/banking-assistant/internal/infra/llm"
)

// normEpsilon keeps normalization finite for zero vectors.
const normEpsilon = 1e-9

// Searcher is the retrieval capability consumed by the orchestrator.
type Searcher interface {
	// Retrieve returns up to topK snippets ranked descending by similarity
	// to the query. Result length is min(topK, store size).
	Retrieve(ctx context.Context, query string, topK int) ([]Snippet, error)
}

// Retriever ranks a fixed snippet store by cosine similarity.
type Retriever struct {
	snippets []Snippet
	matrix   [][]float64 // unit-normalized, aligned by index with snippets
	embedder llm.Provider
}

// NewRetriever batch-encodes every snippet text and stores the unit-normalized
// vectors. An empty store is valid: Retrieve then always returns nothing.
func NewRetriever(ctx context.Context, snippets []Snippet, embedder llm.Provider) (*Retriever, error) {
	r := &Retriever{snippets: snippets, embedder: embedder}
	if len(snippets) == 0 {
		return r, nil
	}

	texts := make([]string, len(snippets))
	for i, s := range snippets {
		texts[i] = s.Text
	}
	vecs, err := embedder.Embed(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("rag.NewRetriever: embed corpus: %w", err)
	}
	if len(vecs) != len(snippets) {
		return nil, fmt.Errorf("rag.NewRetriever: embedder returned %d vectors for %d snippets", len(vecs), len(snippets))
	}

	r.matrix = make([][]float64, len(vecs))
	for i, v := range vecs {
		r.matrix[i] = normalize(v)
	}
	return r, nil
}

// Size returns the number of snippets in the store.
func (r *Retriever) Size() int {
	return len(r.snippets)
}

// Retrieve encodes the query, dot-products it against every stored vector
// (cosine similarity, both sides unit-normalized) and returns the topK best
// snippets. Ties keep store order (stable sort). The returned snippets are
// copies carrying the computed score; the store is never mutated.
func (r *Retriever) Retrieve(ctx context.Context, query string, topK int) ([]Snippet, error) {
	if len(r.snippets) == 0 || topK <= 0 {
		return []Snippet{}, nil
	}

	vecs, err := r.embedder.Embed(ctx, []string{query})
	if err != nil {
		return nil, fmt.Errorf("rag.Retrieve: embed query: %w", err)
	}
	if len(vecs) != 1 {
		return nil, fmt.Errorf("rag.Retrieve: embedder returned %d vectors for 1 query", len(vecs))
	}
	queryVec := normalize(vecs[0])

	type scored struct {
		index int
		score float64
	}
	ranked := make([]scored, len(r.matrix))
	for i, row := range r.matrix {
		ranked[i] = scored{index: i, score: dot(row, queryVec)}
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].score > ranked[j].score })

	if topK > len(ranked) {
		topK = len(ranked)
	}
	results := make([]Snippet, topK)
	for i := 0; i < topK; i++ {
		s := r.snippets[ranked[i].index]
		results[i] = Snippet{
			ID:     s.ID,
			Text:   s.Text,
			Score:  ranked[i].score,
			Source: s.Source,
		}
	}
	return results, nil
}

// normalize converts a raw embedding into a unit-length float64 vector.
// The epsilon keeps a zero vector at zero instead of dividing by zero.
func normalize(vec []float32) []float64 {
	out := make([]float64, len(vec))
	var sum float64
	for i, v := range vec {
		out[i] = float64(v)
		sum += float64(v) * float64(v)
	}
	norm := math.Sqrt(sum) + normEpsilon
	for i := range out {
		out[i] /= norm
	}
	return out
}

// dot computes the inner product of two equal-length vectors.
func dot(a, b []float64) float64 {
	if len(a) != len(b) {
		return 0
	}
	var s float64
	for i := range a {
		s += a[i] * b[i]
	}
	return s
}
