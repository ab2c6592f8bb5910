// Hot-reloadable index. Index wraps the current Retriever behind an atomic
// pointer: requests in flight keep ranking against the retriever they started
// with while Rebuild swaps in a freshly built one. Rebuilds are triggered by
// corpus-change events from the watcher.
package rag

import (
	"context"
	"sync/atomic"

	log "github.com/sirupsen/logrus"

	"github.com/unhbank/banking-assistant/internal/infra/config"
	"github.com/unhbank/banking-assistant/internal/infra/eventbus"
	"github.com/unhbank/banking-assistant/internal/infra/llm"
)

// TopicCorpusChanged is published by the corpus watcher whenever a policy
// file is created, modified, or removed.
const TopicCorpusChanged = "corpus.changed"

// Index is a Searcher whose underlying Retriever can be rebuilt at runtime.
type Index struct {
	dir      string
	defaults []config.SnippetDef
	embedder llm.Provider
	current  atomic.Pointer[Retriever]
}

// NewIndex loads the corpus and builds the initial retriever.
func NewIndex(ctx context.Context, dir string, defaults []config.SnippetDef, embedder llm.Provider) (*Index, error) {
	ix := &Index{dir: dir, defaults: defaults, embedder: embedder}
	if err := ix.Rebuild(ctx); err != nil {
		return nil, err
	}
	return ix, nil
}

// Retrieve delegates to the current retriever.
func (ix *Index) Retrieve(ctx context.Context, query string, topK int) ([]Snippet, error) {
	return ix.current.Load().Retrieve(ctx, query, topK)
}

// Size returns the snippet count of the current retriever.
func (ix *Index) Size() int {
	return ix.current.Load().Size()
}

// Rebuild reloads the corpus, re-encodes it, and swaps the new retriever in.
// On failure the previous retriever (if any) stays active.
func (ix *Index) Rebuild(ctx context.Context) error {
	snippets, err := LoadSnippets(ix.dir, ix.defaults)
	if err != nil {
		return err
	}
	retriever, err := NewRetriever(ctx, snippets, ix.embedder)
	if err != nil {
		return err
	}
	ix.current.Store(retriever)
	return nil
}

// Start subscribes to TopicCorpusChanged and rebuilds the index per event.
// Runs in the calling goroutine — launch with: go ix.Start(ctx, bus)
// Stops when ctx is cancelled. Rebuild errors are logged, not fatal: the
// previous index keeps serving.
func (ix *Index) Start(ctx context.Context, bus eventbus.EventBus) {
	ch := bus.Subscribe(TopicCorpusChanged)
	for {
		select {
		case <-ctx.Done():
			return
		case evt := <-ch:
			if err := ix.Rebuild(ctx); err != nil {
				log.WithError(err).Error("corpus rebuild failed, keeping previous index")
				continue
			}
			log.WithFields(log.Fields{"trigger": evt.Payload, "snippets": ix.Size()}).
				Info("corpus index rebuilt")
		}
	}
}
