// Snippet store loader. Reads *.txt policy documents from a directory and
// splits them into paragraph chunks; when the directory does not exist the
// built-in default snippets are used instead. Either way the retriever treats
// the result identically.
package rag

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/unhbank/banking-assistant/internal/infra/config"
)

// minChunkLen drops trivial chunks (headings, stray lines) from the corpus.
const minChunkLen = 40

// LoadSnippets builds the snippet store from dir, falling back to defaults
// when dir does not exist. Files are read in sorted name order so snippet
// ids and store order are stable across runs.
func LoadSnippets(dir string, defaults []config.SnippetDef) ([]Snippet, error) {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		log.WithField("dir", dir).Debug("no policy directory, using built-in snippets")
		return defaultSnippets(defaults), nil
	}

	paths, err := filepath.Glob(filepath.Join(dir, "*.txt"))
	if err != nil {
		return nil, fmt.Errorf("rag.LoadSnippets: glob %q: %w", dir, err)
	}
	sort.Strings(paths)

	var snippets []Snippet
	for _, path := range paths {
		data, readErr := os.ReadFile(path)
		if readErr != nil {
			return nil, fmt.Errorf("rag.LoadSnippets: read %q: %w", path, readErr)
		}
		text := strings.TrimSpace(string(data))
		if text == "" {
			continue
		}
		base := filepath.Base(path)
		for _, p := range splitParagraphs(text) {
			snippets = append(snippets, Snippet{
				ID:     fmt.Sprintf("%s_%d", base, p.index),
				Text:   p.text,
				Source: base,
			})
		}
	}

	log.WithFields(log.Fields{"dir": dir, "snippets": len(snippets)}).Info("policy corpus loaded")
	return snippets, nil
}

// paragraph is one surviving chunk and its position in the source file.
type paragraph struct {
	index int
	text  string
}

// splitParagraphs splits text on blank-line boundaries and drops chunks
// shorter than minChunkLen. The index counts every paragraph (including
// dropped ones) so ids stay stable when a short paragraph is edited.
func splitParagraphs(text string) []paragraph {
	var chunks []paragraph
	for i, chunk := range strings.Split(text, "\n\n") {
		chunk = strings.TrimSpace(chunk)
		if len(chunk) < minChunkLen {
			continue
		}
		chunks = append(chunks, paragraph{index: i, text: chunk})
	}
	return chunks
}

// defaultSnippets converts the configured snippet definitions into store values.
func defaultSnippets(defs []config.SnippetDef) []Snippet {
	snippets := make([]Snippet, len(defs))
	for i, d := range defs {
		snippets[i] = Snippet{ID: d.ID, Text: d.Text, Source: d.Source}
	}
	return snippets
}
