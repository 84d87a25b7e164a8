package retrieve

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ppiankov/veracity/internal/model"
)

// Document is raw material a backend returns for one source
type Document struct {
	URL         string     `json:"url"`
	Text        string     `json:"text"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
}

// Backend is the seam between the retriever and whatever actually holds
// the documents. The static backend serves tests and offline runs; the
// HTTP backend does live lookups. Swapping one for the other changes no
// downstream contract.
type Backend interface {
	Fetch(ctx context.Context, claim model.Claim, source model.Source) ([]Document, error)
}

// StaticBackend serves documents from an in-memory corpus keyed by source
// URL. It is the offline placeholder implementation of Backend.
type StaticBackend struct {
	mu   sync.RWMutex
	docs map[string][]Document
}

// NewStaticBackend creates an empty corpus.
func NewStaticBackend() *StaticBackend {
	return &StaticBackend{docs: make(map[string][]Document)}
}

// Add registers a document under a source URL.
func (b *StaticBackend) Add(sourceURL string, doc Document) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.docs[sourceURL] = append(b.docs[sourceURL], doc)
}

// Fetch returns the documents held for the source. An unknown source is
// not an error; it simply has nothing to contribute.
func (b *StaticBackend) Fetch(ctx context.Context, _ model.Claim, source model.Source) ([]Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("fetch %s: %w", source.URL, err)
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	docs := make([]Document, len(b.docs[source.URL]))
	copy(docs, b.docs[source.URL])
	return docs, nil
}
