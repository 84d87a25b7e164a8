// Package retrieve turns claims and trusted sources into ranked evidence.
package retrieve

import (
	"context"
	"fmt"
	"time"

	"github.com/ppiankov/veracity/internal/cache"
	"github.com/ppiankov/veracity/internal/model"
)

const fetchMaxRetries = 3

// retrySleep is the sleep function used between fetch retries
// (injectable for tests).
var retrySleep = time.Sleep

// Retriever queries a Backend per (claim, source) pair, scores the
// returned material, and ranks it. Identical (claim text, source set)
// lookups are memoized when caching is enabled.
type Retriever struct {
	backend Backend
	cache   *cache.EvidenceCache
	cfg     model.Config
}

// NewRetriever creates a retriever over the given backend.
func NewRetriever(backend Backend, cfg model.Config) *Retriever {
	r := &Retriever{backend: backend, cfg: cfg}
	if cfg.Cache.Enabled {
		r.cache = cache.NewEvidenceCache(cfg.Cache.TTL)
	}
	return r
}

// RetrieveEvidence returns up to maxResults evidence items for the claim,
// ranked by the credibility/relevance composite. Sources that fail after
// retries contribute nothing; the call only errors when the context is
// done. maxResults <= 0 selects DefaultMaxResults.
func (r *Retriever) RetrieveEvidence(ctx context.Context, claim model.Claim, sources []model.Source, maxResults int) ([]model.Evidence, error) {
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}

	key := cache.Key(claim.Text, sourceURLs(sources))
	if r.cache != nil {
		if cached, ok := r.cache.Get(key); ok {
			return top(cached, maxResults), nil
		}
	}

	var all []model.Evidence
	for _, source := range sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		docs, err := r.fetchWithRetry(ctx, claim, source)
		if err != nil {
			// Exhausted retries: this source has no evidence available.
			continue
		}
		for _, doc := range docs {
			relevance := RelevanceScore(claim.Text, doc.Text)
			if relevance <= 0 {
				continue
			}
			all = append(all, model.Evidence{
				SourceName:  source.Name,
				SourceType:  source.Type,
				Credibility: source.Credibility,
				Relevance:   relevance,
				Excerpt:     Excerpt(doc.Text, claim.Text, DefaultExcerptLength),
				URL:         doc.URL,
				PublishedAt: doc.PublishedAt,
			})
		}
	}

	ranked := RankEvidence(all, 0.5, 0.5)
	if r.cache != nil {
		r.cache.Set(key, ranked)
	}
	return top(ranked, maxResults), nil
}

// RetrieveBatch retrieves evidence for each claim. The result is
// positionally aligned with claims: output[i] belongs to claims[i]
// regardless of completion order. A claim whose retrieval fails gets an
// empty list; sibling claims are unaffected. Cancellation stops the batch
// between claims and returns the context error along with whatever was
// already produced.
func (r *Retriever) RetrieveBatch(ctx context.Context, claims []model.Claim, sources []model.Source, maxPerClaim int) ([][]model.Evidence, error) {
	results := make([][]model.Evidence, len(claims))

	sem := make(chan struct{}, r.cfg.MaxConcurrentVerifications)
	done := make(chan int, len(claims))
	for i, c := range claims {
		go func(idx int, claim model.Claim) {
			defer func() { done <- idx }()
			select {
			case <-ctx.Done():
				results[idx] = []model.Evidence{}
				return
			case sem <- struct{}{}:
			}
			defer func() { <-sem }()

			ev, err := r.RetrieveEvidence(ctx, claim, sources, maxPerClaim)
			if err != nil || ev == nil {
				ev = []model.Evidence{}
			}
			results[idx] = ev
		}(i, c)
	}
	for range claims {
		<-done
	}

	return results, ctx.Err()
}

// fetchWithRetry fetches from one source with bounded retries and
// backoff, honoring the per-operation timeout.
func (r *Retriever) fetchWithRetry(ctx context.Context, claim model.Claim, source model.Source) ([]Document, error) {
	var lastErr error
	for attempt := 1; attempt <= fetchMaxRetries; attempt++ {
		callCtx, cancel := context.WithTimeout(ctx, r.cfg.Timeout)
		docs, err := r.backend.Fetch(callCtx, claim, source)
		cancel()
		if err == nil {
			return docs, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			break
		}
		if attempt < fetchMaxRetries {
			retrySleep(time.Duration(attempt) * 500 * time.Millisecond)
		}
	}
	return nil, fmt.Errorf("fetch %s after %d attempts: %w", source.URL, fetchMaxRetries, lastErr)
}

func top(list []model.Evidence, n int) []model.Evidence {
	if len(list) > n {
		list = list[:n]
	}
	return list
}

func sourceURLs(sources []model.Source) []string {
	urls := make([]string, len(sources))
	for i, s := range sources {
		urls[i] = s.URL
	}
	return urls
}
