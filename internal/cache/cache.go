// Package cache memoizes evidence lookups keyed by (claim text, source
// set).
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/ppiankov/veracity/internal/model"
)

// EvidenceCache is an in-process TTL cache of ranked evidence lists.
// Stored lists are copied on both write and read, so callers may mutate
// their slices without corrupting cached entries.
type EvidenceCache struct {
	entries *gocache.Cache
}

// NewEvidenceCache creates a cache whose entries expire after ttl.
// Expired entries are purged in the background at twice the ttl.
func NewEvidenceCache(ttl time.Duration) *EvidenceCache {
	return &EvidenceCache{entries: gocache.New(ttl, 2*ttl)}
}

// Get returns the cached evidence for key, or false when absent or
// expired.
func (c *EvidenceCache) Get(key string) ([]model.Evidence, bool) {
	val, found := c.entries.Get(key)
	if !found {
		return nil, false
	}
	return copyEvidence(val.([]model.Evidence)), true
}

// Set stores evidence under key with the cache's default TTL.
func (c *EvidenceCache) Set(key string, evidence []model.Evidence) {
	c.entries.Set(key, copyEvidence(evidence), gocache.DefaultExpiration)
}

// Delete removes one entry.
func (c *EvidenceCache) Delete(key string) {
	c.entries.Delete(key)
}

// Clear removes all entries.
func (c *EvidenceCache) Clear() {
	c.entries.Flush()
}

// Key derives a stable cache key for a claim against a set of sources.
// Source order does not matter.
func Key(claimText string, sourceURLs []string) string {
	urls := make([]string, len(sourceURLs))
	copy(urls, sourceURLs)
	sort.Strings(urls)

	hash := sha256.Sum256([]byte(claimText + "\x00" + strings.Join(urls, "\x00")))
	return "veracity:v1:" + hex.EncodeToString(hash[:])
}

func copyEvidence(in []model.Evidence) []model.Evidence {
	out := make([]model.Evidence, len(in))
	copy(out, in)
	return out
}
