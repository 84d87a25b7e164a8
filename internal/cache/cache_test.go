package cache

import (
	"strings"
	"testing"
	"time"

	"github.com/ppiankov/veracity/internal/model"
)

func TestKey_OrderIndependent(t *testing.T) {
	a := Key("Water boils at 100 degrees Celsius.", []string{"https://a.test", "https://b.test"})
	b := Key("Water boils at 100 degrees Celsius.", []string{"https://b.test", "https://a.test"})
	if a != b {
		t.Error("Expected source order not to affect the key")
	}
}

func TestKey_Discriminates(t *testing.T) {
	base := Key("claim one", []string{"https://a.test"})
	if Key("claim two", []string{"https://a.test"}) == base {
		t.Error("Expected different claims to produce different keys")
	}
	if Key("claim one", []string{"https://b.test"}) == base {
		t.Error("Expected different source sets to produce different keys")
	}
	if !strings.HasPrefix(base, "veracity:v1:") {
		t.Errorf("Expected the versioned key prefix, got %q", base)
	}
}

func sampleEvidence() []model.Evidence {
	return []model.Evidence{
		{SourceName: "NIST", Credibility: 97, Relevance: 100, Excerpt: "Water boils at 100 degrees Celsius."},
		{SourceName: "Reuters", Credibility: 85, Relevance: 60, Excerpt: "Boiling point references."},
	}
}

func TestEvidenceCache_RoundTrip(t *testing.T) {
	c := NewEvidenceCache(time.Minute)

	if _, found := c.Get("missing"); found {
		t.Error("Expected a miss for an unknown key")
	}

	c.Set("k", sampleEvidence())
	got, found := c.Get("k")
	if !found {
		t.Fatal("Expected to read back the stored evidence")
	}
	if len(got) != 2 || got[0].SourceName != "NIST" || got[1].SourceName != "Reuters" {
		t.Errorf("Expected the stored evidence in order, got %+v", got)
	}

	c.Delete("k")
	if _, found := c.Get("k"); found {
		t.Error("Expected a miss after delete")
	}
}

func TestEvidenceCache_CopiesOnBothPaths(t *testing.T) {
	c := NewEvidenceCache(time.Minute)

	stored := sampleEvidence()
	c.Set("k", stored)
	stored[0].SourceName = "mutated-after-set"

	first, _ := c.Get("k")
	if first[0].SourceName != "NIST" {
		t.Errorf("Expected the cached entry to be isolated from the caller's slice, got %q", first[0].SourceName)
	}

	first[0].SourceName = "mutated-after-get"
	second, _ := c.Get("k")
	if second[0].SourceName != "NIST" {
		t.Errorf("Expected reads to be isolated from each other, got %q", second[0].SourceName)
	}
}

func TestEvidenceCache_Expiry(t *testing.T) {
	c := NewEvidenceCache(10 * time.Millisecond)
	c.Set("k", sampleEvidence())
	time.Sleep(30 * time.Millisecond)
	if _, found := c.Get("k"); found {
		t.Error("Expected the entry to expire")
	}
}

func TestEvidenceCache_Clear(t *testing.T) {
	c := NewEvidenceCache(time.Minute)
	c.Set("a", sampleEvidence())
	c.Set("b", nil)

	c.Clear()
	if _, found := c.Get("a"); found {
		t.Error("Expected the cache to be empty after clear")
	}
}
