package registry

import (
	"strings"
	"sync"
	"testing"

	"github.com/ppiankov/veracity/internal/model"
)

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()
	r, err := New(model.DefaultConfig())
	if err != nil {
		t.Fatalf("Expected registry construction to succeed, got %v", err)
	}
	return r
}

func TestSourcesForDomain_SortedByCredibility(t *testing.T) {
	r := newTestRegistry(t)

	sources := r.SourcesForDomain("physics")
	if len(sources) == 0 {
		t.Fatal("Expected physics sources in the built-in catalogue")
	}
	for i := 1; i < len(sources); i++ {
		if sources[i].Credibility > sources[i-1].Credibility {
			t.Errorf("Expected descending credibility, got %.1f before %.1f",
				sources[i-1].Credibility, sources[i].Credibility)
		}
		if sources[i].Credibility == sources[i-1].Credibility && sources[i].Name < sources[i-1].Name {
			t.Errorf("Expected name tiebreak, got %q before %q", sources[i-1].Name, sources[i].Name)
		}
	}
	for _, s := range sources {
		found := false
		for _, d := range s.Domains {
			if d == "physics" {
				found = true
			}
		}
		if !found {
			t.Errorf("Source %q returned for physics but not authoritative for it", s.Name)
		}
	}
}

func TestAllSources_DeduplicatesByURL(t *testing.T) {
	r := newTestRegistry(t)

	seen := make(map[string]bool)
	for _, s := range r.AllSources() {
		if seen[s.URL] {
			t.Errorf("Source %q appears more than once", s.URL)
		}
		seen[s.URL] = true
	}
}

func TestAddCustomSource(t *testing.T) {
	r := newTestRegistry(t)

	err := r.AddCustomSource("physics", "Test Journal", "https://journal.test",
		model.SourceAcademic, 90, model.AccessManual)
	if err != nil {
		t.Fatalf("Expected add to succeed, got %v", err)
	}

	if !r.IsTrusted("https://journal.test", "physics") {
		t.Error("Expected the new source to be trusted for physics")
	}
	if r.IsTrusted("https://journal.test", "history") {
		t.Error("Expected the new source not to be trusted for history")
	}
	cred, ok := r.Credibility("https://journal.test")
	if !ok || cred != 90 {
		t.Errorf("Expected credibility 90, got %.1f (found=%v)", cred, ok)
	}
}

func TestAddCustomSource_Validation(t *testing.T) {
	r := newTestRegistry(t)

	cases := []struct {
		name        string
		typ         model.SourceType
		credibility float64
		wantErr     string
	}{
		{"bad type", "blog", 50, "invalid source type"},
		{"credibility too high", model.SourceNews, 150, "outside [0,100]"},
		{"credibility negative", model.SourceNews, -1, "outside [0,100]"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := r.AddCustomSource("general", "X", "https://x.test", tc.typ, tc.credibility, model.AccessManual)
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("Expected error containing %q, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestAddCustomSource_ExistingURLGainsDomain(t *testing.T) {
	r := newTestRegistry(t)
	before := len(r.AllSources())

	err := r.AddCustomSource("statistics", "Wikipedia", "https://en.wikipedia.org",
		model.SourceEncyclopedia, 78, model.AccessAPI)
	if err != nil {
		t.Fatalf("Expected add to succeed, got %v", err)
	}

	if got := len(r.AllSources()); got != before {
		t.Errorf("Expected no new catalogue entry, went from %d to %d", before, got)
	}
	if !r.IsTrusted("https://en.wikipedia.org", "statistics") {
		t.Error("Expected Wikipedia to become trusted for statistics")
	}
}

func TestSourceOverrides_Blacklist(t *testing.T) {
	cfg := model.DefaultConfig()
	cfg.Sources.Blacklist = map[string][]string{
		"general": {"https://en.wikipedia.org"},
	}
	r, err := New(cfg)
	if err != nil {
		t.Fatalf("Expected construction to succeed, got %v", err)
	}

	for _, s := range r.SourcesForDomain("general") {
		if s.URL == "https://en.wikipedia.org" {
			t.Error("Expected blacklisted source to be excluded from domain reads")
		}
	}
	if r.IsTrusted("https://en.wikipedia.org", "general") {
		t.Error("Expected blacklisted source to be untrusted for the domain")
	}
	if !r.IsTrusted("https://en.wikipedia.org", "") {
		t.Error("Expected the source to remain catalogued overall")
	}
}

func TestSourceOverrides_Whitelist(t *testing.T) {
	cfg := model.DefaultConfig()
	cfg.Sources.Whitelist = map[string][]string{
		"general": {"https://www.reuters.com"},
	}
	r, err := New(cfg)
	if err != nil {
		t.Fatalf("Expected construction to succeed, got %v", err)
	}

	sources := r.SourcesForDomain("general")
	if len(sources) != 1 || sources[0].URL != "https://www.reuters.com" {
		t.Errorf("Expected only the whitelisted source, got %d source(s)", len(sources))
	}
}

func TestStatistics(t *testing.T) {
	r := newTestRegistry(t)
	stats := r.Statistics()

	if stats.TotalSources == 0 {
		t.Fatal("Expected a populated catalogue")
	}
	if stats.MeanCredibility <= 0 || stats.MeanCredibility > 100 {
		t.Errorf("Expected mean credibility in (0,100], got %.1f", stats.MeanCredibility)
	}
	if stats.ByDomain["physics"] == 0 {
		t.Error("Expected physics sources to be counted")
	}
	if stats.ByType[model.SourceGovernment] == 0 {
		t.Error("Expected government sources to be counted")
	}
}

func TestRegistry_ConcurrentReadsAndWrites(t *testing.T) {
	r := newTestRegistry(t)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				_ = r.SourcesForDomain("physics")
				_ = r.AllSources()
				_ = r.Statistics()
			}
		}()
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		for j := 0; j < 20; j++ {
			_ = r.AddCustomSource("general", "Concurrent", "https://concurrent.test",
				model.SourceNews, 60, model.AccessManual)
		}
	}()
	wg.Wait()

	if !r.IsTrusted("https://concurrent.test", "general") {
		t.Error("Expected the concurrently added source to be present")
	}
}
