// Package registry maintains the curated catalogue of trusted sources.
// The catalogue is read-mostly shared state: reads take snapshots under a
// read lock, the single write operation takes the write lock.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/ppiankov/veracity/internal/model"
)

// Statistics summarizes the catalogue contents
type Statistics struct {
	TotalSources    int                      `json:"total_sources"`
	ByType          map[model.SourceType]int `json:"by_type"`
	ByDomain        map[string]int           `json:"by_domain"`
	MeanCredibility float64                  `json:"mean_credibility"`
}

// Registry is an explicitly-owned catalogue instance. Construct one per
// process (or per test) and pass it by reference; there is no package
// level state.
type Registry struct {
	mu       sync.RWMutex
	byURL    map[string]model.Source
	byDomain map[string][]string // domain -> source URLs

	whitelist map[string]map[string]bool
	blacklist map[string]map[string]bool
}

// New builds a registry from the built-in catalogue plus any overrides
// in cfg. Extra sources are validated the same way AddCustomSource
// validates.
func New(cfg model.Config) (*Registry, error) {
	r := &Registry{
		byURL:     make(map[string]model.Source),
		byDomain:  make(map[string][]string),
		whitelist: urlSets(cfg.Sources.Whitelist),
		blacklist: urlSets(cfg.Sources.Blacklist),
	}
	for _, s := range builtinCatalogue() {
		r.insert(s)
	}
	for _, s := range cfg.Sources.Extra {
		if err := validateSource(s); err != nil {
			return nil, fmt.Errorf("source override %q: %w", s.URL, err)
		}
		r.insert(s)
	}
	return r, nil
}

// AddCustomSource registers a new trusted source for the given domain.
// Credibility must be in [0,100] and the type a member of the enumeration.
func (r *Registry) AddCustomSource(domain, name, url string, typ model.SourceType, credibility float64, access model.AccessMethod) error {
	s := model.Source{
		Name:        name,
		URL:         url,
		Type:        typ,
		Credibility: credibility,
		Domains:     []string{domain},
		Access:      access,
	}
	if err := validateSource(s); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.byURL[url]; ok {
		// Same source trusted for an additional domain.
		for _, d := range existing.Domains {
			if d == domain {
				return nil
			}
		}
		existing.Domains = append(existing.Domains, domain)
		r.byURL[url] = existing
	} else {
		r.byURL[url] = s
	}
	r.byDomain[domain] = appendUnique(r.byDomain[domain], url)
	return nil
}

// SourcesForDomain returns the sources trusted for a domain, sorted by
// descending credibility with name as tiebreak. Whitelist and blacklist
// overrides apply here.
func (r *Registry) SourcesForDomain(domain string) []model.Source {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []model.Source
	for _, url := range r.byDomain[domain] {
		if r.excluded(domain, url) {
			continue
		}
		out = append(out, r.byURL[url])
	}
	sortByCredibility(out)
	return out
}

// AllSources returns every catalogued source exactly once, sorted by
// descending credibility with name as tiebreak.
func (r *Registry) AllSources() []model.Source {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.Source, 0, len(r.byURL))
	for _, s := range r.byURL {
		out = append(out, s)
	}
	sortByCredibility(out)
	return out
}

// SourceByURL looks a source up by its stable key.
func (r *Registry) SourceByURL(url string) (model.Source, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.byURL[url]
	return s, ok
}

// IsTrusted reports whether url is catalogued; with a non-empty domain it
// additionally requires the source to be trusted for that domain.
func (r *Registry) IsTrusted(url, domain string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.byURL[url]
	if !ok {
		return false
	}
	if domain == "" {
		return true
	}
	if r.excluded(domain, url) {
		return false
	}
	for _, d := range s.Domains {
		if d == domain {
			return true
		}
	}
	return false
}

// Credibility returns the static credibility score for url, or false when
// the source is not catalogued.
func (r *Registry) Credibility(url string) (float64, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.byURL[url]
	if !ok {
		return 0, false
	}
	return s.Credibility, true
}

// SourcesByType returns every source of the given type, sorted by
// descending credibility.
func (r *Registry) SourcesByType(typ model.SourceType) []model.Source {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []model.Source
	for _, s := range r.byURL {
		if s.Type == typ {
			out = append(out, s)
		}
	}
	sortByCredibility(out)
	return out
}

// Statistics summarizes the current catalogue.
func (r *Registry) Statistics() Statistics {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stats := Statistics{
		ByType:   make(map[model.SourceType]int),
		ByDomain: make(map[string]int),
	}
	total := 0.0
	for _, s := range r.byURL {
		stats.TotalSources++
		stats.ByType[s.Type]++
		for _, d := range s.Domains {
			stats.ByDomain[d]++
		}
		total += s.Credibility
	}
	if stats.TotalSources > 0 {
		stats.MeanCredibility = total / float64(stats.TotalSources)
	}
	return stats
}

// insert assumes the caller holds no lock (construction only).
func (r *Registry) insert(s model.Source) {
	if existing, ok := r.byURL[s.URL]; ok {
		for _, d := range s.Domains {
			existing.Domains = appendUnique(existing.Domains, d)
		}
		r.byURL[s.URL] = existing
	} else {
		r.byURL[s.URL] = s
	}
	for _, d := range s.Domains {
		r.byDomain[d] = appendUnique(r.byDomain[d], s.URL)
	}
}

// excluded applies whitelist/blacklist overrides. Caller holds a lock.
func (r *Registry) excluded(domain, url string) bool {
	if bl, ok := r.blacklist[domain]; ok && bl[url] {
		return true
	}
	if wl, ok := r.whitelist[domain]; ok && len(wl) > 0 && !wl[url] {
		return true
	}
	return false
}

func validateSource(s model.Source) error {
	if s.Name == "" || s.URL == "" {
		return fmt.Errorf("source name and URL are required")
	}
	if !model.ValidSourceType(s.Type) {
		return fmt.Errorf("invalid source type %q", s.Type)
	}
	if s.Credibility < 0 || s.Credibility > 100 {
		return fmt.Errorf("credibility %.1f outside [0,100]", s.Credibility)
	}
	return nil
}

func sortByCredibility(sources []model.Source) {
	sort.SliceStable(sources, func(i, j int) bool {
		if sources[i].Credibility != sources[j].Credibility {
			return sources[i].Credibility > sources[j].Credibility
		}
		return sources[i].Name < sources[j].Name
	})
}

func appendUnique(list []string, v string) []string {
	for _, x := range list {
		if x == v {
			return list
		}
	}
	return append(list, v)
}

func urlSets(m map[string][]string) map[string]map[string]bool {
	out := make(map[string]map[string]bool, len(m))
	for domain, urls := range m {
		set := make(map[string]bool, len(urls))
		for _, u := range urls {
			set[u] = true
		}
		out[domain] = set
	}
	return out
}
