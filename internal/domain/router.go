// Package domain classifies claims into knowledge domains via weighted
// lexical scoring. The scoring strategy is pluggable so a model-based
// classifier can replace the keyword tables without touching callers.
package domain

import (
	"regexp"
	"sort"
	"strings"

	"github.com/ppiankov/veracity/internal/model"
)

// General is the catch-all domain for claims no classifier can place.
const General = "general"

const (
	primaryWeight       = 2.0
	secondaryWeight     = 1.0
	acceptanceThreshold = 1.0
)

// Classifier scores candidate domains for a text. A domain absent from
// the returned map scored zero.
type Classifier interface {
	Scores(text string) map[string]float64
	Domains() []string
}

// Router assigns domains to claims using a Classifier
type Router struct {
	classifier Classifier
}

// NewRouter builds a router with the keyword classifier, extended by any
// custom domains in cfg.
func NewRouter(cfg model.Config) *Router {
	return &Router{classifier: NewKeywordClassifier(cfg.CustomDomains)}
}

// NewRouterWith builds a router around a caller-supplied classifier.
func NewRouterWith(c Classifier) *Router {
	return &Router{classifier: c}
}

// ClassifyDomain returns the best-scoring domain for the claim, or
// General when no domain clears the acceptance threshold.
func (r *Router) ClassifyDomain(claim model.Claim) string {
	best, _, _ := r.rank(claim.Text)
	return best
}

// ClassifyBatch classifies each claim. The result has the same length and
// order as the input.
func (r *Router) ClassifyBatch(claims []model.Claim) []string {
	out := make([]string, len(claims))
	for i, c := range claims {
		out[i] = r.ClassifyDomain(c)
	}
	return out
}

// DomainConfidence recomputes a 0-100 confidence for the assigned domain
// relative to the runner-up. Diagnostic only; it never re-decides the
// domain. Zero keyword hits always yield 0.
func (r *Router) DomainConfidence(claim model.Claim, assigned string) float64 {
	scores := r.classifier.Scores(claim.Text)
	own := scores[assigned]
	if own <= 0 {
		return 0
	}
	runnerUp := 0.0
	for d, s := range scores {
		if d != assigned && s > runnerUp {
			runnerUp = s
		}
	}
	return own / (own + runnerUp) * 100
}

// ValidateDomain reports whether d is a supported domain.
func (r *Router) ValidateDomain(d string) bool {
	if d == General {
		return true
	}
	for _, known := range r.classifier.Domains() {
		if d == known {
			return true
		}
	}
	return false
}

// rank returns the winning domain with its score and the runner-up score.
func (r *Router) rank(text string) (string, float64, float64) {
	scores := r.classifier.Scores(text)

	names := make([]string, 0, len(scores))
	for d := range scores {
		names = append(names, d)
	}
	sort.Strings(names) // deterministic tie-break

	best, bestScore, runnerUp := General, 0.0, 0.0
	for _, d := range names {
		s := scores[d]
		if s > bestScore {
			runnerUp = bestScore
			best, bestScore = d, s
		} else if s > runnerUp {
			runnerUp = s
		}
	}
	if bestScore <= acceptanceThreshold {
		return General, bestScore, runnerUp
	}
	return best, bestScore, runnerUp
}

// keywordSet holds one domain's weighted vocabulary, pre-split into
// single tokens and multi-word phrases at construction.
type keywordSet struct {
	tokens  map[string]float64
	phrases map[string]float64
}

// KeywordClassifier is the default Classifier: weighted keyword hits per
// domain, primary keywords counting double.
type KeywordClassifier struct {
	sets  map[string]keywordSet
	order []string
}

// NewKeywordClassifier builds the classifier from the built-in domains
// plus any custom definitions, which participate identically.
func NewKeywordClassifier(custom []model.DomainDef) *KeywordClassifier {
	defs := append(builtinDomains(), custom...)

	c := &KeywordClassifier{sets: make(map[string]keywordSet)}
	for _, def := range defs {
		set := keywordSet{tokens: map[string]float64{}, phrases: map[string]float64{}}
		addKeywords(set, def.Primary, primaryWeight)
		addKeywords(set, def.Secondary, secondaryWeight)
		c.sets[def.Name] = set
		c.order = append(c.order, def.Name)
	}
	return c
}

func addKeywords(set keywordSet, words []string, weight float64) {
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		if strings.ContainsRune(w, ' ') {
			set.phrases[w] = weight
		} else {
			set.tokens[w] = weight
		}
	}
}

// Scores sums keyword weights per domain. Each keyword counts at most
// once regardless of repetition in the text.
func (c *KeywordClassifier) Scores(text string) map[string]float64 {
	lower := strings.ToLower(text)
	tokens := tokenSet(lower)

	scores := make(map[string]float64, len(c.sets))
	for name, set := range c.sets {
		total := 0.0
		for tok, w := range set.tokens {
			if tokens[tok] {
				total += w
			}
		}
		for phrase, w := range set.phrases {
			if strings.Contains(lower, phrase) {
				total += w
			}
		}
		if total > 0 {
			scores[name] = total
		}
	}
	return scores
}

// Domains lists the supported domains in registration order.
func (c *KeywordClassifier) Domains() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

var tokenSplit = regexp.MustCompile(`[^a-z0-9]+`)

func tokenSet(lower string) map[string]bool {
	set := make(map[string]bool)
	for _, tok := range tokenSplit.Split(lower, -1) {
		if tok != "" {
			set[tok] = true
		}
	}
	return set
}

func builtinDomains() []model.DomainDef {
	return []model.DomainDef{
		{
			Name:      "physics",
			Primary:   []string{"quantum", "particle", "gravity", "boils", "melts", "celsius", "fahrenheit", "photon", "relativity", "atom", "velocity", "energy"},
			Secondary: []string{"temperature", "degrees", "mass", "light", "speed", "heat", "pressure", "wave", "force", "orbit"},
		},
		{
			Name:      "biology",
			Primary:   []string{"cell", "cells", "species", "dna", "protein", "organism", "evolution", "gene", "bacteria", "virus", "photosynthesis"},
			Secondary: []string{"plant", "animal", "blood", "brain", "enzyme", "habitat", "membrane", "tissue"},
		},
		{
			Name:      "history",
			Primary:   []string{"century", "empire", "revolution", "dynasty", "ancient", "medieval", "treaty", "founded", "conquered"},
			Secondary: []string{"war", "king", "queen", "battle", "era", "kingdom", "colony", "historians"},
		},
		{
			Name:      "statistics",
			Primary:   []string{"percent", "percentage", "average", "median", "survey", "probability", "census"},
			Secondary: []string{"population", "data", "study", "sample", "rate", "increase", "decrease", "trend"},
		},
	}
}
