package retrieve

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/ppiankov/veracity/internal/model"
)

const (
	// DefaultMaxResults bounds evidence per claim unless overridden.
	DefaultMaxResults = 5
	// DefaultExcerptLength bounds excerpt size in bytes.
	DefaultExcerptLength = 200

	phraseBonus   = 20.0
	overlapWeight = 80.0
)

var (
	wordSplit = regexp.MustCompile(`[^a-zA-Z0-9]+`)
	segSplit  = regexp.MustCompile(`[.!?\n]+`)
)

// RelevanceScore measures topical match between a claim and a piece of
// evidence text on a 0-100 scale: how much of the claim's vocabulary the
// evidence covers, plus a bonus when an exact phrase of three or more
// claim words appears verbatim. Near-duplicate texts score near 100,
// disjoint vocabularies near 0.
func RelevanceScore(claimText, evidenceText string) float64 {
	claimWords := keywords(claimText)
	if len(claimWords) == 0 {
		return 0
	}
	evidenceSet := keywordSet(evidenceText)

	hits := 0
	for _, w := range claimWords {
		if evidenceSet[w] {
			hits++
		}
	}
	score := float64(hits) / float64(len(claimWords)) * overlapWeight

	if hasPhraseMatch(claimText, evidenceText) {
		score += phraseBonus
	}
	if score > 100 {
		score = 100
	}
	return score
}

// hasPhraseMatch reports whether any run of 3+ consecutive claim words
// appears verbatim (case-insensitive) in the evidence.
func hasPhraseMatch(claimText, evidenceText string) bool {
	words := wordSplit.Split(strings.ToLower(claimText), -1)
	words = dropEmpty(words)
	if len(words) < 3 {
		return false
	}
	evidence := strings.ToLower(evidenceText)
	for i := 0; i+3 <= len(words); i++ {
		phrase := strings.Join(words[i:i+3], " ")
		if strings.Contains(evidence, phrase) {
			return true
		}
	}
	return false
}

// Excerpt returns the substring of fullText most relevant to claimText,
// at most maxLength bytes. For non-empty fullText the result is never
// empty: with no overlap anywhere it falls back to the head of the text.
func Excerpt(fullText, claimText string, maxLength int) string {
	if maxLength <= 0 {
		maxLength = DefaultExcerptLength
	}
	trimmed := strings.TrimSpace(fullText)
	if trimmed == "" {
		return ""
	}

	claimSet := keywordSet(claimText)
	segments := splitSegments(trimmed)

	bestIdx, bestHits := 0, -1
	for i, seg := range segments {
		hits := 0
		for _, w := range keywords(seg) {
			if claimSet[w] {
				hits++
			}
		}
		if hits > bestHits {
			bestIdx, bestHits = i, hits
		}
	}

	// Grow from the best segment with its neighbors while room remains.
	excerpt := segments[bestIdx]
	for next := bestIdx + 1; next < len(segments); next++ {
		grown := excerpt + " " + segments[next]
		if len(grown) > maxLength {
			break
		}
		excerpt = grown
	}

	return truncateBytes(excerpt, maxLength)
}

// FilterByCredibility keeps evidence whose source credibility is at least
// minCredibility.
func FilterByCredibility(list []model.Evidence, minCredibility float64) []model.Evidence {
	out := make([]model.Evidence, 0, len(list))
	for _, e := range list {
		if e.Credibility >= minCredibility {
			out = append(out, e)
		}
	}
	return out
}

// FilterByRelevance keeps evidence whose relevance is at least
// minRelevance.
func FilterByRelevance(list []model.Evidence, minRelevance float64) []model.Evidence {
	out := make([]model.Evidence, 0, len(list))
	for _, e := range list {
		if e.Relevance >= minRelevance {
			out = append(out, e)
		}
	}
	return out
}

// RankEvidence sorts evidence descending by the weighted composite
// credibility*credWeight + relevance*relWeight. The sort is stable, so
// ranking its own output leaves the order unchanged. Callers normally
// supply weights summing to 1 so the composite stays on the 0-100 scale.
func RankEvidence(list []model.Evidence, credWeight, relWeight float64) []model.Evidence {
	out := make([]model.Evidence, len(list))
	copy(out, list)
	sort.SliceStable(out, func(i, j int) bool {
		return composite(out[i], credWeight, relWeight) > composite(out[j], credWeight, relWeight)
	})
	return out
}

func composite(e model.Evidence, credWeight, relWeight float64) float64 {
	return e.Credibility*credWeight + e.Relevance*relWeight
}

// keywords returns the distinct significant words of text, lowered.
func keywords(text string) []string {
	set := keywordSet(text)
	out := make([]string, 0, len(set))
	for w := range set {
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}

func keywordSet(text string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range wordSplit.Split(strings.ToLower(text), -1) {
		if len(w) >= 3 && !stopwords[w] {
			set[w] = true
		}
	}
	return set
}

func splitSegments(text string) []string {
	segs := segSplit.Split(text, -1)
	out := make([]string, 0, len(segs))
	for _, s := range segs {
		s = strings.TrimSpace(s)
		if s != "" {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		out = append(out, strings.TrimSpace(text))
	}
	return out
}

// truncateBytes cuts s to at most n bytes without splitting a rune.
func truncateBytes(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

func dropEmpty(words []string) []string {
	out := words[:0]
	for _, w := range words {
		if w != "" {
			out = append(out, w)
		}
	}
	return out
}

var stopwords = map[string]bool{
	"the": true, "and": true, "for": true, "are": true, "was": true,
	"were": true, "that": true, "this": true, "with": true, "from": true,
	"has": true, "have": true, "had": true, "its": true, "their": true,
	"which": true, "into": true, "than": true, "been": true, "being": true,
}
