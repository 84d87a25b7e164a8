// Package extract segments input text and pulls out candidate factual
// claims with byte-offset provenance into the original text.
package extract

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/google/uuid"

	"github.com/ppiankov/veracity/internal/model"
)

// ErrBoundaryNotFound is returned when a claim text cannot be located
// verbatim in its source. This indicates inconsistent caller data, not a
// normal empty-result condition.
var ErrBoundaryNotFound = errors.New("claim text not found in source")

// pattern is one factual-structure test. The name ends up on the claim
// for diagnostics.
type pattern struct {
	name string
	re   *regexp.Regexp
}

// ClaimExtractor extracts factual claims from plain text
type ClaimExtractor struct {
	patterns    []pattern
	subjective  *regexp.Regexp
	imperatives map[string]bool
}

// NewClaimExtractor creates an extractor with the built-in pattern library.
func NewClaimExtractor() *ClaimExtractor {
	return &ClaimExtractor{
		patterns: []pattern{
			{"statistical", regexp.MustCompile(`(?i)\b\d+(?:\.\d+)?\s*(?:%|percent(?:age)?)\b|\b(?:average|median|rate) of\b`)},
			{"numeric", regexp.MustCompile(`(?i)\b\d+(?:[,.]\d+)?\s*(?:°|degrees?|celsius|fahrenheit|kelvin|kg|kilograms?|grams?|tons?|km|kilometers?|miles?|meters?|metres?|feet|liters?|litres?|seconds?|minutes?|hours?|days?|years?|people|species|times)\b`)},
			{"causal", regexp.MustCompile(`(?i)\b(?:causes?|caused by|leads? to|led to|results? in|resulted in|due to|because of|triggers?)\b`)},
			{"dated", regexp.MustCompile(`(?i)\b(?:in|since|by|during|until|before|after)\s+(?:1[0-9]{3}|20[0-9]{2})\b|\b\d{1,2}(?:st|nd|rd|th) century\b`)},
			{"comparative", regexp.MustCompile(`(?i)\b(?:more|less|fewer|greater|higher|lower|faster|slower|larger|smaller|taller|deeper|wider|older|younger|longer|shorter)\s+than\b|\bthe\s+(?:largest|smallest|highest|lowest|first|last|oldest|youngest|longest|deepest|tallest)\b`)},
			{"locational", regexp.MustCompile(`(?i)\b(?:located in|found in|situated in|native to|borders?|capital of|at sea level|north of|south of|east of|west of)\b`)},
			{"compositional", regexp.MustCompile(`(?i)\b(?:consists? of|composed of|made (?:of|up of|from)|contains?|comprises?)\b`)},
		},
		subjective: regexp.MustCompile(`(?i)^(?:i|we|you|my|our|your)\b|\b(?:i|we) (?:think|believe|feel|hope|guess)\b|\bin (?:my|our) opinion\b|\byou (?:should|must|need to)\b`),
		imperatives: map[string]bool{
			"consider": true, "remember": true, "note": true, "imagine": true,
			"please": true, "try": true, "look": true, "think": true,
			"suppose": true, "let's": true, "let": true,
		},
	}
}

// ExtractClaims segments text and returns the factual claims found, in
// source order. Empty or absent text yields an empty list, never an error.
// A non-empty domainHint pre-tags each claim; the router may refine it.
func (e *ClaimExtractor) ExtractClaims(text, domainHint string) []model.Claim {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	claims := make([]model.Claim, 0)
	for _, s := range splitSentences(text) {
		if e.rejected(s.text) {
			continue
		}
		name, ok := e.matchPattern(s.text)
		if !ok {
			continue
		}
		claims = append(claims, model.Claim{
			ID:      uuid.NewString(),
			Text:    s.text,
			Start:   s.start,
			End:     s.end,
			Pattern: name,
			Domain:  domainHint,
		})
	}

	return MergeOverlappingClaims(claims)
}

// matchPattern tests the sentence against the pattern library. Only the
// first matching pattern is reported; a sentence yields at most one claim.
func (e *ClaimExtractor) matchPattern(sentence string) (string, bool) {
	for _, p := range e.patterns {
		if p.re.MatchString(sentence) {
			return p.name, true
		}
	}
	return "", false
}

// rejected filters out questions, subjective statements and imperatives.
func (e *ClaimExtractor) rejected(sentence string) bool {
	trimmed := strings.TrimSpace(sentence)
	if trimmed == "" || strings.HasSuffix(trimmed, "?") {
		return true
	}
	if e.subjective.MatchString(trimmed) {
		return true
	}
	first := strings.ToLower(firstWord(trimmed))
	return e.imperatives[first]
}

func firstWord(s string) string {
	for i, r := range s {
		if unicode.IsSpace(r) {
			return s[:i]
		}
	}
	return s
}

// ExtractClaimBoundaries locates claimText verbatim in text and returns
// its (start, end) byte offsets. A miss wraps ErrBoundaryNotFound: the
// caller handed over text and claim that do not belong together.
func ExtractClaimBoundaries(text, claimText string) (int, int, error) {
	if claimText == "" {
		return 0, 0, fmt.Errorf("%w: empty claim text", ErrBoundaryNotFound)
	}
	idx := strings.Index(text, claimText)
	if idx < 0 {
		return 0, 0, fmt.Errorf("%w: %q", ErrBoundaryNotFound, truncate(claimText, 60))
	}
	return idx, idx + len(claimText), nil
}

// MergeOverlappingClaims resolves claims whose spans overlap by keeping
// only the longest span in each overlapping cluster. Ties go to the
// earliest start. The result is ordered by start offset.
func MergeOverlappingClaims(claims []model.Claim) []model.Claim {
	if len(claims) <= 1 {
		return claims
	}

	sorted := make([]model.Claim, len(claims))
	copy(sorted, claims)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Start != sorted[j].Start {
			return sorted[i].Start < sorted[j].Start
		}
		return sorted[i].End > sorted[j].End
	})

	var merged []model.Claim
	best := sorted[0]
	cluster := sorted[0] // span of the union of the current cluster
	for _, c := range sorted[1:] {
		if c.Overlaps(cluster) {
			if c.Len() > best.Len() || (c.Len() == best.Len() && c.Start < best.Start) {
				best = c
			}
			if c.End > cluster.End {
				cluster.End = c.End
			}
			continue
		}
		merged = append(merged, best)
		best = c
		cluster = c
	}
	merged = append(merged, best)

	return merged
}

// sentence is a segmented unit with offsets into the original text
type sentence struct {
	text  string
	start int
	end   int
}

// splitSentences segments text on terminator punctuation followed by
// whitespace and a capitalization cue. Offsets index the original text so
// that text[start:end] == text of the sentence.
func splitSentences(text string) []sentence {
	var out []sentence

	start := -1
	runes := []rune(text)
	byteIdx := 0
	offsets := make([]int, len(runes)+1)
	for i, r := range runes {
		offsets[i] = byteIdx
		byteIdx += len(string(r))
	}
	offsets[len(runes)] = byteIdx

	flush := func(endRune int) {
		if start < 0 {
			return
		}
		s, e := offsets[start], offsets[endRune]
		txt := text[s:e]
		if isSentenceLike(txt) {
			out = append(out, sentence{text: txt, start: s, end: e})
		}
		start = -1
	}

	for i, r := range runes {
		if start < 0 {
			if !unicode.IsSpace(r) {
				start = i
			}
			continue
		}
		if r != '.' && r != '!' && r != '?' {
			continue
		}
		// Terminator must be followed by whitespace and then an uppercase
		// letter, a digit, or end of text. This keeps abbreviations like
		// "e.g. lower" inside one sentence.
		next := i + 1
		if next < len(runes) && !unicode.IsSpace(runes[next]) {
			continue
		}
		cue := next
		for cue < len(runes) && unicode.IsSpace(runes[cue]) {
			cue++
		}
		if cue < len(runes) && !unicode.IsUpper(runes[cue]) && !unicode.IsDigit(runes[cue]) {
			continue
		}
		flush(i + 1)
	}
	flush(len(runes))

	return out
}

// isSentenceLike filters fragments too short or too long to be claims.
func isSentenceLike(s string) bool {
	t := strings.TrimSpace(s)
	return len(t) >= 20 && len(t) <= 500
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
