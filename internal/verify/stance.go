package verify

import (
	"strings"

	"github.com/ppiankov/veracity/internal/model"
)

// StancePartitioner splits retrieved evidence into supporting and
// contradicting sets for a claim. Every input item lands in exactly one
// of the two outputs. Implementations are strategies: the default is a
// lexical polarity check, a trained entailment model can slot in behind
// the same interface.
type StancePartitioner interface {
	Partition(claim model.Claim, evidence []model.Evidence) (supporting, contradicting []model.Evidence)
}

// LexicalPolarity is the default StancePartitioner. Evidence contradicts
// when its excerpt carries a refutation marker, or a negation term the
// claim itself does not contain. Everything else supports.
type LexicalPolarity struct{}

var refutationMarkers = []string{
	"debunked", "is a myth", "false claim", "no evidence for",
	"refuted", "disproven", "is incorrect", "is untrue", "contrary to",
	"misleading", "hoax",
}

var negationTerms = []string{
	"not", "no", "never", "none", "cannot", "isn't", "aren't", "wasn't",
	"doesn't", "don't", "didn't", "won't",
}

// Partition implements StancePartitioner.
func (LexicalPolarity) Partition(claim model.Claim, evidence []model.Evidence) ([]model.Evidence, []model.Evidence) {
	supporting := make([]model.Evidence, 0, len(evidence))
	contradicting := make([]model.Evidence, 0)

	claimLower := strings.ToLower(claim.Text)
	for _, e := range evidence {
		if contradicts(claimLower, strings.ToLower(e.Excerpt)) {
			contradicting = append(contradicting, e)
		} else {
			supporting = append(supporting, e)
		}
	}
	return supporting, contradicting
}

func contradicts(claimLower, excerptLower string) bool {
	for _, marker := range refutationMarkers {
		if strings.Contains(excerptLower, marker) {
			return true
		}
	}
	for _, term := range negationTerms {
		if containsWord(excerptLower, term) && !containsWord(claimLower, term) {
			return true
		}
	}
	return false
}

// containsWord matches term on word boundaries so "no" does not hit
// "north".
func containsWord(text, term string) bool {
	idx := 0
	for {
		i := strings.Index(text[idx:], term)
		if i < 0 {
			return false
		}
		start := idx + i
		end := start + len(term)
		beforeOK := start == 0 || !isWordByte(text[start-1])
		afterOK := end == len(text) || !isWordByte(text[end])
		if beforeOK && afterOK {
			return true
		}
		idx = start + 1
	}
}

func isWordByte(b byte) bool {
	return b == '\'' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}
