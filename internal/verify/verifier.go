// Package verify turns a claim plus its retrieved evidence into a
// confidence score, a risk level, and human-readable reasoning.
package verify

import (
	"context"
	"fmt"
	"sort"

	"github.com/ppiankov/veracity/internal/model"
)

const (
	credibilityWeight = 0.6
	relevanceWeight   = 0.4
	// maxMixedPenalty is the confidence cost when contradicting evidence
	// fully matches supporting evidence in quantity.
	maxMixedPenalty = 30.0
)

// Verifier computes verdicts for claims
type Verifier struct {
	stance StancePartitioner
	cfg    model.Config
}

// NewVerifier creates a verifier with the lexical polarity stance check.
func NewVerifier(cfg model.Config) *Verifier {
	return &Verifier{stance: LexicalPolarity{}, cfg: cfg}
}

// NewVerifierWith creates a verifier with a caller-supplied stance
// strategy.
func NewVerifierWith(cfg model.Config, stance StancePartitioner) *Verifier {
	return &Verifier{stance: stance, cfg: cfg}
}

// VerifyClaim produces the verdict for one claim. An empty evidence list
// is a valid input: confidence comes out near zero, the risk level lands
// in critical or high, and the reasoning says no evidence was found.
func (v *Verifier) VerifyClaim(claim model.Claim, evidence []model.Evidence) model.VerificationResult {
	supporting, contradicting := v.stance.Partition(claim, evidence)

	confidence := v.confidence(supporting, contradicting)
	risk := v.cfg.Risk.RiskFor(confidence)
	reasoning := buildReasoning(supporting, contradicting, confidence)
	recommendation := recommendationFor(risk)

	verdictClaim := claim
	verdictClaim.Confidence = confidence
	verdictClaim.Risk = risk
	verdictClaim.Evidence = evidence
	verdictClaim.Recommendation = recommendation

	return model.VerificationResult{
		Claim:          verdictClaim,
		Confidence:     confidence,
		Risk:           risk,
		Supporting:     supporting,
		Contradicting:  contradicting,
		Reasoning:      reasoning,
		Recommendation: recommendation,
	}
}

// VerifyBatch verifies claims[i] against evidenceLists[i]. Mismatched
// lengths fail before any claim is processed. Results preserve input
// order regardless of completion order; concurrency is bounded by
// Config.MaxConcurrentVerifications. Cancellation stops scheduling
// between claims and returns the context error with the results produced
// so far.
func (v *Verifier) VerifyBatch(ctx context.Context, claims []model.Claim, evidenceLists [][]model.Evidence) ([]model.VerificationResult, error) {
	if len(claims) != len(evidenceLists) {
		return nil, fmt.Errorf("verify batch: %d claims but %d evidence lists", len(claims), len(evidenceLists))
	}

	results := make([]model.VerificationResult, len(claims))
	sem := make(chan struct{}, v.cfg.MaxConcurrentVerifications)
	done := make(chan struct{}, len(claims))

	for i := range claims {
		go func(idx int) {
			defer func() { done <- struct{}{} }()
			select {
			case <-ctx.Done():
				return
			case sem <- struct{}{}:
			}
			defer func() { <-sem }()

			results[idx] = v.VerifyClaim(claims[idx], evidenceLists[idx])
		}(i)
	}
	for range claims {
		<-done
	}

	return results, ctx.Err()
}

// confidence blends mean credibility and mean relevance of supporting
// evidence, then penalizes mixed evidence so comparable amounts of
// supporting and contradicting material cannot score spuriously high.
func (v *Verifier) confidence(supporting, contradicting []model.Evidence) float64 {
	if len(supporting) == 0 {
		return 0
	}

	var credSum, relSum float64
	for _, e := range supporting {
		credSum += e.Credibility
		relSum += e.Relevance
	}
	n := float64(len(supporting))
	confidence := credibilityWeight*(credSum/n) + relevanceWeight*(relSum/n)

	if len(contradicting) > 0 {
		ratio := float64(len(contradicting)) / float64(len(supporting)+len(contradicting))
		confidence -= maxMixedPenalty * ratio
	}

	if confidence < 0 {
		confidence = 0
	}
	if confidence > 100 {
		confidence = 100
	}
	return confidence
}

func buildReasoning(supporting, contradicting []model.Evidence, confidence float64) string {
	total := len(supporting) + len(contradicting)
	if total == 0 {
		return "No evidence was found in the trusted source catalogue for this claim; it remains unverified."
	}

	var credSum float64
	for _, e := range supporting {
		credSum += e.Credibility
	}
	meanCred := 0.0
	if len(supporting) > 0 {
		meanCred = credSum / float64(len(supporting))
	}

	reasoning := fmt.Sprintf("%d evidence item(s) evaluated: %d supporting (average credibility %.1f), %d contradicting.",
		total, len(supporting), meanCred, len(contradicting))
	if len(supporting) > 0 && len(contradicting) > 0 {
		reasoning += " Mixed evidence reduced the confidence score."
	}
	return reasoning + fmt.Sprintf(" Final confidence: %.1f/100.", confidence)
}

func recommendationFor(risk model.RiskLevel) string {
	switch risk {
	case model.RiskLow:
		return "LOW RISK: safe to use with attribution."
	case model.RiskMedium:
		return "MEDIUM RISK: usable with caution; corroborate key figures before publication."
	case model.RiskHigh:
		return "HIGH RISK: verify against primary sources before use."
	default:
		return "CRITICAL: do not publish without independent verification."
	}
}

// OverallConfidence returns the mean confidence across results, 0 for an
// empty slice.
func OverallConfidence(results []model.VerificationResult) float64 {
	if len(results) == 0 {
		return 0
	}
	sum := 0.0
	for _, r := range results {
		sum += r.Confidence
	}
	return sum / float64(len(results))
}

// CountHighRisk counts results at high or critical risk.
func CountHighRisk(results []model.VerificationResult) int {
	count := 0
	for _, r := range results {
		if r.Risk == model.RiskHigh || r.Risk == model.RiskCritical {
			count++
		}
	}
	return count
}

// FilterByRisk keeps results whose risk level is in levels.
func FilterByRisk(results []model.VerificationResult, levels ...model.RiskLevel) []model.VerificationResult {
	want := make(map[model.RiskLevel]bool, len(levels))
	for _, l := range levels {
		want[l] = true
	}
	out := make([]model.VerificationResult, 0, len(results))
	for _, r := range results {
		if want[r.Risk] {
			out = append(out, r)
		}
	}
	return out
}

// Summarize aggregates results into the report-level statistics:
// histogram per risk level, mean confidence, total claims, and the
// distinct domains observed (sorted).
func Summarize(results []model.VerificationResult) model.SummaryStatistics {
	stats := model.SummaryStatistics{
		TotalClaims: len(results),
		RiskCounts:  make(map[model.RiskLevel]int),
	}
	domains := make(map[string]bool)
	sum := 0.0
	for _, r := range results {
		stats.RiskCounts[r.Risk]++
		sum += r.Confidence
		if r.Claim.Domain != "" {
			domains[r.Claim.Domain] = true
		}
	}
	if len(results) > 0 {
		stats.MeanConfidence = sum / float64(len(results))
	}
	for d := range domains {
		stats.Domains = append(stats.Domains, d)
	}
	sort.Strings(stats.Domains)
	return stats
}
