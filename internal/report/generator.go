// Package report aggregates verification results into an exportable
// report. Exporters are pure functions of the Report: rendering never
// recomputes statistics.
package report

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/ppiankov/veracity/internal/model"
	"github.com/ppiankov/veracity/internal/verify"
)

// Version identifies the report schema producer.
const Version = "0.2.0"

// Generator builds reports from verification results
type Generator struct {
	acceptance float64
}

// NewGenerator creates a report generator. The acceptance threshold from
// cfg decides which claims count as adequately supported in the
// recommendations.
func NewGenerator(cfg model.Config) *Generator {
	return &Generator{acceptance: cfg.AcceptanceThreshold}
}

// Generate assembles the run-level report. signals are carried into the
// report opaquely; duration is the processing time of the whole run.
func (g *Generator) Generate(results []model.VerificationResult, inputText string, signals []model.ManipulationSignal, duration time.Duration) *model.Report {
	stats := verify.Summarize(results)
	digest := sha256.Sum256([]byte(inputText))

	return &model.Report{
		Metadata: model.ReportMetadata{
			GeneratedAt: time.Now().UTC(),
			Version:     Version,
			InputDigest: hex.EncodeToString(digest[:]),
			Duration:    duration,
		},
		Results:         results,
		Signals:         signals,
		Statistics:      stats,
		Summary:         buildSummary(stats, results),
		Recommendations: g.buildRecommendations(results, signals),
		Disclaimer:      model.Disclaimer,
	}
}

// buildSummary constructs the narrative from the statistics, not from
// per-report hand-written text.
func buildSummary(stats model.SummaryStatistics, results []model.VerificationResult) string {
	if stats.TotalClaims == 0 {
		return "No verifiable claims were found in the input text."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Analyzed %d claim(s)", stats.TotalClaims)
	if len(stats.Domains) > 0 {
		fmt.Fprintf(&b, " across %d domain(s) (%s)", len(stats.Domains), strings.Join(stats.Domains, ", "))
	}
	fmt.Fprintf(&b, ". Average confidence %.1f/100.", stats.MeanConfidence)

	highRisk := verify.CountHighRisk(results)
	lowRisk := stats.RiskCounts[model.RiskLow]
	if highRisk > 0 {
		fmt.Fprintf(&b, " %d claim(s) carry high or critical risk and need review.", highRisk)
	}
	if lowRisk > 0 {
		fmt.Fprintf(&b, " %d claim(s) are low risk.", lowRisk)
	}
	return b.String()
}

func (g *Generator) buildRecommendations(results []model.VerificationResult, signals []model.ManipulationSignal) []string {
	var recs []string

	if high := verify.CountHighRisk(results); high > 0 {
		recs = append(recs, fmt.Sprintf("Independently verify the %d high or critical risk claim(s) before publication.", high))
	}
	for _, r := range verify.FilterByRisk(results, model.RiskCritical) {
		recs = append(recs, fmt.Sprintf("Critical: %q — %s", compact(r.Claim.Text, 80), r.Recommendation))
	}

	mixed, unverified, belowAcceptance := 0, 0, 0
	for _, r := range results {
		if len(r.Supporting) > 0 && len(r.Contradicting) > 0 {
			mixed++
		}
		if r.EvidenceCount() == 0 {
			unverified++
		}
		if r.Confidence < g.acceptance {
			belowAcceptance++
		}
	}
	if mixed > 0 {
		recs = append(recs, fmt.Sprintf("%d claim(s) have conflicting evidence; consult the partitioned excerpts in the detailed results.", mixed))
	}
	if unverified > 0 {
		recs = append(recs, fmt.Sprintf("%d claim(s) had no evidence in the source catalogue; consider registering additional sources for their domains.", unverified))
	}
	if belowAcceptance > 0 {
		recs = append(recs, fmt.Sprintf("%d claim(s) score below the %.0f-point acceptance threshold; corroborate them before relying on this text.", belowAcceptance, g.acceptance))
	}

	if len(signals) > 0 {
		recs = append(recs, fmt.Sprintf("%d manipulation signal(s) were reported by companion analysis; review them alongside this report.", len(signals)))
	}
	if len(recs) == 0 && len(results) > 0 {
		recs = append(recs, "All claims meet the acceptance threshold; attribute the cited sources when publishing.")
	}
	return recs
}

func compact(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
