package report

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ppiankov/veracity/internal/model"
)

// ExportJSON renders the structured form of the report. Re-parsing the
// output yields the same summary statistics the report carries.
func ExportJSON(r *model.Report) ([]byte, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal report: %w", err)
	}
	return data, nil
}

// ExportMarkdown renders the human-readable text form with the fixed
// section layout: Metadata, Summary, Statistics, Detailed Results,
// Recommendations, Disclaimer.
func ExportMarkdown(r *model.Report) string {
	var b strings.Builder

	b.WriteString("# Fact-Check Report\n\n")

	b.WriteString("## Metadata\n\n")
	fmt.Fprintf(&b, "- Generated: %s\n", r.Metadata.GeneratedAt.Format("2006-01-02 15:04:05 UTC"))
	fmt.Fprintf(&b, "- Version: %s\n", r.Metadata.Version)
	fmt.Fprintf(&b, "- Input digest: `%s`\n", r.Metadata.InputDigest)
	fmt.Fprintf(&b, "- Processing time: %s\n\n", r.Metadata.Duration)

	b.WriteString("## Summary\n\n")
	b.WriteString(r.Summary)
	b.WriteString("\n\n")

	b.WriteString("## Statistics\n\n")
	fmt.Fprintf(&b, "- Total claims: %d\n", r.Statistics.TotalClaims)
	fmt.Fprintf(&b, "- Average confidence: %.1f/100\n", r.Statistics.MeanConfidence)
	for _, level := range []model.RiskLevel{model.RiskCritical, model.RiskHigh, model.RiskMedium, model.RiskLow} {
		if n := r.Statistics.RiskCounts[level]; n > 0 {
			fmt.Fprintf(&b, "- %s risk: %d\n", titleCase(string(level)), n)
		}
	}
	if len(r.Statistics.Domains) > 0 {
		fmt.Fprintf(&b, "- Domains: %s\n", strings.Join(r.Statistics.Domains, ", "))
	}
	b.WriteString("\n")

	b.WriteString("## Detailed Results\n\n")
	if len(r.Results) == 0 {
		b.WriteString("No claims were extracted from the input.\n\n")
	}
	for i, res := range r.Results {
		fmt.Fprintf(&b, "### %d. %s\n\n", i+1, res.Claim.Text)
		fmt.Fprintf(&b, "- Domain: %s\n", res.Claim.Domain)
		fmt.Fprintf(&b, "- Confidence: %.1f/100 (%s risk)\n", res.Confidence, res.Risk)
		fmt.Fprintf(&b, "- Reasoning: %s\n", res.Reasoning)
		fmt.Fprintf(&b, "- Recommendation: %s\n", res.Recommendation)
		writeEvidenceList(&b, "Supporting evidence", res.Supporting)
		writeEvidenceList(&b, "Contradicting evidence", res.Contradicting)
		b.WriteString("\n")
	}

	b.WriteString("## Recommendations\n\n")
	for _, rec := range r.Recommendations {
		fmt.Fprintf(&b, "- %s\n", rec)
	}
	b.WriteString("\n")

	if len(r.Signals) > 0 {
		b.WriteString("## Manipulation Signals\n\n")
		for _, s := range r.Signals {
			fmt.Fprintf(&b, "- %s: %s\n", s.Kind, s.Description)
		}
		b.WriteString("\n")
	}

	if r.LLM != nil {
		b.WriteString("## Generated Narrative\n\n")
		fmt.Fprintf(&b, "_Produced by %s/%s; advisory only, does not affect verdicts._\n\n", r.LLM.Provider, r.LLM.Model)
		b.WriteString(r.LLM.SummaryMD)
		b.WriteString("\n\n")
	}

	b.WriteString("## Disclaimer\n\n")
	b.WriteString(r.Disclaimer)
	b.WriteString("\n")

	return b.String()
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func writeEvidenceList(b *strings.Builder, title string, evidence []model.Evidence) {
	if len(evidence) == 0 {
		return
	}
	fmt.Fprintf(b, "- %s:\n", title)
	for _, e := range evidence {
		fmt.Fprintf(b, "  - %s (%s, credibility %.0f, relevance %.0f): %q\n",
			e.SourceName, e.SourceType, e.Credibility, e.Relevance, e.Excerpt)
	}
}
