package model

import "time"

// Disclaimer is attached verbatim to every report.
const Disclaimer = "This report is an advisory risk assessment derived from " +
	"available evidence. It does not establish ground truth. Claims flagged " +
	"as low risk may still be wrong; claims flagged as critical may still be " +
	"right. Use it to prioritize human review, not to replace it."

// ReportMetadata records when and how a report was produced
type ReportMetadata struct {
	GeneratedAt time.Time     `json:"generated_at"`
	Version     string        `json:"version"`
	InputDigest string        `json:"input_digest"` // SHA-256 of the analyzed text
	Duration    time.Duration `json:"duration_ns"`
}

// SummaryStatistics aggregates the verdicts of one pipeline run
type SummaryStatistics struct {
	TotalClaims    int               `json:"total_claims"`
	RiskCounts     map[RiskLevel]int `json:"risk_counts"`
	MeanConfidence float64           `json:"mean_confidence"`
	Domains        []string          `json:"domains"` // Distinct domains observed, sorted
}

// ManipulationSignal is an out-of-band finding from a companion analysis
// stage (e.g., video forensics). The pipeline carries it into the report
// without interpreting it.
type ManipulationSignal struct {
	Kind        string                 `json:"kind"`
	Description string                 `json:"description,omitempty"`
	Data        map[string]interface{} `json:"data,omitempty"`
}

// LLMSummary holds an optional generated narrative. It is produced after
// verification and never affects confidence or risk.
type LLMSummary struct {
	Provider  string   `json:"provider"`
	Model     string   `json:"model"`
	SummaryMD string   `json:"summary_md"`
	Warnings  []string `json:"warnings,omitempty"`
}

// Report is the run-level output: every verdict plus aggregate statistics
// and renderable narrative text. Exporters treat it as read-only.
type Report struct {
	Metadata        ReportMetadata       `json:"metadata"`
	Results         []VerificationResult `json:"claims"`
	Signals         []ManipulationSignal `json:"manipulation_signals,omitempty"`
	Statistics      SummaryStatistics    `json:"summary_statistics"`
	Summary         string               `json:"human_summary"`
	Recommendations []string             `json:"recommendations"`
	Disclaimer      string               `json:"disclaimer"`
	LLM             *LLMSummary          `json:"llm,omitempty"`
}
