package model

// RiskLevel buckets a confidence score for human triage
type RiskLevel string

const (
	RiskCritical RiskLevel = "critical"
	RiskHigh     RiskLevel = "high"
	RiskMedium   RiskLevel = "medium"
	RiskLow      RiskLevel = "low"
)

// VerificationResult is the verdict for one claim. Created once by the
// verifier and immutable thereafter.
type VerificationResult struct {
	Claim          Claim      `json:"claim"`
	Confidence     float64    `json:"confidence"` // 0-100
	Risk           RiskLevel  `json:"risk_level"`
	Supporting     []Evidence `json:"supporting_evidence"`
	Contradicting  []Evidence `json:"contradicting_evidence"`
	Reasoning      string     `json:"reasoning"`
	Recommendation string     `json:"recommendation"`
}

// EvidenceCount returns the total number of evidence items across both
// partitions.
func (r VerificationResult) EvidenceCount() int {
	return len(r.Supporting) + len(r.Contradicting)
}
