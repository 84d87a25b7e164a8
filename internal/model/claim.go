package model

// Claim represents a single factual assertion extracted from input text
type Claim struct {
	ID      string `json:"id"`                // Stable identifier assigned at extraction
	Text    string `json:"text"`              // The claim text itself
	Start   int    `json:"start"`             // Byte offset of the claim in the source text
	End     int    `json:"end"`               // Byte offset one past the claim's last byte
	Pattern string `json:"pattern,omitempty"` // Which factual-structure pattern matched (e.g., "numeric")
	Domain  string `json:"domain,omitempty"`  // Knowledge domain, populated by the router

	// Populated by the verifier, zero until then.
	Confidence     float64    `json:"confidence,omitempty"`
	Risk           RiskLevel  `json:"risk_level,omitempty"`
	Evidence       []Evidence `json:"evidence,omitempty"`
	Recommendation string     `json:"recommendation,omitempty"`
}

// Len returns the span length in bytes.
func (c Claim) Len() int {
	return c.End - c.Start
}

// Overlaps reports whether the claim's span intersects other's span.
func (c Claim) Overlaps(other Claim) bool {
	return c.Start < other.End && other.Start < c.End
}
