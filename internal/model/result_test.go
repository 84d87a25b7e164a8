package model

import "testing"

func TestEvidenceCount(t *testing.T) {
	r := VerificationResult{
		Supporting:    []Evidence{{SourceName: "A"}, {SourceName: "B"}},
		Contradicting: []Evidence{{SourceName: "C"}},
	}
	if r.EvidenceCount() != 3 {
		t.Errorf("Expected 3 evidence items across partitions, got %d", r.EvidenceCount())
	}

	empty := VerificationResult{}
	if empty.EvidenceCount() != 0 {
		t.Errorf("Expected 0 for an evidence-free result, got %d", empty.EvidenceCount())
	}
}
