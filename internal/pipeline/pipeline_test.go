package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ppiankov/veracity/internal/model"
	"github.com/ppiankov/veracity/internal/retrieve"
)

func newTestPipeline(t *testing.T, backend retrieve.Backend) *Pipeline {
	t.Helper()
	cfg := model.DefaultConfig()
	cfg.Cache.Enabled = false
	p, err := New(cfg, WithBackend(backend))
	if err != nil {
		t.Fatalf("Expected pipeline construction to succeed, got %v", err)
	}
	return p
}

func TestAnalyze_WellSupportedClaim(t *testing.T) {
	backend := retrieve.NewStaticBackend()
	backend.Add("https://www.nist.gov", retrieve.Document{
		URL:  "https://www.nist.gov/si/boiling-point",
		Text: "Water boils at 100 degrees Celsius at sea level under one atmosphere of pressure.",
	})
	p := newTestPipeline(t, backend)

	text := "Water boils at 100 degrees Celsius at sea level."
	rep, err := p.Analyze(context.Background(), text, nil)
	if err != nil {
		t.Fatalf("Expected analysis to succeed, got %v", err)
	}

	if rep.Statistics.TotalClaims != 1 {
		t.Fatalf("Expected 1 claim, got %d", rep.Statistics.TotalClaims)
	}
	result := rep.Results[0]
	if result.Claim.Text != text {
		t.Errorf("Expected the full sentence as the claim, got %q", result.Claim.Text)
	}
	if result.Claim.Domain != "physics" {
		t.Errorf("Expected the claim routed to physics, got %q", result.Claim.Domain)
	}
	if text[result.Claim.Start:result.Claim.End] != result.Claim.Text {
		t.Error("Expected claim offsets to slice the input back to the claim text")
	}
	if len(result.Supporting) == 0 {
		t.Fatal("Expected supporting evidence from the corpus")
	}
	if result.Risk != model.RiskLow {
		t.Errorf("Expected low risk for a well-supported claim, got %s (confidence %.1f)",
			result.Risk, result.Confidence)
	}
	if result.Confidence < 70 {
		t.Errorf("Expected confidence at or above the acceptance threshold, got %.1f", result.Confidence)
	}
}

func TestAnalyze_EmptyInput(t *testing.T) {
	p := newTestPipeline(t, retrieve.NewStaticBackend())

	rep, err := p.Analyze(context.Background(), "   \n  ", nil)
	if err != nil {
		t.Fatalf("Expected empty input to be a valid run, got %v", err)
	}
	if rep.Statistics.TotalClaims != 0 {
		t.Errorf("Expected 0 claims, got %d", rep.Statistics.TotalClaims)
	}
	if rep.Summary != "No verifiable claims were found in the input text." {
		t.Errorf("Unexpected empty-run summary: %q", rep.Summary)
	}
}

func TestAnalyze_NoCheckableClaims(t *testing.T) {
	p := newTestPipeline(t, retrieve.NewStaticBackend())

	rep, err := p.Analyze(context.Background(), "I think the weather is lovely today, don't you?", nil)
	if err != nil {
		t.Fatalf("Expected opinion-only input to be a valid run, got %v", err)
	}
	if rep.Statistics.TotalClaims != 0 {
		t.Errorf("Expected no claims from subjective text, got %d", rep.Statistics.TotalClaims)
	}
}

func TestAnalyze_UnsupportedClaimIsCritical(t *testing.T) {
	p := newTestPipeline(t, retrieve.NewStaticBackend())

	rep, err := p.Analyze(context.Background(),
		"The ancient fortress was built in 1204 on the northern coast.", nil)
	if err != nil {
		t.Fatalf("Expected analysis to succeed, got %v", err)
	}
	if rep.Statistics.TotalClaims != 1 {
		t.Fatalf("Expected 1 claim, got %d", rep.Statistics.TotalClaims)
	}
	result := rep.Results[0]
	if result.Confidence != 0 {
		t.Errorf("Expected confidence 0 with an empty corpus, got %.1f", result.Confidence)
	}
	if result.Risk != model.RiskCritical {
		t.Errorf("Expected critical risk, got %s", result.Risk)
	}
}

func TestAnalyze_CarriesSignals(t *testing.T) {
	p := newTestPipeline(t, retrieve.NewStaticBackend())
	signals := []model.ManipulationSignal{{Kind: "deepfake", Description: "face swap artifacts"}}

	rep, err := p.Analyze(context.Background(), "The lake contains 5 species of trout.", signals)
	if err != nil {
		t.Fatalf("Expected analysis to succeed, got %v", err)
	}
	if len(rep.Signals) != 1 || rep.Signals[0].Kind != "deepfake" {
		t.Errorf("Expected the signal carried into the report, got %v", rep.Signals)
	}
}

func TestAnalyze_Cancelled(t *testing.T) {
	p := newTestPipeline(t, retrieve.NewStaticBackend())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Analyze(ctx, "Water boils at 100 degrees Celsius at sea level.", nil)
	if err == nil {
		t.Error("Expected an error for a cancelled context")
	}
}

func TestNew_InvalidConfig(t *testing.T) {
	cfg := model.DefaultConfig()
	cfg.Risk.CriticalBelow = 80 // above HighBelow

	_, err := New(cfg)
	if err == nil || !strings.Contains(err.Error(), "config:") {
		t.Errorf("Expected a config validation error, got %v", err)
	}
}

func TestRenderReport(t *testing.T) {
	p := newTestPipeline(t, retrieve.NewStaticBackend())
	rep, err := p.Analyze(context.Background(), "The river flows for 120 kilometers through the valley.", nil)
	if err != nil {
		t.Fatalf("Expected analysis to succeed, got %v", err)
	}

	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "out.json")
	mdPath := filepath.Join(dir, "out.md")

	if err := p.RenderReport(rep, jsonPath, mdPath, ""); err != nil {
		t.Fatalf("Expected rendering to succeed, got %v", err)
	}
	for _, path := range []string{jsonPath, mdPath} {
		info, err := os.Stat(path)
		if err != nil {
			t.Fatalf("Expected %s to exist, got %v", path, err)
		}
		if info.Size() == 0 {
			t.Errorf("Expected %s to be non-empty", path)
		}
	}
}

func TestRegistryAccessor(t *testing.T) {
	p := newTestPipeline(t, retrieve.NewStaticBackend())
	if p.Registry() == nil {
		t.Fatal("Expected the pipeline to expose its registry")
	}
	if len(p.Registry().AllSources()) == 0 {
		t.Error("Expected the built-in catalogue to be loaded")
	}
}
