package domain

import (
	"testing"

	"github.com/ppiankov/veracity/internal/model"
)

func claim(text string) model.Claim {
	return model.Claim{Text: text}
}

func TestClassifyDomain_Physics(t *testing.T) {
	r := NewRouter(model.DefaultConfig())

	got := r.ClassifyDomain(claim("Water boils at 100 degrees Celsius at sea level."))
	if got != "physics" {
		t.Errorf("Expected physics, got %q", got)
	}
}

func TestClassifyDomain_NoMatchesFallsBackToGeneral(t *testing.T) {
	r := NewRouter(model.DefaultConfig())
	c := claim("The cat sat quietly nearby.")

	if got := r.ClassifyDomain(c); got != General {
		t.Errorf("Expected %q, got %q", General, got)
	}
	if conf := r.DomainConfidence(c, General); conf != 0 {
		t.Errorf("Expected zero confidence with zero keyword hits, got %.1f", conf)
	}
}

func TestClassifyDomain_BelowThresholdIsGeneral(t *testing.T) {
	r := NewRouter(model.DefaultConfig())

	// A single secondary keyword scores 1.0, which does not exceed the
	// acceptance threshold.
	got := r.ClassifyDomain(claim("The painting shows a distant war scene."))
	if got != General {
		t.Errorf("Expected %q for a single secondary hit, got %q", General, got)
	}
}

func TestClassifyBatch_OrderAndLength(t *testing.T) {
	r := NewRouter(model.DefaultConfig())
	claims := []model.Claim{
		claim("Water boils at 100 degrees Celsius at sea level."),
		claim("The cat sat quietly nearby."),
		claim("The species evolved a thicker cell membrane."),
	}

	got := r.ClassifyBatch(claims)
	if len(got) != len(claims) {
		t.Fatalf("Expected %d results, got %d", len(claims), len(got))
	}
	want := []string{"physics", General, "biology"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Position %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestClassifyDomain_CustomDomain(t *testing.T) {
	cfg := model.DefaultConfig()
	cfg.CustomDomains = []model.DomainDef{
		{Name: "culinary", Primary: []string{"laksa", "noodle"}, Secondary: []string{"spicy"}},
	}
	r := NewRouter(cfg)

	got := r.ClassifyDomain(claim("Laksa is a spicy noodle soup."))
	if got != "culinary" {
		t.Errorf("Expected custom domain to participate, got %q", got)
	}
	if !r.ValidateDomain("culinary") {
		t.Error("Expected custom domain to validate")
	}
}

func TestDomainConfidence(t *testing.T) {
	r := NewRouter(model.DefaultConfig())
	c := claim("Water boils at 100 degrees Celsius at sea level.")

	conf := r.DomainConfidence(c, "physics")
	if conf <= 0 || conf > 100 {
		t.Errorf("Expected confidence in (0,100], got %.1f", conf)
	}
	// A domain with no hits scores zero even when passed explicitly.
	if got := r.DomainConfidence(c, "history"); got != 0 {
		t.Errorf("Expected 0 for an unmatched domain, got %.1f", got)
	}
}

func TestValidateDomain(t *testing.T) {
	r := NewRouter(model.DefaultConfig())

	for _, d := range []string{"physics", "biology", "history", "statistics", General} {
		if !r.ValidateDomain(d) {
			t.Errorf("Expected %q to be supported", d)
		}
	}
	if r.ValidateDomain("astrology") {
		t.Error("Expected unknown domain to be rejected")
	}
}
