// Package llm generates an optional narrative summary of a finished
// report. The summary is produced after verification and never feeds
// back into confidence or risk.
package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/ppiankov/veracity/internal/model"
)

// Provider is one LLM backend
type Provider interface {
	Name() string
	Complete(ctx context.Context, prompt string, maxTokens int) (string, error)
}

// Config holds provider configuration, sourced by the embedding
// application (the core never reads the environment).
type Config struct {
	Provider  string // "openai" or "" (disabled)
	Model     string
	APIKey    string
	BaseURL   string
	MaxTokens int
}

// DefaultConfig returns a disabled summarizer configuration.
func DefaultConfig() Config {
	return Config{MaxTokens: 800}
}

// Summarizer drives a Provider with the strict-evidence prompt
type Summarizer struct {
	provider Provider
	cfg      Config
}

// NewSummarizer builds a summarizer for the configured provider. An
// unknown provider name is a configuration error.
func NewSummarizer(cfg Config) (*Summarizer, error) {
	switch cfg.Provider {
	case "openai":
		return &Summarizer{provider: newOpenAI(cfg), cfg: cfg}, nil
	case "":
		return nil, fmt.Errorf("no LLM provider configured")
	default:
		return nil, fmt.Errorf("unknown LLM provider %q", cfg.Provider)
	}
}

// Summarize produces the narrative for a report. The prompt restricts
// citations to the sources the report actually contains; a response that
// names anything else is flagged in Warnings, not silently accepted.
func (s *Summarizer) Summarize(ctx context.Context, r *model.Report) (*model.LLMSummary, error) {
	allowed := allowedSources(r)
	text, err := s.provider.Complete(ctx, buildPrompt(r, allowed), s.cfg.MaxTokens)
	if err != nil {
		return nil, fmt.Errorf("summarize: %w", err)
	}

	summary := &model.LLMSummary{
		Provider:  s.provider.Name(),
		Model:     s.cfg.Model,
		SummaryMD: text,
	}
	for _, w := range citationLeaks(text, allowed) {
		summary.Warnings = append(summary.Warnings, w)
	}
	return summary, nil
}

// allowedSources collects the distinct source names cited as evidence.
func allowedSources(r *model.Report) []string {
	seen := make(map[string]bool)
	var out []string
	for _, res := range r.Results {
		for _, e := range append(append([]model.Evidence{}, res.Supporting...), res.Contradicting...) {
			if !seen[e.SourceName] {
				seen[e.SourceName] = true
				out = append(out, e.SourceName)
			}
		}
	}
	return out
}

func buildPrompt(r *model.Report, allowed []string) string {
	var b strings.Builder
	b.WriteString("You are summarizing a fact-check report. The report assesses how well ")
	b.WriteString("claims are supported by evidence; it never asserts truth.\n\n")
	b.WriteString("RULES:\n")
	b.WriteString("1. Cite ONLY these sources:\n")
	if len(allowed) == 0 {
		b.WriteString("   (none - state explicitly that no evidence was available)\n")
	}
	for _, name := range allowed {
		fmt.Fprintf(&b, "   - %s\n", name)
	}
	b.WriteString("2. Do not speculate or reference outside material.\n")
	b.WriteString("3. Describe support quality, never truth or falsity.\n\n")

	fmt.Fprintf(&b, "Claims analyzed: %d. Average confidence: %.1f/100.\n",
		r.Statistics.TotalClaims, r.Statistics.MeanConfidence)
	for i, res := range r.Results {
		if i >= 10 {
			fmt.Fprintf(&b, "... and %d more claims\n", len(r.Results)-10)
			break
		}
		fmt.Fprintf(&b, "- [%s] %s (%d supporting, %d contradicting)\n",
			res.Risk, res.Claim.Text, len(res.Supporting), len(res.Contradicting))
	}
	b.WriteString("\nWrite a 3-5 sentence summary of the evidence picture.")
	return b.String()
}

// citationLeaks does a crude check for bracketed or quoted names outside
// the allowlist; it exists to warn, not to block.
func citationLeaks(text string, allowed []string) []string {
	lower := strings.ToLower(text)
	var warnings []string
	for _, marker := range []string{"http://", "https://"} {
		if strings.Contains(lower, marker) {
			leaked := true
			for _, name := range allowed {
				if strings.Contains(lower, strings.ToLower(name)) {
					leaked = false
					break
				}
			}
			if leaked {
				warnings = append(warnings, "summary contains a URL outside the evidence allowlist")
			}
			break
		}
	}
	return warnings
}
