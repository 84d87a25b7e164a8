// Package pipeline composes the fact-checking stages: extraction,
// routing, retrieval, verification, and report generation. The pipeline
// is sequential composition, not a stateful engine; every stage remains
// independently callable.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/ppiankov/veracity/internal/domain"
	"github.com/ppiankov/veracity/internal/extract"
	"github.com/ppiankov/veracity/internal/llm"
	"github.com/ppiankov/veracity/internal/model"
	"github.com/ppiankov/veracity/internal/registry"
	"github.com/ppiankov/veracity/internal/report"
	"github.com/ppiankov/veracity/internal/retrieve"
	"github.com/ppiankov/veracity/internal/verify"
)

// Pipeline wires the stages together around one validated Config
type Pipeline struct {
	cfg        model.Config
	extractor  *extract.ClaimExtractor
	router     *domain.Router
	registry   *registry.Registry
	retriever  *retrieve.Retriever
	verifier   *verify.Verifier
	generator  *report.Generator
	summarizer *llm.Summarizer
}

// Option adjusts pipeline construction
type Option func(*options)

type options struct {
	backend    retrieve.Backend
	summarizer *llm.Summarizer
}

// WithBackend replaces the default offline backend, e.g. with the live
// HTTP backend.
func WithBackend(b retrieve.Backend) Option {
	return func(o *options) { o.backend = b }
}

// WithSummarizer attaches an optional LLM summarizer. The summary never
// affects verdicts.
func WithSummarizer(s *llm.Summarizer) Option {
	return func(o *options) { o.summarizer = s }
}

// New validates cfg and builds the pipeline. Configuration errors are
// fatal here, before any stage can run.
func New(cfg model.Config, opts ...Option) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	o := options{backend: retrieve.NewStaticBackend()}
	for _, opt := range opts {
		opt(&o)
	}

	reg, err := registry.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("registry: %w", err)
	}

	return &Pipeline{
		cfg:        cfg,
		extractor:  extract.NewClaimExtractor(),
		router:     domain.NewRouter(cfg),
		registry:   reg,
		retriever:  retrieve.NewRetriever(o.backend, cfg),
		verifier:   verify.NewVerifier(cfg),
		generator:  report.NewGenerator(cfg),
		summarizer: o.summarizer,
	}, nil
}

// Registry exposes the pipeline's source catalogue, e.g. for the sources
// CLI command or for registering custom sources before a run.
func (p *Pipeline) Registry() *registry.Registry {
	return p.registry
}

// Analyze runs the full pipeline over one input text. Empty input is not
// an error: the report simply records zero claims. signals are carried
// into the report without interpretation.
func (p *Pipeline) Analyze(ctx context.Context, text string, signals []model.ManipulationSignal) (*model.Report, error) {
	started := time.Now()

	claims := p.extractor.ExtractClaims(text, "")
	if len(claims) == 0 {
		return p.generator.Generate(nil, text, signals, time.Since(started)), nil
	}

	for i := range claims {
		assigned := p.router.ClassifyDomain(claims[i])
		if assigned == domain.General && claims[i].Domain != "" {
			continue // keep the caller's hint when routing has no opinion
		}
		claims[i].Domain = assigned
	}

	evidenceLists := make([][]model.Evidence, len(claims))
	for i, claim := range claims {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		sources := p.registry.SourcesForDomain(claim.Domain)
		if len(sources) == 0 {
			sources = p.registry.SourcesForDomain(domain.General)
		}
		evidence, err := p.retriever.RetrieveEvidence(ctx, claim, sources, retrieve.DefaultMaxResults)
		if err != nil {
			if ctx.Err() != nil {
				return nil, err
			}
			evidence = nil // this claim proceeds unverified
		}
		evidenceLists[i] = evidence
	}

	results, err := p.verifier.VerifyBatch(ctx, claims, evidenceLists)
	if err != nil {
		return nil, err
	}

	rep := p.generator.Generate(results, text, signals, time.Since(started))

	if p.summarizer != nil {
		summary, err := p.summarizer.Summarize(ctx, rep)
		if err != nil {
			// Advisory surface only: warn and keep the report.
			fmt.Fprintf(os.Stderr, "warning: LLM summary failed: %v\n", err)
		} else {
			rep.LLM = summary
		}
	}

	return rep, nil
}

// RenderReport writes the report to each non-empty path in its format.
func (p *Pipeline) RenderReport(rep *model.Report, jsonPath, mdPath, pdfPath string) error {
	outputs := []struct {
		path   string
		format report.Format
	}{
		{jsonPath, report.FormatJSON},
		{mdPath, report.FormatMarkdown},
		{pdfPath, report.FormatPDF},
	}
	for _, out := range outputs {
		if out.path == "" {
			continue
		}
		if err := report.SaveToFile(rep, out.path, out.format); err != nil {
			return fmt.Errorf("render %s: %w", out.format, err)
		}
	}
	return nil
}
