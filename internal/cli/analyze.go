package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ppiankov/veracity/internal/llm"
	"github.com/ppiankov/veracity/internal/model"
	"github.com/ppiankov/veracity/internal/pipeline"
	"github.com/ppiankov/veracity/internal/retrieve"
)

var (
	outJSON     string
	outMD       string
	outPDF      string
	timeout     time.Duration
	noCache     bool
	concurrency int
	liveFetch   bool
	userAgent   string
	llmEnabled  bool
	llmModel    string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file|->",
	Short: "Fact-check a text document and write a verification report",
	Long: `Analyze extracts factual claims from a document, classifies them by
knowledge domain, retrieves evidence from trusted sources, and scores
each claim with a confidence and risk verdict.

Reads from stdin when the argument is "-".

Example:
  veracity analyze article.txt --json report.json --md report.md
  cat article.txt | veracity analyze - --pdf report.pdf
  veracity analyze article.txt --live --llm`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVar(&outJSON, "json", "report.json", "output JSON path")
	analyzeCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")
	analyzeCmd.Flags().StringVar(&outPDF, "pdf", "", "output PDF path (optional)")
	analyzeCmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "overall analysis timeout")
	analyzeCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable evidence caching")
	analyzeCmd.Flags().IntVar(&concurrency, "concurrency", 8, "max concurrent verifications")
	analyzeCmd.Flags().BoolVar(&liveFetch, "live", false, "retrieve evidence from live sources over HTTP")
	analyzeCmd.Flags().StringVar(&userAgent, "ua", "Veracity/0.2 (+https://github.com/ppiankov/veracity)", "HTTP User-Agent for live retrieval")
	analyzeCmd.Flags().BoolVar(&llmEnabled, "llm", false, "attach an LLM narrative summary (requires OPENAI_API_KEY)")
	analyzeCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	text, err := readInput(args[0])
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	var opts []pipeline.Option
	if liveFetch {
		opts = append(opts, pipeline.WithBackend(retrieve.NewHTTPBackend(userAgent, cfg.Timeout, 1, 2)))
	}
	if llmEnabled {
		summarizer, err := buildSummarizer()
		if err != nil {
			return err
		}
		opts = append(opts, pipeline.WithSummarizer(summarizer))
	}

	p, err := pipeline.New(cfg, opts...)
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Analyzing %d bytes of input\n", len(text))
	}

	rep, err := p.Analyze(ctx, text, nil)
	if err != nil {
		return fmt.Errorf("analyze: %w", err)
	}

	if err := p.RenderReport(rep, outJSON, outMD, outPDF); err != nil {
		return fmt.Errorf("render: %w", err)
	}

	printSummary(rep)
	return nil
}

func readInput(arg string) (string, error) {
	if arg == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(arg)
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	return string(data), nil
}

// buildConfig resolves the effective configuration: flags over VERACITY_*
// environment variables over the config file over defaults. Only flags
// the user actually set override the lower layers.
func buildConfig(cmd *cobra.Command) (model.Config, error) {
	cfg := model.DefaultConfig()
	err := viper.Unmarshal(&cfg, func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "yaml"
		dc.WeaklyTypedInput = true // env values arrive as strings
	})
	if err != nil {
		return model.Config{}, fmt.Errorf("load config: %w", err)
	}

	if cmd.Flags().Changed("no-cache") {
		cfg.Cache.Enabled = !noCache
	}
	if cmd.Flags().Changed("concurrency") {
		cfg.MaxConcurrentVerifications = concurrency
	}

	if err := cfg.Validate(); err != nil {
		return model.Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

func buildSummarizer() (*llm.Summarizer, error) {
	llmCfg := llm.DefaultConfig()
	llmCfg.Provider = "openai"
	llmCfg.Model = llmModel
	llmCfg.APIKey = os.Getenv("OPENAI_API_KEY")
	if llmCfg.APIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
	}
	return llm.NewSummarizer(llmCfg)
}

func printSummary(rep *model.Report) {
	fmt.Printf("Claims: %d  Average confidence: %.1f/100\n",
		rep.Statistics.TotalClaims, rep.Statistics.MeanConfidence)
	for _, level := range []model.RiskLevel{model.RiskCritical, model.RiskHigh, model.RiskMedium, model.RiskLow} {
		if n := rep.Statistics.RiskCounts[level]; n > 0 {
			fmt.Printf("  %s: %d\n", level, n)
		}
	}
	fmt.Println(rep.Summary)
}
