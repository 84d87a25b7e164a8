package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/veracity/internal/pipeline"
	"github.com/ppiankov/veracity/internal/report"
	"github.com/ppiankov/veracity/internal/worker"
)

var (
	batchOutDir      string
	batchTimeout     time.Duration
	batchConcurrency int
)

var batchCmd = &cobra.Command{
	Use:   "batch <list-file>",
	Short: "Fact-check multiple documents concurrently",
	Long: `Batch reads document paths from a list file (one per line, # comments
allowed) and fact-checks each concurrently. One document's failure never
aborts the others. A JSON report per document lands in the output
directory.

Example:
  veracity batch documents.txt --out reports/ --workers 4`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().StringVar(&batchOutDir, "out", "reports", "output directory for per-document reports")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "overall batch timeout")
	batchCmd.Flags().IntVar(&batchConcurrency, "workers", 4, "concurrent documents")
}

func runBatch(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	p, err := pipeline.New(cfg)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(batchOutDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	processor := worker.NewBatchProcessor(p, batchConcurrency)
	results, err := processor.ProcessListFile(ctx, args[0])
	if err != nil {
		return err
	}

	failed := 0
	for _, res := range results {
		if res.Error != nil {
			failed++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", res.Path, res.Error)
			continue
		}
		outPath := filepath.Join(batchOutDir, reportFileName(res.Path))
		if err := report.SaveToFile(res.Report, outPath, report.FormatJSON); err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", res.Path, err)
			continue
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ %s -> %s (%d claims)\n", res.Path, outPath, res.Report.Statistics.TotalClaims)
		}
	}

	fmt.Printf("Processed %d document(s), %d failed\n", len(results), failed)
	if failed == len(results) && len(results) > 0 {
		return fmt.Errorf("all documents failed")
	}
	return nil
}

func reportFileName(docPath string) string {
	base := filepath.Base(docPath)
	if ext := filepath.Ext(base); ext != "" {
		base = strings.TrimSuffix(base, ext)
	}
	return base + ".report.json"
}
