package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/ppiankov/veracity/internal/model"
)

// Analyzer runs the fact-checking pipeline over one text
type Analyzer interface {
	Analyze(ctx context.Context, text string, signals []model.ManipulationSignal) (*model.Report, error)
}

// FileJob analyzes the contents of one document file
type FileJob struct {
	Path     string
	Analyzer Analyzer
}

// FileResult pairs a document path with its report or failure
type FileResult struct {
	Path   string
	Report *model.Report
	Error  error
}

// Err implements Result.
func (r *FileResult) Err() error { return r.Error }

// Execute reads the file and runs the analyzer over it.
func (j *FileJob) Execute(ctx context.Context) Result {
	data, err := os.ReadFile(j.Path)
	if err != nil {
		return &FileResult{Path: j.Path, Error: fmt.Errorf("read %s: %w", j.Path, err)}
	}
	rep, err := j.Analyzer.Analyze(ctx, string(data), nil)
	if err != nil {
		return &FileResult{Path: j.Path, Error: fmt.Errorf("analyze %s: %w", j.Path, err)}
	}
	return &FileResult{Path: j.Path, Report: rep}
}

// BatchProcessor fact-checks multiple documents concurrently. One
// document's failure never aborts its siblings.
type BatchProcessor struct {
	analyzer    Analyzer
	concurrency int
}

// NewBatchProcessor creates a batch processor.
func NewBatchProcessor(analyzer Analyzer, concurrency int) *BatchProcessor {
	return &BatchProcessor{analyzer: analyzer, concurrency: concurrency}
}

// ProcessFiles analyzes each document. Results align positionally with
// paths.
func (b *BatchProcessor) ProcessFiles(ctx context.Context, paths []string) []*FileResult {
	jobs := make([]Job, len(paths))
	for i, path := range paths {
		jobs[i] = &FileJob{Path: path, Analyzer: b.analyzer}
	}

	raw := NewPool(b.concurrency).Run(ctx, jobs)

	out := make([]*FileResult, len(raw))
	for i, r := range raw {
		if r == nil {
			out[i] = &FileResult{Path: paths[i], Error: ctx.Err()}
			continue
		}
		out[i] = r.(*FileResult)
	}
	return out
}

// ProcessListFile reads document paths from a list file and analyzes
// them.
func (b *BatchProcessor) ProcessListFile(ctx context.Context, listPath string) ([]*FileResult, error) {
	paths, err := ReadPathsFromFile(listPath)
	if err != nil {
		return nil, fmt.Errorf("read list: %w", err)
	}
	return b.ProcessFiles(ctx, paths), nil
}

// ReadPathsFromFile reads one path per line, skipping blanks and
// #-comments, deduplicating while preserving first occurrence order.
func ReadPathsFromFile(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var paths []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !seen[line] {
			seen[line] = true
			paths = append(paths, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return paths, nil
}
