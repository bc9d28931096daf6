package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/claimlens/claimlens/internal/model"
)

// Analyzer runs the full verification pipeline for a single URL
type Analyzer interface {
	Analyze(ctx context.Context, url string) (*model.AggregateReport, error)
}

// AnalyzeJob is one URL analysis submitted to the pool
type AnalyzeJob struct {
	URL      string
	Analyzer Analyzer
}

// Execute runs the analysis and wraps the outcome
func (j *AnalyzeJob) Execute(ctx context.Context) Result {
	report, err := j.Analyzer.Analyze(ctx, j.URL)
	return &AnalyzeResult{URL: j.URL, Report: report, Error: err}
}

// AnalyzeResult is the per-URL outcome of a batch run
type AnalyzeResult struct {
	URL    string
	Report *model.AggregateReport
	Error  error
}

// GetError returns the job error, if any
func (r *AnalyzeResult) GetError() error {
	return r.Error
}

// BatchRunner fans a set of URLs out over a worker pool
type BatchRunner struct {
	analyzer    Analyzer
	concurrency int
}

// NewBatchRunner creates a batch runner with the given concurrency
func NewBatchRunner(analyzer Analyzer, concurrency int) *BatchRunner {
	return &BatchRunner{analyzer: analyzer, concurrency: concurrency}
}

// Run analyzes all URLs concurrently. One URL's failure never aborts the
// batch for its siblings; each result carries its own error.
func (b *BatchRunner) Run(ctx context.Context, urls []string) []*AnalyzeResult {
	if len(urls) == 0 {
		return []*AnalyzeResult{}
	}

	pool := NewPool(b.concurrency)
	pool.Start()

	for _, url := range urls {
		pool.Submit(&AnalyzeJob{URL: url, Analyzer: b.analyzer})
	}

	results := pool.Wait()

	analyzeResults := make([]*AnalyzeResult, len(results))
	for i, result := range results {
		analyzeResults[i] = result.(*AnalyzeResult)
	}

	return analyzeResults
}

// RunFile reads URLs from a file (one per line) and analyzes them
func (b *BatchRunner) RunFile(ctx context.Context, filePath string) ([]*AnalyzeResult, error) {
	urls, err := ReadURLsFromFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read URLs: %w", err)
	}
	return b.Run(ctx, urls), nil
}

// ReadURLsFromFile reads deduplicated URLs, skipping blanks and # comments
func ReadURLsFromFile(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var urls []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !seen[line] {
			seen[line] = true
			urls = append(urls, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return urls, nil
}
