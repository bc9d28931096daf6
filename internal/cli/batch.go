package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/claimlens/claimlens/internal/pipeline"
	"github.com/claimlens/claimlens/internal/worker"
)

var (
	batchConcurrency int
	outputDir        string
	batchTimeout     time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Analyze multiple URLs from a file in parallel",
	Long: `Batch reads URLs from a file (one per line, # comments allowed) and
runs the full analysis pipeline for each under a worker pool. Every URL
gets its own JSON report in the output directory; one URL's failure never
stops the others.

Example:
  claimlens batch urls.txt
  claimlens batch urls.txt --concurrency 5 --output-dir ./reports`,
	Args: cobra.ExactArgs(1),
	RunE: runBatchAnalyze,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&batchConcurrency, "concurrency", 3, "number of concurrent analyses")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./claimlens-reports", "output directory for reports")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 30*time.Minute, "total timeout for the batch")
	batchCmd.Flags().StringVar(&llmProvider, "llm-provider", "", "LLM provider (openai, anthropic, ollama)")
	batchCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name")
	batchCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the extraction cache")
}

func runBatchAnalyze(cmd *cobra.Command, args []string) error {
	file := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	cfg := buildConfig()
	if llmProvider != "" {
		cfg.LLM.Provider = llmProvider
	}
	if llmModel != "" {
		cfg.LLM.Model = llmModel
	}
	cfg.Cache.Enabled = !noCache

	if err := requireLLMKey(cfg); err != nil {
		return err
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	coordinator := pipeline.NewCoordinator(cfg)
	runner := worker.NewBatchRunner(coordinator, batchConcurrency)

	results, err := runner.RunFile(ctx, file)
	if err != nil {
		return err
	}

	renderer := pipeline.NewRenderer(cfg.Output.IncludeFooter)
	var succeeded, failed int
	for _, res := range results {
		if res.Error != nil {
			failed++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", res.URL, res.Error)
			continue
		}
		succeeded++

		path := filepath.Join(outputDir, reportFileName(res.URL))
		if err := renderer.RenderJSON(res.Report, path); err != nil {
			fmt.Fprintf(os.Stderr, "✗ %s: write report: %v\n", res.URL, err)
			continue
		}
		fmt.Fprintf(os.Stderr, "✓ %s -> %s (%.2f %s)\n", res.URL, path, res.Report.OverallScore, res.Report.VerdictLabel)
	}

	fmt.Fprintf(os.Stderr, "\n%d analyzed, %d failed\n", succeeded, failed)
	return nil
}

var unsafePathChars = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// reportFileName derives a stable filename from a URL
func reportFileName(rawURL string) string {
	name := strings.TrimPrefix(rawURL, "https://")
	name = strings.TrimPrefix(name, "http://")
	name = unsafePathChars.ReplaceAllString(name, "_")
	name = strings.Trim(name, "_")
	if len(name) > 120 {
		name = name[:120]
	}
	return name + ".json"
}
