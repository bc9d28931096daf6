package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/claimlens/claimlens/internal/history"
	"github.com/claimlens/claimlens/internal/logger"
	"github.com/claimlens/claimlens/internal/pipeline"
)

var (
	outJSON        string
	outMD          string
	analyzeTimeout time.Duration
	llmProvider    string
	llmModel       string
	noCache        bool
	noFooter       bool
	noHistory      bool
	noRobots       bool
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze <url>",
	Short: "Analyze a single article's claims against web evidence",
	Long: `Analyze runs the full verification pipeline for one URL:
- Extract the article text
- Classify sentences by verifiability and derive claims
- Search the web for evidence, excluding the article's own domain
- Fetch and extract evidence sources in bounded batches
- Generate per-claim verdicts with trust scores

Example:
  claimlens analyze https://example.com/article
  claimlens analyze https://example.com/article --json report.json --md report.md
  claimlens analyze https://example.com/article --llm-provider anthropic`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVar(&outJSON, "json", "", "output JSON path (optional)")
	analyzeCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")
	analyzeCmd.Flags().DurationVar(&analyzeTimeout, "timeout", 5*time.Minute, "overall analysis timeout")
	analyzeCmd.Flags().StringVar(&llmProvider, "llm-provider", "", "LLM provider (openai, anthropic, ollama)")
	analyzeCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name")
	analyzeCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the extraction cache")
	analyzeCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")
	analyzeCmd.Flags().BoolVar(&noHistory, "no-history", false, "do not record this analysis in history")
	analyzeCmd.Flags().BoolVar(&noRobots, "no-robots", false, "skip robots.txt checks for evidence fetches")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	url := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), analyzeTimeout)
	defer cancel()

	cfg := buildConfig()
	if llmProvider != "" {
		cfg.LLM.Provider = llmProvider
	}
	if llmModel != "" {
		cfg.LLM.Model = llmModel
	}
	cfg.Cache.Enabled = !noCache
	cfg.Output.IncludeFooter = !noFooter
	cfg.HTTP.RespectRobots = !noRobots

	if err := requireLLMKey(cfg); err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Analyzing: %s\n", url)
		fmt.Fprintf(os.Stderr, "Provider:  %s/%s\n\n", cfg.LLM.Provider, cfg.LLM.Model)
	}

	coordinator := pipeline.NewCoordinator(cfg)
	report, err := coordinator.Analyze(ctx, url)
	if err != nil {
		return fmt.Errorf("analyze failed: %w", err)
	}

	renderer := pipeline.NewRenderer(cfg.Output.IncludeFooter)
	if outJSON != "" {
		if err := renderer.RenderJSON(report, outJSON); err != nil {
			return err
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "Wrote JSON: %s\n", outJSON)
		}
	}
	if outMD != "" {
		if err := renderer.RenderMarkdown(report, outMD); err != nil {
			return err
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "Wrote Markdown: %s\n", outMD)
		}
	}
	renderer.RenderSummary(report)

	if cfg.History.Enabled && !noHistory {
		store := history.NewStore(cfg.History.Dir, cfg.History.Limit)
		if err := store.Append(report); err != nil {
			logger.Log.Warnf("could not record history: %v", err)
		}
	}

	return nil
}
