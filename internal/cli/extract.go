package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/claimlens/claimlens/internal/pipeline"
	"github.com/claimlens/claimlens/internal/worker"
)

var extractTimeout time.Duration

// extractCmd represents the extract command
var extractCmd = &cobra.Command{
	Use:   "extract <url>... | extract -f <file>",
	Short: "Extract article content from one or more URLs",
	Long: `Extract fetches URLs and prints their readable article content as JSON,
with per-URL errors and aggregate success/failure counts. No claims are
classified and no LLM is involved.

Example:
  claimlens extract https://example.com/article
  claimlens extract -f urls.txt`,
	RunE: runExtract,
}

var extractFile string

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().DurationVar(&extractTimeout, "timeout", 5*time.Minute, "extraction timeout")
	extractCmd.Flags().StringVarP(&extractFile, "file", "f", "", "read URLs from a file instead of arguments")
	extractCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the extraction cache")
}

func runExtract(cmd *cobra.Command, args []string) error {
	urls := args
	if extractFile != "" {
		fromFile, err := worker.ReadURLsFromFile(extractFile)
		if err != nil {
			return err
		}
		urls = append(urls, fromFile...)
	}

	ctx, cancel := context.WithTimeout(context.Background(), extractTimeout)
	defer cancel()

	cfg := buildConfig()
	cfg.Cache.Enabled = !noCache

	coordinator := pipeline.NewCoordinator(cfg)
	result, err := coordinator.ExtractBatch(ctx, urls)
	if err != nil {
		return fmt.Errorf("extract failed: %w", err)
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	fmt.Println(string(out))

	return nil
}
