package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/claimlens/claimlens/internal/heuristic"
)

var (
	pageDomain  string
	sourcesYAML string
)

// pageCmd represents the page command
var pageCmd = &cobra.Command{
	Use:   "page <textfile>",
	Short: "Score page text offline with the heuristic engine",
	Long: `Page runs the self-contained heuristic engine over local text: topic
detection by weighted keywords, claim extraction by factual-indicator
patterns, per-claim scoring against trusted-source lists, and a weighted
overall score. No network and no LLM; results are deterministic.

Use "-" to read the text from stdin.

Example:
  claimlens page article.txt --domain cdc.gov
  cat article.txt | claimlens page - --domain example.com
  claimlens page article.txt --domain bbc.com --sources my-sources.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runPage,
}

func init() {
	rootCmd.AddCommand(pageCmd)

	pageCmd.Flags().StringVar(&pageDomain, "domain", "", "domain the page was served from (for trust scoring)")
	pageCmd.Flags().StringVar(&sourcesYAML, "sources", "", "trusted-source table YAML (default: builtin)")
}

func runPage(cmd *cobra.Command, args []string) error {
	var text []byte
	var err error
	if args[0] == "-" {
		text, err = io.ReadAll(os.Stdin)
	} else {
		text, err = os.ReadFile(args[0])
	}
	if err != nil {
		return fmt.Errorf("read page text: %w", err)
	}

	engine := heuristic.NewEngine(heuristic.LoadSourceTable(sourcesYAML))
	analysis := engine.Analyze(string(text), pageDomain)

	out, err := json.MarshalIndent(analysis, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal analysis: %w", err)
	}
	fmt.Println(string(out))

	return nil
}
