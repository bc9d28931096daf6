package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/claimlens/claimlens/internal/model"
	"github.com/claimlens/claimlens/internal/pipeline"
)

var verifyTimeout time.Duration

// verifyCmd represents the verify command
var verifyCmd = &cobra.Command{
	Use:   "verify <file>",
	Short: "Verify claims against caller-supplied evidence texts",
	Long: `Verify skips search and fetch: it reads a JSON file of claims with
their evidence texts and generates verdicts directly.

Input format:
  [
    {"claim": "The dam opened in 2010.", "evidence_texts": ["..."]},
    {"claim": "...", "evidence_texts": []}
  ]

Example:
  claimlens verify claims.json
  claimlens verify claims.json --llm-provider ollama`,
	Args: cobra.ExactArgs(1),
	RunE: runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)

	verifyCmd.Flags().DurationVar(&verifyTimeout, "timeout", 2*time.Minute, "verification timeout")
	verifyCmd.Flags().StringVar(&llmProvider, "llm-provider", "", "LLM provider (openai, anthropic, ollama)")
	verifyCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name")
}

func runVerify(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read claims file: %w", err)
	}

	var reqs []model.ClaimVerificationRequest
	if err := json.Unmarshal(data, &reqs); err != nil {
		return fmt.Errorf("parse claims file: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), verifyTimeout)
	defer cancel()

	cfg := buildConfig()
	if llmProvider != "" {
		cfg.LLM.Provider = llmProvider
	}
	if llmModel != "" {
		cfg.LLM.Model = llmModel
	}
	if err := requireLLMKey(cfg); err != nil {
		return err
	}

	coordinator := pipeline.NewCoordinator(cfg)
	result, err := coordinator.VerifyClaims(ctx, reqs)
	if err != nil {
		return fmt.Errorf("verify failed: %w", err)
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	fmt.Println(string(out))

	return nil
}
