package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/claimlens/claimlens/internal/history"
)

// historyCmd represents the history command
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show or clear recorded analyses",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded analyses, most recent first",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := buildConfig()
		store := history.NewStore(cfg.History.Dir, cfg.History.Limit)

		entries, err := store.List()
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Println("No analyses recorded yet.")
			return nil
		}

		for _, e := range entries {
			title := e.Title
			if title == "" {
				title = e.SourceURL
			}
			fmt.Printf("%s  %.2f  %-16s %s\n",
				e.AnalyzedAt.Format("2006-01-02 15:04"), e.OverallScore, e.VerdictLabel, title)
		}
		return nil
	},
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete the recorded history",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := buildConfig()
		store := history.NewStore(cfg.History.Dir, cfg.History.Limit)
		if err := store.Clear(); err != nil {
			return err
		}
		fmt.Println("History cleared.")
		return nil
	},
}

func init() {
	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyClearCmd)
	rootCmd.AddCommand(historyCmd)
}
