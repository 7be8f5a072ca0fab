package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vahti-io/vahti/history"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent reconciliation runs",
	Long: `List summaries of recent runs from the history store.

Runs are recorded only when history_dir is configured (or
VAHTI_HISTORY_DIR is set).

Examples:
  vahti history --limit 5`,
	RunE: runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntVar(&historyLimit, "limit", 10, "Number of runs to show")
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.HistoryDir == "" {
		return fmt.Errorf("no history_dir configured, nothing to show")
	}

	store, err := history.Open(cfg.HistoryDir)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	summaries, err := store.Recent(historyLimit)
	if err != nil {
		return err
	}
	if len(summaries) == 0 {
		fmt.Fprintln(os.Stderr, "No recorded runs yet")
		return nil
	}

	for _, summary := range summaries {
		fmt.Printf("%s  region=%s created=%d deleted=%d unchanged=%d failed=%d\n",
			summary.StartedAt.Local().Format(time.RFC3339),
			summary.Region,
			len(summary.Created),
			len(summary.Deleted),
			summary.Unchanged,
			len(summary.Failed),
		)
		for _, failure := range summary.Failed {
			fmt.Printf("    failed: %s\n", failure)
		}
	}

	return nil
}
