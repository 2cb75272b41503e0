package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/meridian-labs/relcut-cli/internal/core/domain"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recorded release runs",
	Long:  `List release runs recorded on this machine, newest first.`,
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "maximum number of runs to show, 0 for all")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	if historyService == nil {
		return errors.New("history service not configured")
	}

	records, err := historyService.List(cmd.Context(), historyLimit)
	if err != nil {
		return fmt.Errorf("listing release history: %w", err)
	}

	if len(records) == 0 {
		cmd.Println("No release runs recorded yet.")
		return nil
	}

	cmd.Printf("%-20s  %-24s  %-10s  %s\n", "STARTED", "CANDIDATE", "OUTCOME", "DETAIL")
	for _, rec := range records {
		detail := rec.Commit
		if rec.Outcome == domain.OutcomeFailed {
			detail = rec.Failure
		}
		cmd.Printf("%-20s  %-24s  %-10s  %s\n",
			rec.StartedAt.Local().Format("2006-01-02 15:04:05"),
			rec.RCTag,
			rec.Outcome,
			detail,
		)
	}

	return nil
}
