package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"chillstreams/internal/history"
	"chillstreams/internal/ui"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Replay a recently played station",
	RunE:  historyRun,
}

var flagHistoryLimit int

func init() {
	historyCmd.Flags().IntVarP(&flagHistoryLimit, "limit", "n", 20, "Number of recent stations to offer")
}

func historyRun(cmd *cobra.Command, args []string) error {
	entries, err := history.Recent(flagHistoryLimit)
	if err != nil {
		return fmt.Errorf("loading history: %w", err)
	}

	if len(entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No history entries found.")
		return nil
	}

	items := history.FormatForDisplay(entries)
	idx, err := ui.Select("History", items)
	if err != nil {
		return err
	}

	selected := entries[idx]
	logger.Debug().Str("name", selected.Name).Str("url", selected.URL).Msg("replaying")

	return play(cmd.Context(), selected.Station())
}
