package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"chillstreams/internal/player"
	"chillstreams/internal/station"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stations",
	Args:  cobra.NoArgs,
	RunE:  listRun,
}

var flagListCategories bool

func init() {
	listCmd.Flags().BoolVar(&flagListCategories, "categories", false, "List categories instead of stations")
}

func listRun(cmd *cobra.Command, args []string) error {
	list, err := loadStations(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	if flagListCategories {
		for _, c := range list.Categories() {
			fmt.Fprintln(out, c)
		}
		return nil
	}

	entries := list.Filter(flagCategory)
	if len(entries) == 0 {
		fmt.Fprintln(out, "No stations found.")
		return nil
	}

	for _, line := range station.FormatForDisplay(entries) {
		fmt.Fprintln(out, line)
	}
	return nil
}

var locateCmd = &cobra.Command{
	Use:   "locate",
	Short: "Print the VLC executable that would be used",
	Args:  cobra.NoArgs,
	RunE:  locateRun,
}

func locateRun(cmd *cobra.Command, args []string) error {
	if cfg.VLCPath != "" {
		path, err := cfg.ExpandVLCPath()
		if err != nil {
			return fmt.Errorf("resolving vlc path: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	}

	loc, err := player.NewLocator(cmd.Context(), player.Deps{Log: &logger})
	if err != nil {
		return fmt.Errorf("%w (install VLC or set %s)", err, player.EnvVar)
	}
	fmt.Fprintln(cmd.OutOrStdout(), loc.Location())
	return nil
}
