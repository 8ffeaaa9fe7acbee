// Package cmd implements the CLI commands using Cobra.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"chillstreams/internal/config"
	"chillstreams/internal/logging"
	"chillstreams/internal/ui"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Global flags
var (
	flagVLCPath   string
	flagMinimal   bool
	flagStations  string
	flagCategory  string
	flagNoHistory bool
	flagDebug     bool
)

// cfg holds the loaded configuration (merged: defaults < config file < flags).
var cfg *config.Config

// logger is built once flags are parsed and handed to every component.
var logger = zerolog.Nop()

// exitCodeError carries VLC's exit status out to the process.
type exitCodeError struct {
	code int
}

func (e *exitCodeError) Error() string {
	return fmt.Sprintf("vlc exited with status %d", e.code)
}

var rootCmd = &cobra.Command{
	Use:   "chillstreams [station]",
	Short: "Play internet radio and video streams with VLC",
	Long: `chillstreams plays a station from its station list with VLC.
Audio stations use VLC's ncurses interface; video stations open a window.
Set VLC_PATH to point at a specific VLC binary.`,
	Args:              cobra.ArbitraryArgs,
	PersistentPreRunE: loadConfig,
	RunE:              playRun,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "chillstreams", Version)
	},
}

// Execute runs the root command.
func Execute() {
	if code := exitStatus(rootCmd.ExecuteContext(context.Background()), os.Stderr); code != 0 {
		os.Exit(code)
	}
}

// exitStatus turns a command error into the process exit code, reporting
// it on stderr when it is not VLC's own status.
func exitStatus(err error, stderr io.Writer) int {
	if err == nil {
		return 0
	}

	// Dismissing the picker is not a failure.
	if errors.Is(err, ui.ErrCancelled) {
		logger.Debug().Msg("selection cancelled")
		return 0
	}

	var exitErr *exitCodeError
	if errors.As(err, &exitErr) {
		logger.Debug().Err(err).Send()
		return exitErr.code
	}

	// Errors before loadConfig ran (bad flags) have no logger yet.
	fmt.Fprintln(stderr, "Error:", err)
	return 1
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagVLCPath, "vlc-path", "", "Path to the VLC executable (skips lookup)")
	rootCmd.PersistentFlags().BoolVarP(&flagMinimal, "minimal", "m", false, "Use VLC's default interface instead of ncurses")
	rootCmd.PersistentFlags().StringVarP(&flagStations, "stations", "s", "", "Station list TOML file")
	rootCmd.PersistentFlags().StringVarP(&flagCategory, "category", "c", "", "Only offer stations in this category")
	rootCmd.PersistentFlags().BoolVar(&flagNoHistory, "no-history", false, "Don't record plays in history")
	rootCmd.PersistentFlags().BoolVarP(&flagDebug, "debug", "x", false, "Debug logging to stderr")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(locateCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig loads and merges configuration: defaults < config file < CLI flags.
func loadConfig(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// CLI flags override config file values
	if flagVLCPath != "" {
		cfg.VLCPath = flagVLCPath
	}
	if flagMinimal {
		cfg.Interface = "minimal"
	}
	if flagStations != "" {
		cfg.StationsFile = flagStations
	}
	if flagNoHistory {
		cfg.History = false
	}
	if flagDebug {
		cfg.Debug = true
	}

	// Re-validate after flag overrides
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger = logging.New(os.Stderr, cfg.Debug)
	logger.Debug().Interface("config", cfg).Msg("configuration loaded")

	return nil
}
