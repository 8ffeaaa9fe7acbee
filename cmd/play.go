package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"chillstreams/internal/history"
	"chillstreams/internal/httputil"
	"chillstreams/internal/player"
	"chillstreams/internal/station"
	"chillstreams/internal/ui"
)

// playRun is the default command: chillstreams [station]
func playRun(cmd *cobra.Command, args []string) error {
	list, err := loadStations(cmd.Context())
	if err != nil {
		return err
	}

	entry, err := pickStation(list, strings.Join(args, " "))
	if err != nil {
		return err
	}

	return play(cmd.Context(), entry)
}

func loadStations(ctx context.Context) (*station.List, error) {
	if httputil.IsRemote(cfg.StationsFile) {
		list, err := station.Fetch(ctx, httputil.NewClient(), cfg.StationsFile)
		if err != nil {
			return nil, err
		}
		logger.Debug().Str("url", cfg.StationsFile).Int("count", len(list.Stations)).Msg("stations fetched")
		return list, nil
	}

	path, err := cfg.ExpandStationsFile()
	if err != nil {
		return nil, fmt.Errorf("resolving stations file: %w", err)
	}

	list, err := station.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading stations: %w", err)
	}
	logger.Debug().Str("path", path).Int("count", len(list.Stations)).Msg("stations loaded")
	return list, nil
}

// pickStation finds query in the list, or asks via fzf when query is empty.
func pickStation(list *station.List, query string) (station.Entry, error) {
	if query != "" {
		return list.Find(query)
	}

	candidates := list.Filter(flagCategory)
	if len(candidates) == 0 {
		return station.Entry{}, fmt.Errorf("no stations in category %q", flagCategory)
	}

	idx, err := ui.Select("Station", station.FormatForDisplay(candidates))
	if err != nil {
		return station.Entry{}, err
	}
	return candidates[idx], nil
}

// launchPause maps pause_secs onto player.Options, where zero means the
// default pause. A configured 0 turns the wait off.
func launchPause() time.Duration {
	if d := cfg.PauseDuration(); d > 0 {
		return d
	}
	return -1
}

// play runs VLC for entry, records it, and surfaces VLC's exit status.
func play(ctx context.Context, entry station.Entry) error {
	iface, err := player.ParseInterface(cfg.Interface)
	if err != nil {
		return err
	}
	if iface == player.InterfaceNcurses && !entry.Video && !term.IsTerminal(int(os.Stdin.Fd())) {
		logger.Warn().Msg("stdin is not a terminal, using the minimal interface")
		iface = player.InterfaceMinimal
	}

	vlcPath, err := cfg.ExpandVLCPath()
	if err != nil {
		return fmt.Errorf("resolving vlc path: %w", err)
	}

	v, err := player.New(ctx, entry, player.Options{
		Interface: iface,
		Path:      vlcPath,
		Out:       os.Stdout,
		Pause:     launchPause(),
	}, player.Deps{Log: &logger})
	if err != nil {
		return fmt.Errorf("%w (install VLC or set %s)", err, player.EnvVar)
	}
	logger.Debug().Str("vlc", v.Location()).Strs("argv", v.Argv()).Msg("launching")

	res, err := v.Run(ctx)
	if err != nil {
		return fmt.Errorf("playback failed: %w", err)
	}

	if cfg.History {
		if err := history.Record(history.FromStation(entry, res.ExitCode, time.Now())); err != nil {
			logger.Debug().Err(err).Msg("saving history failed")
		}
	}

	if res.ExitCode != 0 {
		return &exitCodeError{code: res.ExitCode}
	}
	return nil
}
