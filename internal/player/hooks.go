package player

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"chillstreams/internal/station"
)

// DefaultPause is how long the banner stays up before VLC takes the terminal.
const DefaultPause = 2 * time.Second

// Banner prints the station being played and waits for pause.
func Banner(w io.Writer, clock clockwork.Clock, pause time.Duration) PreRunHook {
	return func(_ context.Context, entry station.Entry) {
		fmt.Fprintf(w, "\n\nPlaying: %s\n\n\n", entry.AnsiColorized())
		if pause > 0 {
			clock.Sleep(pause)
		}
	}
}

// Some VLC builds for Apple Silicon cannot find the xterm and screen
// terminfo entries unless they are linked under ~/.terminfo.
const (
	terminfoOS   = "darwin"
	terminfoArch = "arm64"
)

const terminfoAdvice = `It appears you're using arm64 macOS, where VLC has a bug. You may need to run:
  $ mkdir ~/.terminfo
  $ # for TERM=xterm-256color:
  $ ln -s /usr/share/terminfo/78 ~/.terminfo/x
  $ # for TERM=screen-256color:
  $ ln -s /usr/share/terminfo/73 ~/.terminfo/s`

// TerminfoAdvisor explains a failed VLC exit on hosts with the known
// ncurses terminfo defect.
type TerminfoAdvisor struct {
	fs   afero.Fs
	home func() (string, error)
	os   string
	arch string
	log  *zerolog.Logger
}

// NewTerminfoAdvisor builds an advisor for the host described by deps.
func NewTerminfoAdvisor(deps Deps) *TerminfoAdvisor {
	d := deps.withDefaults()
	return &TerminfoAdvisor{fs: d.Fs, home: d.Home, os: d.OS, arch: d.Arch, log: d.Log}
}

// Missing returns the terminfo entries that should exist but don't, or
// nil when the advice does not apply to exitCode on this host.
func (a *TerminfoAdvisor) Missing(exitCode int) []string {
	if exitCode == 0 || a.os != terminfoOS || a.arch != terminfoArch {
		return nil
	}

	home, err := a.home()
	if err != nil || home == "" {
		return nil
	}

	var missing []string
	for _, name := range []string{"x", "s"} {
		p := filepath.Join(home, ".terminfo", name)
		if ok, _ := afero.Exists(a.fs, p); !ok {
			missing = append(missing, p)
		}
	}
	return missing
}

// Check is a PostRunHook logging remediation steps when they apply.
func (a *TerminfoAdvisor) Check(_ context.Context, _ station.Entry, res Result) {
	missing := a.Missing(res.ExitCode)
	if len(missing) == 0 {
		return
	}
	a.log.Error().Strs("missing", missing).Int("exit_code", res.ExitCode).Msg(terminfoAdvice)
}
