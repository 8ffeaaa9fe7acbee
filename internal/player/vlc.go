package player

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"chillstreams/internal/station"
)

// Interface selects how VLC presents itself.
type Interface int

const (
	// InterfaceNcurses runs VLC's text console UI in the current terminal.
	InterfaceNcurses Interface = iota
	// InterfaceMinimal runs VLC's default interface with the title overlay off.
	InterfaceMinimal
)

func (i Interface) String() string {
	switch i {
	case InterfaceNcurses:
		return "ncurses"
	case InterfaceMinimal:
		return "minimal"
	default:
		return "unknown"
	}
}

// ParseInterface parses "ncurses" or "minimal".
func ParseInterface(s string) (Interface, error) {
	switch strings.ToLower(s) {
	case "ncurses":
		return InterfaceNcurses, nil
	case "minimal":
		return InterfaceMinimal, nil
	default:
		return 0, fmt.Errorf("unsupported interface %q (valid: ncurses, minimal)", s)
	}
}

// PreRunHook runs before VLC starts.
type PreRunHook func(ctx context.Context, entry station.Entry)

// PostRunHook runs after VLC exits. It observes the result only.
type PostRunHook func(ctx context.Context, entry station.Entry, res Result)

// Options configure a single launch.
type Options struct {
	Interface Interface
	// Path bypasses the locator when set.
	Path      string
	ExtraArgs []string

	// Out receives the pre-launch banner. Nil discards it.
	Out io.Writer
	// Pause is how long the banner stays up. Zero means DefaultPause; a
	// negative value skips the wait.
	Pause time.Duration

	// PreRun and PostRun replace the default banner and terminfo hooks
	// when non-nil.
	PreRun  []PreRunHook
	PostRun []PostRunHook
}

// VLC is a single prepared invocation of VLC for one station.
type VLC struct {
	entry    station.Entry
	location string
	argv     []string
	exec     Executor
	preRun   []PreRunHook
	postRun  []PostRunHook
	log      *zerolog.Logger
}

// BuildArgs returns VLC's arguments for entry, without the program name.
// Video entries never get the ncurses interface.
func BuildArgs(entry station.Entry, iface Interface, extra []string) []string {
	args := []string{entry.URL}

	if entry.Video {
		iface = InterfaceMinimal
	}

	if iface == InterfaceNcurses {
		args = append(args, "--intf", "ncurses")
	} else {
		args = append(args, "--no-video-title-show", "--meta-title", entry.Name)
	}

	return append(args, extra...)
}

// New prepares a launch. When opts.Path is empty the executable is located
// first; a location failure is returned before anything is spawned.
func New(ctx context.Context, entry station.Entry, opts Options, deps Deps) (*VLC, error) {
	d := deps.withDefaults()

	v := &VLC{
		entry:   entry,
		argv:    append([]string{CommandName}, BuildArgs(entry, opts.Interface, opts.ExtraArgs)...),
		exec:    d.Exec,
		preRun:  opts.PreRun,
		postRun: opts.PostRun,
		log:     d.Log,
	}

	if opts.Path == "" {
		loc, err := NewLocator(ctx, d)
		if err != nil {
			return nil, err
		}
		v.location = loc.Location()
	} else {
		v.location = opts.Path
	}
	v.argv[0] = v.location

	if v.preRun == nil {
		out := opts.Out
		if out == nil {
			out = io.Discard
		}
		pause := opts.Pause
		if pause == 0 {
			pause = DefaultPause
		}
		v.preRun = []PreRunHook{Banner(out, d.Clock, pause)}
	}
	if v.postRun == nil {
		v.postRun = []PostRunHook{NewTerminfoAdvisor(d).Check}
	}

	return v, nil
}

// Location returns the executable that will be run.
func (v *VLC) Location() string { return v.location }

// Argv returns a copy of the full command line, program path first.
func (v *VLC) Argv() []string {
	return append([]string(nil), v.argv...)
}

// Run plays the station and blocks until VLC exits. A non-zero exit code
// is returned in Result, not as an error.
func (v *VLC) Run(ctx context.Context) (Result, error) {
	for _, h := range v.preRun {
		h(ctx, v.entry)
	}

	v.log.Debug().Strs("argv", v.argv).Msg("starting vlc")
	res, err := v.exec.Run(ctx, v.argv[0], v.argv[1:]...)
	if err != nil {
		return res, fmt.Errorf("running %s: %w", v.location, err)
	}
	v.log.Debug().Int("exit_code", res.ExitCode).Msg("vlc exited")

	for _, h := range v.postRun {
		h(ctx, v.entry, res)
	}

	return res, nil
}
