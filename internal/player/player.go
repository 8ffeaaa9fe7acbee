// Package player locates the VLC executable and launches it for a station.
// All invocations use explicit argument slices; nothing is passed through a
// shell.
package player

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"runtime"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// Result is what a finished child process reports back.
type Result struct {
	Output   []byte
	ExitCode int
}

// Executor runs child processes. A non-zero exit is reported in Result;
// the error is reserved for processes that could not be started.
type Executor interface {
	// Output runs a command and captures its stdout. Stderr is discarded.
	Output(ctx context.Context, name string, args ...string) (Result, error)

	// Run runs a command in the foreground, attached to the terminal.
	Run(ctx context.Context, name string, args ...string) (Result, error)
}

// ExecRunner is the os/exec backed Executor. Nil streams default to the
// process's own stdin, stdout and stderr.
type ExecRunner struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

func (r *ExecRunner) Output(ctx context.Context, name string, args ...string) (Result, error) {
	var buf bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &buf

	code, err := exitCode(cmd.Run())
	return Result{Output: buf.Bytes(), ExitCode: code}, err
}

func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) (Result, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = r.Stdin
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr
	if cmd.Stdin == nil {
		cmd.Stdin = os.Stdin
	}
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}

	code, err := exitCode(cmd.Run())
	return Result{ExitCode: code}, err
}

// exitCode splits an exec error into an exit status and a start failure.
func exitCode(err error) (int, error) {
	if err == nil {
		return 0, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	return -1, err
}

// Deps are the host facilities the locator and launcher touch. Zero fields
// fall back to the real implementations.
type Deps struct {
	Fs     afero.Fs
	Exec   Executor
	Getenv func(string) string
	Home   func() (string, error)
	Clock  clockwork.Clock
	OS     string
	Arch   string
	Log    *zerolog.Logger
}

func (d Deps) withDefaults() Deps {
	if d.Fs == nil {
		d.Fs = afero.NewOsFs()
	}
	if d.Exec == nil {
		d.Exec = &ExecRunner{}
	}
	if d.Getenv == nil {
		d.Getenv = os.Getenv
	}
	if d.Home == nil {
		d.Home = os.UserHomeDir
	}
	if d.Clock == nil {
		d.Clock = clockwork.NewRealClock()
	}
	if d.OS == "" {
		d.OS = runtime.GOOS
	}
	if d.Arch == "" {
		d.Arch = runtime.GOARCH
	}
	if d.Log == nil {
		nop := zerolog.Nop()
		d.Log = &nop
	}
	return d
}
