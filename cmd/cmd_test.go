package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chillstreams/internal/config"
	"chillstreams/internal/station"
	"chillstreams/internal/ui"
)

const testStations = `
[[station]]
name = "Groove Salad"
url = "https://example.com/gs"
category = "ambient"

[[station]]
name = "Lofi Girl"
url = "https://example.com/lofi"
category = "lofi"
video = true
`

func writeStations(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "stations.toml")
	require.NoError(t, os.WriteFile(path, []byte(testStations), 0o644))
	return path
}

func TestPickStationByName(t *testing.T) {
	list, err := station.Parse([]byte(testStations))
	require.NoError(t, err)

	got, err := pickStation(list, "lofi")
	require.NoError(t, err)
	assert.Equal(t, "Lofi Girl", got.Name)

	_, err = pickStation(list, "jazz")
	assert.ErrorIs(t, err, station.ErrStationNotFound)
}

func TestListCommand(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	path := writeStations(t)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"list", "--stations", path, "--category", "ambient"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
		flagStations, flagCategory = "", ""
	})

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), "Groove Salad")
	assert.NotContains(t, out.String(), "Lofi Girl")
}

func TestLocateUsesConfiguredPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"locate", "--vlc-path", "/opt/vlc/bin/vlc"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
		flagVLCPath = ""
	})

	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, "/opt/vlc/bin/vlc\n", out.String())
}

func TestLoadConfigAppliesFlags(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	flagMinimal, flagNoHistory = true, true
	t.Cleanup(func() { flagMinimal, flagNoHistory = false, false })

	require.NoError(t, loadConfig(rootCmd, nil))
	assert.Equal(t, "minimal", cfg.Interface)
	assert.False(t, cfg.History)

	cfg = config.Default()
}

func TestExitCodeError(t *testing.T) {
	err := &exitCodeError{code: 4}
	assert.Equal(t, "vlc exited with status 4", err.Error())
}

func TestExitStatus(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantOut  string
	}{
		{"success", nil, 0, ""},
		{"picker dismissed", ui.ErrCancelled, 0, ""},
		{"history picker dismissed", fmt.Errorf("choosing entry: %w", ui.ErrCancelled), 0, ""},
		{"vlc status", &exitCodeError{code: 3}, 3, ""},
		{"other failure", errors.New("loading stations: boom"), 1, "Error: loading stations: boom\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stderr bytes.Buffer
			assert.Equal(t, tt.wantCode, exitStatus(tt.err, &stderr))
			assert.Equal(t, tt.wantOut, stderr.String())
		})
	}
}

func TestLaunchPause(t *testing.T) {
	cfg = config.Default()
	t.Cleanup(func() { cfg = config.Default() })

	cfg.PauseSecs = 0.5
	assert.Equal(t, 500*time.Millisecond, launchPause())

	cfg.PauseSecs = 0
	assert.Negative(t, launchPause())
}
