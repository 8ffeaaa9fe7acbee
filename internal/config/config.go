// Package config handles TOML-based configuration loading and validation.
// TOML is parsed as data only; nothing in the file is executed.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

const appName = "chillstreams"

// Config holds all application configuration.
type Config struct {
	VLCPath      string  `toml:"vlc_path"`
	Interface    string  `toml:"interface"`
	PauseSecs    float64 `toml:"pause_secs"`
	StationsFile string  `toml:"stations_file"`
	History      bool    `toml:"history"`
	Debug        bool    `toml:"debug"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		VLCPath:      "",
		Interface:    "ncurses",
		PauseSecs:    2,
		StationsFile: "",
		History:      true,
		Debug:        false,
	}
}

// configDir returns the XDG-compliant config directory.
func configDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".config", appName), nil
}

// ConfigPath returns the path to the config file.
func ConfigPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load reads the config file and merges with defaults.
// If the config file doesn't exist, defaults are returned.
func Load() (*Config, error) {
	cfg := Default()

	path, err := ConfigPath()
	if err != nil {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Validate checks config values are within acceptable bounds.
func (c *Config) Validate() error {
	validInterfaces := map[string]bool{
		"ncurses": true, "minimal": true,
	}
	if !validInterfaces[strings.ToLower(c.Interface)] {
		return fmt.Errorf("unsupported interface %q (valid: ncurses, minimal)", c.Interface)
	}

	if c.PauseSecs < 0 || c.PauseSecs > 30 {
		return fmt.Errorf("pause_secs %v out of range (0-30)", c.PauseSecs)
	}

	return nil
}

// PauseDuration returns the pre-launch pause.
func (c *Config) PauseDuration() time.Duration {
	return time.Duration(c.PauseSecs * float64(time.Second))
}

// ExpandStationsFile resolves ~ in the stations file path. An empty
// setting stays empty, meaning the built-in list.
func (c *Config) ExpandStationsFile() (string, error) {
	return expandHome(c.StationsFile)
}

// ExpandVLCPath resolves ~ in the configured VLC path.
func (c *Config) ExpandVLCPath() (string, error) {
	return expandHome(c.VLCPath)
}

func expandHome(p string) (string, error) {
	if p == "" {
		return "", nil
	}
	if strings.HasPrefix(p, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("expanding home dir: %w", err)
		}
		p = filepath.Join(home, p[2:])
	}
	return filepath.Abs(p)
}

// HistoryPath returns the path to the play history file.
func HistoryPath() (string, error) {
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataDir, appName, "history.tsv"), nil
}
