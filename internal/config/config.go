// Package config loads and saves the dailyreco configuration.
//
// The config file lives under os.UserConfigDir():
//
//	~/Library/Application Support/dailyreco/config.yaml  (macOS)
//	~/.config/dailyreco/config.yaml                      (Linux)
//	%AppData%/dailyreco/config.yaml                      (Windows)
//
// A missing file yields the defaults; the file is only written when a
// setting (like the night-mode toggle) changes.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
)

// appDir is the directory name under os.UserConfigDir().
const appDir = "dailyreco"

// configFile is the file name inside the app directory.
const configFile = "config.yaml"

// Config holds the user-adjustable settings.
type Config struct {
	// SocketPath overrides the capture daemon socket path.
	SocketPath string `yaml:"socket_path,omitempty"`

	// DataDir holds the journal database, media blobs and log file.
	DataDir string `yaml:"data_dir,omitempty"`

	// DefaultDurationSeconds seeds the duration picker.
	DefaultDurationSeconds int `yaml:"default_duration_seconds,omitempty"`

	// NightMode selects the dark color theme. On by default.
	NightMode bool `yaml:"night_mode"`

	// ExtraFillerWords extends the analyzer vocabulary.
	ExtraFillerWords []string `yaml:"extra_filler_words,omitempty"`

	// path the config was loaded from, for Save.
	path string
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		DefaultDurationSeconds: 180,
		NightMode:              true,
	}
}

// DefaultPath returns the default config file path.
func DefaultPath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine config directory: %w", err)
	}
	return filepath.Join(base, appDir, configFile), nil
}

// Load reads the config from the default location.
func Load() (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom reads the config from path. A missing file is not an error.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()
	cfg.path = path

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.DefaultDurationSeconds <= 0 {
		cfg.DefaultDurationSeconds = 180
	}
	return cfg, nil
}

// Save writes the config back to where it was loaded from.
func (c *Config) Save() error {
	if c.path == "" {
		path, err := DefaultPath()
		if err != nil {
			return err
		}
		c.path = path
	}

	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(c.path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// ResolveDataDir returns the configured data directory, defaulting to the
// app directory next to the config file.
func (c *Config) ResolveDataDir() (string, error) {
	if c.DataDir != "" {
		return c.DataDir, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine data directory: %w", err)
	}
	return filepath.Join(base, appDir), nil
}

// ResolveSocketPath returns the configured daemon socket path, or def when
// unset.
func (c *Config) ResolveSocketPath(def string) string {
	if c.SocketPath != "" {
		return c.SocketPath
	}
	return def
}
