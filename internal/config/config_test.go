package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFromMissingFileGivesDefaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "config.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.DefaultDurationSeconds != 180 {
		t.Errorf("defaultDurationSeconds = %d, want 180", cfg.DefaultDurationSeconds)
	}
	if !cfg.NightMode {
		t.Error("nightMode should default to true")
	}
}

func TestLoadFromParsesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
socket_path: /tmp/custom.sock
default_duration_seconds: 60
night_mode: false
extra_filler_words:
  - whatever
  - basically speaking
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.SocketPath != "/tmp/custom.sock" {
		t.Errorf("socketPath = %q", cfg.SocketPath)
	}
	if cfg.DefaultDurationSeconds != 60 {
		t.Errorf("defaultDurationSeconds = %d, want 60", cfg.DefaultDurationSeconds)
	}
	if cfg.NightMode {
		t.Error("nightMode = true, want false")
	}
	if len(cfg.ExtraFillerWords) != 2 {
		t.Errorf("extraFillerWords = %v", cfg.ExtraFillerWords)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	cfg.NightMode = false
	cfg.DefaultDurationSeconds = 300

	if err := cfg.Save(); err != nil {
		t.Fatalf("save: %v", err)
	}

	reloaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.NightMode {
		t.Error("nightMode = true after save, want false")
	}
	if reloaded.DefaultDurationSeconds != 300 {
		t.Errorf("defaultDurationSeconds = %d, want 300", reloaded.DefaultDurationSeconds)
	}
}

func TestResolveSocketPath(t *testing.T) {
	cfg := Default()
	if got := cfg.ResolveSocketPath("/run/default.sock"); got != "/run/default.sock" {
		t.Errorf("got %q, want default", got)
	}

	cfg.SocketPath = "/tmp/mine.sock"
	if got := cfg.ResolveSocketPath("/run/default.sock"); got != "/tmp/mine.sock" {
		t.Errorf("got %q, want override", got)
	}
}
