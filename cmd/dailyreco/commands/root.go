package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/perthho/dailyReco/internal/app"
	"github.com/perthho/dailyReco/internal/blob"
	"github.com/perthho/dailyReco/internal/config"
	"github.com/perthho/dailyReco/internal/journal"
)

var (
	// Global flags
	configPath string
	dataDir    string
	socketPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "dailyreco",
	Short: "Daily video journal with filler-word analysis",
	Long: `dailyreco - record one short video journal entry a day.

The TUI talks to the capture daemon for camera, microphone and live
speech-to-text, analyzes each entry for filler words, and keeps the 50
most recent entries with ratings, notes and bookmarks.

Data is stored in the OS config directory:
  macOS:   ~/Library/Application Support/dailyreco/
  Linux:   ~/.config/dailyreco/
  Windows: %AppData%/dailyreco/`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		dir, err := cfg.ResolveDataDir()
		if err != nil {
			return err
		}
		// Logs go to a file: stdout belongs to the TUI.
		closeLog, err := setupFileLogging(dir)
		if err != nil {
			return err
		}
		defer closeLog()

		store, blobs, cleanup, err := openStores(cfg, dir)
		if err != nil {
			return err
		}
		defer cleanup()

		p := tea.NewProgram(app.New(cfg, store, blobs), tea.WithAltScreen())
		_, err = p.Run()
		return err
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file path")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "data directory override")
	rootCmd.PersistentFlags().StringVar(&socketPath, "socket", "", "capture daemon socket path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")
}

// loadConfig reads the config file and applies flag overrides.
func loadConfig() (*config.Config, error) {
	var cfg *config.Config
	var err error
	if configPath != "" {
		cfg, err = config.LoadFrom(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}
	if dataDir != "" {
		cfg.DataDir = dataDir
	}
	if socketPath != "" {
		cfg.SocketPath = socketPath
	}
	return cfg, nil
}

// openStores opens the journal database and the media blob store.
func openStores(cfg *config.Config, dir string) (*journal.Store, *blob.Store, func(), error) {
	persister, err := journal.OpenSQLite(journal.DefaultDBPath(dir))
	if err != nil {
		return nil, nil, nil, fmt.Errorf("open journal database: %w", err)
	}
	store, err := journal.Open(persister)
	if err != nil {
		persister.Close()
		return nil, nil, nil, fmt.Errorf("load journal: %w", err)
	}
	blobs, err := blob.Open(dir)
	if err != nil {
		persister.Close()
		return nil, nil, nil, fmt.Errorf("open media store: %w", err)
	}
	cleanup := func() {
		blobs.Close()
		persister.Close()
	}
	return store, blobs, cleanup, nil
}

// openJournal opens just the journal database, for read-only commands.
func openJournal(cfg *config.Config, dir string) (*journal.Store, func(), error) {
	persister, err := journal.OpenSQLite(journal.DefaultDBPath(dir))
	if err != nil {
		return nil, nil, fmt.Errorf("open journal database: %w", err)
	}
	store, err := journal.Open(persister)
	if err != nil {
		persister.Close()
		return nil, nil, fmt.Errorf("load journal: %w", err)
	}
	return store, func() { persister.Close() }, nil
}

// setupFileLogging routes slog to dailyreco.log in the data directory.
func setupFileLogging(dir string) (func(), error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	path := filepath.Join(dir, "dailyreco.log")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	setupLogging(f)
	return func() { f.Close() }, nil
}

// setupLogging routes slog to w at the level selected by --verbose.
func setupLogging(w io.Writer) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}
