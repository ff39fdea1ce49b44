package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var entriesLimit int

var entriesCmd = &cobra.Command{
	Use:   "entries",
	Short: "List journal entries, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		dir, err := cfg.ResolveDataDir()
		if err != nil {
			return err
		}
		setupLogging(os.Stderr)

		store, cleanup, err := openJournal(cfg, dir)
		if err != nil {
			return err
		}
		defer cleanup()

		entries := store.List()
		if len(entries) == 0 {
			fmt.Println("No entries yet.")
			return nil
		}
		if entriesLimit > 0 && len(entries) > entriesLimit {
			entries = entries[:entriesLimit]
		}

		for _, e := range entries {
			line := fmt.Sprintf("%s  %-10s", e.Date, e.Duration)
			if e.Rating > 0 {
				line += fmt.Sprintf("  %d/5", e.Rating)
			}
			if fa := e.FillerAnalysis; fa != nil {
				line += fmt.Sprintf("  %d fillers (%.1f%%)", fa.TotalFillerCount, fa.FillerRatioPercent)
			}
			if e.Notes != "" {
				line += "  " + e.Notes
			}
			fmt.Println(line)
		}
		return nil
	},
}

func init() {
	entriesCmd.Flags().IntVarP(&entriesLimit, "limit", "n", 0, "show at most n entries")
	rootCmd.AddCommand(entriesCmd)
}
