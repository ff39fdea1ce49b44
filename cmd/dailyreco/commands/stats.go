package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/perthho/dailyReco/internal/analytics"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show streak and filler-word stats",
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

		s := analytics.Summarize(store.List(), time.Now())
		fmt.Printf("Entries:           %d\n", s.TotalEntries)
		fmt.Printf("Current streak:    %d day(s)\n", s.StreakDays)
		fmt.Printf("Avg filler words:  %.1f per entry\n", s.AverageFillerCount)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
