// Package analytics derives streak and aggregate statistics from the current
// journal contents. Everything here is pure; the app recomputes after every
// store mutation that changes counts.
package analytics

import (
	"time"

	"github.com/perthho/dailyReco/internal/journal"
)

// Summary is the aggregate view shown on the stats screen.
type Summary struct {
	// TotalEntries is the current store size.
	TotalEntries int

	// AverageFillerCount is the mean of totalFillerCount over entries that
	// carry a filler report, 0 when none do. Raw counts, not ratios.
	AverageFillerCount float64

	// StreakDays counts consecutive calendar days ending today with at
	// least one entry.
	StreakDays int
}

// Summarize computes the summary for entries as of today.
func Summarize(entries []journal.Entry, today time.Time) Summary {
	return Summary{
		TotalEntries:       len(entries),
		AverageFillerCount: AverageFillerCount(entries),
		StreakDays:         Streak(entries, today),
	}
}

// AverageFillerCount averages the per-entry filler totals across entries
// that have a report.
func AverageFillerCount(entries []journal.Entry) float64 {
	sum, n := 0, 0
	for _, e := range entries {
		if e.FillerAnalysis == nil {
			continue
		}
		sum += e.FillerAnalysis.TotalFillerCount
		n++
	}
	if n == 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

// Streak walks distinct day offsets from today (offset 0) in ascending
// order; each offset matching the expected next day extends the streak, and
// the first gap ends the walk. Multiple entries on one date count once.
// Entries with unparsable dates are skipped.
func Streak(entries []journal.Entry, today time.Time) int {
	todayDate := truncateToDay(today)

	offsets := map[int]bool{}
	for _, e := range entries {
		d, err := time.ParseInLocation(journal.DateLayout, e.Date, today.Location())
		if err != nil {
			continue
		}
		off := int(todayDate.Sub(truncateToDay(d)).Hours() / 24)
		if off >= 0 {
			offsets[off] = true
		}
	}

	streak := 0
	for expected := 0; offsets[expected]; expected++ {
		streak++
	}
	return streak
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
