package journal

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/perthho/dailyReco/internal/filler"
)

func openTestPersister(t *testing.T) *SQLitePersister {
	t.Helper()

	p, err := OpenSQLite(filepath.Join(t.TempDir(), "journal.sqlite"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { p.Close() })
	return p
}

func TestSQLiteRoundTrip(t *testing.T) {
	p := openTestPersister(t)

	bookmark := 42.5
	entries := []Entry{
		{
			ID:            1700000000002,
			Date:          "2026-08-29",
			Duration:      "3 Minutes",
			Video:         "media:1700000000002",
			Timestamp:     time.Date(2026, 8, 29, 9, 30, 0, 0, time.UTC),
			Transcription: "um so this is my journal",
			FillerAnalysis: &filler.Report{
				CountsByWord:       map[string]int{"um": 1, "so": 1},
				TotalFillerCount:   2,
				TotalWordCount:     6,
				FillerRatioPercent: 33.3,
			},
			Rating:   4,
			Notes:    "good take",
			Bookmark: &bookmark,
		},
		{
			ID:        1700000000001,
			Date:      "2026-08-28",
			Duration:  "1 Minute",
			Video:     "media:1700000000001",
			Timestamp: time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC),
		},
	}

	if err := p.Save(entries); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := p.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}

	// Newest first by id.
	if got[0].ID != 1700000000002 || got[1].ID != 1700000000001 {
		t.Errorf("order = [%d %d]", got[0].ID, got[1].ID)
	}

	first := got[0]
	if first.Transcription != "um so this is my journal" {
		t.Errorf("transcription = %q", first.Transcription)
	}
	if first.FillerAnalysis == nil {
		t.Fatal("fillerAnalysis missing")
	}
	if first.FillerAnalysis.CountsByWord["um"] != 1 {
		t.Errorf("counts[um] = %d, want 1", first.FillerAnalysis.CountsByWord["um"])
	}
	if first.FillerAnalysis.FillerRatioPercent != 33.3 {
		t.Errorf("ratio = %v, want 33.3", first.FillerAnalysis.FillerRatioPercent)
	}
	if first.Rating != 4 || first.Notes != "good take" {
		t.Errorf("rating/notes = %d/%q", first.Rating, first.Notes)
	}
	if first.Bookmark == nil || *first.Bookmark != 42.5 {
		t.Errorf("bookmark = %v, want 42.5", first.Bookmark)
	}
	if !first.Timestamp.Equal(entries[0].Timestamp) {
		t.Errorf("timestamp = %v, want %v", first.Timestamp, entries[0].Timestamp)
	}

	second := got[1]
	if second.FillerAnalysis != nil {
		t.Error("absent fillerAnalysis should load as nil")
	}
	if second.Bookmark != nil {
		t.Error("absent bookmark should load as nil")
	}
}

func TestSQLiteSaveReplacesSlot(t *testing.T) {
	p := openTestPersister(t)

	if err := p.Save([]Entry{testEntry(1), testEntry(2)}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := p.Save([]Entry{testEntry(3)}); err != nil {
		t.Fatalf("second save: %v", err)
	}

	got, err := p.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 1 || got[0].ID != 3 {
		t.Errorf("got %+v, want only entry 3", got)
	}
}

func TestSQLiteEmptySlot(t *testing.T) {
	p := openTestPersister(t)

	got, err := p.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("len = %d, want 0", len(got))
	}
}

func TestSQLiteStoreIntegration(t *testing.T) {
	p := openTestPersister(t)

	s, err := Open(p)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	if _, err := s.Insert(testEntry(10)); err != nil {
		t.Fatalf("insert: %v", err)
	}
	notes := "first entry"
	if err := s.Update(10, Patch{Notes: &notes}); err != nil {
		t.Fatalf("update: %v", err)
	}

	reopened, err := Open(p)
	if err != nil {
		t.Fatalf("reopen store: %v", err)
	}
	e, ok := reopened.FindByID(10)
	if !ok {
		t.Fatal("entry missing after reopen")
	}
	if e.Notes != "first entry" {
		t.Errorf("notes = %q", e.Notes)
	}
}
