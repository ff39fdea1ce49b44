// Package journal holds the bounded, ordered collection of saved recordings
// and the persistence boundary behind it.
package journal

import (
	"time"

	"github.com/perthho/dailyReco/internal/filler"
)

// MaxEntries is the hard cap on retained entries. Inserting past the cap
// evicts the oldest entries.
const MaxEntries = 50

// DateLayout is the calendar-date format used for Entry.Date.
const DateLayout = "2006-01-02"

// Entry is one saved journal recording. The JSON tags are the persisted
// record shape and must stay compatible with existing data.
type Entry struct {
	// ID is the creation timestamp in Unix milliseconds. Unique, never
	// reassigned.
	ID int64 `json:"id"`

	// Date is the user-selected capture date, YYYY-MM-DD.
	Date string `json:"date"`

	// Duration is the human-readable planned duration ("3 Minutes").
	Duration string `json:"duration"`

	// Video is the blob-store key of the recorded media.
	Video string `json:"video"`

	// Timestamp is the actual save time.
	Timestamp time.Time `json:"timestamp"`

	// Transcription is the full finalized speech text; may be empty.
	Transcription string `json:"transcription"`

	// FillerAnalysis is computed once at save time and never recomputed.
	FillerAnalysis *filler.Report `json:"fillerAnalysis,omitempty"`

	// Rating is 0 (unrated) through 5.
	Rating int `json:"rating"`

	// Notes is free text.
	Notes string `json:"notes"`

	// Bookmark is a single playback offset in seconds, if set.
	Bookmark *float64 `json:"bookmark,omitempty"`
}

// Patch is a partial update applied to an existing entry. Nil fields are
// left untouched.
type Patch struct {
	Rating   *int
	Notes    *string
	Bookmark *float64
}

// Persister is the persistence collaborator: a single named slot holding the
// full ordered entry set. A read immediately following a Save observes the
// written state.
type Persister interface {
	Load() ([]Entry, error)
	Save(entries []Entry) error
}
