// Package session implements the capture session state machine. It owns the
// single in-flight recording: device acquisition state, the per-second
// countdown, transcript collection, and finalization into a journal entry.
//
// The machine performs no I/O. Commands (Acquire, Start, Stop) validate and
// change state; everything asynchronous — device acquisition results,
// transcript segments, timer ticks, media assembly — arrives as a tagged
// Event through Apply, processed one at a time in arrival order. This keeps
// the machine synchronous and testable without real devices.
package session

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/perthho/dailyReco/internal/filler"
	"github.com/perthho/dailyReco/internal/journal"
	"github.com/perthho/dailyReco/internal/transcript"
)

// State is the capture session lifecycle state.
type State int

const (
	// StateIdle: no device held, nothing in flight.
	StateIdle State = iota
	// StateAcquiring: device access requested, answer pending.
	StateAcquiring
	// StateDeviceReady: device held, ready to record.
	StateDeviceReady
	// StateRecording: media capture and countdown running.
	StateRecording
	// StateFinalizing: capture stopped, waiting for media assembly.
	StateFinalizing
	// StateDeviceFailed: acquisition denied or failed. Terminal per
	// attempt; Acquire starts a fresh attempt.
	StateDeviceFailed
)

// String returns the state name for logs and status lines.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAcquiring:
		return "acquiring"
	case StateDeviceReady:
		return "device-ready"
	case StateRecording:
		return "recording"
	case StateFinalizing:
		return "finalizing"
	case StateDeviceFailed:
		return "device-failed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Usage errors: the command is rejected, no state changes.
var (
	ErrNoDevice = errors.New("session: no device ready")
	ErrBusy     = errors.New("session: capture already in progress")
)

// Event is an asynchronous input to the machine.
type Event interface{ isEvent() }

// DeviceReady reports successful device acquisition.
type DeviceReady struct {
	// Handle identifies the acquired stream at the capture daemon.
	Handle string
}

// DeviceFailed reports denied or failed acquisition. Not retried
// automatically.
type DeviceFailed struct {
	Reason string
}

// TranscriptSegment is one speech-to-text segment, interim or final.
type TranscriptSegment struct {
	Text  string
	Final bool
}

// TickElapsed is one second of countdown.
type TickElapsed struct{}

// MediaAssembled reports the encoded media for the stopped capture. Err set
// means assembly failed; the entry is still saved without media.
type MediaAssembled struct {
	Data []byte
	Err  error
}

// DeviceLost reports the capture device disappearing mid-recording.
// Unrecoverable for the session; a best-effort save still happens.
type DeviceLost struct{}

func (DeviceReady) isEvent()       {}
func (DeviceFailed) isEvent()      {}
func (TranscriptSegment) isEvent() {}
func (TickElapsed) isEvent()       {}
func (MediaAssembled) isEvent()    {}
func (DeviceLost) isEvent()        {}

// EntrySink receives the finished entry. *journal.Store satisfies it.
type EntrySink interface {
	Insert(entry journal.Entry) (evicted []journal.Entry, err error)
}

// MediaStore persists the assembled media blob. *blob.Store satisfies it.
type MediaStore interface {
	Put(key string, data []byte) error
	Delete(key string) error
}

// MediaKeyFunc maps an entry id to its blob key.
type MediaKeyFunc func(entryID int64) string

// Session is the one capture session state machine. Only one exists per app;
// the machine itself rejects overlapping captures.
type Session struct {
	state  State
	handle string

	planned       int
	remaining     int
	countdownOn   bool
	autoStopped   bool
	date          string
	durationLabel string

	collector  *transcript.Collector
	sink       EntrySink
	media      MediaStore
	mediaKey   MediaKeyFunc
	extraVocab []string
	now        func() time.Time

	failReason string
	lastSaved  *journal.Entry
	saveErr    error
}

// Config wires the session's collaborators.
type Config struct {
	// Collector receives transcript segments. Required.
	Collector *transcript.Collector

	// Sink receives finished entries. Required.
	Sink EntrySink

	// Media stores assembled blobs. Optional; without it entries are
	// saved with no media reference.
	Media MediaStore

	// MediaKey maps entry ids to blob keys. Required when Media is set.
	MediaKey MediaKeyFunc

	// ExtraFillerWords extends the analyzer vocabulary.
	ExtraFillerWords []string

	// Now overrides the clock, for tests.
	Now func() time.Time
}

// New returns an idle session.
func New(cfg Config) *Session {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Session{
		state:      StateIdle,
		collector:  cfg.Collector,
		sink:       cfg.Sink,
		media:      cfg.Media,
		mediaKey:   cfg.MediaKey,
		extraVocab: cfg.ExtraFillerWords,
		now:        now,
	}
}

// Acquire begins a device acquisition attempt. Valid from Idle and from a
// previous failed attempt; rejected while a capture is in flight. The answer
// arrives as DeviceReady or DeviceFailed.
func (s *Session) Acquire() error {
	switch s.state {
	case StateIdle, StateDeviceFailed:
		s.state = StateAcquiring
		s.failReason = ""
		return nil
	case StateDeviceReady, StateAcquiring:
		return nil // already held or pending
	default:
		return ErrBusy
	}
}

// Start begins a timed recording of plannedSeconds. date is the
// user-selected capture date (YYYY-MM-DD, today when empty) and
// durationLabel the human-readable planned duration. Rejected with
// ErrNoDevice unless a device is ready.
func (s *Session) Start(plannedSeconds int, date, durationLabel string) error {
	if s.state != StateDeviceReady {
		return ErrNoDevice
	}
	if plannedSeconds <= 0 {
		return fmt.Errorf("session: planned duration %d must be positive", plannedSeconds)
	}
	if date == "" {
		date = s.now().Format(journal.DateLayout)
	}

	// Any previous countdown is dead by construction: the machine holds a
	// single countdown and re-seeds it here.
	s.planned = plannedSeconds
	s.remaining = plannedSeconds
	s.countdownOn = true
	s.autoStopped = false
	s.date = date
	s.durationLabel = durationLabel
	s.lastSaved = nil
	s.saveErr = nil

	s.collector.Start()
	s.state = StateRecording
	slog.Info("recording started", "planned_seconds", plannedSeconds, "date", date)
	return nil
}

// Stop ends the recording, whether called by the user or by the countdown.
// Idempotent: calling it while not recording is a no-op. The transcript
// stream and countdown are cancelled here, before finalization, so no
// further segments are appended.
func (s *Session) Stop() {
	if s.state != StateRecording {
		return
	}
	s.countdownOn = false
	s.collector.Stop()
	s.state = StateFinalizing
	slog.Info("recording stopped", "auto", s.autoStopped)
}

// Apply feeds one event into the machine.
func (s *Session) Apply(ev Event) {
	switch ev := ev.(type) {
	case DeviceReady:
		if s.state != StateAcquiring {
			return
		}
		s.handle = ev.Handle
		s.state = StateDeviceReady

	case DeviceFailed:
		if s.state != StateAcquiring {
			return
		}
		s.handle = ""
		s.failReason = ev.Reason
		s.state = StateDeviceFailed

	case TranscriptSegment:
		s.collector.Push(ev.Text, ev.Final)

	case TickElapsed:
		if s.state != StateRecording || !s.countdownOn {
			return
		}
		s.remaining--
		if s.remaining <= 0 {
			s.remaining = 0
			s.autoStopped = true
			s.Stop()
		}

	case MediaAssembled:
		if s.state != StateFinalizing {
			return
		}
		s.finalize(ev.Data, ev.Err)

	case DeviceLost:
		if s.state != StateRecording {
			return
		}
		slog.Warn("capture device lost mid-recording, saving best effort")
		s.Stop()
		s.finalize(nil, errors.New("session: device lost"))
	}
}

// finalize builds the journal entry from the accumulated session state and
// hands it to the sink. Media failures degrade to an entry without media.
func (s *Session) finalize(media []byte, mediaErr error) {
	now := s.now()
	text := s.collector.Text()
	report := filler.AnalyzeWith(text, s.extraVocab)

	entry := journal.Entry{
		ID:             now.UnixMilli(),
		Date:           s.date,
		Duration:       s.durationLabel,
		Timestamp:      now,
		Transcription:  text,
		FillerAnalysis: &report,
	}

	if mediaErr != nil {
		slog.Warn("media assembly failed, saving entry without media", "error", mediaErr)
	} else if len(media) > 0 && s.media != nil {
		key := s.mediaKey(entry.ID)
		if err := s.media.Put(key, media); err != nil {
			slog.Warn("storing media blob", "error", err)
		} else {
			entry.Video = key
		}
	}

	evicted, err := s.sink.Insert(entry)
	if err != nil {
		s.saveErr = err
		slog.Error("saving journal entry", "error", err)
	} else {
		s.lastSaved = &entry
		slog.Info("journal entry saved", "id", entry.ID,
			"words", report.TotalWordCount, "fillers", report.TotalFillerCount)
	}

	// Evicted entries take their media with them.
	if s.media != nil {
		for _, old := range evicted {
			if old.Video == "" {
				continue
			}
			if err := s.media.Delete(old.Video); err != nil {
				slog.Warn("deleting evicted media blob", "key", old.Video, "error", err)
			}
		}
	}

	s.handle = ""
	s.state = StateIdle
}

// Release drops the held device handle and returns to Idle. No-op while a
// capture is in flight.
func (s *Session) Release() {
	if s.state != StateDeviceReady && s.state != StateDeviceFailed {
		return
	}
	s.handle = ""
	s.state = StateIdle
}

// State returns the current lifecycle state.
func (s *Session) State() State { return s.state }

// Handle returns the acquired device stream handle, if any.
func (s *Session) Handle() string { return s.handle }

// FailReason returns the user-visible acquisition failure reason.
func (s *Session) FailReason() string { return s.failReason }

// Remaining returns the countdown seconds left.
func (s *Session) Remaining() int { return s.remaining }

// CountdownVisible reports whether the countdown should be displayed.
func (s *Session) CountdownVisible() bool { return s.countdownOn }

// CountdownLabel renders the remaining time as minutes:seconds.
func (s *Session) CountdownLabel() string {
	return fmt.Sprintf("%d:%02d", s.remaining/60, s.remaining%60)
}

// AutoStopped reports whether the last stop came from the countdown.
func (s *Session) AutoStopped() bool { return s.autoStopped }

// LastSaved returns the most recently finalized entry, if the current
// acquire/record cycle produced one.
func (s *Session) LastSaved() *journal.Entry { return s.lastSaved }

// SaveErr returns the error from the last finalization, if saving failed.
func (s *Session) SaveErr() error { return s.saveErr }

// Interim returns the current unstable transcript text for display.
func (s *Session) Interim() string { return s.collector.Interim() }

// FinalSegments returns the finalized transcript segments so far.
func (s *Session) FinalSegments() []string { return s.collector.Finals() }
