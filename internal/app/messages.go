package app

import "github.com/perthho/dailyReco/internal/capture"

// ConnectedMsg is sent when both daemon connections are established.
type ConnectedMsg struct {
	Client   *capture.Client // for commands (acquire, record, stop, ...)
	EvClient *capture.Client // for event subscription
}

// ConnectErrorMsg is sent when the daemon connection fails.
type ConnectErrorMsg struct {
	Err error
}

// CaptureEventMsg wraps a streamed event from the capture daemon.
type CaptureEventMsg struct {
	Event capture.Event
}

// EventErrorMsg is sent when the event stream breaks.
type EventErrorMsg struct {
	Err error
}

// AcquireResultMsg carries the outcome of a device acquisition request.
type AcquireResultMsg struct {
	Handle string
	Err    error
}

// RecordResultMsg carries the outcome of the record command.
type RecordResultMsg struct {
	Err error
}

// StopResultMsg carries the outcome of the stop command.
type StopResultMsg struct {
	Err error
}

// CountdownTickMsg fires once per second while recording.
type CountdownTickMsg struct{}

// MediaReadMsg carries the assembled recording read from the daemon's
// output path.
type MediaReadMsg struct {
	Data []byte
	Err  error
}

// SavedRedirectMsg moves to the entries screen shortly after a save.
type SavedRedirectMsg struct{}

// ClearTransientErrorMsg clears a transient error after a timeout.
type ClearTransientErrorMsg struct{}

// ReconnectTickMsg triggers a reconnection attempt.
type ReconnectTickMsg struct{}

// releasedMsg acknowledges a fire-and-forget release command.
type releasedMsg struct{}
