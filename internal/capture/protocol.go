// Package capture provides the client and protocol types for talking to the
// capture daemon over a Unix socket using NDJSON. The daemon owns the camera,
// microphone and on-device speech recognition; this client only drives it and
// consumes its event stream.
package capture

// Command is sent from a client to the daemon.
type Command struct {
	// Cmd is one of: acquire, release, record, stop, listen, unlisten,
	// status, subscribe.
	Cmd       string `json:"cmd"`
	SessionID string `json:"sessionId,omitempty"`

	// Video and Audio select the tracks for an acquire command.
	Video *bool `json:"video,omitempty"`
	Audio *bool `json:"audio,omitempty"`

	// Events filters the subscription, empty means all.
	Events []string `json:"events,omitempty"`
}

// Response is returned by the daemon after processing a command.
type Response struct {
	OK        bool   `json:"ok"`
	SessionID string `json:"sessionId,omitempty"`
	Acquired  *bool  `json:"acquired,omitempty"`
	Recording *bool  `json:"recording,omitempty"`
	Error     string `json:"error,omitempty"`
	Status    string `json:"status,omitempty"`
}

// Event is streamed from the daemon to subscribed clients.
type Event struct {
	// Event is one of: transcript, media, device_lost, status, error.
	Event     string `json:"event"`
	SessionID string `json:"sessionId,omitempty"`

	// Transcript events carry Text and Final.
	Text  string `json:"text,omitempty"`
	Final *bool  `json:"final,omitempty"`

	// Media events carry the path of the assembled recording.
	Path string `json:"path,omitempty"`

	// Status events carry Recording.
	Recording *bool `json:"recording,omitempty"`

	// Error events carry Message; Transient errors clear on their own.
	Message   string `json:"message,omitempty"`
	Transient *bool  `json:"transient,omitempty"`
}

// BoolPtr returns a pointer to a bool value. Convenience for building commands.
func BoolPtr(b bool) *bool { return &b }
