// Package transcript adapts a streaming speech-to-text provider into a
// running transcript. Segments arrive tagged interim or final: interim text
// is display-only and subject to revision, final text is appended to the
// accumulated transcript in arrival order.
package transcript

import (
	"log/slog"
	"strings"
)

// Provider is the external speech-recognition collaborator. Implementations
// deliver segments out of band via Collector.Push; Start and Stop only gate
// the stream. A Provider error never fails the capture session: the collector
// logs it and continues without transcript data.
type Provider interface {
	Start() error
	Stop() error
}

// Collector accumulates finalized transcript segments for one capture
// session. It is not safe for concurrent use; the session event loop owns it.
type Collector struct {
	provider Provider

	active      bool
	unavailable bool
	interim     string
	finals      []string
}

// NewCollector returns a collector feeding from provider. A nil provider is
// allowed; the collector then only accumulates what is pushed into it.
func NewCollector(provider Provider) *Collector {
	return &Collector{provider: provider}
}

// Start begins a new accumulation. Calling Start while already active is a
// no-op. Provider failures are logged and leave the collector active but
// marked unavailable, so the session records an empty transcript instead of
// failing.
func (c *Collector) Start() {
	if c.active {
		return
	}
	c.active = true
	c.unavailable = false
	c.interim = ""
	c.finals = c.finals[:0]

	if c.provider == nil {
		return
	}
	if err := c.provider.Start(); err != nil {
		slog.Warn("transcription unavailable, continuing without transcript", "error", err)
		c.unavailable = true
	}
}

// Stop ends accumulation. Idempotent; segments pushed after Stop are dropped.
func (c *Collector) Stop() {
	if !c.active {
		return
	}
	c.active = false
	c.interim = ""

	if c.provider == nil || c.unavailable {
		return
	}
	if err := c.provider.Stop(); err != nil {
		slog.Warn("stopping transcription provider", "error", err)
	}
}

// Push feeds one segment from the provider. Final segments are appended to
// the running transcript; interim segments only replace the display text.
// Segments arriving while the collector is stopped are ignored.
func (c *Collector) Push(text string, final bool) {
	if !c.active {
		return
	}
	if !final {
		c.interim = text
		return
	}
	c.interim = ""
	text = strings.TrimSpace(text)
	if text != "" {
		c.finals = append(c.finals, text)
	}
}

// Fail marks the provider as gone mid-session. Already accumulated segments
// are kept.
func (c *Collector) Fail(err error) {
	if err != nil {
		slog.Warn("transcription provider error", "error", err)
	}
	c.unavailable = true
	c.interim = ""
}

// Active reports whether the collector is accumulating.
func (c *Collector) Active() bool { return c.active }

// Interim returns the current unstable display text.
func (c *Collector) Interim() string { return c.interim }

// Finals returns the finalized segments in arrival order.
func (c *Collector) Finals() []string {
	out := make([]string, len(c.finals))
	copy(out, c.finals)
	return out
}

// Text returns the accumulated transcript: all final segments joined in
// arrival order.
func (c *Collector) Text() string {
	return strings.Join(c.finals, " ")
}
