package transcript

import (
	"errors"
	"testing"
)

// fakeProvider records Start/Stop calls and can fail on Start.
type fakeProvider struct {
	startCalls int
	stopCalls  int
	startErr   error
}

func (p *fakeProvider) Start() error {
	p.startCalls++
	return p.startErr
}

func (p *fakeProvider) Stop() error {
	p.stopCalls++
	return nil
}

func TestCollectorAccumulatesFinals(t *testing.T) {
	c := NewCollector(nil)
	c.Start()

	c.Push("hello", true)
	c.Push("wor", false)
	c.Push("world again", true)

	if got := c.Text(); got != "hello world again" {
		t.Errorf("text = %q, want %q", got, "hello world again")
	}
	if got := len(c.Finals()); got != 2 {
		t.Errorf("finals = %d, want 2", got)
	}
}

func TestCollectorInterimIsDisplayOnly(t *testing.T) {
	c := NewCollector(nil)
	c.Start()

	c.Push("partial tex", false)
	if c.Interim() != "partial tex" {
		t.Errorf("interim = %q", c.Interim())
	}
	if c.Text() != "" {
		t.Errorf("text = %q, want empty", c.Text())
	}

	// A final segment clears the interim display.
	c.Push("partial text", true)
	if c.Interim() != "" {
		t.Errorf("interim after final = %q, want empty", c.Interim())
	}
}

func TestCollectorStartWhileActiveIsNoop(t *testing.T) {
	p := &fakeProvider{}
	c := NewCollector(p)

	c.Start()
	c.Push("kept", true)
	c.Start()

	if p.startCalls != 1 {
		t.Errorf("provider starts = %d, want 1", p.startCalls)
	}
	if got := c.Text(); got != "kept" {
		t.Errorf("text = %q, want %q (second Start must not reset)", got, "kept")
	}
}

func TestCollectorStopIdempotent(t *testing.T) {
	p := &fakeProvider{}
	c := NewCollector(p)

	c.Start()
	c.Stop()
	c.Stop()

	if p.stopCalls != 1 {
		t.Errorf("provider stops = %d, want 1", p.stopCalls)
	}
}

func TestCollectorDropsSegmentsAfterStop(t *testing.T) {
	c := NewCollector(nil)
	c.Start()
	c.Push("before", true)
	c.Stop()
	c.Push("after", true)

	if got := c.Text(); got != "before" {
		t.Errorf("text = %q, want %q", got, "before")
	}
}

func TestCollectorProviderStartFailureKeepsSessionAlive(t *testing.T) {
	p := &fakeProvider{startErr: errors.New("no recognizer")}
	c := NewCollector(p)

	c.Start()
	if !c.Active() {
		t.Error("collector should stay active when provider start fails")
	}
	if c.Text() != "" {
		t.Errorf("text = %q, want empty", c.Text())
	}

	// Stop must not call the dead provider again.
	c.Stop()
	if p.stopCalls != 0 {
		t.Errorf("provider stops = %d, want 0", p.stopCalls)
	}
}

func TestCollectorFailKeepsAccumulatedText(t *testing.T) {
	c := NewCollector(nil)
	c.Start()
	c.Push("kept so far", true)
	c.Fail(errors.New("provider crashed"))

	if got := c.Text(); got != "kept so far" {
		t.Errorf("text = %q, want %q", got, "kept so far")
	}
	if c.Interim() != "" {
		t.Errorf("interim = %q, want empty after failure", c.Interim())
	}
}

func TestCollectorRestartResetsAccumulation(t *testing.T) {
	c := NewCollector(nil)
	c.Start()
	c.Push("first session", true)
	c.Stop()

	c.Start()
	if c.Text() != "" {
		t.Errorf("text = %q, want empty after restart", c.Text())
	}
}
