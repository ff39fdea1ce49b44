package app

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/perthho/dailyReco/internal/analytics"
	"github.com/perthho/dailyReco/internal/blob"
	"github.com/perthho/dailyReco/internal/capture"
	"github.com/perthho/dailyReco/internal/config"
	"github.com/perthho/dailyReco/internal/journal"
	"github.com/perthho/dailyReco/internal/session"
	"github.com/perthho/dailyReco/internal/transcript"
	"github.com/perthho/dailyReco/internal/ui"

	tea "github.com/charmbracelet/bubbletea"
)

// Screen identifies the active view.
type Screen int

const (
	ScreenHome Screen = iota
	ScreenRecord
	ScreenEntries
	ScreenStats
)

// durations are the selectable recording lengths, in seconds.
var durations = []int{60, 180, 300}

func durationLabel(seconds int) string {
	mins := seconds / 60
	if mins == 1 {
		return "1 Minute"
	}
	return fmt.Sprintf("%d Minutes", mins)
}

// inputMode tracks which inline text field is being edited.
type inputMode int

const (
	inputNone inputMode = iota
	inputNotes
	inputBookmark
)

// lazyRecognizer defers binding the speech recognizer until the capture
// stream handle is known, which only happens after a successful acquire.
type lazyRecognizer struct {
	rec *capture.Recognizer
}

func (l *lazyRecognizer) Start() error {
	if l.rec == nil {
		return fmt.Errorf("no capture stream acquired")
	}
	return l.rec.Start()
}

func (l *lazyRecognizer) Stop() error {
	if l.rec == nil {
		return nil
	}
	return l.rec.Stop()
}

// Model is the root bubbletea model for the dailyreco TUI.
type Model struct {
	cfg   *config.Config
	theme ui.Theme

	// Connection state
	client     *capture.Client // command connection
	evClient   *capture.Client // event subscription connection
	connected  bool
	connError  string
	socketPath string

	// Capture session
	sess       *session.Session
	recognizer *lazyRecognizer

	// Journal
	store *journal.Store
	media session.MediaStore

	// Record screen
	date        string
	durationIdx int
	statusText  string

	// Entries screen
	selected      int
	confirmDelete bool
	input         inputMode
	inputBuf      string

	// UI state
	screen Screen
	width  int
	height int

	// Errors
	errorMessage   string
	errorTransient bool

	// Stats
	summary analytics.Summary

	// Reconnect
	reconnecting     bool
	reconnectAttempt int
}

// New creates a Model wired to the journal store and media blob store.
func New(cfg *config.Config, store *journal.Store, media session.MediaStore) Model {
	rec := &lazyRecognizer{}
	sess := session.New(session.Config{
		Collector:        transcript.NewCollector(rec),
		Sink:             store,
		Media:            media,
		MediaKey:         blob.MediaKey,
		ExtraFillerWords: cfg.ExtraFillerWords,
	})

	durationIdx := 1 // 3 minutes
	for i, d := range durations {
		if d == cfg.DefaultDurationSeconds {
			durationIdx = i
		}
	}

	theme := ui.Day()
	if cfg.NightMode {
		theme = ui.Night()
	}

	return Model{
		cfg:         cfg,
		theme:       theme,
		socketPath:  cfg.ResolveSocketPath(capture.SocketPath()),
		sess:        sess,
		recognizer:  rec,
		store:       store,
		media:       media,
		date:        time.Now().Format(journal.DateLayout),
		durationIdx: durationIdx,
		statusText:  "Connecting to capture daemon...",
		summary:     analytics.Summarize(store.List(), time.Now()),
	}
}

// Init returns the initial command — connect to the daemon.
func (m Model) Init() tea.Cmd {
	return connectCmd(m.socketPath)
}

// connectCmd attempts to connect to the daemon with two connections:
// one for commands, one for event subscription.
func connectCmd(socketPath string) tea.Cmd {
	return func() tea.Msg {
		client, err := capture.Connect(socketPath)
		if err != nil {
			return ConnectErrorMsg{Err: err}
		}
		evClient, err := capture.Connect(socketPath)
		if err != nil {
			client.Close()
			return ConnectErrorMsg{Err: err}
		}
		return ConnectedMsg{Client: client, EvClient: evClient}
	}
}

// subscribeCmd subscribes on the event client and starts reading events.
func subscribeCmd(evClient *capture.Client) tea.Cmd {
	return func() tea.Msg {
		err := evClient.Subscribe("transcript", "media", "device_lost", "status", "error")
		if err != nil {
			return EventErrorMsg{Err: err}
		}
		return readEventCmd(evClient)()
	}
}

// readEventCmd reads the next event from the event client.
func readEventCmd(evClient *capture.Client) tea.Cmd {
	return func() tea.Msg {
		ev, err := evClient.ReadEvent()
		if err != nil {
			return EventErrorMsg{Err: err}
		}
		return CaptureEventMsg{Event: ev}
	}
}

// acquireCmd requests camera and microphone access.
func acquireCmd(client *capture.Client) tea.Cmd {
	return func() tea.Msg {
		handle, err := client.Acquire()
		return AcquireResultMsg{Handle: handle, Err: err}
	}
}

// recordCmd starts media capture on the acquired stream.
func recordCmd(client *capture.Client, handle string) tea.Cmd {
	return func() tea.Msg {
		return RecordResultMsg{Err: client.Record(handle)}
	}
}

// stopRecordCmd ends media capture. The assembled recording arrives later
// as a media event.
func stopRecordCmd(client *capture.Client, handle string) tea.Cmd {
	return func() tea.Msg {
		return StopResultMsg{Err: client.StopRecord(handle)}
	}
}

// releaseCmd gives the device back, fire and forget.
func releaseCmd(client *capture.Client, handle string) tea.Cmd {
	return func() tea.Msg {
		if err := client.Release(handle); err != nil {
			slog.Warn("releasing capture stream", "error", err)
		}
		return releasedMsg{}
	}
}

// countdownTickCmd fires the next one-second countdown tick.
func countdownTickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return CountdownTickMsg{}
	})
}

// readMediaCmd reads the assembled recording from the daemon's output path.
// The file is removed after reading; the blob store owns the bytes from here.
func readMediaCmd(path string) tea.Cmd {
	return func() tea.Msg {
		data, err := os.ReadFile(path)
		if err == nil {
			os.Remove(path)
		}
		return MediaReadMsg{Data: data, Err: err}
	}
}

// savedRedirectCmd moves to the journal shortly after a successful save.
func savedRedirectCmd() tea.Cmd {
	return tea.Tick(1500*time.Millisecond, func(time.Time) tea.Msg {
		return SavedRedirectMsg{}
	})
}

// clearTransientErrorCmd fires after a delay to clear transient errors.
func clearTransientErrorCmd() tea.Cmd {
	return tea.Tick(5*time.Second, func(time.Time) tea.Msg {
		return ClearTransientErrorMsg{}
	})
}

// reconnectCmd schedules a reconnection attempt with exponential backoff.
func reconnectCmd(attempt int) tea.Cmd {
	delay := time.Duration(1<<min(attempt, 4)) * time.Second // 1s, 2s, 4s, 8s, 16s cap
	if delay > 30*time.Second {
		delay = 30 * time.Second
	}
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return ReconnectTickMsg{}
	})
}

// Update processes messages and returns the updated model and any commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case ConnectedMsg:
		m.client = msg.Client
		m.evClient = msg.EvClient
		m.connected = true
		m.connError = ""
		m.reconnecting = false
		m.reconnectAttempt = 0
		m.statusText = "Connected"
		cmds := []tea.Cmd{subscribeCmd(m.evClient)}
		// If the user is already sitting on the record screen, resume the
		// acquisition they were waiting for.
		if m.screen == ScreenRecord && m.sess.Acquire() == nil &&
			m.sess.State() == session.StateAcquiring {
			m.statusText = "Requesting camera..."
			cmds = append(cmds, acquireCmd(m.client))
		}
		return m, tea.Batch(cmds...)

	case ConnectErrorMsg:
		m.connected = false
		m.connError = msg.Err.Error()
		m.reconnecting = true
		m.statusText = "Capture daemon not running. Reconnecting..."
		return m, reconnectCmd(m.reconnectAttempt)

	case AcquireResultMsg:
		if msg.Err != nil {
			m.sess.Apply(session.DeviceFailed{Reason: msg.Err.Error()})
			m.statusText = "Camera access denied"
			return m, nil
		}
		m.recognizer.rec = capture.NewRecognizer(m.client, msg.Handle)
		m.sess.Apply(session.DeviceReady{Handle: msg.Handle})
		m.statusText = "Camera ready"
		return m, nil

	case RecordResultMsg:
		if msg.Err != nil {
			// The daemon rejected the capture; finalize without media so
			// the session returns to idle instead of counting down forever.
			m.errorMessage = msg.Err.Error()
			m.errorTransient = true
			m.sess.Stop()
			m.sess.Apply(session.MediaAssembled{Err: msg.Err})
			m.statusText = "Camera ready"
			return m, tea.Batch(clearTransientErrorCmd(), m.afterFinalize())
		}
		return m, nil

	case StopResultMsg:
		if msg.Err != nil {
			// No media event is coming; finalize with what we have.
			m.sess.Apply(session.MediaAssembled{Err: msg.Err})
			return m, m.afterFinalize()
		}
		return m, nil

	case CountdownTickMsg:
		if m.sess.State() != session.StateRecording {
			return m, nil
		}
		m.sess.Apply(session.TickElapsed{})
		if m.sess.State() == session.StateFinalizing {
			// Countdown reached zero.
			m.statusText = "Processing..."
			return m, stopRecordCmd(m.client, m.sess.Handle())
		}
		return m, countdownTickCmd()

	case MediaReadMsg:
		m.sess.Apply(session.MediaAssembled{Data: msg.Data, Err: msg.Err})
		return m, m.afterFinalize()

	case SavedRedirectMsg:
		if m.screen == ScreenRecord && m.sess.State() == session.StateIdle {
			m.screen = ScreenEntries
			m.selected = 0
			m.statusText = ""
		}
		return m, nil

	case CaptureEventMsg:
		cmd := m.handleEvent(msg.Event)
		// Continue reading events on event client
		return m, tea.Batch(cmd, readEventCmd(m.evClient))

	case EventErrorMsg:
		m.connected = false
		m.connError = msg.Err.Error()
		m.statusText = "Disconnected. Reconnecting..."
		m.reconnecting = true
		if m.client != nil {
			m.client.Close()
			m.client = nil
		}
		if m.evClient != nil {
			m.evClient.Close()
			m.evClient = nil
		}
		var cmd tea.Cmd
		switch m.sess.State() {
		case session.StateRecording:
			// A dead daemon connection mid-recording is a lost device.
			m.sess.Apply(session.DeviceLost{})
			cmd = m.afterFinalize()
		case session.StateFinalizing:
			// The media event is never coming; save what we have so the
			// machine returns to idle instead of waiting forever.
			m.sess.Apply(session.MediaAssembled{Err: msg.Err})
			cmd = m.afterFinalize()
		default:
			m.sess.Release()
		}
		return m, tea.Batch(cmd, reconnectCmd(m.reconnectAttempt))

	case ReconnectTickMsg:
		m.reconnectAttempt++
		return m, connectCmd(m.socketPath)

	case ClearTransientErrorMsg:
		if m.errorTransient {
			m.errorMessage = ""
			m.errorTransient = false
		}
		return m, nil

	case releasedMsg:
		return m, nil
	}

	return m, nil
}

// afterFinalize reacts to the session finishing a save attempt.
func (m *Model) afterFinalize() tea.Cmd {
	if m.sess.State() != session.StateIdle {
		return nil
	}
	m.summary = analytics.Summarize(m.store.List(), time.Now())
	if err := m.sess.SaveErr(); err != nil {
		m.errorMessage = "Save failed: " + err.Error()
		m.statusText = ""
		return nil
	}
	if m.sess.LastSaved() != nil {
		m.statusText = "Recording saved!"
		return savedRedirectCmd()
	}
	return nil
}

// handleEvent processes a capture daemon event and returns any resulting
// command.
func (m *Model) handleEvent(ev capture.Event) tea.Cmd {
	switch ev.Event {
	case "transcript":
		final := ev.Final != nil && *ev.Final
		m.sess.Apply(session.TranscriptSegment{Text: ev.Text, Final: final})

	case "media":
		return readMediaCmd(ev.Path)

	case "device_lost":
		switch m.sess.State() {
		case session.StateRecording:
			m.sess.Apply(session.DeviceLost{})
			return m.afterFinalize()
		case session.StateFinalizing:
			// Lost before assembly finished; no media event will follow.
			m.sess.Apply(session.MediaAssembled{Err: errors.New("capture device lost")})
			return m.afterFinalize()
		case session.StateDeviceReady:
			m.sess.Release()
			m.statusText = "Camera access denied"
		}

	case "status":
		// Daemon heartbeat. Session state is driven by command responses
		// and the events above, not by status broadcasts.

	case "error":
		m.errorMessage = ev.Message
		if ev.Transient != nil && *ev.Transient {
			m.errorTransient = true
			return clearTransientErrorCmd()
		}
	}

	return nil
}

// handleKey processes key presses.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.input != inputNone {
		return m.handleInputKey(msg)
	}

	switch msg.String() {
	case "ctrl+c", "q":
		if m.client != nil {
			m.client.Close()
		}
		if m.evClient != nil {
			m.evClient.Close()
		}
		return m, tea.Quit
	}

	switch m.screen {
	case ScreenHome:
		return m.handleHomeKey(msg)
	case ScreenRecord:
		return m.handleRecordKey(msg)
	case ScreenEntries:
		return m.handleEntriesKey(msg)
	case ScreenStats:
		return m.handleStatsKey(msg)
	}
	return m, nil
}

func (m Model) handleHomeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "r":
		return m.gotoRecord()

	case "e":
		m.screen = ScreenEntries
		m.selected = 0
		m.confirmDelete = false
		return m, nil

	case "s":
		m.summary = analytics.Summarize(m.store.List(), time.Now())
		m.screen = ScreenStats
		return m, nil

	case "n":
		m.cfg.NightMode = !m.cfg.NightMode
		if m.cfg.NightMode {
			m.theme = ui.Night()
		} else {
			m.theme = ui.Day()
		}
		if err := m.cfg.Save(); err != nil {
			slog.Warn("saving config", "error", err)
		}
		return m, nil
	}
	return m, nil
}

// gotoRecord switches to the record screen and starts device acquisition.
func (m Model) gotoRecord() (tea.Model, tea.Cmd) {
	m.screen = ScreenRecord
	m.date = time.Now().Format(journal.DateLayout)
	if !m.connected {
		m.statusText = "Capture daemon not connected"
		return m, nil
	}
	if m.sess.State() == session.StateDeviceReady {
		m.statusText = "Camera ready"
		return m, nil
	}
	if err := m.sess.Acquire(); err != nil {
		m.statusText = err.Error()
		return m, nil
	}
	m.statusText = "Requesting camera..."
	return m, acquireCmd(m.client)
}

func (m Model) handleRecordKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	recording := m.sess.State() == session.StateRecording

	switch msg.String() {
	case " ":
		if !m.connected {
			return m, nil
		}
		switch m.sess.State() {
		case session.StateDeviceReady:
			return m.startRecording()
		case session.StateRecording:
			m.sess.Stop()
			m.statusText = "Processing..."
			return m, stopRecordCmd(m.client, m.sess.Handle())
		case session.StateDeviceFailed:
			if err := m.sess.Acquire(); err == nil {
				m.statusText = "Requesting camera..."
				return m, acquireCmd(m.client)
			}
		}
		return m, nil

	case "d":
		if !recording {
			m.durationIdx = (m.durationIdx + 1) % len(durations)
		}
		return m, nil

	case "left":
		if !recording {
			m.date = shiftDate(m.date, -1)
		}
		return m, nil

	case "right":
		if !recording {
			m.date = shiftDate(m.date, 1)
		}
		return m, nil

	case "esc":
		if recording || m.sess.State() == session.StateFinalizing {
			return m, nil
		}
		handle := m.sess.Handle()
		m.sess.Release()
		m.screen = ScreenHome
		m.statusText = ""
		if handle != "" && m.client != nil {
			return m, releaseCmd(m.client, handle)
		}
		return m, nil
	}
	return m, nil
}

func (m Model) startRecording() (tea.Model, tea.Cmd) {
	secs := durations[m.durationIdx]
	if err := m.sess.Start(secs, m.date, durationLabel(secs)); err != nil {
		m.errorMessage = err.Error()
		m.errorTransient = true
		return m, clearTransientErrorCmd()
	}
	m.statusText = "Recording..."
	return m, tea.Batch(
		recordCmd(m.client, m.sess.Handle()),
		countdownTickCmd(),
	)
}

func (m Model) handleEntriesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	entries := m.store.List()

	if m.confirmDelete {
		if msg.String() == "y" {
			m.deleteSelected(entries)
		}
		m.confirmDelete = false
		return m, nil
	}

	switch msg.String() {
	case "esc":
		m.screen = ScreenHome
		return m, nil

	case "j", "down":
		if m.selected < len(entries)-1 {
			m.selected++
		}
		return m, nil

	case "k", "up":
		if m.selected > 0 {
			m.selected--
		}
		return m, nil

	case "1", "2", "3", "4", "5":
		if m.selected < len(entries) {
			rating := int(msg.String()[0] - '0')
			if err := m.store.Update(entries[m.selected].ID, journal.Patch{Rating: &rating}); err != nil {
				m.errorMessage = err.Error()
				m.errorTransient = true
				return m, clearTransientErrorCmd()
			}
		}
		return m, nil

	case "n":
		if m.selected < len(entries) {
			m.input = inputNotes
			m.inputBuf = entries[m.selected].Notes
		}
		return m, nil

	case "b":
		if m.selected < len(entries) {
			m.input = inputBookmark
			m.inputBuf = ""
			if bm := entries[m.selected].Bookmark; bm != nil {
				m.inputBuf = strconv.FormatFloat(*bm, 'f', -1, 64)
			}
		}
		return m, nil

	case "d":
		if len(entries) > 0 {
			m.confirmDelete = true
		}
		return m, nil
	}
	return m, nil
}

// deleteSelected removes the selected entry and its media blob.
func (m *Model) deleteSelected(entries []journal.Entry) {
	if m.selected >= len(entries) {
		return
	}
	e := entries[m.selected]
	if err := m.store.Delete(e.ID); err != nil {
		m.errorMessage = err.Error()
		return
	}
	if e.Video != "" && m.media != nil {
		if err := m.media.Delete(e.Video); err != nil {
			slog.Warn("deleting media blob", "key", e.Video, "error", err)
		}
	}
	if m.selected >= m.store.Len() && m.selected > 0 {
		m.selected--
	}
	m.summary = analytics.Summarize(m.store.List(), time.Now())
}

func (m Model) handleStatsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.screen = ScreenHome
	case "e":
		m.screen = ScreenEntries
		m.selected = 0
	}
	return m, nil
}

// handleInputKey edits the inline notes or bookmark field.
func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.input = inputNone
		m.inputBuf = ""
		return m, nil

	case "enter":
		return m.commitInput()

	case "backspace":
		if m.inputBuf != "" {
			runes := []rune(m.inputBuf)
			m.inputBuf = string(runes[:len(runes)-1])
		}
		return m, nil

	default:
		s := msg.String()
		if len([]rune(s)) == 1 || s == " " {
			m.inputBuf += s
		}
		return m, nil
	}
}

func (m Model) commitInput() (tea.Model, tea.Cmd) {
	entries := m.store.List()
	mode, buf := m.input, m.inputBuf
	m.input = inputNone
	m.inputBuf = ""

	if m.selected >= len(entries) {
		return m, nil
	}
	id := entries[m.selected].ID

	var patch journal.Patch
	switch mode {
	case inputNotes:
		patch.Notes = &buf
	case inputBookmark:
		secs, err := strconv.ParseFloat(buf, 64)
		if err != nil {
			m.errorMessage = "Invalid bookmark time: " + buf
			m.errorTransient = true
			return m, clearTransientErrorCmd()
		}
		patch.Bookmark = &secs
	}

	if err := m.store.Update(id, patch); err != nil {
		m.errorMessage = err.Error()
		m.errorTransient = true
		return m, clearTransientErrorCmd()
	}
	return m, nil
}

// shiftDate moves a YYYY-MM-DD date by days, never past today.
func shiftDate(date string, days int) string {
	t, err := time.ParseInLocation(journal.DateLayout, date, time.Local)
	if err != nil {
		return time.Now().Format(journal.DateLayout)
	}
	t = t.AddDate(0, 0, days)
	if today := time.Now(); t.After(today) {
		return today.Format(journal.DateLayout)
	}
	return t.Format(journal.DateLayout)
}
