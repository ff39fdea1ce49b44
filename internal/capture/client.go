package capture

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
)

// SocketPath returns the default daemon socket path.
func SocketPath() string {
	base, err := os.UserConfigDir()
	if err != nil {
		home, _ := os.UserHomeDir()
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "dailyreco", "capture.sock")
}

// Client communicates with the capture daemon over a Unix socket.
type Client struct {
	conn    net.Conn
	scanner *bufio.Scanner
	mu      sync.Mutex
}

// Connect dials the daemon Unix socket.
func Connect(socketPath string) (*Client, error) {
	conn, err := net.Dial("unix", socketPath)
	if err != nil {
		return nil, fmt.Errorf("connect to capture daemon: %w", err)
	}

	scanner := bufio.NewScanner(conn)
	scanner.Buffer(make([]byte, 1024*1024), 1024*1024) // 1MB buffer

	return &Client{conn: conn, scanner: scanner}, nil
}

// Close shuts down the connection.
func (c *Client) Close() error {
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

// Send sends a command and reads one response line.
func (c *Client) Send(cmd Command) (Response, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, err := json.Marshal(cmd)
	if err != nil {
		return Response{}, fmt.Errorf("marshal command: %w", err)
	}

	data = append(data, '\n')
	if _, err := c.conn.Write(data); err != nil {
		return Response{}, fmt.Errorf("write command: %w", err)
	}

	if !c.scanner.Scan() {
		if err := c.scanner.Err(); err != nil {
			return Response{}, fmt.Errorf("read response: %w", err)
		}
		return Response{}, fmt.Errorf("connection closed")
	}

	var resp Response
	if err := json.Unmarshal(c.scanner.Bytes(), &resp); err != nil {
		return Response{}, fmt.Errorf("unmarshal response: %w", err)
	}

	return resp, nil
}

// ReadEvent reads the next NDJSON event line. Blocks until data arrives.
// After Subscribe, call this in a loop to drain the stream.
func (c *Client) ReadEvent() (Event, error) {
	if !c.scanner.Scan() {
		if err := c.scanner.Err(); err != nil {
			return Event{}, fmt.Errorf("read event: %w", err)
		}
		return Event{}, fmt.Errorf("connection closed")
	}

	var ev Event
	if err := json.Unmarshal(c.scanner.Bytes(), &ev); err != nil {
		return Event{}, fmt.Errorf("unmarshal event: %w", err)
	}

	return ev, nil
}

// Acquire requests video+audio device access. The returned session id is the
// stream handle for the rest of the session.
func (c *Client) Acquire() (string, error) {
	resp, err := c.Send(Command{
		Cmd:       "acquire",
		SessionID: uuid.NewString(),
		Video:     BoolPtr(true),
		Audio:     BoolPtr(true),
	})
	if err != nil {
		return "", err
	}
	if !resp.OK {
		return "", fmt.Errorf("acquire: %s", resp.Error)
	}
	return resp.SessionID, nil
}

// Release gives the device back.
func (c *Client) Release(sessionID string) error {
	resp, err := c.Send(Command{Cmd: "release", SessionID: sessionID})
	if err != nil {
		return err
	}
	if !resp.OK {
		return fmt.Errorf("release: %s", resp.Error)
	}
	return nil
}

// Record begins media capture on the acquired stream.
func (c *Client) Record(sessionID string) error {
	resp, err := c.Send(Command{Cmd: "record", SessionID: sessionID})
	if err != nil {
		return err
	}
	if !resp.OK {
		return fmt.Errorf("record: %s", resp.Error)
	}
	return nil
}

// StopRecord ends media capture. The daemon assembles the recording and
// reports it later with a media event.
func (c *Client) StopRecord(sessionID string) error {
	resp, err := c.Send(Command{Cmd: "stop", SessionID: sessionID})
	if err != nil {
		return err
	}
	if !resp.OK {
		return fmt.Errorf("stop: %s", resp.Error)
	}
	return nil
}

// Subscribe asks the daemon to stream events on this connection.
func (c *Client) Subscribe(events ...string) error {
	resp, err := c.Send(Command{Cmd: "subscribe", Events: events})
	if err != nil {
		return err
	}
	if !resp.OK {
		return fmt.Errorf("subscribe: %s", resp.Error)
	}
	return nil
}

// Recognizer drives the daemon's speech recognition for one session. It
// satisfies the transcript provider contract: Start and Stop only gate the
// stream, segments arrive on the event connection.
type Recognizer struct {
	client    *Client
	sessionID string
}

// NewRecognizer returns a Recognizer bound to a capture session.
func NewRecognizer(client *Client, sessionID string) *Recognizer {
	return &Recognizer{client: client, sessionID: sessionID}
}

// Start begins speech recognition.
func (r *Recognizer) Start() error {
	resp, err := r.client.Send(Command{Cmd: "listen", SessionID: r.sessionID})
	if err != nil {
		return err
	}
	if !resp.OK {
		return fmt.Errorf("listen: %s", resp.Error)
	}
	return nil
}

// Stop ends speech recognition.
func (r *Recognizer) Stop() error {
	resp, err := r.client.Send(Command{Cmd: "unlisten", SessionID: r.sessionID})
	if err != nil {
		return err
	}
	if !resp.OK {
		return fmt.Errorf("unlisten: %s", resp.Error)
	}
	return nil
}
