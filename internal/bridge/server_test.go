package bridge

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/muurk/pelcoctl/internal/protocol"
)

// fakeLink is an in-memory camera link. Writes are recorded; reads
// block until bytes are fed through fromCam, and report io.EOF once it
// is closed.
type fakeLink struct {
	mu      sync.Mutex
	written [][]byte
	fromCam chan []byte
}

func newFakeLink() *fakeLink {
	return &fakeLink{fromCam: make(chan []byte, 4)}
}

func (l *fakeLink) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	buf := make([]byte, len(p))
	copy(buf, p)
	l.written = append(l.written, buf)
	return len(p), nil
}

func (l *fakeLink) Read(p []byte) (int, error) {
	b, ok := <-l.fromCam
	if !ok {
		return 0, io.EOF
	}
	return copy(p, b), nil
}

func (l *fakeLink) writeCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.written)
}

func (l *fakeLink) lastWrite() []byte {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.written) == 0 {
		return nil
	}
	return l.written[len(l.written)-1]
}

// blockingLink reads like a network connection: with no pending bytes
// a Read blocks until data arrives or the armed deadline passes, and
// never returns on its own.
type blockingLink struct {
	mu       sync.Mutex
	written  [][]byte
	fromCam  chan []byte
	deadline time.Time
}

func newBlockingLink() *blockingLink {
	return &blockingLink{fromCam: make(chan []byte, 4)}
}

func (l *blockingLink) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	buf := make([]byte, len(p))
	copy(buf, p)
	l.written = append(l.written, buf)
	return len(p), nil
}

func (l *blockingLink) SetReadDeadline(t time.Time) error {
	l.mu.Lock()
	l.deadline = t
	l.mu.Unlock()
	return nil
}

func (l *blockingLink) Read(p []byte) (int, error) {
	l.mu.Lock()
	d := l.deadline
	l.mu.Unlock()

	if d.IsZero() {
		b, ok := <-l.fromCam
		if !ok {
			return 0, io.EOF
		}
		return copy(p, b), nil
	}

	timer := time.NewTimer(time.Until(d))
	defer timer.Stop()
	select {
	case b, ok := <-l.fromCam:
		if !ok {
			return 0, io.EOF
		}
		return copy(p, b), nil
	case <-timer.C:
		return 0, os.ErrDeadlineExceeded
	}
}

// newTestBridge spins up the control handler on an httptest server and
// returns a dial URL for it.
func newTestBridge(t *testing.T, link *fakeLink) (*Server, string, func()) {
	t.Helper()

	s := New(&Config{}, link)
	ts := httptest.NewServer(http.HandlerFunc(s.handleControl))
	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/control"

	return s, wsURL, func() {
		close(link.fromCam)
		ts.Close()
	}
}

func dial(t *testing.T, wsURL string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial %s: %v", wsURL, err)
	}
	return conn
}

func waitFor(t *testing.T, cond func() bool, what string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func TestBridgeForwardsValidFrame(t *testing.T) {
	link := newFakeLink()
	_, wsURL, cleanup := newTestBridge(t, link)
	defer cleanup()

	conn := dial(t, wsURL)
	defer conn.Close()

	msg := protocol.NewMessage(0x0A, 0x88, 0x90, 0x00, 0x20)
	if err := conn.WriteMessage(websocket.BinaryMessage, msg.Bytes()); err != nil {
		t.Fatalf("WriteMessage() error = %v", err)
	}

	waitFor(t, func() bool { return link.writeCount() == 1 }, "frame on link")

	got := link.lastWrite()
	want := []byte{0xFF, 0x0A, 0x88, 0x90, 0x00, 0x20, 0x42}
	if len(got) != len(want) {
		t.Fatalf("forwarded %d bytes, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("forwarded byte[%d] = 0x%02X, want 0x%02X", i, got[i], want[i])
		}
	}
}

func TestBridgeRejectsCorruptFrame(t *testing.T) {
	link := newFakeLink()
	_, wsURL, cleanup := newTestBridge(t, link)
	defer cleanup()

	conn := dial(t, wsURL)
	defer conn.Close()

	// Valid frame with the checksum flipped
	bad := []byte{0xFF, 0x0A, 0x88, 0x90, 0x00, 0x20, 0x43}
	if err := conn.WriteMessage(websocket.BinaryMessage, bad); err != nil {
		t.Fatalf("WriteMessage() error = %v", err)
	}

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, _, err := conn.ReadMessage()
	if err == nil {
		t.Fatal("expected the bridge to close the connection")
	}
	var closeErr *websocket.CloseError
	if ce, ok := err.(*websocket.CloseError); ok {
		closeErr = ce
	}
	if closeErr == nil || closeErr.Code != websocket.CloseUnsupportedData {
		t.Errorf("close error = %v, want code %d", err, websocket.CloseUnsupportedData)
	}

	if n := link.writeCount(); n != 0 {
		t.Errorf("corrupt frame reached the link (%d writes)", n)
	}
}

func TestBridgeIgnoresTextMessages(t *testing.T) {
	link := newFakeLink()
	_, wsURL, cleanup := newTestBridge(t, link)
	defer cleanup()

	conn := dial(t, wsURL)
	defer conn.Close()

	if err := conn.WriteMessage(websocket.TextMessage, []byte("hello")); err != nil {
		t.Fatalf("WriteMessage() error = %v", err)
	}

	// A valid frame afterwards must still go through.
	msg := protocol.NewMessage(0x01, 0x00, protocol.Command2Right, 0x20, 0x00)
	if err := conn.WriteMessage(websocket.BinaryMessage, msg.Bytes()); err != nil {
		t.Fatalf("WriteMessage() error = %v", err)
	}

	waitFor(t, func() bool { return link.writeCount() == 1 }, "frame on link")
}

func TestBridgeSingleController(t *testing.T) {
	link := newFakeLink()
	s, wsURL, cleanup := newTestBridge(t, link)
	defer cleanup()

	first := dial(t, wsURL)
	defer first.Close()

	waitFor(t, func() bool { return s.Controller() != "" }, "first controller")

	second := dial(t, wsURL)
	defer second.Close()

	_ = second.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, _, err := second.ReadMessage()
	ce, ok := err.(*websocket.CloseError)
	if !ok || ce.Code != websocket.ClosePolicyViolation {
		t.Errorf("second controller got %v, want policy violation close", err)
	}
}

func TestClientRoundTrip(t *testing.T) {
	link := newFakeLink()
	_, wsURL, cleanup := newTestBridge(t, link)
	defer cleanup()

	client, err := Dial(wsURL)
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	defer client.Close()

	// The client satisfies io.ReadWriter, so the protocol port wraps
	// it exactly like a serial device.
	port := protocol.NewPort(client)

	msg := protocol.NewMessage(0x0A, 0x88, 0x90, 0x00, 0x20)
	if err := port.SendMessage(msg); err != nil {
		t.Fatalf("SendMessage() error = %v", err)
	}
	waitFor(t, func() bool { return link.writeCount() == 1 }, "frame on link")

	// Camera answers with a general response; the client reassembles
	// it across message boundaries.
	link.fromCam <- []byte{0xFF, 0x0A}
	link.fromCam <- []byte{0x00, 0x2A}

	resp, err := port.ReceiveResponse(protocol.ResponseGeneral)
	if err != nil {
		t.Fatalf("ReceiveResponse() error = %v", err)
	}
	if resp.Kind() != protocol.ResponseGeneral {
		t.Errorf("response kind = %v, want general", resp.Kind())
	}
}

// A silent camera behind a network-style link must not wedge the
// bridge: the pump arms read deadlines so a blocked Read wakes up and
// the controller slot frees after the client disconnects.
func TestBridgeReleasesControllerOnBlockingLink(t *testing.T) {
	link := newBlockingLink()
	s := New(&Config{}, link)
	ts := httptest.NewServer(http.HandlerFunc(s.handleControl))
	defer ts.Close()
	defer close(link.fromCam)
	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/control"

	conn := dial(t, wsURL)
	waitFor(t, func() bool { return s.Controller() != "" }, "controller acquired")

	conn.Close()
	waitFor(t, func() bool { return s.Controller() == "" }, "controller released")
}

func TestBridgePumpsCameraBytes(t *testing.T) {
	link := newFakeLink()
	_, wsURL, cleanup := newTestBridge(t, link)
	defer cleanup()

	conn := dial(t, wsURL)
	defer conn.Close()

	// A general response from the unit: FF addr 00 checksum
	link.fromCam <- []byte{0xFF, 0x0A, 0x00, 0x2A}

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	msgType, payload, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("ReadMessage() error = %v", err)
	}
	if msgType != websocket.BinaryMessage {
		t.Errorf("message type = %d, want binary", msgType)
	}
	want := []byte{0xFF, 0x0A, 0x00, 0x2A}
	if len(payload) != len(want) {
		t.Fatalf("payload length = %d, want %d", len(payload), len(want))
	}
	for i := range want {
		if payload[i] != want[i] {
			t.Errorf("payload[%d] = 0x%02X, want 0x%02X", i, payload[i], want[i])
		}
	}

	resp, err := protocol.ParseResponse(payload)
	if err != nil {
		t.Fatalf("ParseResponse() error = %v", err)
	}
	if resp.Kind() != protocol.ResponseGeneral {
		t.Errorf("response kind = %v, want general", resp.Kind())
	}
}
