package server_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/offstage/linecoach/internal/config"
	"github.com/offstage/linecoach/internal/observe"
	"github.com/offstage/linecoach/internal/server"
	"github.com/offstage/linecoach/internal/session"
)

type clientMessage struct {
	Type  string `json:"type"`
	Text  string `json:"text,omitempty"`
	Final bool   `json:"final,omitempty"`
}

type serverMessage struct {
	Type      string            `json:"type"`
	SessionID string            `json:"session_id,omitempty"`
	Progress  *session.Progress `json:"progress,omitempty"`
	Verdict   *session.Verdict  `json:"verdict,omitempty"`
	Error     string            `json:"error,omitempty"`
}

// newTestServer builds a Server with isolated metrics and starts it on an
// httptest listener.
func newTestServer(t *testing.T, matching config.MatchingConfig, names []string) (*httptest.Server, *session.Manager) {
	t.Helper()

	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })

	m, err := observe.NewMetrics(mp)
	if err != nil {
		t.Fatalf("NewMetrics: %v", err)
	}

	mgr := session.NewManager(session.ManagerConfig{
		Matching:   matching,
		KnownNames: names,
		Metrics:    m,
	})
	srv := httptest.NewServer(server.New(config.ServerConfig{}, mgr, m).Handler())
	t.Cleanup(srv.Close)
	return srv, mgr
}

// wsURL converts an httptest server HTTP URL to a WebSocket URL.
func wsURL(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http") + "/practice"
}

// dial opens a practice connection and consumes the hello message.
func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	conn, _, err := websocket.Dial(ctx, wsURL(srv), nil)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	t.Cleanup(func() { _ = conn.CloseNow() })

	hello := readMessage(t, conn)
	if hello.Type != "hello" {
		t.Fatalf("first message type = %q, want hello", hello.Type)
	}
	if hello.SessionID == "" {
		t.Fatal("hello message has empty session_id")
	}
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) serverMessage {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, data, err := conn.Read(ctx)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	var msg serverMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		t.Fatalf("Unmarshal %q: %v", data, err)
	}
	return msg
}

func sendMessage(t *testing.T, conn *websocket.Conn, msg clientMessage) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	data, err := json.Marshal(msg)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if err := conn.Write(ctx, websocket.MessageText, data); err != nil {
		t.Fatalf("Write: %v", err)
	}
}

func TestHealthEndpoints(t *testing.T) {
	t.Parallel()
	srv, _ := newTestServer(t, config.MatchingConfig{}, nil)

	for _, path := range []string{"/healthz", "/readyz", "/metrics"} {
		resp, err := http.Get(srv.URL + path)
		if err != nil {
			t.Fatalf("GET %s: %v", path, err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Errorf("GET %s: status = %d, want 200", path, resp.StatusCode)
		}
	}
}

func TestPractice_FullExchange(t *testing.T) {
	t.Parallel()
	srv, _ := newTestServer(t, config.MatchingConfig{}, nil)
	conn := dial(t, srv)

	sendMessage(t, conn, clientMessage{Type: "line", Text: "We leave the castle at dawn."})
	msg := readMessage(t, conn)
	if msg.Type != "progress" || msg.Progress == nil {
		t.Fatalf("line reply = %+v, want progress", msg)
	}
	if msg.Progress.Total != 6 {
		t.Errorf("total = %d, want 6", msg.Progress.Total)
	}

	sendMessage(t, conn, clientMessage{Type: "transcript", Text: "we leave the"})
	msg = readMessage(t, conn)
	if msg.Type != "progress" || msg.Progress == nil {
		t.Fatalf("partial reply = %+v, want progress", msg)
	}
	if msg.Progress.Matched != 3 {
		t.Errorf("matched = %d, want 3", msg.Progress.Matched)
	}

	sendMessage(t, conn, clientMessage{Type: "transcript", Text: "we leave the castle at dawn", Final: true})
	msg = readMessage(t, conn)
	if msg.Type != "verdict" || msg.Verdict == nil {
		t.Fatalf("final reply = %+v, want verdict", msg)
	}
	if !msg.Verdict.Pass {
		t.Errorf("verdict = %+v, want pass", msg.Verdict)
	}
	if msg.Verdict.Accuracy != 100 {
		t.Errorf("accuracy = %d, want 100", msg.Verdict.Accuracy)
	}
}

func TestPractice_ResetClearsFrozenProgress(t *testing.T) {
	t.Parallel()
	srv, _ := newTestServer(t, config.MatchingConfig{}, nil)
	conn := dial(t, srv)

	sendMessage(t, conn, clientMessage{Type: "line", Text: "we leave the castle at dawn"})
	readMessage(t, conn)

	sendMessage(t, conn, clientMessage{Type: "transcript", Text: "we leave the fortress"})
	msg := readMessage(t, conn)
	if msg.Progress == nil || !msg.Progress.Frozen {
		t.Fatalf("partial reply = %+v, want frozen progress", msg)
	}

	sendMessage(t, conn, clientMessage{Type: "reset"})
	msg = readMessage(t, conn)
	if msg.Type != "progress" || msg.Progress == nil {
		t.Fatalf("reset reply = %+v, want progress", msg)
	}
	if msg.Progress.Frozen || msg.Progress.Matched != 0 {
		t.Errorf("progress after reset = %+v, want unfrozen zero", msg.Progress)
	}
}

func TestPractice_TranscriptBeforeLine(t *testing.T) {
	t.Parallel()
	srv, _ := newTestServer(t, config.MatchingConfig{}, nil)
	conn := dial(t, srv)

	sendMessage(t, conn, clientMessage{Type: "transcript", Text: "hello"})
	msg := readMessage(t, conn)
	if msg.Type != "error" {
		t.Fatalf("reply = %+v, want error", msg)
	}
	if !strings.Contains(msg.Error, "no active line") {
		t.Errorf("error = %q, want mention of no active line", msg.Error)
	}
}

func TestPractice_UnknownMessageType(t *testing.T) {
	t.Parallel()
	srv, _ := newTestServer(t, config.MatchingConfig{}, nil)
	conn := dial(t, srv)

	sendMessage(t, conn, clientMessage{Type: "dance"})
	msg := readMessage(t, conn)
	if msg.Type != "error" {
		t.Fatalf("reply = %+v, want error", msg)
	}
}

func TestPractice_SessionClosedOnDisconnect(t *testing.T) {
	t.Parallel()
	srv, mgr := newTestServer(t, config.MatchingConfig{}, nil)
	conn := dial(t, srv)

	if mgr.Len() != 1 {
		t.Fatalf("Len() = %d, want 1 while connected", mgr.Len())
	}

	conn.Close(websocket.StatusNormalClosure, "done")

	deadline := time.Now().Add(2 * time.Second)
	for mgr.Len() != 0 {
		if time.Now().After(deadline) {
			t.Fatalf("Len() = %d, want 0 after disconnect", mgr.Len())
		}
		time.Sleep(10 * time.Millisecond)
	}
}
