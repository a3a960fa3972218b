package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/coder/websocket"

	"github.com/offstage/linecoach/internal/session"
)

// clientMessage is the envelope for everything the actor's client sends.
type clientMessage struct {
	// Type is "line", "transcript", or "reset".
	Type string `json:"type"`

	// Text carries the line for "line" messages and the recognizer's full
	// current hypothesis for "transcript" messages.
	Text string `json:"text,omitempty"`

	// Final marks a "transcript" message as a committed utterance that
	// should be scored rather than tracked.
	Final bool `json:"final,omitempty"`
}

// serverMessage is the envelope for everything the server sends back.
type serverMessage struct {
	// Type is "hello", "progress", "verdict", or "error".
	Type string `json:"type"`

	SessionID string            `json:"session_id,omitempty"`
	Progress  *session.Progress `json:"progress,omitempty"`
	Verdict   *session.Verdict  `json:"verdict,omitempty"`
	Error     string            `json:"error,omitempty"`
}

// handlePractice upgrades the connection and runs one rehearsal session for
// its lifetime. Every connection gets its own session; closing the socket
// closes the session.
func (s *Server) handlePractice(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		slog.Warn("practice: websocket accept failed", "err", err)
		return
	}
	defer conn.Close(websocket.StatusInternalError, "session ended unexpectedly")

	ctx := r.Context()
	sess := s.sessions.Open(ctx)
	defer func() {
		if err := s.sessions.Close(context.WithoutCancel(ctx), sess.ID()); err != nil {
			slog.Warn("practice: session close failed", "session_id", sess.ID(), "err", err)
		}
	}()

	if err := writeMessage(ctx, conn, serverMessage{Type: "hello", SessionID: sess.ID()}); err != nil {
		return
	}

	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			status := websocket.CloseStatus(err)
			if status == websocket.StatusNormalClosure || status == websocket.StatusGoingAway || errors.Is(err, context.Canceled) {
				conn.Close(websocket.StatusNormalClosure, "bye")
				return
			}
			slog.Debug("practice: read failed", "session_id", sess.ID(), "err", err)
			return
		}

		var msg clientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			if err := writeMessage(ctx, conn, serverMessage{Type: "error", Error: "malformed message"}); err != nil {
				return
			}
			continue
		}

		reply := s.dispatch(ctx, sess, msg)
		if err := writeMessage(ctx, conn, reply); err != nil {
			return
		}
	}
}

// dispatch routes one client message to the session and shapes the reply.
func (s *Server) dispatch(ctx context.Context, sess *session.Session, msg clientMessage) serverMessage {
	switch msg.Type {
	case "line":
		sess.StartLine(msg.Text)
		p, err := sess.Progress()
		if err != nil {
			return serverMessage{Type: "error", Error: err.Error()}
		}
		return serverMessage{Type: "progress", Progress: &p}

	case "transcript":
		if msg.Final {
			v, err := sess.Final(ctx, msg.Text)
			if err != nil {
				return serverMessage{Type: "error", Error: err.Error()}
			}
			return serverMessage{Type: "verdict", Verdict: &v}
		}
		p, err := sess.Partial(ctx, msg.Text)
		if err != nil {
			return serverMessage{Type: "error", Error: err.Error()}
		}
		return serverMessage{Type: "progress", Progress: &p}

	case "reset":
		if err := sess.Reset(); err != nil {
			return serverMessage{Type: "error", Error: err.Error()}
		}
		p, err := sess.Progress()
		if err != nil {
			return serverMessage{Type: "error", Error: err.Error()}
		}
		return serverMessage{Type: "progress", Progress: &p}

	default:
		return serverMessage{Type: "error", Error: "unknown message type " + msg.Type}
	}
}

// writeMessage marshals and sends one server message.
func writeMessage(ctx context.Context, conn *websocket.Conn, msg serverMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return conn.Write(ctx, websocket.MessageText, data)
}
