package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/shared-garden/internal/garden"
	"github.com/vovakirdan/shared-garden/internal/multiplayer"
)

const (
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
	maxWSRead  = 4 * 1024
)

// wsReply answers a command sent over the socket.
type wsReply struct {
	Type   string         `json:"type"`
	Result *garden.Result `json:"result,omitempty"`
	Error  string         `json:"error,omitempty"`
}

// handleWS streams snapshot frames to the client. Frames are text when the
// host encodes plain JSON and binary when they are zstd compressed. Clients
// may also send commands; each gets a "result" or "error" reply.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Debug("upgrade failed", "err", err)
		return
	}
	defer conn.Close()

	session := multiplayer.NewChannelSession(multiplayer.SessionID("ws-"+uuid.NewString()), s.bufferSize)
	defer session.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	if err := s.host.Subscribe(ctx, session); err != nil {
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseTryAgainLater, "match is closed"),
			time.Now().Add(time.Second))
		return
	}
	defer s.host.Unsubscribe(session.ID())
	s.logger.Info("websocket connected", "session", session.ID(), "remote", r.RemoteAddr)

	replies := make(chan []byte, 8)
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		// Closing unblocks the reader below.
		defer conn.Close()
		defer cancel()
		s.writeLoop(ctx, conn, session, replies)
	}()

	conn.SetReadLimit(maxWSRead)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			break
		}
		reply := s.wsCommand(ctx, msg)
		select {
		case replies <- reply:
		case <-ctx.Done():
		}
		if ctx.Err() != nil {
			break
		}
	}
	cancel()
	<-writerDone
	s.logger.Info("websocket disconnected", "session", session.ID(), "dropped", session.Dropped())
}

func (s *Server) wsCommand(ctx context.Context, msg []byte) []byte {
	var reply wsReply
	cmd, err := parseCommand(s.schema, msg)
	if err == nil {
		var res garden.Result
		if res, err = s.host.Do(ctx, cmd); err == nil {
			reply = wsReply{Type: "result", Result: &res}
		}
	}
	if err != nil {
		reply = wsReply{Type: "error", Error: err.Error()}
	}
	b, _ := json.Marshal(reply)
	return b
}

func (s *Server) writeLoop(ctx context.Context, conn *websocket.Conn, session *multiplayer.ChannelSession, replies <-chan []byte) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case evt := <-session.Events():
			switch e := evt.(type) {
			case multiplayer.SnapshotEvent:
				kind := websocket.TextMessage
				if e.Compressed {
					kind = websocket.BinaryMessage
				}
				if err := s.write(conn, kind, e.Data); err != nil {
					return
				}
			case multiplayer.MatchEndedEvent:
				if e.Reason != multiplayer.MatchEndReasonCancelled {
					continue
				}
				_ = conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "match cancelled"),
					time.Now().Add(time.Second))
				return
			}
		case b := <-replies:
			if err := s.write(conn, websocket.TextMessage, b); err != nil {
				return
			}
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(s.writeTimeout)); err != nil {
				return
			}
		}
	}
}

func (s *Server) write(conn *websocket.Conn, kind int, data []byte) error {
	_ = conn.SetWriteDeadline(time.Now().Add(s.writeTimeout))
	return conn.WriteMessage(kind, data)
}
