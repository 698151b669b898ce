package server

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/calcpad/calcpad/internal/calculator"
	"github.com/calcpad/calcpad/internal/logging"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 8192
)

// Session is one websocket connection and the calculator it owns.
type Session struct {
	conn       *websocket.Conn
	remoteAddr string
	machine    *calculator.Machine
	closeOnce  sync.Once
	done       chan struct{}
}

func newSession(conn *websocket.Conn, remoteAddr string, policy calculator.RepeatPolicy) *Session {
	return &Session{
		conn:       conn,
		remoteAddr: remoteAddr,
		machine: calculator.NewMachine(
			calculator.WithRepeatPolicy(policy),
			calculator.WithOwner(remoteAddr),
		),
		done: make(chan struct{}),
	}
}

// Close terminates the connection. Safe to call more than once.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		close(s.done)
		deadline := time.Now().Add(time.Second)
		_ = s.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"), deadline)
		_ = s.conn.Close()
	})
}

// run serves the session until the peer disconnects or Close is called.
func (s *Session) run() error {
	logging.LogConnection(s.remoteAddr, "websocket_upgraded")
	defer func() {
		s.Close()
		logging.LogConnection(s.remoteAddr, "websocket_closed")
	}()

	s.conn.SetReadLimit(maxMessageSize)
	_ = s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	go s.pingLoop()

	if err := s.write(newReply(s.machine.State(), nil)); err != nil {
		return err
	}

	for {
		messageType, data, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return fmt.Errorf("read failed: %w", err)
			}
			return nil
		}
		logging.LogWebSocketMessage(s.remoteAddr, "received", messageType, data)

		if messageType != websocket.TextMessage && messageType != websocket.BinaryMessage {
			continue
		}

		if err := s.write(s.handle(data)); err != nil {
			return err
		}
	}
}

// handle applies one request and builds the reply.
func (s *Session) handle(data []byte) Reply {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		logging.Warn("Malformed keypad request",
			zap.String("remote_addr", s.remoteAddr),
			zap.Error(err),
		)
		return newReply(s.machine.State(), fmt.Errorf("invalid request: %w", err))
	}

	keys, err := req.Parse()
	if err != nil {
		return newReply(s.machine.State(), err)
	}

	if req.Reset {
		s.machine.Reset()
	}
	s.machine.PressAll(keys)
	return newReply(s.machine.State(), nil)
}

func (s *Session) write(reply Reply) error {
	data, err := json.Marshal(reply)
	if err != nil {
		return fmt.Errorf("failed to encode reply: %w", err)
	}
	_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := s.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		return fmt.Errorf("write failed: %w", err)
	}
	logging.LogWebSocketMessage(s.remoteAddr, "sent", websocket.TextMessage, data)
	return nil
}

func (s *Session) pingLoop() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if err := s.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				logging.Debug("Ping failed",
					zap.String("remote_addr", s.remoteAddr),
					zap.Error(err),
				)
				return
			}
		case <-s.done:
			return
		}
	}
}
