package usecase

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"campus-notify/internal/connection"
	"campus-notify/internal/event"
	"campus-notify/pkg/log"
)

// socket wraps one live transport connection. Sockets are disposable: a
// reconnect always builds a fresh socket so no handler from a previous life
// can fire into the new one.
type socket struct {
	conn   *websocket.Conn
	logger log.Logger

	pongWait   time.Duration
	pingPeriod time.Duration
	writeWait  time.Duration

	// Handlers, bound exactly once before the pumps start.
	onMessage    func(s *socket, msg *event.Message)
	onDisconnect func(s *socket, err error)

	send chan []byte
	done chan struct{}

	closeOnce      sync.Once
	disconnectOnce sync.Once
}

// dialSocket dials the endpoint with the configured handshake timeout and
// bearer token. It does not start the pumps; the caller binds handlers first.
func dialSocket(ctx context.Context, url, token string, cfg connection.Config, logger log.Logger) (*socket, error) {
	dialer := websocket.Dialer{
		HandshakeTimeout: cfg.HandshakeTimeout,
	}

	header := http.Header{}
	if token != "" {
		header.Set("Authorization", "Bearer "+token)
	}

	conn, resp, err := dialer.DialContext(ctx, url, header)
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	if err != nil {
		return nil, err
	}

	return &socket{
		conn:       conn,
		logger:     logger,
		pongWait:   cfg.PongWait,
		pingPeriod: cfg.PingInterval,
		writeWait:  cfg.WriteWait,
		send:       make(chan []byte, 64),
		done:       make(chan struct{}),
	}, nil
}

// start launches the read and write pumps. Handlers must be bound already.
func (s *socket) start() {
	go s.writePump()
	go s.readPump()
}

// readPump pumps envelopes from the transport to the bound message handler.
// There is at most one reader per socket.
func (s *socket) readPump() {
	defer func() {
		s.close()
	}()

	s.conn.SetReadDeadline(time.Now().Add(s.pongWait))
	s.conn.SetPongHandler(func(string) error {
		s.conn.SetReadDeadline(time.Now().Add(s.pongWait))
		return nil
	})

	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Warnf(context.Background(), "socket read error: %v", err)
			}
			s.fireDisconnect(err)
			return
		}

		msg, err := event.FromJSON(data)
		if err != nil || msg.Validate() != nil {
			s.logger.Warnf(context.Background(), "dropping undecodable frame: %v", err)
			continue
		}

		if s.onMessage != nil {
			s.onMessage(s, msg)
		}
	}
}

// writePump owns all writes to the transport: queued emits and keepalive
// pings. There is at most one writer per socket.
func (s *socket) writePump() {
	ticker := time.NewTicker(s.pingPeriod)
	defer func() {
		ticker.Stop()
		s.conn.Close()
	}()

	for {
		select {
		case data, ok := <-s.send:
			s.conn.SetWriteDeadline(time.Now().Add(s.writeWait))
			if !ok {
				s.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := s.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}

		case <-ticker.C:
			s.conn.SetWriteDeadline(time.Now().Add(s.writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-s.done:
			return
		}
	}
}

// emit queues an envelope for the write pump.
func (s *socket) emit(msg *event.Message) error {
	data, err := msg.ToJSON()
	if err != nil {
		return err
	}

	select {
	case <-s.done:
		return connection.ErrNotConnected
	default:
	}

	select {
	case s.send <- data:
		return nil
	case <-s.done:
		return connection.ErrNotConnected
	case <-time.After(s.writeWait):
		return connection.ErrNotConnected
	}
}

// close tears the socket down: stops both pumps and closes the transport.
// Safe to call more than once.
func (s *socket) close() {
	s.closeOnce.Do(func() {
		close(s.done)
		s.conn.Close()
	})
}

// fireDisconnect delivers the disconnect event exactly once.
func (s *socket) fireDisconnect(err error) {
	s.disconnectOnce.Do(func() {
		if s.onDisconnect != nil {
			s.onDisconnect(s, err)
		}
	})
}
