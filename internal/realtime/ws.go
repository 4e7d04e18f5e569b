package realtime

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendBufferSize = 64
)

// Frame is the socket wire envelope in both directions:
// {"event": "join-cohort", "data": {...}}.
type Frame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// WSConn adapts a gorilla websocket to the relay's Conn interface with the
// usual read/write pump pair. Send never blocks; events to a slow client are
// dropped once its buffer fills.
type WSConn struct {
	id    string
	sock  *websocket.Conn
	relay *Relay
	state *ConnState

	send      chan Frame
	done      chan struct{}
	closeOnce sync.Once
}

func NewWSConn(sock *websocket.Conn, relay *Relay) *WSConn {
	c := &WSConn{
		id:    uuid.NewString(),
		sock:  sock,
		relay: relay,
		send:  make(chan Frame, sendBufferSize),
		done:  make(chan struct{}),
	}
	c.state = relay.NewConnState(c)
	return c
}

func (c *WSConn) ID() string { return c.id }

func (c *WSConn) Send(event string, data any) {
	payload, err := json.Marshal(data)
	if err != nil {
		log.Error().Err(err).Str("event", event).Msg("failed to marshal outbound frame")
		return
	}

	select {
	case c.send <- Frame{Event: event, Data: payload}:
	case <-c.done:
	default:
		log.Warn().Str("connId", c.id).Str("event", event).Msg("send buffer full, dropping event")
	}
}

// Serve starts the write pump and blocks reading the socket until the client
// goes away, then runs the relay's disconnect cleanup.
func (c *WSConn) Serve() {
	go c.writePump()
	c.readPump()
}

func (c *WSConn) readPump() {
	defer func() {
		c.relay.Disconnect(c.state)
		c.closeOnce.Do(func() { close(c.done) })
		c.sock.Close()
	}()

	c.sock.SetReadLimit(maxMessageSize)
	c.sock.SetReadDeadline(time.Now().Add(pongWait))
	c.sock.SetPongHandler(func(string) error {
		c.sock.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.sock.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Debug().Err(err).Str("connId", c.id).Msg("websocket read error")
			}
			return
		}

		var frame Frame
		if err := json.Unmarshal(message, &frame); err != nil {
			log.Debug().Err(err).Str("connId", c.id).Msg("dropping undecodable frame")
			continue
		}

		c.relay.Dispatch(c.state, frame.Event, frame.Data)
	}
}

func (c *WSConn) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.sock.Close()
	}()

	for {
		select {
		case frame := <-c.send:
			c.sock.SetWriteDeadline(time.Now().Add(writeWait))
			data, err := json.Marshal(frame)
			if err != nil {
				log.Error().Err(err).Str("connId", c.id).Msg("failed to encode frame")
				continue
			}
			if err := c.sock.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}

		case <-c.done:
			c.sock.SetWriteDeadline(time.Now().Add(writeWait))
			c.sock.WriteMessage(websocket.CloseMessage, []byte{})
			return

		case <-ticker.C:
			c.sock.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.sock.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
