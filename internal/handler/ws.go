package handler

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/ziptechlabs/cohort-server-go/internal/realtime"
)

// Cohort rooms trust the identity the client announces in join-cohort, so
// the upgrade itself carries no auth and any origin may connect.
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

type WSHandler struct {
	relay *realtime.Relay
}

func NewWSHandler(relay *realtime.Relay) *WSHandler {
	return &WSHandler{relay: relay}
}

// GET /ws
func (h *WSHandler) Serve(w http.ResponseWriter, r *http.Request) {
	sock, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Str("remote", r.RemoteAddr).Msg("websocket upgrade failed")
		return
	}

	conn := realtime.NewWSConn(sock, h.relay)
	log.Debug().Str("connId", conn.ID()).Str("remote", r.RemoteAddr).Msg("websocket connected")
	conn.Serve()
}
