package realtime

import (
	"encoding/json"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/ziptechlabs/cohort-server-go/internal/model"
)

// Inbound wire event names, fixed for client compatibility.
const (
	EventJoinCohort  = "join-cohort"
	EventLeaveCohort = "leave-cohort"
	EventTyping      = "typing"
)

// Outbound wire event names.
const (
	EventPresence = "presence"
	EventMessage  = "message"
	EventSession  = "session"
)

type PresencePayload struct {
	CohortID string  `json:"cohortId"`
	Users    []Entry `json:"users"`
}

type TypingPayload struct {
	CohortID string `json:"cohortId"`
	UserID   string `json:"userId"`
	Name     string `json:"name"`
}

type MessagePayload struct {
	Message *model.Message `json:"message"`
}

type SessionPayload struct {
	Active bool `json:"active"`
}

// ConnState is the relay-side state of one connection: unjoined until a
// join-cohort announces a cohort and user, joined afterwards. It is owned by
// the transport goroutine that reads the connection, so no locking is needed.
type ConnState struct {
	conn     Conn
	cohortID string
	userID   string
}

func (s *ConnState) Conn() Conn { return s.conn }

// Relay is the protocol state machine between inbound client events and the
// presence registry plus room broadcasts. It is transport-agnostic; the
// WebSocket layer feeds it decoded frames.
//
// The channel is best effort: malformed events are dropped silently and
// handler problems are logged, never surfaced to the socket. A duplicated or
// lost presence event degrades a member list, nothing durable.
type Relay struct {
	presence *Presence
	bus      RoomBus
	handlers map[string]func(*ConnState, json.RawMessage)

	// mu guards cohortMu; each per-cohort mutex keeps a presence mutation
	// and the broadcast of its snapshot as one ordered unit, so the room
	// never sees snapshots out of mutation order.
	mu       sync.Mutex
	cohortMu map[string]*sync.Mutex
}

func NewRelay(presence *Presence, bus RoomBus) *Relay {
	r := &Relay{
		presence: presence,
		bus:      bus,
		cohortMu: make(map[string]*sync.Mutex),
	}
	r.handlers = map[string]func(*ConnState, json.RawMessage){
		EventJoinCohort:  r.handleJoinCohort,
		EventLeaveCohort: r.handleLeaveCohort,
		EventTyping:      r.handleTyping,
	}
	return r
}

func (r *Relay) cohortLock(cohortID string) *sync.Mutex {
	r.mu.Lock()
	defer r.mu.Unlock()
	mu := r.cohortMu[cohortID]
	if mu == nil {
		mu = &sync.Mutex{}
		r.cohortMu[cohortID] = mu
	}
	return mu
}

// NewConnState registers a fresh, unjoined state for a connection.
func (r *Relay) NewConnState(conn Conn) *ConnState {
	return &ConnState{conn: conn}
}

// Dispatch routes one inbound event to its handler. Unknown events are
// dropped.
func (r *Relay) Dispatch(state *ConnState, event string, data json.RawMessage) {
	handler, ok := r.handlers[event]
	if !ok {
		log.Debug().Str("event", event).Msg("dropping unknown realtime event")
		return
	}
	handler(state, data)
}

// Disconnect performs the implicit leave for a connection that went away:
// same registry end-state as an explicit leave-cohort with the connection's
// stored cohort and user.
func (r *Relay) Disconnect(state *ConnState) {
	r.bus.LeaveAll(state.conn)

	if state.cohortID == "" || state.userID == "" {
		return
	}

	mu := r.cohortLock(state.cohortID)
	mu.Lock()
	users := r.presence.Leave(state.cohortID, state.userID)
	r.bus.Broadcast(state.cohortID, EventPresence, PresencePayload{
		CohortID: state.cohortID,
		Users:    users,
	})
	mu.Unlock()

	log.Debug().
		Str("cohortId", state.cohortID).
		Str("userId", state.userID).
		Msg("presence left on disconnect")

	state.cohortID = ""
	state.userID = ""
}

// roomPayload accepts both wire forms of join/leave payloads: a JSON object
// with cohortId/userId/name fields, or a bare cohort-id string.
type roomPayload struct {
	CohortID string `json:"cohortId"`
	UserID   string `json:"userId"`
	Name     string `json:"name"`
}

func parseRoomPayload(data json.RawMessage) roomPayload {
	var bare string
	if err := json.Unmarshal(data, &bare); err == nil {
		return roomPayload{CohortID: bare}
	}
	var p roomPayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Debug().Err(err).Msg("dropping malformed realtime payload")
		return roomPayload{}
	}
	return p
}

func (r *Relay) handleJoinCohort(state *ConnState, data json.RawMessage) {
	p := parseRoomPayload(data)
	if p.CohortID == "" {
		return
	}

	r.bus.Join(state.conn, p.CohortID)

	// A join without identity still subscribes the socket to the room; it
	// just contributes no presence entry. Client-declared identity is
	// trusted here, matching the always-on nature of the channel.
	if p.UserID == "" || p.Name == "" {
		return
	}

	mu := r.cohortLock(p.CohortID)
	mu.Lock()
	users := r.presence.Join(p.CohortID, p.UserID, p.Name)
	state.cohortID = p.CohortID
	state.userID = p.UserID

	r.bus.Broadcast(p.CohortID, EventPresence, PresencePayload{
		CohortID: p.CohortID,
		Users:    users,
	})
	mu.Unlock()

	log.Debug().
		Str("cohortId", p.CohortID).
		Str("userId", p.UserID).
		Msg("presence joined")
}

func (r *Relay) handleLeaveCohort(state *ConnState, data json.RawMessage) {
	p := parseRoomPayload(data)
	if p.CohortID == "" {
		return
	}

	r.bus.Leave(state.conn, p.CohortID)

	userID := p.UserID
	if userID == "" {
		userID = state.userID
	}
	if userID == "" {
		return
	}

	mu := r.cohortLock(p.CohortID)
	mu.Lock()
	users := r.presence.Leave(p.CohortID, userID)
	r.bus.Broadcast(p.CohortID, EventPresence, PresencePayload{
		CohortID: p.CohortID,
		Users:    users,
	})
	mu.Unlock()

	if state.cohortID == p.CohortID {
		state.cohortID = ""
		state.userID = ""
	}
}

func (r *Relay) handleTyping(state *ConnState, data json.RawMessage) {
	var p TypingPayload
	if err := json.Unmarshal(data, &p); err != nil || p.CohortID == "" {
		return
	}

	// Typing indicators exclude the sender; expiry is the receiving
	// client's concern.
	r.bus.BroadcastExcept(p.CohortID, state.conn.ID(), EventTyping, p)
}

// NotifyMessage relays a freshly persisted chat message to the cohort room.
// The relay never creates or mutates messages; callers invoke this only
// after the store confirmed the write.
func (r *Relay) NotifyMessage(cohortID string, msg *model.Message) {
	r.bus.Broadcast(cohortID, EventMessage, MessagePayload{Message: msg})
}

// NotifySession announces a check-in session state change to the cohort room.
func (r *Relay) NotifySession(cohortID string, active bool) {
	r.bus.Broadcast(cohortID, EventSession, SessionPayload{Active: active})
}
