package realtime

import "sync"

// Conn is one live client connection. Send must not block: transports queue
// outbound events and drop them if the client cannot keep up.
type Conn interface {
	ID() string
	Send(event string, data any)
}

// RoomBus is what the relay needs from the room layer: subscription
// management plus fan-out. Router implements it for a single process;
// Bridge implements it across instances via redis pub/sub.
type RoomBus interface {
	Join(conn Conn, cohortID string)
	Leave(conn Conn, cohortID string)
	LeaveAll(conn Conn) []string
	Broadcast(cohortID, event string, data any)
	BroadcastExcept(cohortID, exceptConnID, event string, data any)
}

// Router binds connections to cohort rooms and delivers events to local
// subscribers. It performs no authorization: callers decide who may join
// which room. Broadcasting to an empty room is a no-op.
type Router struct {
	mu    sync.RWMutex
	rooms map[string]map[string]Conn
	conns map[string]map[string]struct{} // conn id -> cohort ids joined
}

func NewRouter() *Router {
	return &Router{
		rooms: make(map[string]map[string]Conn),
		conns: make(map[string]map[string]struct{}),
	}
}

func (r *Router) Join(conn Conn, cohortID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	room := r.rooms[cohortID]
	if room == nil {
		room = make(map[string]Conn)
		r.rooms[cohortID] = room
	}
	room[conn.ID()] = conn

	joined := r.conns[conn.ID()]
	if joined == nil {
		joined = make(map[string]struct{})
		r.conns[conn.ID()] = joined
	}
	joined[cohortID] = struct{}{}
}

func (r *Router) Leave(conn Conn, cohortID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.leaveLocked(conn.ID(), cohortID)
}

// LeaveAll unsubscribes the connection from every room it joined and returns
// the cohort ids it was subscribed to.
func (r *Router) LeaveAll(conn Conn) []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	var cohortIDs []string
	for cohortID := range r.conns[conn.ID()] {
		cohortIDs = append(cohortIDs, cohortID)
	}
	for _, cohortID := range cohortIDs {
		r.leaveLocked(conn.ID(), cohortID)
	}
	return cohortIDs
}

func (r *Router) leaveLocked(connID, cohortID string) {
	if room, ok := r.rooms[cohortID]; ok {
		delete(room, connID)
		if len(room) == 0 {
			delete(r.rooms, cohortID)
		}
	}
	if joined, ok := r.conns[connID]; ok {
		delete(joined, cohortID)
		if len(joined) == 0 {
			delete(r.conns, connID)
		}
	}
}

func (r *Router) Broadcast(cohortID, event string, data any) {
	r.BroadcastExcept(cohortID, "", event, data)
}

func (r *Router) BroadcastExcept(cohortID, exceptConnID, event string, data any) {
	r.mu.RLock()
	room := r.rooms[cohortID]
	conns := make([]Conn, 0, len(room))
	for id, conn := range room {
		if id == exceptConnID {
			continue
		}
		conns = append(conns, conn)
	}
	r.mu.RUnlock()

	for _, conn := range conns {
		conn.Send(event, data)
	}
}

// RoomSize returns the number of local subscribers for a cohort room.
func (r *Router) RoomSize(cohortID string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rooms[cohortID])
}

var _ RoomBus = (*Router)(nil)
