package realtime

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/rs/zerolog/log"

	redisclient "github.com/ziptechlabs/cohort-server-go/internal/redis"
)

// envelope is what travels over redis pub/sub between server instances.
// Origin carries the connection id to exclude from delivery (typing events);
// connection ids are unique across instances.
type envelope struct {
	Event  string          `json:"event"`
	Origin string          `json:"origin,omitempty"`
	Data   json.RawMessage `json:"data"`
}

// Bridge is a RoomBus that fans events out across server instances through
// redis pub/sub. Local subscriptions live in the wrapped Router; every
// broadcast goes out via redis and comes back through the per-room
// subscription, so all instances deliver in the same channel order.
type Bridge struct {
	router *Router
	redis  *redisclient.Client

	mu         sync.Mutex
	subscribed map[string]bool

	ctx    context.Context
	cancel context.CancelFunc
}

func NewBridge(router *Router, redisClient *redisclient.Client) *Bridge {
	ctx, cancel := context.WithCancel(context.Background())
	return &Bridge{
		router:     router,
		redis:      redisClient,
		subscribed: make(map[string]bool),
		ctx:        ctx,
		cancel:     cancel,
	}
}

func (b *Bridge) Join(conn Conn, cohortID string) {
	b.router.Join(conn, cohortID)

	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.subscribed[cohortID] {
		b.subscribed[cohortID] = true
		go b.subscribeToRedis(cohortID)
	}
}

func (b *Bridge) Leave(conn Conn, cohortID string) {
	// The redis subscription outlives an emptied room: cohorts are few and
	// long-lived, and resubscribing on every rejoin would race message
	// delivery.
	b.router.Leave(conn, cohortID)
}

func (b *Bridge) LeaveAll(conn Conn) []string {
	return b.router.LeaveAll(conn)
}

func (b *Bridge) Broadcast(cohortID, event string, data any) {
	b.publish(cohortID, "", event, data)
}

func (b *Bridge) BroadcastExcept(cohortID, exceptConnID, event string, data any) {
	b.publish(cohortID, exceptConnID, event, data)
}

func (b *Bridge) publish(cohortID, origin, event string, data any) {
	payload, err := json.Marshal(data)
	if err != nil {
		log.Error().Err(err).Str("event", event).Msg("failed to marshal realtime payload")
		return
	}

	raw, err := json.Marshal(envelope{Event: event, Origin: origin, Data: payload})
	if err != nil {
		log.Error().Err(err).Str("event", event).Msg("failed to marshal realtime envelope")
		return
	}

	channel := redisclient.CohortChannel(cohortID)
	if err := b.redis.Publish(b.ctx, channel, raw).Err(); err != nil {
		// Redis being down must not silence the room for locally connected
		// clients.
		log.Error().Err(err).Str("channel", channel).Msg("redis publish failed, delivering locally")
		b.router.BroadcastExcept(cohortID, origin, event, json.RawMessage(payload))
	}
}

func (b *Bridge) subscribeToRedis(cohortID string) {
	channel := redisclient.CohortChannel(cohortID)
	pubsub := b.redis.Subscribe(b.ctx, channel)
	defer pubsub.Close()

	log.Debug().Str("channel", channel).Msg("redis pubsub subscribed")

	ch := pubsub.Channel()

	for {
		select {
		case <-b.ctx.Done():
			return

		case msg, ok := <-ch:
			if !ok {
				return
			}

			var env envelope
			if err := json.Unmarshal([]byte(msg.Payload), &env); err != nil {
				log.Error().Err(err).Msg("failed to unmarshal realtime envelope")
				continue
			}

			b.router.BroadcastExcept(cohortID, env.Origin, env.Event, env.Data)
		}
	}
}

func (b *Bridge) Close() {
	b.cancel()
}

var _ RoomBus = (*Bridge)(nil)
