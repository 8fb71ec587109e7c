package realtime

import (
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// subscriberBuffer is the per-connection backlog. A subscriber that falls
// this far behind is considered dead and gets dropped; reconnecting clients
// recover through the snapshot sent on subscribe.
const subscriberBuffer = 32

// Subscriber is one outbound push channel, registered to exactly one room.
type Subscriber struct {
	id     string
	roomID string
	ch     chan []byte
	once   sync.Once
}

// Events is the stream of encoded frames to write to the client, in the
// order they were broadcast for the room. It is closed on unsubscribe.
func (s *Subscriber) Events() <-chan []byte { return s.ch }

// RoomID returns the room the subscriber is registered to.
func (s *Subscriber) RoomID() string { return s.roomID }

func (s *Subscriber) close() {
	s.once.Do(func() { close(s.ch) })
}

// Hub tracks which connections are interested in which room and fans
// broadcast events out to them. Delivery is best-effort and at-most-once:
// there is no queueing or replay for absent subscribers.
type Hub struct {
	mu    sync.Mutex
	rooms map[string]map[*Subscriber]struct{}
}

func NewHub() *Hub {
	return &Hub{
		rooms: make(map[string]map[*Subscriber]struct{}),
	}
}

// Subscribe registers a new push channel for the given room.
func (h *Hub) Subscribe(roomID string) *Subscriber {
	sub := &Subscriber{
		id:     uuid.NewString(),
		roomID: roomID,
		ch:     make(chan []byte, subscriberBuffer),
	}

	h.mu.Lock()
	if h.rooms[roomID] == nil {
		h.rooms[roomID] = make(map[*Subscriber]struct{})
	}
	h.rooms[roomID][sub] = struct{}{}
	total := len(h.rooms[roomID])
	h.mu.Unlock()

	logrus.WithFields(logrus.Fields{
		"room":        roomID,
		"subscriber":  sub.id,
		"subscribers": total,
	}).Debug("realtime: subscribed")
	return sub
}

// Unsubscribe removes a subscriber and closes its channel. Safe to call
// more than once; the registry entry for an emptied room is dropped.
func (h *Hub) Unsubscribe(sub *Subscriber) {
	h.mu.Lock()
	if subs, ok := h.rooms[sub.roomID]; ok {
		delete(subs, sub)
		if len(subs) == 0 {
			delete(h.rooms, sub.roomID)
		}
	}
	h.mu.Unlock()
	sub.close()

	logrus.WithFields(logrus.Fields{
		"room":       sub.roomID,
		"subscriber": sub.id,
	}).Debug("realtime: unsubscribed")
}

// Subscribers reports how many channels are registered for a room.
func (h *Hub) Subscribers(roomID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.rooms[roomID])
}

// Broadcast encodes the event once and delivers it to every subscriber of
// the room. A subscriber whose buffer is full cannot block or fail the
// others; it is unsubscribed on the spot. Broadcasts are serialized, so
// every subscriber observes a room's events in the same order.
func (h *Hub) Broadcast(roomID string, ev Event) {
	data, err := Encode(ev)
	if err != nil {
		logrus.WithError(err).WithField("event", ev.EventType()).Error("realtime: encode failed")
		return
	}

	h.mu.Lock()
	for sub := range h.rooms[roomID] {
		select {
		case sub.ch <- data:
		default:
			delete(h.rooms[roomID], sub)
			sub.close()
			logrus.WithFields(logrus.Fields{
				"room":       roomID,
				"subscriber": sub.id,
				"event":      ev.EventType(),
			}).Warn("realtime: subscriber lagging, dropped")
		}
	}
	if len(h.rooms[roomID]) == 0 {
		delete(h.rooms, roomID)
	}
	h.mu.Unlock()
}

// Send pushes one event to a single subscriber, bypassing the room fan-out.
// Used for the mandatory snapshot on subscribe.
func (h *Hub) Send(sub *Subscriber, ev Event) {
	data, err := Encode(ev)
	if err != nil {
		logrus.WithError(err).WithField("event", ev.EventType()).Error("realtime: encode failed")
		return
	}
	select {
	case sub.ch <- data:
	default:
		h.Unsubscribe(sub)
	}
}
