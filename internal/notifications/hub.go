package notifications

import (
	"context"
	"sync"

	"github.com/nvteo/bakeshop-backend/pkg/logger"
)

// EventReceiveOrder is the event name emitted for each new order alert.
const EventReceiveOrder = "ReceiveOrder"

const subscriberBuffer = 16

// Subscription is one live listener on the hub. Events arrive on C until
// Close is called; Close is safe to call before delivery, twice, or
// concurrently with a broadcast.
type Subscription struct {
	C chan string

	hub *Hub
	id  int

	mu     sync.Mutex
	closed bool
}

// Close detaches the subscription from the hub and closes C.
func (s *Subscription) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	close(s.C)
	s.mu.Unlock()

	s.hub.drop(s.id)
}

// send delivers without blocking. The lock serializes against Close so C
// is never closed underneath a pending send. Returns false only when a
// live subscriber's buffer is full.
func (s *Subscription) send(message string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return true
	}
	select {
	case s.C <- message:
		return true
	default:
		return false
	}
}

// Hub fans order alerts out to live admin subscribers. Delivery is
// best-effort: a subscriber that cannot keep up has the event dropped and
// logged rather than blocking the order flow.
type Hub struct {
	logg *logger.Logger

	mu     sync.Mutex
	nextID int
	subs   map[int]*Subscription
}

// NewHub returns an empty hub.
func NewHub(logg *logger.Logger) *Hub {
	return &Hub{
		logg: logg,
		subs: map[int]*Subscription{},
	}
}

// Subscribe registers a new listener.
func (h *Hub) Subscribe() *Subscription {
	h.mu.Lock()
	defer h.mu.Unlock()
	sub := &Subscription{
		C:   make(chan string, subscriberBuffer),
		hub: h,
		id:  h.nextID,
	}
	h.subs[sub.id] = sub
	h.nextID++
	return sub
}

// Broadcast delivers the message to every live subscriber.
func (h *Hub) Broadcast(ctx context.Context, message string) {
	h.mu.Lock()
	subs := make([]*Subscription, 0, len(h.subs))
	for _, sub := range h.subs {
		subs = append(subs, sub)
	}
	h.mu.Unlock()

	for _, sub := range subs {
		if !sub.send(message) {
			if h.logg != nil {
				h.logg.Warn(ctx, "dropping order alert for slow subscriber")
			}
		}
	}
}

// SubscriberCount reports the number of live subscriptions.
func (h *Hub) SubscriberCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// Close detaches every live subscription, ending their streams. Used on
// server shutdown.
func (h *Hub) Close() {
	h.mu.Lock()
	subs := make([]*Subscription, 0, len(h.subs))
	for _, sub := range h.subs {
		subs = append(subs, sub)
	}
	h.mu.Unlock()

	for _, sub := range subs {
		sub.Close()
	}
}

func (h *Hub) drop(id int) {
	h.mu.Lock()
	delete(h.subs, id)
	h.mu.Unlock()
}
