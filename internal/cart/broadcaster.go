package cart

import (
	"context"
	"sync"
)

// ChangeKind labels what mutated the cart.
type ChangeKind string

const (
	ChangeAdd    ChangeKind = "add"
	ChangeUpdate ChangeKind = "update"
	ChangeRemove ChangeKind = "remove"
	ChangeClear  ChangeKind = "clear"
)

// ChangeEvent is delivered to subscribers after each mutation. Items is nil
// for clear events.
type ChangeEvent struct {
	Kind     ChangeKind
	Identity string
	Items    []LineItem
}

// Broadcaster fans cart change events out to its subscribers. It is scoped
// to one store instance, listeners never observe changes from other stores.
type Broadcaster struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]func(ChangeEvent)
}

// NewBroadcaster returns an empty broadcaster.
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{subs: map[int]func(ChangeEvent){}}
}

// Subscribe registers the handler and returns an unsubscribe func that is
// safe to call more than once.
func (b *Broadcaster) Subscribe(handler func(ChangeEvent)) func() {
	if handler == nil {
		return func() {}
	}
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.subs[id] = handler
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs, id)
			b.mu.Unlock()
		})
	}
}

// Publish delivers the event to every current subscriber synchronously.
func (b *Broadcaster) Publish(_ context.Context, event ChangeEvent) {
	b.mu.Lock()
	handlers := make([]func(ChangeEvent), 0, len(b.subs))
	for _, h := range b.subs {
		handlers = append(handlers, h)
	}
	b.mu.Unlock()

	for _, h := range handlers {
		h(event)
	}
}
