package event

import (
	"log/slog"
	"sync"
)

// Handler receives the payload published on a topic.
type Handler func(payload any)

// Subscription identifies a single registered handler so it can be
// removed later. Funcs are not comparable in Go, so unsubscribe works
// through the handle rather than by handler value.
type Subscription struct {
	topic string
	id    uint64
}

type registration struct {
	id      uint64
	handler Handler
}

// Bus is a synchronous in-process publish/subscribe channel. Handlers
// for a topic run in registration order, on the publisher's goroutine,
// before Publish returns. A panicking handler is recovered and logged;
// it never stops dispatch to later handlers or reaches the publisher.
//
// The bus holds no history: a handler only sees payloads published
// after it subscribed.
type Bus struct {
	mu     sync.Mutex
	nextID uint64
	topics map[string][]registration
}

func NewBus() *Bus {
	return &Bus{
		topics: map[string][]registration{},
	}
}

// Subscribe registers handler for topic and returns the handle used to
// remove it again.
func (b *Bus) Subscribe(topic string, handler Handler) Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	b.topics[topic] = append(b.topics[topic], registration{id: b.nextID, handler: handler})

	return Subscription{topic: topic, id: b.nextID}
}

// Unsubscribe removes the handler identified by sub. Unknown or already
// removed subscriptions are ignored.
func (b *Bus) Unsubscribe(sub Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()

	regs := b.topics[sub.topic]
	for i, r := range regs {
		if r.id == sub.id {
			b.topics[sub.topic] = append(regs[:i:i], regs[i+1:]...)
			return
		}
	}
}

// Publish delivers payload to every handler registered for topic at the
// time of the call, synchronously and in registration order.
func (b *Bus) Publish(topic string, payload any) {
	b.mu.Lock()
	regs := b.topics[topic]
	b.mu.Unlock()

	for _, r := range regs {
		dispatch(topic, r.handler, payload)
	}
}

func dispatch(topic string, h Handler, payload any) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("event handler panicked", "topic", topic, "panic", r)
		}
	}()
	h(payload)
}
