package messaging

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/calderagame/caldera/internal/event"
)

// subjectPrefix namespaces relayed topics on the wire.
const subjectPrefix = "caldera."

// SubjectFeed carries rendered activity lines for display consumers
// that do not want to format raw payloads themselves.
const SubjectFeed = subjectPrefix + "feed"

// Subscriber is the inbound side of the in-process bus.
type Subscriber interface {
	Subscribe(topic string, handler event.Handler) event.Subscription
	Unsubscribe(sub event.Subscription)
}

// Wire is where relayed messages go. Satisfied by NatsServer.
type Wire interface {
	Publish(subject string, data []byte) error
}

// Relay mirrors every core bus topic onto NATS subjects so reactive
// consumers outside the process see the same notifications as
// in-process subscribers. Payloads cross the wire as JSON.
type Relay struct {
	bus  Subscriber
	wire Wire

	subs []event.Subscription
}

func NewRelay(bus Subscriber, wire Wire) *Relay {
	return &Relay{bus: bus, wire: wire}
}

// Start attaches the relay to every core topic and holds it there until
// the context ends. Runs as a go-service worker.
func (r *Relay) Start(ctx context.Context) error {
	for _, topic := range event.Topics() {
		r.subs = append(r.subs, r.bus.Subscribe(topic, r.forward(topic)))
	}

	<-ctx.Done()

	for _, sub := range r.subs {
		r.bus.Unsubscribe(sub)
	}
	r.subs = nil
	return nil
}

func (r *Relay) forward(topic string) event.Handler {
	subject := subjectPrefix + topic
	return func(payload any) {
		data, err := json.Marshal(payload)
		if err != nil {
			slog.Warn("relay: dropping unmarshalable payload", "topic", topic, "error", err)
			return
		}
		if err := r.wire.Publish(subject, data); err != nil {
			slog.Warn("relay: publish failed", "subject", subject, "error", err)
		}
	}
}
