package messaging

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/calderagame/caldera/internal/splash"
)

// SubjectSplash is where out-of-process gameplay layers submit
// area-damage impacts for next-tick resolution.
const SubjectSplash = subjectPrefix + "cmd.splash"

// Enqueuer accepts splash events. Satisfied by splash.Resolver.
type Enqueuer interface {
	Enqueue(ev splash.Event) string
}

// Receiver is the wire side the intake listens on. Satisfied by
// NatsServer.
type Receiver interface {
	Subscribe(subject string, handler func(data []byte)) (func(), error)
}

// Intake is the inbound half of the NATS bridge: it decodes splash
// submissions off the wire into the resolver queue. Malformed
// submissions are logged and dropped, never fatal.
type Intake struct {
	wire  Receiver
	queue Enqueuer
}

func NewIntake(wire Receiver, queue Enqueuer) *Intake {
	return &Intake{wire: wire, queue: queue}
}

func (i *Intake) Start(ctx context.Context) error {
	unsub, err := i.wire.Subscribe(SubjectSplash, i.receive)
	if err != nil {
		return err
	}
	defer unsub()

	<-ctx.Done()
	return nil
}

func (i *Intake) receive(data []byte) {
	var ev splash.Event
	if err := json.Unmarshal(data, &ev); err != nil {
		slog.Warn("dropping malformed splash submission", "error", err)
		return
	}
	i.queue.Enqueue(ev)
}
