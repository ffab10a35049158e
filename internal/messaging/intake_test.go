package messaging

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/pixil98/go-testutil"

	"github.com/calderagame/caldera/internal/geom"
	"github.com/calderagame/caldera/internal/splash"
)

type mockReceiver struct {
	subject  string
	handler  func(data []byte)
	unsubbed bool
}

func (m *mockReceiver) Subscribe(subject string, handler func(data []byte)) (func(), error) {
	m.subject = subject
	m.handler = handler
	return func() { m.unsubbed = true }, nil
}

type mockQueue struct {
	events []splash.Event
}

func (m *mockQueue) Enqueue(ev splash.Event) string {
	m.events = append(m.events, ev)
	return ev.ID
}

func runIntake(t *testing.T, wire *mockReceiver, queue *mockQueue) context.CancelFunc {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	intake := NewIntake(wire, queue)
	go func() {
		defer close(done)
		if err := intake.Start(ctx); err != nil {
			t.Errorf("intake start: %v", err)
		}
	}()
	time.Sleep(10 * time.Millisecond)
	t.Cleanup(func() {
		cancel()
		<-done
	})
	return cancel
}

func TestIntakeEnqueuesSubmissions(t *testing.T) {
	wire := &mockReceiver{}
	queue := &mockQueue{}
	runIntake(t, wire, queue)

	testutil.AssertEqual(t, "subject", wire.subject, "caldera.cmd.splash")

	data, _ := json.Marshal(splash.Event{
		ID:       "ev1",
		Position: geom.Vec3{X: 3},
		Radius:   5,
		Damage:   25,
	})
	wire.handler(data)

	testutil.AssertEqual(t, "queued", len(queue.events), 1)
	testutil.AssertEqual(t, "id", queue.events[0].ID, "ev1")
	testutil.AssertEqual(t, "radius", queue.events[0].Radius, 5.0)
}

func TestIntakeDropsMalformedSubmissions(t *testing.T) {
	wire := &mockReceiver{}
	queue := &mockQueue{}
	runIntake(t, wire, queue)

	wire.handler([]byte("{not json"))

	testutil.AssertEqual(t, "queued", len(queue.events), 0)
}

func TestIntakeDetachesOnShutdown(t *testing.T) {
	wire := &mockReceiver{}
	queue := &mockQueue{}
	cancel := runIntake(t, wire, queue)

	cancel()
	time.Sleep(10 * time.Millisecond)

	testutil.AssertEqual(t, "unsubscribed", wire.unsubbed, true)
}
