package driver

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pixil98/go-testutil"
)

type countingManager struct {
	ticks  int
	deltas []time.Duration
	err    error
}

func (m *countingManager) Tick(_ context.Context, delta time.Duration) error {
	m.ticks++
	m.deltas = append(m.deltas, delta)
	return m.err
}

func TestTickRunsManagersInOrder(t *testing.T) {
	var order []string
	mk := func(name string) Manager {
		return managerFunc(func(context.Context, time.Duration) error {
			order = append(order, name)
			return nil
		})
	}

	d := NewGameDriver([]Manager{mk("session"), mk("world"), mk("splash")})
	if err := d.Tick(context.Background(), time.Millisecond); err != nil {
		t.Fatalf("tick: %v", err)
	}

	testutil.AssertEqual(t, "manager count", len(order), 3)
	testutil.AssertEqual(t, "first", order[0], "session")
	testutil.AssertEqual(t, "second", order[1], "world")
	testutil.AssertEqual(t, "third", order[2], "splash")
}

func TestTickPropagatesDelta(t *testing.T) {
	m := &countingManager{}
	d := NewGameDriver([]Manager{m})

	_ = d.Tick(context.Background(), 250*time.Millisecond)
	testutil.AssertEqual(t, "delta", m.deltas[0], 250*time.Millisecond)
}

func TestTickStopsOnManagerError(t *testing.T) {
	boom := errors.New("boom")
	failing := &countingManager{err: boom}
	after := &countingManager{}

	d := NewGameDriver([]Manager{failing, after})
	err := d.Tick(context.Background(), time.Millisecond)

	if !errors.Is(err, boom) {
		t.Fatalf("expected manager error, got %v", err)
	}
	testutil.AssertEqual(t, "later manager skipped", after.ticks, 0)
}

func TestStartStopsOnContextCancel(t *testing.T) {
	m := &countingManager{}
	d := NewGameDriver([]Manager{m}, WithTickLength(time.Millisecond))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	if err := d.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	if m.ticks == 0 {
		t.Error("expected at least one tick before cancellation")
	}
}

type managerFunc func(context.Context, time.Duration) error

func (f managerFunc) Tick(ctx context.Context, delta time.Duration) error {
	return f(ctx, delta)
}
