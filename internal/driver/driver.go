package driver

import (
	"context"
	"time"
)

const (
	DefaultTickLength = 100 * time.Millisecond
)

// Manager is anything advanced by the simulation tick. The delta is the
// measured time since the previous tick, so sweep cadence stays
// deterministic under a test harness that calls Tick directly.
type Manager interface {
	Tick(ctx context.Context, delta time.Duration) error
}

// GameDriver owns the simulation tick. Managers run in registration
// order on a single goroutine; no state container is ever advanced
// concurrently.
type GameDriver struct {
	tickLength time.Duration
	managers   []Manager
}

func NewGameDriver(managers []Manager, opts ...GameDriverOpt) *GameDriver {
	d := &GameDriver{
		tickLength: DefaultTickLength,
		managers:   managers,
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

func (d *GameDriver) Start(ctx context.Context) error {
	ticker := time.NewTicker(d.tickLength)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			delta := now.Sub(last)
			last = now
			if err := d.Tick(ctx, delta); err != nil {
				return err
			}
		}
	}
}

func (d *GameDriver) Tick(ctx context.Context, delta time.Duration) error {
	for _, m := range d.managers {
		if err := m.Tick(ctx, delta); err != nil {
			return err
		}
	}
	return nil
}
