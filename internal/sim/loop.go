// Package sim owns the per-tick orchestration: it advances the session
// machine, runs the expiry sweeps, keeps audio zones in sync with the
// player and resolves queued splash damage.
package sim

import (
	"context"
	"time"

	"github.com/calderagame/caldera/internal/player"
	"github.com/calderagame/caldera/internal/session"
	"github.com/calderagame/caldera/internal/splash"
	"github.com/calderagame/caldera/internal/world"
	log "github.com/pixil98/go-log"
)

const (
	DefaultWaveInterval = 30 * time.Second
)

// Simulation advances all state containers from a single tick. It is
// the sole writer during its own invocation; containers must not gain
// other concurrent writers without explicit synchronization.
type Simulation struct {
	clock func() time.Time

	session *session.State
	player  *player.State
	world   *world.State
	splash  *splash.Resolver

	waveInterval time.Duration
	waveSize     int
	sinceWave    time.Duration
}

// Opt configures a Simulation.
type Opt func(*Simulation)

// WithClock replaces the wall clock, mainly for tests.
func WithClock(clock func() time.Time) Opt {
	return func(s *Simulation) { s.clock = clock }
}

// WithWaveInterval sets how often an enemy wave spawns while playing.
func WithWaveInterval(d time.Duration) Opt {
	return func(s *Simulation) { s.waveInterval = d }
}

func New(sess *session.State, pl *player.State, w *world.State, sp *splash.Resolver, opts ...Opt) *Simulation {
	s := &Simulation{
		clock:        time.Now,
		session:      sess,
		player:       pl,
		world:        w,
		splash:       sp,
		waveInterval: DefaultWaveInterval,
		waveSize:     world.DefaultWaveSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Tick advances one simulation step. Sweeps are idempotent, so a tick
// where nothing expired is a no-op apart from the atmosphere clock.
func (s *Simulation) Tick(ctx context.Context, delta time.Duration) error {
	now := s.clock()

	s.session.Update(now)

	s.player.UpdateStatusEffects(now)
	s.world.UpdateEffects(now)
	s.world.AdvanceTime(delta)

	if pos, ok := s.player.Position(); ok {
		s.world.UpdateAudioZones(pos)
	}

	if s.session.Mode() == session.ModePlaying {
		s.sinceWave += delta
		if s.sinceWave >= s.waveInterval {
			s.sinceWave = 0
			if n := s.world.SpawnEnemyWave(s.waveSize); n > 0 {
				log.GetLogger(ctx).Infof("spawned enemy wave of %d", n)
			}
		}
	}

	s.splash.ResolvePending()

	return nil
}
