package session

import (
	"testing"
	"time"

	"github.com/pixil98/go-testutil"
)

// mockPublisher records every published payload for inspection.
type mockPublisher struct {
	topics   []string
	payloads []any
}

func (m *mockPublisher) Publish(topic string, payload any) {
	m.topics = append(m.topics, topic)
	m.payloads = append(m.payloads, payload)
}

func (m *mockPublisher) modes() []Mode {
	var out []Mode
	for _, p := range m.payloads {
		out = append(out, p.(ChangedPayload).Mode)
	}
	return out
}

func TestBeginEntersLoadingThenPlaying(t *testing.T) {
	pub := &mockPublisher{}
	s := New(pub)
	now := time.Now()

	s.Begin(now)
	testutil.AssertEqual(t, "mode after begin", s.Mode(), ModeLoading)

	// Too early: still loading.
	s.Update(now.Add(DefaultRestartDelay - time.Millisecond))
	testutil.AssertEqual(t, "mode before delay", s.Mode(), ModeLoading)

	s.Update(now.Add(DefaultRestartDelay))
	testutil.AssertEqual(t, "mode after delay", s.Mode(), ModePlaying)

	got := pub.modes()
	testutil.AssertEqual(t, "transition count", len(got), 2)
	testutil.AssertEqual(t, "first transition", got[0], ModeLoading)
	testutil.AssertEqual(t, "second transition", got[1], ModePlaying)
}

func TestPauseResumeGuards(t *testing.T) {
	tests := map[string]struct {
		setup   func(s *State, now time.Time)
		op      func(s *State)
		expMode Mode
	}{
		"pause while playing": {
			setup:   startPlaying,
			op:      func(s *State) { s.Pause() },
			expMode: ModePaused,
		},
		"pause in menu is ignored": {
			setup:   func(*State, time.Time) {},
			op:      func(s *State) { s.Pause() },
			expMode: ModeMenu,
		},
		"resume while paused": {
			setup: func(s *State, now time.Time) {
				startPlaying(s, now)
				s.Pause()
			},
			op:      func(s *State) { s.Resume() },
			expMode: ModePlaying,
		},
		"resume while playing is ignored": {
			setup:   startPlaying,
			op:      func(s *State) { s.Resume() },
			expMode: ModePlaying,
		},
		"pause while game over is ignored": {
			setup: func(s *State, now time.Time) {
				startPlaying(s, now)
				s.End(now)
			},
			op:      func(s *State) { s.Pause() },
			expMode: ModeGameOver,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			s := New(&mockPublisher{})
			now := time.Now()
			tt.setup(s, now)
			tt.op(s)
			testutil.AssertEqual(t, "mode", s.Mode(), tt.expMode)
		})
	}
}

func TestRestartFromGameOverPassesThroughLoading(t *testing.T) {
	pub := &mockPublisher{}
	s := New(pub)
	now := time.Now()

	startPlaying(s, now)
	s.End(now)
	testutil.AssertEqual(t, "mode after end", s.Mode(), ModeGameOver)

	s.Restart(now)
	testutil.AssertEqual(t, "mode after restart", s.Mode(), ModeLoading)

	s.Update(now.Add(DefaultRestartDelay))
	testutil.AssertEqual(t, "mode after delay", s.Mode(), ModePlaying)

	// The published sequence must contain loading before the final playing.
	got := pub.modes()
	testutil.AssertEqual(t, "second to last", got[len(got)-2], ModeLoading)
	testutil.AssertEqual(t, "last", got[len(got)-1], ModePlaying)
}

func TestRestartClearsEndTimeAndOverlays(t *testing.T) {
	s := New(&mockPublisher{})
	now := time.Now()

	startPlaying(s, now)
	s.ToggleInventory()
	s.End(now)
	s.Restart(now)

	snap := s.Snapshot()
	testutil.AssertEqual(t, "end time cleared", snap.EndTime == nil, true)
	testutil.AssertEqual(t, "inventory hidden", snap.ShowInventory, false)
}

func TestInitializeIsIdempotent(t *testing.T) {
	s := New(&mockPublisher{})

	s.Initialize(Capabilities{TouchSupport: true, HardwareConcurrency: 8})
	snap := s.Snapshot()
	testutil.AssertEqual(t, "input", snap.Input, InputTouch)
	testutil.AssertEqual(t, "performance", snap.Performance, PerformanceHigh)

	// A second detection pass must not overwrite the first result.
	s.Initialize(Capabilities{TouchSupport: false, HardwareConcurrency: 2})
	snap = s.Snapshot()
	testutil.AssertEqual(t, "input unchanged", snap.Input, InputTouch)
	testutil.AssertEqual(t, "performance unchanged", snap.Performance, PerformanceHigh)
}

func TestPerformanceLevels(t *testing.T) {
	tests := map[string]struct {
		concurrency int
		exp         PerformanceLevel
	}{
		"two cores":   {2, PerformanceLow},
		"four cores":  {4, PerformanceMedium},
		"eight cores": {8, PerformanceHigh},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			s := New(&mockPublisher{})
			s.Initialize(Capabilities{HardwareConcurrency: tt.concurrency})
			testutil.AssertEqual(t, "performance", s.Snapshot().Performance, tt.exp)
		})
	}
}

func TestToggleOverlaysPublish(t *testing.T) {
	pub := &mockPublisher{}
	s := New(pub)

	testutil.AssertEqual(t, "inventory on", s.ToggleInventory(), true)
	testutil.AssertEqual(t, "inventory off", s.ToggleInventory(), false)
	testutil.AssertEqual(t, "lore on", s.ToggleLore(), true)
	testutil.AssertEqual(t, "gesture on", s.ToggleGestureCanvas(), true)

	testutil.AssertEqual(t, "published changes", len(pub.payloads), 4)
}

func startPlaying(s *State, now time.Time) {
	s.Begin(now)
	s.Update(now.Add(DefaultRestartDelay))
}
