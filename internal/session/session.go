package session

import (
	"sync"
	"time"

	"github.com/calderagame/caldera/internal/event"
)

// Mode is the top-level game mode.
type Mode string

const (
	ModeMenu     Mode = "menu"
	ModeLoading  Mode = "loading"
	ModePlaying  Mode = "playing"
	ModePaused   Mode = "paused"
	ModeGameOver Mode = "game_over"
)

// PerformanceLevel tunes how much work the render side is allowed to do.
type PerformanceLevel string

const (
	PerformanceLow    PerformanceLevel = "low"
	PerformanceMedium PerformanceLevel = "medium"
	PerformanceHigh   PerformanceLevel = "high"
)

// InputMode is the primary input device detected for the session.
type InputMode string

const (
	InputKeyboardMouse InputMode = "keyboard_mouse"
	InputTouch         InputMode = "touch"
	InputGamepad       InputMode = "gamepad"
)

// Capabilities describes the host the client is running on. Detection
// happens outside the core; the result is handed in once.
type Capabilities struct {
	TouchSupport        bool
	HardwareConcurrency int
}

// Publisher is the outbound notification surface the session writes to.
type Publisher interface {
	Publish(topic string, payload any)
}

// ChangedPayload is published on every mode transition and flag change.
type ChangedPayload struct {
	Mode              Mode             `json:"mode"`
	StartTime         time.Time        `json:"startTime"`
	EndTime           *time.Time       `json:"endTime,omitempty"`
	ShowInventory     bool             `json:"showInventory"`
	ShowLore          bool             `json:"showLore"`
	ShowGestureCanvas bool             `json:"showGestureCanvas"`
	Performance       PerformanceLevel `json:"performance"`
	Input             InputMode        `json:"input"`
}

// DefaultRestartDelay is how long the loading mode lasts before the
// session re-enters playing.
const DefaultRestartDelay = 2 * time.Second

// State is the session finite state machine. Invalid transitions are
// guarded no-ops, never errors: pausing from the menu simply does
// nothing. Restart always passes through loading before playing.
type State struct {
	mu  sync.Mutex
	pub Publisher

	mode      Mode
	startTime time.Time
	endTime   *time.Time

	showInventory     bool
	showLore          bool
	showGestureCanvas bool

	performance PerformanceLevel
	input       InputMode
	initialized bool

	loadingSince time.Time
	restartDelay time.Duration
}

func New(pub Publisher) *State {
	return &State{
		pub:          pub,
		mode:         ModeMenu,
		performance:  PerformanceMedium,
		input:        InputKeyboardMouse,
		restartDelay: DefaultRestartDelay,
	}
}

// Initialize records host capabilities. The first call wins; repeat
// calls are no-ops so re-running bootstrap code is harmless.
func (s *State) Initialize(caps Capabilities) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return
	}
	s.initialized = true

	if caps.TouchSupport {
		s.input = InputTouch
	} else {
		s.input = InputKeyboardMouse
	}

	switch {
	case caps.HardwareConcurrency >= 8:
		s.performance = PerformanceHigh
	case caps.HardwareConcurrency >= 4:
		s.performance = PerformanceMedium
	default:
		s.performance = PerformanceLow
	}
}

// Begin starts a new run from the menu. It enters loading; Update moves
// the session on to playing once the restart delay has elapsed.
func (s *State) Begin(now time.Time) {
	s.mu.Lock()
	if s.mode != ModeMenu {
		s.mu.Unlock()
		return
	}
	s.enterLoading(now)
	payload := s.snapshotLocked()
	s.mu.Unlock()

	s.publish(payload)
}

// Pause suspends play. A no-op unless currently playing.
func (s *State) Pause() {
	s.transition(ModePlaying, ModePaused)
}

// Resume continues a paused run. A no-op unless currently paused.
func (s *State) Resume() {
	s.transition(ModePaused, ModePlaying)
}

// End finishes the run. Valid from playing or paused.
func (s *State) End(now time.Time) {
	s.mu.Lock()
	if s.mode != ModePlaying && s.mode != ModePaused {
		s.mu.Unlock()
		return
	}
	s.mode = ModeGameOver
	t := now
	s.endTime = &t
	payload := s.snapshotLocked()
	s.mu.Unlock()

	s.publish(payload)
}

// Restart forces a fresh run from any mode, always via loading.
func (s *State) Restart(now time.Time) {
	s.mu.Lock()
	s.enterLoading(now)
	payload := s.snapshotLocked()
	s.mu.Unlock()

	s.publish(payload)
}

// Update advances time-driven transitions. Called by the driver each
// tick with the current clock.
func (s *State) Update(now time.Time) {
	s.mu.Lock()
	if s.mode != ModeLoading || now.Sub(s.loadingSince) < s.restartDelay {
		s.mu.Unlock()
		return
	}
	s.mode = ModePlaying
	s.startTime = now
	payload := s.snapshotLocked()
	s.mu.Unlock()

	s.publish(payload)
}

func (s *State) enterLoading(now time.Time) {
	s.mode = ModeLoading
	s.loadingSince = now
	s.endTime = nil
	s.showInventory = false
	s.showLore = false
	s.showGestureCanvas = false
}

func (s *State) transition(from, to Mode) {
	s.mu.Lock()
	if s.mode != from {
		s.mu.Unlock()
		return
	}
	s.mode = to
	payload := s.snapshotLocked()
	s.mu.Unlock()

	s.publish(payload)
}

// ToggleInventory flips the inventory overlay and reports the change.
func (s *State) ToggleInventory() bool {
	return s.toggleFlag(&s.showInventory)
}

// ToggleLore flips the lore overlay and reports the change.
func (s *State) ToggleLore() bool {
	return s.toggleFlag(&s.showLore)
}

// ToggleGestureCanvas flips the gesture canvas and reports the change.
func (s *State) ToggleGestureCanvas() bool {
	return s.toggleFlag(&s.showGestureCanvas)
}

func (s *State) toggleFlag(flag *bool) bool {
	s.mu.Lock()
	*flag = !*flag
	v := *flag
	payload := s.snapshotLocked()
	s.mu.Unlock()

	s.publish(payload)
	return v
}

// Mode returns the current game mode.
func (s *State) Mode() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// Snapshot returns a copy of every session field consumers subscribe to.
func (s *State) Snapshot() ChangedPayload {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *State) snapshotLocked() ChangedPayload {
	p := ChangedPayload{
		Mode:              s.mode,
		StartTime:         s.startTime,
		ShowInventory:     s.showInventory,
		ShowLore:          s.showLore,
		ShowGestureCanvas: s.showGestureCanvas,
		Performance:       s.performance,
		Input:             s.input,
	}
	if s.endTime != nil {
		t := *s.endTime
		p.EndTime = &t
	}
	return p
}

func (s *State) publish(payload ChangedPayload) {
	if s.pub == nil {
		return
	}
	s.pub.Publish(event.TopicSessionChanged, payload)
}
