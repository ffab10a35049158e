package player

import (
	"sync"
	"time"

	"github.com/calderagame/caldera/internal/geom"
)

const (
	DefaultMaxHealth = 100.0
	DefaultMaxShield = 50.0
)

// Stats are cumulative per-session counters. They only ever grow;
// Respawn does not reset them.
type Stats struct {
	DamageTaken float64 `json:"damageTaken"`
	DamageDealt float64 `json:"damageDealt"`
	Kills       int     `json:"kills"`
	Deaths      int     `json:"deaths"`
}

// Vitals is the read-only health/shield view consumers subscribe to.
type Vitals struct {
	Health    float64 `json:"health"`
	MaxHealth float64 `json:"maxHealth"`
	Shield    float64 `json:"shield"`
	MaxShield float64 `json:"maxShield"`
	Dead      bool    `json:"dead"`
}

// State is the player combat-state container.
//
// Mutators change state and return results; they publish no events.
// Event dispatch from these paths fed back into the bridging layer that
// calls them, so consumers read the container through its selectors
// instead.
type State struct {
	mu sync.Mutex

	health    float64
	maxHealth float64
	shield    float64
	maxShield float64
	dead      bool

	position *geom.Vec3
	velocity *geom.Vec3

	effects []StatusEffect

	experience  int
	level       int
	skillPoints int

	stats Stats
}

// Opt configures a State at construction.
type Opt func(*State)

// WithMaxHealth overrides the starting health ceiling. Values at or
// below zero are ignored.
func WithMaxHealth(max float64) Opt {
	return func(s *State) {
		if max > 0 {
			s.maxHealth = max
			s.health = max
		}
	}
}

// WithMaxShield overrides the starting shield ceiling. The shield
// charge itself still starts empty.
func WithMaxShield(max float64) Opt {
	return func(s *State) {
		if max > 0 {
			s.maxShield = max
		}
	}
}

func New(opts ...Opt) *State {
	s := &State{
		health:    DefaultMaxHealth,
		maxHealth: DefaultMaxHealth,
		maxShield: DefaultMaxShield,
		level:     1,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// TakeDamage applies amount shield-first, then to health, clamped at
// zero. It is a no-op while dead or while an invulnerability effect is
// active at now. The damageTaken stat counts the full requested amount
// even when the shield absorbed part or all of it.
func (s *State) TakeDamage(amount float64, now time.Time) {
	if amount < 0 {
		amount = 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.dead || s.invulnerableLocked(now) {
		return
	}

	s.stats.DamageTaken += amount

	absorbed := min(s.shield, amount)
	s.shield -= absorbed
	s.health -= amount - absorbed
	if s.health <= 0 {
		s.health = 0
		s.dead = true
		s.stats.Deaths++
	}
}

// Heal restores health up to maxHealth. Negative amounts are ignored.
func (s *State) Heal(amount float64) {
	if amount < 0 {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.health = min(s.health+amount, s.maxHealth)
}

// AddShield sets the shield to amount, replacing whatever charge was
// left. The shield ceiling grows to amount when it was lower. Negative
// amounts clamp to zero so the charge never goes below empty.
func (s *State) AddShield(amount float64) {
	if amount < 0 {
		amount = 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.maxShield = max(s.maxShield, amount)
	s.shield = min(s.maxShield, amount)
}

// AddShieldCapped sets the shield to amount under an explicit ceiling.
func (s *State) AddShieldCapped(amount, maxAmount float64) {
	if amount < 0 {
		amount = 0
	}
	if maxAmount < 0 {
		maxAmount = 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.maxShield = maxAmount
	s.shield = min(maxAmount, amount)
}

// Respawn brings the player back: full health, no shield charge, no
// effects, movement state cleared. Cumulative stats are preserved.
func (s *State) Respawn() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.health = s.maxHealth
	s.shield = 0
	s.effects = nil
	s.position = nil
	s.velocity = nil
	s.dead = false
}

// UpdateMovement records the latest position and velocity from the
// movement system. Both are unset until the first call.
func (s *State) UpdateMovement(pos, vel geom.Vec3) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.position = &pos
	s.velocity = &vel
}

// AddKill credits a confirmed kill and the damage that caused it.
func (s *State) AddKill(damageDealt float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stats.Kills++
	s.stats.DamageDealt += damageDealt
}

// AddDamageDealt credits outgoing damage without a kill.
func (s *State) AddDamageDealt(amount float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stats.DamageDealt += amount
}

// Vitals returns the current health/shield view.
func (s *State) Vitals() Vitals {
	s.mu.Lock()
	defer s.mu.Unlock()

	return Vitals{
		Health:    s.health,
		MaxHealth: s.maxHealth,
		Shield:    s.shield,
		MaxShield: s.maxShield,
		Dead:      s.dead,
	}
}

// IsDead reports whether health has reached zero.
func (s *State) IsDead() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dead
}

// Position returns the last recorded position, if any.
func (s *State) Position() (geom.Vec3, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.position == nil {
		return geom.Vec3{}, false
	}
	return *s.position, true
}

// Velocity returns the last recorded velocity, if any.
func (s *State) Velocity() (geom.Vec3, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.velocity == nil {
		return geom.Vec3{}, false
	}
	return *s.velocity, true
}

// Stats returns a copy of the cumulative counters.
func (s *State) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}
