package player

import (
	"time"

	"github.com/google/uuid"
)

// EffectKind is the typed set of time-bounded player modifiers.
type EffectKind string

const (
	EffectShield          EffectKind = "shield"
	EffectDamageBoost     EffectKind = "damage_boost"
	EffectSpeedBoost      EffectKind = "speed_boost"
	EffectInvulnerability EffectKind = "invulnerability"
)

// StatusEffect is one applied modifier. It expires when the elapsed
// time since StartedAt reaches Duration; removal happens lazily on the
// next sweep, not at the instant of expiry.
type StatusEffect struct {
	ID        string        `json:"id"`
	Kind      EffectKind    `json:"kind"`
	StartedAt time.Time     `json:"startedAt"`
	Duration  time.Duration `json:"duration"`
	Intensity float64       `json:"intensity"`
}

func (e StatusEffect) expired(now time.Time) bool {
	return now.Sub(e.StartedAt) >= e.Duration
}

// EffectSpec describes an effect to apply. A zero ID gets a generated one.
type EffectSpec struct {
	ID        string
	Kind      EffectKind
	Duration  time.Duration
	Intensity float64
}

// AddStatusEffect appends the effect and returns its id.
func (s *State) AddStatusEffect(spec EffectSpec, now time.Time) string {
	id := spec.ID
	if id == "" {
		id = uuid.New().String()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.effects = append(s.effects, StatusEffect{
		ID:        id,
		Kind:      spec.Kind,
		StartedAt: now,
		Duration:  spec.Duration,
		Intensity: spec.Intensity,
	})
	return id
}

// RemoveStatusEffect removes the effect with the given id. Unknown ids
// are ignored.
func (s *State) RemoveStatusEffect(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, e := range s.effects {
		if e.ID == id {
			s.effects = append(s.effects[:i], s.effects[i+1:]...)
			return true
		}
	}
	return false
}

// UpdateStatusEffects sweeps out every effect whose time is up at now
// and returns the removed ids. Running it again with the same clock
// removes nothing.
func (s *State) UpdateStatusEffects(now time.Time) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var expired []string
	kept := s.effects[:0]
	for _, e := range s.effects {
		if e.expired(now) {
			expired = append(expired, e.ID)
			continue
		}
		kept = append(kept, e)
	}
	s.effects = kept
	return expired
}

// ActiveEffects returns a copy of the effects still active at now.
// Expired entries awaiting the next sweep are filtered out of the view.
func (s *State) ActiveEffects(now time.Time) []StatusEffect {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []StatusEffect
	for _, e := range s.effects {
		if !e.expired(now) {
			out = append(out, e)
		}
	}
	return out
}

// HasEffect reports whether an effect of the given kind is active at now.
func (s *State) HasEffect(kind EffectKind, now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range s.effects {
		if e.Kind == kind && !e.expired(now) {
			return true
		}
	}
	return false
}

func (s *State) invulnerableLocked(now time.Time) bool {
	for _, e := range s.effects {
		if e.Kind == EffectInvulnerability && !e.expired(now) {
			return true
		}
	}
	return false
}
