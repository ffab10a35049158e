package world

import (
	"time"

	"github.com/calderagame/caldera/internal/event"
	"github.com/calderagame/caldera/internal/geom"
	"github.com/google/uuid"
)

// Effect is a transient world effect (explosion flash, lava burst,
// gesture trail). Entries expire by elapsed time and are dropped by the
// periodic sweep, each one reported individually.
type Effect struct {
	ID        string        `json:"id"`
	Kind      string        `json:"kind"`
	Position  geom.Vec3     `json:"position"`
	Intensity float64       `json:"intensity"`
	CreatedAt time.Time     `json:"createdAt"`
	Duration  time.Duration `json:"duration"`
}

func (e *Effect) expired(now time.Time) bool {
	return now.Sub(e.CreatedAt) >= e.Duration
}

// EffectExpiredPayload reports one swept-out effect.
type EffectExpiredPayload struct {
	ID   string `json:"id"`
	Kind string `json:"kind"`
}

// EffectSpec describes an effect to add. A zero ID gets a generated one.
type EffectSpec struct {
	ID        string
	Kind      string
	Position  geom.Vec3
	Intensity float64
	Duration  time.Duration
}

// AddEffect registers a transient effect and returns its id.
func (s *State) AddEffect(spec EffectSpec, now time.Time) string {
	id := spec.ID
	if id == "" {
		id = uuid.New().String()
	}
	intensity := spec.Intensity
	if intensity < 0 {
		intensity = 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.effects[id] = &Effect{
		ID:        id,
		Kind:      spec.Kind,
		Position:  spec.Position,
		Intensity: intensity,
		CreatedAt: now,
		Duration:  spec.Duration,
	}
	return id
}

// RemoveEffect drops an effect before its time. Unknown ids are ignored.
func (s *State) RemoveEffect(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.effects[id]; !ok {
		return false
	}
	delete(s.effects, id)
	return true
}

// UpdateEffects sweeps out every effect older than its duration at now,
// publishing one expiry notification per entry. Returns the expired ids.
func (s *State) UpdateEffects(now time.Time) []string {
	s.mu.Lock()
	var swept []EffectExpiredPayload
	for id, e := range s.effects {
		if e.expired(now) {
			swept = append(swept, EffectExpiredPayload{ID: id, Kind: e.Kind})
			delete(s.effects, id)
		}
	}
	s.mu.Unlock()

	ids := make([]string, 0, len(swept))
	for _, p := range swept {
		s.publish(event.TopicWorldEffectExpired, p)
		ids = append(ids, p.ID)
	}
	return ids
}

// Effects returns a copy of every live effect.
func (s *State) Effects() []Effect {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Effect, 0, len(s.effects))
	for _, e := range s.effects {
		out = append(out, *e)
	}
	return out
}
