package world

import (
	"github.com/calderagame/caldera/internal/event"
	"github.com/calderagame/caldera/internal/geom"
	"github.com/google/uuid"
)

// AudioZone is a spherical region that triggers ambient sound while the
// listener is inside it. Active tracks the listener's last known side
// of the boundary.
type AudioZone struct {
	ID      string    `json:"id"`
	Center  geom.Vec3 `json:"center"`
	Radius  float64   `json:"radius"`
	SoundID string    `json:"soundId"`
	Volume  float64   `json:"volume"`
	Active  bool      `json:"active"`
}

// AudioZoneSpec describes a zone to register. Volume is clamped to
// [0, 1]; a zero ID gets a generated one.
type AudioZoneSpec struct {
	ID      string
	Center  geom.Vec3
	Radius  float64
	SoundID string
	Volume  float64
}

// AddAudioZone registers a zone and returns its id. Zones start
// inactive; the first UpdateAudioZones call settles them.
func (s *State) AddAudioZone(spec AudioZoneSpec) string {
	id := spec.ID
	if id == "" {
		id = uuid.New().String()
	}

	volume := spec.Volume
	if volume < 0 {
		volume = 0
	}
	if volume > 1 {
		volume = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.audioZones = append(s.audioZones, &AudioZone{
		ID:      id,
		Center:  spec.Center,
		Radius:  spec.Radius,
		SoundID: spec.SoundID,
		Volume:  volume,
	})
	return id
}

// RemoveAudioZone drops the zone with the given id.
func (s *State) RemoveAudioZone(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, z := range s.audioZones {
		if z.ID == id {
			s.audioZones = append(s.audioZones[:i], s.audioZones[i+1:]...)
			return true
		}
	}
	return false
}

// UpdateAudioZones recomputes every zone's active flag from the
// listener's distance to its center. Enter and exit notifications fire
// only on the transition edge, never while the listener stays on the
// same side of the boundary.
func (s *State) UpdateAudioZones(listener geom.Vec3) {
	s.mu.Lock()
	var entered, exited []AudioZone
	for _, z := range s.audioZones {
		inside := listener.Dist(z.Center) <= z.Radius
		if inside == z.Active {
			continue
		}
		z.Active = inside
		if inside {
			entered = append(entered, *z)
		} else {
			exited = append(exited, *z)
		}
	}
	s.mu.Unlock()

	for _, z := range entered {
		s.publish(event.TopicAudioZoneEntered, z)
	}
	for _, z := range exited {
		s.publish(event.TopicAudioZoneExited, z)
	}
}

// AudioZones returns a copy of every zone in registration order.
func (s *State) AudioZones() []AudioZone {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]AudioZone, 0, len(s.audioZones))
	for _, z := range s.audioZones {
		out = append(out, *z)
	}
	return out
}
