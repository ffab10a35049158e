package world

import (
	"time"

	"github.com/calderagame/caldera/internal/event"
	"github.com/calderagame/caldera/internal/geom"
)

// WeatherType is the current sky condition.
type WeatherType string

const (
	WeatherClear   WeatherType = "clear"
	WeatherAshfall WeatherType = "ashfall"
	WeatherStorm   WeatherType = "storm"
	WeatherFog     WeatherType = "fog"
)

// hoursPerSecond converts real elapsed time into game-clock hours.
const hoursPerSecond = 0.02

// Atmosphere bundles the ambient world conditions. TimeOfDay is a game
// clock in [0, 24) that wraps at midnight; WindDirection is always
// normalized.
type Atmosphere struct {
	TimeOfDay     float64     `json:"timeOfDay"`
	Weather       WeatherType `json:"weather"`
	WindSpeed     float64     `json:"windSpeed"`
	WindDirection geom.Vec3   `json:"windDirection"`
}

// AdvanceTime moves the game clock forward by delta and publishes the
// new atmosphere. Zero or negative deltas are ignored.
func (s *State) AdvanceTime(delta time.Duration) {
	if delta <= 0 {
		return
	}

	s.mu.Lock()
	s.atmosphere.TimeOfDay += delta.Seconds() * hoursPerSecond
	for s.atmosphere.TimeOfDay >= 24 {
		s.atmosphere.TimeOfDay -= 24
	}
	snap := s.atmosphere
	s.mu.Unlock()

	s.publish(event.TopicAtmosphereChanged, snap)
}

// SetWeather switches the sky condition, publishing only on change.
func (s *State) SetWeather(w WeatherType) {
	s.mu.Lock()
	if s.atmosphere.Weather == w {
		s.mu.Unlock()
		return
	}
	s.atmosphere.Weather = w
	snap := s.atmosphere
	s.mu.Unlock()

	s.publish(event.TopicAtmosphereChanged, snap)
}

// SetWind updates wind speed and direction. Speed is clamped at zero;
// the direction is stored normalized.
func (s *State) SetWind(speed float64, direction geom.Vec3) {
	if speed < 0 {
		speed = 0
	}

	s.mu.Lock()
	s.atmosphere.WindSpeed = speed
	if dir := direction.Normalized(); dir.Length() > 0 {
		s.atmosphere.WindDirection = dir
	}
	snap := s.atmosphere
	s.mu.Unlock()

	s.publish(event.TopicAtmosphereChanged, snap)
}

// Atmosphere returns the current ambient conditions.
func (s *State) Atmosphere() Atmosphere {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.atmosphere
}
