package world

import (
	"math/rand"
	"sync"

	"github.com/calderagame/caldera/internal/geom"
)

const (
	DefaultMaxEnemies  = 30
	DefaultGridSize    = 128
	DefaultTerrainScale = 2.0
)

// Publisher is the outbound notification surface the world writes to.
type Publisher interface {
	Publish(topic string, payload any)
}

// Config sizes the world at construction time.
type Config struct {
	MaxEnemies   int
	GridSize     int
	TerrainScale float64
}

func (c Config) withDefaults() Config {
	if c.MaxEnemies <= 0 {
		c.MaxEnemies = DefaultMaxEnemies
	}
	if c.GridSize <= 0 {
		c.GridSize = DefaultGridSize
	}
	if c.TerrainScale <= 0 {
		c.TerrainScale = DefaultTerrainScale
	}
	return c
}

// State is the single source of truth for world entities: the enemy
// registry, transient effects, destructible objects, audio zones,
// atmosphere, terrain and spawn points. Each registry owns its entries;
// nothing is shared by reference across containers.
type State struct {
	mu  sync.Mutex
	pub Publisher
	cfg Config
	rng *rand.Rand

	enemies map[string]*Enemy
	effects map[string]*Effect
	objects map[string]*Object

	audioZones []*AudioZone

	atmosphere Atmosphere

	terrain     *Terrain
	spawnPoints []geom.Vec3
}

// New creates an empty world. Terrain and spawn points appear once
// GenerateTerrain has run for the session.
func New(pub Publisher, cfg Config) *State {
	cfg = cfg.withDefaults()
	return &State{
		pub:     pub,
		cfg:     cfg,
		rng:     rand.New(rand.NewSource(1)),
		enemies: map[string]*Enemy{},
		effects: map[string]*Effect{},
		objects: map[string]*Object{},
		atmosphere: Atmosphere{
			TimeOfDay:     12,
			Weather:       WeatherClear,
			WindDirection: geom.Vec3{X: 1},
		},
	}
}

func (s *State) publish(topic string, payload any) {
	if s.pub == nil {
		return
	}
	s.pub.Publish(topic, payload)
}
