package world

import (
	"math"
	"math/rand"

	"github.com/calderagame/caldera/internal/geom"
)

const (
	SpawnPointCount = 20
	spawnRingMin    = 50.0
	spawnRingMax    = 100.0

	coneHeight = 40.0
	coneRadius = 60.0
)

// Terrain is the generated heightmap: size*size samples laid out
// row-major, each cell covering scale world units.
type Terrain struct {
	Heights []float64 `json:"heights"`
	Size    int       `json:"size"`
	Scale   float64   `json:"scale"`
	Seed    int64     `json:"seed"`
}

// GenerateTerrain builds the session's heightmap and spawn-point ring.
// The result is fully determined by seed: the same seed always yields
// the same heights, spawn radii and subsequent wave placement.
func (s *State) GenerateTerrain(seed int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rng := rand.New(rand.NewSource(seed))
	s.rng = rng

	size := s.cfg.GridSize
	scale := s.cfg.TerrainScale
	t := &Terrain{
		Heights: make([]float64, size*size),
		Size:    size,
		Scale:   scale,
		Seed:    seed,
	}

	// Seeded phase offsets keep ridge placement deterministic while
	// still varying between maps.
	p1 := rng.Float64() * 2 * math.Pi
	p2 := rng.Float64() * 2 * math.Pi
	p3 := rng.Float64() * 2 * math.Pi

	half := float64(size) * scale / 2
	for iz := range size {
		for ix := range size {
			wx := float64(ix)*scale - half
			wz := float64(iz)*scale - half

			d := math.Hypot(wx, wz)
			cone := coneHeight * math.Exp(-(d/coneRadius)*(d/coneRadius))

			ridges := 6*math.Sin(wx*0.05+p1)*math.Cos(wz*0.05+p2) +
				2*math.Sin((wx+wz)*0.11+p3)

			t.Heights[iz*size+ix] = cone + ridges
		}
	}
	s.terrain = t

	// Ring of spawn points around the origin: evenly spaced angles,
	// per-point randomized radius, height snapped to the terrain.
	points := make([]geom.Vec3, 0, SpawnPointCount)
	for i := range SpawnPointCount {
		angle := 2 * math.Pi * float64(i) / SpawnPointCount
		radius := spawnRingMin + rng.Float64()*(spawnRingMax-spawnRingMin)
		x := math.Cos(angle) * radius
		z := math.Sin(angle) * radius
		points = append(points, geom.Vec3{X: x, Y: t.heightAt(x, z), Z: z})
	}
	s.spawnPoints = points
}

// GetHeightAtPosition samples the terrain height at a world position.
// Positions outside the generated grid, or lookups before any terrain
// exists, return zero.
func (s *State) GetHeightAtPosition(x, z float64) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.terrain == nil {
		return 0
	}
	return s.terrain.heightAt(x, z)
}

func (t *Terrain) heightAt(x, z float64) float64 {
	half := float64(t.Size) * t.Scale / 2
	ix := int(math.Floor((x + half) / t.Scale))
	iz := int(math.Floor((z + half) / t.Scale))

	if ix < 0 || ix >= t.Size || iz < 0 || iz >= t.Size {
		return 0
	}
	return t.Heights[iz*t.Size+ix]
}

// TerrainSnapshot returns a copy of the generated terrain, or false
// before generation.
func (s *State) TerrainSnapshot() (Terrain, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.terrain == nil {
		return Terrain{}, false
	}
	t := *s.terrain
	t.Heights = append([]float64(nil), s.terrain.Heights...)
	return t, true
}

// SpawnPoints returns a copy of the spawn-point ring.
func (s *State) SpawnPoints() []geom.Vec3 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]geom.Vec3(nil), s.spawnPoints...)
}
