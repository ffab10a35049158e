package world

import (
	"math"

	"github.com/calderagame/caldera/internal/geom"
	"github.com/google/uuid"
)

const (
	baseAssetCount   = 15
	scatterMargin    = 5.0
	attemptsPerAsset = 3
)

// assetSpec is one entry of a style's scatter mix: how strongly the
// type weighs into the count, the band of the terrain's height span it
// may occupy, and its health when destructible (0 = indestructible).
type assetSpec struct {
	objType ObjectType
	weight  float64
	zoneMin float64
	zoneMax float64
	health  float64
}

// assetMixes maps a style preset to its scatter mix. The zone bounds
// are fractions of the generated height span: lava-flow floors at the
// bottom, ash peaks at the top.
var assetMixes = map[string][]assetSpec{
	"volcanic": {
		{objType: ObjectRock, weight: 1.0, zoneMin: 0.0, zoneMax: 0.7},
		{objType: ObjectTree, weight: 0.7, zoneMin: 0.05, zoneMax: 0.4, health: 40},
		{objType: ObjectCrystal, weight: 0.5, zoneMin: 0.3, zoneMax: 0.9, health: 20},
		{objType: ObjectRuins, weight: 0.2, zoneMin: 0.0, zoneMax: 0.3},
	},
	"ashen": {
		{objType: ObjectRock, weight: 1.2, zoneMin: 0.0, zoneMax: 0.8},
		{objType: ObjectTree, weight: 0.3, zoneMin: 0.0, zoneMax: 0.3, health: 40},
		{objType: ObjectCrystal, weight: 0.8, zoneMin: 0.4, zoneMax: 1.0, health: 20},
		{objType: ObjectRuins, weight: 0.4, zoneMin: 0.0, zoneMax: 0.4},
	},
}

// ScatterAssets populates the object registry from the generated
// terrain: per-type counts scale with map area, the type's density
// weight, and the caller's density multiplier; placement rejection-
// samples positions until the terrain height falls inside the type's
// zone. Uses the terrain RNG, so for a fixed seed, style, and density
// the layout is identical every run. Unknown styles fall back to the
// volcanic mix; non-positive density multipliers clamp to 1. Returns
// how many objects were placed, zero when no terrain exists yet.
func (s *State) ScatterAssets(style string, density float64) int {
	if density <= 0 {
		density = 1
	}
	mix, ok := assetMixes[style]
	if !ok {
		mix = assetMixes["volcanic"]
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.terrain == nil {
		return 0
	}

	minH, maxH := s.terrain.heightSpan()
	span := maxH - minH
	half := float64(s.terrain.Size)*s.terrain.Scale/2 - scatterMargin
	if half <= 0 || span <= 0 {
		return 0
	}

	areaFactor := (float64(s.terrain.Size) * s.terrain.Scale) *
		(float64(s.terrain.Size) * s.terrain.Scale) / 10000

	placed := 0
	for _, spec := range mix {
		count := int(float64(baseAssetCount) * density * areaFactor * spec.weight)
		if count < 1 {
			count = 1
		}

		n := 0
		for attempt := 0; n < count && attempt < count*attemptsPerAsset; attempt++ {
			x := -half + s.rng.Float64()*2*half
			z := -half + s.rng.Float64()*2*half

			h := s.terrain.heightAt(x, z)
			frac := (h - minH) / span
			if frac < spec.zoneMin || frac > spec.zoneMax {
				continue
			}

			o := &Object{
				ID:       uuid.New().String(),
				Type:     spec.objType,
				Position: geom.Vec3{X: x, Y: h, Z: z},
				Rotation: s.rng.Float64() * 2 * math.Pi,
				Scale:    0.8 + s.rng.Float64()*0.4,
			}
			if spec.health > 0 {
				hp := spec.health
				o.Health = &hp
			}
			s.objects[o.ID] = o
			n++
		}
		placed += n
	}
	return placed
}

func (t *Terrain) heightSpan() (min, max float64) {
	min, max = math.Inf(1), math.Inf(-1)
	for _, h := range t.Heights {
		if h < min {
			min = h
		}
		if h > max {
			max = h
		}
	}
	return min, max
}
