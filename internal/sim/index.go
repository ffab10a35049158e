package sim

import (
	"github.com/calderagame/caldera/internal/geom"
	"github.com/calderagame/caldera/internal/splash"
	"github.com/calderagame/caldera/internal/world"
)

// WorldIndex answers splash sphere queries from the world's registries.
// A real physics broadphase would be cheaper; registry scans are fine
// at the entity counts the world caps itself to.
type WorldIndex struct {
	world *world.State
}

func NewWorldIndex(w *world.State) *WorldIndex {
	return &WorldIndex{world: w}
}

func (i *WorldIndex) QuerySphere(center geom.Vec3, radius float64) []splash.Overlap {
	var out []splash.Overlap
	for _, e := range i.world.GetEnemiesInRange(center, radius) {
		out = append(out, splash.Overlap{EntityID: e.ID, Role: splash.RoleEnemy})
	}
	for _, o := range i.world.GetObjectsInRange(center, radius) {
		role := splash.RoleDecoration
		if o.Health != nil {
			role = splash.RoleDestructible
		}
		out = append(out, splash.Overlap{EntityID: o.ID, Role: role})
	}
	return out
}
