package world

import (
	"sort"

	"github.com/calderagame/caldera/internal/event"
	"github.com/calderagame/caldera/internal/geom"
	"github.com/google/uuid"
)

// ObjectType is the typed set of scatterable world objects.
type ObjectType string

const (
	ObjectRock    ObjectType = "rock"
	ObjectTree    ObjectType = "tree"
	ObjectCrystal ObjectType = "crystal"
	ObjectRuins   ObjectType = "ruins"
)

// Object is a placed world object. A nil Health means the object is
// indestructible; otherwise damage wears it down and reaching zero
// removes it.
type Object struct {
	ID          string     `json:"id"`
	Type        ObjectType `json:"type"`
	Position    geom.Vec3  `json:"position"`
	Rotation    float64    `json:"rotation"`
	Scale       float64    `json:"scale"`
	Collectable bool       `json:"collectable"`
	Health      *float64   `json:"health,omitempty"`
}

// ObjectDestroyedPayload reports a destructible object reaching zero
// health. Published exactly once per object.
type ObjectDestroyedPayload struct {
	ID       string     `json:"id"`
	Type     ObjectType `json:"type"`
	Position geom.Vec3  `json:"position"`
}

// ObjectSpec describes an object to place. A zero ID gets a generated
// one; a nil Health makes the object indestructible.
type ObjectSpec struct {
	ID          string
	Type        ObjectType
	Position    geom.Vec3
	Rotation    float64
	Scale       float64
	Collectable bool
	Health      *float64
}

// AddObject places a world object and returns its id.
func (s *State) AddObject(spec ObjectSpec) string {
	id := spec.ID
	if id == "" {
		id = uuid.New().String()
	}
	scale := spec.Scale
	if scale == 0 {
		scale = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	o := &Object{
		ID:          id,
		Type:        spec.Type,
		Position:    spec.Position,
		Rotation:    spec.Rotation,
		Scale:       scale,
		Collectable: spec.Collectable,
	}
	if spec.Health != nil {
		h := *spec.Health
		o.Health = &h
	}
	s.objects[id] = o
	return id
}

// RemoveObject drops an object without a destruction notification
// (collection, despawn).
func (s *State) RemoveObject(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.objects[id]; !ok {
		return false
	}
	delete(s.objects, id)
	return true
}

// DamageWorldObject applies damage to a destructible object. Objects
// without a health value are indestructible: the call returns false and
// mutates nothing. Reaching zero removes the object and publishes its
// destruction. Returns true when the object was mutated or destroyed.
func (s *State) DamageWorldObject(id string, damage float64) bool {
	if damage < 0 {
		damage = 0
	}

	s.mu.Lock()
	o, ok := s.objects[id]
	if !ok || o.Health == nil {
		s.mu.Unlock()
		return false
	}

	*o.Health -= damage
	if *o.Health > 0 {
		s.mu.Unlock()
		return true
	}

	*o.Health = 0
	destroyed := ObjectDestroyedPayload{ID: id, Type: o.Type, Position: o.Position}
	delete(s.objects, id)
	s.mu.Unlock()

	s.publish(event.TopicObjectDestroyed, destroyed)
	return true
}

// Object returns a copy of the object with the given id.
func (s *State) Object(id string) (Object, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.objects[id]
	if !ok {
		return Object{}, false
	}
	return copyObject(o), true
}

// ObjectCount returns the number of placed objects.
func (s *State) ObjectCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.objects)
}

// GetObjectsInRange returns copies of every object within radius of
// center, sorted ascending by distance.
func (s *State) GetObjectsInRange(center geom.Vec3, radius float64) []Object {
	s.mu.Lock()
	var out []Object
	for _, o := range s.objects {
		if o.Position.Dist(center) <= radius {
			out = append(out, copyObject(o))
		}
	}
	s.mu.Unlock()

	sort.Slice(out, func(i, j int) bool {
		return out[i].Position.Dist(center) < out[j].Position.Dist(center)
	})
	return out
}

func copyObject(o *Object) Object {
	cp := *o
	if o.Health != nil {
		h := *o.Health
		cp.Health = &h
	}
	return cp
}
