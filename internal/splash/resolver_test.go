package splash

import (
	"testing"

	"github.com/calderagame/caldera/internal/geom"
	"github.com/pixil98/go-testutil"
)

// mockIndex answers sphere queries from a fixed set of entity positions.
type mockIndex struct {
	entities map[string]struct {
		pos  geom.Vec3
		role Role
	}
	// extra duplicate overlaps per entity, simulating compound bodies.
	duplicates int
}

func (m *mockIndex) add(id string, pos geom.Vec3, role Role) {
	if m.entities == nil {
		m.entities = map[string]struct {
			pos  geom.Vec3
			role Role
		}{}
	}
	m.entities[id] = struct {
		pos  geom.Vec3
		role Role
	}{pos, role}
}

func (m *mockIndex) QuerySphere(center geom.Vec3, radius float64) []Overlap {
	var out []Overlap
	for id, e := range m.entities {
		if e.pos.Dist(center) <= radius {
			out = append(out, Overlap{EntityID: id, Role: e.role})
			for range m.duplicates {
				out = append(out, Overlap{EntityID: id, Role: e.role})
			}
		}
	}
	return out
}

// mockEnemies tracks applied damage and kills at a fixed threshold.
type mockEnemies struct {
	health map[string]float64
	hits   map[string]int
}

func newMockEnemies(ids ...string) *mockEnemies {
	m := &mockEnemies{health: map[string]float64{}, hits: map[string]int{}}
	for _, id := range ids {
		m.health[id] = 30
	}
	return m
}

func (m *mockEnemies) DamageEnemy(id string, amount float64) bool {
	h, ok := m.health[id]
	if !ok || h <= 0 {
		return false
	}
	m.hits[id]++
	h -= amount
	m.health[id] = h
	return h <= 0
}

type mockCredit struct {
	kills int
}

func (m *mockCredit) AddKill(float64) { m.kills++ }

func TestResolveRadiusAndSourceExclusion(t *testing.T) {
	idx := &mockIndex{}
	idx.add("A", geom.Vec3{X: 2}, RoleEnemy)
	idx.add("B", geom.Vec3{X: 6}, RoleEnemy)
	idx.add("S", geom.Vec3{}, RoleEnemy)
	enemies := newMockEnemies("A", "B", "S")

	r := NewResolver(idx, enemies)
	r.Enqueue(Event{Position: geom.Vec3{}, Radius: 5, Damage: 10, SourceID: "S"})

	res := r.ResolvePending()

	// A is in range; B is too far; S is the source.
	testutil.AssertEqual(t, "hits", res.Hits, 1)
	testutil.AssertEqual(t, "A hit", enemies.hits["A"], 1)
	testutil.AssertEqual(t, "B untouched", enemies.hits["B"], 0)
	testutil.AssertEqual(t, "S untouched", enemies.hits["S"], 0)
}

func TestResolveSkipsNonEnemyRoles(t *testing.T) {
	idx := &mockIndex{}
	idx.add("enemy", geom.Vec3{X: 1}, RoleEnemy)
	idx.add("crate", geom.Vec3{X: 1}, RoleDestructible)
	idx.add("fern", geom.Vec3{X: 1}, RoleDecoration)
	idx.add("hero", geom.Vec3{X: 1}, RolePlayer)
	enemies := newMockEnemies("enemy")

	r := NewResolver(idx, enemies)
	r.Enqueue(Event{Radius: 5, Damage: 5})
	res := r.ResolvePending()

	testutil.AssertEqual(t, "hits", res.Hits, 1)
	testutil.AssertEqual(t, "enemy hit", enemies.hits["enemy"], 1)
}

func TestResolveDeduplicatesWithinEvent(t *testing.T) {
	idx := &mockIndex{duplicates: 2}
	idx.add("A", geom.Vec3{X: 1}, RoleEnemy)
	enemies := newMockEnemies("A")

	r := NewResolver(idx, enemies)
	r.Enqueue(Event{Radius: 5, Damage: 5})
	res := r.ResolvePending()

	// Three overlapping colliders, one credited hit.
	testutil.AssertEqual(t, "hits", res.Hits, 1)
	testutil.AssertEqual(t, "damage applications", enemies.hits["A"], 1)
}

func TestResolveDoesNotDeduplicateAcrossEvents(t *testing.T) {
	idx := &mockIndex{}
	idx.add("A", geom.Vec3{X: 1}, RoleEnemy)
	enemies := newMockEnemies("A")

	r := NewResolver(idx, enemies)
	r.Enqueue(Event{Radius: 5, Damage: 5})
	r.Enqueue(Event{Radius: 5, Damage: 5})
	res := r.ResolvePending()

	testutil.AssertEqual(t, "hits", res.Hits, 2)
	testutil.AssertEqual(t, "damage applications", enemies.hits["A"], 2)
}

func TestResolveKillCreditedOnce(t *testing.T) {
	idx := &mockIndex{}
	idx.add("A", geom.Vec3{X: 1}, RoleEnemy)
	enemies := newMockEnemies("A")
	credit := &mockCredit{}

	r := NewResolver(idx, enemies, WithKillCredit(credit))

	// First event wounds, second kills, third hits a corpse.
	r.Enqueue(Event{ID: "e1", Radius: 5, Damage: 20})
	r.Enqueue(Event{ID: "e2", Radius: 5, Damage: 20})
	r.Enqueue(Event{ID: "e3", Radius: 5, Damage: 20})
	res := r.ResolvePending()

	testutil.AssertEqual(t, "kills", len(res.Kills), 1)
	testutil.AssertEqual(t, "kill event", res.Kills[0].EventID, "e2")
	testutil.AssertEqual(t, "kill enemy", res.Kills[0].EnemyID, "A")
	testutil.AssertEqual(t, "credited kills", credit.kills, 1)
}

func TestResolveClearsQueueUnconditionally(t *testing.T) {
	idx := &mockIndex{}
	enemies := newMockEnemies()

	r := NewResolver(idx, enemies)

	// Zero-radius events are guarded no-ops but still consumed.
	r.Enqueue(Event{Radius: 0, Damage: 100})
	r.Enqueue(Event{Radius: -1, Damage: 100})
	testutil.AssertEqual(t, "pending", r.Pending(), 2)

	res := r.ResolvePending()
	testutil.AssertEqual(t, "events", res.Events, 2)
	testutil.AssertEqual(t, "hits", res.Hits, 0)
	testutil.AssertEqual(t, "pending after", r.Pending(), 0)
}

func TestResolveCompletionFiresOncePerBatch(t *testing.T) {
	idx := &mockIndex{}
	idx.add("A", geom.Vec3{X: 1}, RoleEnemy)
	enemies := newMockEnemies("A")

	var calls int
	r := NewResolver(idx, enemies, WithCompletion(func(Result) { calls++ }))

	r.Enqueue(Event{ID: "e1", Radius: 5, Damage: 1})
	r.Enqueue(Event{ID: "e2", Radius: 5, Damage: 1})
	r.ResolvePending()
	testutil.AssertEqual(t, "calls after two events", calls, 1)

	// An empty batch still completes.
	r.ResolvePending()
	testutil.AssertEqual(t, "calls after empty batch", calls, 2)
}

func TestEnqueueGeneratesId(t *testing.T) {
	r := NewResolver(&mockIndex{}, newMockEnemies())
	id := r.Enqueue(Event{Radius: 1})
	if id == "" {
		t.Error("expected a generated id")
	}
	testutil.AssertEqual(t, "explicit id kept", r.Enqueue(Event{ID: "boom"}), "boom")
}
