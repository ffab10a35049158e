package world

import (
	"testing"

	"github.com/calderagame/caldera/internal/event"
	"github.com/calderagame/caldera/internal/geom"
	"github.com/pixil98/go-testutil"
)

func TestSpawnEnemyWave(t *testing.T) {
	pub := &mockPublisher{}
	s := newTestWorld(pub)

	testutil.AssertEqual(t, "spawned", s.SpawnEnemyWave(5), 5)
	testutil.AssertEqual(t, "enemy count", s.EnemyCount(), 5)
	testutil.AssertEqual(t, "spawn events", pub.count(event.TopicEnemySpawned), 5)

	// Enemies land on spawn points.
	points := s.SpawnPoints()
	for _, e := range s.GetEnemiesInRange(geom.Vec3{}, 1000) {
		found := false
		for _, p := range points {
			if e.Position == p {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("enemy %s at %+v not on a spawn point", e.ID, e.Position)
		}
	}
}

func TestSpawnEnemyWaveCapacity(t *testing.T) {
	s := New(&mockPublisher{}, Config{MaxEnemies: 8})
	s.GenerateTerrain(7)

	testutil.AssertEqual(t, "first wave", s.SpawnEnemyWave(5), 5)
	// Only three slots left.
	testutil.AssertEqual(t, "partial wave", s.SpawnEnemyWave(5), 3)
	// At capacity: guarded no-op.
	testutil.AssertEqual(t, "full", s.SpawnEnemyWave(5), 0)
	testutil.AssertEqual(t, "enemy count", s.EnemyCount(), 8)
}

func TestSpawnEnemyWaveWithoutTerrain(t *testing.T) {
	s := New(&mockPublisher{}, Config{})
	testutil.AssertEqual(t, "no spawn points", s.SpawnEnemyWave(5), 0)
}

func TestUpdateEnemyHealth(t *testing.T) {
	pub := &mockPublisher{}
	s := newTestWorld(pub)
	s.SpawnEnemyWave(1)
	id := s.GetEnemiesInRange(geom.Vec3{}, 1000)[0].ID

	s.UpdateEnemyHealth(id, 12)
	e, _ := s.Enemy(id)
	testutil.AssertEqual(t, "health", e.Health, 12.0)
	testutil.AssertEqual(t, "death events", pub.count(event.TopicEnemyDied), 0)

	// Negative input clamps to zero and kills.
	s.UpdateEnemyHealth(id, -5)
	e, _ = s.Enemy(id)
	testutil.AssertEqual(t, "clamped health", e.Health, 0.0)
	testutil.AssertEqual(t, "death events", pub.count(event.TopicEnemyDied), 1)

	// Death is reported, not removal.
	testutil.AssertEqual(t, "still registered", s.EnemyCount(), 1)

	// Setting zero again does not re-report the death.
	s.UpdateEnemyHealth(id, 0)
	testutil.AssertEqual(t, "death events", pub.count(event.TopicEnemyDied), 1)

	// The payload carries the last known position.
	var died EnemyDiedPayload
	for i, topic := range pub.topics {
		if topic == event.TopicEnemyDied {
			died = pub.payloads[i].(EnemyDiedPayload)
		}
	}
	testutil.AssertEqual(t, "died id", died.ID, id)
	testutil.AssertEqual(t, "died position", died.Position, e.Position)
}

func TestUpdateEnemyHealthUnknownId(t *testing.T) {
	pub := &mockPublisher{}
	s := newTestWorld(pub)

	s.UpdateEnemyHealth("ghost", 0)
	testutil.AssertEqual(t, "death events", pub.count(event.TopicEnemyDied), 0)
}

func TestDamageEnemyReportsKillOnce(t *testing.T) {
	pub := &mockPublisher{}
	s := newTestWorld(pub)
	s.SpawnEnemyWave(1)
	id := s.GetEnemiesInRange(geom.Vec3{}, 1000)[0].ID

	testutil.AssertEqual(t, "wound", s.DamageEnemy(id, 29), false)
	testutil.AssertEqual(t, "kill", s.DamageEnemy(id, 10), true)
	testutil.AssertEqual(t, "corpse hit", s.DamageEnemy(id, 10), false)
	testutil.AssertEqual(t, "unknown id", s.DamageEnemy("ghost", 10), false)
	testutil.AssertEqual(t, "death events", pub.count(event.TopicEnemyDied), 1)
}

func TestRemoveEnemy(t *testing.T) {
	s := newTestWorld(&mockPublisher{})
	s.SpawnEnemyWave(1)
	id := s.GetEnemiesInRange(geom.Vec3{}, 1000)[0].ID

	testutil.AssertEqual(t, "remove", s.RemoveEnemy(id), true)
	testutil.AssertEqual(t, "remove again", s.RemoveEnemy(id), false)
	testutil.AssertEqual(t, "count", s.EnemyCount(), 0)
}

func TestGetEnemiesInRange(t *testing.T) {
	s := newTestWorld(&mockPublisher{})
	s.SpawnEnemyWave(3)

	ids := s.GetEnemiesInRange(geom.Vec3{}, 1000)
	testutil.AssertEqual(t, "all in huge radius", len(ids), 3)

	// Move one enemy next to the probe point.
	s.MoveEnemy(ids[0].ID, geom.Vec3{X: 1})
	near := s.GetEnemiesInRange(geom.Vec3{}, 2)
	testutil.AssertEqual(t, "near", len(near), 1)
	testutil.AssertEqual(t, "near id", near[0].ID, ids[0].ID)
}
