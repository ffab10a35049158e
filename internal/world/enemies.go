package world

import (
	"github.com/calderagame/caldera/internal/event"
	"github.com/calderagame/caldera/internal/geom"
	"github.com/google/uuid"
)

const (
	DefaultWaveSize    = 5
	defaultEnemyHealth = 30.0
)

// Enemy is one live hostile in the world.
type Enemy struct {
	ID        string    `json:"id"`
	Position  geom.Vec3 `json:"position"`
	Health    float64   `json:"health"`
	MaxHealth float64   `json:"maxHealth"`
}

func (e *Enemy) dead() bool {
	return e.Health <= 0
}

// EnemyDiedPayload carries the enemy's last known position; the enemy
// itself stays registered until RemoveEnemy.
type EnemyDiedPayload struct {
	ID       string    `json:"id"`
	Position geom.Vec3 `json:"position"`
}

// SpawnEnemyWave spawns up to count enemies at random spawn points and
// returns how many actually spawned. The registry is capacity-capped:
// at the enemy limit this is a no-op. Without generated terrain there
// are no spawn points, so nothing spawns either.
func (s *State) SpawnEnemyWave(count int) int {
	if count <= 0 {
		count = DefaultWaveSize
	}

	s.mu.Lock()
	room := s.cfg.MaxEnemies - len(s.enemies)
	if room <= 0 || len(s.spawnPoints) == 0 {
		s.mu.Unlock()
		return 0
	}
	if count > room {
		count = room
	}

	spawned := make([]*Enemy, 0, count)
	for range count {
		pos := s.spawnPoints[s.rng.Intn(len(s.spawnPoints))]
		e := &Enemy{
			ID:        uuid.New().String(),
			Position:  pos,
			Health:    defaultEnemyHealth,
			MaxHealth: defaultEnemyHealth,
		}
		s.enemies[e.ID] = e
		spawned = append(spawned, e)
	}
	s.mu.Unlock()

	for _, e := range spawned {
		s.publish(event.TopicEnemySpawned, *e)
	}
	return len(spawned)
}

// UpdateEnemyHealth sets an enemy's health, clamped at zero. Crossing
// into zero publishes a death notification with the enemy's last known
// position; the entry itself is only dropped by RemoveEnemy. Unknown
// ids are ignored.
func (s *State) UpdateEnemyHealth(id string, health float64) {
	s.mu.Lock()
	e, ok := s.enemies[id]
	if !ok {
		s.mu.Unlock()
		return
	}

	wasDead := e.dead()
	if health < 0 {
		health = 0
	}
	e.Health = health
	died := !wasDead && e.dead()
	pos := e.Position
	s.mu.Unlock()

	if died {
		s.publish(event.TopicEnemyDied, EnemyDiedPayload{ID: id, Position: pos})
	}
}

// DamageEnemy subtracts amount from an enemy's health through the same
// clamping path as UpdateEnemyHealth. It reports whether this call
// killed the enemy, so callers can credit the kill exactly once.
func (s *State) DamageEnemy(id string, amount float64) bool {
	if amount < 0 {
		amount = 0
	}

	s.mu.Lock()
	e, ok := s.enemies[id]
	if !ok || e.dead() {
		s.mu.Unlock()
		return false
	}

	e.Health -= amount
	if e.Health < 0 {
		e.Health = 0
	}
	died := e.dead()
	pos := e.Position
	s.mu.Unlock()

	if died {
		s.publish(event.TopicEnemyDied, EnemyDiedPayload{ID: id, Position: pos})
	}
	return died
}

// MoveEnemy updates an enemy's position. Unknown ids are ignored.
func (s *State) MoveEnemy(id string, pos geom.Vec3) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.enemies[id]; ok {
		e.Position = pos
	}
}

// RemoveEnemy drops an enemy from the registry.
func (s *State) RemoveEnemy(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.enemies[id]; !ok {
		return false
	}
	delete(s.enemies, id)
	return true
}

// Enemy returns a copy of the enemy with the given id.
func (s *State) Enemy(id string) (Enemy, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.enemies[id]
	if !ok {
		return Enemy{}, false
	}
	return *e, true
}

// EnemyCount returns how many enemies are registered, dead or alive.
func (s *State) EnemyCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.enemies)
}

// GetEnemiesInRange returns copies of every enemy within radius of
// center, in no particular order.
func (s *State) GetEnemiesInRange(center geom.Vec3, radius float64) []Enemy {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []Enemy
	for _, e := range s.enemies {
		if e.Position.Dist(center) <= radius {
			out = append(out, *e)
		}
	}
	return out
}
