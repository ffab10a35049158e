// Package splash resolves queued area-damage impacts against the
// physics collider index and the world's enemy registry.
package splash

import (
	"sync"

	"github.com/calderagame/caldera/internal/event"
	"github.com/calderagame/caldera/internal/geom"
	"github.com/google/uuid"
)

// Role tags the owning entity of a collider. Dispatch on it is
// exhaustive: anything that is not an enemy is skipped by resolution.
type Role uint8

const (
	RoleDecoration Role = iota
	RoleEnemy
	RoleDestructible
	RolePlayer
)

// Overlap is one collider returned by a sphere query, resolved to its
// owning entity.
type Overlap struct {
	EntityID string
	Role     Role
}

// ColliderIndex is the spatial-query capability the physics engine
// provides.
type ColliderIndex interface {
	QuerySphere(center geom.Vec3, radius float64) []Overlap
}

// EnemyDamager applies damage to a registered enemy and reports whether
// that application killed it. Satisfied by the world state container.
type EnemyDamager interface {
	DamageEnemy(id string, amount float64) bool
}

// KillCrediter receives credit for splash kills. Satisfied by the
// player state container.
type KillCrediter interface {
	AddKill(damageDealt float64)
}

// Publisher is the outbound notification surface.
type Publisher interface {
	Publish(topic string, payload any)
}

// Event is one recorded area-damage impact awaiting resolution. It is
// consumed exactly once per batch.
type Event struct {
	ID       string    `json:"id"`
	Position geom.Vec3 `json:"position"`
	Radius   float64   `json:"radius"`
	Damage   float64   `json:"damage"`
	SourceID string    `json:"sourceId"`
}

// Kill records one enemy killed during resolution.
type Kill struct {
	EventID string `json:"eventId"`
	EnemyID string `json:"enemyId"`
}

// Result summarizes one resolved batch.
type Result struct {
	Events int    `json:"events"`
	Hits   int    `json:"hits"`
	Kills  []Kill `json:"kills"`
}

// Resolver queues splash events between ticks and resolves them in one
// batch per tick.
type Resolver struct {
	mu      sync.Mutex
	pending []Event

	index   ColliderIndex
	enemies EnemyDamager

	credit     KillCrediter
	pub        Publisher
	onComplete func(Result)
}

// Opt configures a Resolver.
type Opt func(*Resolver)

// WithKillCredit routes kill bookkeeping to c.
func WithKillCredit(c KillCrediter) Opt {
	return func(r *Resolver) { r.credit = c }
}

// WithPublisher publishes a batch summary after every resolution.
func WithPublisher(pub Publisher) Opt {
	return func(r *Resolver) { r.pub = pub }
}

// WithCompletion installs a callback fired once per resolved batch.
func WithCompletion(fn func(Result)) Opt {
	return func(r *Resolver) { r.onComplete = fn }
}

func NewResolver(index ColliderIndex, enemies EnemyDamager, opts ...Opt) *Resolver {
	r := &Resolver{
		index:   index,
		enemies: enemies,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Enqueue records an impact for the next batch. A zero ID gets a
// generated one.
func (r *Resolver) Enqueue(ev Event) string {
	if ev.ID == "" {
		ev.ID = uuid.New().String()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.pending = append(r.pending, ev)
	return ev.ID
}

// Pending returns how many events await resolution.
func (r *Resolver) Pending() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.pending)
}

// ResolvePending processes every queued event and clears the queue
// unconditionally, zero-radius events and empty batches included. Each
// event deduplicates hits with its own visited set, so one enemy caught
// by two distinct events takes damage twice, but never twice from the
// same event. The source entity and anything not tagged as an enemy
// are excluded. The completion callback fires exactly once per batch.
func (r *Resolver) ResolvePending() Result {
	r.mu.Lock()
	batch := r.pending
	r.pending = nil
	r.mu.Unlock()

	res := Result{Events: len(batch)}
	for _, ev := range batch {
		res = r.resolve(ev, res)
	}

	if r.pub != nil {
		r.pub.Publish(event.TopicSplashResolved, res)
	}
	if r.onComplete != nil {
		r.onComplete(res)
	}
	return res
}

func (r *Resolver) resolve(ev Event, res Result) Result {
	if ev.Radius <= 0 {
		return res
	}

	// Colliders can overlap the sphere more than once (compound
	// bodies); the visited set is local to this event on purpose.
	visited := map[string]struct{}{}
	for _, hit := range r.index.QuerySphere(ev.Position, ev.Radius) {
		if hit.Role != RoleEnemy || hit.EntityID == ev.SourceID {
			continue
		}
		if _, seen := visited[hit.EntityID]; seen {
			continue
		}
		visited[hit.EntityID] = struct{}{}

		res.Hits++
		if r.enemies.DamageEnemy(hit.EntityID, ev.Damage) {
			res.Kills = append(res.Kills, Kill{EventID: ev.ID, EnemyID: hit.EntityID})
			if r.credit != nil {
				r.credit.AddKill(ev.Damage)
			}
		}
	}
	return res
}
