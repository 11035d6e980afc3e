package engine

import (
	"math/rand/v2"

	"go.uber.org/zap"

	"github.com/lixenwraith/wall-blaster/parameter"
	"github.com/lixenwraith/wall-blaster/physics"
	"github.com/lixenwraith/wall-blaster/vmath"
)

// Projectile is a launched ball, it owns its body and visual
type Projectile struct {
	ID     Entity
	Body   *physics.Body
	Visual Visual
	Color  Color
}

// ProjectileConfig shapes projectiles and their lifecycle
type ProjectileConfig struct {
	Mass          float64
	Radius        float64
	LaunchSpeed   float64
	PruneDistance float64
	HitSoundSpeed float64
}

// DefaultProjectileConfig returns the contract values
func DefaultProjectileConfig() ProjectileConfig {
	return ProjectileConfig{
		Mass:          parameter.ProjectileMass,
		Radius:        parameter.ProjectileRadius,
		LaunchSpeed:   parameter.ProjectileLaunchSpeed,
		PruneDistance: parameter.ProjectilePruneDistance,
		HitSoundSpeed: parameter.ProjectileHitSoundSpeed,
	}
}

// ProjectileManager spawns, tracks and prunes projectiles and plays their hit sounds
type ProjectileManager struct {
	world  PhysicsWorld
	scene  Scene
	cfg    ProjectileConfig
	table  *Table[*Projectile]
	queue  *CollisionQueue
	hits   []Sound
	rng    *rand.Rand
	logger *zap.Logger

	spawned uint64
	pruned  uint64
}

// NewProjectileManager creates a manager, hits is the pool picked from on impact
func NewProjectileManager(world PhysicsWorld, scene Scene, hits []Sound, rng *rand.Rand, cfg ProjectileConfig, logger *zap.Logger) *ProjectileManager {
	return &ProjectileManager{
		world:  world,
		scene:  scene,
		cfg:    cfg,
		table:  NewTable[*Projectile](),
		queue:  NewCollisionQueue(),
		hits:   hits,
		rng:    rng,
		logger: logger.With(zap.String("component", "projectiles")),
	}
}

// Spawn launches a projectile from origin along the unit direction
func (m *ProjectileManager) Spawn(origin, direction vmath.Vec3, color Color) Entity {
	body := physics.NewBody(m.cfg.Mass, physics.Sphere(m.cfg.Radius), origin)
	body.Velocity = direction.Mul(m.cfg.LaunchSpeed)
	visual := m.scene.AddEntity(Mesh{Kind: MeshSphere, Size: m.cfg.Radius, Color: color})
	syncVisual(visual, body)

	id := m.table.Insert(func(id Entity) *Projectile {
		return &Projectile{ID: id, Body: body, Visual: visual, Color: color}
	})

	queue := m.queue
	body.SubscribeCollision(func(c physics.Contact) {
		queue.Push(CollisionEvent{Entity: id, ImpactSpeed: c.ImpactSpeed})
	})
	m.world.AddBody(body)
	m.spawned++

	m.logger.Debug("projectile spawned",
		zap.Uint64("id", uint64(id)),
		zap.Float64s("direction", direction[:]),
	)
	return id
}

// DrainCollisions consumes queued contacts and returns how many hit sounds played
// A hit above the impact threshold restarts one randomly chosen pool sound
func (m *ProjectileManager) DrainCollisions() int {
	played := 0
	for _, ev := range m.queue.Consume() {
		if ev.ImpactSpeed <= m.cfg.HitSoundSpeed || len(m.hits) == 0 {
			continue
		}
		if _, ok := m.table.Get(ev.Entity); !ok {
			continue
		}

		sound := m.hits[m.rng.IntN(len(m.hits))]
		if sound.IsPlaying() {
			sound.Stop()
		}
		sound.Play()
		played++
	}
	return played
}

// Sync copies every projectile body transform onto its visual
func (m *ProjectileManager) Sync() {
	m.table.Each(func(_ Entity, p *Projectile) {
		syncVisual(p.Visual, p.Body)
	})
}

// PruneExpired removes every projectile farther from the origin than the prune distance
func (m *ProjectileManager) PruneExpired() int {
	removed := 0
	for _, id := range m.table.IDs() {
		p, ok := m.table.Get(id)
		if !ok {
			continue
		}
		if p.Body.DistanceFromOrigin() > m.cfg.PruneDistance && m.Remove(id) {
			removed++
		}
	}
	if removed > 0 {
		m.logger.Debug("projectiles pruned", zap.Int("count", removed), zap.Int("active", m.table.Len()))
	}
	return removed
}

// Remove destroys a projectile's body, visual and entry together, absent ids are a no-op
func (m *ProjectileManager) Remove(id Entity) bool {
	p, ok := m.table.Remove(id)
	if !ok {
		return false
	}
	m.world.RemoveBody(p.Body)
	m.scene.RemoveEntity(p.Visual)
	m.pruned++
	return true
}

// Len returns the active projectile count
func (m *ProjectileManager) Len() int {
	return m.table.Len()
}

// Get returns the projectile for id
func (m *ProjectileManager) Get(id Entity) (*Projectile, bool) {
	return m.table.Get(id)
}

// Each visits active projectiles in spawn order
func (m *ProjectileManager) Each(fn func(p *Projectile)) {
	m.table.Each(func(_ Entity, p *Projectile) { fn(p) })
}

// Totals returns lifetime spawn and removal counts
func (m *ProjectileManager) Totals() (spawned, removed uint64) {
	return m.spawned, m.pruned
}
