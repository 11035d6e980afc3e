package engine

import (
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// Stats is a snapshot of loop progress
type Stats struct {
	Ticks       uint64
	SimTime     time.Duration // fixed steps advanced
	WallTime    time.Duration // elapsed reported by the scheduler
	Walls       int
	Projectiles int
}

// Simulation advances physics and mirrors it to the scene once per frame signal
type Simulation struct {
	world       PhysicsWorld
	scene       Scene
	walls       *Walls
	projectiles *ProjectileManager
	step        float64
	logger      *zap.Logger

	started  atomic.Bool
	ticks    uint64
	simTime  float64
	wallTime time.Duration
}

// NewSimulation creates a stopped loop, step is the fixed physics step in seconds
func NewSimulation(world PhysicsWorld, scene Scene, walls *Walls, projectiles *ProjectileManager, step float64, logger *zap.Logger) *Simulation {
	return &Simulation{
		world:       world,
		scene:       scene,
		walls:       walls,
		projectiles: projectiles,
		step:        step,
		logger:      logger.With(zap.String("component", "simulation")),
	}
}

// Start enables ticking, only the first call has effect
func (s *Simulation) Start() bool {
	if !s.started.CompareAndSwap(false, true) {
		return false
	}
	s.logger.Info("simulation started", zap.Float64("step", s.step))
	return true
}

// Started reports whether Start has been called
func (s *Simulation) Started() bool {
	return s.started.Load()
}

// Tick runs one frame: step, collision feedback, wall sync, projectile sync and prune, render
// Physics always advances by the fixed step, elapsed is only accounted
func (s *Simulation) Tick(elapsed time.Duration) {
	if !s.started.Load() {
		return
	}

	s.world.Step(s.step)
	s.projectiles.DrainCollisions()

	s.walls.Sync()

	s.projectiles.Sync()
	s.projectiles.PruneExpired()

	if err := s.scene.Render(); err != nil {
		s.logger.Error("render failed", zap.Uint64("tick", s.ticks), zap.Error(err))
	}

	s.ticks++
	s.simTime += s.step
	if elapsed > 0 {
		s.wallTime += elapsed
	}
}

// Stats returns a snapshot
func (s *Simulation) Stats() Stats {
	return Stats{
		Ticks:       s.ticks,
		SimTime:     time.Duration(s.simTime * float64(time.Second)),
		WallTime:    s.wallTime,
		Walls:       s.walls.Len(),
		Projectiles: s.projectiles.Len(),
	}
}
