// Package game hosts a session: landmark frames drive launches, a frame ticker drives the simulation
package game

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lixenwraith/wall-blaster/config"
	"github.com/lixenwraith/wall-blaster/engine"
	"github.com/lixenwraith/wall-blaster/gesture"
	"github.com/lixenwraith/wall-blaster/landmark"
	"github.com/lixenwraith/wall-blaster/parameter"
	"github.com/lixenwraith/wall-blaster/physics"
	"github.com/lixenwraith/wall-blaster/render"
	"github.com/lixenwraith/wall-blaster/status"
	"github.com/lixenwraith/wall-blaster/vmath"
)

// Sounds is the set of handles a session plays
type Sounds struct {
	Hits        []engine.Sound
	LaunchLeft  engine.Sound
	LaunchRight engine.Sound
	Music       engine.Sound
}

// Game owns every piece of session state, all methods run on the Run goroutine
type Game struct {
	id     string
	logger *zap.Logger

	tracker     *gesture.Tracker
	world       *physics.World
	walls       *engine.Walls
	projectiles *engine.ProjectileManager
	shake       *engine.ShakeController
	sim         *engine.Simulation
	sounds      Sounds

	frameInterval time.Duration
	now           func() time.Time

	tracking bool
	launches uint64
	shakes   uint64
	frames   uint64

	metrics *status.Registry
	m       sessionMetrics
}

// sessionMetrics are cached registry pointers written from the loop
type sessionMetrics struct {
	tracking    *atomic.Bool
	frames      *atomic.Int64
	launches    *atomic.Int64
	shakes      *atomic.Int64
	ticks       *atomic.Int64
	projectiles *atomic.Int64
	simTime     *status.Float
}

func newSessionMetrics(r *status.Registry) sessionMetrics {
	return sessionMetrics{
		tracking:    r.Bools.Get("game.tracking"),
		frames:      r.Ints.Get("game.frames"),
		launches:    r.Ints.Get("game.launches"),
		shakes:      r.Ints.Get("game.shakes"),
		ticks:       r.Ints.Get("sim.ticks"),
		projectiles: r.Ints.Get("sim.projectiles"),
		simTime:     r.Floats.Get("sim.seconds"),
	}
}

// New validates cfg, builds the physics world and the wall grid on scene
// A nil metrics registry gets a private one
func New(cfg config.Config, scene engine.Scene, sounds Sounds, metrics *status.Registry, logger *zap.Logger) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	id := uuid.New().String()
	logger = logger.With(zap.String("session", id))

	world := physics.NewWorld(
		physics.WithGravity(vmath.V3(0, cfg.Physics.GravityY, 0)),
		physics.WithRestitution(cfg.Physics.Restitution),
		physics.WithIterations(cfg.Physics.SolverIterations),
		physics.WithGround(cfg.Physics.Ground),
	)

	seed := cfg.Shake.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	walls := engine.NewWalls(world, scene, engine.WallConfig{
		BlockSize: parameter.WallBlockSize,
		Spacing:   parameter.WallSpacing,
		Mass:      cfg.Wall.BlockMass,
		Textures:  cfg.Wall.Textures,
	}, logger)
	walls.BuildWallGrid(cfg.Wall.Offsets, cfg.Wall.Rows, cfg.Wall.Cols, cfg.Wall.Z)

	projectiles := engine.NewProjectileManager(world, scene, sounds.Hits, rng, engine.ProjectileConfig{
		Mass:          cfg.Projectile.Mass,
		Radius:        cfg.Projectile.Radius,
		LaunchSpeed:   cfg.Projectile.LaunchSpeed,
		PruneDistance: cfg.Projectile.PruneDistance,
		HitSoundSpeed: cfg.Projectile.HitSoundSpeed,
	}, logger)

	shake := engine.NewShakeController(walls, rng, engine.ShakeConfig{
		JoltX: engine.Range{Min: cfg.Shake.JoltX.Min, Max: cfg.Shake.JoltX.Max},
		JoltY: engine.Range{Min: cfg.Shake.JoltY.Min, Max: cfg.Shake.JoltY.Max},
		JoltZ: engine.Range{Min: cfg.Shake.JoltZ.Min, Max: cfg.Shake.JoltZ.Max},
	}, logger)

	if metrics == nil {
		metrics = status.NewRegistry()
	}
	metrics.Ints.Get("walls.blocks").Store(int64(walls.Len()))

	tracker := gesture.NewTracker(gesture.Thresholds{
		LaunchSpeed:     cfg.Gesture.LaunchSpeed,
		LaunchMinYDelta: cfg.Gesture.LaunchMinYDelta,
		ShakeSpeed:      cfg.Gesture.ShakeSpeed,
		ShakeVY:         cfg.Gesture.ShakeVY,
		UpLift:          cfg.Gesture.UpLift,
		DownLift:        cfg.Gesture.DownLift,
		Forward:         cfg.Gesture.Forward,
	})

	g := &Game{
		id:            id,
		logger:        logger.With(zap.String("component", "game")),
		tracker:       tracker,
		world:         world,
		walls:         walls,
		projectiles:   projectiles,
		shake:         shake,
		sim:           engine.NewSimulation(world, scene, walls, projectiles, cfg.Physics.FixedStep, logger),
		sounds:        sounds,
		frameInterval: cfg.Render.FrameInterval,
		now:           time.Now,
		metrics:       metrics,
		m:             newSessionMetrics(metrics),
	}
	return g, nil
}

// ID returns the session identifier
func (g *Game) ID() string {
	return g.id
}

// Walls returns the wall set
func (g *Game) Walls() *engine.Walls {
	return g.walls
}

// Projectiles returns the projectile manager
func (g *Game) Projectiles() *engine.ProjectileManager {
	return g.projectiles
}

// Simulation returns the loop
func (g *Game) Simulation() *engine.Simulation {
	return g.sim
}

// Tracking reports whether landmark frames are being consumed
func (g *Game) Tracking() bool {
	return g.tracking
}

// Start begins the loop, background music and tracking, later calls do nothing
func (g *Game) Start() bool {
	if !g.sim.Start() {
		return false
	}
	if g.sounds.Music != nil {
		g.sounds.Music.Play()
	}
	g.tracking = true
	g.m.tracking.Store(true)
	g.logger.Info("session started", zap.Int("walls", g.walls.Len()))
	return true
}

// wristIndex maps a tracked limb to its landmark index
func wristIndex(limb gesture.Limb) int {
	if limb == gesture.LimbLeftWrist {
		return landmark.LeftWrist
	}
	return landmark.RightWrist
}

// HandleFrame feeds both wrists to the tracker, right first, and launches on every event
// Frames before Start and frames without a body are ignored; returns launches fired
func (g *Game) HandleFrame(f landmark.Frame) int {
	if !g.tracking || f.Empty() {
		return 0
	}
	g.frames++
	g.m.frames.Add(1)

	fired := 0
	for _, limb := range gesture.Limbs {
		p, ok := f.Landmark(wristIndex(limb))
		if !ok {
			continue
		}
		ev, ok := g.tracker.OnSample(limb, p.X, p.Y, f.TimestampMs)
		if !ok {
			continue
		}
		g.launch(ev)
		fired++
	}
	return fired
}

func (g *Game) launch(ev gesture.Event) {
	if ev.Shake {
		g.shake.TriggerShake()
		g.shakes++
		g.m.shakes.Add(1)
	}

	origin := vmath.V3(parameter.LaunchOriginRightX, parameter.LaunchOriginY, parameter.LaunchOriginZ)
	color := engine.Color(parameter.ProjectileColorRight)
	sound := g.sounds.LaunchRight
	if ev.Side == gesture.SideLeft {
		origin[0] = parameter.LaunchOriginLeftX
		color = engine.Color(parameter.ProjectileColorLeft)
		sound = g.sounds.LaunchLeft
	}

	id := g.projectiles.Spawn(origin, ev.Direction, color)
	g.launches++
	g.m.launches.Add(1)

	if sound != nil {
		if sound.IsPlaying() {
			sound.Stop()
		}
		sound.Play()
	}

	g.logger.Debug("launch",
		zap.Stringer("limb", ev.Limb),
		zap.Uint64("projectile", uint64(id)),
		zap.Float64("speed", ev.Speed),
		zap.Bool("shake", ev.Shake),
	)
}

// Tick advances one frame
func (g *Game) Tick(elapsed time.Duration) {
	g.sim.Tick(elapsed)

	st := g.sim.Stats()
	g.m.ticks.Store(int64(st.Ticks))
	g.m.projectiles.Store(int64(st.Projectiles))
	g.m.simTime.Store(st.SimTime.Seconds())
}

// Metrics returns the registry the session writes to
func (g *Game) Metrics() *status.Registry {
	return g.metrics
}

// Status is the one-line summary shown under the scene
func (g *Game) Status() string {
	if !g.tracking {
		return "press enter to start, q to quit"
	}
	return fmt.Sprintf("launches %d  quakes %d", g.launches, g.shakes)
}

// Close stops the music
func (g *Game) Close() {
	if g.sounds.Music != nil {
		g.sounds.Music.Stop()
	}
	st := g.sim.Stats()
	spawned, removed := g.projectiles.Totals()
	g.logger.Info("session ended",
		zap.Uint64("ticks", st.Ticks),
		zap.Duration("sim_time", st.SimTime),
		zap.Uint64("frames", g.frames),
		zap.Uint64("launches", g.launches),
		zap.Uint64("shakes", g.shakes),
		zap.Uint64("spawned", spawned),
		zap.Uint64("removed", removed),
	)
}

// Run is the cooperative scheduler: ticks, frames and controls are handled one at a time
// Returns nil on quit or when ctx is done
func (g *Game) Run(ctx context.Context, frames <-chan landmark.Frame, controls <-chan render.Control) error {
	ticker := time.NewTicker(g.frameInterval)
	defer ticker.Stop()
	last := g.now()

	for {
		select {
		case <-ctx.Done():
			return nil

		case t := <-ticker.C:
			g.Tick(t.Sub(last))
			last = t

		case f, ok := <-frames:
			if !ok {
				frames = nil
				continue
			}
			g.HandleFrame(f)

		case c, ok := <-controls:
			if !ok {
				controls = nil
				continue
			}
			switch c {
			case render.ControlStart:
				g.Start()
			case render.ControlQuit:
				g.logger.Info("quit requested")
				return nil
			}
		}
	}
}
