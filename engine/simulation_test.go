package engine

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/wall-blaster/parameter"
	"github.com/lixenwraith/wall-blaster/physics"
	"github.com/lixenwraith/wall-blaster/vmath"
)

type simFixture struct {
	sim         *Simulation
	world       *physics.World
	scene       *fakeScene
	walls       *Walls
	projectiles *ProjectileManager
	calls       []string
}

func newSimFixture(hits ...Sound) *simFixture {
	f := &simFixture{world: physics.NewWorld(), scene: newFakeScene()}
	f.scene.calls = &f.calls
	rw := recordingWorld{World: f.world, calls: &f.calls}

	f.walls = NewWalls(rw, f.scene, DefaultWallConfig(), nop())
	f.projectiles = NewProjectileManager(rw, f.scene, hits, testRNG(), DefaultProjectileConfig(), nop())
	f.sim = NewSimulation(rw, f.scene, f.walls, f.projectiles, parameter.PhysicsFixedStep, nop())
	return f
}

func TestTickBeforeStartIsNoop(t *testing.T) {
	f := newSimFixture()
	f.walls.BuildWallFormation(2, 2, 0, -5)

	f.sim.Tick(16 * time.Millisecond)
	assert.Empty(t, f.calls)
	assert.Equal(t, uint64(0), f.world.Steps())
	assert.Equal(t, uint64(0), f.sim.Stats().Ticks)
}

func TestStartOnlyOnce(t *testing.T) {
	f := newSimFixture()
	assert.False(t, f.sim.Started())
	assert.True(t, f.sim.Start())
	assert.False(t, f.sim.Start())
	assert.True(t, f.sim.Started())

	f.sim.Tick(16 * time.Millisecond)
	assert.Equal(t, uint64(1), f.world.Steps(), "second start does not add a loop")
}

func TestTickOrderStepThenRender(t *testing.T) {
	f := newSimFixture()
	f.sim.Start()
	f.sim.Tick(16 * time.Millisecond)
	f.sim.Tick(16 * time.Millisecond)
	assert.Equal(t, []string{"step", "render", "step", "render"}, f.calls)
}

func TestTickAdvancesFixedStep(t *testing.T) {
	f := newSimFixture()
	f.sim.Start()
	// Elapsed does not change how far physics moves
	f.sim.Tick(500 * time.Millisecond)
	f.sim.Tick(time.Millisecond)

	st := f.sim.Stats()
	assert.Equal(t, uint64(2), st.Ticks)
	assert.Equal(t, 501*time.Millisecond, st.WallTime)
	assert.InDelta(t, float64(2*time.Second/60), float64(st.SimTime), float64(time.Microsecond))
}

func TestTickSyncsVisualsAfterStep(t *testing.T) {
	f := newSimFixture()
	ids := f.walls.BuildWallFormation(1, 1, 0, -5)
	id := f.projectiles.Spawn(vmath.V3(1, 1, 10), vmath.V3(0, 0, -1), 0)
	f.sim.Start()
	f.sim.Tick(16 * time.Millisecond)

	b, _ := f.walls.Get(ids[0])
	assert.Equal(t, b.Body.Position, b.Visual.(*fakeVisual).pos)

	p, _ := f.projectiles.Get(id)
	pv := p.Visual.(*fakeVisual)
	assert.Equal(t, p.Body.Position, pv.pos)
	assert.Less(t, pv.pos[2], 10.0, "projectile moved")
}

func TestProjectileBeyondRangeRemovedOnNextTick(t *testing.T) {
	f := newSimFixture()
	f.sim.Start()
	id := f.projectiles.Spawn(vmath.V3(0, 0.9, -99.9), vmath.V3(0, 0, -1), 0)
	f.projectiles.PruneExpired()
	_, ok := f.projectiles.Get(id)
	require.True(t, ok, "still inside range at spawn")

	f.sim.Tick(16 * time.Millisecond)
	_, ok = f.projectiles.Get(id)
	assert.False(t, ok)
	assert.Equal(t, 0, sphereBodies(f.world))
	assert.Equal(t, 0, f.scene.count(MeshSphere))

	for i := 0; i < 10; i++ {
		f.sim.Tick(16 * time.Millisecond)
	}
	assert.Equal(t, 0, f.scene.count(MeshSphere), "never reappears")
	assert.Equal(t, 0, f.sim.Stats().Projectiles)
}

func TestRenderErrorDoesNotStopLoop(t *testing.T) {
	f := newSimFixture()
	f.scene.err = errors.New("terminal gone")
	f.sim.Start()

	for i := 0; i < 3; i++ {
		f.sim.Tick(16 * time.Millisecond)
	}
	assert.Equal(t, 3, f.scene.renders)
	assert.Equal(t, uint64(3), f.world.Steps())
}

func TestProjectileHitsWallAndPlaysSound(t *testing.T) {
	hit := &fakeSound{}
	f := newSimFixture(hit)
	f.walls.BuildWallFormation(1, 1, 0, -5)
	// Aimed straight at the block centre
	f.projectiles.Spawn(vmath.V3(0, 0.5, 0), vmath.V3(0, 0, -1), 0)
	f.sim.Start()

	for i := 0; i < 10; i++ {
		f.sim.Tick(16 * time.Millisecond)
	}
	require.GreaterOrEqual(t, hit.plays, 1)

	f.walls.Each(func(b *WallBlock) {
		assert.Less(t, b.Body.Velocity[2], 0.0, "block pushed into the scene")
	})

	st := f.sim.Stats()
	assert.Equal(t, 1, st.Walls)
}
