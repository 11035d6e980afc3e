package engine

import (
	"math/rand/v2"

	"go.uber.org/zap"

	"github.com/lixenwraith/wall-blaster/physics"
	"github.com/lixenwraith/wall-blaster/vmath"
)

type fakeVisual struct {
	mesh Mesh
	pos  vmath.Vec3
	rot  vmath.Quat
	sets int
}

func (v *fakeVisual) SetTransform(p vmath.Vec3, q vmath.Quat) {
	v.pos, v.rot = p, q
	v.sets++
}

type fakeScene struct {
	live    map[*fakeVisual]bool
	renders int
	err     error
	calls   *[]string
}

func newFakeScene() *fakeScene {
	return &fakeScene{live: make(map[*fakeVisual]bool)}
}

func (s *fakeScene) AddEntity(m Mesh) Visual {
	v := &fakeVisual{mesh: m}
	s.live[v] = true
	return v
}

func (s *fakeScene) RemoveEntity(v Visual) {
	delete(s.live, v.(*fakeVisual))
}

func (s *fakeScene) Render() error {
	s.renders++
	if s.calls != nil {
		*s.calls = append(*s.calls, "render")
	}
	return s.err
}

func (s *fakeScene) count(kind MeshKind) int {
	n := 0
	for v := range s.live {
		if v.mesh.Kind == kind {
			n++
		}
	}
	return n
}

// recordingWorld wraps a real world and logs steps
type recordingWorld struct {
	*physics.World
	calls *[]string
}

func (w recordingWorld) Step(dt float64) {
	*w.calls = append(*w.calls, "step")
	w.World.Step(dt)
}

type fakeSound struct {
	playing bool
	plays   int
	stops   int
	// order records "stop"/"play" in call order
	order []string
}

func (s *fakeSound) Play() {
	s.playing = true
	s.plays++
	s.order = append(s.order, "play")
}

func (s *fakeSound) Stop() {
	s.playing = false
	s.stops++
	s.order = append(s.order, "stop")
}

func (s *fakeSound) IsPlaying() bool { return s.playing }

func testRNG() *rand.Rand {
	return rand.New(rand.NewPCG(7, 11))
}

func nop() *zap.Logger { return zap.NewNop() }

// sphereBodies counts projectile bodies in the world
func sphereBodies(w *physics.World) int {
	n := 0
	for _, b := range w.Bodies() {
		if b.Shape.Kind == physics.ShapeSphere {
			n++
		}
	}
	return n
}
