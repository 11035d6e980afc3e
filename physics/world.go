// Package physics is the rigid-body world the simulation steps
// It covers what the game needs: gravity, axis-aligned boxes and spheres,
// a static ground plane, impulses and per-body collision handlers
// Bodies do not rotate
package physics

import (
	"sort"

	"github.com/lixenwraith/wall-blaster/parameter"
	"github.com/lixenwraith/wall-blaster/vmath"
)

// World owns bodies and advances them in fixed steps
// Not safe for concurrent use, the simulation loop is the only caller
type World struct {
	gravity     vmath.Vec3
	restitution float64
	iterations  int
	ground      bool

	bodies []*Body
	index  map[*Body]int

	// Scratch reused across steps
	order    []int
	contacts []manifold
	speeds   []float64

	steps uint64
}

// Option configures a World
type Option func(*World)

// WithGravity sets the gravity acceleration
func WithGravity(g vmath.Vec3) Option {
	return func(w *World) { w.gravity = g }
}

// WithRestitution sets the bounce factor for every contact
func WithRestitution(e float64) Option {
	return func(w *World) { w.restitution = e }
}

// WithIterations sets contact resolution passes per step
func WithIterations(n int) Option {
	return func(w *World) {
		if n > 0 {
			w.iterations = n
		}
	}
}

// WithGround enables or disables the static plane y = 0
func WithGround(enabled bool) Option {
	return func(w *World) { w.ground = enabled }
}

// NewWorld creates a world with earth-like gravity and a ground plane
func NewWorld(opts ...Option) *World {
	w := &World{
		gravity:     vmath.Vec3{0, parameter.PhysicsGravityY, 0},
		restitution: parameter.PhysicsRestitution,
		iterations:  parameter.PhysicsSolverIterations,
		ground:      true,
		index:       make(map[*Body]int),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// AddBody inserts a body, adding a body already in this world is a no-op
// A body owned by another world is moved
func (w *World) AddBody(b *Body) {
	if b.world == w {
		return
	}
	if b.world != nil {
		b.world.RemoveBody(b)
	}
	w.index[b] = len(w.bodies)
	w.bodies = append(w.bodies, b)
	b.world = w
}

// RemoveBody removes a body, returns false if it was not in this world
func (w *World) RemoveBody(b *Body) bool {
	i, ok := w.index[b]
	if !ok {
		return false
	}

	// Keep insertion order so stepping stays deterministic
	copy(w.bodies[i:], w.bodies[i+1:])
	w.bodies[len(w.bodies)-1] = nil
	w.bodies = w.bodies[:len(w.bodies)-1]
	delete(w.index, b)
	for j := i; j < len(w.bodies); j++ {
		w.index[w.bodies[j]] = j
	}
	b.world = nil
	return true
}

// Contains reports whether b is in this world
func (w *World) Contains(b *Body) bool {
	_, ok := w.index[b]
	return ok
}

// Len returns the body count
func (w *World) Len() int {
	return len(w.bodies)
}

// Bodies returns the bodies in insertion order, the slice must not be modified
func (w *World) Bodies() []*Body {
	return w.bodies
}

// Steps returns how many steps have run
func (w *World) Steps() uint64 {
	return w.steps
}

// Step advances the world by dt seconds
// Handlers run after integration and resolution complete, once per touching pair
func (w *World) Step(dt float64) {
	if dt <= 0 {
		return
	}
	w.steps++

	// Semi-implicit Euler
	g := w.gravity.Mul(dt)
	for _, b := range w.bodies {
		if !b.Dynamic() {
			continue
		}
		b.Velocity = b.Velocity.Add(g)
		b.Position = b.Position.Add(b.Velocity.Mul(dt))
	}

	w.contacts = w.contacts[:0]
	w.speeds = w.speeds[:0]
	for iter := 0; iter < w.iterations; iter++ {
		w.solve(iter == 0)
	}

	w.dispatch()
}

// solve runs one resolution pass, the first pass records contacts for dispatch
func (w *World) solve(record bool) {
	handle := func(m manifold) {
		if record {
			w.contacts = append(w.contacts, m)
			w.speeds = append(w.speeds, closingSpeed(m))
		}
		resolve(m, w.restitution, parameter.PhysicsPositionSlop, parameter.PhysicsPositionCorrection)
	}

	if w.ground {
		for _, b := range w.bodies {
			if !b.Dynamic() {
				continue
			}
			if m, ok := groundContact(b); ok {
				handle(m)
				b.Velocity[0] *= parameter.PhysicsGroundDamping
				b.Velocity[2] *= parameter.PhysicsGroundDamping
			}
		}
	}

	// Sweep and prune along X
	w.order = w.order[:0]
	for i := range w.bodies {
		w.order = append(w.order, i)
	}
	minX := func(i int) float64 {
		lo, _ := w.bodies[i].bounds()
		return lo[0]
	}
	sort.SliceStable(w.order, func(i, j int) bool {
		return minX(w.order[i]) < minX(w.order[j])
	})

	for i, ai := range w.order {
		a := w.bodies[ai]
		_, aHi := a.bounds()
		for _, bi := range w.order[i+1:] {
			b := w.bodies[bi]
			bLo, _ := b.bounds()
			if bLo[0] > aHi[0] {
				break
			}
			if !a.Dynamic() && !b.Dynamic() {
				continue
			}
			if !overlapYZ(a, b) {
				continue
			}
			if m, ok := collide(a, b); ok {
				handle(m)
			}
		}
	}
}

func overlapYZ(a, b *Body) bool {
	aLo, aHi := a.bounds()
	bLo, bHi := b.bounds()
	return aLo[1] <= bHi[1] && bLo[1] <= aHi[1] && aLo[2] <= bHi[2] && bLo[2] <= aHi[2]
}

// dispatch notifies both sides of every recorded contact
func (w *World) dispatch() {
	for i, m := range w.contacts {
		speed := w.speeds[i]
		if m.a == nil {
			if len(m.b.handlers) > 0 {
				m.b.notify(Contact{Normal: m.normal.Mul(-1), ImpactSpeed: speed, Ground: true})
			}
			continue
		}
		if len(m.a.handlers) > 0 {
			m.a.notify(Contact{Other: m.b, Normal: m.normal, ImpactSpeed: speed})
		}
		if len(m.b.handlers) > 0 {
			m.b.notify(Contact{Other: m.a, Normal: m.normal.Mul(-1), ImpactSpeed: speed})
		}
	}
}
