package physics

import (
	"github.com/lixenwraith/wall-blaster/vmath"
)

// ShapeKind selects the collision primitive
type ShapeKind uint8

const (
	ShapeSphere ShapeKind = iota
	ShapeBox
)

// Shape is a collision primitive centred on the body position
// Boxes are axis aligned, orientation does not rotate them
type Shape struct {
	Kind        ShapeKind
	Radius      float64    // Sphere
	HalfExtents vmath.Vec3 // Box
}

// Sphere returns a sphere shape
func Sphere(radius float64) Shape {
	return Shape{Kind: ShapeSphere, Radius: radius}
}

// Box returns an axis aligned box shape
func Box(halfExtents vmath.Vec3) Shape {
	return Shape{Kind: ShapeBox, HalfExtents: halfExtents}
}

// extent returns the half size along each axis
func (s Shape) extent() vmath.Vec3 {
	if s.Kind == ShapeSphere {
		return vmath.Vec3{s.Radius, s.Radius, s.Radius}
	}
	return s.HalfExtents
}

// Contact describes one collision delivered to a body's handlers
type Contact struct {
	// Other is the colliding body, nil for the ground plane
	Other *Body
	// Normal points from the receiving body toward the other body
	Normal vmath.Vec3
	// ImpactSpeed is the closing speed along the normal before resolution
	ImpactSpeed float64
	// Ground marks a contact with the static ground plane
	Ground bool
}

// CollisionHandler receives contacts after the step that produced them
type CollisionHandler func(Contact)

// Body is a rigid body owned by at most one World
type Body struct {
	Position    vmath.Vec3
	Orientation vmath.Quat
	Velocity    vmath.Vec3
	Mass        float64
	Shape       Shape

	invMass  float64
	handlers []CollisionHandler
	world    *World
}

// NewBody creates a body at pos, mass zero makes it static
func NewBody(mass float64, shape Shape, pos vmath.Vec3) *Body {
	b := &Body{
		Position:    pos,
		Orientation: vmath.QuatIdent(),
		Mass:        mass,
		Shape:       shape,
	}
	if mass > 0 {
		b.invMass = 1 / mass
	}
	return b
}

// Dynamic reports whether the body responds to forces
func (b *Body) Dynamic() bool {
	return b.invMass > 0
}

// InvMass returns 1/mass, zero for static bodies
func (b *Body) InvMass() float64 {
	return b.invMass
}

// ApplyImpulse changes velocity by impulse/mass, static bodies ignore it
func (b *Body) ApplyImpulse(impulse vmath.Vec3) {
	if b.invMass == 0 {
		return
	}
	b.Velocity = b.Velocity.Add(impulse.Mul(b.invMass))
}

// SubscribeCollision registers a handler for every contact this body takes part in
func (b *Body) SubscribeCollision(h CollisionHandler) {
	b.handlers = append(b.handlers, h)
}

// World returns the owning world or nil
func (b *Body) World() *World {
	return b.world
}

// DistanceFromOrigin returns |Position|
func (b *Body) DistanceFromOrigin() float64 {
	return b.Position.Len()
}

// bounds returns the AABB of the body
func (b *Body) bounds() (lo, hi vmath.Vec3) {
	e := b.Shape.extent()
	return b.Position.Sub(e), b.Position.Add(e)
}

func (b *Body) notify(c Contact) {
	for _, h := range b.handlers {
		h(c)
	}
}
