package physics

import (
	"math"

	"github.com/lixenwraith/wall-blaster/vmath"
)

var up = vmath.Vec3{0, 1, 0}

// manifold is a single pair overlap, normal points from a to b
type manifold struct {
	a, b        *Body // a nil means ground
	normal      vmath.Vec3
	penetration float64
}

// collide dispatches to the narrowphase for the pair's shapes
func collide(a, b *Body) (manifold, bool) {
	switch {
	case a.Shape.Kind == ShapeSphere && b.Shape.Kind == ShapeSphere:
		return sphereSphere(a, b)
	case a.Shape.Kind == ShapeBox && b.Shape.Kind == ShapeBox:
		return boxBox(a, b)
	case a.Shape.Kind == ShapeSphere && b.Shape.Kind == ShapeBox:
		return sphereBox(a, b)
	default:
		m, ok := sphereBox(b, a)
		if !ok {
			return m, false
		}
		m.a, m.b = a, b
		m.normal = m.normal.Mul(-1)
		return m, true
	}
}

func sphereSphere(a, b *Body) (manifold, bool) {
	d := b.Position.Sub(a.Position)
	r := a.Shape.Radius + b.Shape.Radius
	distSq := d.Dot(d)
	if distSq >= r*r {
		return manifold{}, false
	}

	dist := math.Sqrt(distSq)
	n := up
	if dist > 0 {
		n = d.Mul(1 / dist)
	}
	return manifold{a: a, b: b, normal: n, penetration: r - dist}, true
}

// boxBox resolves along the axis of least overlap
func boxBox(a, b *Body) (manifold, bool) {
	d := b.Position.Sub(a.Position)
	ea, eb := a.Shape.HalfExtents, b.Shape.HalfExtents

	best := -1
	bestPen := math.MaxFloat64
	for axis := 0; axis < 3; axis++ {
		pen := ea[axis] + eb[axis] - math.Abs(d[axis])
		if pen <= 0 {
			return manifold{}, false
		}
		if pen < bestPen {
			bestPen, best = pen, axis
		}
	}

	var n vmath.Vec3
	if d[best] < 0 {
		n[best] = -1
	} else {
		n[best] = 1
	}
	return manifold{a: a, b: b, normal: n, penetration: bestPen}, true
}

// sphereBox uses the closest point on the box to the sphere centre
func sphereBox(s, box *Body) (manifold, bool) {
	lo, hi := box.bounds()
	closest := vmath.V3Clamp(s.Position, lo, hi)
	d := closest.Sub(s.Position)
	r := s.Shape.Radius
	distSq := d.Dot(d)
	if distSq > r*r {
		return manifold{}, false
	}

	if distSq > 0 {
		dist := math.Sqrt(distSq)
		return manifold{a: s, b: box, normal: d.Mul(1 / dist), penetration: r - dist}, true
	}

	// Centre inside the box, push out along the shallowest face
	rel := box.Position.Sub(s.Position)
	e := box.Shape.HalfExtents
	best := 0
	bestPen := math.MaxFloat64
	for axis := 0; axis < 3; axis++ {
		pen := e[axis] - math.Abs(rel[axis])
		if pen < bestPen {
			bestPen, best = pen, axis
		}
	}
	var n vmath.Vec3
	if rel[best] < 0 {
		n[best] = -1
	} else {
		n[best] = 1
	}
	return manifold{a: s, b: box, normal: n, penetration: bestPen + r}, true
}

// groundContact tests a body against the plane y = 0, normal points from ground up into the body
func groundContact(b *Body) (manifold, bool) {
	bottom := b.Position[1] - b.Shape.extent()[1]
	if bottom >= 0 {
		return manifold{}, false
	}
	return manifold{a: nil, b: b, normal: up, penetration: -bottom}, true
}

// closingSpeed is the relative velocity of a toward b along n, positive when approaching
func closingSpeed(m manifold) float64 {
	var va vmath.Vec3
	if m.a != nil {
		va = m.a.Velocity
	}
	return va.Sub(m.b.Velocity).Dot(m.normal)
}

// resolve applies positional correction and an elastic impulse scaled by restitution
// Same impulse scalar as a two-body elastic collision: j = (1+e)·vn / (1/mA + 1/mB)
func resolve(m manifold, restitution, slop, correction float64) {
	var invA float64
	if m.a != nil {
		invA = m.a.invMass
	}
	invB := m.b.invMass
	invSum := invA + invB
	if invSum == 0 {
		return
	}

	if pen := m.penetration - slop; pen > 0 {
		push := m.normal.Mul(pen * correction / invSum)
		if m.a != nil {
			m.a.Position = m.a.Position.Sub(push.Mul(invA))
		}
		m.b.Position = m.b.Position.Add(push.Mul(invB))
	}

	vn := closingSpeed(m)
	if vn <= 0 {
		return
	}

	j := (1 + restitution) * vn / invSum
	impulse := m.normal.Mul(j)
	if m.a != nil {
		m.a.Velocity = m.a.Velocity.Sub(impulse.Mul(invA))
	}
	m.b.Velocity = m.b.Velocity.Add(impulse.Mul(invB))
}
