package vmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Vec3 is the world-space vector used by physics, engine and render
type Vec3 = mgl64.Vec3

// Quat is the world-space orientation
type Quat = mgl64.Quat

// V3 builds a vector from components
func V3(x, y, z float64) Vec3 {
	return Vec3{x, y, z}
}

// V3Normalize normalizes a 3D vector, zero vector stays zero
// mgl64 Normalize divides by zero length, this does not
func V3Normalize(v Vec3) Vec3 {
	mag := math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
	if mag == 0 {
		return Vec3{}
	}

	inv := 1.0 / mag
	return Vec3{v[0] * inv, v[1] * inv, v[2] * inv}
}

// V3Dist returns the distance between two points
func V3Dist(a, b Vec3) float64 {
	return a.Sub(b).Len()
}

// V3Clamp clamps each component into [min, max]
func V3Clamp(v, min, max Vec3) Vec3 {
	return Vec3{
		Clamp(v[0], min[0], max[0]),
		Clamp(v[1], min[1], max[1]),
		Clamp(v[2], min[2], max[2]),
	}
}

// V3IsFinite reports whether no component is NaN or Inf
func V3IsFinite(v Vec3) bool {
	for _, c := range v {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

// Clamp clamps a scalar into [min, max]
func Clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// QuatIdent is the identity orientation
func QuatIdent() Quat {
	return mgl64.QuatIdent()
}
