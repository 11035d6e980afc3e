package render

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/wall-blaster/parameter"
	"github.com/lixenwraith/wall-blaster/vmath"
)

// Camera is a perspective pinhole over a character grid whose cells are twice as tall as wide
type Camera struct {
	Eye, Target vmath.Vec3
	FovDeg      float64
	Near, Far   float64

	view mgl64.Mat4
}

// DefaultCamera returns the fixed scene camera
func DefaultCamera() Camera {
	return NewCamera(
		vmath.V3(parameter.CameraX, parameter.CameraY, parameter.CameraZ),
		vmath.V3(parameter.CameraTargetX, parameter.CameraTargetY, parameter.CameraTargetZ),
		parameter.CameraFovDeg, parameter.CameraNear, parameter.CameraFar,
	)
}

// NewCamera creates a camera at eye looking at target with a vertical fov in degrees
func NewCamera(eye, target vmath.Vec3, fovDeg, near, far float64) Camera {
	return Camera{
		Eye:    eye,
		Target: target,
		FovDeg: fovDeg,
		Near:   near,
		Far:    far,
		view:   mgl64.LookAtV(eye, target, mgl64.Vec3{0, 1, 0}),
	}
}

// Viewport maps camera space onto a w x h cell grid
type Viewport struct {
	W, H int
	proj mgl64.Mat4
	// focal is cells per world unit at depth 1, vertically
	focal float64
}

// Viewport builds the projection for a grid, aspect corrects for 2:1 cells
func (c Camera) Viewport(w, h int) Viewport {
	aspect := float64(w) / (2 * float64(h))
	fovy := mgl64.DegToRad(c.FovDeg)
	return Viewport{
		W:     w,
		H:     h,
		proj:  mgl64.Perspective(fovy, aspect, c.Near, c.Far).Mul4(c.view),
		focal: float64(h) / (2 * math.Tan(fovy/2)),
	}
}

// Project returns the cell position and view depth of p
// ok is false for points behind the near plane
func (v Viewport) Project(p vmath.Vec3) (x, y, depth float64, ok bool) {
	clip := v.proj.Mul4x1(p.Vec4(1))
	w := clip.W()
	if w <= 0 {
		return 0, 0, 0, false
	}
	nx, ny := clip.X()/w, clip.Y()/w
	x = (nx + 1) / 2 * float64(v.W)
	y = (1 - ny) / 2 * float64(v.H)
	return x, y, w, true
}

// Extent returns the half size in cells of a world length at depth, horizontal is doubled
func (v Viewport) Extent(half, depth float64) (hx, hy float64) {
	hy = half * v.focal / depth
	return 2 * hy, hy
}
