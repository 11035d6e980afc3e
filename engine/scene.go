package engine

import (
	"github.com/lixenwraith/wall-blaster/physics"
	"github.com/lixenwraith/wall-blaster/vmath"
)

// MeshKind selects the drawn primitive
type MeshKind uint8

const (
	MeshBox MeshKind = iota
	MeshSphere
)

// Color is 0xRRGGBB
type Color uint32

// Mesh describes what the scene draws for an entity
type Mesh struct {
	Kind    MeshKind
	Size    float64 // edge length for boxes, radius for spheres
	Texture string  // wall texture key, empty for projectiles
	Color   Color
}

// Visual is the scene's proxy for one entity, never authoritative
type Visual interface {
	SetTransform(position vmath.Vec3, orientation vmath.Quat)
}

// Scene is the rendering collaborator
type Scene interface {
	AddEntity(mesh Mesh) Visual
	RemoveEntity(v Visual)
	Render() error
}

// PhysicsWorld is the rigid-body collaborator
type PhysicsWorld interface {
	AddBody(b *physics.Body)
	RemoveBody(b *physics.Body) bool
	Step(dt float64)
}

// Sound is one audio handle
type Sound interface {
	Play()
	Stop()
	IsPlaying() bool
}

// syncVisual copies the authoritative body transform onto its proxy
func syncVisual(v Visual, b *physics.Body) {
	v.SetTransform(b.Position, b.Orientation)
}
