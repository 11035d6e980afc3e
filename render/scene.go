// Package render provides the scene collaborators: a tcell terminal view and a headless stand-in
package render

import (
	"fmt"
	"math"
	"sort"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/lixenwraith/wall-blaster/engine"
	"github.com/lixenwraith/wall-blaster/vmath"
)

const (
	blockRune  = '█'
	sphereRune = '●'
	groundRune = '─'
)

// visual is the scene-side proxy for one entity
type visual struct {
	mesh engine.Mesh
	pos  vmath.Vec3
	rot  vmath.Quat
	seq  uint64
}

func (v *visual) SetTransform(position vmath.Vec3, orientation vmath.Quat) {
	v.pos = position
	v.rot = orientation
}

// Position returns the last synced position
func (v *visual) Position() vmath.Vec3 {
	return v.pos
}

// TerminalScene draws visuals on a tcell screen, bottom row is the status line
type TerminalScene struct {
	screen  tcell.Screen
	camera  Camera
	visuals map[*visual]struct{}
	seq     uint64
	frames  uint64
	status  func() string
	logger  *zap.Logger

	// scratch reused across frames
	draw []drawItem
}

type drawItem struct {
	v     *visual
	x, y  float64
	depth float64
}

// NewTerminalScene creates a scene over an initialized screen
func NewTerminalScene(screen tcell.Screen, camera Camera, logger *zap.Logger) *TerminalScene {
	return &TerminalScene{
		screen:  screen,
		camera:  camera,
		visuals: make(map[*visual]struct{}),
		logger:  logger.With(zap.String("component", "terminal_scene")),
	}
}

// SetStatus installs a provider for extra status line text
func (s *TerminalScene) SetStatus(fn func() string) {
	s.status = fn
}

func (s *TerminalScene) AddEntity(mesh engine.Mesh) engine.Visual {
	s.seq++
	v := &visual{mesh: mesh, rot: vmath.QuatIdent(), seq: s.seq}
	s.visuals[v] = struct{}{}
	return v
}

func (s *TerminalScene) RemoveEntity(v engine.Visual) {
	if tv, ok := v.(*visual); ok {
		delete(s.visuals, tv)
	}
}

// Len returns the live visual count
func (s *TerminalScene) Len() int {
	return len(s.visuals)
}

// Render draws every visual far to near and shows the frame
func (s *TerminalScene) Render() error {
	w, h := s.screen.Size()
	if w <= 0 || h <= 1 {
		return fmt.Errorf("terminal too small: %dx%d", w, h)
	}
	viewH := h - 1
	vp := s.camera.Viewport(w, viewH)

	s.screen.Clear()
	s.drawGround(vp)

	s.draw = s.draw[:0]
	boxes, spheres := 0, 0
	for v := range s.visuals {
		if v.mesh.Kind == engine.MeshSphere {
			spheres++
		} else {
			boxes++
		}
		x, y, depth, ok := vp.Project(v.pos)
		if !ok || !vmath.V3IsFinite(v.pos) {
			continue
		}
		s.draw = append(s.draw, drawItem{v: v, x: x, y: y, depth: depth})
	}
	// Painter's order, ties broken by creation for a stable image
	sort.Slice(s.draw, func(i, j int) bool {
		if s.draw[i].depth != s.draw[j].depth {
			return s.draw[i].depth > s.draw[j].depth
		}
		return s.draw[i].v.seq < s.draw[j].v.seq
	})
	for _, it := range s.draw {
		s.drawItem(vp, it)
	}

	s.frames++
	line := fmt.Sprintf(" walls %d  projectiles %d  frame %d", boxes, spheres, s.frames)
	if s.status != nil {
		line += "  " + s.status()
	}
	s.drawText(0, h-1, line, tcell.StyleDefault.Foreground(tcell.NewHexColor(statusColor)))

	s.screen.Show()
	return nil
}

func (s *TerminalScene) drawGround(vp Viewport) {
	_, y, _, ok := vp.Project(vmath.V3(0, 0, s.camera.Target[2]))
	if !ok {
		return
	}
	row := int(y)
	if row < 0 || row >= vp.H {
		return
	}
	style := tcell.StyleDefault.Foreground(tcell.NewHexColor(groundColor))
	for x := 0; x < vp.W; x++ {
		s.screen.SetContent(x, row, groundRune, nil, style)
	}
}

func (s *TerminalScene) drawItem(vp Viewport, it drawItem) {
	style := tcell.StyleDefault.Foreground(shade(meshColor(it.v.mesh), it.depth))

	switch it.v.mesh.Kind {
	case engine.MeshSphere:
		rx, ry := vp.Extent(it.v.mesh.Size, it.depth)
		rx, ry = math.Max(rx, 0.5), math.Max(ry, 0.5)
		s.fill(vp, it.x-rx, it.y-ry, it.x+rx, it.y+ry, sphereRune, style, func(cx, cy float64) bool {
			dx, dy := (cx-it.x)/rx, (cy-it.y)/ry
			return dx*dx+dy*dy <= 1
		})
	default:
		hx, hy := vp.Extent(it.v.mesh.Size/2, it.depth)
		hx, hy = math.Max(hx, 0.5), math.Max(hy, 0.5)
		s.fill(vp, it.x-hx, it.y-hy, it.x+hx, it.y+hy, blockRune, style, nil)
	}
}

// fill paints cells whose centres fall in the rectangle and pass inside
func (s *TerminalScene) fill(vp Viewport, x0, y0, x1, y1 float64, r rune, style tcell.Style, inside func(cx, cy float64) bool) {
	minX := max(0, int(math.Floor(x0)))
	maxX := min(vp.W-1, int(math.Ceil(x1)))
	minY := max(0, int(math.Floor(y0)))
	maxY := min(vp.H-1, int(math.Ceil(y1)))

	for cy := minY; cy <= maxY; cy++ {
		for cx := minX; cx <= maxX; cx++ {
			fx, fy := float64(cx)+0.5, float64(cy)+0.5
			if fx < x0 || fx > x1 || fy < y0 || fy > y1 {
				continue
			}
			if inside != nil && !inside(fx, fy) {
				continue
			}
			s.screen.SetContent(cx, cy, r, nil, style)
		}
	}
}

func (s *TerminalScene) drawText(x, y int, text string, style tcell.Style) {
	w, _ := s.screen.Size()
	for _, r := range text {
		if x >= w {
			return
		}
		s.screen.SetContent(x, y, r, nil, style)
		x++
	}
}

// HeadlessScene tracks visuals without drawing, for replay and tests
type HeadlessScene struct {
	visuals map[*visual]struct{}
	seq     uint64
	renders uint64
}

// NewHeadlessScene creates an empty headless scene
func NewHeadlessScene() *HeadlessScene {
	return &HeadlessScene{visuals: make(map[*visual]struct{})}
}

func (s *HeadlessScene) AddEntity(mesh engine.Mesh) engine.Visual {
	s.seq++
	v := &visual{mesh: mesh, rot: vmath.QuatIdent(), seq: s.seq}
	s.visuals[v] = struct{}{}
	return v
}

func (s *HeadlessScene) RemoveEntity(v engine.Visual) {
	if hv, ok := v.(*visual); ok {
		delete(s.visuals, hv)
	}
}

func (s *HeadlessScene) Render() error {
	s.renders++
	return nil
}

// Len returns the live visual count
func (s *HeadlessScene) Len() int {
	return len(s.visuals)
}

// Count returns live visuals of one kind
func (s *HeadlessScene) Count(kind engine.MeshKind) int {
	n := 0
	for v := range s.visuals {
		if v.mesh.Kind == kind {
			n++
		}
	}
	return n
}

// Renders returns how many frames were rendered
func (s *HeadlessScene) Renders() uint64 {
	return s.renders
}
