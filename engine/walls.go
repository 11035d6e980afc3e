package engine

import (
	"go.uber.org/zap"

	"github.com/lixenwraith/wall-blaster/parameter"
	"github.com/lixenwraith/wall-blaster/physics"
	"github.com/lixenwraith/wall-blaster/vmath"
)

// WallBlock is one cube of a formation, it lives for the whole session
type WallBlock struct {
	ID      Entity
	Body    *physics.Body
	Visual  Visual
	Texture string
}

// WallConfig shapes formation blocks
type WallConfig struct {
	BlockSize float64
	Spacing   float64
	Mass      float64
	Textures  []string
}

// DefaultWallConfig returns unit cubes with a 0.1 gap and the nine-texture palette
func DefaultWallConfig() WallConfig {
	return WallConfig{
		BlockSize: parameter.WallBlockSize,
		Spacing:   parameter.WallSpacing,
		Mass:      parameter.WallBlockMass,
		Textures:  parameter.WallTextures,
	}
}

// Walls builds and owns every wall block
type Walls struct {
	world  PhysicsWorld
	scene  Scene
	cfg    WallConfig
	blocks *Table[*WallBlock]
	logger *zap.Logger
}

// NewWalls creates an empty wall set
func NewWalls(world PhysicsWorld, scene Scene, cfg WallConfig, logger *zap.Logger) *Walls {
	return &Walls{
		world:  world,
		scene:  scene,
		cfg:    cfg,
		blocks: NewTable[*WallBlock](),
		logger: logger.With(zap.String("component", "walls")),
	}
}

// WallCellPosition returns the centre of cell (r, c) in a formation of cols columns
// centred on centerX, resting on y = 0 at depth zPos
func WallCellPosition(r, c, cols int, centerX, zPos, size, spacing float64) vmath.Vec3 {
	pitch := size + spacing
	width := float64(cols)*pitch - spacing
	x := centerX - width/2 + float64(c)*pitch + size/2
	y := size/2 + float64(r)*pitch
	return vmath.V3(x, y, zPos)
}

// BuildWallFormation creates rows x cols dynamic blocks centred on centerX at depth zPos
// Row r takes texture r mod len(palette)
func (w *Walls) BuildWallFormation(rows, cols int, centerX, zPos float64) []Entity {
	if rows <= 0 || cols <= 0 {
		return nil
	}

	half := w.cfg.BlockSize / 2
	ids := make([]Entity, 0, rows*cols)
	for r := 0; r < rows; r++ {
		texture := ""
		if n := len(w.cfg.Textures); n > 0 {
			texture = w.cfg.Textures[r%n]
		}
		for c := 0; c < cols; c++ {
			pos := WallCellPosition(r, c, cols, centerX, zPos, w.cfg.BlockSize, w.cfg.Spacing)
			body := physics.NewBody(w.cfg.Mass, physics.Box(vmath.V3(half, half, half)), pos)
			visual := w.scene.AddEntity(Mesh{Kind: MeshBox, Size: w.cfg.BlockSize, Texture: texture})
			syncVisual(visual, body)
			w.world.AddBody(body)

			id := w.blocks.Insert(func(id Entity) *WallBlock {
				return &WallBlock{ID: id, Body: body, Visual: visual, Texture: texture}
			})
			ids = append(ids, id)
		}
	}
	return ids
}

// BuildWallGrid builds one formation per offset and returns the number of blocks created
func (w *Walls) BuildWallGrid(offsets []float64, rows, cols int, zPos float64) int {
	created := 0
	for _, x := range offsets {
		created += len(w.BuildWallFormation(rows, cols, x, zPos))
	}
	w.logger.Info("wall grid built",
		zap.Int("formations", len(offsets)),
		zap.Int("blocks", created),
	)
	return created
}

// Sync copies every block body transform onto its visual
func (w *Walls) Sync() {
	w.blocks.Each(func(_ Entity, b *WallBlock) {
		syncVisual(b.Visual, b.Body)
	})
}

// Len returns the block count
func (w *Walls) Len() int {
	return w.blocks.Len()
}

// Get returns the block for id
func (w *Walls) Get(id Entity) (*WallBlock, bool) {
	return w.blocks.Get(id)
}

// Each visits blocks in creation order
func (w *Walls) Each(fn func(b *WallBlock)) {
	w.blocks.Each(func(_ Entity, b *WallBlock) { fn(b) })
}
