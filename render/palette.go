package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/wall-blaster/engine"
)

// textureColors maps wall texture keys to their dominant colour
var textureColors = map[string]int32{
	"lava":    0xcf4a10,
	"grass":   0x5a9e3a,
	"lava1":   0xe8801e,
	"diamond": 0x62d8e0,
	"tnt":     0xd0302a,
	"dirt":    0x7a5230,
	"blue":    0x3a5fcf,
	"brick":   0x9c4a3a,
	"stone":   0x8a8a8a,
}

const (
	fallbackColor = 0xb0b0b0
	groundColor   = 0x2e4a2a
	statusColor   = 0xd0d0d0
)

// TextureColor returns the colour drawn for a texture key
func TextureColor(texture string) tcell.Color {
	if c, ok := textureColors[texture]; ok {
		return tcell.NewHexColor(c)
	}
	return tcell.NewHexColor(fallbackColor)
}

// meshColor picks the base colour for a mesh
func meshColor(m engine.Mesh) tcell.Color {
	if m.Kind == engine.MeshSphere {
		return tcell.NewHexColor(int32(m.Color))
	}
	return TextureColor(m.Texture)
}

// shade darkens c with distance, near objects keep full brightness
func shade(c tcell.Color, depth float64) tcell.Color {
	f := 1.0
	if depth > 8 {
		f = 8 / depth
	}
	if f < 0.35 {
		f = 0.35
	}
	r, g, b := c.RGB()
	return tcell.NewRGBColor(int32(float64(r)*f), int32(float64(g)*f), int32(float64(b)*f))
}
