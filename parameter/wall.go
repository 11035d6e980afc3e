package parameter

// Wall formation grid
const (
	WallRows      = 9
	WallCols      = 6
	WallBlockSize = 1.0
	WallSpacing   = 0.1
	WallBlockMass = 1.0
	WallZ         = -5.0
)

// WallOffsets are the formation center X positions, one formation each
var WallOffsets = []float64{-26.4, -19.8, -13.2, -6.6, 0, 6.6, 13.2, 19.8, 26.4}

// WallTextures is the row palette, indexed by row mod len
var WallTextures = []string{"lava", "grass", "lava1", "diamond", "tnt", "dirt", "blue", "brick", "stone"}
