package engine

import (
	"math/rand/v2"

	"go.uber.org/zap"

	"github.com/lixenwraith/wall-blaster/parameter"
	"github.com/lixenwraith/wall-blaster/vmath"
)

// Range is a half-open [Min, Max) interval
type Range struct {
	Min, Max float64
}

// sample draws uniformly from the range
func (r Range) sample(rng *rand.Rand) float64 {
	return r.Min + rng.Float64()*(r.Max-r.Min)
}

// ShakeConfig holds per-axis jolt ranges
type ShakeConfig struct {
	JoltX, JoltY, JoltZ Range
}

// DefaultShakeConfig returns the gentle quake ranges
func DefaultShakeConfig() ShakeConfig {
	return ShakeConfig{
		JoltX: Range{parameter.ShakeJoltXMin, parameter.ShakeJoltXMax},
		JoltY: Range{parameter.ShakeJoltYMin, parameter.ShakeJoltYMax},
		JoltZ: Range{parameter.ShakeJoltZMin, parameter.ShakeJoltZMax},
	}
}

// ShakeController jolts every dynamic wall block, callers gate how often
type ShakeController struct {
	walls  *Walls
	cfg    ShakeConfig
	rng    *rand.Rand
	logger *zap.Logger
}

// NewShakeController creates a controller over walls
func NewShakeController(walls *Walls, rng *rand.Rand, cfg ShakeConfig, logger *zap.Logger) *ShakeController {
	return &ShakeController{
		walls:  walls,
		cfg:    cfg,
		rng:    rng,
		logger: logger.With(zap.String("component", "shake")),
	}
}

// TriggerShake applies one random upward impulse to each block with mass, returns blocks jolted
func (s *ShakeController) TriggerShake() int {
	jolted := 0
	s.walls.Each(func(b *WallBlock) {
		if b.Body.Mass <= 0 {
			return
		}
		jolt := vmath.V3(
			s.cfg.JoltX.sample(s.rng),
			s.cfg.JoltY.sample(s.rng),
			s.cfg.JoltZ.sample(s.rng),
		)
		b.Body.ApplyImpulse(jolt)
		jolted++
	})
	s.logger.Debug("quake triggered", zap.Int("blocks", jolted))
	return jolted
}
