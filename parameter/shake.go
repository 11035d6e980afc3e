package parameter

// Shake impulse ranges, half-open [min, max)
const (
	ShakeJoltXMin = -0.4
	ShakeJoltXMax = 0.4
	ShakeJoltYMin = 1.0
	ShakeJoltYMax = 1.6
	ShakeJoltZMin = -0.4
	ShakeJoltZMax = 0.4
)
