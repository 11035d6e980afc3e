package gesture

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/wall-blaster/vmath"
)

func TestFirstSampleOnlySeeds(t *testing.T) {
	tr := NewTracker(DefaultThresholds())
	_, ok := tr.OnSample(LimbRightWrist, 0.5, 0.5, 0)
	assert.False(t, ok)

	prev, set := tr.State(LimbRightWrist).Previous()
	require.True(t, set)
	assert.Equal(t, Sample{X: 0.5, Y: 0.5, TimestampMs: 0}, prev)

	_, set = tr.State(LimbLeftWrist).Previous()
	assert.False(t, set, "limbs are tracked independently")
}

// Scenario A: fast upward swing launches and shakes
func TestScenarioUpwardSwingLaunchesAndShakes(t *testing.T) {
	tr := NewTracker(DefaultThresholds())
	tr.OnSample(LimbRightWrist, 0.5, 0.5, 0)
	ev, ok := tr.OnSample(LimbRightWrist, 0.5, 0.1, 100)
	require.True(t, ok)

	assert.InDelta(t, 0, ev.VX, 1e-9)
	assert.InDelta(t, -4, ev.VY, 1e-9)
	assert.InDelta(t, 4, ev.Speed, 1e-9)
	assert.InDelta(t, 0.4, ev.YDelta, 1e-9)
	assert.True(t, ev.Shake)
	assert.Equal(t, LimbRightWrist, ev.Limb)
	assert.Equal(t, SideRight, ev.Side)

	want := vmath.V3Normalize(vmath.V3(0, 1.5, -1))
	assert.InDelta(t, want[0], ev.Direction[0], 1e-9)
	assert.InDelta(t, want[1], ev.Direction[1], 1e-9)
	assert.InDelta(t, want[2], ev.Direction[2], 1e-9)
}

// Scenario B: slow drift triggers nothing
func TestScenarioSlowDriftIgnored(t *testing.T) {
	tr := NewTracker(DefaultThresholds())
	tr.OnSample(LimbRightWrist, 0.5, 0.5, 0)
	_, ok := tr.OnSample(LimbRightWrist, 0.5, 0.45, 1000)
	assert.False(t, ok)
}

func TestLaunchSpeedBoundaryIsExclusive(t *testing.T) {
	// 0.9 over 0.5s is exactly 1.8
	st, _, _ := Step(LimbState{}, Sample{X: 0.5, Y: 0, TimestampMs: 0}, DefaultThresholds())
	_, _, ok := Step(st, Sample{X: 0.5, Y: 0.9, TimestampMs: 500}, DefaultThresholds())
	assert.False(t, ok)

	_, ev, ok := Step(st, Sample{X: 0.5, Y: 0.91, TimestampMs: 500}, DefaultThresholds())
	require.True(t, ok)
	assert.Greater(t, ev.Speed, 1.8)
}

func TestYDeltaBoundaryIsExclusive(t *testing.T) {
	st, _, _ := Step(LimbState{}, Sample{X: 0.5, Y: 0, TimestampMs: 0}, DefaultThresholds())
	_, _, ok := Step(st, Sample{X: 0.5, Y: 0.2, TimestampMs: 50}, DefaultThresholds())
	assert.False(t, ok, "speed 4 but yDelta exactly 0.2")
}

func TestHorizontalSwipeDoesNotLaunch(t *testing.T) {
	tr := NewTracker(DefaultThresholds())
	tr.OnSample(LimbLeftWrist, 0.1, 0.5, 0)
	_, ok := tr.OnSample(LimbLeftWrist, 0.9, 0.55, 100)
	assert.False(t, ok, "speed is high but vertical travel is small")
}

func TestDownwardSwingUsesDownLift(t *testing.T) {
	tr := NewTracker(DefaultThresholds())
	tr.OnSample(LimbLeftWrist, 0.5, 0.1, 0)
	ev, ok := tr.OnSample(LimbLeftWrist, 0.6, 0.5, 100)
	require.True(t, ok)

	assert.False(t, ev.Shake, "downward swing never shakes")
	assert.Equal(t, SideLeft, ev.Side)
	want := vmath.V3Normalize(vmath.V3(ev.VX, -0.2, -1))
	assert.InDelta(t, want[1], ev.Direction[1], 1e-9)
	assert.Less(t, ev.Direction[1], 0.0)
}

func TestUpwardLaunchWithoutShake(t *testing.T) {
	tr := NewTracker(DefaultThresholds())
	tr.OnSample(LimbRightWrist, 0.5, 0.6, 0)
	// vy = -0.3/0.125 = -2.4, above the shake bound
	ev, ok := tr.OnSample(LimbRightWrist, 0.5, 0.3, 125)
	require.True(t, ok)
	assert.False(t, ev.Shake)
	assert.Greater(t, ev.Direction[1], 0.0)
}

func TestNonPositiveDtDiscardedButRecorded(t *testing.T) {
	tr := NewTracker(DefaultThresholds())
	tr.OnSample(LimbRightWrist, 0.5, 0.5, 100)

	_, ok := tr.OnSample(LimbRightWrist, 0.5, 0.1, 100)
	assert.False(t, ok, "duplicate timestamp")
	prev, _ := tr.State(LimbRightWrist).Previous()
	assert.Equal(t, 0.1, prev.Y)

	_, ok = tr.OnSample(LimbRightWrist, 0.5, 0.9, 50)
	assert.False(t, ok, "out of order timestamp")
	prev, _ = tr.State(LimbRightWrist).Previous()
	assert.Equal(t, int64(50), prev.TimestampMs)

	// Velocity is computed against the recorded anomaly sample
	ev, ok := tr.OnSample(LimbRightWrist, 0.5, 0.5, 150)
	require.True(t, ok)
	assert.InDelta(t, -4, ev.VY, 1e-9)
}

func TestStateAlwaysOverwritten(t *testing.T) {
	tr := NewTracker(DefaultThresholds())
	tr.OnSample(LimbRightWrist, 0.5, 0.5, 0)
	_, ok := tr.OnSample(LimbRightWrist, 0.5, 0.1, 100)
	require.True(t, ok)

	prev, _ := tr.State(LimbRightWrist).Previous()
	assert.Equal(t, Sample{X: 0.5, Y: 0.1, TimestampMs: 100}, prev)

	// Holding still after a launch does not re-fire
	_, ok = tr.OnSample(LimbRightWrist, 0.5, 0.1, 200)
	assert.False(t, ok)
}

func TestResetReseeds(t *testing.T) {
	tr := NewTracker(DefaultThresholds())
	tr.OnSample(LimbRightWrist, 0.5, 0.5, 0)
	tr.Reset(LimbRightWrist)
	_, ok := tr.OnSample(LimbRightWrist, 0.5, 0.1, 100)
	assert.False(t, ok)
}

func TestUnknownLimbIgnored(t *testing.T) {
	tr := NewTracker(DefaultThresholds())
	_, ok := tr.OnSample(Limb(9), 0.5, 0.5, 0)
	assert.False(t, ok)
	assert.Equal(t, LimbState{}, tr.State(Limb(9)))
}

func TestClosedFormAndUnitDirection(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	th := DefaultThresholds()

	for i := 0; i < 5000; i++ {
		a := Sample{X: rng.Float64(), Y: rng.Float64(), TimestampMs: rng.Int64N(10_000)}
		b := Sample{X: rng.Float64(), Y: rng.Float64(), TimestampMs: a.TimestampMs + 1 + rng.Int64N(500)}

		st, _, _ := Step(LimbState{}, a, th)
		_, ev, ok := Step(st, b, th)

		dt := float64(b.TimestampMs-a.TimestampMs) / 1000
		vx := (b.X - a.X) / dt
		vy := (b.Y - a.Y) / dt
		speed := math.Hypot(vx, vy)
		yDelta := math.Abs(b.Y - a.Y)

		require.Equal(t, speed > 1.8 && yDelta > 0.2, ok, "sample pair %v %v", a, b)
		if !ok {
			continue
		}
		assert.Equal(t, speed, ev.Speed)
		assert.Equal(t, yDelta, ev.YDelta)
		assert.InDelta(t, 1.0, ev.Direction.Len(), 1e-9)
		assert.Equal(t, vy < -2.5 && speed > 2.5, ev.Shake)
		assert.Less(t, ev.Direction[2], 0.0, "always thrown into the scene")
		assert.Equal(t, vy < 0, ev.Direction[1] > 0)
	}
}
