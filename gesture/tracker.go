// Package gesture turns per-limb landmark samples into launch and shake events
package gesture

import (
	"math"

	"github.com/lixenwraith/wall-blaster/parameter"
	"github.com/lixenwraith/wall-blaster/vmath"
)

// Limb identifies a tracked body part
type Limb uint8

const (
	LimbRightWrist Limb = iota
	LimbLeftWrist
	limbCount
)

// Limbs lists tracked limbs in processing order
var Limbs = [limbCount]Limb{LimbRightWrist, LimbLeftWrist}

func (l Limb) String() string {
	switch l {
	case LimbRightWrist:
		return "right_wrist"
	case LimbLeftWrist:
		return "left_wrist"
	default:
		return "unknown"
	}
}

// Side is the launch origin side for the limb
type Side int8

const (
	SideLeft  Side = -1
	SideRight Side = 1
)

// Side returns the launch origin side
func (l Limb) Side() Side {
	if l == LimbLeftWrist {
		return SideLeft
	}
	return SideRight
}

// Sample is one normalized landmark position, y grows downward
type Sample struct {
	X, Y        float64
	TimestampMs int64
}

// LimbState holds the previous sample for one limb
type LimbState struct {
	prev Sample
	set  bool
}

// Previous returns the stored sample and whether one exists
func (s LimbState) Previous() (Sample, bool) {
	return s.prev, s.set
}

// Thresholds gate launch and shake and shape the launch direction
type Thresholds struct {
	LaunchSpeed     float64
	LaunchMinYDelta float64
	ShakeSpeed      float64
	ShakeVY         float64
	UpLift          float64
	DownLift        float64
	Forward         float64
}

// DefaultThresholds returns the tuned gesture constants
func DefaultThresholds() Thresholds {
	return Thresholds{
		LaunchSpeed:     parameter.GestureLaunchSpeed,
		LaunchMinYDelta: parameter.GestureLaunchMinYDelta,
		ShakeSpeed:      parameter.GestureShakeSpeed,
		ShakeVY:         parameter.GestureShakeVY,
		UpLift:          parameter.GestureUpLift,
		DownLift:        parameter.GestureDownLift,
		Forward:         parameter.GestureForward,
	}
}

// Event is a recognized launch, Shake marks the stronger upward swing
type Event struct {
	Limb      Limb
	VX, VY    float64 // normalized units per second
	Speed     float64
	YDelta    float64
	Direction vmath.Vec3 // unit length
	Side      Side
	Shake     bool
}

// Step consumes one sample and returns the next state
// The first sample only seeds state; dt <= 0 replaces the previous sample without evaluating
// The returned state always holds s
func Step(state LimbState, s Sample, th Thresholds) (LimbState, Event, bool) {
	next := LimbState{prev: s, set: true}
	if !state.set {
		return next, Event{}, false
	}

	prev := state.prev
	dt := float64(s.TimestampMs-prev.TimestampMs) / 1000
	if dt <= 0 {
		return next, Event{}, false
	}

	vx := (s.X - prev.X) / dt
	vy := (s.Y - prev.Y) / dt
	speed := math.Hypot(vx, vy)
	yDelta := math.Abs(s.Y - prev.Y)

	if !(speed > th.LaunchSpeed && yDelta > th.LaunchMinYDelta) {
		return next, Event{}, false
	}

	lift := th.DownLift
	if vy < 0 {
		lift = th.UpLift
	}

	return next, Event{
		VX:        vx,
		VY:        vy,
		Speed:     speed,
		YDelta:    yDelta,
		Direction: vmath.V3Normalize(vmath.V3(vx, lift, th.Forward)),
		Shake:     vy < th.ShakeVY && speed > th.ShakeSpeed,
	}, true
}

// Tracker keeps one LimbState per tracked limb
type Tracker struct {
	th     Thresholds
	states [limbCount]LimbState
}

// NewTracker creates a tracker with the given thresholds
func NewTracker(th Thresholds) *Tracker {
	return &Tracker{th: th}
}

// OnSample feeds one sample for limb and returns an event if it fired
func (t *Tracker) OnSample(limb Limb, x, y float64, timestampMs int64) (Event, bool) {
	if limb >= limbCount {
		return Event{}, false
	}

	next, ev, ok := Step(t.states[limb], Sample{X: x, Y: y, TimestampMs: timestampMs}, t.th)
	t.states[limb] = next
	if !ok {
		return Event{}, false
	}
	ev.Limb = limb
	ev.Side = limb.Side()
	return ev, true
}

// State returns the current state for limb
func (t *Tracker) State(limb Limb) LimbState {
	if limb >= limbCount {
		return LimbState{}
	}
	return t.states[limb]
}

// Reset clears a limb so its next sample seeds again
func (t *Tracker) Reset(limb Limb) {
	if limb < limbCount {
		t.states[limb] = LimbState{}
	}
}

// Thresholds returns the active thresholds
func (t *Tracker) Thresholds() Thresholds {
	return t.th
}
