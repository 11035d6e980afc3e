package parameter

// Landmark indices in the body-tracking model's numbering
const (
	LandmarkLeftWrist  = 15
	LandmarkRightWrist = 16
)

// Launch gesture gates, landmark space is normalized [0,1] so speeds are screen-widths per second
const (
	// GestureLaunchSpeed is the minimum wrist speed, exclusive
	GestureLaunchSpeed = 1.8

	// GestureLaunchMinYDelta is the minimum vertical travel between two samples, exclusive
	GestureLaunchMinYDelta = 0.2

	// GestureShakeSpeed is the minimum wrist speed for the secondary shake, exclusive
	GestureShakeSpeed = 2.5

	// GestureShakeVY is the upward velocity bound for the shake; landmark y grows downward
	GestureShakeVY = -2.5
)

// Launch direction shaping, normalized after assembly
const (
	// GestureUpLift is the Y component for an upward swing
	GestureUpLift = 1.5

	// GestureDownLift is the Y component for a downward swing
	GestureDownLift = -0.2

	// GestureForward is the Z component, biases projectiles into the scene
	GestureForward = -1.0
)
