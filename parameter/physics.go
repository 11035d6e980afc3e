package parameter

// World
const (
	PhysicsGravityY = -9.82

	// PhysicsFixedStep is the simulated seconds advanced per tick regardless of frame time
	PhysicsFixedStep = 1.0 / 60.0

	// PhysicsRestitution is the bounce factor applied to every contact
	PhysicsRestitution = 0.3

	// PhysicsSolverIterations is the contact resolution passes per step
	PhysicsSolverIterations = 4

	// PhysicsGroundDamping scales tangential velocity of bodies resting on the ground per contact
	PhysicsGroundDamping = 0.98

	// PhysicsPositionSlop is the penetration tolerated before positional correction
	PhysicsPositionSlop = 0.01

	// PhysicsPositionCorrection is the share of penetration removed per iteration
	PhysicsPositionCorrection = 0.6
)
