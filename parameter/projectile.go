package parameter

// Projectile body
const (
	ProjectileMass   = 2.0
	ProjectileRadius = 0.8

	// ProjectileLaunchSpeed scales the unit launch direction
	ProjectileLaunchSpeed = 60.0

	// ProjectilePruneDistance is the distance from world origin past which a projectile is removed, exclusive
	ProjectilePruneDistance = 100.0

	// ProjectileHitSoundSpeed is the impact speed along normal above which a hit sound plays, exclusive
	ProjectileHitSoundSpeed = 2.0
)

// Launch origins per side, matches the camera-facing throw line
const (
	LaunchOriginRightX = 1.0
	LaunchOriginLeftX  = -1.0
	LaunchOriginY      = 1.0
	LaunchOriginZ      = 10.0
)

// Projectile colours per side, 0xRRGGBB
const (
	ProjectileColorRight = 0xff3333
	ProjectileColorLeft  = 0x3399ff
)
