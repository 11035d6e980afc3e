package parameter

import "time"

// Game Loop Timing
const (
	// FrameUpdateInterval is the render signal cadence (~60 FPS)
	FrameUpdateInterval = 16 * time.Millisecond

	// FrameChannelSize buffers landmark frames between producers and the loop
	FrameChannelSize = 16

	// ControlChannelSize buffers user controls between the input pump and the loop
	ControlChannelSize = 4
)

// Camera placement in world space
const (
	CameraX       = 0.0
	CameraY       = 4.0
	CameraZ       = 12.0
	CameraTargetX = 0.0
	CameraTargetY = 2.0
	CameraTargetZ = -5.0
	CameraFovDeg  = 75.0
	CameraNear    = 0.1
	CameraFar     = 1000.0
)

// Landmark feed defaults
const (
	FeedAddr = "127.0.0.1:8765"
	FeedPath = "/landmarks"

	// FeedReadLimit caps a single feed message in bytes
	FeedReadLimit = 64 * 1024
)

// MetricsReportInterval is how often the session metrics are logged
const MetricsReportInterval = 10 * time.Second
