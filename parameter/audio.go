package parameter

import "time"

// Audio Hardware Settings
const (
	AudioSampleRate = 44100

	// AudioBufferDuration determines latency of the speaker
	AudioBufferDuration = 50 * time.Millisecond
)

// Voice volumes, linear amplitude
const (
	AudioHitVolume    = 0.5
	AudioLaunchVolume = 0.5
	AudioMusicVolume  = 0.2
)

// Voice durations
const (
	AudioHitDuration    = 180 * time.Millisecond
	AudioLaunchDuration = 260 * time.Millisecond
)

// AudioHitPoolSize is the number of distinct hit voices picked from at random
const AudioHitPoolSize = 2
