package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"

	"github.com/lixenwraith/wall-blaster/parameter"
)

// HitSound returns a short impact thump, variant selects the pitch
func HitSound(variant int) func(beep.SampleRate) beep.Streamer {
	freq := 90.0 + 35.0*float64(variant)
	return func(rate beep.SampleRate) beep.Streamer {
		d := parameter.AudioHitDuration
		body := NewEnvelope(NewSweep(freq*1.6, freq, d, WaveSine, rate), d, 2*time.Millisecond, d*3/4, rate)
		crack := NewEnvelope(NewOscillator(0, d/3, WaveNoise, rate), d/3, time.Millisecond, d/4, rate)
		mix := beep.Mix(newVolume(body, 0.8), newVolume(crack, 0.35))
		return newVolume(beep.Take(rate.N(d), mix), parameter.AudioHitVolume)
	}
}

// LaunchSound returns a rising whoosh, left is pitched lower than right
func LaunchSound(left bool) func(beep.SampleRate) beep.Streamer {
	from, to := 220.0, 880.0
	if left {
		from, to = 180.0, 660.0
	}
	return func(rate beep.SampleRate) beep.Streamer {
		d := parameter.AudioLaunchDuration
		tone := NewEnvelope(NewSweep(from, to, d, WaveSaw, rate), d, 10*time.Millisecond, d/2, rate)
		air := NewEnvelope(NewOscillator(0, d, WaveNoise, rate), d, 20*time.Millisecond, d/2, rate)
		mix := beep.Mix(newVolume(tone, 0.4), newVolume(air, 0.25))
		return newVolume(beep.Take(rate.N(d), mix), parameter.AudioLaunchVolume)
	}
}

// MusicSound returns the endless background beat
func MusicSound() func(beep.SampleRate) beep.Streamer {
	return func(rate beep.SampleRate) beep.Streamer {
		return newVolume(NewSynthwaveGenerator(rate), parameter.AudioMusicVolume)
	}
}

// SynthwaveGenerator generates a rhythmic synthwave beat that never ends
type SynthwaveGenerator struct {
	sr      beep.SampleRate
	pos     int
	samples int
}

// NewSynthwaveGenerator creates a synthwave beat generator
func NewSynthwaveGenerator(sr beep.SampleRate) *SynthwaveGenerator {
	return &SynthwaveGenerator{
		sr:      sr,
		samples: sr.N(time.Millisecond * 500), // 120 BPM
	}
}

func (g *SynthwaveGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	kickLen := g.sr.N(time.Millisecond * 100)
	bar := g.samples * 4
	for i := range samples {
		beatPos := g.pos % g.samples
		t := float64(beatPos) / float64(g.sr)

		// Kick drum on every beat
		kick := 0.0
		if beatPos < kickLen {
			kickEnv := 1.0 - float64(beatPos)/float64(kickLen)
			kickFreq := 60 * (1 + 2*kickEnv)
			kick = 0.4 * kickEnv * math.Sin(2*math.Pi*kickFreq*t)
		}

		// Bass walks A-A-F-G per bar
		root := 110.0
		switch (g.pos % bar) / g.samples {
		case 2:
			root = 87.31
		case 3:
			root = 98.0
		}
		abs := float64(g.pos) / float64(g.sr)
		bass := 0.15 * math.Sin(2*math.Pi*root*abs)

		sample := kick + bass
		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *SynthwaveGenerator) Err() error {
	return nil
}

// Voices is the fixed set of handles the game plays
type Voices struct {
	Hits        []Sound
	LaunchLeft  Sound
	LaunchRight Sound
	Music       Sound
}

// NewVoices builds the game's voices on m
func NewVoices(m *Manager) Voices {
	hits := make([]Sound, parameter.AudioHitPoolSize)
	for i := range hits {
		hits[i] = m.NewVoice("hit", HitSound(i))
	}
	return Voices{
		Hits:        hits,
		LaunchLeft:  m.NewVoice("launch_left", LaunchSound(true)),
		LaunchRight: m.NewVoice("launch_right", LaunchSound(false)),
		Music:       m.NewVoice("music", MusicSound()),
	}
}
