package audio

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"go.uber.org/zap"
)

// Sound is one playable handle
type Sound interface {
	Play()
	Stop()
	IsPlaying() bool
}

// output is the device the mixer is played on
type output interface {
	Init(sr beep.SampleRate, bufferSize int) error
	Play(s beep.Streamer)
	Lock()
	Unlock()
	Close()
}

// speakerOutput plays through the system speaker
type speakerOutput struct{}

func (speakerOutput) Init(sr beep.SampleRate, bufferSize int) error {
	return speaker.Init(sr, bufferSize)
}
func (speakerOutput) Play(s beep.Streamer) { speaker.Play(s) }
func (speakerOutput) Lock()                { speaker.Lock() }
func (speakerOutput) Unlock()              { speaker.Unlock() }
func (speakerOutput) Close()               { speaker.Close() }

// Manager owns the speaker and the mixer all voices play into
// A manager that failed or was never initialized keeps working with silent voices
type Manager struct {
	mu          sync.Mutex
	out         output
	mixer       *beep.Mixer
	sampleRate  beep.SampleRate
	buffer      time.Duration
	volume      float64
	initialized bool
	logger      *zap.Logger
}

// NewManager creates a manager for the system speaker
func NewManager(sampleRate int, buffer time.Duration, volume float64, logger *zap.Logger) *Manager {
	return newManager(speakerOutput{}, sampleRate, buffer, volume, logger)
}

func newManager(out output, sampleRate int, buffer time.Duration, volume float64, logger *zap.Logger) *Manager {
	return &Manager{
		out:        out,
		mixer:      &beep.Mixer{},
		sampleRate: beep.SampleRate(sampleRate),
		buffer:     buffer,
		volume:     volume,
		logger:     logger.With(zap.String("component", "audio")),
	}
}

// Initialize opens the speaker, repeated calls are a no-op
// On error the manager stays silent and the error is only informational
func (m *Manager) Initialize() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return nil
	}

	if err := m.out.Init(m.sampleRate, m.sampleRate.N(m.buffer)); err != nil {
		m.logger.Warn("speaker unavailable, running silent", zap.Error(err))
		return err
	}

	m.out.Play(m.mixer)
	m.initialized = true
	m.logger.Info("speaker initialized", zap.Int("sample_rate", int(m.sampleRate)))
	return nil
}

// Active reports whether sound reaches the speaker
func (m *Manager) Active() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.initialized
}

// SampleRate returns the mixer rate
func (m *Manager) SampleRate() beep.SampleRate {
	return m.sampleRate
}

// Close stops every voice and releases the speaker
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return
	}

	m.out.Lock()
	m.mixer.Clear()
	m.out.Unlock()
	m.out.Close()
	m.initialized = false
}

// NewVoice creates a handle that plays a fresh stream from source on every Play
func (m *Manager) NewVoice(name string, source func(beep.SampleRate) beep.Streamer) *Voice {
	return &Voice{m: m, name: name, source: source}
}

func (m *Manager) add(s beep.Streamer) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return false
	}
	m.out.Lock()
	m.mixer.Add(newVolume(s, m.volume))
	m.out.Unlock()
	return true
}

func (m *Manager) halt(ctrl *beep.Ctrl) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return
	}
	m.out.Lock()
	// Nil streamer makes the mixer drop it on the next pull
	ctrl.Paused = true
	ctrl.Streamer = nil
	m.out.Unlock()
}

// Voice is one sound handle, Play while playing layers a second instance; callers stop first to restart
type Voice struct {
	m      *Manager
	name   string
	source func(beep.SampleRate) beep.Streamer

	mu      sync.Mutex
	ctrl    *beep.Ctrl
	gen     atomic.Uint64
	playing atomic.Bool
}

// Name returns the voice label
func (v *Voice) Name() string {
	return v.name
}

// Play starts the sound from the beginning
func (v *Voice) Play() {
	if !v.m.Active() {
		return
	}

	gen := v.gen.Add(1)
	stream := beep.Seq(v.source(v.m.sampleRate), beep.Callback(func() {
		// Runs on the speaker goroutine, atomics only
		if v.gen.Load() == gen {
			v.playing.Store(false)
		}
	}))
	ctrl := &beep.Ctrl{Streamer: stream}

	v.mu.Lock()
	v.ctrl = ctrl
	v.playing.Store(true)
	v.mu.Unlock()

	if !v.m.add(ctrl) {
		v.playing.Store(false)
	}
}

// Stop halts the current instance if any
func (v *Voice) Stop() {
	v.mu.Lock()
	ctrl := v.ctrl
	v.ctrl = nil
	v.gen.Add(1)
	v.playing.Store(false)
	v.mu.Unlock()

	if ctrl != nil {
		v.m.halt(ctrl)
	}
}

// IsPlaying reports whether the last Play is still sounding
func (v *Voice) IsPlaying() bool {
	return v.playing.Load()
}
