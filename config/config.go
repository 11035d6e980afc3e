// Package config loads game tuning from YAML with environment overrides
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/wall-blaster/log"
	"github.com/lixenwraith/wall-blaster/parameter"
)

// ErrInvalidConfig wraps every validation failure
var ErrInvalidConfig = errors.New("invalid config")

// Environment overrides, applied after the file
const (
	EnvLogLevel     = "WALL_BLASTER_LOG_LEVEL"
	EnvAudioEnabled = "WALL_BLASTER_AUDIO_ENABLED"
	EnvFeedAddr     = "WALL_BLASTER_FEED_ADDR"
)

// Config is the full game configuration
type Config struct {
	Gesture    GestureConfig    `yaml:"gesture"`
	Projectile ProjectileConfig `yaml:"projectile"`
	Wall       WallConfig       `yaml:"wall"`
	Shake      ShakeConfig      `yaml:"shake"`
	Physics    PhysicsConfig    `yaml:"physics"`
	Feed       FeedConfig       `yaml:"feed"`
	Render     RenderConfig     `yaml:"render"`
	Audio      AudioConfig      `yaml:"audio"`
	Log        log.Config       `yaml:"log"`
}

// GestureConfig holds launch and shake gates
type GestureConfig struct {
	LaunchSpeed     float64 `yaml:"launch_speed"`
	LaunchMinYDelta float64 `yaml:"launch_min_y_delta"`
	ShakeSpeed      float64 `yaml:"shake_speed"`
	ShakeVY         float64 `yaml:"shake_vy"`
	UpLift          float64 `yaml:"up_lift"`
	DownLift        float64 `yaml:"down_lift"`
	Forward         float64 `yaml:"forward"`
}

// ProjectileConfig holds projectile body and lifecycle values
type ProjectileConfig struct {
	Mass          float64 `yaml:"mass"`
	Radius        float64 `yaml:"radius"`
	LaunchSpeed   float64 `yaml:"launch_speed"`
	PruneDistance float64 `yaml:"prune_distance"`
	HitSoundSpeed float64 `yaml:"hit_sound_speed"`
}

// WallConfig holds the formation grid
type WallConfig struct {
	Rows      int       `yaml:"rows"`
	Cols      int       `yaml:"cols"`
	Z         float64   `yaml:"z"`
	BlockMass float64   `yaml:"block_mass"`
	Offsets   []float64 `yaml:"offsets"`
	Textures  []string  `yaml:"textures"`
}

// Range is a half-open [Min, Max) interval
type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// ShakeConfig holds per-axis impulse ranges
type ShakeConfig struct {
	JoltX Range `yaml:"jolt_x"`
	JoltY Range `yaml:"jolt_y"`
	JoltZ Range `yaml:"jolt_z"`
	// Seed fixes the shake and hit-sound random source, zero seeds from the clock
	Seed uint64 `yaml:"seed"`
}

// PhysicsConfig holds world tuning
type PhysicsConfig struct {
	GravityY         float64 `yaml:"gravity_y"`
	FixedStep        float64 `yaml:"fixed_step"`
	Restitution      float64 `yaml:"restitution"`
	SolverIterations int     `yaml:"solver_iterations"`
	Ground           bool    `yaml:"ground"`
}

// FeedConfig holds the landmark WebSocket feed
type FeedConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
	Path    string `yaml:"path"`
	// Replay is a JSON-lines file replayed instead of, or alongside, the socket
	Replay string `yaml:"replay"`
}

// RenderConfig holds the frame signal and scene choice
type RenderConfig struct {
	FrameInterval time.Duration `yaml:"frame_interval"`
	Headless      bool          `yaml:"headless"`
	Mouse         bool          `yaml:"mouse"`
}

// AudioConfig holds speaker settings
type AudioConfig struct {
	Enabled    bool    `yaml:"enabled"`
	SampleRate int     `yaml:"sample_rate"`
	Volume     float64 `yaml:"volume"`
}

// Default returns the contract values
func Default() Config {
	return Config{
		Gesture: GestureConfig{
			LaunchSpeed:     parameter.GestureLaunchSpeed,
			LaunchMinYDelta: parameter.GestureLaunchMinYDelta,
			ShakeSpeed:      parameter.GestureShakeSpeed,
			ShakeVY:         parameter.GestureShakeVY,
			UpLift:          parameter.GestureUpLift,
			DownLift:        parameter.GestureDownLift,
			Forward:         parameter.GestureForward,
		},
		Projectile: ProjectileConfig{
			Mass:          parameter.ProjectileMass,
			Radius:        parameter.ProjectileRadius,
			LaunchSpeed:   parameter.ProjectileLaunchSpeed,
			PruneDistance: parameter.ProjectilePruneDistance,
			HitSoundSpeed: parameter.ProjectileHitSoundSpeed,
		},
		Wall: WallConfig{
			Rows:      parameter.WallRows,
			Cols:      parameter.WallCols,
			Z:         parameter.WallZ,
			BlockMass: parameter.WallBlockMass,
			Offsets:   append([]float64(nil), parameter.WallOffsets...),
			Textures:  append([]string(nil), parameter.WallTextures...),
		},
		Shake: ShakeConfig{
			JoltX: Range{parameter.ShakeJoltXMin, parameter.ShakeJoltXMax},
			JoltY: Range{parameter.ShakeJoltYMin, parameter.ShakeJoltYMax},
			JoltZ: Range{parameter.ShakeJoltZMin, parameter.ShakeJoltZMax},
		},
		Physics: PhysicsConfig{
			GravityY:         parameter.PhysicsGravityY,
			FixedStep:        parameter.PhysicsFixedStep,
			Restitution:      parameter.PhysicsRestitution,
			SolverIterations: parameter.PhysicsSolverIterations,
			Ground:           true,
		},
		Feed: FeedConfig{
			Enabled: true,
			Addr:    parameter.FeedAddr,
			Path:    parameter.FeedPath,
		},
		Render: RenderConfig{
			FrameInterval: parameter.FrameUpdateInterval,
			Mouse:         true,
		},
		Audio: AudioConfig{
			Enabled:    true,
			SampleRate: parameter.AudioSampleRate,
			Volume:     1.0,
		},
		Log: log.DefaultConfig(),
	}
}

// Load reads YAML from path over the defaults, then applies environment overrides
// An empty path yields defaults plus environment
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return cfg, fmt.Errorf("open config: %w", err)
		}
		defer f.Close()

		if err := Decode(f, &cfg); err != nil {
			return cfg, err
		}
	}

	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Decode overlays YAML from r onto cfg, unknown keys are rejected
func Decode(r io.Reader, cfg *Config) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("decode config: %w", err)
	}
	return nil
}

// ApplyEnv applies overrides found by lookup
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.Log.Level = v
	}
	if v, ok := lookup(EnvAudioEnabled); ok && v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q: %v", ErrInvalidConfig, EnvAudioEnabled, v, err)
		}
		c.Audio.Enabled = enabled
	}
	if v, ok := lookup(EnvFeedAddr); ok && v != "" {
		c.Feed.Addr = v
	}
	return nil
}

// Validate rejects values the simulation cannot run with
func (c *Config) Validate() error {
	switch {
	case c.Physics.FixedStep <= 0:
		return fmt.Errorf("%w: physics.fixed_step must be positive", ErrInvalidConfig)
	case c.Physics.SolverIterations < 1:
		return fmt.Errorf("%w: physics.solver_iterations must be at least 1", ErrInvalidConfig)
	case c.Projectile.PruneDistance <= 0:
		return fmt.Errorf("%w: projectile.prune_distance must be positive", ErrInvalidConfig)
	case c.Projectile.Mass <= 0 || c.Projectile.Radius <= 0:
		return fmt.Errorf("%w: projectile mass and radius must be positive", ErrInvalidConfig)
	case c.Wall.Rows < 0 || c.Wall.Cols < 0:
		return fmt.Errorf("%w: wall rows and cols must not be negative", ErrInvalidConfig)
	case len(c.Wall.Textures) == 0:
		return fmt.Errorf("%w: wall.textures must not be empty", ErrInvalidConfig)
	case c.Render.FrameInterval <= 0:
		return fmt.Errorf("%w: render.frame_interval must be positive", ErrInvalidConfig)
	}

	for name, r := range map[string]Range{"jolt_x": c.Shake.JoltX, "jolt_y": c.Shake.JoltY, "jolt_z": c.Shake.JoltZ} {
		if r.Max < r.Min {
			return fmt.Errorf("%w: shake.%s max below min", ErrInvalidConfig, name)
		}
	}

	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		return fmt.Errorf("%w: audio.volume must be within [0,1]", ErrInvalidConfig)
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}
