// Package log builds the zap logger shared by every component
package log

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config selects level, encoding and destination
type Config struct {
	Level    string `yaml:"level"`
	Encoding string `yaml:"encoding"` // json or console
	// Path is the output file, "stderr"/"stdout" are accepted, empty discards output
	Path string `yaml:"path"`
	// MaxSize rotates an existing log file larger than this many bytes at startup, 0 disables
	MaxSize int64 `yaml:"max_size"`
}

// DefaultMaxSize is the startup rotation threshold
const DefaultMaxSize = 10 * 1024 * 1024

// DefaultConfig writes JSON at info level to a file, the terminal belongs to the renderer
func DefaultConfig() Config {
	return Config{
		Level:    "info",
		Encoding: "json",
		Path:     filepath.Join("logs", "wall-blaster.log"),
		MaxSize:  DefaultMaxSize,
	}
}

// New builds a logger from config
func New(cfg Config) (*zap.Logger, error) {
	if cfg.Path == "" {
		return zap.NewNop(), nil
	}

	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	encoding := cfg.Encoding
	if encoding == "" {
		encoding = "json"
	}

	if cfg.Path != "stderr" && cfg.Path != "stdout" {
		if dir := filepath.Dir(cfg.Path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create log directory: %w", err)
			}
		}
		if _, err := Rotate(cfg.Path, cfg.MaxSize, time.Now()); err != nil {
			return nil, err
		}
	}

	zc := zap.Config{
		Level:       zap.NewAtomicLevelAt(level),
		Development: false,
		Sampling: &zap.SamplingConfig{
			Initial:    100,
			Thereafter: 100,
		},
		Encoding:         encoding,
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      []string{cfg.Path},
		ErrorOutputPaths: []string{cfg.Path},
		DisableCaller:    true,
	}
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger, nil
}

// Nop returns a logger that discards everything
func Nop() *zap.Logger {
	return zap.NewNop()
}

// ParseLevel maps a level name to zap, empty means info
func ParseLevel(name string) (zapcore.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "info":
		return zap.InfoLevel, nil
	case "debug":
		return zap.DebugLevel, nil
	case "warn", "warning":
		return zap.WarnLevel, nil
	case "error":
		return zap.ErrorLevel, nil
	default:
		return zap.InfoLevel, fmt.Errorf("unknown log level %q", name)
	}
}

// Rotate renames path to a timestamped sibling when it exceeds maxSize bytes
// Returns the rotated name, or "" when nothing was rotated
func Rotate(path string, maxSize int64, now time.Time) (string, error) {
	if maxSize <= 0 {
		return "", nil
	}
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("stat log file: %w", err)
	}
	if info.Size() <= maxSize {
		return "", nil
	}

	ext := filepath.Ext(path)
	rotated := strings.TrimSuffix(path, ext) + "." + now.Format("20060102-150405") + ext
	if err := os.Rename(path, rotated); err != nil {
		return "", fmt.Errorf("rotate log file: %w", err)
	}
	return rotated, nil
}
