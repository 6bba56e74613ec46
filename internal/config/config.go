package config

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	WindowWidth  = 1024
	WindowHeight = 640

	// Pixels per layout unit, and the screen position of the layout origin.
	LayoutScale   = 90
	LayoutOriginX = WindowWidth / 2
	LayoutOriginY = WindowHeight/2 + 20

	// Lever handle hit box, in pixels around the handle centre.
	HandleHitRadius = 18

	LevelRingSize   = 4096
	SmoothingFactor = 0.6

	// Visualization parameters
	ParticleCount  = 50
	ParticleRadius = 3
	FlowSpeed      = 0.5 // layout units per second
	SpeedStep      = 0.1
	MaxFlowSpeed   = 5
	WireWidth      = 5
	GlowRadius     = 60

	// MaxFrameDelta caps the time step after stalls such as window drags.
	MaxFrameDelta = 250 * time.Millisecond
)

var ErrInvalidConfig = errors.New("invalid config")

// Config holds the settings that can be changed from the command line.
type Config struct {
	PoolSize    int
	FlowSpeed   float64
	Reseed      string
	LayoutPath  string
	ClickSample string
	Volume      float64
	Mute        bool
	LogLevel    string
}

func Default() Config {
	return Config{
		PoolSize:  ParticleCount,
		FlowSpeed: FlowSpeed,
		Reseed:    "random",
		Volume:    0.5,
		LogLevel:  "info",
	}
}

func (c Config) Validate() error {
	if c.PoolSize < 0 {
		return fmt.Errorf("%w: particle pool size %d is negative", ErrInvalidConfig, c.PoolSize)
	}
	if c.FlowSpeed < -MaxFlowSpeed || c.FlowSpeed > MaxFlowSpeed {
		return fmt.Errorf("%w: flow speed %v outside ±%v", ErrInvalidConfig, c.FlowSpeed, MaxFlowSpeed)
	}
	switch c.Reseed {
	case "random", "resume":
	default:
		return fmt.Errorf("%w: reseed policy %q (want random or resume)", ErrInvalidConfig, c.Reseed)
	}
	if c.Volume < 0 || c.Volume > 1 {
		return fmt.Errorf("%w: volume %v outside [0,1]", ErrInvalidConfig, c.Volume)
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// Logger builds the development logger at LogLevel.
func (c Config) Logger() (*zap.SugaredLogger, error) {
	lvl, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	l, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return l.Sugar(), nil
}
