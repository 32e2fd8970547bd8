// Package config loads game settings from BRICKS_* environment variables.
package config

import (
	crand "crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/caarlos0/env/v11"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("config: invalid")

// Config holds the settings shared by the commands.
type Config struct {
	Width       int           `env:"BRICKS_WIDTH" envDefault:"16"`
	Height      int           `env:"BRICKS_HEIGHT" envDefault:"30"`
	Period      time.Duration `env:"BRICKS_PERIOD" envDefault:"1s"`
	Seed        uint64        `env:"BRICKS_SEED" envDefault:"0"`
	PreviewSize int           `env:"BRICKS_PREVIEW_SIZE" envDefault:"6"`
	LogLevel    string        `env:"BRICKS_LOG_LEVEL" envDefault:"info"`
	LogDev      bool          `env:"BRICKS_LOG_DEV" envDefault:"false"`

	Soak Soak `envPrefix:"BRICKS_SOAK_"`
}

// Soak configures the headless soak driver.
type Soak struct {
	Games    int           `env:"GAMES" envDefault:"100"`
	MaxTicks int           `env:"MAX_TICKS" envDefault:"5000"`
	Workers  int           `env:"WORKERS" envDefault:"4"`
	Step     time.Duration `env:"STEP" envDefault:"16ms"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load parses and validates the environment.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks ranges. It does not touch the environment.
func (c Config) Validate() error {
	var errs []error
	if c.Width < 1 || c.Height < 1 {
		errs = append(errs, fmt.Errorf("%w: stage %dx%d", ErrInvalid, c.Width, c.Height))
	}
	if c.Period <= 0 {
		errs = append(errs, fmt.Errorf("%w: period %s", ErrInvalid, c.Period))
	}
	if c.PreviewSize < 1 {
		errs = append(errs, fmt.Errorf("%w: preview size %d", ErrInvalid, c.PreviewSize))
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("%w: log level: %w", ErrInvalid, err))
	}
	if c.Soak.Games < 0 || c.Soak.MaxTicks < 1 || c.Soak.Workers < 1 || c.Soak.Step <= 0 {
		errs = append(errs, fmt.Errorf("%w: soak %+v", ErrInvalid, c.Soak))
	}
	return errors.Join(errs...)
}

// Logger builds a zap logger at the configured level.
func (c Config) Logger() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}

	zc := zap.NewProductionConfig()
	if c.LogDev {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	return zc.Build()
}

// Rand returns a PCG generator for the configured seed together with the
// seed actually used. A zero seed is replaced by one from crypto/rand.
func (c Config) Rand() (*rand.Rand, uint64, error) {
	seed := c.Seed
	if seed == 0 {
		var err error
		if seed, err = NewSeed(); err != nil {
			return nil, 0, err
		}
	}
	return rand.New(rand.NewPCG(seed, seed)), seed, nil
}

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (uint64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return binary.LittleEndian.Uint64(b[:]), nil
}
