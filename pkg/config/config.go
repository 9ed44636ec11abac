// Package config loads stepsort settings from a TOML file.
//
// The file lives at $XDG_CONFIG_HOME/stepsort/config.toml, falling back to
// ~/.config/stepsort/config.toml. Every field is optional; values that are
// absent keep their defaults:
//
//	algorithm = "quick"
//
//	[vector]
//	floor = 1
//	ceil = 16
//	size = 20
//	seed = 0
//
//	[animation]
//	delay = "120ms"
//
//	[runner]
//	max_steps = 1000000
//	bogo_max = 8
package config

import (
	stderrors "errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/stepsort/pkg/errors"
	"github.com/matzehuels/stepsort/pkg/sorter"
	"github.com/matzehuels/stepsort/pkg/vector"
)

const (
	appName  = "stepsort"
	fileName = "config.toml"
)

// Defaults applied before the file is decoded.
const (
	DefaultAlgorithm = "bubble"
	DefaultDelay     = 120 * time.Millisecond
	DefaultMaxSteps  = 10_000_000
	DefaultBogoMax   = 8
)

// Config is the decoded configuration file.
type Config struct {
	Algorithm string          `toml:"algorithm"`
	Vector    VectorConfig    `toml:"vector"`
	Animation AnimationConfig `toml:"animation"`
	Runner    RunnerConfig    `toml:"runner"`
}

// VectorConfig controls random input generation.
type VectorConfig struct {
	Floor uint32 `toml:"floor"`
	Ceil  uint32 `toml:"ceil"`
	Size  int    `toml:"size"`
	Seed  uint64 `toml:"seed"`
}

// AnimationConfig controls the interactive visualizer.
type AnimationConfig struct {
	Delay time.Duration `toml:"delay"`
}

// RunnerConfig controls headless runs.
type RunnerConfig struct {
	MaxSteps int `toml:"max_steps"`
	BogoMax  int `toml:"bogo_max"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Algorithm: DefaultAlgorithm,
		Vector: VectorConfig{
			Floor: vector.DefaultFloor,
			Ceil:  vector.DefaultCeil,
			Size:  vector.DefaultSize,
		},
		Animation: AnimationConfig{Delay: DefaultDelay},
		Runner: RunnerConfig{
			MaxSteps: DefaultMaxSteps,
			BogoMax:  DefaultBogoMax,
		},
	}
}

// DefaultPath returns the XDG location of the configuration file.
func DefaultPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, fileName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, fileName), nil
}

// Load reads the file at path, or at DefaultPath when path is empty.
// A missing file yields the defaults; a malformed or invalid file is an
// INVALID_CONFIG error.
func Load(path string) (*Config, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return Default(), nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if stderrors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read %s", path)
	}

	cfg, err := Parse(string(data))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "load %s", path)
	}
	return cfg, nil
}

// Parse decodes TOML text on top of the defaults and validates the result.
// Unknown keys are rejected.
func Parse(data string) (*Config, error) {
	cfg := Default()
	md, err := toml.Decode(data, cfg)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown keys: %s", strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every field.
func (c *Config) Validate() error {
	if _, err := sorter.Parse(c.Algorithm); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidAlgorithm, err, "algorithm")
	}
	if err := c.VectorOptions().Validate(); err != nil {
		return err
	}
	if err := errors.ValidateDelay(c.Animation.Delay); err != nil {
		return err
	}
	if c.Runner.MaxSteps <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "runner.max_steps must be positive, got %d", c.Runner.MaxSteps)
	}
	if c.Runner.BogoMax < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "runner.bogo_max cannot be negative, got %d", c.Runner.BogoMax)
	}
	return nil
}

// AlgorithmValue returns the configured algorithm, or bubble sort if the name
// does not parse.
func (c *Config) AlgorithmValue() sorter.Algorithm {
	a, err := sorter.Parse(c.Algorithm)
	if err != nil {
		return sorter.Bubble
	}
	return a
}

// VectorOptions converts the [vector] table into generation options.
func (c *Config) VectorOptions() vector.Options {
	return vector.Options{
		Floor: c.Vector.Floor,
		Ceil:  c.Vector.Ceil,
		Size:  c.Vector.Size,
		Seed:  c.Vector.Seed,
	}
}

// Write encodes c as TOML.
func (c *Config) Write(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}
