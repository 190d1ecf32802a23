package algorithm

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pffbench/pff/internal/errdefs"
)

const (
	// DefaultBackend is the execution backend used when none is configured.
	DefaultBackend = "cpu"
	// DefaultShots is the sampling count reported to non-classical strategies.
	DefaultShots = 1024
)

var configValidate = validator.New()

// Config tunes an algorithm. Zero numeric fields mean "use the strategy
// default"; negative values are rejected by Validate. A Config is never
// mutated once built and may be shared between concurrent runs.
type Config struct {
	Backend        string         `yaml:"backend,omitempty" json:"backend,omitempty" mapstructure:"backend"`
	Shots          int            `yaml:"shots,omitempty" json:"shots,omitempty" mapstructure:"shots" validate:"omitempty,gt=0"`
	MaxIterations  int            `yaml:"max_iterations,omitempty" json:"max_iterations,omitempty" mapstructure:"max_iterations" validate:"omitempty,gt=0"`
	TimeoutSeconds float64        `yaml:"timeout_seconds,omitempty" json:"timeout_seconds,omitempty" mapstructure:"timeout_seconds" validate:"omitempty,gt=0"`
	Params         map[string]any `yaml:"params,omitempty" json:"params,omitempty" mapstructure:"params"`
}

// Validate checks that every numeric field present is strictly positive.
func (c Config) Validate() error {
	if err := configValidate.Struct(c); err != nil {
		return errdefs.Configuration("%v", err)
	}
	return nil
}

// WithDefaults returns a copy of c with Backend and Shots filled in.
// MaxIterations stays zero so each strategy can apply its own default.
func (c Config) WithDefaults() Config {
	if c.Backend == "" {
		c.Backend = DefaultBackend
	}
	if c.Shots == 0 {
		c.Shots = DefaultShots
	}
	return c
}

// Timeout returns the per-factorization bound, or 0 when there is none.
func (c Config) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(c.TimeoutSeconds * float64(time.Second))
}

// iterations returns MaxIterations, or def when unset.
func (c Config) iterations(def int) int {
	if c.MaxIterations > 0 {
		return c.MaxIterations
	}
	return def
}
