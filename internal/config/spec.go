package config

import (
	"fmt"
	"os"
	"slices"

	"github.com/pffbench/pff/internal/algorithm"
	"github.com/pffbench/pff/internal/models"
	"gopkg.in/yaml.v3"
)

// RunSpec is a benchmark described in a run file.
type RunSpec struct {
	Name        string           `yaml:"name" json:"name"`
	Description string           `yaml:"description,omitempty" json:"description,omitempty"`
	Algorithm   string           `yaml:"algorithm" json:"algorithm"`
	Sizes       []int            `yaml:"sizes" json:"sizes"`
	Trials      int              `yaml:"trials" json:"trials"`
	Seed        *int64           `yaml:"seed,omitempty" json:"seed,omitempty"`
	Inputs      models.InputKind `yaml:"inputs,omitempty" json:"inputs,omitempty"`
	Config      algorithm.Config `yaml:"config,omitempty" json:"config,omitempty"`
}

// LoadRunSpec loads a run spec from a YAML file
func LoadRunSpec(path string) (*RunSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseRunSpec(data)
}

// ParseRunSpec decodes and validates a run spec.
func ParseRunSpec(data []byte) (*RunSpec, error) {
	var spec RunSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, err
	}
	if spec.Inputs == "" {
		spec.Inputs = models.InputSemiprime
	}

	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return &spec, nil
}

// Validate checks the run spec before any work starts.
func (s *RunSpec) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if !slices.Contains(algorithm.Names(), s.Algorithm) {
		return fmt.Errorf("algorithm %q is not one of %v", s.Algorithm, algorithm.Names())
	}
	if len(s.Sizes) == 0 {
		return fmt.Errorf("at least one size is required")
	}
	kind := s.Inputs
	if kind == "" {
		kind = models.InputSemiprime
	}
	if !kind.Valid() {
		return fmt.Errorf("inputs must be %q or %q, got %q", models.InputSemiprime, models.InputComposite, s.Inputs)
	}
	for _, size := range s.Sizes {
		if size < kind.MinBits() {
			return fmt.Errorf("%s sizes must be at least %d bits, got %d", kind, kind.MinBits(), size)
		}
	}
	if s.Trials < 1 {
		return fmt.Errorf("trials must be at least 1, got %d", s.Trials)
	}
	if s.Seed != nil && *s.Seed < 0 {
		return fmt.Errorf("seed must be >= 0, got %d", *s.Seed)
	}
	return s.Config.Validate()
}

// SeedOrRandom returns the seed, or -1 when none is set.
func (s *RunSpec) SeedOrRandom() int64 {
	if s.Seed == nil {
		return -1
	}
	return *s.Seed
}

// NewAlgorithm builds the algorithm the run spec names.
func (s *RunSpec) NewAlgorithm() (*algorithm.Algorithm, error) {
	return algorithm.New(s.Algorithm, s.Config)
}
