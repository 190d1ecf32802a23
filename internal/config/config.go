// Package config holds run files and the settings of a single pff invocation.
package config

// BenchmarkConfig is a RunSpec plus where it came from and where its
// results go.
type BenchmarkConfig struct {
	spec        *RunSpec
	specDir     string
	verbose     bool
	outputPath  string
	junitPath   string
	metricsPath string
}

// Option configures a BenchmarkConfig.
type Option func(*BenchmarkConfig)

// WithSpecDir records the directory the run file was loaded from.
func WithSpecDir(dir string) Option {
	return func(c *BenchmarkConfig) {
		c.specDir = dir
	}
}

// WithVerbose enables per-trial output.
func WithVerbose(v bool) Option {
	return func(c *BenchmarkConfig) {
		c.verbose = v
	}
}

// WithOutputPath sets the JSON result file.
func WithOutputPath(path string) Option {
	return func(c *BenchmarkConfig) {
		c.outputPath = path
	}
}

// WithJUnitPath sets the JUnit XML report file.
func WithJUnitPath(path string) Option {
	return func(c *BenchmarkConfig) {
		c.junitPath = path
	}
}

// WithMetricsPath sets the Prometheus text exposition file.
func WithMetricsPath(path string) Option {
	return func(c *BenchmarkConfig) {
		c.metricsPath = path
	}
}

// NewBenchmarkConfig applies opts to a config for spec.
func NewBenchmarkConfig(spec *RunSpec, opts ...Option) *BenchmarkConfig {
	c := &BenchmarkConfig{spec: spec}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *BenchmarkConfig) Spec() *RunSpec      { return c.spec }
func (c *BenchmarkConfig) SpecDir() string     { return c.specDir }
func (c *BenchmarkConfig) Verbose() bool       { return c.verbose }
func (c *BenchmarkConfig) OutputPath() string  { return c.outputPath }
func (c *BenchmarkConfig) JUnitPath() string   { return c.junitPath }
func (c *BenchmarkConfig) MetricsPath() string { return c.metricsPath }
