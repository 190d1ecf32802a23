package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/pffbench/pff/internal/algorithm"
	"github.com/pffbench/pff/internal/metrics"
	"github.com/pffbench/pff/internal/models"
	"github.com/pffbench/pff/internal/orchestration"
	"github.com/pffbench/pff/internal/spinner"
	"github.com/spf13/cobra"
)

// algorithmFlags are the AlgorithmConfig fields settable on the command line.
type algorithmFlags struct {
	backend       string
	shots         int
	maxIterations int
	timeout       float64
	params        map[string]string
}

func (f *algorithmFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.backend, "backend", "", "Backend name (default: cpu)")
	cmd.Flags().IntVar(&f.shots, "shots", 0, "Sampling count for quantum-backed strategies")
	cmd.Flags().IntVar(&f.maxIterations, "max-iterations", 0, "Bound on internal retries (default: per algorithm)")
	cmd.Flags().Float64Var(&f.timeout, "timeout", 0, "Per-factorization timeout in seconds (0: none)")
	cmd.Flags().StringToStringVar(&f.params, "param", nil, "Algorithm-specific parameter key=value (can be repeated)")
}

func (f *algorithmFlags) config() (algorithm.Config, error) {
	cfg := algorithm.Config{
		Backend:        f.backend,
		Shots:          f.shots,
		MaxIterations:  f.maxIterations,
		TimeoutSeconds: f.timeout,
	}
	if len(f.params) > 0 {
		cfg.Params = make(map[string]any, len(f.params))
		for k, v := range f.params {
			cfg.Params[k] = v
		}
	}
	return cfg, cfg.Validate()
}

// runFlags select inputs and outputs of a benchmark command.
type runFlags struct {
	seed       int64
	inputs     string
	output     string
	junit      string
	metricsOut string
	report     string
	verbose    bool
}

func (f *runFlags) register(cmd *cobra.Command) {
	cmd.Flags().Int64Var(&f.seed, "seed", -1, "Seed for input generation (negative: random)")
	cmd.Flags().StringVar(&f.inputs, "inputs", string(models.InputSemiprime), "Inputs to factor: semiprime or composite")
	f.registerOutputs(cmd)
}

func (f *runFlags) registerOutputs(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "Output JSON file for results (.zst suffix compresses)")
	cmd.Flags().StringVar(&f.junit, "junit", "", "Write a JUnit XML report to this file")
	cmd.Flags().StringVar(&f.metricsOut, "metrics-out", "", "Write Prometheus metrics in text format to this file")
	cmd.Flags().StringVar(&f.report, "report", "", "Write a Markdown report (.html suffix renders HTML)")
	cmd.Flags().BoolVarP(&f.verbose, "verbose", "v", false, "Verbose output with per-trial progress")
}

// newRunner builds a Runner that reports progress to cmd's output. On a
// terminal without --verbose a spinner tracks the trial in progress; call
// the returned function once the run is over.
func newRunner(cmd *cobra.Command, seed int64, inputs models.InputKind, verbose bool, m *metrics.BenchMetrics, extra ...orchestration.RunnerOption) (*orchestration.Runner, func()) {
	opts := []orchestration.RunnerOption{
		orchestration.WithSeed(seed),
		orchestration.WithInputKind(inputs),
		orchestration.WithMetrics(m),
	}
	runner := orchestration.NewRunner(append(opts, extra...)...)
	out := &lockedWriter{w: cmd.OutOrStdout()}
	if verbose {
		runner.OnProgress(verboseProgressListener(out))
		return runner, func() {}
	}
	runner.OnProgress(simpleProgressListener(out))

	if !stderrIsTerminal(cmd) {
		return runner, func() {}
	}
	spin := spinner.Start(cmd.ErrOrStderr(), "starting")
	runner.OnProgress(spinnerProgressListener(spin))
	return runner, spin.Stop
}

// signalContext is cmd's context, cancelled on interrupt.
func signalContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
}
