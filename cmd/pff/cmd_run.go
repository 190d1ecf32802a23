package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pffbench/pff/internal/config"
	"github.com/pffbench/pff/internal/metrics"
	"github.com/pffbench/pff/internal/reporting"
	"github.com/pffbench/pff/internal/validation"
	"github.com/spf13/cobra"
)

func newRunCommand() *cobra.Command {
	var f runFlags

	cmd := &cobra.Command{
		Use:   "run <run.yaml>",
		Short: "Run a benchmark described by a run file",
		Long: `Run a benchmark from a run file.

The run file names the algorithm, its configuration, the input sizes to
sweep and the number of trials per size. Sizes run in the order listed;
an interrupt stops the sweep after the size in progress.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCommandE(cmd, args[0], &f)
		},
	}
	f.registerOutputs(cmd)

	return cmd
}

func runCommandE(cmd *cobra.Command, specPath string, f *runFlags) error {
	schemaErrs, err := validation.ValidateRunFile(specPath)
	if err != nil {
		return err
	}
	if len(schemaErrs) > 0 {
		return fmt.Errorf("invalid run file %s:\n  %s", specPath, strings.Join(schemaErrs, "\n  "))
	}

	spec, err := config.LoadRunSpec(specPath)
	if err != nil {
		return fmt.Errorf("failed to load run file: %w", err)
	}

	specDir, err := filepath.Abs(filepath.Dir(specPath))
	if err != nil {
		specDir = filepath.Dir(specPath)
	}
	cfg := config.NewBenchmarkConfig(spec,
		config.WithSpecDir(specDir),
		config.WithVerbose(f.verbose),
		config.WithOutputPath(f.output),
		config.WithJUnitPath(f.junit),
		config.WithMetricsPath(f.metricsOut),
	)
	return executeRun(cmd, cfg, f.report)
}

// executeRun sweeps the sizes of cfg's spec and writes the configured outputs.
func executeRun(cmd *cobra.Command, cfg *config.BenchmarkConfig, reportPath string) error {
	spec := cfg.Spec()
	out := cmd.OutOrStdout()

	alg, err := spec.NewAlgorithm()
	if err != nil {
		return err
	}

	m := metrics.New()
	runner, stopSpinner := newRunner(cmd, spec.SeedOrRandom(), spec.Inputs, cfg.Verbose(), m)

	ctx, stop := signalContext(cmd)
	defer stop()

	fmt.Fprintf(out, "Running benchmark: %s\n", spec.Name)
	if spec.Description != "" {
		fmt.Fprintf(out, "%s\n", spec.Description)
	}
	fmt.Fprintf(out, "Algorithm: %s\n", spec.Algorithm)
	fmt.Fprintf(out, "Sizes: %v bits, %d trial(s) each\n\n", spec.Sizes, spec.Trials)

	result, runErr := runner.ScalingAnalysis(ctx, alg, spec.Sizes, spec.Trials, spec.Config)
	stopSpinner()
	if result == nil {
		return fmt.Errorf("benchmark failed: %w", runErr)
	}

	fmt.Fprintln(out)
	fmt.Fprint(out, reporting.FormatScalingTable(result))

	data, err := result.ToJSON()
	if err != nil {
		return err
	}
	f := &runFlags{
		output:     cfg.OutputPath(),
		junit:      cfg.JUnitPath(),
		metricsOut: cfg.MetricsPath(),
		report:     reportPath,
	}
	if err := saveArtifacts(out, f, spec.Name, data, result.Results, result, m); err != nil {
		return err
	}

	if runErr != nil {
		return fmt.Errorf("benchmark stopped: %w", runErr)
	}
	if err := trialFailure(result.Results); err != nil {
		return err
	}
	return nil
}
