package main

import (
	"fmt"

	"github.com/pffbench/pff/internal/algorithm"
	"github.com/pffbench/pff/internal/metrics"
	"github.com/pffbench/pff/internal/models"
	"github.com/pffbench/pff/internal/reporting"
	"github.com/spf13/cobra"
)

func newBenchCommand() *cobra.Command {
	var (
		f        runFlags
		af       algorithmFlags
		algName  string
		sizeBits int
		trials   int
	)

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Benchmark one algorithm at one input size",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := af.config()
			if err != nil {
				return err
			}
			alg, err := algorithm.New(algName, cfg)
			if err != nil {
				return err
			}

			m := metrics.New()
			runner, stopSpinner := newRunner(cmd, f.seed, models.InputKind(f.inputs), f.verbose, m)
			ctx, stop := signalContext(cmd)
			defer stop()

			result, runErr := runner.RunBenchmark(ctx, sizeBits, alg, trials, cfg)
			stopSpinner()
			if result == nil {
				return fmt.Errorf("benchmark failed: %w", runErr)
			}

			out := cmd.OutOrStdout()
			fmt.Fprint(out, reporting.FormatSummaryReport(result))

			data, err := result.ToJSON()
			if err != nil {
				return err
			}
			scaling := &models.ScalingResult{
				AlgorithmName: result.AlgorithmName,
				Sizes:         []int{sizeBits},
				Results:       []*models.BenchmarkResult{result},
				Timestamp:     result.Timestamp,
			}
			name := fmt.Sprintf("%s-%dbit", algName, sizeBits)
			if err := saveArtifacts(out, &f, name, data, scaling.Results, scaling, m); err != nil {
				return err
			}
			if runErr != nil {
				return fmt.Errorf("benchmark stopped: %w", runErr)
			}
			return trialFailure(scaling.Results)
		},
	}

	cmd.Flags().StringVarP(&algName, "algorithm", "a", algorithm.NameClassical, "Algorithm to benchmark")
	cmd.Flags().IntVarP(&sizeBits, "bits", "b", 32, "Input size in bits")
	cmd.Flags().IntVarP(&trials, "trials", "n", 10, "Number of trials")
	f.register(cmd)
	af.register(cmd)

	return cmd
}
