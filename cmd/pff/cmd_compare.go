package main

import (
	"encoding/json"
	"fmt"

	"github.com/pffbench/pff/internal/algorithm"
	"github.com/pffbench/pff/internal/metrics"
	"github.com/pffbench/pff/internal/models"
	"github.com/pffbench/pff/internal/orchestration"
	"github.com/pffbench/pff/internal/reporting"
	"github.com/spf13/cobra"
)

func newCompareCommand() *cobra.Command {
	var (
		f        runFlags
		af       algorithmFlags
		algNames []string
		sizeBits int
		trials   int
		parallel int
	)

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Benchmark several algorithms on the same inputs",
		Long: `Benchmark several algorithms at one input size.

Algorithms run concurrently, each on its own instance. With a fixed --seed
every algorithm factors the same sequence of inputs, and the report tests
each mean time against the first algorithm with a bootstrap interval.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(algNames) < 2 {
				return fmt.Errorf("compare needs at least two algorithms, got %d", len(algNames))
			}
			cfg, err := af.config()
			if err != nil {
				return err
			}

			contenders := make([]orchestration.Contender, 0, len(algNames))
			for _, name := range algNames {
				contenders = append(contenders, orchestration.Contender{
					Name: name,
					New:  algorithm.Factory(name, cfg),
				})
			}

			m := metrics.New()
			var opts []orchestration.RunnerOption
			if parallel > 0 {
				opts = append(opts, orchestration.WithParallelism(parallel))
			}
			runner, stopSpinner := newRunner(cmd, f.seed, models.InputKind(f.inputs), f.verbose, m, opts...)
			ctx, stop := signalContext(cmd)
			defer stop()

			results, err := runner.CompareAlgorithms(ctx, contenders, sizeBits, trials, cfg)
			stopSpinner()
			if err != nil {
				return fmt.Errorf("comparison failed: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprint(out, reporting.FormatComparison(results, f.seed))

			data, err := json.MarshalIndent(results, "", "  ")
			if err != nil {
				return err
			}
			name := fmt.Sprintf("compare-%dbit", sizeBits)
			if err := saveArtifacts(out, &f, name, data, results, nil, m); err != nil {
				return err
			}
			return trialFailure(results)
		},
	}

	cmd.Flags().StringSliceVarP(&algNames, "algorithms", "a", []string{algorithm.NameClassical, algorithm.NameShor}, "Algorithms to compare")
	cmd.Flags().IntVarP(&sizeBits, "bits", "b", 24, "Input size in bits")
	cmd.Flags().IntVarP(&trials, "trials", "n", 10, "Number of trials per algorithm")
	cmd.Flags().IntVar(&parallel, "parallel", 0, "Algorithms to run at once (default: number of CPUs)")
	f.register(cmd)
	af.register(cmd)

	return cmd
}
