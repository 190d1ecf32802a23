package main

import (
	"fmt"

	"github.com/pffbench/pff/internal/algorithm"
	"github.com/pffbench/pff/internal/metrics"
	"github.com/pffbench/pff/internal/models"
	"github.com/pffbench/pff/internal/reporting"
	"github.com/spf13/cobra"
)

func newScaleCommand() *cobra.Command {
	var (
		f       runFlags
		af      algorithmFlags
		algName string
		sizes   []int
		trials  int
	)

	cmd := &cobra.Command{
		Use:   "scale",
		Short: "Sweep one algorithm over several input sizes",
		Long: `Sweep one algorithm over several input sizes, in the order given.

An interrupt stops the sweep after the size in progress; completed sizes are
still reported and saved.`,
		Args: cobra.NoArgs,
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

			result, runErr := runner.ScalingAnalysis(ctx, alg, sizes, trials, cfg)
			stopSpinner()
			if result == nil {
				return fmt.Errorf("scaling analysis failed: %w", runErr)
			}

			out := cmd.OutOrStdout()
			fmt.Fprint(out, reporting.FormatScalingTable(result))

			data, err := result.ToJSON()
			if err != nil {
				return err
			}
			if err := saveArtifacts(out, &f, algName+"-scaling", data, result.Results, result, m); err != nil {
				return err
			}
			if runErr != nil {
				return fmt.Errorf("scaling analysis stopped: %w", runErr)
			}
			return trialFailure(result.Results)
		},
	}

	cmd.Flags().StringVarP(&algName, "algorithm", "a", algorithm.NameClassical, "Algorithm to benchmark")
	cmd.Flags().IntSliceVarP(&sizes, "sizes", "s", []int{16, 20, 24, 28, 32}, "Input sizes in bits")
	cmd.Flags().IntVarP(&trials, "trials", "n", 10, "Number of trials per size")
	f.register(cmd)
	af.register(cmd)

	return cmd
}
