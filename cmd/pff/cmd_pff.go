package main

import (
	"fmt"
	"strconv"

	"github.com/pffbench/pff/internal/models"
	"github.com/pffbench/pff/internal/orchestration"
	"github.com/spf13/cobra"
)

func newPFFCommand() *cobra.Command {
	var (
		estimateBits int
		samples      int
		seed         int64
	)

	cmd := &cobra.Command{
		Use:   "pff [mean-seconds]",
		Short: "Convert a mean factorization time to PFF, or estimate it",
		Long: `Convert a mean factorization time in seconds to PFF, the number of
factorizations that fit in one year (31,536,000 seconds).

With --estimate-bits, measure the classical algorithm on a small sample of
semiprimes of that size instead.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if estimateBits > 0 {
				ctx, stop := signalContext(cmd)
				defer stop()
				runner := orchestration.NewRunner(orchestration.WithSeed(seed))
				est, err := runner.QuickEstimate(ctx, estimateBits, samples)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, est)
				return nil
			}

			if len(args) == 0 {
				return fmt.Errorf("either a mean time or --estimate-bits is required")
			}
			mean, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("mean time must be a number of seconds: %q", args[0])
			}
			pff, err := models.CalculatePFF(mean)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "PFF = %s\n", models.FormatPFF(pff))
			return nil
		},
	}

	cmd.Flags().IntVar(&estimateBits, "estimate-bits", 0, "Estimate PFF of the classical algorithm at this size")
	cmd.Flags().IntVar(&samples, "samples", orchestration.DefaultQuickSamples, "Trials for --estimate-bits")
	cmd.Flags().Int64Var(&seed, "seed", -1, "Seed for --estimate-bits inputs (negative: random)")

	return cmd
}
