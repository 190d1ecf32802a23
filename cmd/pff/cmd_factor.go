package main

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/pffbench/pff/internal/algorithm"
	"github.com/pffbench/pff/internal/errdefs"
	"github.com/spf13/cobra"
)

func newFactorCommand() *cobra.Command {
	var (
		af      algorithmFlags
		algName string
	)

	cmd := &cobra.Command{
		Use:   "factor <n>...",
		Short: "Factor integers and print their prime factors",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := af.config()
			if err != nil {
				return err
			}
			alg, err := algorithm.New(algName, cfg)
			if err != nil {
				return err
			}

			ctx, stop := signalContext(cmd)
			defer stop()
			if timeout := cfg.Timeout(); timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, timeout)
				defer cancel()
			}

			out := cmd.OutOrStdout()
			for _, arg := range args {
				n, ok := new(big.Int).SetString(arg, 10)
				if !ok {
					return errdefs.InvalidInput("not a decimal integer: %q", arg)
				}
				start := time.Now()
				factors, err := alg.Factor(ctx, n)
				if err != nil {
					return fmt.Errorf("factoring %s: %w", n, err)
				}
				fmt.Fprintf(out, "%s = %s (%v)\n", n, algorithm.FormatFactors(factors), time.Since(start).Round(time.Microsecond))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&algName, "algorithm", "a", algorithm.NameClassical, "Algorithm to factor with")
	af.register(cmd)

	return cmd
}
