package main

import (
	"fmt"

	"github.com/pffbench/pff/internal/config"
	"github.com/pffbench/pff/internal/validation"
	"github.com/spf13/cobra"
)

func newValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <run.yaml>...",
		Short: "Check run files against the schema",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			invalid := 0
			for _, path := range args {
				errs, err := validation.ValidateRunFile(path)
				if err != nil {
					return err
				}
				if len(errs) == 0 {
					if _, err := config.LoadRunSpec(path); err != nil {
						errs = []string{err.Error()}
					}
				}
				if len(errs) == 0 {
					fmt.Fprintf(out, "✓ %s\n", path)
					continue
				}
				invalid++
				fmt.Fprintf(out, "✗ %s\n", path)
				for _, e := range errs {
					fmt.Fprintf(out, "    %s\n", e)
				}
			}
			if invalid > 0 {
				return fmt.Errorf("%d of %d run file(s) invalid", invalid, len(args))
			}
			return nil
		},
	}
}
