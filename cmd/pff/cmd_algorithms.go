package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pffbench/pff/internal/algorithm"
	"github.com/spf13/cobra"
)

func newAlgorithmsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "algorithms",
		Short: "List the available algorithms",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, name := range algorithm.Names() {
				alg, err := algorithm.New(name, algorithm.Config{})
				if err != nil {
					return err
				}
				info := alg.Info()
				fmt.Fprintf(out, "%s (%s)\n", info.Name, info.Kind)

				keys := make([]string, 0, len(info.Extra))
				for k := range info.Extra {
					keys = append(keys, k)
				}
				sort.Strings(keys)
				for _, k := range keys {
					fmt.Fprintf(out, "  %s: %v\n", k, info.Extra[k])
				}
			}
			fmt.Fprintf(out, "\nPeriod-finding backends: %s\n", strings.Join(algorithm.Backends(), ", "))
			return nil
		},
	}
}
