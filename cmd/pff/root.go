package main

import (
	"os"

	"github.com/pffbench/pff/internal/logging"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var version = "dev"

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pff",
		Short: "pff - prime factorization frequency benchmark",
		Long: `pff measures how fast integer factorization algorithms run.

Each benchmark factors freshly generated semiprimes of a given bit size,
verifies every answer, and reports PFF: the number of factorizations that
fit in one year at the mean successful time.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	debugLogging := cmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		logging.InitWriter(cmd.ErrOrStderr(), *debugLogging, stderrIsTerminal(cmd))
	}

	cmd.AddCommand(newRunCommand())
	cmd.AddCommand(newBenchCommand())
	cmd.AddCommand(newScaleCommand())
	cmd.AddCommand(newCompareCommand())
	cmd.AddCommand(newFactorCommand())
	cmd.AddCommand(newPFFCommand())
	cmd.AddCommand(newAlgorithmsCommand())
	cmd.AddCommand(newValidateCommand())
	cmd.AddCommand(newInitCommand())

	return cmd
}

func stderrIsTerminal(cmd *cobra.Command) bool {
	f, ok := cmd.ErrOrStderr().(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func execute() error {
	rootCmd := newRootCommand()
	return rootCmd.Execute()
}
