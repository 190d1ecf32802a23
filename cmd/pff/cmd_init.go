package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pffbench/pff/internal/algorithm"
	"github.com/pffbench/pff/internal/config"
	"github.com/pffbench/pff/internal/wizard"
	"github.com/spf13/cobra"
)

func newInitCommand() *cobra.Command {
	var (
		interactive bool
		force       bool
	)

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Create a run file",
		Long: `Create a run.yaml describing a classical sweep over small semiprimes.

Use --interactive to answer a short form instead of taking the defaults.

If no directory is specified, the current directory is used.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			return initCommandE(cmd, dir, interactive, force)
		},
	}

	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Run the guided run-file wizard")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing run.yaml")

	return cmd
}

func initCommandE(cmd *cobra.Command, dir string, interactive, force bool) error {
	path := filepath.Join(dir, "run.yaml")
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("checking %s: %w", path, err)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	var (
		spec *config.RunSpec
		err  error
	)
	if interactive {
		spec, err = wizard.RunWizard(cmd.InOrStdin(), cmd.OutOrStdout(), filepath.Base(absOrSelf(dir)))
	} else {
		spec, err = wizard.BuildRunSpec(wizard.Answers{
			Name:      filepath.Base(absOrSelf(dir)),
			Algorithm: algorithm.NameClassical,
			Sizes:     "16, 20, 24, 28, 32",
			Trials:    "10",
			Seed:      "1",
			Timeout:   "10",
		})
	}
	if err != nil {
		return err
	}

	content, err := wizard.GenerateRunYAML(spec)
	if err != nil {
		return fmt.Errorf("failed to generate run.yaml: %w", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write run.yaml: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created %s\nRun it with: pff run %s\n", path, path)
	return nil
}

func absOrSelf(dir string) string {
	if abs, err := filepath.Abs(dir); err == nil {
		return abs
	}
	return dir
}
