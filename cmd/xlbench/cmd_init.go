package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tjc-lp/xlbench/internal/wizard"
)

func newInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [tasks.yaml]",
		Short: "Create a task catalog interactively",
		Long: `Init walks through the fields of a benchmark task and writes a
starter catalog you can extend by hand and pass to "xlbench run".`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "tasks.yaml"
			if len(args) == 1 {
				path = args[0]
			}
			return initCommandE(path, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing catalog file")
	return cmd
}

func initCommandE(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
	}

	spec, err := wizard.RunTaskWizard(os.Stdin, os.Stdout)
	if err != nil {
		return err
	}

	catalog, err := wizard.GenerateCatalogYAML(spec)
	if err != nil {
		return fmt.Errorf("generating catalog: %w", err)
	}
	if err := os.WriteFile(path, []byte(catalog), 0o644); err != nil {
		return fmt.Errorf("writing catalog: %w", err)
	}

	fmt.Printf("Catalog written to: %s\n", path)
	fmt.Printf("Run it with: xlbench run %s\n", path)
	return nil
}
