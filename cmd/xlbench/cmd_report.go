package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tjc-lp/xlbench/internal/report"
	"github.com/tjc-lp/xlbench/internal/store"
)

func newReportCommand() *cobra.Command {
	var (
		asHTML     bool
		reportPath string
	)

	cmd := &cobra.Command{
		Use:   "report <run.json>",
		Short: "Render a saved benchmark run as Markdown or HTML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return reportCommandE(args[0], asHTML, reportPath)
		},
	}

	cmd.Flags().BoolVar(&asHTML, "html", false, "render HTML instead of Markdown")
	cmd.Flags().StringVarP(&reportPath, "output", "o", "", "write the report to a file instead of stdout")
	return cmd
}

func reportCommandE(runPath string, asHTML bool, reportPath string) error {
	run, err := store.Load(runPath)
	if err != nil {
		return fmt.Errorf("loading run: %w", err)
	}

	rendered := report.Markdown(run)
	if asHTML {
		rendered, err = report.HTML(run)
		if err != nil {
			return fmt.Errorf("rendering HTML: %w", err)
		}
	}

	if reportPath == "" {
		fmt.Print(rendered)
		return nil
	}
	if err := os.WriteFile(reportPath, []byte(rendered), 0o644); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	fmt.Printf("Report written to: %s\n", reportPath)
	return nil
}
