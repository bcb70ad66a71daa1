package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tjc-lp/xlbench/internal/aggregation"
	"github.com/tjc-lp/xlbench/internal/models"
	"github.com/tjc-lp/xlbench/internal/store"
)

func newCompareCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "compare <run.json> <run.json>",
		Short: "Compare two saved benchmark runs",
		Long: `Compare loads two saved benchmark records and reports how token
totals and grades moved between them. The first record is the baseline.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return compareCommandE(args[0], args[1])
		},
	}
}

func compareCommandE(basePath, otherPath string) error {
	baseline, err := store.Load(basePath)
	if err != nil {
		return fmt.Errorf("loading baseline: %w", err)
	}
	other, err := store.Load(otherPath)
	if err != nil {
		return fmt.Errorf("loading comparison run: %w", err)
	}

	baseAgg := aggregation.Aggregate(baseline.Results)
	otherAgg := aggregation.Aggregate(other.Results)

	w := os.Stdout
	fmt.Fprintf(w, "Baseline:   %s (%s, %d tasks)\n", basePath, baseline.Timestamp, len(baseAgg.Tasks))
	fmt.Fprintf(w, "Comparison: %s (%s, %d tasks)\n", otherPath, other.Timestamp, len(otherAgg.Tasks))
	if baseline.Model != other.Model {
		fmt.Fprintf(w, "Note: runs used different models (%s vs %s)\n", baseline.Model, other.Model)
	}
	fmt.Fprintln(w)

	for _, a := range models.ApproachOrder {
		before := baseAgg.Summary(a)
		after := otherAgg.Summary(a)
		if before.TotalTokens == 0 && after.TotalTokens == 0 {
			continue
		}
		fmt.Fprintf(w, "%s: %s -> %s tokens (%s)\n", a,
			numPrinter.Sprintf("%d", before.TotalTokens),
			numPrinter.Sprintf("%d", after.TotalTokens),
			formatDelta(before.TotalTokens, after.TotalTokens))
		if before.AverageGrade != "" || after.AverageGrade != "" {
			fmt.Fprintf(w, "%s grade: %s -> %s\n", a,
				gradeOrDash(before.AverageGrade), gradeOrDash(after.AverageGrade))
		}
	}

	fmt.Fprintf(w, "\nWinner: %s -> %s\n", winnerOrDash(baseAgg.Winner), winnerOrDash(otherAgg.Winner))
	return nil
}

func formatDelta(before, after int) string {
	if before == 0 {
		return "n/a"
	}
	pct := float64(after-before) / float64(before) * 100
	return fmt.Sprintf("%+.1f%%", pct)
}

func gradeOrDash(g models.Grade) string {
	if g == "" {
		return "-"
	}
	return string(g)
}

func winnerOrDash(w aggregation.Winner) string {
	if w == "" {
		return "-"
	}
	return string(w)
}
