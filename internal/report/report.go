// Package report renders a benchmark run record as Markdown or HTML.
package report

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/tjc-lp/xlbench/internal/aggregation"
	"github.com/tjc-lp/xlbench/internal/models"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// Markdown renders the run as a Markdown document.
func Markdown(run *models.BenchmarkRun) string {
	comparison := aggregation.Aggregate(run.Results)

	var sb strings.Builder
	sb.WriteString("# Token Efficiency Benchmark\n\n")
	fmt.Fprintf(&sb, "- **Run:** `%s`\n", run.RunID)
	fmt.Fprintf(&sb, "- **Timestamp:** %s\n", run.Timestamp)
	fmt.Fprintf(&sb, "- **Model:** %s\n", run.Model)
	fmt.Fprintf(&sb, "- **Sample file:** `%s`\n\n", run.SampleFile)

	writeComparisonTable(&sb, comparison)
	writeSummary(&sb, comparison)
	writeGrades(&sb, comparison)
	writeFailures(&sb, run)

	return sb.String()
}

// HTML renders the run's Markdown report to HTML.
func HTML(run *models.BenchmarkRun) (string, error) {
	md := goldmark.New(goldmark.WithExtensions(extension.Table))

	var buf bytes.Buffer
	if err := md.Convert([]byte(Markdown(run)), &buf); err != nil {
		return "", fmt.Errorf("rendering report: %w", err)
	}
	return buf.String(), nil
}

func writeComparisonTable(sb *strings.Builder, c *aggregation.Comparison) {
	sb.WriteString("## Comparison\n\n")
	if c.HasGrades {
		sb.WriteString("| Task | xl Tokens | xl Grade | xlsx Tokens | xlsx Grade | Winner | Savings |\n")
		sb.WriteString("|---|---:|:-:|---:|:-:|:-:|---:|\n")
	} else {
		sb.WriteString("| Task | xl Tokens | xlsx Tokens | Winner | Savings |\n")
		sb.WriteString("|---|---:|---:|:-:|---:|\n")
	}

	for _, tc := range c.Tasks {
		xlTokens := outcomeTokens(tc.Xl)
		xlsxTokens := outcomeTokens(tc.Xlsx)

		winner, savings := "N/A", "N/A"
		if tc.Comparable {
			winner = string(tc.Winner)
			savings = "0%"
			if tc.Winner != aggregation.WinnerTie {
				savings = fmt.Sprintf("-%.0f%%", tc.SavingsPct)
			}
		}

		if c.HasGrades {
			fmt.Fprintf(sb, "| %s | %s | %s | %s | %s | %s | %s |\n",
				tc.TaskName, xlTokens, outcomeGrade(tc.Xl), xlsxTokens, outcomeGrade(tc.Xlsx), winner, savings)
		} else {
			fmt.Fprintf(sb, "| %s | %s | %s | %s | %s |\n",
				tc.TaskName, xlTokens, xlsxTokens, winner, savings)
		}
	}
	sb.WriteString("\n")
}

func writeSummary(sb *strings.Builder, c *aggregation.Comparison) {
	sb.WriteString("## Summary\n\n")
	if c.ComparableTasks == 0 {
		sb.WriteString("No tasks produced results for both approaches.\n\n")
		return
	}

	fmt.Fprintf(sb, "- xl wins %d task(s), xlsx wins %d task(s)\n", c.Xl.Wins, c.Xlsx.Wins)
	fmt.Fprintf(sb, "- Total tokens: xl=%d, xlsx=%d\n", c.Xl.TotalTokens, c.Xlsx.TotalTokens)
	switch c.Winner {
	case aggregation.WinnerXl:
		fmt.Fprintf(sb, "- xl uses %.1f%% fewer tokens overall\n", c.SavingsPct)
	case aggregation.WinnerXlsx:
		fmt.Fprintf(sb, "- xlsx uses %.1f%% fewer tokens overall\n", c.SavingsPct)
	default:
		sb.WriteString("- Both approaches used the same number of tokens\n")
	}
	sb.WriteString("\n")
}

func writeGrades(sb *strings.Builder, c *aggregation.Comparison) {
	if !c.HasGrades {
		return
	}
	sb.WriteString("## Grades\n\n")
	for _, approach := range models.ApproachOrder {
		summary := c.Summary(approach)
		if len(summary.GradeCounts) == 0 {
			continue
		}
		avg := "-"
		if summary.AverageGrade != "" {
			avg = string(summary.AverageGrade)
		}
		fmt.Fprintf(sb, "- **%s**: average %s (%s)\n", approach, avg, formatGradeCounts(summary.GradeCounts))
	}
	sb.WriteString("\n")
}

func writeFailures(sb *strings.Builder, run *models.BenchmarkRun) {
	var failed []models.TaskOutcome
	for _, o := range run.Results {
		if !o.Success {
			failed = append(failed, o)
		}
	}
	if len(failed) == 0 {
		return
	}

	sb.WriteString("## Failures\n\n")
	for _, o := range failed {
		fmt.Fprintf(sb, "- %s (%s): %s\n", o.TaskName, o.Approach, o.Error)
	}
	sb.WriteString("\n")
}

func outcomeTokens(o *models.TaskOutcome) string {
	if o == nil {
		return "-"
	}
	if !o.Success {
		return "ERR"
	}
	return fmt.Sprintf("%d", o.TotalTokens)
}

func outcomeGrade(o *models.TaskOutcome) string {
	if o == nil || !o.Graded() {
		return "-"
	}
	return string(o.Grade)
}

func formatGradeCounts(counts map[models.Grade]int) string {
	var parts []string
	for _, g := range append(models.LetterGrades, models.GradeUnknown) {
		if n := counts[g]; n > 0 {
			parts = append(parts, fmt.Sprintf("%s:%d", g, n))
		}
	}
	return strings.Join(parts, ", ")
}
