package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/tjc-lp/xlbench/internal/aggregation"
	"github.com/tjc-lp/xlbench/internal/models"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const tableWidth = 120

// numPrinter renders token counts with thousands separators.
var numPrinter = message.NewPrinter(language.English)

// PrintComparison renders the cross-approach comparison table for a run.
func PrintComparison(w io.Writer, run *models.BenchmarkRun) {
	c := aggregation.Aggregate(run.Results)

	fmt.Fprintln(w)
	fmt.Fprintln(w, strings.Repeat("=", tableWidth))
	fmt.Fprintln(w, "TOKEN EFFICIENCY COMPARISON: xl CLI vs Anthropic xlsx Skill")
	fmt.Fprintln(w, strings.Repeat("=", tableWidth))

	if c.HasGrades {
		fmt.Fprintf(w, "%s | %s | %s | %s | %s | %s | %s\n",
			padRight("Task", 20), padLeft("xl Tokens", 10), padLeft("xl Grade", 8),
			padLeft("xlsx Tokens", 11), padLeft("xlsx Grade", 10), padLeft("Winner", 8), padLeft("Savings", 8))
	} else {
		fmt.Fprintf(w, "%s | %s | %s | %s | %s | %s | %s\n",
			padRight("Task", 20), padLeft("xl Input", 10), padLeft("xl Output", 10),
			padLeft("xlsx Input", 11), padLeft("xlsx Output", 12), padLeft("Winner", 8), padLeft("Savings", 8))
	}
	fmt.Fprintln(w, strings.Repeat("-", tableWidth))

	for _, tc := range c.Tasks {
		printTaskRow(w, c, tc)
	}

	fmt.Fprintln(w, strings.Repeat("-", tableWidth))
	printTotalRow(w, c)
	fmt.Fprintln(w, strings.Repeat("=", tableWidth))

	printRunSummary(w, c)
}

func printTaskRow(w io.Writer, c *aggregation.Comparison, tc aggregation.TaskComparison) {
	if tc.Comparable {
		winner := string(tc.Winner)
		savings := "0%"
		if tc.Winner != aggregation.WinnerTie {
			savings = fmt.Sprintf("-%.0f%%", tc.SavingsPct)
		}

		if c.HasGrades {
			fmt.Fprintf(w, "%s | %s | %s | %s | %s | %s | %s\n",
				padRight(tc.TaskName, 20),
				padLeft(numPrinter.Sprintf("%d", tc.Xl.TotalTokens), 10),
				padLeft(gradeCell(tc.Xl), 8),
				padLeft(numPrinter.Sprintf("%d", tc.Xlsx.TotalTokens), 11),
				padLeft(gradeCell(tc.Xlsx), 10),
				padLeft(winner, 8), padLeft(savings, 8))
		} else {
			fmt.Fprintf(w, "%s | %s | %s | %s | %s | %s | %s\n",
				padRight(tc.TaskName, 20),
				padLeft(numPrinter.Sprintf("%d", tc.Xl.InputTokens), 10),
				padLeft(numPrinter.Sprintf("%d", tc.Xl.OutputTokens), 10),
				padLeft(numPrinter.Sprintf("%d", tc.Xlsx.InputTokens), 11),
				padLeft(numPrinter.Sprintf("%d", tc.Xlsx.OutputTokens), 12),
				padLeft(winner, 8), padLeft(savings, 8))
		}
		return
	}

	// Partial row: one side missing or failed.
	if c.HasGrades {
		fmt.Fprintf(w, "%s | %s | %s | %s | %s | %s | %s\n",
			padRight(tc.TaskName, 20),
			padLeft(tokenCell(tc.Xl), 10), padLeft("-", 8),
			padLeft(tokenCell(tc.Xlsx), 11), padLeft("-", 10),
			padLeft("N/A", 8), padLeft("N/A", 8))
	} else {
		fmt.Fprintf(w, "%s | %s | %s | %s | %s | %s | %s\n",
			padRight(tc.TaskName, 20),
			padLeft(inputCell(tc.Xl), 10), padLeft(outputCell(tc.Xl), 10),
			padLeft(inputCell(tc.Xlsx), 11), padLeft(outputCell(tc.Xlsx), 12),
			padLeft("N/A", 8), padLeft("N/A", 8))
	}
}

func printTotalRow(w io.Writer, c *aggregation.Comparison) {
	if c.ComparableTasks == 0 {
		return
	}

	winner := string(c.Winner)
	savings := "0%"
	if c.Winner != aggregation.WinnerTie {
		savings = fmt.Sprintf("-%.1f%%", c.SavingsPct)
	}

	if c.HasGrades {
		fmt.Fprintf(w, "%s | %s | %s | %s | %s | %s | %s\n",
			padRight("TOTAL", 20),
			padLeft(numPrinter.Sprintf("%d", c.Xl.TotalTokens), 10),
			padLeft(avgGradeCell(&c.Xl), 8),
			padLeft(numPrinter.Sprintf("%d", c.Xlsx.TotalTokens), 11),
			padLeft(avgGradeCell(&c.Xlsx), 10),
			padLeft(winner, 8), padLeft(savings, 8))
	} else {
		fmt.Fprintf(w, "%s | %s | %s | %s | %s | %s | %s\n",
			padRight("TOTAL", 20),
			padLeft(numPrinter.Sprintf("%d", c.Xl.InputTokens), 10),
			padLeft(numPrinter.Sprintf("%d", c.Xl.OutputTokens), 10),
			padLeft(numPrinter.Sprintf("%d", c.Xlsx.InputTokens), 11),
			padLeft(numPrinter.Sprintf("%d", c.Xlsx.OutputTokens), 12),
			padLeft(winner, 8), padLeft(savings, 8))
	}
}

func printRunSummary(w io.Writer, c *aggregation.Comparison) {
	fmt.Fprintf(w, "\nSummary: xl wins %d tasks, xlsx wins %d tasks\n", c.Xl.Wins, c.Xlsx.Wins)
	numPrinter.Fprintf(w, "Total tokens: xl=%d, xlsx=%d\n", c.Xl.TotalTokens, c.Xlsx.TotalTokens)

	switch c.Winner {
	case aggregation.WinnerXl:
		fmt.Fprintf(w, "xl CLI uses %.1f%% fewer tokens overall\n", c.SavingsPct)
	case aggregation.WinnerXlsx:
		fmt.Fprintf(w, "Anthropic xlsx uses %.1f%% fewer tokens overall\n", c.SavingsPct)
	}

	if c.HasGrades {
		fmt.Fprintln(w, "\nGrade distribution:")
		for _, a := range models.ApproachOrder {
			summary := c.Summary(a)
			if len(summary.GradeCounts) == 0 {
				continue
			}
			var parts []string
			for _, g := range append(models.LetterGrades, models.GradeUnknown) {
				if n := summary.GradeCounts[g]; n > 0 {
					parts = append(parts, fmt.Sprintf("%s:%d", g, n))
				}
			}
			fmt.Fprintf(w, "  %s: %s\n", a, strings.Join(parts, ", "))
		}
	}
}

func gradeCell(o *models.TaskOutcome) string {
	if o == nil || !o.Graded() {
		return "-"
	}
	return string(o.Grade)
}

func avgGradeCell(s *aggregation.ApproachSummary) string {
	if s.AverageGrade == "" {
		return "-"
	}
	return string(s.AverageGrade)
}

func tokenCell(o *models.TaskOutcome) string {
	if o == nil {
		return "-"
	}
	if !o.Success {
		return "ERR"
	}
	return numPrinter.Sprintf("%d", o.TotalTokens)
}

func inputCell(o *models.TaskOutcome) string {
	if o == nil {
		return "-"
	}
	if !o.Success {
		return "ERR"
	}
	return numPrinter.Sprintf("%d", o.InputTokens)
}

func outputCell(o *models.TaskOutcome) string {
	if o == nil {
		return "-"
	}
	if !o.Success {
		return "ERR"
	}
	return numPrinter.Sprintf("%d", o.OutputTokens)
}

// padRight pads (or truncates) s to the given display width, accounting
// for wide runes in task names.
func padRight(s string, width int) string {
	return runewidth.FillRight(runewidth.Truncate(s, width, "…"), width)
}

func padLeft(s string, width int) string {
	return runewidth.FillLeft(s, width)
}
