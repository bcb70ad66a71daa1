// Package aggregation turns raw task outcomes into the cross-approach
// comparison: per-task winners, token savings, and grade summaries.
package aggregation

import (
	"github.com/tjc-lp/xlbench/internal/models"
)

// Winner is "xl", "xlsx" or "tie".
type Winner string

const (
	WinnerXl   Winner = Winner(models.ApproachXl)
	WinnerXlsx Winner = Winner(models.ApproachXlsx)
	WinnerTie  Winner = "tie"
)

// TaskComparison pairs the two outcomes of one task. A task is comparable
// only when both approaches ran and both succeeded; otherwise it is
// reported with whatever partial data exists and excluded from savings and
// run totals.
type TaskComparison struct {
	TaskID   string
	TaskName string

	Xl   *models.TaskOutcome
	Xlsx *models.TaskOutcome

	Comparable bool
	Winner     Winner
	// SavingsPct is (loser − winner) / loser × 100. Zero on a tie.
	SavingsPct float64
}

// ApproachSummary aggregates one approach across the comparable tasks.
type ApproachSummary struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
	Wins         int

	// GradeCounts includes every recorded grade, "?" included. The mean
	// behind AverageGrade skips "?".
	GradeCounts  map[models.Grade]int
	AverageGrade models.Grade
}

// Comparison is the aggregate view of one run's results.
type Comparison struct {
	// Tasks preserves first-appearance order of task ids in the results.
	Tasks []TaskComparison

	Xl   ApproachSummary
	Xlsx ApproachSummary

	// Winner and SavingsPct compare summed totals over comparable tasks.
	// Winner is empty when no task was comparable.
	Winner     Winner
	SavingsPct float64

	ComparableTasks int
	HasGrades       bool
}

// Aggregate builds the comparison for a flat result list. It assumes at
// most one outcome per (task, approach), which the orchestrator guarantees.
func Aggregate(results []models.TaskOutcome) *Comparison {
	comparison := &Comparison{
		Xl:   ApproachSummary{GradeCounts: map[models.Grade]int{}},
		Xlsx: ApproachSummary{GradeCounts: map[models.Grade]int{}},
	}

	var order []string
	byTask := map[string]*TaskComparison{}
	var xlGrades, xlsxGrades []models.Grade

	for i := range results {
		outcome := &results[i]

		tc, ok := byTask[outcome.TaskID]
		if !ok {
			order = append(order, outcome.TaskID)
			tc = &TaskComparison{TaskID: outcome.TaskID, TaskName: outcome.TaskName}
			byTask[outcome.TaskID] = tc
		}
		switch outcome.Approach {
		case models.ApproachXl:
			tc.Xl = outcome
		case models.ApproachXlsx:
			tc.Xlsx = outcome
		}

		if outcome.Graded() {
			comparison.HasGrades = true
			switch outcome.Approach {
			case models.ApproachXl:
				comparison.Xl.GradeCounts[outcome.Grade]++
				xlGrades = append(xlGrades, outcome.Grade)
			case models.ApproachXlsx:
				comparison.Xlsx.GradeCounts[outcome.Grade]++
				xlsxGrades = append(xlsxGrades, outcome.Grade)
			}
		}
	}

	for _, taskID := range order {
		tc := byTask[taskID]
		if tc.Xl != nil && tc.Xlsx != nil && tc.Xl.Success && tc.Xlsx.Success {
			tc.Comparable = true
			tc.Winner, tc.SavingsPct = decideWinner(tc.Xl.TotalTokens, tc.Xlsx.TotalTokens)

			comparison.ComparableTasks++
			comparison.Xl.InputTokens += tc.Xl.InputTokens
			comparison.Xl.OutputTokens += tc.Xl.OutputTokens
			comparison.Xl.TotalTokens += tc.Xl.TotalTokens
			comparison.Xlsx.InputTokens += tc.Xlsx.InputTokens
			comparison.Xlsx.OutputTokens += tc.Xlsx.OutputTokens
			comparison.Xlsx.TotalTokens += tc.Xlsx.TotalTokens

			switch tc.Winner {
			case WinnerXl:
				comparison.Xl.Wins++
			case WinnerXlsx:
				comparison.Xlsx.Wins++
			}
		}
		comparison.Tasks = append(comparison.Tasks, *tc)
	}

	if comparison.ComparableTasks > 0 {
		comparison.Winner, comparison.SavingsPct = decideWinner(comparison.Xl.TotalTokens, comparison.Xlsx.TotalTokens)
	}

	if mean, ok := models.AverageGrade(xlGrades); ok {
		comparison.Xl.AverageGrade = models.BucketGrade(mean)
	}
	if mean, ok := models.AverageGrade(xlsxGrades); ok {
		comparison.Xlsx.AverageGrade = models.BucketGrade(mean)
	}

	return comparison
}

// decideWinner applies the strictly-fewer-tokens rule. Equal totals are a
// tie with zero savings, so swapping the arguments flips xl and xlsx but
// never changes a tie.
func decideWinner(xlTotal, xlsxTotal int) (Winner, float64) {
	switch {
	case xlTotal < xlsxTotal:
		return WinnerXl, float64(xlsxTotal-xlTotal) / float64(xlsxTotal) * 100
	case xlsxTotal < xlTotal:
		return WinnerXlsx, float64(xlTotal-xlsxTotal) / float64(xlTotal) * 100
	default:
		return WinnerTie, 0
	}
}

// Summary returns the approach summary for a, defaulting to xl.
func (c *Comparison) Summary(a models.Approach) *ApproachSummary {
	if a == models.ApproachXlsx {
		return &c.Xlsx
	}
	return &c.Xl
}
