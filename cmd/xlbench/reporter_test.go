package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tjc-lp/xlbench/internal/models"
)

func comparisonRun() *models.BenchmarkRun {
	return &models.BenchmarkRun{
		RunID:      "run-console",
		Timestamp:  "20260829_142501",
		Model:      "claude-sonnet-4-5-20250929",
		SampleFile: "sample.xlsx",
		Results: []models.TaskOutcome{
			{
				TaskID: "list_sheets", TaskName: "List Sheets", Approach: models.ApproachXl,
				Success: true, InputTokens: 900, OutputTokens: 100, TotalTokens: 1000,
				Grade: models.GradeA,
			},
			{
				TaskID: "list_sheets", TaskName: "List Sheets", Approach: models.ApproachXlsx,
				Success: true, InputTokens: 3600, OutputTokens: 400, TotalTokens: 4000,
				Grade: models.GradeB,
			},
			{
				TaskID: "search", TaskName: "Search", Approach: models.ApproachXl,
				Success: true, InputTokens: 1800, OutputTokens: 200, TotalTokens: 2000,
				Grade: models.GradeA,
			},
			{
				TaskID: "search", TaskName: "Search", Approach: models.ApproachXlsx,
				Error: "api error 529: Overloaded",
			},
		},
	}
}

func TestPrintComparison_WithGrades(t *testing.T) {
	var sb strings.Builder
	PrintComparison(&sb, comparisonRun())
	out := sb.String()

	assert.Contains(t, out, "TOKEN EFFICIENCY COMPARISON: xl CLI vs Anthropic xlsx Skill")
	assert.Contains(t, out, "xl Grade")
	assert.Contains(t, out, "xlsx Grade")

	// Token counts carry thousands separators.
	assert.Contains(t, out, "1,000")
	assert.Contains(t, out, "4,000")
	assert.Contains(t, out, "-75%")

	// The failed xlsx side shows ERR and the row is excluded from totals.
	assert.Contains(t, out, "ERR")
	assert.Contains(t, out, "N/A")
	assert.Contains(t, out, "TOTAL")

	assert.Contains(t, out, "Summary: xl wins 1 tasks, xlsx wins 0 tasks")
	assert.Contains(t, out, "Total tokens: xl=1,000, xlsx=4,000")
	assert.Contains(t, out, "xl CLI uses 75.0% fewer tokens overall")

	assert.Contains(t, out, "Grade distribution:")
	assert.Contains(t, out, "xl: A:2")
	assert.Contains(t, out, "xlsx: B:1")
}

func TestPrintComparison_WithoutGrades(t *testing.T) {
	run := comparisonRun()
	for i := range run.Results {
		run.Results[i].Grade = ""
	}

	var sb strings.Builder
	PrintComparison(&sb, run)
	out := sb.String()

	assert.Contains(t, out, "xl Input")
	assert.Contains(t, out, "xlsx Output")
	assert.NotContains(t, out, "Grade distribution:")
}

func TestPrintComparison_Tie(t *testing.T) {
	run := &models.BenchmarkRun{
		Results: []models.TaskOutcome{
			{TaskID: "a", TaskName: "A", Approach: models.ApproachXl, Success: true, TotalTokens: 500},
			{TaskID: "a", TaskName: "A", Approach: models.ApproachXlsx, Success: true, TotalTokens: 500},
		},
	}

	var sb strings.Builder
	PrintComparison(&sb, run)
	out := sb.String()

	assert.Contains(t, out, "tie")
	assert.Contains(t, out, "Summary: xl wins 0 tasks, xlsx wins 0 tasks")
	assert.NotContains(t, out, "fewer tokens overall")
}
