package models

// TaskOutcome is the result of running one (task, approach) pair. A runner
// produces exactly one of these per attempt, whether or not the completion
// call succeeded.
//
// Token fields obey two invariants: on success TotalTokens equals
// InputTokens + OutputTokens, and on failure all three are zero. LatencyMs
// is elapsed wall time in both cases.
type TaskOutcome struct {
	TaskID       string   `json:"task_id"`
	TaskName     string   `json:"task_name"`
	Approach     Approach `json:"approach"`
	Success      bool     `json:"success"`
	InputTokens  int      `json:"input_tokens"`
	OutputTokens int      `json:"output_tokens"`
	TotalTokens  int      `json:"total_tokens"`
	LatencyMs    int64    `json:"latency_ms"`

	// Error is set only when Success is false.
	Error string `json:"error,omitempty"`

	// ResponseText is the concatenated text blocks of the completion.
	// Absent when the call failed or produced no text.
	ResponseText string `json:"response_text,omitempty"`

	// Grade and GradeReasoning are set only when grading ran for this
	// outcome. Grade is "?" when the grading call itself failed.
	Grade          Grade  `json:"grade,omitempty"`
	GradeReasoning string `json:"grade_reasoning,omitempty"`
}

// Graded reports whether a judge verdict was recorded for this outcome.
func (o *TaskOutcome) Graded() bool {
	return o.Grade != ""
}

// TimestampLayout formats run timestamps; record filenames reuse it.
const TimestampLayout = "20060102_150405"

// BenchmarkRun is the persisted record of one full benchmark invocation.
type BenchmarkRun struct {
	RunID      string        `json:"run_id"`
	Timestamp  string        `json:"timestamp"`
	Model      string        `json:"model"`
	SampleFile string        `json:"sample_file"`
	Results    []TaskOutcome `json:"results"`
}

// OutcomesFor returns the run's outcomes for one approach, in record order.
func (r *BenchmarkRun) OutcomesFor(approach Approach) []TaskOutcome {
	var out []TaskOutcome
	for _, o := range r.Results {
		if o.Approach == approach {
			out = append(out, o)
		}
	}
	return out
}
