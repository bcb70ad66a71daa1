package execution

import (
	"context"
	"time"

	"github.com/tjc-lp/xlbench/internal/models"
)

// Runner turns engine executions into TaskOutcome values. It is the
// failure boundary of the benchmark: whatever Execute does, Run returns a
// fully populated outcome and never an error.
type Runner struct {
	engine Engine
}

// NewRunner creates a runner over the given engine.
func NewRunner(engine Engine) *Runner {
	return &Runner{engine: engine}
}

// Run executes one (task, approach) pair. Exactly one completion call is
// made per invocation; there is no retry and no caching.
//
// On success the outcome carries the usage-reported token counts, with
// total = input + output, and the response text when non-empty. On any
// failure the outcome has success=false, all token counts zero, and the
// error text recorded. Latency is elapsed wall time either way.
func (r *Runner) Run(ctx context.Context, req *Request) models.TaskOutcome {
	start := time.Now()

	outcome := models.TaskOutcome{
		TaskID:   req.Task.ID,
		TaskName: req.Task.Name,
		Approach: req.Approach,
	}

	resp, err := r.engine.Execute(ctx, req)
	outcome.LatencyMs = time.Since(start).Milliseconds()

	if err != nil {
		outcome.Error = err.Error()
		return outcome
	}

	outcome.Success = true
	outcome.InputTokens = resp.InputTokens
	outcome.OutputTokens = resp.OutputTokens
	outcome.TotalTokens = resp.InputTokens + resp.OutputTokens
	outcome.ResponseText = resp.Text
	return outcome
}
