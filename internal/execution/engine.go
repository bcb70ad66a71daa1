package execution

import (
	"context"

	"github.com/tjc-lp/xlbench/internal/models"
)

// Engine executes a single benchmark task against the completion service.
type Engine interface {
	// Initialize sets up the engine
	Initialize(ctx context.Context) error

	// Execute runs one (task, approach) completion
	Execute(ctx context.Context, req *Request) (*Response, error)

	// Shutdown cleans up resources
	Shutdown(ctx context.Context) error
}

// Handles are the provisioned service-side resources a request needs.
// SampleFileID is always set; BinaryFileID and SkillID only when the xl
// approach runs.
type Handles struct {
	SampleFileID string
	BinaryFileID string
	SkillID      string
}

// Request is one (task, approach) execution request.
type Request struct {
	Task      models.TaskDefinition
	Approach  models.Approach
	Model     string
	MaxTokens int
	Handles   Handles
}

// Response is the result of a successful execution.
type Response struct {
	// Text is the concatenation of the completion's text blocks, in
	// order. May be empty.
	Text         string
	InputTokens  int
	OutputTokens int
	StopReason   string
}

// TotalTokens returns the combined token count of the completion.
func (r *Response) TotalTokens() int {
	return r.InputTokens + r.OutputTokens
}
