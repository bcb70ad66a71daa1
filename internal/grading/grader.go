// Package grading judges task responses against their expected answers
// with a structured-output completion call.
package grading

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/tjc-lp/xlbench/internal/anthropic"
	"github.com/tjc-lp/xlbench/internal/models"
	"github.com/tjc-lp/xlbench/internal/validation"
	"github.com/tjc-lp/xlbench/schemas"
)

// Grader assigns a letter grade and reasoning to a task response. A
// grader never fails: when the judgment itself cannot be obtained it
// returns models.GradeUnknown with the reason explaining why.
type Grader interface {
	Grade(ctx context.Context, task models.TaskDefinition, responseText string) (models.Grade, string)
}

// noAnswer is what the judge sees when a task has no ground truth.
const noAnswer = "No expected answer provided"

// Service grades through the completion service using structured outputs.
type Service struct {
	api       anthropic.API
	model     string
	maxTokens int
}

// NewService creates a grading service using the given judge model.
func NewService(api anthropic.API, model string, maxTokens int) *Service {
	return &Service{api: api, model: model, maxTokens: maxTokens}
}

// Grade implements [Grader].
func (s *Service) Grade(ctx context.Context, task models.TaskDefinition, responseText string) (models.Grade, string) {
	req := &anthropic.MessageRequest{
		Model:     s.model,
		MaxTokens: s.maxTokens,
		Messages: []anthropic.Message{
			anthropic.UserMessage(anthropic.TextBlock(buildGradingPrompt(task, responseText))),
		},
		OutputFormat: anthropic.JSONSchemaFormat(schemas.GradeSchemaJSON),
		Betas:        []string{anthropic.BetaStructuredOutputs},
	}

	resp, err := s.api.Messages(ctx, req)
	if err != nil {
		return gradingError(ctx, task, err)
	}

	verdict := []byte(resp.Text())
	if errs := validation.ValidateGradeBytes(verdict); len(errs) > 0 {
		return gradingError(ctx, task, fmt.Errorf("invalid verdict: %s", strings.Join(errs, "; ")))
	}

	var parsed struct {
		Grade  models.Grade `json:"grade"`
		Reason string       `json:"reason"`
	}
	if err := json.Unmarshal(verdict, &parsed); err != nil {
		return gradingError(ctx, task, err)
	}

	return parsed.Grade, parsed.Reason
}

func gradingError(ctx context.Context, task models.TaskDefinition, err error) (models.Grade, string) {
	slog.WarnContext(ctx, "Grading failed", "task", task.ID, "error", err)
	return models.GradeUnknown, fmt.Sprintf("Grading error: %v", err)
}

// buildGradingPrompt renders the fixed grading instructions around the
// task, its ground truth and the candidate response.
func buildGradingPrompt(task models.TaskDefinition, responseText string) string {
	expected := task.ExpectedAnswer
	if expected == "" {
		expected = noAnswer
	}

	return fmt.Sprintf(`You are grading an AI's response to an Excel analysis task.

TASK: %s
PROMPT: %s

EXPECTED ANSWER (ground truth):
%s

AI'S ACTUAL RESPONSE:
%s

Grade the response on correctness:
- A: Fully correct, all key information present
- B: Mostly correct, minor details missing or slight inaccuracies
- C: Partially correct, some key information wrong or missing
- D: Mostly incorrect, but shows some understanding
- F: Completely wrong or didn't answer the question`,
		task.Name, task.XlPrompt, expected, responseText)
}
