package execution

import (
	"context"
	"fmt"

	"github.com/tjc-lp/xlbench/internal/anthropic"
	"github.com/tjc-lp/xlbench/internal/models"
)

// xlSystemPrompt instructs the model to use the uploaded xl binary.
const xlSystemPrompt = `You have access to the xl CLI tool for Excel operations.

The xl binary has been uploaded to /mnt/user/xl-linux-amd64 - make it executable first.
The Excel file is at /mnt/user/sample.xlsx

Use xl commands to complete the task. Be concise in your response.`

// xlsxSystemPrompt instructs the model to use the built-in xlsx skill.
const xlsxSystemPrompt = `You have access to the xlsx skill for Excel operations.

The Excel file is at /mnt/user/sample.xlsx

Use Python with openpyxl to complete the task. Be concise in your response.`

// taskBetas enable container skills, code execution and file access for
// benchmark completions.
var taskBetas = []string{anthropic.BetaCodeExecution, anthropic.BetaSkills, anthropic.BetaFilesAPI}

// AnthropicEngine executes tasks through the Messages API with a
// code-execution container.
type AnthropicEngine struct {
	api anthropic.API
}

// NewAnthropicEngine creates an engine backed by the given API client.
func NewAnthropicEngine(api anthropic.API) *AnthropicEngine {
	return &AnthropicEngine{api: api}
}

func (e *AnthropicEngine) Initialize(ctx context.Context) error {
	return nil
}

func (e *AnthropicEngine) Execute(ctx context.Context, req *Request) (*Response, error) {
	msgReq, err := buildMessageRequest(req)
	if err != nil {
		return nil, err
	}

	resp, err := e.api.Messages(ctx, msgReq)
	if err != nil {
		return nil, err
	}

	return &Response{
		Text:         resp.Text(),
		InputTokens:  resp.Usage.InputTokens,
		OutputTokens: resp.Usage.OutputTokens,
		StopReason:   resp.StopReason,
	}, nil
}

func (e *AnthropicEngine) Shutdown(ctx context.Context) error {
	return nil
}

// buildMessageRequest assembles the approach-specific Messages request:
// the xl approach attaches the custom skill plus the binary and workbook
// uploads, the xlsx approach attaches the built-in skill and only the
// workbook.
func buildMessageRequest(req *Request) (*anthropic.MessageRequest, error) {
	if req.Handles.SampleFileID == "" {
		return nil, fmt.Errorf("no sample file uploaded")
	}

	var container *anthropic.Container
	var content []anthropic.ContentBlock

	switch req.Approach {
	case models.ApproachXl:
		if req.Handles.SkillID == "" || req.Handles.BinaryFileID == "" {
			return nil, fmt.Errorf("xl approach requires a provisioned skill and binary upload")
		}
		container = &anthropic.Container{
			Skills: []anthropic.ContainerSkill{
				{Type: "custom", SkillID: req.Handles.SkillID, Version: "latest"},
			},
		}
		content = []anthropic.ContentBlock{
			anthropic.TextBlock(req.Task.PromptFor(req.Approach)),
			anthropic.ContainerUploadBlock(req.Handles.BinaryFileID),
			anthropic.ContainerUploadBlock(req.Handles.SampleFileID),
		}

	case models.ApproachXlsx:
		container = &anthropic.Container{
			Skills: []anthropic.ContainerSkill{
				{Type: "anthropic", SkillID: "xlsx", Version: "latest"},
			},
		}
		content = []anthropic.ContentBlock{
			anthropic.TextBlock(req.Task.PromptFor(req.Approach)),
			anthropic.ContainerUploadBlock(req.Handles.SampleFileID),
		}

	default:
		return nil, fmt.Errorf("unknown approach %q", req.Approach)
	}

	return &anthropic.MessageRequest{
		Model:     req.Model,
		MaxTokens: req.MaxTokens,
		System:    systemPromptFor(req.Approach),
		Messages:  []anthropic.Message{anthropic.UserMessage(content...)},
		Container: container,
		Tools:     []anthropic.Tool{anthropic.CodeExecutionTool()},
		Betas:     taskBetas,
	}, nil
}

func systemPromptFor(approach models.Approach) string {
	if approach == models.ApproachXlsx {
		return xlsxSystemPrompt
	}
	return xlSystemPrompt
}
