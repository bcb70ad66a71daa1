package anthropic

import (
	"context"
	"encoding/json"
	"strings"
)

// Content block types used by the benchmark.
const (
	ContentTypeText            = "text"
	ContentTypeContainerUpload = "container_upload"
)

// ContentBlock is one element of a message's content, tagged by Type.
type ContentBlock struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
	// FileID is set for container_upload blocks.
	FileID string `json:"file_id,omitempty"`
}

// TextBlock builds a text content block.
func TextBlock(text string) ContentBlock {
	return ContentBlock{Type: ContentTypeText, Text: text}
}

// ContainerUploadBlock builds a block that places an uploaded file into
// the execution container.
func ContainerUploadBlock(fileID string) ContentBlock {
	return ContentBlock{Type: ContentTypeContainerUpload, FileID: fileID}
}

// Message is a single conversational turn.
type Message struct {
	Role    string         `json:"role"`
	Content []ContentBlock `json:"content"`
}

// UserMessage builds a user turn from content blocks.
func UserMessage(blocks ...ContentBlock) Message {
	return Message{Role: "user", Content: blocks}
}

// ContainerSkill attaches a skill to the request's execution container.
// Type is "custom" for uploaded skills and "anthropic" for built-ins.
type ContainerSkill struct {
	Type    string `json:"type"`
	SkillID string `json:"skill_id"`
	Version string `json:"version"`
}

// Container configures the code-execution container for a request.
type Container struct {
	Skills []ContainerSkill `json:"skills,omitempty"`
}

// Tool enables a server-side tool for the request.
type Tool struct {
	Type string `json:"type"`
	Name string `json:"name"`
}

// CodeExecutionTool enables the code execution tool.
func CodeExecutionTool() Tool {
	return Tool{Type: "code_execution_20250825", Name: "code_execution"}
}

// OutputFormat constrains the response to a JSON schema (structured
// outputs). Requires BetaStructuredOutputs.
type OutputFormat struct {
	Type   string          `json:"type"`
	Schema json.RawMessage `json:"schema"`
}

// JSONSchemaFormat builds an output format from a raw JSON schema.
func JSONSchemaFormat(schema string) *OutputFormat {
	return &OutputFormat{Type: "json_schema", Schema: json.RawMessage(schema)}
}

// MessageRequest is a Messages API request. Betas travel in the request
// header rather than the body.
type MessageRequest struct {
	Model        string        `json:"model"`
	MaxTokens    int           `json:"max_tokens"`
	System       string        `json:"system,omitempty"`
	Messages     []Message     `json:"messages"`
	Container    *Container    `json:"container,omitempty"`
	Tools        []Tool        `json:"tools,omitempty"`
	OutputFormat *OutputFormat `json:"output_format,omitempty"`

	Betas []string `json:"-"`
}

// Usage is the token accounting for one completion.
type Usage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
}

// MessageResponse is a Messages API response.
type MessageResponse struct {
	ID         string         `json:"id"`
	Model      string         `json:"model"`
	StopReason string         `json:"stop_reason"`
	Content    []ContentBlock `json:"content"`
	Usage      Usage          `json:"usage"`
}

// Text concatenates the response's text blocks in order, ignoring any
// other block types.
func (r *MessageResponse) Text() string {
	var sb strings.Builder
	for _, block := range r.Content {
		if block.Type == ContentTypeText {
			sb.WriteString(block.Text)
		}
	}
	return sb.String()
}

// Messages creates a completion.
func (c *Client) Messages(ctx context.Context, req *MessageRequest) (*MessageResponse, error) {
	var resp MessageResponse
	if err := c.postJSON(ctx, "/v1/messages", req.Betas, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
