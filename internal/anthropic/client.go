// Package anthropic is a minimal typed client for the parts of the
// Anthropic REST API the benchmark touches: the Messages API with
// container skills and code execution, the Files API, and the Skills API.
package anthropic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	defaultBaseURL = "https://api.anthropic.com"
	apiVersion     = "2023-06-01"

	// maxErrorBody caps how much of an error response body is read.
	maxErrorBody = 1 << 20
)

// Beta feature flags sent in the anthropic-beta header.
const (
	BetaCodeExecution     = "code-execution-2025-08-25"
	BetaSkills            = "skills-2025-10-02"
	BetaFilesAPI          = "files-api-2025-04-14"
	BetaStructuredOutputs = "structured-outputs-2025-11-13"
)

// API is the subset of the service the benchmark uses. *Client implements
// it; tests substitute a generated mock.
type API interface {
	Messages(ctx context.Context, req *MessageRequest) (*MessageResponse, error)
	UploadFile(ctx context.Context, filename string, r io.Reader) (*File, error)
	ListSkills(ctx context.Context, source string) ([]Skill, error)
	CreateSkill(ctx context.Context, displayTitle string, files []SkillFile) (*Skill, error)
}

// Client talks to the Anthropic REST API. It is safe for concurrent use.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

var _ API = (*Client)(nil)

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithBaseURL points the client at a different endpoint. Used by tests to
// target an httptest server.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient swaps the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient builds a client authenticated with the given API key.
func NewClient(apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			// Container tasks routinely run for minutes.
			Timeout: 10 * time.Minute,
		},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// newRequest builds an authenticated request. Beta flags go into the
// anthropic-beta header, one header value per flag.
func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader, betas []string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("building %s %s request: %w", method, path, err)
	}
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", apiVersion)
	for _, beta := range betas {
		req.Header.Add("anthropic-beta", beta)
	}
	return req, nil
}

// doJSON executes req and decodes a 2xx response body into out.
func (c *Client) doJSON(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return apiErrorFromResponse(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s response: %w", req.URL.Path, err)
	}
	return nil
}

// postJSON marshals body and POSTs it as JSON.
func (c *Client) postJSON(ctx context.Context, path string, betas []string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encoding %s request: %w", path, err)
	}
	req, err := c.newRequest(ctx, http.MethodPost, path, bytes.NewReader(payload), betas)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.doJSON(req, out)
}
