package execution

import (
	"context"
	"fmt"
	"sync"

	"github.com/tjc-lp/xlbench/internal/models"
)

// MockEngine is a simple in-memory engine for tests. Responses can be
// scripted per (task, approach); unscripted requests get a canned success.
type MockEngine struct {
	mu        sync.Mutex
	responses map[string]*Response
	failures  map[string]error
	executed  []string

	initErr error
}

// NewMockEngine creates a new mock engine.
func NewMockEngine() *MockEngine {
	return &MockEngine{
		responses: map[string]*Response{},
		failures:  map[string]error{},
	}
}

func mockKey(taskID string, approach models.Approach) string {
	return taskID + "/" + string(approach)
}

// RespondWith scripts a successful response for one (task, approach).
func (m *MockEngine) RespondWith(taskID string, approach models.Approach, resp *Response) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses[mockKey(taskID, approach)] = resp
}

// FailWith scripts an execution failure for one (task, approach).
func (m *MockEngine) FailWith(taskID string, approach models.Approach, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures[mockKey(taskID, approach)] = err
}

// FailInitialize makes Initialize return the given error.
func (m *MockEngine) FailInitialize(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.initErr = err
}

// Executed returns the "taskID/approach" keys in execution order.
func (m *MockEngine) Executed() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.executed))
	copy(out, m.executed)
	return out
}

func (m *MockEngine) Initialize(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.initErr
}

func (m *MockEngine) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	key := mockKey(req.Task.ID, req.Approach)
	m.executed = append(m.executed, key)

	if err, ok := m.failures[key]; ok {
		return nil, err
	}
	if resp, ok := m.responses[key]; ok {
		return resp, nil
	}

	return &Response{
		Text:         fmt.Sprintf("Mock response for %s (%s)", req.Task.Name, req.Approach),
		InputTokens:  100,
		OutputTokens: 50,
		StopReason:   "end_turn",
	}, nil
}

func (m *MockEngine) Shutdown(ctx context.Context) error {
	return nil
}
