package models

import (
	"fmt"

	"github.com/go-viper/mapstructure/v2"
)

// Approach identifies one of the two competing ways of solving a task.
type Approach string

const (
	// ApproachXl solves tasks with the custom xl CLI skill.
	ApproachXl Approach = "xl"
	// ApproachXlsx solves tasks with the provider's built-in xlsx skill.
	ApproachXlsx Approach = "xlsx"
)

// ApproachOrder is the fixed order approaches run in and report in.
var ApproachOrder = []Approach{ApproachXl, ApproachXlsx}

// TaskDefinition is a single benchmark task from the catalog.
type TaskDefinition struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
	XlPrompt    string `yaml:"xl_prompt"`
	XlsxPrompt  string `yaml:"xlsx_prompt"`

	// ExpectedAnswer is the grading ground truth. Optional; tasks without
	// one are still graded, with the judge told no reference exists.
	ExpectedAnswer string `yaml:"expected_answer,omitempty"`

	// Large marks tasks that need the large sample workbook. They only run
	// when explicitly requested.
	Large bool `yaml:"large,omitempty"`

	// Options holds loosely-typed per-task overrides, decoded on demand
	// into TaskOptions.
	Options map[string]any `yaml:"options,omitempty"`
}

// TaskOptions are the recognized per-task overrides.
type TaskOptions struct {
	// MaxTokens overrides the completion token cap for this task.
	MaxTokens int `mapstructure:"max_tokens"`
}

// DecodeOptions decodes the task's raw Options map into typed TaskOptions.
// Unknown keys are rejected so catalog typos surface at load time.
func (t *TaskDefinition) DecodeOptions() (*TaskOptions, error) {
	opts := &TaskOptions{}
	if len(t.Options) == 0 {
		return opts, nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      opts,
		ErrorUnused: true,
	})
	if err != nil {
		return nil, fmt.Errorf("building options decoder: %w", err)
	}
	if err := decoder.Decode(t.Options); err != nil {
		return nil, fmt.Errorf("task %q options: %w", t.ID, err)
	}
	return opts, nil
}

// PromptFor returns the prompt text for the given approach.
func (t *TaskDefinition) PromptFor(approach Approach) string {
	if approach == ApproachXlsx {
		return t.XlsxPrompt
	}
	return t.XlPrompt
}

// Validate checks the fields every task must carry.
func (t *TaskDefinition) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("task is missing an id")
	}
	if t.Name == "" {
		return fmt.Errorf("task %q is missing a name", t.ID)
	}
	if t.XlPrompt == "" {
		return fmt.Errorf("task %q is missing xl_prompt", t.ID)
	}
	if t.XlsxPrompt == "" {
		return fmt.Errorf("task %q is missing xlsx_prompt", t.ID)
	}
	if _, err := t.DecodeOptions(); err != nil {
		return err
	}
	return nil
}
