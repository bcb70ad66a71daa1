// Package config holds the immutable configuration for a benchmark run.
package config

import "github.com/tjc-lp/xlbench/internal/models"

const (
	// DefaultModel runs the benchmark tasks.
	DefaultModel = "claude-sonnet-4-5-20250929"
	// DefaultJudgeModel grades task responses.
	DefaultJudgeModel = "claude-opus-4-5-20251101"

	// DefaultMaxTokens caps the completion for a benchmark task.
	DefaultMaxTokens = 2048
	// DefaultJudgeMaxTokens caps the completion for a grading call.
	DefaultJudgeMaxTokens = 256
)

// RunConfig carries everything a benchmark run needs. Construct it with
// NewRunConfig and treat it as read-only afterwards.
type RunConfig struct {
	sampleFile string

	model          string
	judgeModel     string
	maxTokens      int
	judgeMaxTokens int

	approaches  []models.Approach
	sequential  bool
	workers     int
	grading     bool
	largeTasks  bool
	taskFilters []string

	assetsDir  string
	resultsDir string
	outputPath string

	verbose bool
}

// Option configures a RunConfig.
type Option func(*RunConfig)

// NewRunConfig builds a RunConfig for the given sample workbook, applying
// defaults first and then the options in order.
func NewRunConfig(sampleFile string, opts ...Option) *RunConfig {
	cfg := &RunConfig{
		sampleFile:     sampleFile,
		model:          DefaultModel,
		judgeModel:     DefaultJudgeModel,
		maxTokens:      DefaultMaxTokens,
		judgeMaxTokens: DefaultJudgeMaxTokens,
		approaches:     models.ApproachOrder,
		grading:        true,
		resultsDir:     "results",
	}
	for _, o := range opts {
		o(cfg)
	}
	return cfg
}

// WithModel overrides the task model.
func WithModel(model string) Option {
	return func(c *RunConfig) {
		if model != "" {
			c.model = model
		}
	}
}

// WithJudgeModel overrides the grading model.
func WithJudgeModel(model string) Option {
	return func(c *RunConfig) {
		if model != "" {
			c.judgeModel = model
		}
	}
}

// WithMaxTokens overrides the per-task completion cap.
func WithMaxTokens(n int) Option {
	return func(c *RunConfig) {
		if n > 0 {
			c.maxTokens = n
		}
	}
}

// WithApproaches limits the run to the given approaches. The canonical
// order is preserved regardless of argument order.
func WithApproaches(approaches ...models.Approach) Option {
	return func(c *RunConfig) {
		if len(approaches) == 0 {
			return
		}
		var ordered []models.Approach
		for _, a := range models.ApproachOrder {
			for _, want := range approaches {
				if a == want {
					ordered = append(ordered, a)
					break
				}
			}
		}
		if len(ordered) > 0 {
			c.approaches = ordered
		}
	}
}

// WithSequential disables concurrent task execution.
func WithSequential(sequential bool) Option {
	return func(c *RunConfig) {
		c.sequential = sequential
	}
}

// WithWorkers bounds how many tasks run at once in concurrent mode.
// Zero or negative means unbounded.
func WithWorkers(n int) Option {
	return func(c *RunConfig) {
		c.workers = n
	}
}

// WithGrading toggles judge grading of successful responses.
func WithGrading(enabled bool) Option {
	return func(c *RunConfig) {
		c.grading = enabled
	}
}

// WithLargeTasks includes the large-file tasks in the run.
func WithLargeTasks(enabled bool) Option {
	return func(c *RunConfig) {
		c.largeTasks = enabled
	}
}

// WithTaskFilters sets glob patterns used to filter tasks by id or name.
func WithTaskFilters(patterns ...string) Option {
	return func(c *RunConfig) {
		c.taskFilters = patterns
	}
}

// WithAssetsDir sets where the xl binary and skill bundle live (or get
// downloaded to).
func WithAssetsDir(dir string) Option {
	return func(c *RunConfig) {
		c.assetsDir = dir
	}
}

// WithResultsDir sets the directory run records are saved into.
func WithResultsDir(dir string) Option {
	return func(c *RunConfig) {
		if dir != "" {
			c.resultsDir = dir
		}
	}
}

// WithOutputPath pins the record to an exact file path instead of a
// timestamped file under the results directory.
func WithOutputPath(path string) Option {
	return func(c *RunConfig) {
		c.outputPath = path
	}
}

// WithVerbose enables verbose progress output.
func WithVerbose(verbose bool) Option {
	return func(c *RunConfig) {
		c.verbose = verbose
	}
}

func (c *RunConfig) SampleFile() string           { return c.sampleFile }
func (c *RunConfig) Model() string                { return c.model }
func (c *RunConfig) JudgeModel() string           { return c.judgeModel }
func (c *RunConfig) MaxTokens() int               { return c.maxTokens }
func (c *RunConfig) JudgeMaxTokens() int          { return c.judgeMaxTokens }
func (c *RunConfig) Approaches() []models.Approach { return c.approaches }
func (c *RunConfig) Sequential() bool             { return c.sequential }
func (c *RunConfig) Workers() int                 { return c.workers }
func (c *RunConfig) Grading() bool                { return c.grading }
func (c *RunConfig) LargeTasks() bool             { return c.largeTasks }
func (c *RunConfig) TaskFilters() []string        { return c.taskFilters }
func (c *RunConfig) AssetsDir() string            { return c.assetsDir }
func (c *RunConfig) ResultsDir() string           { return c.resultsDir }
func (c *RunConfig) OutputPath() string           { return c.outputPath }
func (c *RunConfig) Verbose() bool                { return c.verbose }

// WantsApproach reports whether the run includes the given approach.
func (c *RunConfig) WantsApproach(a models.Approach) bool {
	for _, want := range c.approaches {
		if want == a {
			return true
		}
	}
	return false
}
