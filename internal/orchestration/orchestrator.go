// Package orchestration drives a benchmark run end to end: provisioning,
// dispatching tasks across approaches, grading, and assembling the run
// record.
package orchestration

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/tjc-lp/xlbench/internal/config"
	"github.com/tjc-lp/xlbench/internal/execution"
	"github.com/tjc-lp/xlbench/internal/grading"
	"github.com/tjc-lp/xlbench/internal/models"
	"golang.org/x/sync/errgroup"
)

// Orchestrator runs the task catalog against the configured approaches.
type Orchestrator struct {
	cfg         *config.RunConfig
	engine      execution.Engine
	runner      *execution.Runner
	provisioner Provisioner
	grader      grading.Grader

	// Progress tracking
	progressMu sync.Mutex
	listeners  []ProgressListener
}

// ProgressListener receives progress updates
type ProgressListener func(event ProgressEvent)

// EventType represents the type of progress event
type EventType string

// EventType constants
const (
	EventBenchmarkStart    EventType = "benchmark_start"
	EventBenchmarkComplete EventType = "benchmark_complete"
	EventSetupComplete     EventType = "setup_complete"
	EventTaskStart         EventType = "task_start"
	EventTaskComplete      EventType = "task_complete"
	EventApproachComplete  EventType = "approach_complete"
	EventGradeAssigned     EventType = "grade_assigned"
)

// ProgressEvent represents a progress update
type ProgressEvent struct {
	EventType  EventType
	TaskName   string
	TaskNum    int
	TotalTasks int
	Approach   models.Approach
	Outcome    *models.TaskOutcome
	DurationMs int64
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithGrader enables grading of successful responses. Without one, no
// outcome carries a grade.
func WithGrader(grader grading.Grader) Option {
	return func(o *Orchestrator) {
		o.grader = grader
	}
}

// NewOrchestrator creates an orchestrator over the given engine and
// provisioner.
func NewOrchestrator(cfg *config.RunConfig, engine execution.Engine, provisioner Provisioner, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		cfg:         cfg,
		engine:      engine,
		runner:      execution.NewRunner(engine),
		provisioner: provisioner,
		listeners:   []ProgressListener{},
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// OnProgress registers a progress listener
func (o *Orchestrator) OnProgress(listener ProgressListener) {
	o.progressMu.Lock()
	defer o.progressMu.Unlock()
	o.listeners = append(o.listeners, listener)
}

func (o *Orchestrator) notifyProgress(event ProgressEvent) {
	o.progressMu.Lock()
	listeners := make([]ProgressListener, len(o.listeners))
	copy(listeners, o.listeners)
	o.progressMu.Unlock()

	for _, listener := range listeners {
		listener(event)
	}
}

// Run executes the benchmark over the catalog and returns the assembled
// run record. Setup failures fail the whole run before any task is
// dispatched; individual task failures never do.
func (o *Orchestrator) Run(ctx context.Context, catalog *models.Catalog) (*models.BenchmarkRun, error) {
	startTime := time.Now()

	tasks, err := FilterTasks(catalog.Select(o.cfg.LargeTasks()), o.cfg.TaskFilters())
	if err != nil {
		return nil, err
	}
	if len(tasks) == 0 {
		return nil, fmt.Errorf("no tasks matched the current selection")
	}

	if err := o.engine.Initialize(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize engine: %w", err)
	}
	defer func() {
		if err := o.engine.Shutdown(ctx); err != nil {
			slog.Warn("Failed to shut down engine", "error", err)
		}
	}()

	handles, err := o.provisioner.Provision(ctx, o.cfg.WantsApproach(models.ApproachXl))
	if err != nil {
		return nil, fmt.Errorf("setup failed: %w", err)
	}
	o.notifyProgress(ProgressEvent{EventType: EventSetupComplete, TotalTasks: len(tasks)})

	o.notifyProgress(ProgressEvent{
		EventType:  EventBenchmarkStart,
		TotalTasks: len(tasks),
	})

	var results []models.TaskOutcome
	if o.cfg.Sequential() {
		results = o.runSequential(ctx, tasks, handles)
	} else {
		results = o.runConcurrent(ctx, tasks, handles)
	}

	o.notifyProgress(ProgressEvent{
		EventType:  EventBenchmarkComplete,
		DurationMs: time.Since(startTime).Milliseconds(),
	})

	return &models.BenchmarkRun{
		RunID:      uuid.NewString(),
		Timestamp:  startTime.Format(models.TimestampLayout),
		Model:      o.cfg.Model(),
		SampleFile: o.cfg.SampleFile(),
		Results:    results,
	}, nil
}

// runSequential dispatches tasks one at a time in catalog order.
func (o *Orchestrator) runSequential(ctx context.Context, tasks []models.TaskDefinition, handles execution.Handles) []models.TaskOutcome {
	var results []models.TaskOutcome

	for i, task := range tasks {
		o.notifyProgress(ProgressEvent{
			EventType:  EventTaskStart,
			TaskName:   task.Name,
			TaskNum:    i + 1,
			TotalTasks: len(tasks),
		})

		taskStart := time.Now()
		outcomes := o.runTaskPair(ctx, task, handles)
		results = append(results, outcomes...)

		o.notifyProgress(ProgressEvent{
			EventType:  EventTaskComplete,
			TaskName:   task.Name,
			TaskNum:    i + 1,
			TotalTasks: len(tasks),
			DurationMs: time.Since(taskStart).Milliseconds(),
		})
	}

	return results
}

// runConcurrent dispatches every task as its own unit of work inside one
// errgroup scope. Each unit writes into its own slot, so the flattened
// result order matches the sequential ordering exactly. Units always
// return nil; a task failing is data, not a reason to stop siblings.
func (o *Orchestrator) runConcurrent(ctx context.Context, tasks []models.TaskDefinition, handles execution.Handles) []models.TaskOutcome {
	g, gctx := errgroup.WithContext(ctx)
	if workers := o.cfg.Workers(); workers > 0 {
		g.SetLimit(workers)
	}

	taskResults := make([][]models.TaskOutcome, len(tasks))

	for i, task := range tasks {
		g.Go(func() error {
			o.notifyProgress(ProgressEvent{
				EventType:  EventTaskStart,
				TaskName:   task.Name,
				TaskNum:    i + 1,
				TotalTasks: len(tasks),
			})

			taskStart := time.Now()
			taskResults[i] = o.runTaskPair(gctx, task, handles)

			o.notifyProgress(ProgressEvent{
				EventType:  EventTaskComplete,
				TaskName:   task.Name,
				TaskNum:    i + 1,
				TotalTasks: len(tasks),
				DurationMs: time.Since(taskStart).Milliseconds(),
			})
			return nil
		})
	}

	// Workers never return errors, so this only gates completion.
	_ = g.Wait()

	var results []models.TaskOutcome
	for _, outcomes := range taskResults {
		results = append(results, outcomes...)
	}
	return results
}

// runTaskPair runs one task through every requested approach, xl before
// xlsx, grading each successful response before moving on.
func (o *Orchestrator) runTaskPair(ctx context.Context, task models.TaskDefinition, handles execution.Handles) []models.TaskOutcome {
	var outcomes []models.TaskOutcome

	for _, approach := range o.cfg.Approaches() {
		outcome := o.runner.Run(ctx, &execution.Request{
			Task:      task,
			Approach:  approach,
			Model:     o.cfg.Model(),
			MaxTokens: o.maxTokensFor(task),
			Handles:   handles,
		})

		if o.grader != nil && outcome.Success && outcome.ResponseText != "" {
			grade, reasoning := o.grader.Grade(ctx, task, outcome.ResponseText)
			outcome.Grade = grade
			outcome.GradeReasoning = reasoning

			o.notifyProgress(ProgressEvent{
				EventType: EventGradeAssigned,
				TaskName:  task.Name,
				Approach:  approach,
				Outcome:   &outcome,
			})
		}

		o.notifyProgress(ProgressEvent{
			EventType: EventApproachComplete,
			TaskName:  task.Name,
			Approach:  approach,
			Outcome:   &outcome,
		})

		outcomes = append(outcomes, outcome)
	}

	return outcomes
}

// maxTokensFor applies a task's max_tokens override when present. The
// catalog was validated at load, so a decode failure here only means
// falling back to the run default.
func (o *Orchestrator) maxTokensFor(task models.TaskDefinition) int {
	opts, err := task.DecodeOptions()
	if err != nil || opts.MaxTokens <= 0 {
		return o.cfg.MaxTokens()
	}
	return opts.MaxTokens
}
