package main

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/tjc-lp/xlbench/internal/anthropic"
	"github.com/tjc-lp/xlbench/internal/config"
	"github.com/tjc-lp/xlbench/internal/execution"
	"github.com/tjc-lp/xlbench/internal/grading"
	"github.com/tjc-lp/xlbench/internal/models"
	"github.com/tjc-lp/xlbench/internal/orchestration"
	"github.com/tjc-lp/xlbench/internal/spinner"
	"github.com/tjc-lp/xlbench/internal/store"
)

var (
	samplePath  string
	taskFilters []string
	approach    string
	sequential  bool
	workers     int
	noGrade     bool
	largeTasks  bool
	outputPath  string
	resultsDir  string
	modelID     string
	judgeModel  string
	assetsDir   string
	engineType  string
	verbose     bool
)

func newRunCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [tasks.yaml]",
		Short: "Run the token efficiency benchmark",
		Long: `Run the benchmark task catalog against the configured approaches.

Without a catalog argument the built-in task set is used. Tasks run
concurrently by default; each task executes xl before xlsx and grades
every successful response unless grading is disabled.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runCommandE,
	}

	cmd.Flags().StringVar(&samplePath, "sample", "sample.xlsx", "Path to the sample Excel workbook")
	cmd.Flags().StringArrayVar(&taskFilters, "task", nil, "Filter tasks by name/ID glob pattern (can be repeated)")
	cmd.Flags().StringVar(&approach, "approach", "both", "Which approaches to run: xl, xlsx, or both")
	cmd.Flags().BoolVar(&sequential, "sequential", false, "Run tasks sequentially (default: concurrent)")
	cmd.Flags().IntVar(&workers, "workers", 0, "Max concurrent tasks (default: unbounded)")
	cmd.Flags().BoolVar(&noGrade, "no-grade", false, "Skip correctness grading")
	cmd.Flags().BoolVar(&largeTasks, "large", false, "Include large-file tasks")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Exact output file for the run record")
	cmd.Flags().StringVar(&resultsDir, "results-dir", "results", "Directory for timestamped run records")
	cmd.Flags().StringVar(&modelID, "model", "", "Model for benchmark tasks")
	cmd.Flags().StringVar(&judgeModel, "judge-model", "", "Model for grading")
	cmd.Flags().StringVar(&assetsDir, "assets-dir", ".xlbench", "Directory for the xl binary and skill bundle")
	cmd.Flags().StringVar(&engineType, "engine", "anthropic", "Execution engine: anthropic, mock")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output with per-approach progress")

	return cmd
}

func runCommandE(cmd *cobra.Command, args []string) error {
	// .env is optional; environment variables win either way.
	_ = godotenv.Load()

	catalog, err := loadCatalog(args)
	if err != nil {
		return err
	}

	approaches, err := parseApproaches(approach)
	if err != nil {
		return err
	}

	if _, err := os.Stat(samplePath); err != nil {
		return fmt.Errorf("sample file not found: %s", samplePath)
	}

	apiKey := os.Getenv("ANTHROPIC_API_KEY")
	if apiKey == "" && engineType != "mock" {
		return fmt.Errorf("ANTHROPIC_API_KEY not set (environment variable or .env file)")
	}

	cfg := config.NewRunConfig(samplePath,
		config.WithModel(modelID),
		config.WithJudgeModel(judgeModel),
		config.WithApproaches(approaches...),
		config.WithSequential(sequential),
		config.WithWorkers(workers),
		config.WithGrading(!noGrade),
		config.WithLargeTasks(largeTasks),
		config.WithTaskFilters(taskFilters...),
		config.WithAssetsDir(assetsDir),
		config.WithResultsDir(resultsDir),
		config.WithOutputPath(outputPath),
		config.WithVerbose(verbose),
	)

	client := anthropic.NewClient(apiKey)

	var engine execution.Engine
	var provisioner orchestration.Provisioner
	switch engineType {
	case "mock":
		engine = execution.NewMockEngine()
		provisioner = orchestration.StaticProvisioner{
			Handles: execution.Handles{SampleFileID: "mock_sample"},
		}
	case "anthropic":
		engine = execution.NewAnthropicEngine(client)
		provisioner = orchestration.NewServiceProvisioner(cfg, client)
	default:
		return fmt.Errorf("unknown engine type: %s", engineType)
	}

	opts := []orchestration.Option{}
	if cfg.Grading() {
		opts = append(opts, orchestration.WithGrader(
			grading.NewService(client, cfg.JudgeModel(), cfg.JudgeMaxTokens())))
	}

	orchestrator := orchestration.NewOrchestrator(cfg, engine, provisioner, opts...)

	if verbose {
		orchestrator.OnProgress(verboseProgressListener)
	} else {
		orchestrator.OnProgress(simpleProgressListener)
	}

	gradingStatus := "on"
	if noGrade {
		gradingStatus = "off"
	}
	mode := "concurrent"
	if sequential {
		mode = "sequential"
	}
	fmt.Printf("Token Efficiency Benchmark: xl CLI vs Anthropic xlsx Skill\n")
	fmt.Printf("Model: %s\n", cfg.Model())
	fmt.Printf("Mode: %s, grading: %s\n\n", mode, gradingStatus)

	// Setup can take a while; show a spinner until provisioning finishes.
	stopSpinner := spinner.Start(os.Stdout, "Setting up...")
	var stopOnce sync.Once
	orchestrator.OnProgress(func(event orchestration.ProgressEvent) {
		if event.EventType == orchestration.EventSetupComplete {
			stopOnce.Do(stopSpinner)
		}
	})
	defer stopOnce.Do(stopSpinner)

	run, err := orchestrator.Run(context.Background(), catalog)
	if err != nil {
		return fmt.Errorf("benchmark failed: %w", err)
	}

	if len(cfg.Approaches()) > 1 {
		PrintComparison(os.Stdout, run)
	}

	savedPath := cfg.OutputPath()
	if savedPath != "" {
		err = store.SaveTo(run, savedPath)
	} else {
		savedPath, err = store.New(cfg.ResultsDir()).Save(run)
	}
	if err != nil {
		return fmt.Errorf("failed to save results: %w", err)
	}
	fmt.Printf("\nResults saved to: %s\n", savedPath)

	return nil
}

func loadCatalog(args []string) (*models.Catalog, error) {
	if len(args) == 0 {
		return models.DefaultCatalog()
	}
	return models.LoadCatalog(args[0])
}

func parseApproaches(s string) ([]models.Approach, error) {
	switch s {
	case "both", "":
		return models.ApproachOrder, nil
	case string(models.ApproachXl):
		return []models.Approach{models.ApproachXl}, nil
	case string(models.ApproachXlsx):
		return []models.Approach{models.ApproachXlsx}, nil
	default:
		return nil, fmt.Errorf("unknown approach %q (expected xl, xlsx, or both)", s)
	}
}

func verboseProgressListener(event orchestration.ProgressEvent) {
	switch event.EventType {
	case orchestration.EventBenchmarkStart:
		fmt.Printf("Starting benchmark with %d task(s)...\n\n", event.TotalTasks)
	case orchestration.EventTaskStart:
		fmt.Printf("[%d/%d] %s\n", event.TaskNum, event.TotalTasks, event.TaskName)
	case orchestration.EventApproachComplete:
		o := event.Outcome
		status := "OK"
		if !o.Success {
			status = "ERR: " + o.Error
		}
		grade := ""
		if o.Graded() {
			grade = fmt.Sprintf(" [%s]", o.Grade)
		}
		fmt.Printf("  %s: %d in / %d out (%s)%s\n", o.Approach, o.InputTokens, o.OutputTokens, status, grade)
	case orchestration.EventTaskComplete:
		duration := time.Duration(event.DurationMs) * time.Millisecond
		fmt.Printf("  done in %v\n\n", duration)
	case orchestration.EventBenchmarkComplete:
		duration := time.Duration(event.DurationMs) * time.Millisecond
		fmt.Printf("Benchmark completed in %v\n", duration)
	}
}

func simpleProgressListener(event orchestration.ProgressEvent) {
	switch event.EventType {
	case orchestration.EventApproachComplete:
		o := event.Outcome
		status := "✓"
		if !o.Success {
			status = "✗"
		}
		fmt.Printf("%s %s (%s)\n", status, event.TaskName, o.Approach)
	}
}
