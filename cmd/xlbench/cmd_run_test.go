package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tjc-lp/xlbench/internal/models"
	"github.com/tjc-lp/xlbench/internal/store"
)

func writeSampleFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sample.xlsx")
	require.NoError(t, os.WriteFile(path, []byte("xlsx bytes"), 0o644))
	return path
}

func executeCommand(t *testing.T, args ...string) error {
	t.Helper()
	cmd := newRootCommand()
	cmd.SetArgs(args)
	return cmd.Execute()
}

func TestRunCommand_MockEngine(t *testing.T) {
	sample := writeSampleFile(t)
	output := filepath.Join(t.TempDir(), "run.json")

	err := executeCommand(t, "run",
		"--engine", "mock",
		"--no-grade",
		"--sample", sample,
		"--sequential",
		"-o", output)
	require.NoError(t, err)

	run, err := store.Load(output)
	require.NoError(t, err)

	catalog, err := models.DefaultCatalog()
	require.NoError(t, err)
	standard := catalog.Select(false)

	assert.Len(t, run.Results, len(standard)*2, "two outcomes per standard task")
	assert.Equal(t, sample, run.SampleFile)
	for _, outcome := range run.Results {
		assert.True(t, outcome.Success)
		assert.Empty(t, outcome.Grade)
	}
}

func TestRunCommand_TaskFilter(t *testing.T) {
	sample := writeSampleFile(t)
	output := filepath.Join(t.TempDir(), "run.json")

	err := executeCommand(t, "run",
		"--engine", "mock",
		"--no-grade",
		"--sample", sample,
		"--task", "list_sheets",
		"--approach", "xl",
		"-o", output)
	require.NoError(t, err)

	run, err := store.Load(output)
	require.NoError(t, err)
	require.Len(t, run.Results, 1)
	assert.Equal(t, "list_sheets", run.Results[0].TaskID)
	assert.Equal(t, models.ApproachXl, run.Results[0].Approach)
}

func TestRunCommand_CustomCatalog(t *testing.T) {
	sample := writeSampleFile(t)
	output := filepath.Join(t.TempDir(), "run.json")

	catalogPath := filepath.Join(t.TempDir(), "tasks.yaml")
	require.NoError(t, os.WriteFile(catalogPath, []byte(`tasks:
  - id: only_task
    name: Only Task
    xl_prompt: do it with xl
    xlsx_prompt: do it with openpyxl
`), 0o644))

	err := executeCommand(t, "run", catalogPath,
		"--engine", "mock",
		"--no-grade",
		"--sample", sample,
		"-o", output)
	require.NoError(t, err)

	run, err := store.Load(output)
	require.NoError(t, err)
	require.Len(t, run.Results, 2)
	assert.Equal(t, "only_task", run.Results[0].TaskID)
}

func TestRunCommand_Errors(t *testing.T) {
	t.Run("missing sample file", func(t *testing.T) {
		err := executeCommand(t, "run",
			"--engine", "mock", "--no-grade",
			"--sample", filepath.Join(t.TempDir(), "absent.xlsx"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "sample file not found")
	})

	t.Run("unknown approach", func(t *testing.T) {
		err := executeCommand(t, "run",
			"--engine", "mock", "--no-grade",
			"--sample", writeSampleFile(t),
			"--approach", "csv")
		require.Error(t, err)
		assert.Contains(t, err.Error(), `unknown approach "csv"`)
	})

	t.Run("missing api key", func(t *testing.T) {
		t.Setenv("ANTHROPIC_API_KEY", "")
		err := executeCommand(t, "run",
			"--no-grade",
			"--sample", writeSampleFile(t))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "ANTHROPIC_API_KEY not set")
	})

	t.Run("unknown engine", func(t *testing.T) {
		t.Setenv("ANTHROPIC_API_KEY", "test-key")
		err := executeCommand(t, "run",
			"--engine", "carrier-pigeon", "--no-grade",
			"--sample", writeSampleFile(t))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown engine type")
	})
}

func TestParseApproaches(t *testing.T) {
	tests := []struct {
		input string
		want  []models.Approach
	}{
		{"both", models.ApproachOrder},
		{"", models.ApproachOrder},
		{"xl", []models.Approach{models.ApproachXl}},
		{"xlsx", []models.Approach{models.ApproachXlsx}},
	}

	for _, tt := range tests {
		approaches, err := parseApproaches(tt.input)
		require.NoError(t, err, "input %q", tt.input)
		assert.Equal(t, tt.want, approaches)
	}

	_, err := parseApproaches("excel")
	require.Error(t, err)
}
