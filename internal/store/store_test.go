package store

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tjc-lp/xlbench/internal/models"
)

func sampleRun() *models.BenchmarkRun {
	return &models.BenchmarkRun{
		RunID:      "run-1",
		Timestamp:  "20260829_142501",
		Model:      "claude-sonnet-4-5-20250929",
		SampleFile: "sample.xlsx",
		Results: []models.TaskOutcome{
			{
				TaskID:       "list_sheets",
				TaskName:     "List Sheets",
				Approach:     models.ApproachXl,
				Success:      true,
				InputTokens:  100,
				OutputTokens: 50,
				TotalTokens:  150,
				LatencyMs:    900,
				ResponseText: "3 sheets",
				Grade:        models.GradeA,
			},
			{
				TaskID:   "list_sheets",
				TaskName: "List Sheets",
				Approach: models.ApproachXlsx,
				Error:    "api error 529: Overloaded",
			},
		},
	}
}

func TestStore_SaveAndOpen(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "results")
	s := New(dir)

	path, err := s.Save(sampleRun())
	require.NoError(t, err)
	assert.Equal(t, "benchmark_20260829_142501.json", filepath.Base(path))

	loaded, err := s.Open(filepath.Base(path))
	require.NoError(t, err)
	assert.Equal(t, sampleRun(), loaded)
}

func TestStore_SaveCreatesResultsDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "results")
	_, err := New(dir).Save(sampleRun())
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestStore_List(t *testing.T) {
	dir := t.TempDir()
	s := New(dir)

	names, err := s.List()
	require.NoError(t, err)
	assert.Empty(t, names)

	first := sampleRun()
	second := sampleRun()
	second.Timestamp = "20260830_090000"
	_, err = s.Save(first)
	require.NoError(t, err)
	_, err = s.Save(second)
	require.NoError(t, err)

	// An unrelated file in the directory is not a record.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

	names, err = s.List()
	require.NoError(t, err)
	assert.Equal(t, []string{
		"benchmark_20260829_142501.json",
		"benchmark_20260830_090000.json",
	}, names)
}

func TestStore_Open_RejectsPathTraversal(t *testing.T) {
	s := New(t.TempDir())
	_, err := s.Open("../elsewhere.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid record name")
}

func TestSaveTo_FieldNames(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.json")
	require.NoError(t, SaveTo(sampleRun(), path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	body := string(data)

	for _, key := range []string{`"run_id"`, `"timestamp"`, `"model"`, `"sample_file"`, `"results"`} {
		assert.Contains(t, body, key)
	}
	// Failed outcomes keep their token fields at zero but never carry text.
	assert.NotContains(t, body, `"response_text": ""`)
	assert.True(t, strings.HasSuffix(body, "\n"))
}

func TestLoad_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.json"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "reading run record")
	})

	t.Run("malformed json", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.json")
		require.NoError(t, os.WriteFile(path, []byte("{"), 0o644))
		_, err := Load(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parsing run record")
	})
}
