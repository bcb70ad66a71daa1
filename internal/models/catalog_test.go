package models

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	catalog, err := DefaultCatalog()
	require.NoError(t, err)
	require.NotEmpty(t, catalog.Tasks)

	ids := map[string]bool{}
	var large int
	for _, task := range catalog.Tasks {
		require.NoError(t, task.Validate())
		assert.False(t, ids[task.ID], "duplicate task id %s", task.ID)
		ids[task.ID] = true
		if task.Large {
			large++
		}
	}

	assert.True(t, ids["list_sheets"], "built-in catalog should have the list_sheets task")
	assert.Greater(t, large, 0, "built-in catalog should carry large-file tasks")
}

func TestLoadCatalog(t *testing.T) {
	writeCatalog := func(t *testing.T, content string) string {
		t.Helper()
		path := filepath.Join(t.TempDir(), "tasks.yaml")
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		return path
	}

	t.Run("valid catalog", func(t *testing.T) {
		path := writeCatalog(t, `tasks:
  - id: sum_col
    name: Sum Column
    xl_prompt: Use xl to sum column B
    xlsx_prompt: Use openpyxl to sum column B
    expected_answer: "12345"
  - id: count_rows
    name: Count Rows
    xl_prompt: Use xl to count rows
    xlsx_prompt: Use openpyxl to count rows
    large: true
`)

		catalog, err := LoadCatalog(path)
		require.NoError(t, err)
		require.Len(t, catalog.Tasks, 2)
		assert.Equal(t, "sum_col", catalog.Tasks[0].ID)
		assert.True(t, catalog.Tasks[1].Large)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadCatalog(filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "reading catalog")
	})

	t.Run("schema violation", func(t *testing.T) {
		path := writeCatalog(t, `tasks:
  - id: Bad-ID
    name: Bad
    xl_prompt: p
    xlsx_prompt: p
`)
		_, err := LoadCatalog(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid catalog")
	})

	t.Run("duplicate ids", func(t *testing.T) {
		path := writeCatalog(t, `tasks:
  - id: same
    name: One
    xl_prompt: p
    xlsx_prompt: p
  - id: same
    name: Two
    xl_prompt: p
    xlsx_prompt: p
`)
		_, err := LoadCatalog(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), `duplicate task id "same"`)
	})

	t.Run("empty catalog", func(t *testing.T) {
		path := writeCatalog(t, `tasks: []
`)
		_, err := LoadCatalog(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid catalog")
	})
}

func TestCatalog_Select(t *testing.T) {
	catalog := &Catalog{Tasks: []TaskDefinition{
		{ID: "a", Name: "A", XlPrompt: "p", XlsxPrompt: "p"},
		{ID: "b", Name: "B", XlPrompt: "p", XlsxPrompt: "p", Large: true},
		{ID: "c", Name: "C", XlPrompt: "p", XlsxPrompt: "p"},
	}}

	t.Run("standard only", func(t *testing.T) {
		tasks := catalog.Select(false)
		require.Len(t, tasks, 2)
		assert.Equal(t, "a", tasks[0].ID)
		assert.Equal(t, "c", tasks[1].ID)
	})

	t.Run("with large tasks", func(t *testing.T) {
		tasks := catalog.Select(true)
		require.Len(t, tasks, 3)
		assert.Equal(t, "b", tasks[1].ID)
	})
}
