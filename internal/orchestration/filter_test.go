package orchestration

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tjc-lp/xlbench/internal/models"
)

func filterFixture() []models.TaskDefinition {
	return []models.TaskDefinition{
		{ID: "list_sheets", Name: "List Sheets"},
		{ID: "search", Name: "Search"},
		{ID: "large_search", Name: "Large Search"},
	}
}

func TestFilterTasks(t *testing.T) {
	tests := []struct {
		name     string
		patterns []string
		wantIDs  []string
	}{
		{
			name:     "no patterns returns everything",
			patterns: nil,
			wantIDs:  []string{"list_sheets", "search", "large_search"},
		},
		{
			name:     "exact id",
			patterns: []string{"search"},
			wantIDs:  []string{"search"},
		},
		{
			name:     "glob on id",
			patterns: []string{"*search*"},
			wantIDs:  []string{"search", "large_search"},
		},
		{
			name:     "glob on name",
			patterns: []string{"List*"},
			wantIDs:  []string{"list_sheets"},
		},
		{
			name:     "multiple patterns union",
			patterns: []string{"list_sheets", "large_*"},
			wantIDs:  []string{"list_sheets", "large_search"},
		},
		{
			name:     "no matches",
			patterns: []string{"pivot*"},
			wantIDs:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matched, err := FilterTasks(filterFixture(), tt.patterns)
			require.NoError(t, err)

			var ids []string
			for _, task := range matched {
				ids = append(ids, task.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestFilterTasks_InvalidPattern(t *testing.T) {
	_, err := FilterTasks(filterFixture(), []string{"[unclosed"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid task filter pattern")
}
