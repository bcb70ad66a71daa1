package orchestration

import (
	"fmt"
	"path/filepath"

	"github.com/tjc-lp/xlbench/internal/models"
)

// FilterTasks returns the subset of tasks whose Name or ID matches at
// least one of the given glob patterns. An empty patterns slice returns
// all tasks unchanged. Catalog order is preserved.
func FilterTasks(tasks []models.TaskDefinition, patterns []string) ([]models.TaskDefinition, error) {
	if len(patterns) == 0 {
		return tasks, nil
	}

	var matched []models.TaskDefinition
	for _, task := range tasks {
		ok, err := matchesAny(&task, patterns)
		if err != nil {
			return nil, err
		}
		if ok {
			matched = append(matched, task)
		}
	}
	return matched, nil
}

// matchesAny reports whether a task's Name or ID matches any pattern.
func matchesAny(task *models.TaskDefinition, patterns []string) (bool, error) {
	for _, p := range patterns {
		nameMatch, err := filepath.Match(p, task.Name)
		if err != nil {
			return false, fmt.Errorf("invalid task filter pattern %q: %w", p, err)
		}
		if nameMatch {
			return true, nil
		}
		idMatch, err := filepath.Match(p, task.ID)
		if err != nil {
			return false, fmt.Errorf("invalid task filter pattern %q: %w", p, err)
		}
		if idMatch {
			return true, nil
		}
	}
	return false, nil
}
