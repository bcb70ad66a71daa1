// Package store persists benchmark run records as JSON files.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/tjc-lp/xlbench/internal/models"
)

// Store reads and writes run records under a results directory.
type Store struct {
	dir string
}

// New creates a store rooted at dir. The directory is created on first
// save.
func New(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the store's results directory.
func (s *Store) Dir() string {
	return s.dir
}

// Save writes the run to benchmark_<timestamp>.json under the results
// directory and returns the path.
func (s *Store) Save(run *models.BenchmarkRun) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("creating results dir: %w", err)
	}
	path := filepath.Join(s.dir, fmt.Sprintf("benchmark_%s.json", run.Timestamp))
	if err := SaveTo(run, path); err != nil {
		return "", err
	}
	return path, nil
}

// List returns the record filenames in the results directory, newest last.
func (s *Store) List() ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(s.dir, "benchmark_*.json"))
	if err != nil {
		return nil, fmt.Errorf("listing results: %w", err)
	}
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, filepath.Base(m))
	}
	sort.Strings(names)
	return names, nil
}

// Open loads a record by filename from the results directory.
func (s *Store) Open(name string) (*models.BenchmarkRun, error) {
	if filepath.Base(name) != name {
		return nil, fmt.Errorf("invalid record name %q", name)
	}
	return Load(filepath.Join(s.dir, name))
}

// SaveTo writes the run as indented JSON to an exact path.
func SaveTo(run *models.BenchmarkRun, path string) error {
	data, err := json.MarshalIndent(run, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding run record: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing run record: %w", err)
	}
	return nil
}

// Load reads a run record from a JSON file.
func Load(path string) (*models.BenchmarkRun, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading run record: %w", err)
	}
	var run models.BenchmarkRun
	if err := json.Unmarshal(data, &run); err != nil {
		return nil, fmt.Errorf("parsing run record %s: %w", path, err)
	}
	return &run, nil
}
