package models

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/tjc-lp/xlbench/internal/validation"
	"gopkg.in/yaml.v3"
)

//go:embed tasks.yaml
var defaultCatalogYAML []byte

// Catalog is an ordered set of benchmark tasks.
type Catalog struct {
	Tasks []TaskDefinition `yaml:"tasks"`
}

// DefaultCatalog returns the built-in task catalog.
func DefaultCatalog() (*Catalog, error) {
	return parseCatalog(defaultCatalogYAML, "embedded catalog")
}

// LoadCatalog reads and validates a task catalog from a YAML file,
// preserving file order.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}
	return parseCatalog(data, path)
}

func parseCatalog(data []byte, source string) (*Catalog, error) {
	if errs := validation.ValidateTasksBytes(data); len(errs) > 0 {
		return nil, fmt.Errorf("%s: invalid catalog:\n  %s", source, strings.Join(errs, "\n  "))
	}

	var catalog Catalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("%s: parsing catalog: %w", source, err)
	}
	if len(catalog.Tasks) == 0 {
		return nil, fmt.Errorf("%s: catalog contains no tasks", source)
	}

	seen := make(map[string]bool, len(catalog.Tasks))
	for i := range catalog.Tasks {
		t := &catalog.Tasks[i]
		if err := t.Validate(); err != nil {
			return nil, fmt.Errorf("%s: %w", source, err)
		}
		if seen[t.ID] {
			return nil, fmt.Errorf("%s: duplicate task id %q", source, t.ID)
		}
		seen[t.ID] = true
	}
	return &catalog, nil
}

// Select returns the tasks a run should execute in catalog order: standard
// tasks always, large-file tasks only when includeLarge is set.
func (c *Catalog) Select(includeLarge bool) []TaskDefinition {
	var tasks []TaskDefinition
	for _, t := range c.Tasks {
		if t.Large && !includeLarge {
			continue
		}
		tasks = append(tasks, t)
	}
	return tasks
}
