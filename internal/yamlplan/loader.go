// Package yamlplan provides the YAML implementation of config.Loader. The
// document mirrors the HCL plan format:
//
//	tasks:
//	  - name: A
//	  - name: B
//	    duration: 3
//	    depends_on: [A]
//	dependencies:
//	  - [B, C]
//	sequential: {timeout: 15, start_threshold: 0.8}
//	concurrent: {max_workers: 2, gate_dependencies: false}
package yamlplan

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/specialistvlad/taskgrid/internal/config"
	"github.com/specialistvlad/taskgrid/internal/ctxlog"
	"github.com/specialistvlad/taskgrid/internal/dag"
)

type document struct {
	Tasks        []taskEntry `yaml:"tasks"`
	Dependencies [][]string  `yaml:"dependencies"`
	Sequential   struct {
		Timeout        *float64 `yaml:"timeout"`
		StartThreshold float64  `yaml:"start_threshold"`
	} `yaml:"sequential"`
	Concurrent struct {
		MaxWorkers       int  `yaml:"max_workers"`
		GateDependencies bool `yaml:"gate_dependencies"`
	} `yaml:"concurrent"`
}

type taskEntry struct {
	Name      string   `yaml:"name"`
	Duration  *int     `yaml:"duration"`
	DependsOn []string `yaml:"depends_on"`
}

// Loader reads plans written in YAML.
type Loader struct{}

var _ config.Loader = (*Loader)(nil)

// NewLoader creates a new YAML plan loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load implements config.Loader. Unknown keys are rejected.
func (l *Loader) Load(ctx context.Context, path string) (*config.Plan, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("YAML loader started.", "path", path)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading plan %s: %w", path, err)
	}

	var doc document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to decode YAML file %s: %w", path, err)
	}

	plan, err := translate(&doc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	logger.Debug("YAML loading complete.", "tasks", len(plan.Tasks), "edges", len(plan.Edges))

	if err := plan.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return plan, nil
}

func translate(doc *document) (*config.Plan, error) {
	plan := config.NewPlan()
	for _, t := range doc.Tasks {
		plan.Tasks = append(plan.Tasks, t.Name)
		for _, prerequisite := range t.DependsOn {
			plan.Edges = append(plan.Edges, dag.Edge{From: prerequisite, To: t.Name})
		}
		if t.Duration != nil {
			plan.Durations[t.Name] = *t.Duration
		}
	}

	for i, pair := range doc.Dependencies {
		if len(pair) != 2 {
			return nil, fmt.Errorf("dependency #%d: want [prerequisite, dependent], got %d items", i+1, len(pair))
		}
		plan.Edges = append(plan.Edges, dag.Edge{From: pair[0], To: pair[1]})
	}

	plan.Sequential = config.Sequential{
		Timeout:        doc.Sequential.Timeout,
		StartThreshold: doc.Sequential.StartThreshold,
	}
	plan.Concurrent = config.Concurrent{
		MaxWorkers:       doc.Concurrent.MaxWorkers,
		GateDependencies: doc.Concurrent.GateDependencies,
	}
	return plan, nil
}
