package hcl

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/specialistvlad/taskgrid/internal/config"
	"github.com/specialistvlad/taskgrid/internal/ctxlog"
	"github.com/specialistvlad/taskgrid/internal/dag"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

var _ config.Loader = (*Loader)(nil)

// NewLoader creates a new HCL plan loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads a plan from path. A directory is loaded as one plan made of
// every .hcl file below it, in lexical order.
func (l *Loader) Load(ctx context.Context, path string) (*config.Plan, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path", path)

	files, err := findHCLFiles(path)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no .hcl files found in %s", path)
	}
	logger.Debug("Discovered HCL files.", "count", len(files))

	plan := config.NewPlan()
	parser := hclparse.NewParser()
	var (
		dependencies []dag.Edge
		seenSeq      bool
		seenConc     bool
	)

	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}

		var root fileRoot
		if diags := gohcl.DecodeBody(hclFile.Body, nil, &root); diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
		}

		for _, tb := range root.Tasks {
			if err := translateTask(plan, tb); err != nil {
				return nil, err
			}
		}
		for _, db := range root.Dependencies {
			dependencies = append(dependencies, dag.Edge{From: db.Prerequisite, To: db.Dependent})
		}

		if root.Sequential != nil {
			if seenSeq {
				return nil, fmt.Errorf("%s: duplicate sequential block across plan files", file)
			}
			seenSeq = true
			if err := translateSequential(&plan.Sequential, root.Sequential); err != nil {
				return nil, err
			}
		}
		if root.Concurrent != nil {
			if seenConc {
				return nil, fmt.Errorf("%s: duplicate concurrent block across plan files", file)
			}
			seenConc = true
			if err := translateConcurrent(&plan.Concurrent, root.Concurrent); err != nil {
				return nil, err
			}
		}
	}
	plan.Edges = append(plan.Edges, dependencies...)

	logger.Debug("HCL loading complete.", "tasks", len(plan.Tasks), "edges", len(plan.Edges), "pinned_durations", len(plan.Durations))
	if err := plan.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return plan, nil
}

// findHCLFiles returns path itself or, for a directory, every .hcl file
// below it.
func findHCLFiles(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("error accessing path %s: %w", path, err)
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	var files []string
	err = filepath.WalkDir(path, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && filepath.Ext(p) == ".hcl" {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}
