package config

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/specialistvlad/taskgrid/internal/dag"
)

// ErrInvalidPlan is returned when a loaded plan fails validation.
var ErrInvalidPlan = errors.New("invalid plan")

// Validate checks the plan for problems a loader can report with context:
// empty or duplicate task names, edges to undeclared tasks, negative
// durations and out-of-range mode settings. Cycles are left to the orderer.
func (p *Plan) Validate() error {
	var errs []error

	seen := make(map[string]struct{}, len(p.Tasks))
	for _, name := range p.Tasks {
		if name == "" {
			errs = append(errs, errors.New("task name must not be empty"))
			continue
		}
		if _, dup := seen[name]; dup {
			errs = append(errs, fmt.Errorf("task %q: %w", name, dag.ErrDuplicateTask))
			continue
		}
		seen[name] = struct{}{}
	}

	for _, e := range p.Edges {
		for _, end := range []string{e.From, e.To} {
			if _, ok := seen[end]; !ok {
				errs = append(errs, fmt.Errorf("edge %s: %w: %q", e, dag.ErrUnknownTask, end))
			}
		}
	}

	for _, name := range slices.Sorted(maps.Keys(p.Durations)) {
		d := p.Durations[name]
		if _, ok := seen[name]; !ok {
			errs = append(errs, fmt.Errorf("duration for %q: %w", name, dag.ErrUnknownTask))
		}
		if d < 0 {
			errs = append(errs, fmt.Errorf("task %q: duration must not be negative, got %d", name, d))
		}
	}

	if t := p.Sequential.Timeout; t != nil && *t < 0 {
		errs = append(errs, fmt.Errorf("sequential timeout must not be negative, got %g", *t))
	}
	if t := p.Sequential.StartThreshold; t < 0 || t > 1 {
		errs = append(errs, fmt.Errorf("sequential start_threshold must be within [0, 1], got %g", t))
	}
	if p.Concurrent.MaxWorkers < 0 {
		errs = append(errs, fmt.Errorf("concurrent max_workers must not be negative, got %d", p.Concurrent.MaxWorkers))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidPlan, errors.Join(errs...))
	}
	return nil
}
