package config

import (
	"context"

	"github.com/specialistvlad/taskgrid/internal/dag"
	"github.com/specialistvlad/taskgrid/internal/duration"
)

// Loader is the interface for a format-specific plan loader.
type Loader interface {
	// Load reads the plan file at path and translates it into the
	// format-agnostic model.
	Load(ctx context.Context, path string) (*Plan, error)
}

// Plan is one scheduling run as declared in a plan file.
type Plan struct {
	// Tasks in declaration order.
	Tasks []string
	// Edges in declaration order: depends_on edges in task order, then
	// explicit dependency blocks.
	Edges []dag.Edge
	// Durations holds the tasks that pin their duration. Tasks not listed
	// draw from the mode's default source.
	Durations map[string]int

	Sequential Sequential
	Concurrent Concurrent
}

// Sequential holds the sequential-mode settings.
type Sequential struct {
	// Timeout is nil when the plan does not set one. Zero is a valid budget.
	Timeout *float64
	// StartThreshold zero means the executor default.
	StartThreshold float64
}

// Concurrent holds the concurrent-mode settings. Zero values mean "not set".
type Concurrent struct {
	MaxWorkers       int
	GateDependencies bool
}

// NewPlan returns an empty plan ready to be filled by a loader.
func NewPlan() *Plan {
	return &Plan{Durations: make(map[string]int)}
}

// DurationSource returns a source that serves pinned durations and falls
// back to the given source for everything else. With nothing pinned it
// returns the fallback unchanged.
func (p *Plan) DurationSource(fallback duration.Source) duration.Source {
	if len(p.Durations) == 0 {
		return fallback
	}
	return duration.Table(p.Durations, fallback)
}
