package executor

import (
	"context"
	"fmt"
	"time"

	"github.com/sourcegraph/conc/pool"

	"github.com/specialistvlad/taskgrid/internal/ctxlog"
	"github.com/specialistvlad/taskgrid/internal/dag"
	"github.com/specialistvlad/taskgrid/internal/duration"
	"github.com/specialistvlad/taskgrid/internal/task"
)

// Concurrent submits every task in the order to a pool of at most
// MaxWorkers goroutines and classifies each as successful or failed.
//
// By default the order only sequences submission: a dependent may start
// before its prerequisite has finished. GateDependencies makes each task wait
// for all of its prerequisites, and fails it without running if any of them
// failed.
type Concurrent struct {
	MaxWorkers int
	// Durations assigns each task's duration. Nil draws uniformly from [1, 10].
	Durations duration.Source
	// Runner performs the task. Nil blocks for the assigned seconds.
	Runner           task.Runner
	GateDependencies bool
	Observer         Observer
}

// result is what a worker reports back for one task.
type result struct {
	task task.Task
	err  error
}

// Validate reports whether the options describe a runnable configuration.
func (c *Concurrent) Validate() error {
	if c.MaxWorkers <= 0 {
		return fmt.Errorf("%w: max workers must be positive, got %d", ErrInvalidOptions, c.MaxWorkers)
	}
	return nil
}

func (c *Concurrent) durations() duration.Source {
	if c.Durations == nil {
		return duration.Uniform(duration.ConcurrentMin, duration.ConcurrentMax, nil)
	}
	return c.Durations
}

func (c *Concurrent) runner() task.Runner {
	if c.Runner == nil {
		return task.Sleep(time.Second)
	}
	return c.Runner
}

// Execute builds and orders the graph, then runs it. Nothing is submitted if
// ordering fails.
func (c *Concurrent) Execute(ctx context.Context, tasks []string, edges []dag.Edge) (*Report, error) {
	logger := ctxlog.FromContext(ctx)
	observer := observerOrNop(c.Observer)

	fail := func(err error) (*Report, error) {
		logger.Error("Error: "+err.Error(), "mode", ModeConcurrent)
		observer.RunFinished(ModeConcurrent, nil, err)
		return nil, err
	}

	if err := c.Validate(); err != nil {
		return fail(err)
	}

	g, err := dag.Build(tasks, edges)
	if err != nil {
		return fail(err)
	}
	order, err := g.TopologicalOrder()
	if err != nil {
		return fail(err)
	}

	report := c.Run(ctx, g, order)
	observer.RunFinished(ModeConcurrent, report, nil)
	return report, nil
}

// Run executes an already validated order. The graph is only consulted when
// GateDependencies is set and may otherwise be nil. Run returns once every
// submitted task has been classified.
func (c *Concurrent) Run(ctx context.Context, g *dag.Graph, order []string) *Report {
	logger := ctxlog.FromContext(ctx).With("mode", ModeConcurrent)
	observer := observerOrNop(c.Observer)

	logger.Info("Execution order resolved.", "order", order)

	durations := duration.Assign(order, c.durations())
	for _, name := range order {
		logger.Info("Task execution time assigned.", "task", name, "duration", durations[name])
	}

	var gates map[string]*gate
	if c.GateDependencies && g != nil {
		logger.Info("Dependency gating enabled, tasks wait for their prerequisites.")
		gates = newGates(order)
	}

	report := newReport(ModeConcurrent, order, durations)
	results := make(chan result, len(order))
	started := time.Now()

	workers := pool.New().WithMaxGoroutines(c.MaxWorkers)
	logger.Debug("Starting worker pool.", "workers", c.MaxWorkers)

	go func() {
		for _, name := range order {
			t := task.Task{Name: name, Units: durations[name]}
			var prerequisites []string
			if gates != nil {
				prerequisites, _ = g.Dependencies(name)
			}
			workers.Go(func() {
				results <- c.work(ctx, t, prerequisites, gates)
			})
		}
		workers.Wait()
		close(results)
	}()

	logger.Info("Waiting for all tasks to complete...")
	for res := range results {
		if res.err != nil {
			logger.Error("Task failed.", "task", res.task.Name, "error", res.err)
			report.add(res.task.Name, Failed)
			observer.TaskClassified(ModeConcurrent, res.task, Failed)
			continue
		}
		report.add(res.task.Name, Successful)
		observer.TaskClassified(ModeConcurrent, res.task, Successful)
	}

	report.Elapsed = time.Since(started)
	logger.Info(fmt.Sprintf("All Tasks Completed in %.2f seconds.", report.Elapsed.Seconds()),
		"successful", len(report.Successful),
		"failed", len(report.Failed),
	)
	return report
}
