package app

import (
	"context"
	"fmt"

	"github.com/specialistvlad/taskgrid/internal/ctxlog"
	"github.com/specialistvlad/taskgrid/internal/duration"
	"github.com/specialistvlad/taskgrid/internal/executor"
)

// settings is the effective configuration of one run after merging the
// command line, the plan and the defaults.
type settings struct {
	timeout   float64
	threshold float64
	workers   int
	gate      bool
}

func (a *App) resolveSettings() settings {
	s := settings{
		timeout:   DefaultTimeout,
		threshold: a.config.StartThreshold,
		workers:   a.config.Workers,
		gate:      a.config.Gate || a.plan.Concurrent.GateDependencies,
	}
	switch {
	case a.config.Timeout != nil:
		s.timeout = *a.config.Timeout
	case a.plan.Sequential.Timeout != nil:
		s.timeout = *a.plan.Sequential.Timeout
	}
	if s.threshold == 0 {
		s.threshold = a.plan.Sequential.StartThreshold
	}
	if s.workers == 0 {
		s.workers = a.plan.Concurrent.MaxWorkers
	}
	if s.workers == 0 {
		s.workers = DefaultWorkers
	}
	return s
}

// durationSource serves the plan's pinned durations and draws the rest
// from the mode's default range.
func (a *App) durationSource(lo, hi int) duration.Source {
	fallback := duration.Uniform(lo, hi, nil)
	if a.config.Seed != 0 {
		fallback = duration.Seeded(lo, hi, a.config.Seed)
	}
	return a.plan.DurationSource(fallback)
}

// Run executes the loaded plan with the configured executor and prints the
// report summary to the output writer.
func (a *App) Run(ctx context.Context) (*executor.Report, error) {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	a.startHealthCheckServer(ctx)
	defer func() {
		_ = a.closeHealthCheckServer(ctx)
	}()

	s := a.resolveSettings()
	a.logger.Info("Starting run.",
		"mode", a.config.Mode,
		"plan", a.config.PlanPath,
		"tasks", len(a.plan.Tasks),
		"edges", len(a.plan.Edges),
		"timeout", s.timeout,
	)

	var (
		report *executor.Report
		err    error
	)
	switch a.config.Mode {
	case executor.ModeConcurrent:
		exec := &executor.Concurrent{
			MaxWorkers:       s.workers,
			Durations:        a.durationSource(duration.ConcurrentMin, duration.ConcurrentMax),
			Runner:           a.runner,
			GateDependencies: s.gate,
			Observer:         a.metrics,
		}
		report, err = exec.Execute(ctx, a.plan.Tasks, a.plan.Edges)
	default:
		exec := &executor.Sequential{
			Timeout:        s.timeout,
			StartThreshold: s.threshold,
			Durations:      a.durationSource(duration.SequentialMin, duration.SequentialMax),
			Runner:         a.runner,
			Observer:       a.metrics,
		}
		report, err = exec.Execute(ctx, a.plan.Tasks, a.plan.Edges)
	}
	if err != nil {
		return nil, fmt.Errorf("execution failed: %w", err)
	}

	fmt.Fprint(a.outW, report.Summary())
	a.logger.Debug("App.Run method finished.")
	return report, nil
}
