package executor

import (
	"context"
	"fmt"
	"time"

	"github.com/specialistvlad/taskgrid/internal/ctxlog"
	"github.com/specialistvlad/taskgrid/internal/dag"
	"github.com/specialistvlad/taskgrid/internal/duration"
	"github.com/specialistvlad/taskgrid/internal/task"
)

const (
	// DefaultStartThreshold is the fraction of the total assigned duration
	// after which no new task may start.
	DefaultStartThreshold = 0.8
	// MaxZeroDurationRetries is how many extra draws a zero-duration task
	// gets before it is classified as failed.
	MaxZeroDurationRetries = 2
)

// Sequential executes tasks one at a time against a simulated clock that
// starts at zero and only advances when a task succeeds.
type Sequential struct {
	// Timeout is the absolute time budget, measured from zero.
	Timeout float64
	// StartThreshold is a fraction in [0, 1] of the total assigned duration.
	// Zero selects DefaultStartThreshold.
	StartThreshold float64
	// Durations assigns the initial duration of every task. Nil draws
	// uniformly from [0, 10].
	Durations duration.Source
	// Retry is drawn when a task's duration is zero. Nil always yields zero,
	// so a zero-duration task fails once its retries are exhausted.
	Retry duration.Source
	// Runner performs the task. Nil blocks for the assigned seconds.
	Runner   task.Runner
	Observer Observer
}

// Validate reports whether the options describe a runnable configuration.
func (s *Sequential) Validate() error {
	if s.Timeout < 0 {
		return fmt.Errorf("%w: timeout must be non-negative, got %v", ErrInvalidOptions, s.Timeout)
	}
	if s.StartThreshold < 0 || s.StartThreshold > 1 {
		return fmt.Errorf("%w: start threshold must be within [0, 1], got %v", ErrInvalidOptions, s.StartThreshold)
	}
	return nil
}

func (s *Sequential) threshold() float64 {
	if s.StartThreshold == 0 {
		return DefaultStartThreshold
	}
	return s.StartThreshold
}

func (s *Sequential) durations() duration.Source {
	if s.Durations == nil {
		return duration.Uniform(duration.SequentialMin, duration.SequentialMax, nil)
	}
	return s.Durations
}

func (s *Sequential) retry() duration.Source {
	if s.Retry == nil {
		return duration.Fixed(0)
	}
	return s.Retry
}

func (s *Sequential) runner() task.Runner {
	if s.Runner == nil {
		return task.Sleep(time.Second)
	}
	return s.Runner
}

// Execute orders the tasks and runs them. A cycle, an unknown task, or
// invalid options abort the run before anything is classified; the error is
// logged and returned.
func (s *Sequential) Execute(ctx context.Context, tasks []string, edges []dag.Edge) (*Report, error) {
	logger := ctxlog.FromContext(ctx)
	observer := observerOrNop(s.Observer)

	if err := s.Validate(); err != nil {
		logger.Error("Error: "+err.Error(), "mode", ModeSequential)
		observer.RunFinished(ModeSequential, nil, err)
		return nil, err
	}

	order, err := dag.Order(tasks, edges)
	if err != nil {
		logger.Error("Error: "+err.Error(), "mode", ModeSequential)
		observer.RunFinished(ModeSequential, nil, err)
		return nil, err
	}

	report := s.Run(ctx, order)
	observer.RunFinished(ModeSequential, report, nil)
	return report, nil
}

// Run walks an already validated order. Every task is classified exactly once.
func (s *Sequential) Run(ctx context.Context, order []string) *Report {
	logger := ctxlog.FromContext(ctx).With("mode", ModeSequential)
	observer := observerOrNop(s.Observer)
	started := time.Now()

	logger.Info("Execution order resolved.", "order", order)

	durations := duration.Assign(order, s.durations())
	for _, name := range order {
		logger.Info("Task execution time assigned.", "task", name, "duration", durations[name])
	}

	total := duration.Total(durations)
	thresholdTime := float64(total) * s.threshold()
	logger.Info("Time budget computed.",
		"total_execution_time", total,
		"threshold_time", thresholdTime,
		"timeout", s.Timeout,
	)

	report := newReport(ModeSequential, order, durations)
	classify := func(name string, units int, outcome Outcome) {
		report.add(name, outcome)
		observer.TaskClassified(ModeSequential, task.Task{Name: name, Units: units}, outcome)
	}
	cancelRest := func(rest []string) {
		for _, name := range rest {
			classify(name, durations[name], Cancelled)
		}
	}

	currentTime := 0
	for i, name := range order {
		taskLogger := logger.With("task", name)
		units := durations[name]

		for attempt := 1; units == 0 && attempt <= MaxZeroDurationRetries; attempt++ {
			taskLogger.Warn("Retrying zero-duration task.", "attempt", attempt)
			units = s.retry()(name)
		}
		if units <= 0 {
			taskLogger.Warn("Task reached the retry limit and is moved to failed tasks.", "retries", MaxZeroDurationRetries)
			classify(name, 0, Failed)
			continue
		}
		durations[name] = units

		if float64(currentTime) >= thresholdTime {
			taskLogger.Warn("Task exceeds the start threshold and is cancelled.",
				"current_time", currentTime,
				"threshold_time", thresholdTime,
			)
			classify(name, units, Cancelled)
			continue
		}

		taskEndTime := currentTime + units
		if float64(currentTime) >= s.Timeout {
			taskLogger.Warn("Task starts after the timeout and is cancelled.",
				"current_time", currentTime,
				"timeout", s.Timeout,
			)
			classify(name, units, Cancelled)
			cancelRest(order[i+1:])
			break
		}
		if float64(taskEndTime) > s.Timeout {
			taskLogger.Warn("Task cannot finish within the timeout and is moved to unfinished tasks.",
				"current_time", currentTime,
				"task_end_time", taskEndTime,
				"timeout", s.Timeout,
			)
			classify(name, units, Unfinished)
			cancelRest(order[i+1:])
			break
		}

		taskLogger.Info("Task started.", "start_time", currentTime, "end_time", taskEndTime, "duration", units)
		if err := s.runner()(ctx, task.Task{Name: name, Units: units}); err != nil {
			taskLogger.Error("Task run failed.", "error", err)
			classify(name, units, Failed)
			if ctx.Err() != nil {
				taskLogger.Warn("Run interrupted, remaining tasks are cancelled.", "error", ctx.Err())
				cancelRest(order[i+1:])
				break
			}
			continue
		}

		currentTime = taskEndTime
		classify(name, units, Successful)
	}

	report.Clock = currentTime
	report.Elapsed = time.Since(started)
	logger.Info("Sequential run finished.",
		"successful", len(report.Successful),
		"cancelled", len(report.Cancelled),
		"failed", len(report.Failed),
		"unfinished", len(report.Unfinished),
		"clock", currentTime,
	)
	return report
}
