// Package task defines the unit of work handed to an executor and the
// pluggable Runner that stands in for the real work of a task.
package task

import (
	"context"
	"time"
)

// Task represents a task that is fully prepared for execution: its identity
// and the duration assigned to it before the run began.
type Task struct {
	// Name is the task identifier, unique within a run.
	Name string
	// Units is the assigned execution time in abstract time units.
	Units int
}

// Runner performs the work of a task. The default runner simply blocks for
// the assigned number of units; tests swap it for something instant.
type Runner func(ctx context.Context, t Task) error

// Sleep returns a Runner that blocks for Units x unit, returning early with
// the context error if ctx is cancelled.
func Sleep(unit time.Duration) Runner {
	return func(ctx context.Context, t Task) error {
		if t.Units <= 0 {
			return nil
		}

		timer := time.NewTimer(time.Duration(t.Units) * unit)
		defer timer.Stop()

		select {
		case <-timer.C:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Noop returns immediately.
func Noop(context.Context, Task) error { return nil }
