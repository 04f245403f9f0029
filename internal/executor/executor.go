// Package executor runs a topologically ordered set of tasks under one of two
// policies and classifies every task into exactly one outcome bucket.
//
// Sequential walks the order on the calling goroutine, enforcing a start
// threshold and an absolute timeout against a simulated clock. Concurrent
// hands every task to a bounded worker pool and aggregates completions as
// they arrive.
//
// Classification outcomes are plain data. The only error either executor
// returns from Execute is one that prevents the run from starting at all,
// such as a dependency cycle.
package executor

import (
	"errors"

	"github.com/specialistvlad/taskgrid/internal/task"
)

var (
	// ErrTaskFailed wraps any error or panic raised by a task body in
	// concurrent mode.
	ErrTaskFailed = errors.New("task failed")
	// ErrPrerequisiteFailed is recorded for a gated task whose prerequisite
	// did not succeed; the task body is never invoked.
	ErrPrerequisiteFailed = errors.New("prerequisite failed")
	// ErrInvalidOptions is returned when an executor is misconfigured.
	ErrInvalidOptions = errors.New("invalid executor options")
)

// Mode names the execution policy.
type Mode string

const (
	ModeSequential Mode = "sequential"
	ModeConcurrent Mode = "concurrent"
)

// Outcome classifies how a task ended a run.
type Outcome int

const (
	// Successful tasks ran to completion.
	Successful Outcome = iota
	// Failed tasks exhausted their retries or raised during execution.
	Failed
	// Cancelled tasks were never started.
	Cancelled
	// Unfinished tasks were evaluated but could not complete before the timeout.
	Unfinished
)

func (o Outcome) String() string {
	switch o {
	case Successful:
		return "successful"
	case Failed:
		return "failed"
	case Cancelled:
		return "cancelled"
	case Unfinished:
		return "unfinished"
	default:
		return "unknown"
	}
}

// Observer is notified as a run progresses. Implementations must be safe for
// concurrent use; the concurrent executor calls TaskClassified from the
// harvesting goroutine only, but Observers are shared across runs.
type Observer interface {
	TaskClassified(mode Mode, t task.Task, outcome Outcome)
	RunFinished(mode Mode, report *Report, err error)
}

type nopObserver struct{}

func (nopObserver) TaskClassified(Mode, task.Task, Outcome) {}
func (nopObserver) RunFinished(Mode, *Report, error)        {}

func observerOrNop(o Observer) Observer {
	if o == nil {
		return nopObserver{}
	}
	return o
}
