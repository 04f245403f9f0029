package executor

import (
	"context"
	"fmt"
	"strings"

	"github.com/specialistvlad/taskgrid/internal/ctxlog"
	"github.com/specialistvlad/taskgrid/internal/task"
)

// gate lets gated dependents wait on a prerequisite. ok is written before
// done is closed and only read after.
type gate struct {
	done chan struct{}
	ok   bool
}

func newGates(order []string) map[string]*gate {
	gates := make(map[string]*gate, len(order))
	for _, name := range order {
		gates[name] = &gate{done: make(chan struct{})}
	}
	return gates
}

// work runs one task on a pool goroutine and reports its result. It never
// panics: a panicking task body is converted into a failure.
func (c *Concurrent) work(ctx context.Context, t task.Task, prerequisites []string, gates map[string]*gate) (res result) {
	res.task = t
	if gates != nil {
		defer func() {
			g := gates[t.Name]
			g.ok = res.err == nil
			close(g.done)
		}()

		if failed := awaitPrerequisites(ctx, prerequisites, gates); len(failed) > 0 {
			res.err = fmt.Errorf("%w: %s", ErrPrerequisiteFailed, strings.Join(failed, ", "))
			return res
		}
	}

	res.err = c.runSafely(ctx, t)
	return res
}

// awaitPrerequisites blocks until every prerequisite has finished and returns
// the ones that did not succeed.
func awaitPrerequisites(ctx context.Context, prerequisites []string, gates map[string]*gate) []string {
	var failed []string
	for _, p := range prerequisites {
		g := gates[p]
		select {
		case <-g.done:
			if !g.ok {
				failed = append(failed, p)
			}
		case <-ctx.Done():
			failed = append(failed, p)
		}
	}
	return failed
}

func (c *Concurrent) runSafely(ctx context.Context, t task.Task) (err error) {
	logger := ctxlog.FromContext(ctx).With("mode", ModeConcurrent, "task", t.Name)

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: panic: %v", ErrTaskFailed, r)
		}
	}()

	logger.Info("Starting Task.", "duration", t.Units)
	if runErr := c.runner()(ctx, t); runErr != nil {
		return fmt.Errorf("%w: %w", ErrTaskFailed, runErr)
	}
	logger.Info("Completed Task.")
	return nil
}
