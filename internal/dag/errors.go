package dag

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrCycleDetected is matched by every error returned when the declared
	// edges cannot be linearized.
	ErrCycleDetected = errors.New("cycle detected")
	// ErrUnknownTask is returned when an edge references a task that was not
	// declared in the task set.
	ErrUnknownTask = errors.New("unknown task")
	// ErrDuplicateTask is returned when the same identifier is declared twice.
	ErrDuplicateTask = errors.New("duplicate task")
)

// CycleError reports the tasks that could not be reached by the orderer
// because they sit on, or behind, a dependency cycle.
type CycleError struct {
	// Unresolved lists the unreached tasks in declaration order.
	Unresolved []string
	// Total is the number of tasks in the graph.
	Total int
}

func (e *CycleError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf(
		"Cycle detected in task dependencies: %d of %d tasks unresolved (%s)",
		len(e.Unresolved), e.Total, strings.Join(e.Unresolved, ", "),
	)
}

func (e *CycleError) Unwrap() error { return ErrCycleDetected }
