package dag

import "fmt"

// Edge is a directed dependency between two tasks. From is the prerequisite
// and must be ordered strictly before To, the dependent.
type Edge struct {
	From string
	To   string
}

// String renders the edge as "From -> To".
func (e Edge) String() string {
	return fmt.Sprintf("%s -> %s", e.From, e.To)
}

// Graph holds the adjacency and in-degree structures for one scheduling run.
// It is immutable once built and safe for concurrent read access.
type Graph struct {
	// tasks is the declaration order, used to seed ordering deterministically.
	tasks []string
	// dependents maps a task to the tasks that depend on it, in edge order.
	dependents map[string][]string
	// prerequisites maps a task to the tasks it depends on, in edge order.
	prerequisites map[string][]string
	// inDegree is the number of prerequisite edges pointing into a task.
	inDegree map[string]int
	// edges is the number of edges added, including duplicates and self-edges.
	edges int
}
