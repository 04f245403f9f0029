package dag

import (
	"fmt"
)

// New creates and returns an initialized, empty Graph.
func New() *Graph {
	return &Graph{
		dependents:    make(map[string][]string),
		prerequisites: make(map[string][]string),
		inDegree:      make(map[string]int),
	}
}

// Build constructs the dependency graph for the given tasks and edges. Tasks
// are registered in the order given, then edges are linked in the order given.
func Build(tasks []string, edges []Edge) (*Graph, error) {
	g := New()
	for _, id := range tasks {
		if err := g.AddNode(id); err != nil {
			return nil, err
		}
	}
	for _, e := range edges {
		if err := g.AddEdge(e.From, e.To); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// AddNode registers a task with no edges. Identifiers must be unique.
func (g *Graph) AddNode(id string) error {
	if _, ok := g.inDegree[id]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateTask, id)
	}

	g.tasks = append(g.tasks, id)
	g.inDegree[id] = 0
	return nil
}

// AddEdge records that `toID` depends on `fromID`. Both tasks must already be
// registered. Self-edges and repeated edges are accepted: a self-edge is a
// degenerate cycle that the orderer reports, and a repeated edge counts
// towards the dependent's in-degree once per occurrence.
func (g *Graph) AddEdge(fromID, toID string) error {
	if _, ok := g.inDegree[fromID]; !ok {
		return fmt.Errorf("%w: edge %s references undeclared prerequisite %q", ErrUnknownTask, Edge{fromID, toID}, fromID)
	}
	if _, ok := g.inDegree[toID]; !ok {
		return fmt.Errorf("%w: edge %s references undeclared dependent %q", ErrUnknownTask, Edge{fromID, toID}, toID)
	}

	g.dependents[fromID] = append(g.dependents[fromID], toID)
	g.prerequisites[toID] = append(g.prerequisites[toID], fromID)
	g.inDegree[toID]++
	g.edges++
	return nil
}

// Tasks returns the registered tasks in declaration order.
func (g *Graph) Tasks() []string {
	out := make([]string, len(g.tasks))
	copy(out, g.tasks)
	return out
}

// Len returns the number of registered tasks.
func (g *Graph) Len() int { return len(g.tasks) }

// EdgeCount returns the number of edges added to the graph.
func (g *Graph) EdgeCount() int { return g.edges }

// Dependencies returns the prerequisites of the given task, in edge order.
func (g *Graph) Dependencies(id string) ([]string, error) {
	if _, ok := g.inDegree[id]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTask, id)
	}

	deps := make([]string, len(g.prerequisites[id]))
	copy(deps, g.prerequisites[id])
	return deps, nil
}

// Dependents returns the tasks that depend on the given task, in edge order.
func (g *Graph) Dependents(id string) ([]string, error) {
	if _, ok := g.inDegree[id]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTask, id)
	}

	dependents := make([]string, len(g.dependents[id]))
	copy(dependents, g.dependents[id])
	return dependents, nil
}

// InDegree returns the number of prerequisite edges pointing into a task.
func (g *Graph) InDegree(id string) (int, bool) {
	d, ok := g.inDegree[id]
	return d, ok
}
