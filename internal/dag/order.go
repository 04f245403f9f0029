package dag

// TopologicalOrder linearizes the graph with Kahn's algorithm.
//
// The FIFO work queue is seeded with every task of in-degree zero in
// declaration order. Each dequeued task is appended to the result and its
// dependents have their in-degree decremented; a dependent whose in-degree
// reaches zero is enqueued. If the queue drains before every task has been
// emitted, the remaining tasks are behind a cycle and a *CycleError is
// returned.
//
// The graph itself is not modified, so the method may be called repeatedly
// and always returns the same order.
func (g *Graph) TopologicalOrder() ([]string, error) {
	remaining := make(map[string]int, len(g.inDegree))
	for id, d := range g.inDegree {
		remaining[id] = d
	}

	queue := make([]string, 0, len(g.tasks))
	for _, id := range g.tasks {
		if remaining[id] == 0 {
			queue = append(queue, id)
		}
	}

	order := make([]string, 0, len(g.tasks))
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		order = append(order, current)

		for _, dependent := range g.dependents[current] {
			remaining[dependent]--
			if remaining[dependent] == 0 {
				queue = append(queue, dependent)
			}
		}
	}

	if len(order) != len(g.tasks) {
		return nil, &CycleError{Unresolved: g.unresolved(remaining), Total: len(g.tasks)}
	}
	return order, nil
}

// unresolved returns, in declaration order, the tasks whose in-degree never
// reached zero.
func (g *Graph) unresolved(remaining map[string]int) []string {
	var out []string
	for _, id := range g.tasks {
		if remaining[id] > 0 {
			out = append(out, id)
		}
	}
	return out
}

// Order builds the graph for the given tasks and edges and returns its
// topological order.
func Order(tasks []string, edges []Edge) ([]string, error) {
	g, err := Build(tasks, edges)
	if err != nil {
		return nil, err
	}
	return g.TopologicalOrder()
}
