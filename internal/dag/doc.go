// Package dag is the ordering layer of the application. It turns a set of
// named tasks and a list of (prerequisite, dependent) edges into a dependency
// graph, and linearizes that graph into a single execution order using
// Kahn's algorithm.
//
// Ordering is deterministic: tasks with no prerequisites are seeded in the
// order they were declared, and dependents become ready in the order their
// edges were declared. Identical input always produces the identical order.
//
// A graph that cannot be linearized yields a *CycleError, which matches
// ErrCycleDetected under errors.Is.
package dag
