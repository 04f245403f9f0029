// Package duration provides the pluggable sources that assign an integer
// execution time to every task before a run begins.
package duration

import (
	"math/rand/v2"
	"sync"
)

// Source returns the number of time units a task will take. Implementations
// must return a non-negative value.
type Source func(task string) int

// Default ranges drawn by the executors when no source is configured.
const (
	SequentialMin = 0
	SequentialMax = 10

	ConcurrentMin = 1
	ConcurrentMax = 10
)

// Uniform draws uniformly from [lo, hi] inclusive. A nil rng uses the
// package-level generator. Draws are serialized so the source may be shared.
func Uniform(lo, hi int, rng *rand.Rand) Source {
	lo = max(lo, 0)
	hi = max(hi, lo)

	var mu sync.Mutex
	span := hi - lo + 1
	return func(string) int {
		if rng == nil {
			return lo + rand.IntN(span)
		}
		mu.Lock()
		defer mu.Unlock()
		return lo + rng.IntN(span)
	}
}

// Seeded returns a Uniform source backed by a deterministic PCG generator.
func Seeded(lo, hi int, seed uint64) Source {
	return Uniform(lo, hi, rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
}

// Fixed always returns n.
func Fixed(n int) Source {
	return func(string) int { return n }
}

// Sequence returns the given values in order, wrapping around when exhausted.
// An empty sequence always returns zero.
func Sequence(values ...int) Source {
	var (
		mu   sync.Mutex
		next int
	)
	return func(string) int {
		if len(values) == 0 {
			return 0
		}
		mu.Lock()
		defer mu.Unlock()
		v := values[next%len(values)]
		next++
		return v
	}
}

// Table looks a task up by name and falls back to another source for tasks
// it does not know.
func Table(durations map[string]int, fallback Source) Source {
	return func(task string) int {
		if d, ok := durations[task]; ok {
			return d
		}
		if fallback == nil {
			return 0
		}
		return fallback(task)
	}
}

// Assign draws one duration per task, in order, before anything runs.
// Negative draws are clamped to zero.
func Assign(order []string, src Source) map[string]int {
	out := make(map[string]int, len(order))
	for _, task := range order {
		d := src(task)
		if d < 0 {
			d = 0
		}
		out[task] = d
	}
	return out
}

// Total returns the sum of all assigned durations.
func Total(durations map[string]int) int {
	total := 0
	for _, d := range durations {
		total += d
	}
	return total
}
