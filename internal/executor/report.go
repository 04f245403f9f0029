package executor

import (
	"fmt"
	"strings"
	"time"
)

// Report is the result of one run: the order that was executed, the
// durations assigned before it started, and the classification buckets.
// Every task in Order appears in exactly one bucket.
type Report struct {
	Mode      Mode
	Order     []string
	Durations map[string]int

	Successful []string
	Failed     []string
	Cancelled  []string
	Unfinished []string

	// Clock is the simulated time at which a sequential run stopped.
	Clock int
	// Elapsed is the wall-clock time the run took.
	Elapsed time.Duration
}

func newReport(mode Mode, order []string, durations map[string]int) *Report {
	return &Report{
		Mode:       mode,
		Order:      order,
		Durations:  durations,
		Successful: []string{},
		Failed:     []string{},
		Cancelled:  []string{},
		Unfinished: []string{},
	}
}

func (r *Report) add(name string, outcome Outcome) {
	switch outcome {
	case Successful:
		r.Successful = append(r.Successful, name)
	case Failed:
		r.Failed = append(r.Failed, name)
	case Cancelled:
		r.Cancelled = append(r.Cancelled, name)
	case Unfinished:
		r.Unfinished = append(r.Unfinished, name)
	}
}

// Bucket returns the tasks classified with the given outcome.
func (r *Report) Bucket(outcome Outcome) []string {
	switch outcome {
	case Successful:
		return r.Successful
	case Failed:
		return r.Failed
	case Cancelled:
		return r.Cancelled
	case Unfinished:
		return r.Unfinished
	default:
		return nil
	}
}

// Outcomes indexes the buckets by task name.
func (r *Report) Outcomes() map[string]Outcome {
	out := make(map[string]Outcome, len(r.Order))
	for _, o := range []Outcome{Successful, Failed, Cancelled, Unfinished} {
		for _, name := range r.Bucket(o) {
			out[name] = o
		}
	}
	return out
}

// Summary renders the buckets one per line. Concurrent runs only have
// successful and failed buckets.
func (r *Report) Summary() string {
	var sb strings.Builder
	line := func(label string, tasks []string) {
		fmt.Fprintf(&sb, "%s Tasks: [%s]\n", label, strings.Join(tasks, ", "))
	}

	line("Successful", r.Successful)
	if r.Mode == ModeSequential {
		line("Cancelled", r.Cancelled)
	}
	line("Failed", r.Failed)
	if r.Mode == ModeSequential {
		line("Unfinished", r.Unfinished)
	}
	return sb.String()
}
