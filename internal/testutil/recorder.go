package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/specialistvlad/taskgrid/internal/task"
)

// ExecutionRecord holds the start and end times for a single task's execution.
type ExecutionRecord struct {
	Units int
	Start time.Time
	End   time.Time
}

// Recorder is a task.Runner stand-in that records every call. Each unit
// sleeps for Unit (zero means the run is instant). Tasks listed in Fail
// return FailErr; tasks listed in Panic panic.
type Recorder struct {
	Unit    time.Duration
	Fail    map[string]bool
	Panic   map[string]bool
	FailErr error

	mu       sync.Mutex
	order    []string
	records  map[string]*ExecutionRecord
	inFlight int
	peak     int
}

// NewRecorder creates a recorder whose units last the given duration.
func NewRecorder(unit time.Duration) *Recorder {
	return &Recorder{Unit: unit, records: make(map[string]*ExecutionRecord)}
}

// Run implements task.Runner.
func (r *Recorder) Run(ctx context.Context, t task.Task) error {
	r.mu.Lock()
	if r.records == nil {
		r.records = make(map[string]*ExecutionRecord)
	}
	r.order = append(r.order, t.Name)
	rec := &ExecutionRecord{Units: t.Units, Start: time.Now()}
	r.records[t.Name] = rec
	r.inFlight++
	if r.inFlight > r.peak {
		r.peak = r.inFlight
	}
	r.mu.Unlock()

	defer func() {
		r.mu.Lock()
		r.inFlight--
		rec.End = time.Now()
		r.mu.Unlock()
	}()

	if r.Unit > 0 && t.Units > 0 {
		select {
		case <-time.After(time.Duration(t.Units) * r.Unit):
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	if r.Panic[t.Name] {
		panic("task " + t.Name + " exploded")
	}
	if r.Fail[t.Name] {
		return r.FailErr
	}
	return nil
}

// Runner returns r.Run as a task.Runner.
func (r *Recorder) Runner() task.Runner { return r.Run }

// Started returns task names in the order their runs began.
func (r *Recorder) Started() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Record returns the execution record for a task.
func (r *Recorder) Record(name string) (ExecutionRecord, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[name]
	if !ok {
		return ExecutionRecord{}, false
	}
	return *rec, true
}

// Peak returns the highest number of simultaneous runs observed.
func (r *Recorder) Peak() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.peak
}
