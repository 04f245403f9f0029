package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/taskgrid/internal/dag"
	"github.com/specialistvlad/taskgrid/internal/duration"
)

func seconds(v float64) *float64 { return &v }

func TestPlan_Validate(t *testing.T) {
	t.Parallel()

	valid := func() *Plan {
		p := NewPlan()
		p.Tasks = []string{"A", "B"}
		p.Edges = []dag.Edge{{From: "A", To: "B"}}
		p.Durations["A"] = 3
		return p
	}

	testCases := []struct {
		name    string
		mutate  func(p *Plan)
		wantErr error
		msg     string
	}{
		{name: "valid plan", mutate: func(*Plan) {}},
		{name: "cycle is not a validation error", mutate: func(p *Plan) {
			p.Edges = append(p.Edges, dag.Edge{From: "B", To: "A"})
		}},
		{name: "empty task name", mutate: func(p *Plan) { p.Tasks = append(p.Tasks, "") }, wantErr: ErrInvalidPlan, msg: "must not be empty"},
		{name: "duplicate task", mutate: func(p *Plan) { p.Tasks = append(p.Tasks, "A") }, wantErr: dag.ErrDuplicateTask},
		{name: "unknown edge endpoint", mutate: func(p *Plan) {
			p.Edges = append(p.Edges, dag.Edge{From: "Z", To: "A"})
		}, wantErr: dag.ErrUnknownTask, msg: `"Z"`},
		{name: "duration for unknown task", mutate: func(p *Plan) { p.Durations["Q"] = 1 }, wantErr: dag.ErrUnknownTask},
		{name: "negative duration", mutate: func(p *Plan) { p.Durations["B"] = -1 }, wantErr: ErrInvalidPlan, msg: "must not be negative"},
		{name: "zero timeout is a valid budget", mutate: func(p *Plan) { p.Sequential.Timeout = seconds(0) }},
		{name: "negative timeout", mutate: func(p *Plan) { p.Sequential.Timeout = seconds(-5) }, wantErr: ErrInvalidPlan, msg: "timeout"},
		{name: "threshold above one", mutate: func(p *Plan) { p.Sequential.StartThreshold = 1.2 }, wantErr: ErrInvalidPlan, msg: "start_threshold"},
		{name: "negative workers", mutate: func(p *Plan) { p.Concurrent.MaxWorkers = -1 }, wantErr: ErrInvalidPlan, msg: "max_workers"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p := valid()
			tc.mutate(p)
			err := p.Validate()
			if tc.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tc.wantErr)
			assert.ErrorIs(t, err, ErrInvalidPlan)
			if tc.msg != "" {
				assert.Contains(t, err.Error(), tc.msg)
			}
		})
	}
}

func TestPlan_ValidateReportsDurationsInNameOrder(t *testing.T) {
	t.Parallel()

	p := NewPlan()
	p.Tasks = []string{"A"}
	for _, name := range []string{"Z", "M", "C", "Q", "F"} {
		p.Durations[name] = -1
	}

	first := p.Validate()
	require.Error(t, first)
	for i := 0; i < 20; i++ {
		assert.Equal(t, first.Error(), p.Validate().Error())
	}

	msg := first.Error()
	prev := -1
	for _, name := range []string{`"C"`, `"F"`, `"M"`, `"Q"`, `"Z"`} {
		idx := strings.Index(msg, name)
		require.Greater(t, idx, prev, "%s out of order in %q", name, msg)
		prev = idx
	}
}

func TestPlan_DurationSource(t *testing.T) {
	t.Parallel()

	p := NewPlan()
	fallback := duration.Fixed(7)
	assert.Equal(t, 7, p.DurationSource(fallback)("anything"))

	p.Durations["A"] = 2
	src := p.DurationSource(fallback)
	assert.Equal(t, 2, src("A"))
	assert.Equal(t, 7, src("B"))
}
