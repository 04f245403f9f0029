package hcl

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/taskgrid/internal/config"
	"github.com/specialistvlad/taskgrid/internal/ctxlog"
	"github.com/specialistvlad/taskgrid/internal/dag"
	"github.com/specialistvlad/taskgrid/internal/testutil"
)

func load(t *testing.T, content string) (*config.Plan, error) {
	t.Helper()
	dir := testutil.WriteFiles(t, map[string]string{"plan.hcl": content})
	ctx, _ := testutil.LogContext(t)
	return NewLoader().Load(ctx, filepath.Join(dir, "plan.hcl"))
}

func TestLoader_FullPlan(t *testing.T) {
	t.Parallel()

	plan, err := load(t, `
task "A" {}
task "B" { duration = 3 }
task "C" { duration = "2" }
task "D" { depends_on = ["B", "C"] }

dependency "B" "A" {}

sequential {
  timeout         = 15
  start_threshold = 0.75
}

concurrent {
  max_workers       = 2
  gate_dependencies = true
}
`)
	require.NoError(t, err)

	timeout := 15.0
	want := &config.Plan{
		Tasks: []string{"A", "B", "C", "D"},
		Edges: []dag.Edge{
			{From: "B", To: "D"},
			{From: "C", To: "D"},
			{From: "B", To: "A"},
		},
		Durations:  map[string]int{"B": 3, "C": 2},
		Sequential: config.Sequential{Timeout: &timeout, StartThreshold: 0.75},
		Concurrent: config.Concurrent{MaxWorkers: 2, GateDependencies: true},
	}
	if diff := cmp.Diff(want, plan); diff != "" {
		t.Errorf("plan mismatch (-want +got):\n%s", diff)
	}
}

func TestLoader_OptionalBlocksMayBeOmitted(t *testing.T) {
	t.Parallel()

	plan, err := load(t, `task "only" {}`)
	require.NoError(t, err)

	assert.Equal(t, []string{"only"}, plan.Tasks)
	assert.Empty(t, plan.Edges)
	assert.Empty(t, plan.Durations)
	assert.Zero(t, plan.Sequential)
	assert.Zero(t, plan.Concurrent)
}

func TestLoader_ExplicitZeroTimeout(t *testing.T) {
	t.Parallel()

	plan, err := load(t, `
task "A" { duration = 3 }
sequential { timeout = 0 }
`)
	require.NoError(t, err)
	require.NotNil(t, plan.Sequential.Timeout, "an explicit zero must not read as unset")
	assert.Zero(t, *plan.Sequential.Timeout)

	plan, err = load(t, `
task "A" {}
sequential { start_threshold = 0.5 }
`)
	require.NoError(t, err)
	assert.Nil(t, plan.Sequential.Timeout)
}

func TestLoader_Errors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		content string
		msg     string
		wantErr error
	}{
		{name: "syntax error", content: `task "A" {`, msg: "failed to parse HCL file"},
		{name: "unknown block", content: `stage "A" {}`, msg: "failed to decode HCL file"},
		{name: "unknown attribute", content: `task "A" { retries = 2 }`, msg: "failed to decode HCL file"},
		{name: "fractional duration", content: `task "A" { duration = 2.5 }`, msg: "invalid duration"},
		{name: "non-numeric duration", content: `task "A" { duration = "soon" }`, msg: "cannot convert"},
		{name: "non-numeric timeout", content: `
task "A" {}
sequential { timeout = true }
`, msg: "sequential timeout"},
		{name: "duplicate sequential block", content: `
task "A" {}
sequential {}
sequential {}
`, msg: "failed to decode HCL file"},
		{name: "undeclared prerequisite", content: `task "A" { depends_on = ["ghost"] }`, wantErr: dag.ErrUnknownTask},
		{name: "duplicate task", content: `
task "A" {}
task "A" {}
`, wantErr: dag.ErrDuplicateTask},
		{name: "threshold out of range", content: `
task "A" {}
sequential { start_threshold = 2 }
`, wantErr: config.ErrInvalidPlan},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := load(t, tc.content)
			require.Error(t, err)
			if tc.msg != "" {
				assert.Contains(t, err.Error(), tc.msg)
			}
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
			}
		})
	}
}

func TestLoader_DirectoryMergesFiles(t *testing.T) {
	t.Parallel()

	dir := testutil.WriteFiles(t, map[string]string{
		"a_tasks.hcl":       `task "A" {}` + "\n" + `task "B" {}`,
		"b_edges.hcl":       `dependency "A" "B" {}`,
		"nested/c_mode.hcl": `concurrent { max_workers = 4 }`,
		"README.md":         "not a plan",
	})
	ctx, _ := testutil.LogContext(t)

	plan, err := NewLoader().Load(ctx, dir)
	require.NoError(t, err)

	assert.Equal(t, []string{"A", "B"}, plan.Tasks)
	assert.Equal(t, []dag.Edge{{From: "A", To: "B"}}, plan.Edges)
	assert.Equal(t, 4, plan.Concurrent.MaxWorkers)
}

func TestLoader_MissingPath(t *testing.T) {
	t.Parallel()
	ctx, _ := testutil.LogContext(t)

	_, err := NewLoader().Load(ctx, filepath.Join(t.TempDir(), "nope.hcl"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error accessing path")
}

// The bundled example plans must load and order the way their comments
// describe.
func TestLoader_ExamplePlans(t *testing.T) {
	t.Parallel()
	ctx := ctxlog.Discard(context.Background())

	testCases := []struct {
		file      string
		wantOrder []string
		wantCycle bool
	}{
		{file: "fan_in.hcl", wantOrder: []string{"B", "C", "A", "D"}},
		{file: "diamond.hcl", wantOrder: []string{"A", "B", "C", "D", "E"}},
		{file: "join.hcl", wantOrder: []string{"A", "B", "C", "D"}},
		{file: "chain.hcl", wantOrder: []string{"E", "D", "C", "B", "A"}},
		{file: "cycle.hcl", wantCycle: true},
	}

	for _, tc := range testCases {
		t.Run(tc.file, func(t *testing.T) {
			plan, err := NewLoader().Load(ctx, filepath.Join("..", "..", "examples", tc.file))
			require.NoError(t, err)

			order, err := dag.Order(plan.Tasks, plan.Edges)
			if tc.wantCycle {
				require.ErrorIs(t, err, dag.ErrCycleDetected)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantOrder, order)
		})
	}
}
