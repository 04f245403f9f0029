package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/taskgrid/internal/hcl"
	"github.com/specialistvlad/taskgrid/internal/task"
	"github.com/specialistvlad/taskgrid/internal/testutil"
	"github.com/specialistvlad/taskgrid/internal/yamlplan"
)

// setupAppTest creates an App over planPath with debug logging captured in
// the returned buffer. Task bodies are no-ops unless opts say otherwise.
func setupAppTest(t *testing.T, cfg Config, opts ...Option) (*App, *testutil.SafeBuffer) {
	t.Helper()

	cfg.LogLevel = "debug"
	appConfig, err := NewConfig(cfg)
	require.NoError(t, err)

	logBuffer := &testutil.SafeBuffer{}
	testApp := NewApp(logBuffer, appConfig, append([]Option{WithRunner(task.Noop)}, opts...)...)

	t.Cleanup(func() {
		if os.Getenv("TASKGRID_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
		}
	})
	return testApp, logBuffer
}

func examplePlan(name string) string {
	return filepath.Join("..", "..", "examples", name)
}

func TestNewApp_LoadsPlan(t *testing.T) {
	t.Parallel()

	a, logs := setupAppTest(t, Config{PlanPath: examplePlan("fan_in.hcl")})

	assert.Equal(t, []string{"A", "B", "C", "D"}, a.Plan().Tasks)
	assert.Len(t, a.Plan().Edges, 3)
	assert.NotNil(t, a.Metrics())
	assert.Contains(t, logs.String(), "Plan loaded")
}

func TestNewApp_PanicsOnBrokenPlan(t *testing.T) {
	t.Parallel()

	dir := testutil.WriteFiles(t, map[string]string{"plan.hcl": `task "A" {`})
	cfg, err := NewConfig(Config{PlanPath: filepath.Join(dir, "plan.hcl")})
	require.NoError(t, err)

	assert.Panics(t, func() {
		NewApp(&testutil.SafeBuffer{}, cfg)
	})
}

func TestLoaderFor(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		path string
		want any
	}{
		{path: "plan.hcl", want: &hcl.Loader{}},
		{path: "plans/", want: &hcl.Loader{}},
		{path: "plan.yaml", want: &yamlplan.Loader{}},
		{path: "PLAN.YML", want: &yamlplan.Loader{}},
	}
	for _, tc := range testCases {
		t.Run(tc.path, func(t *testing.T) {
			assert.IsType(t, tc.want, loaderFor(tc.path))
		})
	}
}

func TestApp_RunWithContext(t *testing.T) {
	t.Parallel()

	a, _ := setupAppTest(t, Config{PlanPath: examplePlan("diamond.hcl"), Seed: 9})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	report, err := a.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C", "D", "E"}, report.Order)
}
