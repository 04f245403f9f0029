package app

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/taskgrid/internal/executor"
)

func budget(v float64) *float64 { return &v }

func TestNewConfig(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name   string
		cfg    Config
		errMsg string
	}{
		{name: "minimal", cfg: Config{PlanPath: "plan.hcl"}},
		{name: "full", cfg: Config{
			PlanPath: "plan.yaml", Mode: executor.ModeConcurrent, Timeout: budget(10), StartThreshold: 1,
			Workers: 4, Gate: true, TimeUnit: time.Millisecond, Seed: 7, LogLevel: "warn", HealthcheckPort: 8080,
		}},
		{name: "missing plan", cfg: Config{}, errMsg: "PlanPath is a required"},
		{name: "bad mode", cfg: Config{PlanPath: "p", Mode: "parallel"}, errMsg: "invalid mode"},
		{name: "zero timeout", cfg: Config{PlanPath: "p", Timeout: budget(0)}},
		{name: "negative timeout", cfg: Config{PlanPath: "p", Timeout: budget(-1)}, errMsg: "timeout"},
		{name: "threshold above one", cfg: Config{PlanPath: "p", StartThreshold: 1.01}, errMsg: "start threshold"},
		{name: "negative workers", cfg: Config{PlanPath: "p", Workers: -3}, errMsg: "workers"},
		{name: "negative time unit", cfg: Config{PlanPath: "p", TimeUnit: -time.Second}, errMsg: "time unit"},
		{name: "port out of range", cfg: Config{PlanPath: "p", HealthcheckPort: 70000}, errMsg: "port"},
		{name: "bad log level", cfg: Config{PlanPath: "p", LogLevel: "loud"}, errMsg: "invalid log-level"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := NewConfig(tc.cfg)
			if tc.errMsg != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.errMsg)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, cfg.Mode)
		})
	}
}

func TestNewConfig_DefaultsToSequential(t *testing.T) {
	t.Parallel()

	cfg, err := NewConfig(Config{PlanPath: "plan.hcl"})
	require.NoError(t, err)
	assert.Equal(t, executor.ModeSequential, cfg.Mode)
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]slog.Level{
		"debug": slog.LevelDebug,
		"INFO":  slog.LevelInfo,
		"":      slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	} {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseLevel("trace")
	assert.Error(t, err)
}
