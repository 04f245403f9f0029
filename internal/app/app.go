package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/specialistvlad/taskgrid/internal/config"
	"github.com/specialistvlad/taskgrid/internal/ctxlog"
	"github.com/specialistvlad/taskgrid/internal/hcl"
	"github.com/specialistvlad/taskgrid/internal/metrics"
	"github.com/specialistvlad/taskgrid/internal/task"
	"github.com/specialistvlad/taskgrid/internal/yamlplan"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW       io.Writer
	logger     *slog.Logger
	config     *Config
	plan       *config.Plan
	metrics    *metrics.Collector
	runner     task.Runner
	httpServer *http.Server
}

// Option customizes an App at construction time.
type Option func(*appOptions)

type appOptions struct {
	loader config.Loader
	runner task.Runner
}

// WithLoader overrides the plan loader chosen from the plan path.
func WithLoader(l config.Loader) Option {
	return func(o *appOptions) { o.loader = l }
}

// WithRunner replaces the task body. The default sleeps for the task's
// duration in Config.TimeUnit steps.
func WithRunner(r task.Runner) Option {
	return func(o *appOptions) { o.runner = r }
}

// NewApp is the constructor for the main application. It loads the plan and
// returns a fully initialized App with its own isolated logger and metrics
// registry. A plan that cannot be loaded is a fatal startup error and panics.
func NewApp(outW io.Writer, cfg *Config, opts ...Option) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	var o appOptions
	for _, opt := range opts {
		opt(&o)
	}
	if o.loader == nil {
		o.loader = loaderFor(cfg.PlanPath)
	}
	if o.runner == nil {
		unit := cfg.TimeUnit
		if unit == 0 {
			unit = DefaultTimeUnit
		}
		o.runner = task.Sleep(unit)
	}

	plan, err := o.loader.Load(ctx, cfg.PlanPath)
	if err != nil {
		panic(fmt.Errorf("failed to load plan: %w", err))
	}
	logger.Debug("Plan loaded and translated into unified model.", "tasks", len(plan.Tasks), "edges", len(plan.Edges))

	return &App{
		outW:    outW,
		logger:  logger,
		config:  cfg,
		plan:    plan,
		metrics: metrics.New(),
		runner:  o.runner,
	}
}

// loaderFor picks the plan format from the path's extension. Directories
// and anything else are read as HCL.
func loaderFor(path string) config.Loader {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yamlplan.NewLoader()
	default:
		return hcl.NewLoader()
	}
}

// Plan returns the loaded plan. This is primarily for testing.
func (a *App) Plan() *config.Plan {
	return a.plan
}

// Metrics returns the application's metrics collector.
func (a *App) Metrics() *metrics.Collector {
	return a.metrics
}
