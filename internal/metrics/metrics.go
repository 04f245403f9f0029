// Package metrics exports run and task outcomes as Prometheus metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/specialistvlad/taskgrid/internal/executor"
	"github.com/specialistvlad/taskgrid/internal/task"
)

const namespace = "taskgrid"

// Collector is an executor.Observer backed by its own registry.
type Collector struct {
	registry *prometheus.Registry

	// tasksTotal counts classified tasks.
	// Labels: mode, outcome
	tasksTotal *prometheus.CounterVec

	// taskDuration is the distribution of assigned task durations in units.
	// Labels: mode
	taskDuration *prometheus.HistogramVec

	// runsTotal counts finished runs.
	// Labels: mode, result (completed, error)
	runsTotal *prometheus.CounterVec
}

var _ executor.Observer = (*Collector)(nil)

// New creates a collector registered on a fresh registry.
func New() *Collector {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Collector{
		registry: reg,
		tasksTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tasks_total",
			Help:      "Tasks classified, by execution mode and outcome.",
		}, []string{"mode", "outcome"}),
		taskDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "task_duration_units",
			Help:      "Assigned task durations in time units.",
			Buckets:   prometheus.LinearBuckets(0, 1, 11),
		}, []string{"mode"}),
		runsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Runs finished, by execution mode and result.",
		}, []string{"mode", "result"}),
	}
}

// TaskClassified implements executor.Observer.
func (c *Collector) TaskClassified(mode executor.Mode, t task.Task, outcome executor.Outcome) {
	c.tasksTotal.WithLabelValues(string(mode), outcome.String()).Inc()
	c.taskDuration.WithLabelValues(string(mode)).Observe(float64(t.Units))
}

// RunFinished implements executor.Observer.
func (c *Collector) RunFinished(mode executor.Mode, _ *executor.Report, err error) {
	result := "completed"
	if err != nil {
		result = "error"
	}
	c.runsTotal.WithLabelValues(string(mode), result).Inc()
}

// Registry exposes the underlying registry.
func (c *Collector) Registry() *prometheus.Registry { return c.registry }

// Handler serves the collector's metrics in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
