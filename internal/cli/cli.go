package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/specialistvlad/taskgrid/internal/app"
	"github.com/specialistvlad/taskgrid/internal/executor"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("taskgrid", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
taskgrid - Orders tasks by their dependencies and runs them sequentially
under a time budget or concurrently on a bounded worker pool.

Usage:
  taskgrid [options] [PLAN_PATH]

Arguments:
  PLAN_PATH
    Path to a .hcl plan file, a directory of .hcl files, or a .yaml/.yml plan.

Options:
`)
		flagSet.PrintDefaults()
	}

	planFlag := flagSet.String("plan", "", "Path to the plan file or directory.")
	pFlag := flagSet.String("p", "", "Path to the plan file or directory (shorthand).")
	modeFlag := flagSet.String("mode", "sequential", "Execution mode. Options: 'sequential' or 'concurrent'.")
	timeoutFlag := flagSet.Float64("timeout", 0, "Sequential time budget in time units. When omitted, the plan value or the default of 15 is used.")
	thresholdFlag := flagSet.Float64("threshold", 0, "Fraction of the total duration after which no task may start. 0 takes the plan value or 0.8.")
	workersFlag := flagSet.Int("workers", 0, "Concurrent worker pool size. 0 takes the plan value or the default of 2.")
	gateFlag := flagSet.Bool("gate", false, "In concurrent mode, hold each task until its prerequisites succeed.")
	timeUnitFlag := flagSet.Duration("time-unit", time.Second, "Wall-clock length of one duration unit.")
	seedFlag := flagSet.Uint64("seed", 0, "Seed for random task durations. 0 draws a fresh sequence.")
	healthPortFlag := flagSet.Int("healthcheck-port", 0, "Port for the HTTP health check and metrics server. 0 is disabled.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	path := ""
	if *planFlag != "" {
		path = *planFlag
	} else if *pFlag != "" {
		path = *pFlag
	} else if flagSet.NArg() > 0 {
		path = flagSet.Arg(0)
	}
	slog.Debug("Plan path determined.", "path", path)

	if path == "" {
		slog.Debug("No plan path provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	// Only an explicit -timeout overrides the plan; 0 is a valid budget.
	var timeout *float64
	flagSet.Visit(func(f *flag.Flag) {
		if f.Name == "timeout" {
			timeout = timeoutFlag
		}
	})

	config, err := app.NewConfig(app.Config{
		PlanPath:        path,
		Mode:            executor.Mode(strings.ToLower(*modeFlag)),
		Timeout:         timeout,
		StartThreshold:  *thresholdFlag,
		Workers:         *workersFlag,
		Gate:            *gateFlag,
		TimeUnit:        *timeUnitFlag,
		Seed:            *seedFlag,
		HealthcheckPort: *healthPortFlag,
		LogFormat:       logFormat,
		LogLevel:        strings.ToLower(*logLevelFlag),
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
