package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/specialistvlad/taskgrid/internal/executor"
)

// Defaults applied when neither the command line nor the plan sets a value.
const (
	DefaultTimeout  = 15
	DefaultWorkers  = 2
	DefaultTimeUnit = time.Second
)

// Config holds all the necessary configuration for an App instance to run.
// Settings left unset (nil Timeout, zero Workers) are filled from the plan,
// then from the defaults above.
type Config struct {
	PlanPath string // .hcl file or directory, or .yaml/.yml file
	Mode     executor.Mode

	// Timeout is nil unless given on the command line. Zero is a valid budget.
	Timeout *float64
	// StartThreshold zero takes the plan value, then the executor default.
	StartThreshold float64
	Workers        int
	Gate           bool

	// TimeUnit is the wall-clock length of one duration unit.
	TimeUnit time.Duration
	// Seed makes random durations reproducible. Zero draws a fresh sequence.
	Seed uint64

	LogFormat       string
	LogLevel        string
	HealthcheckPort int
}

// NewConfig validates cfg and returns a copy of it.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.PlanPath == "" {
		return nil, errors.New("PlanPath is a required configuration field and cannot be empty")
	}

	switch cfg.Mode {
	case executor.ModeSequential, executor.ModeConcurrent:
	case "":
		cfg.Mode = executor.ModeSequential
	default:
		return nil, fmt.Errorf("invalid mode %q: must be %q or %q", cfg.Mode, executor.ModeSequential, executor.ModeConcurrent)
	}

	if cfg.Timeout != nil && *cfg.Timeout < 0 {
		return nil, fmt.Errorf("timeout must not be negative, got %g", *cfg.Timeout)
	}
	if cfg.StartThreshold < 0 || cfg.StartThreshold > 1 {
		return nil, fmt.Errorf("start threshold must be within [0, 1], got %g", cfg.StartThreshold)
	}
	if cfg.Workers < 0 {
		return nil, fmt.Errorf("workers must not be negative, got %d", cfg.Workers)
	}
	if cfg.TimeUnit < 0 {
		return nil, fmt.Errorf("time unit must not be negative, got %s", cfg.TimeUnit)
	}
	if cfg.HealthcheckPort < 0 || cfg.HealthcheckPort > 65535 {
		return nil, fmt.Errorf("healthcheck port out of range: %d", cfg.HealthcheckPort)
	}
	if _, err := ParseLevel(cfg.LogLevel); err != nil {
		return nil, err
	}

	return &cfg, nil
}
