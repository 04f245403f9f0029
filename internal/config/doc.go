// Package config defines the format-agnostic plan model: the tasks of a run,
// their dependency edges, optional fixed durations and the settings of each
// execution mode. It also declares the Loader interface implemented by the
// format-specific packages, such as hcl and yamlplan.
//
// The Plan is the single source of truth handed to the dag and executor
// packages.
package config
