package hcl

import "github.com/hashicorp/hcl/v2"

// fileRoot decodes every top-level block a plan file may contain.
type fileRoot struct {
	Tasks        []*taskBlock       `hcl:"task,block"`
	Dependencies []*dependencyBlock `hcl:"dependency,block"`
	Sequential   *sequentialBlock   `hcl:"sequential,block"`
	Concurrent   *concurrentBlock   `hcl:"concurrent,block"`
}

// taskBlock is a `task "<name>" {}` block.
type taskBlock struct {
	Name      string         `hcl:"name,label"`
	Duration  hcl.Expression `hcl:"duration,optional"`
	DependsOn []string       `hcl:"depends_on,optional"`
}

// dependencyBlock is a `dependency "<prerequisite>" "<dependent>" {}` block.
type dependencyBlock struct {
	Prerequisite string `hcl:"prerequisite,label"`
	Dependent    string `hcl:"dependent,label"`
}

type sequentialBlock struct {
	Timeout        hcl.Expression `hcl:"timeout,optional"`
	StartThreshold hcl.Expression `hcl:"start_threshold,optional"`
}

type concurrentBlock struct {
	MaxWorkers       hcl.Expression `hcl:"max_workers,optional"`
	GateDependencies hcl.Expression `hcl:"gate_dependencies,optional"`
}
