package hcl

import (
	"fmt"
	"reflect"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"

	"github.com/specialistvlad/taskgrid/internal/config"
	"github.com/specialistvlad/taskgrid/internal/dag"
)

// translateTask appends the task and its depends_on edges to the plan.
func translateTask(plan *config.Plan, tb *taskBlock) error {
	plan.Tasks = append(plan.Tasks, tb.Name)
	for _, prerequisite := range tb.DependsOn {
		plan.Edges = append(plan.Edges, dag.Edge{From: prerequisite, To: tb.Name})
	}

	var d int
	set, err := decodeAttr(tb.Duration, &d)
	if err != nil {
		return fmt.Errorf("task %q: invalid duration: %w", tb.Name, err)
	}
	if set {
		plan.Durations[tb.Name] = d
	}
	return nil
}

func translateSequential(out *config.Sequential, sb *sequentialBlock) error {
	var timeout float64
	set, err := decodeAttr(sb.Timeout, &timeout)
	if err != nil {
		return fmt.Errorf("sequential timeout: %w", err)
	}
	if set {
		out.Timeout = &timeout
	}
	if _, err := decodeAttr(sb.StartThreshold, &out.StartThreshold); err != nil {
		return fmt.Errorf("sequential start_threshold: %w", err)
	}
	return nil
}

func translateConcurrent(out *config.Concurrent, cb *concurrentBlock) error {
	if _, err := decodeAttr(cb.MaxWorkers, &out.MaxWorkers); err != nil {
		return fmt.Errorf("concurrent max_workers: %w", err)
	}
	if _, err := decodeAttr(cb.GateDependencies, &out.GateDependencies); err != nil {
		return fmt.Errorf("concurrent gate_dependencies: %w", err)
	}
	return nil
}

// decodeAttr evaluates an optional attribute and stores it in target, which
// must be a pointer. It reports false when the attribute is absent or null.
func decodeAttr(expr hcl.Expression, target any) (bool, error) {
	if expr == nil {
		return false, nil
	}
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return false, diags
	}
	if val.IsNull() {
		return false, nil
	}

	ty, err := gocty.ImpliedType(reflect.ValueOf(target).Elem().Interface())
	if err != nil {
		return false, err
	}
	converted, err := convert.Convert(val, ty)
	if err != nil {
		return false, fmt.Errorf("%s: cannot convert %s to %s: %w", expr.Range(), val.Type().FriendlyName(), ty.FriendlyName(), err)
	}
	if err := gocty.FromCtyValue(converted, target); err != nil {
		return false, fmt.Errorf("%s: %w", expr.Range(), err)
	}
	return true, nil
}
