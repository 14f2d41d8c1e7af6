package sim

import (
	"context"
	"fmt"

	"github.com/dvfs-sim/dvfs-sim/sim/trace"
)

// Orchestrator drives the nine-pass sequence of spec.md §4.7: two
// baseline passes (PLAIN-EDF, PLAIN-RM) whose energy normalises the
// seven reported policy passes within their family.
type Orchestrator struct {
	// Collector, if non-nil, receives every event from every reported
	// pass (not the two baseline passes, which always run silently).
	Collector trace.Collector
}

// RunSuite runs all nine passes against original, cloning it fresh before
// each pass so no pass can leak state into the next (spec.md §5).
// Each task's invocation trace travels in its Invocations field (see
// taskio.AttachInvocations); a task with none runs every job at its WCET.
func (o *Orchestrator) RunSuite(ctx context.Context, original TaskSet) (SuiteResult, error) {
	baselineEDF, err := o.run(ctx, original, PlainEDF, trace.NullCollector{})
	if err != nil {
		return SuiteResult{}, fmt.Errorf("baseline EDF pass: %w", err)
	}
	baselineRM, err := o.run(ctx, original, PlainRM, trace.NullCollector{})
	if err != nil {
		return SuiteResult{}, fmt.Errorf("baseline RM pass: %w", err)
	}

	collector := o.Collector
	if collector == nil {
		collector = trace.NullCollector{}
	}

	runs := make([]RunResult, 0, len(AllPolicies))
	normalized := make(map[string]float64, len(AllPolicies))
	for _, p := range AllPolicies {
		r, err := o.run(ctx, original, p, collector)
		if err != nil {
			return SuiteResult{}, fmt.Errorf("pass %s: %w", p.Name, err)
		}
		runs = append(runs, r)

		baseline := baselineEDF
		if p.Priority == FamilyRM {
			baseline = baselineRM
		}
		normalized[p.Name] = normalizedEnergy(r.TotalEnergy, baseline.TotalEnergy)

		collector.Summary(trace.RunSummary{
			PolicyName:      p.Name,
			Hyperperiod:     r.Hyperperiod,
			JobCount:        r.JobCount,
			DecisionPoints:  r.DecisionPoints,
			Preemptions:     r.Preemptions,
			ContextSwitches: r.ContextSwitches,
			DeadlineMisses:  r.DeadlineMisses,
			TotalEnergy:     r.TotalEnergy,
		})
	}

	rows := make([]trace.FinalRow, len(AllPolicies))
	for i, p := range AllPolicies {
		rows[i] = trace.FinalRow{PolicyName: p.Name, NormalizedEnergy: normalized[p.Name]}
	}
	collector.Final(rows)

	return SuiteResult{
		BaselineEDF: baselineEDF,
		BaselineRM:  baselineRM,
		Runs:        runs,
		Normalized:  normalized,
	}, nil
}

// run clones original (sorting by period for RM-family passes — spec.md
// §4.7) and executes one simulation pass.
func (o *Orchestrator) run(ctx context.Context, original TaskSet, p Policy, collector trace.Collector) (RunResult, error) {
	tasks := original.Clone()
	if p.Priority == FamilyRM {
		tasks = tasks.SortedByPeriod()
	}

	sim, err := NewSimulation(tasks, p, collector)
	if err != nil {
		return RunResult{}, err
	}
	return sim.Run(ctx)
}

// normalizedEnergy divides energy by baseline, guarding against a
// degenerate zero-energy baseline (an all-idle task set).
func normalizedEnergy(energy, baseline float64) float64 {
	if baseline == 0 {
		return 0
	}
	return energy / baseline
}
