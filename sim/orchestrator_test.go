package sim

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrchestrator_RunSuite_BaselinesAlwaysNormalizeToOne(t *testing.T) {
	tasks := TaskSet{
		{ID: 0, Phase: 0, Period: 4, Deadline: 4, WCET: 1, Invocations: []int64{1, 1, 1}},
		{ID: 1, Phase: 0, Period: 6, Deadline: 6, WCET: 2, Invocations: []int64{2, 2}},
	}

	o := &Orchestrator{}
	result, err := o.RunSuite(context.Background(), tasks)
	require.NoError(t, err)

	assert.InDelta(t, 1.0, result.Normalized[PlainEDF.Name], 1e-9)
	assert.InDelta(t, 1.0, result.Normalized[PlainRM.Name], 1e-9)
	assert.Len(t, result.Runs, len(AllPolicies))
}

func TestOrchestrator_RunSuite_OriginalTaskSetUntouched(t *testing.T) {
	original := TaskSet{
		{ID: 0, Phase: 0, Period: 6, Deadline: 6, WCET: 2, Invocations: []int64{2}},
		{ID: 1, Phase: 0, Period: 4, Deadline: 4, WCET: 1, Invocations: []int64{1}},
	}
	snapshot := original.Clone()

	o := &Orchestrator{}
	_, err := o.RunSuite(context.Background(), original)
	require.NoError(t, err)

	assert.Equal(t, snapshot, original)
}

func TestOrchestrator_RunSuite_SchedulablePlainBaselineImpliesDVFSVariantsSchedulable(t *testing.T) {
	// A lightly loaded task set: every DVFS variant within a family must
	// preserve the schedulability the PLAIN baseline achieves
	// (spec.md §8 "schedulability preservation").
	tasks := TaskSet{
		{ID: 0, Phase: 0, Period: 20, Deadline: 20, WCET: 2, Invocations: []int64{2}},
		{ID: 1, Phase: 0, Period: 30, Deadline: 30, WCET: 3, Invocations: []int64{3}},
	}

	o := &Orchestrator{}
	result, err := o.RunSuite(context.Background(), tasks)
	require.NoError(t, err)

	for _, r := range result.Runs {
		assert.Equalf(t, 0, r.DeadlineMisses, "policy %s should meet all deadlines", r.Policy.Name)
	}
}

func TestOrchestrator_RunSuite_RMFamilySortsByPeriod(t *testing.T) {
	// Task 1 has the shorter period but is listed second; an RM-family
	// pass must still give it priority over task 0.
	tasks := TaskSet{
		{ID: 0, Phase: 0, Period: 10, Deadline: 10, WCET: 4, Invocations: []int64{4}},
		{ID: 1, Phase: 0, Period: 5, Deadline: 5, WCET: 1, Invocations: []int64{1}},
	}

	o := &Orchestrator{}
	result, err := o.RunSuite(context.Background(), tasks)
	require.NoError(t, err)

	for _, r := range result.Runs {
		if r.Policy.Priority == FamilyRM {
			assert.Equal(t, 0, r.DeadlineMisses)
		}
	}
}
