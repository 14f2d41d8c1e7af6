package sim

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dvfs-sim/dvfs-sim/sim/freqtable"
	"github.com/dvfs-sim/dvfs-sim/sim/trace"
)

// Scenario 1 (spec.md §8): a single task whose utilisation is exactly
// 0.5 runs its one job for the whole hyperperiod at the smallest
// frequency level that still meets that utilisation (0.5), since
// Levels[5] == 0.5 is the lowest level >= 0.5.
func TestSimulation_SingleTask_StaticEDFPicksExactUtilisationLevel(t *testing.T) {
	tasks := TaskSet{
		{ID: 0, Phase: 0, Period: 10, Deadline: 10, WCET: 5, Invocations: []int64{5}},
	}
	s, err := NewSimulation(tasks, StaticEDF, trace.NullCollector{})
	require.NoError(t, err)

	result, err := s.Run(context.Background())
	require.NoError(t, err)

	assert.EqualValues(t, 10, result.Hyperperiod)
	assert.Equal(t, 1, result.JobCount)
	assert.Equal(t, 0, result.DeadlineMisses)

	wantEnergy := freqtable.Levels[5] * freqtable.Voltages[5] * freqtable.Voltages[5] * 10
	assert.InDelta(t, wantEnergy, result.TotalEnergy, 1e-6)
}

// Scenario 6 (spec.md §8): forcing actual execution to twice the WCET
// under PLAIN-EDF produces exactly one deadline miss per such job.
func TestSimulation_PlainEDF_OverrunCausesExactlyOneMissPerJob(t *testing.T) {
	tasks := TaskSet{
		// Deadline (10) is shorter than period (20), leaving room for the
		// job's actual execution (12, more than double its WCET of 5) to
		// still complete before the hyperperiod ends while missing its
		// deadline.
		{ID: 0, Phase: 0, Period: 20, Deadline: 10, WCET: 5, Invocations: []int64{12}},
	}
	s, err := NewSimulation(tasks, PlainEDF, trace.NullCollector{})
	require.NoError(t, err)

	result, err := s.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, result.DeadlineMisses)
}

// Scenario 5 (spec.md §8): an idle interval is billed at the lowest
// available frequency regardless of the active policy.
func TestSimulation_IdleInterval_BilledAtLowestFrequency(t *testing.T) {
	tasks := TaskSet{
		{ID: 0, Phase: 0, Period: 10, Deadline: 10, WCET: 2, Invocations: []int64{2}},
	}
	s, err := NewSimulation(tasks, PlainEDF, trace.NullCollector{})
	require.NoError(t, err)

	result, err := s.Run(context.Background())
	require.NoError(t, err)

	// The job runs 2ms at full speed (alpha=1.0), then the processor idles
	// for the remaining 8ms at the lowest frequency level.
	wantEnergy := freqtable.Energy(2, 0) + freqtable.Energy(8, freqtable.Lowest)
	assert.InDelta(t, wantEnergy, result.TotalEnergy, 1e-6)
}

// Scenario 3 (spec.md §8): when the actual execution time is less than
// WCET, CCEDF reclaims the slack and uses strictly less energy than
// STATIC-EDF over the same trace.
func TestSimulation_CCEDF_UsesLessEnergyThanStaticEDFWhenActualBelowWCET(t *testing.T) {
	// Two releases of task 0 within the hyperperiod give CCEDF a chance to
	// reclaim the slack between wcet=5 and actual=2 before task 1 runs at
	// a lower frequency than STATIC-EDF's fixed upper-bound alpha would
	// allow.
	tasks := TaskSet{
		{ID: 0, Phase: 0, Period: 10, Deadline: 10, WCET: 5, Invocations: []int64{2, 2}},
		{ID: 1, Phase: 0, Period: 20, Deadline: 20, WCET: 1, Invocations: []int64{1}},
	}

	ccedf, err := NewSimulation(tasks, CCEDFPolicy, trace.NullCollector{})
	require.NoError(t, err)
	ccedfResult, err := ccedf.Run(context.Background())
	require.NoError(t, err)

	staticEDF, err := NewSimulation(tasks, StaticEDF, trace.NullCollector{})
	require.NoError(t, err)
	staticResult, err := staticEDF.Run(context.Background())
	require.NoError(t, err)

	assert.Less(t, ccedfResult.TotalEnergy, staticResult.TotalEnergy)
	assert.Equal(t, 0, ccedfResult.DeadlineMisses)
}

// Scenario 4 (spec.md §8): two tasks utilising 0.6 and 0.3 cannot be
// scheduled by STATIC-RM below frequency level 0.9 — the Liu-Layland
// bound at n=2 (~0.828) is violated at any lower level.
func TestSimulation_StaticRM_RespectsLiuLaylandBound(t *testing.T) {
	tasks := TaskSet{
		{ID: 0, Phase: 0, Period: 10, Deadline: 10, WCET: 6, Invocations: []int64{6}},
		{ID: 1, Phase: 0, Period: 10, Deadline: 10, WCET: 3, Invocations: []int64{3}},
	}
	s, err := NewSimulation(tasks, StaticRM, trace.NullCollector{})
	require.NoError(t, err)

	result, err := s.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, result.DeadlineMisses)
}

func TestSimulation_Determinism(t *testing.T) {
	tasks := TaskSet{
		{ID: 0, Phase: 0, Period: 4, Deadline: 4, WCET: 1, Invocations: []int64{1, 1, 1}},
		{ID: 1, Phase: 0, Period: 6, Deadline: 6, WCET: 2, Invocations: []int64{2, 2}},
	}

	run := func() RunResult {
		s, err := NewSimulation(tasks, CCEDFPolicy, trace.NullCollector{})
		require.NoError(t, err)
		r, err := s.Run(context.Background())
		require.NoError(t, err)
		return r
	}

	a, b := run(), run()
	assert.Equal(t, a, b)
}

func TestSimulation_RejectsLookAheadRM(t *testing.T) {
	tasks := TaskSet{{ID: 0, Phase: 0, Period: 10, Deadline: 10, WCET: 5}}
	bad := Policy{Name: "bad", Priority: FamilyRM, Speed: SpeedLookAhead}
	_, err := NewSimulation(tasks, bad, trace.NullCollector{})
	assert.Error(t, err)
}

func TestSimulation_CancelledContext_StopsEarly(t *testing.T) {
	tasks := TaskSet{
		{ID: 0, Phase: 0, Period: 1000, Deadline: 1000, WCET: 1, Invocations: []int64{1}},
	}
	s, err := NewSimulation(tasks, PlainEDF, trace.NullCollector{})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = s.Run(ctx)
	assert.Error(t, err)
}
