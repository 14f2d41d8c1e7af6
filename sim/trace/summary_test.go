package trace

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextCollector_WritesEventLines(t *testing.T) {
	var buf bytes.Buffer
	c := NewTextCollector(&buf)

	c.Release(ReleaseRecord{Now: 0, JobID: 0, TaskID: 0, AbsoluteDeadline: 10})
	c.Schedule(ScheduleRecord{Now: 0, JobID: 0, TaskID: 0})
	c.Idle(IdleRecord{Now: 5, Duration: 2})
	c.Complete(CompleteRecord{Now: 7, JobID: 0, TaskID: 0, ActualExec: 5})
	c.DeadlineMiss(DeadlineMissRecord{Now: 12, JobID: 1, TaskID: 0, AbsoluteDeadline: 10})
	c.SpeedChange(SpeedChangeRecord{Now: 0, Alpha: 0.5, FreqIndex: 4})
	require.NoError(t, c.Flush())

	out := buf.String()
	assert.Contains(t, out, "release")
	assert.Contains(t, out, "schedule")
	assert.Contains(t, out, "idle")
	assert.Contains(t, out, "complete")
	assert.Contains(t, out, "MISS")
	assert.Contains(t, out, "speed")
	assert.Equal(t, 6, strings.Count(out, "\n"))
}

func TestTextCollector_Summary_IncludesPolicyNameAndCounts(t *testing.T) {
	var buf bytes.Buffer
	c := NewTextCollector(&buf)

	c.Summary(RunSummary{
		PolicyName:      "Plain EDF",
		Hyperperiod:     12,
		JobCount:        6,
		DecisionPoints:  12,
		Preemptions:     1,
		ContextSwitches: 6,
		DeadlineMisses:  0,
		TotalEnergy:     10.5,
	})
	require.NoError(t, c.Flush())

	out := buf.String()
	assert.Contains(t, out, "Plain EDF")
	assert.Contains(t, out, "jobs=6")
	assert.Contains(t, out, "deadline_misses=0")
}

func TestTextCollector_Final_ListsEveryRow(t *testing.T) {
	var buf bytes.Buffer
	c := NewTextCollector(&buf)

	c.Final([]FinalRow{
		{PolicyName: "Plain EDF", NormalizedEnergy: 1.0},
		{PolicyName: "Static EDF", NormalizedEnergy: 0.583},
	})
	require.NoError(t, c.Flush())

	out := buf.String()
	assert.Contains(t, out, "Plain EDF")
	assert.Contains(t, out, "Static EDF")
	assert.Contains(t, out, "0.583")
}
