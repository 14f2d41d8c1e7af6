// Task and job pool definitions. A Task is the static, immutable
// descriptor of a periodic task; Jobs are the per-release instances the
// engine actually schedules. See sim/policy.go for how a Task's
// utilisation feeds into speed-setting, and simulator.go for the
// release/dispatch/completion lifecycle.
package sim

import (
	"fmt"
	"sort"
)

// Task is the immutable descriptor of one periodic task, read from a task
// descriptor file (sim/taskio) or constructed directly by tests. All time
// quantities are non-negative integers in millisecond units.
type Task struct {
	ID          int
	Phase       int64
	Period      int64
	Deadline    int64
	WCET        int64
	Invocations []int64 // actual per-invocation execution times; may be shorter than the release count, in which case the cursor wraps
}

// Utilisation returns wcet/period for this task.
func (t Task) Utilisation() float64 {
	return float64(t.WCET) / float64(t.Period)
}

// Validate checks the invariants spec.md §3 requires of a Task: positive
// period, and 0 < wcet <= deadline <= period (constrained-deadline model).
func (t Task) Validate() error {
	if t.Period <= 0 {
		return fmt.Errorf("task %d: period must be positive, got %d", t.ID, t.Period)
	}
	if t.WCET <= 0 {
		return fmt.Errorf("task %d: wcet must be positive, got %d", t.ID, t.WCET)
	}
	if t.WCET > t.Deadline {
		return fmt.Errorf("task %d: wcet (%d) exceeds deadline (%d)", t.ID, t.WCET, t.Deadline)
	}
	if t.Deadline > t.Period {
		return fmt.Errorf("task %d: deadline (%d) exceeds period (%d)", t.ID, t.Deadline, t.Period)
	}
	return nil
}

// TaskSet is an ordered, immutable list of tasks for the duration of a run.
// The orchestrator clones it before each simulation pass
// (sim/orchestrator.go) so no pass can leak state into the next.
type TaskSet []Task

// Clone returns a deep copy of the task set, including each task's
// invocation slice, so mutating the clone (e.g. the RM-family period sort
// in the orchestrator) never disturbs the original.
func (ts TaskSet) Clone() TaskSet {
	clone := make(TaskSet, len(ts))
	for i, t := range ts {
		invocations := make([]int64, len(t.Invocations))
		copy(invocations, t.Invocations)
		t.Invocations = invocations
		clone[i] = t
	}
	return clone
}

// Validate checks the task count bound and every task's own invariants.
func (ts TaskSet) Validate(maxTasks int) error {
	if len(ts) == 0 {
		return fmt.Errorf("task set is empty")
	}
	if len(ts) > maxTasks {
		return fmt.Errorf("task count %d exceeds bound of %d", len(ts), maxTasks)
	}
	for _, t := range ts {
		if err := t.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Periods returns the period of every task, in order — the input LCM/
// Hyperperiod expects.
func (ts TaskSet) Periods() []int64 {
	periods := make([]int64, len(ts))
	for i, t := range ts {
		periods[i] = t.Period
	}
	return periods
}

// SortedByPeriod returns a copy of ts sorted ascending by period, using a
// stable sort so tasks with equal periods keep their relative (task-ID)
// order. This is the reordering the RM-family passes apply before running
// (spec.md §4.7); EDF-family passes use ts unmodified.
func (ts TaskSet) SortedByPeriod() TaskSet {
	sorted := ts.Clone()
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Period < sorted[j].Period
	})
	return sorted
}
