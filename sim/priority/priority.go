// Package priority implements the dispatch disciplines of spec.md §4.5:
// EDF (minimum absolute deadline) and RM (minimum task period). It is
// deliberately decoupled from package sim's Job/Task types via the
// minimal Ready/Task views below, mirroring the teacher's
// InstanceScheduler/PriorityPolicy factory shape (sim.NewScheduler,
// sim.NewPriorityPolicy in the teacher repo).
package priority

import "fmt"

// Ready is the minimal view of one ready-set entry a Discipline needs.
type Ready struct {
	AbsoluteDeadline int64
	TaskID           int
}

// TaskPeriod is the minimal view of a task's period, keyed by ID.
type TaskPeriod map[int]int64

// Discipline picks which ready-set entry to dispatch.
type Discipline interface {
	// Select returns the index into ready of the job to run. ready is
	// never empty; callers handle the empty (idle) case themselves.
	// Ties are broken by insertion order: Select must only replace its
	// running choice on a strict improvement, never on equality, so the
	// first-seen candidate wins every tie.
	Select(ready []Ready, periods TaskPeriod) int
}

// EDF dispatches the job with the minimum absolute deadline.
type EDF struct{}

func (EDF) Select(ready []Ready, _ TaskPeriod) int {
	best := 0
	for i := 1; i < len(ready); i++ {
		if ready[i].AbsoluteDeadline < ready[best].AbsoluteDeadline {
			best = i
		}
	}
	return best
}

// RM dispatches the job belonging to the task with the minimum period
// (highest static priority).
type RM struct{}

func (RM) Select(ready []Ready, periods TaskPeriod) int {
	best := 0
	for i := 1; i < len(ready); i++ {
		if periods[ready[i].TaskID] < periods[ready[best].TaskID] {
			best = i
		}
	}
	return best
}

// New returns the Discipline for the given priority family name ("edf" or
// "rm"). It panics on an unrecognized name: the policy registry in
// package sim validates names before they ever reach here, the same
// contract the teacher's NewPriorityPolicy/NewScheduler use.
func New(family string) Discipline {
	switch family {
	case "edf":
		return EDF{}
	case "rm":
		return RM{}
	default:
		panic(fmt.Sprintf("priority: unknown family %q", family))
	}
}
