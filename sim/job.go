package sim

import "github.com/dvfs-sim/dvfs-sim/sim/freqtable"

// Job is one released instance of a Task. It refers to its task by index
// into the run's TaskSet — a back-reference, not ownership (SPEC_FULL.md
// §3 / §9) — since the TaskSet is owned by the Simulation, not the job.
type Job struct {
	ID               int
	TaskID           int
	Release          int64
	AbsoluteDeadline int64
	Remaining        float64
	ActualExec       int64
}

// Done reports whether the job's remaining work has reached zero, within
// tolerance.
func (j *Job) Done() bool {
	return j.Remaining <= freqtable.Epsilon
}

// JobPool allocates Jobs with consecutive identifiers starting at 0,
// scoped to a single simulation run (spec.md §4.3). It is owned by the
// Simulation for the duration of one pass and reset between passes.
type JobPool struct {
	jobs    []Job
	cursors map[int]int // task ID -> next invocation index
}

// NewJobPool returns an empty pool.
func NewJobPool() *JobPool {
	return &JobPool{cursors: make(map[int]int)}
}

// Release allocates a new Job for task at the given release time,
// computing its actual execution time from the task's invocation cursor
// (or its WCET, if the task has no recorded invocations), and returns a
// pointer into the pool's backing array.
//
// A later call to Release may reallocate the backing slice, after which
// the returned pointer no longer aliases the pool's copy. The Simulation
// keeps the returned pointer in the ReadySet and updates the job only
// through it; the pool's own copies serve only for Count.
func (p *JobPool) Release(task *Task, releaseTime int64) *Job {
	actual := task.WCET
	if n := len(task.Invocations); n > 0 {
		cursor := p.cursors[task.ID] % n
		actual = task.Invocations[cursor]
		p.cursors[task.ID] = cursor + 1
	}
	job := Job{
		ID:               len(p.jobs),
		TaskID:           task.ID,
		Release:          releaseTime,
		AbsoluteDeadline: releaseTime + task.Deadline,
		Remaining:        float64(actual),
		ActualExec:       actual,
	}
	p.jobs = append(p.jobs, job)
	return &p.jobs[len(p.jobs)-1]
}

// Count returns the number of jobs allocated so far in this run.
func (p *JobPool) Count() int {
	return len(p.jobs)
}
