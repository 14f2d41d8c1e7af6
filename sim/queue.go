// The ready set holds all currently-released, not-yet-completed jobs.
// Unlike the teacher's WaitQueue (a strict FIFO feeding batch formation),
// jobs leave the ready set from the middle — at whatever index the
// priority discipline picked — so ReadySet supports removal by index as
// well as FIFO-ordered appends.
package sim

// ReadySet is an unordered bag of outstanding jobs, in insertion order.
// Insertion order is preserved because spec.md §4.5 breaks priority ties
// by insertion order.
type ReadySet struct {
	jobs []*Job
}

// Push appends a newly released job to the back of the ready set.
func (rs *ReadySet) Push(j *Job) {
	rs.jobs = append(rs.jobs, j)
}

// Len returns the number of outstanding jobs.
func (rs *ReadySet) Len() int {
	return len(rs.jobs)
}

// At returns the job at index i.
func (rs *ReadySet) At(i int) *Job {
	return rs.jobs[i]
}

// Jobs returns the ready set's backing slice, for read-only iteration by
// the priority discipline and speed policies. Callers must not retain or
// mutate the slice across a Remove call.
func (rs *ReadySet) Jobs() []*Job {
	return rs.jobs
}

// Remove deletes the job at index i, preserving the relative order of the
// remaining jobs (so later insertion-order tie-breaks stay correct).
func (rs *ReadySet) Remove(i int) {
	rs.jobs = append(rs.jobs[:i], rs.jobs[i+1:]...)
}
