// Simulation is the discrete-event engine of spec.md §4.6: the
// release/speed-update/dispatch/advance/completion loop that drives one
// task set through exactly one hyperperiod under one Policy. See
// sim/orchestrator.go for how a full suite of nine passes is driven, and
// sim/policy.go for how a Policy resolves to a priority.Discipline and a
// speed.Policy.
package sim

import (
	"context"
	"fmt"
	"math"

	"github.com/dvfs-sim/dvfs-sim/sim/freqtable"
	"github.com/dvfs-sim/dvfs-sim/sim/priority"
	"github.com/dvfs-sim/dvfs-sim/sim/speed"
	"github.com/dvfs-sim/dvfs-sim/sim/trace"
)

// Simulation holds everything that would otherwise be global mutable
// state in the source (SPEC_FULL.md §9): the task array, job pool, ready
// set, speed-policy bookkeeping, and every running counter, all scoped to
// one run and discarded afterward.
type Simulation struct {
	tasks       TaskSet
	hyperperiod int64
	policy      Policy
	priority    priority.Discipline
	speedPol    speed.Policy
	collector   trace.Collector

	pool         *JobPool
	ready        ReadySet
	nextRelease  []int64 // per-task index into tasks, next release instant
	now          float64
	currentFreq  int
	running      *Job
	energy       float64
	decisionPts  int
	preemptions  int
	ctxSwitches  int
	deadlineMiss int
}

// NewSimulation constructs a run for tasks under policy. tasks must
// already be in the order the pass requires (RM-family passes are sorted
// ascending by period; see TaskSet.SortedByPeriod and
// sim/orchestrator.go). collector receives every event this run emits;
// pass trace.NullCollector{} to discard them.
func NewSimulation(tasks TaskSet, policy Policy, collector trace.Collector) (*Simulation, error) {
	if err := policy.Validate(); err != nil {
		return nil, err
	}
	if err := tasks.Validate(MaxTasks); err != nil {
		return nil, err
	}

	nextRelease := make([]int64, len(tasks))
	for i, t := range tasks {
		nextRelease[i] = t.Phase
	}

	s := &Simulation{
		tasks:       tasks,
		hyperperiod: freqtable.Hyperperiod(tasks.Periods()),
		policy:      policy,
		priority:    priority.New(policy.Priority.String()),
		speedPol:    newSpeedPolicy(policy, taskViews(tasks)),
		collector:   collector,
		pool:        NewJobPool(),
		nextRelease: nextRelease,
	}
	s.currentFreq = freqtable.IndexForAlpha(s.speedPol.Alpha(s.snapshot()))
	return s, nil
}

// MaxTasks is the task-count bound spec.md §6 fixes for the descriptor
// file format.
const MaxTasks = 10

// snapshot builds the speed package's State view of the current instant.
func (s *Simulation) snapshot() speed.State {
	views := make([]speed.JobView, s.ready.Len())
	for i, j := range s.ready.Jobs() {
		views[i] = speed.JobView{TaskID: j.TaskID, AbsoluteDeadline: j.AbsoluteDeadline, Remaining: j.Remaining}
	}
	return speed.State{Now: s.now, Tasks: taskViews(s.tasks), Ready: views}
}

// Run drives the loop until simulated time reaches the hyperperiod or ctx
// is cancelled (checked once per iteration, never mid-phase — spec.md §5
// ordering guarantees are preserved either way).
func (s *Simulation) Run(ctx context.Context) (RunResult, error) {
	for s.now < float64(s.hyperperiod)-freqtable.Epsilon {
		select {
		case <-ctx.Done():
			return s.result(), fmt.Errorf("simulation %s: %w", s.policy.Name, ctx.Err())
		default:
		}
		s.releasePhase()
		s.speedUpdatePhase()
		s.dispatchPhase()
		s.advancePhase()
		s.completionPhase()
	}
	return s.result(), nil
}

func (s *Simulation) releasePhase() {
	for i := range s.tasks {
		t := &s.tasks[i]
		if math.Abs(s.now-float64(s.nextRelease[i])) > freqtable.Epsilon {
			continue
		}
		job := s.pool.Release(t, s.nextRelease[i])
		s.ready.Push(job)
		s.decisionPts++
		s.speedPol.OnRelease(t.ID, t.WCET, t.Period)
		s.collector.Release(trace.ReleaseRecord{Now: s.now, JobID: job.ID, TaskID: t.ID, AbsoluteDeadline: job.AbsoluteDeadline})
		s.nextRelease[i] += t.Period
	}
}

func (s *Simulation) speedUpdatePhase() {
	if !s.speedPol.Dynamic() {
		return
	}
	alpha := s.speedPol.Alpha(s.snapshot())
	idx := freqtable.IndexForAlpha(alpha)
	if idx != s.currentFreq {
		s.collector.SpeedChange(trace.SpeedChangeRecord{Now: s.now, Alpha: alpha, FreqIndex: idx})
	}
	s.currentFreq = idx
}

func (s *Simulation) dispatchPhase() {
	var chosen *Job
	if s.ready.Len() > 0 {
		readyView := make([]priority.Ready, s.ready.Len())
		periods := make(priority.TaskPeriod, len(s.tasks))
		for _, t := range s.tasks {
			periods[t.ID] = t.Period
		}
		for i, j := range s.ready.Jobs() {
			readyView[i] = priority.Ready{AbsoluteDeadline: j.AbsoluteDeadline, TaskID: j.TaskID}
		}
		chosen = s.ready.At(s.priority.Select(readyView, periods))
	}

	if chosen == s.running {
		return
	}
	s.ctxSwitches++
	if s.running != nil && chosen != nil {
		s.preemptions++
	}
	if chosen != nil {
		s.collector.Schedule(trace.ScheduleRecord{Now: s.now, JobID: chosen.ID, TaskID: chosen.TaskID})
	}
	s.running = chosen
}

func (s *Simulation) advancePhase() {
	nextTime := float64(s.hyperperiod)
	for _, nr := range s.nextRelease {
		if f := float64(nr); f < nextTime {
			nextTime = f
		}
	}

	alpha := freqtable.Levels[s.currentFreq]
	if s.running != nil && alpha > freqtable.Epsilon {
		if c := s.now + s.running.Remaining/alpha; c < nextTime {
			nextTime = c
		}
	}

	duration := nextTime - s.now
	if duration < freqtable.Epsilon {
		nextTime = s.now + freqtable.Epsilon
		duration = nextTime - s.now
	}

	if s.running != nil {
		s.energy += freqtable.Energy(duration, s.currentFreq)
		s.running.Remaining -= duration * alpha
	} else {
		s.energy += freqtable.Energy(duration, freqtable.Lowest)
		s.collector.Idle(trace.IdleRecord{Now: s.now, Duration: duration})
	}
	s.now = nextTime
}

func (s *Simulation) completionPhase() {
	if s.running == nil || !s.running.Done() {
		return
	}
	job := s.running
	task := &s.tasks[s.taskIndex(job.TaskID)]

	s.decisionPts++
	if s.now > float64(job.AbsoluteDeadline)+freqtable.Epsilon {
		s.deadlineMiss++
		s.collector.DeadlineMiss(trace.DeadlineMissRecord{Now: s.now, JobID: job.ID, TaskID: job.TaskID, AbsoluteDeadline: job.AbsoluteDeadline})
	}
	s.speedPol.OnComplete(task.ID, job.ActualExec, task.Period)
	s.collector.Complete(trace.CompleteRecord{Now: s.now, JobID: job.ID, TaskID: job.TaskID, ActualExec: job.ActualExec})

	for i, j := range s.ready.Jobs() {
		if j == job {
			s.ready.Remove(i)
			break
		}
	}
	s.running = nil
}

func (s *Simulation) taskIndex(taskID int) int {
	for i, t := range s.tasks {
		if t.ID == taskID {
			return i
		}
	}
	panic(fmt.Sprintf("sim: no task with id %d", taskID))
}

func (s *Simulation) result() RunResult {
	return RunResult{
		Policy:          s.policy,
		Hyperperiod:     s.hyperperiod,
		TotalEnergy:     s.energy,
		JobCount:        s.pool.Count(),
		DecisionPoints:  s.decisionPts,
		Preemptions:     s.preemptions,
		ContextSwitches: s.ctxSwitches,
		DeadlineMisses:  s.deadlineMiss,
	}
}
