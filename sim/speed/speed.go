// Package speed implements the five DVFS speed-setting strategies of
// spec.md §4.4: STATIC-EDF, CCEDF, LAEDF, STATIC-RM, CCRM, plus the
// trivial PLAIN (fixed at maximum) policy shared by PLAIN-EDF and
// PLAIN-RM. Like package priority, it is decoupled from package sim's
// concrete Task/Job types via small view structs. The factory that picks
// a strategy for a policy (panicking on an unhandled one) is
// newSpeedPolicy in package sim.
package speed

import (
	"math"

	"github.com/dvfs-sim/dvfs-sim/sim/freqtable"
)

// TaskView is the minimal per-task information a speed policy needs.
type TaskView struct {
	ID       int
	Period   int64
	Deadline int64
	WCET     int64
}

// JobView is the minimal per-ready-job information a speed policy needs.
type JobView struct {
	TaskID           int
	AbsoluteDeadline int64
	Remaining        float64
}

// State is the engine's snapshot passed to Alpha. For CCRM, Tasks must be
// in ascending-period order (the order the engine already uses for every
// RM-family pass); the other policies don't care about task order.
type State struct {
	Now   float64
	Tasks []TaskView
	Ready []JobView
}

// Policy computes the required processor utilisation alpha.
//
// OnRelease and OnComplete let cycle-conserving policies maintain
// per-task utilisation bookkeeping at the exact points spec.md §4.6
// requires (release and completion); policies that recompute purely from
// the current ready set (LAEDF, CCRM) or never recompute at all (Plain,
// Static) leave them as no-ops.
type Policy interface {
	Alpha(state State) float64
	Dynamic() bool
	Name() string
	OnRelease(taskID int, wcet, period int64)
	OnComplete(taskID int, actualExec, period int64)
}

// Plain fixes alpha at 1.0 for the entire run (PLAIN-EDF, PLAIN-RM).
type Plain struct{}

func (Plain) Alpha(State) float64         { return 1.0 }
func (Plain) Dynamic() bool               { return false }
func (Plain) Name() string                { return "plain" }
func (Plain) OnRelease(int, int64, int64) {}
func (Plain) OnComplete(int, int64, int64) {}

// Static fixes alpha at a value computed once at t=0 (STATIC-EDF,
// STATIC-RM); see StaticEDFAlpha and StaticRMAlpha below.
type Static struct {
	alpha float64
}

// NewStatic wraps a precomputed alpha in a Policy.
func NewStatic(alpha float64) Static { return Static{alpha: alpha} }

func (s Static) Alpha(State) float64        { return s.alpha }
func (Static) Dynamic() bool                { return false }
func (Static) Name() string                 { return "static" }
func (Static) OnRelease(int, int64, int64)  {}
func (Static) OnComplete(int, int64, int64) {}

// StaticEDFAlpha computes the STATIC-EDF required utilisation: the sum of
// wcet/period over every task (spec.md §4.4).
func StaticEDFAlpha(tasks []TaskView) float64 {
	var sum float64
	for _, t := range tasks {
		sum += float64(t.WCET) / float64(t.Period)
	}
	return sum
}

// StaticRMAlpha picks the lowest frequency level gamma at which the
// Liu-Layland test holds for the scaled task set, i.e.
// sum(wcet_i / (gamma * period_i)) <= n * (2^(1/n) - 1). Falls back to
// 1.0 if no level satisfies it (spec.md §4.4).
func StaticRMAlpha(tasks []TaskView) float64 {
	n := float64(len(tasks))
	bound := n * (math.Pow(2, 1/n) - 1)
	for i := freqtable.NumLevels - 1; i >= 0; i-- {
		gamma := freqtable.Levels[i]
		var sum float64
		for _, t := range tasks {
			sum += float64(t.WCET) / (gamma * float64(t.Period))
		}
		if sum <= bound {
			return gamma
		}
	}
	return 1.0
}
