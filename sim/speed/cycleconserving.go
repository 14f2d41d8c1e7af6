package speed

import (
	"math"

	"github.com/dvfs-sim/dvfs-sim/sim/freqtable"
)

// CCEDF is cycle-conserving EDF. It keeps one utilisation figure per task,
// set to the upper bound (wcet/period) on release and reclaimed down to
// the actual bound (actual_exec/period) on completion; alpha is the
// running sum (spec.md §4.4). The bookkeeping persists for the lifetime
// of one policy instance, i.e. one simulation pass.
type CCEDF struct {
	utils map[int]float64
}

// NewCCEDF returns a CCEDF policy with no per-task utilisation recorded
// yet — every task contributes 0 until its first release.
func NewCCEDF() *CCEDF {
	return &CCEDF{utils: make(map[int]float64)}
}

func (c *CCEDF) Dynamic() bool { return true }
func (c *CCEDF) Name() string  { return "ccedf" }

func (c *CCEDF) OnRelease(taskID int, wcet, period int64) {
	c.utils[taskID] = float64(wcet) / float64(period)
}

func (c *CCEDF) OnComplete(taskID int, actualExec, period int64) {
	c.utils[taskID] = float64(actualExec) / float64(period)
}

func (c *CCEDF) Alpha(State) float64 {
	var sum float64
	for _, u := range c.utils {
		sum += u
	}
	return sum
}

// CCRM is cycle-conserving RM: at every release and completion it picks
// the lowest frequency level at which every task passes an iterative
// response-time test (spec.md §4.4). It needs no release/completion
// bookkeeping of its own — it reads the ready set fresh via State.Ready
// every time Alpha is called.
type CCRM struct{}

func (CCRM) Dynamic() bool                { return true }
func (CCRM) Name() string                 { return "ccrm" }
func (CCRM) OnRelease(int, int64, int64)  {}
func (CCRM) OnComplete(int, int64, int64) {}

func (CCRM) Alpha(s State) float64 {
	// Scan from the slowest level upward: feasibility is monotonic in
	// speed, so the first feasible level found this way is the slowest
	// (smallest-frequency) one — the one DVFS wants.
	for i := freqtable.NumLevels - 1; i >= 0; i-- {
		gamma := freqtable.Levels[i]
		if ccrmFeasible(gamma, s.Tasks, s.Ready) {
			return gamma
		}
	}
	return 1.0
}

// ccrmFeasible runs the response-time iteration of spec.md §4.4 for every
// task at processor speed gamma. tasks must already be in ascending-
// period order (the orchestrator sorts RM-family passes this way before
// the run starts). myWork for task i is the remaining work of its
// outstanding job in ready, or its WCET if none is outstanding — the
// schedulability-preserving reading spec.md §9 prescribes over the
// original C's "0 when absent".
func ccrmFeasible(gamma float64, tasks []TaskView, ready []JobView) bool {
	for i, ti := range tasks {
		myWork := float64(ti.WCET)
		for _, j := range ready {
			if j.TaskID == ti.ID {
				myWork = j.Remaining
				break
			}
		}

		r := float64(ti.WCET)
		for {
			var interference float64
			for _, tj := range tasks[:i] {
				interference += math.Ceil(r/float64(tj.Period)) * float64(tj.WCET)
			}
			next := (myWork + interference) / gamma
			if next > float64(ti.Deadline) {
				return false
			}
			if math.Abs(next-r) < 1e-6 {
				break
			}
			r = next
		}
	}
	return true
}
