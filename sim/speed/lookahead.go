package speed

import "github.com/dvfs-sim/dvfs-sim/sim/freqtable"

// LookAhead is LAEDF: alpha is set from the current ready set's total
// remaining work divided by the time until its earliest absolute
// deadline, clamped to [lowest available frequency, 1.0] (spec.md §4.4).
// It carries no state between calls — everything it needs is in State.
type LookAhead struct{}

func (LookAhead) Dynamic() bool                { return true }
func (LookAhead) Name() string                 { return "laedf" }
func (LookAhead) OnRelease(int, int64, int64)  {}
func (LookAhead) OnComplete(int, int64, int64) {}

func (LookAhead) Alpha(s State) float64 {
	if len(s.Ready) == 0 {
		return freqtable.Levels[freqtable.Lowest]
	}

	var totalWork float64
	earliestDeadline := s.Ready[0].AbsoluteDeadline
	for _, j := range s.Ready {
		totalWork += j.Remaining
		if j.AbsoluteDeadline < earliestDeadline {
			earliestDeadline = j.AbsoluteDeadline
		}
	}

	if float64(earliestDeadline) <= s.Now {
		return 1.0
	}

	alpha := totalWork / (float64(earliestDeadline) - s.Now)
	if alpha > 1.0 {
		alpha = 1.0
	}
	if lowest := freqtable.Levels[freqtable.Lowest]; alpha < lowest {
		alpha = lowest
	}
	return alpha
}
