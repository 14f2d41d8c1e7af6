package sim

import (
	"fmt"

	"github.com/dvfs-sim/dvfs-sim/sim/speed"
)

// PriorityFamily is one axis of a Policy: which dispatch discipline
// governs the ready set.
type PriorityFamily int

const (
	FamilyEDF PriorityFamily = iota
	FamilyRM
)

func (f PriorityFamily) String() string {
	if f == FamilyRM {
		return "rm"
	}
	return "edf"
}

// SpeedStrategy is the other axis of a Policy: which DVFS strategy sets
// the processor's speed.
type SpeedStrategy int

const (
	SpeedPlain SpeedStrategy = iota
	SpeedStatic
	SpeedCycleConserving
	SpeedLookAhead
)

// Policy names the seven combinations spec.md §3 enumerates as a single
// tagged sum, split here into the two orthogonal axes spec.md §9 asks
// for: {Priority: EDF|RM} x {Speed: Plain|Static|CycleConserving|LookAhead}.
// Not every combination is exercised — LookAhead is EDF-only — so Policy
// is always constructed through the named values below, never built
// freely from the two enums.
type Policy struct {
	Name     string
	Priority PriorityFamily
	Speed    SpeedStrategy
}

// The seven policies spec.md §3 and §4.7 name. Name is the label used for
// the policy in the report's per-run summaries and normalised-energy table.
var (
	PlainEDF    = Policy{Name: "Plain EDF", Priority: FamilyEDF, Speed: SpeedPlain}
	StaticEDF   = Policy{Name: "Static EDF", Priority: FamilyEDF, Speed: SpeedStatic}
	CCEDFPolicy = Policy{Name: "ccEDF", Priority: FamilyEDF, Speed: SpeedCycleConserving}
	LAEDFPolicy = Policy{Name: "LAEDF", Priority: FamilyEDF, Speed: SpeedLookAhead}
	PlainRM     = Policy{Name: "Plain RM", Priority: FamilyRM, Speed: SpeedPlain}
	StaticRM    = Policy{Name: "Static RM", Priority: FamilyRM, Speed: SpeedStatic}
	CCRMPolicy  = Policy{Name: "ccRM", Priority: FamilyRM, Speed: SpeedCycleConserving}
)

// AllPolicies lists the seven passes in the order the orchestrator
// reports them (spec.md §4.7, §4.8): the EDF family (PLAIN-EDF, then its
// DVFS variants), then the RM family (PLAIN-RM, then its DVFS variants).
var AllPolicies = []Policy{PlainEDF, StaticEDF, CCEDFPolicy, LAEDFPolicy, PlainRM, StaticRM, CCRMPolicy}

// Validate rejects axis combinations spec.md §9 says are not exercised —
// currently only LookAhead paired with RM, since LAEDF is only ever
// defined for the EDF family.
func (p Policy) Validate() error {
	if p.Speed == SpeedLookAhead && p.Priority == FamilyRM {
		return fmt.Errorf("policy %s: look-ahead speed-setting is only defined for the EDF family", p.Name)
	}
	return nil
}

// newSpeedPolicy constructs the speed.Policy for p given the (already
// correctly ordered — ascending period for RM, as-given for EDF) task
// view the static policies need for their once-at-t=0 computation.
func newSpeedPolicy(p Policy, tasks []speed.TaskView) speed.Policy {
	switch p.Speed {
	case SpeedPlain:
		return speed.Plain{}
	case SpeedStatic:
		if p.Priority == FamilyRM {
			return speed.NewStatic(speed.StaticRMAlpha(tasks))
		}
		return speed.NewStatic(speed.StaticEDFAlpha(tasks))
	case SpeedCycleConserving:
		if p.Priority == FamilyRM {
			return speed.CCRM{}
		}
		return speed.NewCCEDF()
	case SpeedLookAhead:
		return speed.LookAhead{}
	default:
		panic(fmt.Sprintf("sim: unhandled speed strategy %d", p.Speed))
	}
}

// taskViews converts a TaskSet into the speed package's minimal TaskView,
// preserving order — callers pass the RM-sorted set for RM-family
// policies and the original order for EDF-family policies.
func taskViews(ts TaskSet) []speed.TaskView {
	views := make([]speed.TaskView, len(ts))
	for i, t := range ts {
		views[i] = speed.TaskView{ID: t.ID, Period: t.Period, Deadline: t.Deadline, WCET: t.WCET}
	}
	return views
}

