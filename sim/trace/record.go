// Package trace provides per-event and per-run reporting for the DVFS
// simulator. It has no dependency on package sim — the engine depends on
// trace, never the reverse — so its summary types are its own, passed in
// by whichever caller assembled them.
package trace

// ReleaseRecord captures one job's release into the ready set.
type ReleaseRecord struct {
	Now              float64
	JobID            int
	TaskID           int
	AbsoluteDeadline int64
}

// ScheduleRecord captures a dispatch decision where the running job
// changed (a fresh dispatch or a preemption).
type ScheduleRecord struct {
	Now    float64
	JobID  int
	TaskID int
}

// IdleRecord captures an interval where no job was running.
type IdleRecord struct {
	Now      float64
	Duration float64
}

// CompleteRecord captures a job finishing its remaining work.
type CompleteRecord struct {
	Now        float64
	JobID      int
	TaskID     int
	ActualExec int64
}

// DeadlineMissRecord captures a job whose absolute deadline passed before
// completion.
type DeadlineMissRecord struct {
	Now              float64
	JobID            int
	TaskID           int
	AbsoluteDeadline int64
}

// SpeedChangeRecord captures a recomputation of the active alpha whose
// discretised frequency index differs from the one in use; recomputations
// that keep the same index are not recorded.
type SpeedChangeRecord struct {
	Now       float64
	Alpha     float64
	FreqIndex int
}

// RunSummary is the per-pass aggregate spec.md §4.8 asks the reporter to
// print: hyperperiod, job count, decision points, preemptions, context
// switches, deadline misses, total energy.
type RunSummary struct {
	PolicyName      string
	Hyperperiod     int64
	JobCount        int
	DecisionPoints  int
	Preemptions     int
	ContextSwitches int
	DeadlineMisses  int
	TotalEnergy     float64
}

// FinalRow is one line of the final normalised-energy table (spec.md §4.7,
// §4.8): a policy's name alongside its energy ratio against its family's
// PLAIN baseline.
type FinalRow struct {
	PolicyName       string
	NormalizedEnergy float64
}
