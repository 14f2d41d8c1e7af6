package trace

// Collector is the structured reporting surface the simulation engine
// drives, one call per event kind spec.md §4.8 names. Implementations
// decide what to do with each event — write it out, discard it, or
// accumulate it for later inspection.
type Collector interface {
	Release(ReleaseRecord)
	Schedule(ScheduleRecord)
	Idle(IdleRecord)
	Complete(CompleteRecord)
	DeadlineMiss(DeadlineMissRecord)
	SpeedChange(SpeedChangeRecord)
	Summary(RunSummary)
	Final([]FinalRow)
}

// NullCollector discards every event. It is the collaborator the
// orchestrator uses internally for the two baseline passes and for any
// pass a caller does not want traced (the "generate figure data" boolean
// of the source, reframed as a choice of collaborator).
type NullCollector struct{}

func (NullCollector) Release(ReleaseRecord)          {}
func (NullCollector) Schedule(ScheduleRecord)        {}
func (NullCollector) Idle(IdleRecord)                {}
func (NullCollector) Complete(CompleteRecord)        {}
func (NullCollector) DeadlineMiss(DeadlineMissRecord) {}
func (NullCollector) SpeedChange(SpeedChangeRecord)   {}
func (NullCollector) Summary(RunSummary)              {}
func (NullCollector) Final([]FinalRow)                {}
