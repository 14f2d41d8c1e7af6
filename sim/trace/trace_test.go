package trace

import "testing"

func TestNullCollector_NeverPanics(t *testing.T) {
	var c Collector = NullCollector{}
	c.Release(ReleaseRecord{})
	c.Schedule(ScheduleRecord{})
	c.Idle(IdleRecord{})
	c.Complete(CompleteRecord{})
	c.DeadlineMiss(DeadlineMissRecord{})
	c.SpeedChange(SpeedChangeRecord{})
	c.Summary(RunSummary{})
	c.Final(nil)
}
