package trace

import (
	"bufio"
	"fmt"
	"io"
)

// TextCollector writes the human-readable report spec.md §6 describes:
// per-event trace lines interleaved with per-run summaries, followed by
// the final normalised-energy table. It is safe to reuse across several
// simulation passes written to the same underlying writer.
type TextCollector struct {
	w *bufio.Writer
}

// NewTextCollector wraps w for buffered line-at-a-time writing. Callers
// must call Flush when done (the cmd layer defers it right after
// creating the output file).
func NewTextCollector(w io.Writer) *TextCollector {
	return &TextCollector{w: bufio.NewWriter(w)}
}

// Flush writes any buffered output to the underlying writer.
func (c *TextCollector) Flush() error {
	return c.w.Flush()
}

func (c *TextCollector) Release(r ReleaseRecord) {
	fmt.Fprintf(c.w, "%10.3f release   job=%d task=%d deadline=%d\n", r.Now, r.JobID, r.TaskID, r.AbsoluteDeadline)
}

func (c *TextCollector) Schedule(r ScheduleRecord) {
	fmt.Fprintf(c.w, "%10.3f schedule  job=%d task=%d\n", r.Now, r.JobID, r.TaskID)
}

func (c *TextCollector) Idle(r IdleRecord) {
	fmt.Fprintf(c.w, "%10.3f idle      duration=%.3f\n", r.Now, r.Duration)
}

func (c *TextCollector) Complete(r CompleteRecord) {
	fmt.Fprintf(c.w, "%10.3f complete  job=%d task=%d actual_exec=%d\n", r.Now, r.JobID, r.TaskID, r.ActualExec)
}

func (c *TextCollector) DeadlineMiss(r DeadlineMissRecord) {
	fmt.Fprintf(c.w, "%10.3f MISS      job=%d task=%d deadline=%d\n", r.Now, r.JobID, r.TaskID, r.AbsoluteDeadline)
}

func (c *TextCollector) SpeedChange(r SpeedChangeRecord) {
	fmt.Fprintf(c.w, "%10.3f speed     alpha=%.3f freq_idx=%d\n", r.Now, r.Alpha, r.FreqIndex)
}

func (c *TextCollector) Summary(s RunSummary) {
	fmt.Fprintf(c.w, "--- %s ---\n", s.PolicyName)
	fmt.Fprintf(c.w, "hyperperiod=%d jobs=%d decision_points=%d preemptions=%d context_switches=%d deadline_misses=%d energy=%.6f\n\n",
		s.Hyperperiod, s.JobCount, s.DecisionPoints, s.Preemptions, s.ContextSwitches, s.DeadlineMisses, s.TotalEnergy)
}

func (c *TextCollector) Final(rows []FinalRow) {
	fmt.Fprintln(c.w, "=== normalised energy ===")
	fmt.Fprintln(c.w, "(idle intervals are billed at the lowest frequency level under every policy)")
	for _, r := range rows {
		fmt.Fprintf(c.w, "%-12s %.3f\n", r.PolicyName, r.NormalizedEnergy)
	}
}
