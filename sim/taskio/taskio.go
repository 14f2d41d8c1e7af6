// Package taskio reads task-set and invocation-trace files in the
// whitespace-separated formats of spec.md §6, and synthesises an
// invocation trace when none is supplied.
package taskio

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/dvfs-sim/dvfs-sim/sim"
)

// fieldScanner yields successive whitespace-separated integer fields
// from r, across line boundaries, the way the task-descriptor and
// invocation formats require.
type fieldScanner struct {
	sc *bufio.Scanner
}

func newFieldScanner(r io.Reader) *fieldScanner {
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)
	return &fieldScanner{sc: sc}
}

func (f *fieldScanner) nextInt() (int64, bool) {
	if !f.sc.Scan() {
		return 0, false
	}
	v, err := strconv.ParseInt(f.sc.Text(), 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// ReadTaskSet parses the task descriptor format: an integer N, then N
// records of (phase, period, deadline, wcet). Task identifiers are
// assigned 0..N-1 in file order.
func ReadTaskSet(r io.Reader) (sim.TaskSet, error) {
	fs := newFieldScanner(r)

	n, ok := fs.nextInt()
	if !ok {
		return nil, fmt.Errorf("taskio: reading task count: missing or malformed integer")
	}
	if n < 0 {
		return nil, fmt.Errorf("taskio: task count %d is negative", n)
	}

	ts := make(sim.TaskSet, 0, n)
	for i := int64(0); i < n; i++ {
		phase, ok1 := fs.nextInt()
		period, ok2 := fs.nextInt()
		deadline, ok3 := fs.nextInt()
		wcet, ok4 := fs.nextInt()
		if !(ok1 && ok2 && ok3 && ok4) {
			return nil, fmt.Errorf("taskio: task %d: expected phase period deadline wcet, ran out of fields", i)
		}
		ts = append(ts, sim.Task{
			ID:       int(i),
			Phase:    phase,
			Period:   period,
			Deadline: deadline,
			WCET:     wcet,
		})
	}
	return ts, nil
}

// ReadInvocations parses the optional invocation-trace format: for each
// of n tasks, a count mi followed by mi integers. A partial record —
// the count present but fewer than mi values readable — is tolerated:
// that task's sequence is truncated to what was actually read, and a
// warning is logged (spec.md §7 "recoverable conditions").
func ReadInvocations(r io.Reader, n int) ([][]int64, error) {
	fs := newFieldScanner(r)

	out := make([][]int64, n)
	for i := 0; i < n; i++ {
		count, ok := fs.nextInt()
		if !ok {
			return nil, fmt.Errorf("taskio: invocation record %d: missing count", i)
		}
		seq := make([]int64, 0, count)
		for j := int64(0); j < count; j++ {
			v, ok := fs.nextInt()
			if !ok {
				logrus.WithFields(logrus.Fields{
					"task":     i,
					"expected": count,
					"read":     len(seq),
				}).Warn("taskio: invocation record truncated, using what was read")
				break
			}
			seq = append(seq, v)
		}
		out[i] = seq
	}
	return out, nil
}

// SynthesizeInvocations builds a fallback trace when no invocation file
// is supplied (spec.md §6): for task 0, actual execution times alternate
// 2 and 1; every other task runs constant 1. The count per task equals
// its number of releases within the hyperperiod. It is an error if any
// synthesised count would exceed perTaskCapacity.
func SynthesizeInvocations(tasks sim.TaskSet, hyperperiod int64, perTaskCapacity int) ([][]int64, error) {
	out := make([][]int64, len(tasks))
	for i, t := range tasks {
		releases := releaseCount(t, hyperperiod)
		if releases > perTaskCapacity {
			return nil, fmt.Errorf("taskio: task %d needs %d synthesised invocations, exceeds capacity %d", t.ID, releases, perTaskCapacity)
		}
		seq := make([]int64, releases)
		for k := range seq {
			if i == 0 {
				if k%2 == 0 {
					seq[k] = 2
				} else {
					seq[k] = 1
				}
			} else {
				seq[k] = 1
			}
		}
		out[i] = seq
	}
	return out, nil
}

// AttachInvocations copies each task's invocation sequence into its
// Invocations field, returning a new TaskSet (the input is left
// untouched). invocations must have the same length as ts.
func AttachInvocations(ts sim.TaskSet, invocations [][]int64) (sim.TaskSet, error) {
	if len(invocations) != len(ts) {
		return nil, fmt.Errorf("taskio: got %d invocation records for %d tasks", len(invocations), len(ts))
	}
	out := ts.Clone()
	for i := range out {
		out[i].Invocations = invocations[i]
	}
	return out, nil
}

// releaseCount returns how many times t releases a job within the
// simulated window [0, hyperperiod): releases occur at phase,
// phase+period, phase+2*period, ... up to but excluding hyperperiod
// itself, since a release exactly at the hyperperiod boundary belongs
// to the next (identical) cycle.
func releaseCount(t sim.Task, hyperperiod int64) int {
	if t.Period <= 0 || t.Phase >= hyperperiod {
		return 0
	}
	return int((hyperperiod-t.Phase-1)/t.Period) + 1
}
