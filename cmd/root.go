// cmd/root.go
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/dvfs-sim/dvfs-sim/sim"
	"github.com/dvfs-sim/dvfs-sim/sim/freqtable"
	"github.com/dvfs-sim/dvfs-sim/sim/taskio"
	"github.com/dvfs-sim/dvfs-sim/sim/trace"
)

var (
	tasksFile       string
	invocationsFile string
	outFile         string
	logLevel        string
	suiteFile       string
)

var rootCmd = &cobra.Command{
	Use:   "dvfs-sim",
	Short: "Discrete-event simulator for DVFS real-time scheduling policies",
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the nine-pass policy suite against one or more task sets",
	RunE: func(cmd *cobra.Command, args []string) error {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		out, err := os.Create(outFile)
		if err != nil {
			logrus.Fatalf("opening output file %s: %v", outFile, err)
		}
		defer out.Close()
		collector := trace.NewTextCollector(out)
		defer collector.Flush()

		entries, err := resolveEntries()
		if err != nil {
			return err
		}

		for _, e := range entries {
			logrus.Infof("running suite %q: tasks=%s", e.Label, e.TasksFile)
			if err := runOne(cmd.Context(), e, collector); err != nil {
				return fmt.Errorf("suite %q: %w", e.Label, err)
			}
		}
		logrus.Info("simulation complete")
		return nil
	},
}

// resolveEntries builds the list of task-set/invocation-file pairs to
// run: either the single pair named by --tasks/--invocations, or every
// entry of the YAML file named by --suite (SPEC_FULL.md §4.10).
func resolveEntries() ([]sim.SuiteEntry, error) {
	if suiteFile != "" {
		cfg, err := sim.LoadSuiteConfig(suiteFile)
		if err != nil {
			return nil, err
		}
		return cfg.Runs, nil
	}
	if tasksFile == "" {
		return nil, fmt.Errorf("one of --tasks or --suite is required")
	}
	return []sim.SuiteEntry{{Label: "run", TasksFile: tasksFile, InvocationsFile: invocationsFile}}, nil
}

func runOne(ctx context.Context, e sim.SuiteEntry, collector trace.Collector) error {
	tasksRaw, err := os.Open(e.TasksFile)
	if err != nil {
		logrus.Fatalf("opening task file %s: %v", e.TasksFile, err)
	}
	defer tasksRaw.Close()

	tasks, err := taskio.ReadTaskSet(tasksRaw)
	if err != nil {
		logrus.Fatalf("reading task file %s: %v", e.TasksFile, err)
	}
	if err := tasks.Validate(sim.MaxTasks); err != nil {
		logrus.Fatalf("task set %s: %v", e.TasksFile, err)
	}

	hyperperiod := freqtable.Hyperperiod(tasks.Periods())
	invocations, err := loadInvocations(e, tasks, hyperperiod)
	if err != nil {
		return err
	}

	withInvocations, err := taskio.AttachInvocations(tasks, invocations)
	if err != nil {
		return fmt.Errorf("attaching invocations: %w", err)
	}

	o := &sim.Orchestrator{Collector: collector}
	_, err = o.RunSuite(ctx, withInvocations)
	return err
}

// loadInvocations reads e.InvocationsFile if given; on a missing file it
// logs a warning and falls back to a synthesised trace (spec.md §7
// recoverable condition).
func loadInvocations(e sim.SuiteEntry, tasks sim.TaskSet, hyperperiod int64) ([][]int64, error) {
	if e.InvocationsFile == "" {
		return taskio.SynthesizeInvocations(tasks, hyperperiod, maxInvocationsPerTask)
	}

	f, err := os.Open(e.InvocationsFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logrus.Warnf("invocation file %s not found, synthesising a fallback trace", e.InvocationsFile)
			return taskio.SynthesizeInvocations(tasks, hyperperiod, maxInvocationsPerTask)
		}
		logrus.Fatalf("opening invocation file %s: %v", e.InvocationsFile, err)
	}
	defer f.Close()

	invocations, err := taskio.ReadInvocations(f, len(tasks))
	if err != nil {
		logrus.Fatalf("reading invocation file %s: %v", e.InvocationsFile, err)
	}
	return invocations, nil
}

// maxInvocationsPerTask bounds the synthesised fallback trace
// (spec.md §6, §7): a run needing more invocations than this per task is
// fatal, not silently truncated.
const maxInvocationsPerTask = 100000

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	runCmd.Flags().StringVar(&tasksFile, "tasks", "", "Task descriptor file")
	runCmd.Flags().StringVar(&invocationsFile, "invocations", "", "Invocation trace file (optional; synthesised if absent)")
	runCmd.Flags().StringVar(&outFile, "out", "output.txt", "Report output file")
	runCmd.Flags().StringVar(&logLevel, "log", "info", "Log level (debug, info, warn, error)")
	runCmd.Flags().StringVar(&suiteFile, "suite", "", "YAML suite file listing multiple task-set/invocation pairs")

	rootCmd.AddCommand(runCmd)
}
