package sim

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SuiteConfig lists multiple task-set/invocation-file pairs to run in one
// invocation (SPEC_FULL.md §4.10) — the Go-native replacement for the
// original program's habit of being re-run once per input file pair.
// Grounded on the teacher's PolicyBundle/LoadPolicyBundle pattern:
// strict YAML decoding so a typo'd key is rejected rather than silently
// ignored.
type SuiteConfig struct {
	Runs []SuiteEntry `yaml:"runs"`
}

// SuiteEntry names one task-set/invocation-file pair and the label used
// for its section of the combined report.
type SuiteEntry struct {
	Label           string `yaml:"label"`
	TasksFile       string `yaml:"tasks"`
	InvocationsFile string `yaml:"invocations,omitempty"`
}

// LoadSuiteConfig reads and strictly parses a YAML suite file.
func LoadSuiteConfig(path string) (*SuiteConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading suite config: %w", err)
	}
	var cfg SuiteConfig
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parsing suite config: %w", err)
	}
	if len(cfg.Runs) == 0 {
		return nil, fmt.Errorf("suite config %s: no runs listed", path)
	}
	for i, r := range cfg.Runs {
		if r.TasksFile == "" {
			return nil, fmt.Errorf("suite config %s: run %d missing tasks file", path, i)
		}
	}
	return &cfg, nil
}
