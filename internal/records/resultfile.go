// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package records

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/edelweissconnect/cheminsight/pkg/types"
)

// ResultFile is the on-disk representation of a search run: the task that
// produced it, the selected records, and run statistics. Saved runs can be
// reloaded and reformatted without re-querying APIs.
type ResultFile struct {
	Task    types.TaskDescriptor  `yaml:"task"`
	Records []types.ArticleRecord `yaml:"records"`
	Summary RunSummary            `yaml:"summary"`
}

// RunSummary stores result statistics and a timestamp.
type RunSummary struct {
	Total             int       `yaml:"total"`
	QueriesRun        int       `yaml:"queries_run"`
	DuplicatesRemoved int       `yaml:"duplicates_removed"`
	Warnings          []string  `yaml:"warnings,omitempty"`
	Timestamp         time.Time `yaml:"timestamp"`
}

// WriteResultFile saves a completed run to a YAML file.
func WriteResultFile(path string, task types.TaskDescriptor, recs []types.ArticleRecord, summary RunSummary) error {
	summary.Total = len(recs)
	if summary.Timestamp.IsZero() {
		summary.Timestamp = time.Now()
	}
	rf := ResultFile{
		Task:    task,
		Records: recs,
		Summary: summary,
	}
	data, err := yaml.Marshal(&rf)
	if err != nil {
		return fmt.Errorf("marshaling result file: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadResultFile loads a previously saved run from disk.
func ReadResultFile(path string) (*ResultFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading result file: %w", err)
	}
	var rf ResultFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("parsing result file: %w", err)
	}
	return &rf, nil
}
