// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/edelweissconnect/cheminsight/pkg/types"
)

// taskList is the multi-task file form: a top-level "tasks" sequence.
type taskList struct {
	Tasks []types.TaskDescriptor `yaml:"tasks"`
}

// ReadTaskFile loads task descriptors from a YAML file. The file holds
// either a single task at the top level or a "tasks" list.
func ReadTaskFile(path string) ([]types.TaskDescriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading task file: %w", err)
	}

	var list taskList
	if err := yaml.Unmarshal(data, &list); err == nil && len(list.Tasks) > 0 {
		return list.Tasks, nil
	}

	var task types.TaskDescriptor
	if err := yaml.Unmarshal(data, &task); err != nil {
		return nil, fmt.Errorf("parsing task file: %w", err)
	}
	if len(task.Compounds) == 0 {
		return nil, fmt.Errorf("task file %s defines no compounds", path)
	}
	return []types.TaskDescriptor{task}, nil
}
