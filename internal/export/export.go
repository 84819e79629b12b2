// Package export writes the task collection to a portable JSON file
// and reads such files back, validating every record before any state
// is replaced.
package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"taskdeck/internal/task"
)

// FileExtension of exported collections.
const FileExtension = ".json"

// Filename returns the deterministic, date-stamped export name,
// e.g. tasks_2026-08-23.json.
func Filename(now time.Time) string {
	return fmt.Sprintf("tasks_%s%s", now.Format(task.DateLayout), FileExtension)
}

// Write serializes the full collection (never a filtered view) into
// dir and returns the written path.
func Write(tasks []task.Task, dir string, now time.Time) (string, error) {
	if tasks == nil {
		tasks = []task.Task{}
	}
	content, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode tasks: %w", err)
	}
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export directory: %w", err)
	}
	path := filepath.Join(dir, Filename(now))
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}
	return path, nil
}

// Read parses a collection file. Every record must validate and ids
// must be unique; any violation rejects the whole file so the caller
// can leave its current state untouched.
func Read(path string) ([]task.Task, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var tasks []task.Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, fmt.Errorf("not a task collection: %w", err)
	}
	seen := make(map[string]struct{}, len(tasks))
	for i, t := range tasks {
		if err := t.Validate(); err != nil {
			return nil, fmt.Errorf("task %d: %w", i+1, err)
		}
		if _, dup := seen[t.ID]; dup {
			return nil, fmt.Errorf("task %d: duplicate id %s", i+1, t.ID)
		}
		seen[t.ID] = struct{}{}
	}
	return tasks, nil
}
