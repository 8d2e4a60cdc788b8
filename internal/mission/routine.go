package mission

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// NewTaskTitle is the placeholder title of a task added from the editor.
const NewTaskTitle = "New task"

const newTaskMinutes = 5

type Direction int

const (
	Up   Direction = -1
	Down Direction = 1
)

func normalizeTitle(title string) (string, error) {
	t := strings.TrimSpace(title)
	if t == "" {
		return "", fmt.Errorf("title is required")
	}
	return t, nil
}

// NewTaskID returns an id for a hand-added task.
func NewTaskID(now time.Time) string {
	return strconv.FormatInt(now.UnixNano(), 10)
}

// AddTask inserts a flexible task just before the departure task (or at the
// end when the routine has none).
func AddTask(tasks []Task, t Task) ([]Task, error) {
	title, err := normalizeTitle(t.Title)
	if err != nil {
		return nil, err
	}
	if _, dup := findTask(tasks, t.ID); dup || t.ID == "" {
		return nil, fmt.Errorf("task id %q is empty or already used", t.ID)
	}
	t.Title = title
	t.Type = TaskTypeFlexible
	if t.DurationMinutes <= 0 {
		t.DurationMinutes = newTaskMinutes
	}
	if !t.Icon.IsValid() {
		t.Icon = IconDefault
	}
	if t.Color == "" {
		t.Color = DefaultTaskColor
	}

	at := len(tasks)
	for i := range tasks {
		if tasks[i].Type == TaskTypeEnd {
			at = i
			break
		}
	}
	out := make([]Task, 0, len(tasks)+1)
	out = append(out, tasks[:at]...)
	out = append(out, t)
	out = append(out, tasks[at:]...)
	return out, nil
}

// RemoveTask deletes a task by id.
func RemoveTask(tasks []Task, id string) ([]Task, error) {
	idx, ok := findTask(tasks, id)
	if !ok {
		return nil, fmt.Errorf("task %s: %w", id, ErrUnknownTask)
	}
	out := make([]Task, 0, len(tasks)-1)
	out = append(out, tasks[:idx]...)
	return append(out, tasks[idx+1:]...), nil
}

// MoveTask swaps a task with its neighbour. Moving past either end is a no-op.
func MoveTask(tasks []Task, id string, dir Direction) ([]Task, error) {
	idx, ok := findTask(tasks, id)
	if !ok {
		return nil, fmt.Errorf("task %s: %w", id, ErrUnknownTask)
	}
	out := make([]Task, len(tasks))
	copy(out, tasks)
	target := idx + int(dir)
	if target < 0 || target >= len(out) {
		return out, nil
	}
	out[idx], out[target] = out[target], out[idx]
	return out, nil
}

// EditTask changes a task's title and planned minutes. Edited durations are
// floored at one minute.
func EditTask(tasks []Task, id, title string, minutes int) ([]Task, error) {
	idx, ok := findTask(tasks, id)
	if !ok {
		return nil, fmt.Errorf("task %s: %w", id, ErrUnknownTask)
	}
	t, err := normalizeTitle(title)
	if err != nil {
		return nil, err
	}
	out := make([]Task, len(tasks))
	copy(out, tasks)
	out[idx].Title = t
	out[idx].DurationMinutes = max(1, minutes)
	return out, nil
}

// EstimatedFinish is when the routine would end if started at now.
func EstimatedFinish(tasks []Task, now time.Time) time.Time {
	return now.Add(time.Duration(TotalPlannedMinutes(tasks)) * time.Minute)
}
