package generator

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"morningquest/internal/mission"
)

var ErrEmptySchedule = errors.New("generated schedule has no usable tasks")

var hexColorRe = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// RawTask is one task exactly as the generator returned it.
type RawTask struct {
	Title           string  `json:"title"`
	DurationMinutes float64 `json:"durationMinutes"`
	Icon            string  `json:"icon"`
	Color           string  `json:"color"`
	Type            string  `json:"type"`
}

// ParseSchedule decodes a generator answer. Both {"tasks":[...]} and a bare
// array are accepted, optionally wrapped in a markdown code fence.
func ParseSchedule(content string) ([]RawTask, error) {
	s := stripFence(content)

	var wrapped struct {
		Tasks []RawTask `json:"tasks"`
	}
	if strings.HasPrefix(s, "{") {
		if err := json.Unmarshal([]byte(s), &wrapped); err != nil {
			return nil, fmt.Errorf("decode schedule: %w", err)
		}
		return wrapped.Tasks, nil
	}

	var tasks []RawTask
	if err := json.Unmarshal([]byte(s), &tasks); err != nil {
		return nil, fmt.Errorf("decode schedule: %w", err)
	}
	return tasks, nil
}

func stripFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// BuildTasks turns raw generator output into a valid routine: empty titles
// are dropped, unknown icons and types fall back to defaults, durations are
// rounded and never negative, and every task gets a fresh gen- id. When the
// generator gave no types at all the positional rule applies.
func BuildTasks(raw []RawTask) ([]mission.Task, error) {
	out := make([]mission.Task, 0, len(raw))
	typed := false
	for _, r := range raw {
		title := strings.TrimSpace(r.Title)
		if title == "" {
			continue
		}
		t := mission.Task{
			ID:              "gen-" + uuid.NewString(),
			Title:           title,
			DurationMinutes: roundMinutes(r.DurationMinutes),
			Icon:            mission.ParseTaskIcon(r.Icon),
			Color:           strings.TrimSpace(r.Color),
		}
		if !hexColorRe.MatchString(t.Color) {
			t.Color = mission.DefaultTaskColor
		}
		if strings.TrimSpace(r.Type) != "" {
			typed = true
			t.Type = mission.ParseTaskType(r.Type)
		}
		out = append(out, t)
	}
	if len(out) == 0 {
		return nil, ErrEmptySchedule
	}

	if !typed {
		return mission.MigrateTaskTypes(out), nil
	}
	for i := range out {
		if out[i].Type == "" {
			out[i].Type = mission.TaskTypeFlexible
		}
	}
	return mission.EnforceTypeInvariant(out), nil
}

// maxTaskMinutes bounds generated durations to one day.
const maxTaskMinutes = 24 * 60

func roundMinutes(v float64) int {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	if v >= maxTaskMinutes {
		return maxTaskMinutes
	}
	return int(v + 0.5)
}
