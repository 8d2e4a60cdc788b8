package mission

import "strings"

// MigrateTaskTypes fills in task types for lists persisted before the type
// field existed. Untyped entries get their positional role: the first task is
// the start task, the last is the end task, everything else is flexible.
// The result always holds at most one start and one end task.
func MigrateTaskTypes(tasks []Task) []Task {
	out := make([]Task, len(tasks))
	copy(out, tasks)

	last := len(out) - 1
	for i := range out {
		if out[i].Type.IsValid() {
			continue
		}
		switch i {
		case 0:
			out[i].Type = TaskTypeStart
		case last:
			out[i].Type = TaskTypeEnd
		default:
			out[i].Type = TaskTypeFlexible
		}
	}
	return EnforceTypeInvariant(out)
}

// EnforceTypeInvariant demotes surplus start/end tasks to flexible, keeping
// the first start task and the last end task.
func EnforceTypeInvariant(tasks []Task) []Task {
	seenStart := false
	for i := range tasks {
		if tasks[i].Type != TaskTypeStart {
			continue
		}
		if seenStart {
			tasks[i].Type = TaskTypeFlexible
		}
		seenStart = true
	}

	seenEnd := false
	for i := len(tasks) - 1; i >= 0; i-- {
		if tasks[i].Type != TaskTypeEnd {
			continue
		}
		if seenEnd {
			tasks[i].Type = TaskTypeFlexible
		}
		seenEnd = true
	}
	return tasks
}

// Normalize applies load-time defaults to a decoded ChildState so that any
// missing or damaged field resolves to a safe value.
func Normalize(st *ChildState, defaultName string) {
	if strings.TrimSpace(st.Name) == "" {
		st.Name = defaultName
	}
	if st.Tasks == nil {
		st.Tasks = DefaultTasks()
	}
	for i := range st.Tasks {
		if !st.Tasks[i].Icon.IsValid() {
			st.Tasks[i].Icon = ParseTaskIcon(string(st.Tasks[i].Icon))
		}
		if st.Tasks[i].DurationMinutes < 0 {
			st.Tasks[i].DurationMinutes = 0
		}
	}
	st.Tasks = MigrateTaskTypes(st.Tasks)
	st.DepartureTime = ParseDepartureTime(st.DepartureTime).String()
	if st.Logs == nil {
		st.Logs = []MissionLog{}
	}

	card := &st.StampCard
	if card.CurrentStamps < 0 {
		card.CurrentStamps = 0
	}
	if card.TotalRewards < 0 {
		card.TotalRewards = 0
	}
	card.Rank = ClampRank(card.Rank)
	if card.Medals == nil {
		card.Medals = []Medal{}
	}
}

// NewChildState returns the state of a profile that has never been saved.
func NewChildState(name string) ChildState {
	st := ChildState{Name: name}
	Normalize(&st, name)
	return st
}
