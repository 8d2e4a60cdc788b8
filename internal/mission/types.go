package mission

import "time"

type TaskType string

const (
	TaskTypeStart    TaskType = "start"
	TaskTypeFlexible TaskType = "flexible"
	TaskTypeEnd      TaskType = "end"
)

func (t TaskType) IsValid() bool {
	switch t {
	case TaskTypeStart, TaskTypeFlexible, TaskTypeEnd:
		return true
	default:
		return false
	}
}

type TaskIcon string

const (
	IconSun        TaskIcon = "sun"
	IconToothbrush TaskIcon = "toothbrush"
	IconShirt      TaskIcon = "shirt"
	IconUtensils   TaskIcon = "utensils"
	IconBackpack   TaskIcon = "backpack"
	IconDoorOpen   TaskIcon = "door-open"
	IconBook       TaskIcon = "book"
	IconGamepad    TaskIcon = "gamepad"
	IconDefault    TaskIcon = "circle"
)

// TaskIcons lists every icon the routine editor and the schedule generator accept.
var TaskIcons = []TaskIcon{
	IconSun, IconToothbrush, IconShirt, IconUtensils, IconBackpack,
	IconDoorOpen, IconBook, IconGamepad, IconDefault,
}

func (i TaskIcon) IsValid() bool {
	for _, known := range TaskIcons {
		if i == known {
			return true
		}
	}
	return false
}

// DefaultTaskColor is used for tasks added by hand before the user picks a color.
const DefaultTaskColor = "#cbd5e1"

// DefaultDepartureTime is used when the persisted departure time is missing or malformed.
const DefaultDepartureTime = "08:00"

type Task struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	DurationMinutes int      `json:"durationMinutes"`
	Icon            TaskIcon `json:"icon"`
	Color           string   `json:"color"`
	Type            TaskType `json:"type,omitempty"`
}

// MissionLog is one finished run. Entries are appended and never rewritten.
type MissionLog struct {
	Date                  string    `json:"date"`
	CompletedAt           time.Time `json:"completedAt"`
	TotalDurationSeconds  int       `json:"totalDurationSeconds"`
	ActualDurationSeconds *int      `json:"actualDurationSeconds,omitempty"`
	IsSuccess             bool      `json:"isSuccess"`
	IsBonus               bool      `json:"isBonus"`
}

type Medal struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Date       string `json:"date"`
	Comment    string `json:"comment"`
	RankAtTime int    `json:"rankAtTime"`
}

type StampCard struct {
	CurrentStamps int     `json:"currentStamps"`
	TotalRewards  int     `json:"totalRewards"`
	Rank          int     `json:"rank"`
	Medals        []Medal `json:"medals"`
}

// ChildState is the persisted root for one child profile.
type ChildState struct {
	Name          string       `json:"name"`
	Tasks         []Task       `json:"tasks"`
	DepartureTime string       `json:"departureTime"`
	Logs          []MissionLog `json:"logs"`
	StampCard     StampCard    `json:"stampCard"`
}

// DefaultTasks returns a fresh copy of the built-in morning routine.
func DefaultTasks() []Task {
	return []Task{
		{ID: "1", Title: "Wake up & wash face", DurationMinutes: 10, Icon: IconSun, Color: "#fbbf24", Type: TaskTypeStart},
		{ID: "2", Title: "Breakfast", DurationMinutes: 20, Icon: IconUtensils, Color: "#f87171", Type: TaskTypeFlexible},
		{ID: "3", Title: "Brush teeth", DurationMinutes: 5, Icon: IconToothbrush, Color: "#60a5fa", Type: TaskTypeFlexible},
		{ID: "4", Title: "Get dressed", DurationMinutes: 10, Icon: IconShirt, Color: "#a78bfa", Type: TaskTypeFlexible},
		{ID: "5", Title: "Check your bag", DurationMinutes: 5, Icon: IconBackpack, Color: "#34d399", Type: TaskTypeFlexible},
		{ID: "6", Title: "Head out!", DurationMinutes: 0, Icon: IconDoorOpen, Color: "#fb7185", Type: TaskTypeEnd},
	}
}

// TotalPlannedMinutes sums the planned duration of every task.
func TotalPlannedMinutes(tasks []Task) int {
	total := 0
	for _, t := range tasks {
		total += t.DurationMinutes
	}
	return total
}

func findTask(tasks []Task, id string) (int, bool) {
	for i := range tasks {
		if tasks[i].ID == id {
			return i, true
		}
	}
	return -1, false
}
