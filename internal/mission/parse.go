package mission

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseTaskIcon parses an icon name. Empty or unknown input returns IconDefault.
func ParseTaskIcon(input string) TaskIcon {
	s := strings.TrimSpace(strings.ToLower(input))
	switch s {
	case "door", "door_open", "dooropen":
		return IconDoorOpen
	case "food", "breakfast":
		return IconUtensils
	case "bag":
		return IconBackpack
	}
	icon := TaskIcon(s)
	if icon.IsValid() {
		return icon
	}
	return IconDefault
}

// ParseTaskType parses a task type. Empty or unknown input returns TaskTypeFlexible.
func ParseTaskType(input string) TaskType {
	t := TaskType(strings.TrimSpace(strings.ToLower(input)))
	if t.IsValid() {
		return t
	}
	return TaskTypeFlexible
}

// ClockTime is a local wall-clock time of day with minute precision.
type ClockTime struct {
	Hour   int
	Minute int
}

func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// ParseClockTime parses "HH:MM" (a single-digit hour is accepted).
func ParseClockTime(input string) (ClockTime, error) {
	s := strings.TrimSpace(input)
	hh, mm, ok := strings.Cut(s, ":")
	if !ok {
		return ClockTime{}, fmt.Errorf("invalid time %q: want HH:MM", input)
	}
	h, err := strconv.Atoi(hh)
	if err != nil || len(hh) == 0 || len(hh) > 2 {
		return ClockTime{}, fmt.Errorf("invalid hour in %q", input)
	}
	m, err := strconv.Atoi(mm)
	if err != nil || len(mm) != 2 {
		return ClockTime{}, fmt.Errorf("invalid minute in %q", input)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return ClockTime{}, fmt.Errorf("time %q out of range", input)
	}
	return ClockTime{Hour: h, Minute: m}, nil
}

// ParseDepartureTime parses a departure time and falls back to
// DefaultDepartureTime when the input is malformed.
func ParseDepartureTime(input string) ClockTime {
	c, err := ParseClockTime(input)
	if err != nil {
		c, _ = ParseClockTime(DefaultDepartureTime)
	}
	return c
}
