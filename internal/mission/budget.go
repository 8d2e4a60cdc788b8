package mission

import (
	"math"
	"time"
)

type UrgencyLevel string

const (
	UrgencySafe    UrgencyLevel = "safe"
	UrgencyWarning UrgencyLevel = "warning"
	UrgencyDanger  UrgencyLevel = "danger"
)

// DefaultWarningMinutes is the buffer below which the run turns to warning.
const DefaultWarningMinutes = 10

// rolloverWindow is how far in the past a departure may lie before it is
// treated as tomorrow's departure.
const rolloverWindow = 12 * time.Hour

// DepartureInstant builds the departure instant on now's calendar day. With
// rollover, an instant more than 12 hours in the past moves to the next day,
// which keeps runs that straddle local midnight sensible.
func DepartureInstant(now time.Time, departureTime string, rollover bool) time.Time {
	c := ParseDepartureTime(departureTime)
	dep := time.Date(now.Year(), now.Month(), now.Day(), c.Hour, c.Minute, 0, 0, now.Location())
	if rollover && dep.Before(now.Add(-rolloverWindow)) {
		dep = dep.AddDate(0, 0, 1)
	}
	return dep
}

// Budget is the time budget of a run at one instant.
type Budget struct {
	Departure            time.Time
	MinutesToDeparture   float64
	RemainingTaskMinutes float64
	BufferMinutes        float64
	DiffMinutes          int
	Level                UrgencyLevel
}

// Progress is the share of the time left that the remaining tasks need,
// capped at 1. A departure at or before now reads as full.
func (b Budget) Progress() float64 {
	if b.MinutesToDeparture <= 0 {
		return 1
	}
	return math.Min(1, b.RemainingTaskMinutes/b.MinutesToDeparture)
}

// BudgetCalculator classifies slack before departure. It holds no state
// besides its threshold, so any instant can be re-derived from scratch.
type BudgetCalculator struct {
	WarningMinutes float64
}

func NewBudgetCalculator(warningMinutes int) BudgetCalculator {
	if warningMinutes < 0 {
		warningMinutes = DefaultWarningMinutes
	}
	return BudgetCalculator{WarningMinutes: float64(warningMinutes)}
}

func (c BudgetCalculator) Classify(bufferMinutes float64) UrgencyLevel {
	switch {
	case bufferMinutes < 0:
		return UrgencyDanger
	case bufferMinutes < c.WarningMinutes:
		return UrgencyWarning
	default:
		return UrgencySafe
	}
}

// Calculate computes the budget at now for the given remaining task minutes.
func (c BudgetCalculator) Calculate(now time.Time, departureTime string, remainingTaskMinutes float64) Budget {
	dep := DepartureInstant(now, departureTime, true)
	toDeparture := float64(dep.Sub(now)) / float64(time.Minute)
	buffer := toDeparture - remainingTaskMinutes
	return Budget{
		Departure:            dep,
		MinutesToDeparture:   toDeparture,
		RemainingTaskMinutes: remainingTaskMinutes,
		BufferMinutes:        buffer,
		DiffMinutes:          int(math.Floor(buffer)),
		Level:                c.Classify(buffer),
	}
}

// RemainingMinutes sums the planned minutes of tasks not in completed.
func RemainingMinutes(tasks []Task, completed map[string]bool) float64 {
	total := 0
	for _, t := range tasks {
		if !completed[t.ID] {
			total += t.DurationMinutes
		}
	}
	return float64(total)
}

// RemainingOrdered is the remaining work for a strictly ordered timer: the
// countdown left on the current task plus the full duration of every task
// not yet reached.
func RemainingOrdered(activeRemainingSeconds int, future []Task) float64 {
	if activeRemainingSeconds < 0 {
		activeRemainingSeconds = 0
	}
	total := float64(activeRemainingSeconds) / 60
	for _, t := range future {
		total += float64(t.DurationMinutes)
	}
	return total
}
