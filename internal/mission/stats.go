package mission

import "time"

// ChartWindow is how many of the latest logs the history chart shows.
const ChartWindow = 14

type LogSummary struct {
	Runs              int
	Successes         int
	Bonuses           int
	AvgPlannedMinutes float64
	AvgActualMinutes  float64
}

// ChartPoint is one bar of the history chart.
type ChartPoint struct {
	Date           string
	PlannedMinutes float64
	ActualMinutes  float64
	HasActual      bool
	IsSuccess      bool
}

// SummarizeLogs aggregates the mission history. The actual-minutes average
// only counts logs that recorded an actual duration.
func SummarizeLogs(logs []MissionLog) LogSummary {
	var s LogSummary
	planned, actual, withActual := 0, 0, 0
	for _, l := range logs {
		s.Runs++
		if l.IsSuccess {
			s.Successes++
		}
		if l.IsBonus {
			s.Bonuses++
		}
		planned += l.TotalDurationSeconds
		if l.ActualDurationSeconds != nil {
			actual += *l.ActualDurationSeconds
			withActual++
		}
	}
	if s.Runs > 0 {
		s.AvgPlannedMinutes = float64(planned) / 60 / float64(s.Runs)
	}
	if withActual > 0 {
		s.AvgActualMinutes = float64(actual) / 60 / float64(withActual)
	}
	return s
}

// ChartSeries returns the last ChartWindow logs, oldest first.
func ChartSeries(logs []MissionLog) []ChartPoint {
	from := 0
	if len(logs) > ChartWindow {
		from = len(logs) - ChartWindow
	}
	out := make([]ChartPoint, 0, len(logs)-from)
	for _, l := range logs[from:] {
		p := ChartPoint{
			Date:           l.Date,
			PlannedMinutes: float64(l.TotalDurationSeconds) / 60,
			IsSuccess:      l.IsSuccess,
		}
		if l.ActualDurationSeconds != nil {
			p.ActualMinutes = float64(*l.ActualDurationSeconds) / 60
			p.HasActual = true
		}
		out = append(out, p)
	}
	return out
}

// RecentLogs returns up to n of the latest logs, newest first.
func RecentLogs(logs []MissionLog, n int) []MissionLog {
	out := make([]MissionLog, 0, n)
	for i := len(logs) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, logs[i])
	}
	return out
}

// EarlyWakeDeadline is the latest instant the wake-up task may be finished
// for the run to earn the bonus: departure minus the whole routine minus the
// configured head start.
func EarlyWakeDeadline(tasks []Task, departureTime string, earlyMinutes int, at time.Time) time.Time {
	dep := DepartureInstant(at, departureTime, true)
	lead := time.Duration(TotalPlannedMinutes(tasks)+earlyMinutes) * time.Minute
	return dep.Add(-lead)
}

// EarnsEarlyWakeBonus reports whether finishing the wake-up task at `at`
// qualifies for the bonus.
func EarnsEarlyWakeBonus(tasks []Task, departureTime string, earlyMinutes int, at time.Time) bool {
	return !at.After(EarlyWakeDeadline(tasks, departureTime, earlyMinutes, at))
}
