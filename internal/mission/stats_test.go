package mission

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intp(v int) *int { return &v }

func TestSummarizeLogs(t *testing.T) {
	logs := []MissionLog{
		{TotalDurationSeconds: 1800, ActualDurationSeconds: intp(1500), IsSuccess: true},
		{TotalDurationSeconds: 2400, IsSuccess: false},
		{TotalDurationSeconds: 1800, ActualDurationSeconds: intp(2100), IsSuccess: true, IsBonus: true},
	}
	s := SummarizeLogs(logs)
	assert.Equal(t, 3, s.Runs)
	assert.Equal(t, 2, s.Successes)
	assert.Equal(t, 1, s.Bonuses)
	assert.InDelta(t, 33.333, s.AvgPlannedMinutes, 0.001)
	assert.InDelta(t, 30, s.AvgActualMinutes, 1e-9)

	assert.Equal(t, LogSummary{}, SummarizeLogs(nil))
}

func TestChartSeriesKeepsLatestWindow(t *testing.T) {
	var logs []MissionLog
	for i := 1; i <= 20; i++ {
		logs = append(logs, MissionLog{Date: fmt.Sprintf("2025-03-%02d", i), TotalDurationSeconds: 600})
	}
	series := ChartSeries(logs)
	require.Len(t, series, ChartWindow)
	assert.Equal(t, "2025-03-07", series[0].Date)
	assert.Equal(t, "2025-03-20", series[ChartWindow-1].Date)
	assert.Equal(t, 10.0, series[0].PlannedMinutes)
	assert.False(t, series[0].HasActual)
}

func TestRecentLogsNewestFirst(t *testing.T) {
	logs := []MissionLog{{Date: "a"}, {Date: "b"}, {Date: "c"}}
	got := RecentLogs(logs, 2)
	require.Len(t, got, 2)
	assert.Equal(t, "c", got[0].Date)
	assert.Equal(t, "b", got[1].Date)
}

func TestEarlyWakeBonus(t *testing.T) {
	// 25 planned minutes + 10 minutes head start before an 08:00 departure.
	deadline := EarlyWakeDeadline(routine(), "08:00", 10, at(6, 0))
	assert.Equal(t, at(7, 25), deadline)

	assert.True(t, EarnsEarlyWakeBonus(routine(), "08:00", 10, at(7, 25)))
	assert.False(t, EarnsEarlyWakeBonus(routine(), "08:00", 10, at(7, 26)))
}
