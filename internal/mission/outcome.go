package mission

// Outcome is the result of a finished run. The log and the stamp mutation
// are both derived from this one value.
type Outcome struct {
	Log       MissionLog
	IsSuccess bool
	IsBonus   bool
}

// Evaluate decides the outcome of a departed run. Departure is on time when
// it happens at or before the departure instant of the same calendar day.
// The bonus flag is carried through from the run unchanged.
func Evaluate(snap RunSnapshot, departureTime string) Outcome {
	now := snap.DepartedAt
	dep := DepartureInstant(now, departureTime, false)
	success := !now.After(dep)

	log := MissionLog{
		Date:                 now.Format("2006-01-02"),
		CompletedAt:          now,
		TotalDurationSeconds: TotalPlannedMinutes(snap.Tasks) * 60,
		IsSuccess:            success,
		IsBonus:              snap.Bonus,
	}
	if snap.ElapsedSecondsByTask != nil {
		actual := snap.TotalElapsedSeconds
		log.ActualDurationSeconds = &actual
	}

	return Outcome{Log: log, IsSuccess: success, IsBonus: snap.Bonus}
}
