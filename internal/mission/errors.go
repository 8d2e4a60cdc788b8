package mission

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownTask     = errors.New("unknown task")
	ErrRunFinished     = errors.New("run has already departed")
	ErrWakeUpPending   = errors.New("complete the wake-up task first")
	ErrEndTaskDepart   = errors.New("the departure task is completed by departing")
	ErrNoRewardPending = errors.New("no reward is pending")
)

// DepartRejectedError is returned when departure is attempted before the
// run is ready. Nothing is mutated when it is returned.
type DepartRejectedError struct {
	Phase           Phase
	PendingFlexible int
}

func (e DepartRejectedError) Error() string {
	if e.Phase == PhaseWakeUp {
		return "cannot depart: wake-up task is not done yet"
	}
	return fmt.Sprintf("cannot depart: %d task(s) still to do", e.PendingFlexible)
}
