package engine

import (
	"errors"
	"fmt"
)

var (
	ErrNoActiveRun   = errors.New("no run in progress")
	ErrRunInProgress = errors.New("a run is already in progress")
	ErrRewardPending = errors.New("a reward is waiting to be collected")
	ErrEmptyRoutine  = errors.New("the routine has no tasks")
)

// GenerationError wraps a failed call to the text-generation service. It is
// recoverable: the caller may retry and no state was changed.
type GenerationError struct {
	Op  string
	Err error
}

func (e GenerationError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e GenerationError) Unwrap() error { return e.Err }
