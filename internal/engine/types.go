package engine

import (
	"time"

	"morningquest/internal/mission"
)

type StartResult struct {
	StartedAt     time.Time
	Phase         mission.Phase
	Budget        mission.Budget
	EstimatedDone time.Time
}

type CompleteResult struct {
	mission.CompleteResult
	BonusEarned bool
	Budget      mission.Budget
}

type DepartResult struct {
	Outcome       mission.Outcome
	Stamps        mission.StampResult
	RewardPending bool
	Rank          int
}

type RewardResult struct {
	mission.RewardResult
	CommentFallback bool
}

// StatusResult is a full view of one profile at one instant. Run is nil
// when no run is active.
type StatusResult struct {
	Key           string
	State         *mission.ChildState
	Now           time.Time
	Run           *RunView
	RewardPending bool
	StampsToGo    int
	PlannedTotal  int
	EstimatedDone time.Time
}

// RunView is the live, derived state of an active run.
type RunView struct {
	Phase      mission.Phase
	ActiveTask *mission.Task
	Tasks      []TaskView
	Budget     mission.Budget
	StartedAt  time.Time
	Bonus      bool
}

type TaskView struct {
	Task           mission.Task
	Completed      bool
	Active         bool
	ElapsedSeconds int
}

type LogsResult struct {
	Logs    []mission.MissionLog
	Summary mission.LogSummary
	Series  []mission.ChartPoint
}

type GenerateResult struct {
	Tasks        []mission.Task
	TotalMinutes int
}
