package engine

import (
	"context"
	"time"

	"morningquest/internal/mission"
)

// Status derives the full view of a profile at the current instant. It is a
// pure read: calling it every second never changes stored state.
func (s *Service) Status(ctx context.Context, key string) (*StatusResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.loadState(ctx, s.repos, key)
	if err != nil {
		return nil, err
	}
	run, err := s.loadRun(ctx, s.repos, key)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	res := &StatusResult{
		Key:           key,
		State:         st,
		Now:           now,
		RewardPending: s.ledger.RewardPending(st.StampCard),
		StampsToGo:    s.ledger.StampsToReward(st.StampCard),
		PlannedTotal:  mission.TotalPlannedMinutes(st.Tasks),
		EstimatedDone: mission.EstimatedFinish(st.Tasks, now),
	}
	if run != nil {
		res.Run = s.runView(run, st.DepartureTime, now)
	}
	return res, nil
}

func (s *Service) runView(run *mission.Run, departureTime string, now time.Time) *RunView {
	active := run.ActiveTask()
	v := &RunView{
		Phase:      run.Phase(),
		ActiveTask: active,
		Budget:     run.Budget(s.calc, now, departureTime),
		StartedAt:  run.StartedAt(),
		Bonus:      run.Bonus(),
	}
	for _, t := range run.Tasks() {
		v.Tasks = append(v.Tasks, TaskView{
			Task:           t,
			Completed:      run.IsCompleted(t.ID),
			Active:         active != nil && active.ID == t.ID,
			ElapsedSeconds: run.CurrentElapsed(t.ID, now),
		})
	}
	return v
}

// Logs returns the mission history with its summary and chart series.
func (s *Service) Logs(ctx context.Context, key string) (*LogsResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.loadState(ctx, s.repos, key)
	if err != nil {
		return nil, err
	}
	return &LogsResult{
		Logs:    st.Logs,
		Summary: mission.SummarizeLogs(st.Logs),
		Series:  mission.ChartSeries(st.Logs),
	}, nil
}
