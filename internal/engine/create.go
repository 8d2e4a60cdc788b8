package engine

import (
	"context"

	"morningquest/internal/mission"
	"morningquest/internal/storage"
)

// StartRun begins a morning for key over the current routine.
func (s *Service) StartRun(ctx context.Context, key string) (*StartResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var res *StartResult
	err := storage.WithTx(ctx, s.db, func(r storage.Repos) error {
		st, err := s.loadState(ctx, r, key)
		if err != nil {
			return err
		}
		if err := s.canStart(ctx, r, key, st); err != nil {
			return err
		}

		now := s.clock.Now()
		run := mission.NewRun(st.Tasks, now)
		if err := s.saveRun(ctx, r, key, run); err != nil {
			return err
		}
		res = &StartResult{
			StartedAt:     now,
			Phase:         run.Phase(),
			Budget:        run.Budget(s.calc, now, st.DepartureTime),
			EstimatedDone: mission.EstimatedFinish(st.Tasks, now),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("profile", key).Str("phase", string(res.Phase)).Msg("run started")
	return res, nil
}
