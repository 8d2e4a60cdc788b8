package engine

import (
	"context"

	"morningquest/internal/mission"
	"morningquest/internal/storage"
)

// CompleteTask marks one task of the active run as done. Finishing the
// wake-up task early enough flags the run for the bonus.
func (s *Service) CompleteTask(ctx context.Context, key, taskID string) (*CompleteResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var res *CompleteResult
	err := storage.WithTx(ctx, s.db, func(r storage.Repos) error {
		st, err := s.loadState(ctx, r, key)
		if err != nil {
			return err
		}
		run, err := s.loadRun(ctx, r, key)
		if err != nil {
			return err
		}
		if run == nil {
			return ErrNoActiveRun
		}

		now := s.clock.Now()
		cr, err := run.Complete(taskID, now)
		if err != nil {
			return err
		}

		bonus := false
		if start := run.StartTask(); !cr.AlreadyCompleted && start != nil && start.ID == taskID {
			if mission.EarnsEarlyWakeBonus(run.Tasks(), st.DepartureTime, s.settings.EarlyWakeMinutes, now) {
				run.MarkBonus()
				bonus = true
			}
		}

		if !cr.AlreadyCompleted {
			if err := s.saveRun(ctx, r, key, run); err != nil {
				return err
			}
		}
		res = &CompleteResult{
			CompleteResult: cr,
			BonusEarned:    bonus,
			Budget:         run.Budget(s.calc, now, st.DepartureTime),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("profile", key).
		Str("task", taskID).
		Int("charged_s", res.SecondsCharged).
		Str("phase", string(res.PhaseAfter)).
		Bool("bonus", res.BonusEarned).
		Msg("task completed")
	return res, nil
}

// Depart finishes the active run. The log entry, the stamp change and the
// removal of the run are written in one transaction from the same outcome.
func (s *Service) Depart(ctx context.Context, key string) (*DepartResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var res *DepartResult
	err := storage.WithTx(ctx, s.db, func(r storage.Repos) error {
		st, err := s.loadState(ctx, r, key)
		if err != nil {
			return err
		}
		run, err := s.loadRun(ctx, r, key)
		if err != nil {
			return err
		}
		if run == nil {
			return ErrNoActiveRun
		}

		snap, err := run.Depart(s.clock.Now())
		if err != nil {
			return err
		}
		outcome := mission.Evaluate(snap, st.DepartureTime)
		st.Logs = append(st.Logs, outcome.Log)
		stamps := s.ledger.ApplyOutcome(&st.StampCard, outcome)

		if err := s.saveState(ctx, r, key, st); err != nil {
			return err
		}
		if err := r.Runs.Delete(ctx, key); err != nil {
			return err
		}
		res = &DepartResult{
			Outcome:       outcome,
			Stamps:        stamps,
			RewardPending: stamps.RewardPending,
			Rank:          st.StampCard.Rank,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("profile", key).
		Bool("success", res.Outcome.IsSuccess).
		Bool("bonus", res.Outcome.IsBonus).
		Int("stamps", res.Stamps.StampsAfter).
		Bool("reward_pending", res.RewardPending).
		Msg("departed")
	return res, nil
}

// AbandonRun drops the active run without touching logs, stamps or rank.
func (s *Service) AbandonRun(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ar, err := s.repos.Runs.Get(ctx, key)
	if err != nil {
		return err
	}
	if ar == nil {
		return ErrNoActiveRun
	}
	if err := s.repos.Runs.Delete(ctx, key); err != nil {
		return err
	}
	s.log.Info().Str("profile", key).Msg("run abandoned")
	return nil
}
