package engine

import (
	"context"

	"morningquest/internal/mission"
	"morningquest/internal/storage"
)

// requireIdle refuses actions that would change the routine under a live run.
func (s *Service) requireIdle(ctx context.Context, r storage.Repos, key string) error {
	ar, err := r.Runs.Get(ctx, key)
	if err != nil {
		return err
	}
	if ar != nil {
		return ErrRunInProgress
	}
	return nil
}

// canStart is the gate in front of a new run: no run may be active and a
// full stamp card must be collected first.
func (s *Service) canStart(ctx context.Context, r storage.Repos, key string, st *mission.ChildState) error {
	if err := s.requireIdle(ctx, r, key); err != nil {
		return err
	}
	if s.ledger.RewardPending(st.StampCard) {
		return ErrRewardPending
	}
	if len(st.Tasks) == 0 {
		return ErrEmptyRoutine
	}
	return nil
}
