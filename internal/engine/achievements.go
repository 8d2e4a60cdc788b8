package engine

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"morningquest/internal/generator"
	"morningquest/internal/mission"
	"morningquest/internal/storage"
)

const commentHistory = 10

// AcknowledgeReward collects a full stamp card: the rank goes up and a medal
// is added. The congratulation comes from the generator and falls back to a
// fixed text on any failure.
func (s *Service) AcknowledgeReward(ctx context.Context, key string) (*RewardResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.loadState(ctx, s.repos, key)
	if err != nil {
		return nil, err
	}
	if !s.ledger.RewardPending(st.StampCard) {
		return nil, mission.ErrNoRewardPending
	}

	// The generator call stays outside the transaction.
	comment, genErr := s.gen.GenerateComment(ctx, st.Name, mission.RecentLogs(st.Logs, commentHistory))
	fallback := genErr != nil
	if fallback {
		comment = generator.FallbackComment
		if !errors.Is(genErr, generator.ErrDisabled) {
			s.log.Warn().Err(genErr).Str("profile", key).Msg("comment generation failed, using fallback")
		}
	}

	var res *RewardResult
	err = storage.WithTx(ctx, s.db, func(r storage.Repos) error {
		st, err := s.loadState(ctx, r, key)
		if err != nil {
			return err
		}
		rr, err := s.ledger.AcknowledgeReward(&st.StampCard, comment, s.clock.Now())
		if err != nil {
			return err
		}
		if err := s.saveState(ctx, r, key, st); err != nil {
			return err
		}
		if !errors.Is(genErr, generator.ErrDisabled) {
			if err := r.Generations.Insert(ctx, storage.Generation{
				ID:         uuid.NewString(),
				ProfileKey: key,
				Kind:       "comment",
				OK:         !fallback,
				CreatedAt:  s.clock.Now(),
			}); err != nil {
				return err
			}
		}
		res = &RewardResult{RewardResult: rr, CommentFallback: fallback}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("profile", key).
		Int("rank", res.RankAfter).
		Bool("grade_up", res.GradeUp).
		Msg("reward collected")
	return res, nil
}
