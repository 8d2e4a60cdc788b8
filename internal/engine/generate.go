package engine

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"morningquest/internal/generator"
	"morningquest/internal/mission"
	"morningquest/internal/storage"
)

// GenerateSchedule asks the generator for a routine. With apply set the
// result replaces the current routine; otherwise it is only returned. A
// failed call yields a GenerationError and leaves the profile untouched.
func (s *Service) GenerateSchedule(ctx context.Context, key, prompt string, apply bool) (*GenerateResult, error) {
	s.mu.Lock()
	if err := s.requireIdle(ctx, s.repos, key); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	s.mu.Unlock()

	tasks, genErr := s.gen.GenerateSchedule(ctx, prompt)
	if !errors.Is(genErr, generator.ErrDisabled) {
		s.recordGeneration(ctx, key, prompt, genErr == nil)
	}
	if genErr != nil {
		s.log.Warn().Err(genErr).Str("profile", key).Msg("schedule generation failed")
		return nil, GenerationError{Op: "generate schedule", Err: genErr}
	}

	if apply {
		if _, err := s.ReplaceTasks(ctx, key, tasks); err != nil {
			return nil, err
		}
	}
	return &GenerateResult{Tasks: tasks, TotalMinutes: mission.TotalPlannedMinutes(tasks)}, nil
}

// recordGeneration keeps an audit row; failures are logged and ignored.
func (s *Service) recordGeneration(ctx context.Context, key, prompt string, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := s.repos.Generations.Insert(ctx, storage.Generation{
		ID:         uuid.NewString(),
		ProfileKey: key,
		Kind:       "schedule",
		Prompt:     prompt,
		OK:         ok,
		CreatedAt:  s.clock.Now(),
	})
	if err != nil {
		s.log.Warn().Err(err).Msg("record generation failed")
	}
}

// Generations lists recent generator calls for a profile.
func (s *Service) Generations(ctx context.Context, key string, limit int) ([]storage.Generation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.repos.Generations.ListRecent(ctx, key, limit)
}
