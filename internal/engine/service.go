package engine

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"morningquest/internal/config"
	"morningquest/internal/generator"
	"morningquest/internal/logging"
	"morningquest/internal/mission"
	"morningquest/internal/storage"
)

// Settings are the tunables of the engine, usually taken from config.
type Settings struct {
	WarningMinutes   int
	StampsPerReward  int
	Overflow         mission.OverflowPolicy
	EarlyWakeMinutes int
	// DefaultNames maps profile keys to the name used before one is saved.
	DefaultNames map[string]string
}

func DefaultSettings() Settings {
	return Settings{
		WarningMinutes:   mission.DefaultWarningMinutes,
		StampsPerReward:  mission.DefaultStampsPerReward,
		Overflow:         mission.OverflowDiscard,
		EarlyWakeMinutes: 10,
	}
}

func SettingsFromConfig(cfg *config.Config) (Settings, error) {
	overflow, err := mission.ParseOverflowPolicy(cfg.Progression.Overflow)
	if err != nil {
		return Settings{}, err
	}
	names := make(map[string]string, len(cfg.Profiles))
	for _, p := range cfg.Profiles {
		names[p.Key] = p.Name
	}
	return Settings{
		WarningMinutes:   cfg.Budget.WarningMinutes,
		StampsPerReward:  cfg.Progression.StampsPerReward,
		Overflow:         overflow,
		EarlyWakeMinutes: cfg.Bonus.EarlyWakeMinutes,
		DefaultNames:     names,
	}, nil
}

type Option func(*Service)

func WithClock(c mission.Clock) Option {
	return func(s *Service) { s.clock = c }
}

func WithGenerator(g generator.Generator) Option {
	return func(s *Service) { s.gen = g }
}

func WithSettings(st Settings) Option {
	return func(s *Service) { s.settings = st }
}

// Service runs mornings for any number of independent profiles. Every
// mutation writes the full profile snapshot.
type Service struct {
	mu       sync.Mutex
	db       *sql.DB
	repos    storage.Repos
	clock    mission.Clock
	gen      generator.Generator
	settings Settings
	calc     mission.BudgetCalculator
	ledger   mission.Ledger
	log      zerolog.Logger
}

func NewService(db *sql.DB, opts ...Option) *Service {
	s := &Service{
		db:       db,
		repos:    storage.NewRepos(db),
		clock:    mission.SystemClock{},
		gen:      generator.Disabled{},
		settings: DefaultSettings(),
		log:      logging.Component("engine"),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.calc = mission.NewBudgetCalculator(s.settings.WarningMinutes)
	s.ledger = mission.NewLedger(s.settings.StampsPerReward, s.settings.Overflow)
	return s
}

func (s *Service) Ledger() mission.Ledger { return s.ledger }

func (s *Service) defaultName(key string) string {
	if n := s.settings.DefaultNames[key]; n != "" {
		return n
	}
	return key
}

// loadState reads and normalizes a profile. Missing or unreadable state
// falls back to a fresh profile.
func (s *Service) loadState(ctx context.Context, r storage.Repos, key string) (*mission.ChildState, error) {
	p, err := r.Profiles.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if p == nil {
		st := mission.NewChildState(s.defaultName(key))
		return &st, nil
	}

	var st mission.ChildState
	if err := json.Unmarshal(p.State, &st); err != nil {
		s.log.Warn().Err(err).Str("profile", key).Msg("stored state unreadable, starting fresh")
		st = mission.ChildState{}
	}
	mission.Normalize(&st, s.defaultName(key))
	return &st, nil
}

func (s *Service) saveState(ctx context.Context, r storage.Repos, key string, st *mission.ChildState) error {
	data, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}
	if err := r.Profiles.Put(ctx, key, data, s.clock.Now()); err != nil {
		s.log.Error().Err(err).Str("profile", key).Msg("save state failed")
		return err
	}
	return nil
}

// loadRun returns the active run, or nil when there is none.
func (s *Service) loadRun(ctx context.Context, r storage.Repos, key string) (*mission.Run, error) {
	ar, err := r.Runs.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if ar == nil {
		return nil, nil
	}
	var rs mission.RunState
	if err := json.Unmarshal(ar.State, &rs); err != nil {
		s.log.Warn().Err(err).Str("profile", key).Msg("stored run unreadable, discarding")
		if err := r.Runs.Delete(ctx, key); err != nil {
			return nil, err
		}
		return nil, nil
	}
	return mission.RestoreRun(rs), nil
}

func (s *Service) saveRun(ctx context.Context, r storage.Repos, key string, run *mission.Run) error {
	data, err := json.Marshal(run.State())
	if err != nil {
		return fmt.Errorf("encode run: %w", err)
	}
	return r.Runs.Put(ctx, key, data, run.StartedAt(), s.clock.Now())
}

// State returns the normalized profile state.
func (s *Service) State(ctx context.Context, key string) (*mission.ChildState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadState(ctx, s.repos, key)
}
