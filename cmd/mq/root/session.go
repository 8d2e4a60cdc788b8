package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"morningquest/internal/config"
	"morningquest/internal/engine"
	"morningquest/internal/generator"
	"morningquest/internal/logging"
	"morningquest/internal/mission"
	"morningquest/internal/storage"
)

// session bundles everything a command needs for one profile.
type session struct {
	cfg *config.Config
	svc *engine.Service
	key string
}

func loadConfig(flags *globalFlags) (*config.Config, error) {
	path := flags.configPath
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	dataDir := flags.dataDir
	if dataDir == "" {
		d, err := config.DefaultDataDir()
		if err != nil {
			return nil, err
		}
		dataDir = d
	}
	cfg, err := config.Load(path, dataDir)
	if err != nil {
		return nil, err
	}
	if flags.dbPath != "" {
		cfg.Database.Path = flags.dbPath
	}
	if flags.logLevel != "" {
		cfg.Log.Level = flags.logLevel
	}
	return cfg, nil
}

func openSession(ctx context.Context, flags *globalFlags) (*session, func(), error) {
	cfg, err := loadConfig(flags)
	if err != nil {
		return nil, nil, err
	}
	if _, ok := cfg.Profile(flags.profile); !ok {
		return nil, nil, fmt.Errorf("unknown profile %q (see `mq profiles`)", flags.profile)
	}

	logger, closeLog, err := logging.New(cfg.Log.Level, cfg.Log.File)
	if err != nil {
		return nil, nil, err
	}
	log.Logger = logger

	db, err := storage.Open(ctx, cfg.Database.Path)
	if err != nil {
		closeLog()
		return nil, nil, err
	}
	cleanup := func() {
		_ = db.Close()
		closeLog()
	}

	settings, err := engine.SettingsFromConfig(cfg)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	svc := engine.NewService(db,
		engine.WithSettings(settings),
		engine.WithGenerator(generator.New(cfg.Generator)),
		engine.WithClock(mission.SystemClock{}),
	)

	log.Debug().Str("profile", flags.profile).Str("db", cfg.Database.Path).Msg("session opened")
	return &session{cfg: cfg, svc: svc, key: flags.profile}, cleanup, nil
}

// describeErr turns engine and mission errors into short messages for kids
// and parents standing at the door.
func describeErr(err error) string {
	var rej mission.DepartRejectedError
	var genErr engine.GenerationError
	switch {
	case errors.As(err, &rej):
		return "not yet: " + rej.Error()
	case errors.Is(err, mission.ErrWakeUpPending):
		return "wake up first (finish the first task)"
	case errors.Is(err, engine.ErrRewardPending):
		return "the stamp card is full, collect the reward first (`mq ack`)"
	case errors.Is(err, engine.ErrRunInProgress):
		return "a run is in progress (finish it or `mq abandon --yes`)"
	case errors.Is(err, engine.ErrNoActiveRun):
		return "no run in progress (start one with `mq start`)"
	case errors.As(err, &genErr):
		return "the schedule generator failed: " + genErr.Err.Error()
	default:
		return err.Error()
	}
}
