package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	EnvConfigPath = "MQ_CONFIG"
	EnvLogLevel   = "MQ_LOG_LEVEL"
)

type Config struct {
	Database    DatabaseConfig    `yaml:"database"`
	Log         LogConfig         `yaml:"log"`
	Budget      BudgetConfig      `yaml:"budget"`
	Progression ProgressionConfig `yaml:"progression"`
	Bonus       BonusConfig       `yaml:"bonus"`
	Generator   GeneratorConfig   `yaml:"generator"`
	Profiles    []Profile         `yaml:"profiles"`
	DataDir     string            `yaml:"-"` // set by caller, not from config file
}

type DatabaseConfig struct {
	Path string `yaml:"path"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

type BudgetConfig struct {
	WarningMinutes int `yaml:"warning_minutes"`
}

type ProgressionConfig struct {
	StampsPerReward int    `yaml:"stamps_per_reward"`
	Overflow        string `yaml:"overflow"` // discard or carry
}

type BonusConfig struct {
	// A run earns the bonus when the wake-up task is done at least this many
	// minutes before the latest start that still fits the routine.
	EarlyWakeMinutes int `yaml:"early_wake_minutes"`
}

type GeneratorConfig struct {
	Enabled   bool          `yaml:"enabled"`
	BaseURL   string        `yaml:"base_url"`
	Model     string        `yaml:"model"`
	APIKeyEnv string        `yaml:"api_key_env"`
	Timeout   time.Duration `yaml:"timeout"`
}

// APIKey reads the key from the configured environment variable.
func (g GeneratorConfig) APIKey() string {
	if g.APIKeyEnv == "" {
		return ""
	}
	return os.Getenv(g.APIKeyEnv)
}

type Profile struct {
	Key   string `yaml:"key"`
	Name  string `yaml:"name"`
	Theme string `yaml:"theme"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Log:         LogConfig{Level: "info"},
		Budget:      BudgetConfig{WarningMinutes: 10},
		Progression: ProgressionConfig{StampsPerReward: 10, Overflow: "discard"},
		Bonus:       BonusConfig{EarlyWakeMinutes: 10},
		Generator: GeneratorConfig{
			Model:     "gpt-4o-mini",
			APIKeyEnv: "OPENAI_API_KEY",
			Timeout:   30 * time.Second,
		},
		Profiles: []Profile{
			{Key: "child1", Name: "Child 1", Theme: "#fb923c"},
			{Key: "child2", Name: "Child 2", Theme: "#38bdf8"},
		},
	}
}

// DefaultPath returns $MQ_CONFIG or ~/.config/morningquest/config.yaml.
func DefaultPath() (string, error) {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".config", "morningquest", "config.yaml"), nil
}

// DefaultDataDir returns ~/.morningquest.
func DefaultDataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".morningquest"), nil
}

// Load reads configuration from the given path and sets the data directory.
// If configPath is empty or doesn't exist, returns defaults with the provided dataDir.
func Load(configPath, dataDir string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		}
	}
	cfg.DataDir = dataDir

	if lvl := os.Getenv(EnvLogLevel); lvl != "" {
		cfg.Log.Level = lvl
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// applyDefaults fills paths derived from the data directory and any
// string option left empty.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Database.Path == "" && c.DataDir != "" {
		c.Database.Path = filepath.Join(c.DataDir, "morningquest.db")
	}
	if c.Log.File == "" && c.DataDir != "" {
		c.Log.File = filepath.Join(c.DataDir, "mq.log")
	}
	if c.Log.Level == "" {
		c.Log.Level = defaults.Log.Level
	}
	if c.Progression.Overflow == "" {
		c.Progression.Overflow = defaults.Progression.Overflow
	}
	if c.Generator.Timeout == 0 {
		c.Generator.Timeout = defaults.Generator.Timeout
	}
	if len(c.Profiles) == 0 {
		c.Profiles = defaults.Profiles
	}
}

// Profile looks up a profile by key.
func (c *Config) Profile(key string) (Profile, bool) {
	for _, p := range c.Profiles {
		if p.Key == key {
			return p, true
		}
	}
	return Profile{}, false
}
