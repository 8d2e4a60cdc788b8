package config

import (
	"fmt"
	"net/url"
	"regexp"

	"github.com/hay-kot/criterio"
	"github.com/rs/zerolog"
)

var (
	profileKeyRe = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)
	hexColorRe   = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)
)

// Validate checks that the configuration is usable. All problems are
// reported together as criterio field errors.
func (c *Config) Validate() error {
	var errs criterio.FieldErrorsBuilder

	if c.Database.Path == "" {
		errs = errs.Append("database.path", fmt.Errorf("cannot be empty"))
	}
	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		errs = errs.Append("log.level", fmt.Errorf("unknown level %q", c.Log.Level))
	}
	if c.Budget.WarningMinutes < 0 {
		errs = errs.Append("budget.warning_minutes", fmt.Errorf("must not be negative"))
	}
	if c.Progression.StampsPerReward < 1 {
		errs = errs.Append("progression.stamps_per_reward", fmt.Errorf("must be at least 1"))
	}
	switch c.Progression.Overflow {
	case "discard", "carry":
	default:
		errs = errs.Append("progression.overflow", fmt.Errorf("must be discard or carry, got %q", c.Progression.Overflow))
	}
	if c.Bonus.EarlyWakeMinutes < 0 {
		errs = errs.Append("bonus.early_wake_minutes", fmt.Errorf("must not be negative"))
	}

	if c.Generator.Enabled {
		if c.Generator.Model == "" {
			errs = errs.Append("generator.model", fmt.Errorf("required when the generator is enabled"))
		}
		if c.Generator.BaseURL != "" {
			if u, err := url.Parse(c.Generator.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
				errs = errs.Append("generator.base_url", fmt.Errorf("invalid url %q", c.Generator.BaseURL))
			}
		}
	}
	if c.Generator.Timeout < 0 {
		errs = errs.Append("generator.timeout", fmt.Errorf("must not be negative"))
	}

	seen := make(map[string]bool, len(c.Profiles))
	for i, p := range c.Profiles {
		field := fmt.Sprintf("profiles[%d]", i)
		if !profileKeyRe.MatchString(p.Key) {
			errs = errs.Append(field+".key", fmt.Errorf("invalid key %q", p.Key))
		}
		if seen[p.Key] {
			errs = errs.Append(field+".key", fmt.Errorf("duplicate key %q", p.Key))
		}
		seen[p.Key] = true
		if p.Theme != "" && !hexColorRe.MatchString(p.Theme) {
			errs = errs.Append(field+".theme", fmt.Errorf("want #rrggbb, got %q", p.Theme))
		}
	}

	return errs.ToError()
}
