package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "INNINGS_"

// FileEnv names the variable holding an optional YAML config path.
const FileEnv = EnvPrefix + "CONFIG"

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if INNINGS_CONFIG is set
//  3. env (prefix INNINGS_)
func Load(_ context.Context) (*Config, error) {
	k := koanf.New(".")

	if path := os.Getenv(FileEnv); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrLoadConfig, path, err)
		}
	}

	// INNINGS_MAX_TOP_N -> max_top_n; underscores are kept to match the koanf tags.
	envProvider := env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.TrimPrefix(strings.ToLower(s), strings.ToLower(EnvPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: env: %v", ErrLoadConfig, err)
	}

	cfg := *New()
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports the first invalid field.
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.Addr) == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case strings.TrimSpace(c.MatchesPath) == "":
		return fmt.Errorf("%w: matches_path must not be empty", ErrInvalidConfig)
	case strings.TrimSpace(c.DeliveriesPath) == "":
		return fmt.Errorf("%w: deliveries_path must not be empty", ErrInvalidConfig)
	case c.DeathOverLow > c.DeathOverHigh:
		return fmt.Errorf("%w: death_over_low %d exceeds death_over_high %d", ErrInvalidConfig, c.DeathOverLow, c.DeathOverHigh)
	case c.MaxTopN < 1:
		return fmt.Errorf("%w: max_top_n must be positive", ErrInvalidConfig)
	case c.DefaultTopN < 0 || c.DefaultTopN > c.MaxTopN:
		return fmt.Errorf("%w: default_top_n %d outside 0..%d", ErrInvalidConfig, c.DefaultTopN, c.MaxTopN)
	case c.MetricsInterval <= 0:
		return fmt.Errorf("%w: metrics_interval must be positive", ErrInvalidConfig)
	case c.PreviewRows < 0 || c.PreviewRows > c.MaxTopN:
		return fmt.Errorf("%w: preview_rows %d outside 0..%d", ErrInvalidConfig, c.PreviewRows, c.MaxTopN)
	}
	return nil
}
