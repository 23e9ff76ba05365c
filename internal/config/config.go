// Package config defines service configuration and its layered loader.
//
// Conventions:
// - New returns a Config populated with defaults.
// - Load layers defaults, an optional YAML file and INNINGS_* env vars.
// - Errors are wrapped with this package's sentinels.
package config

import "time"

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogJSON switches log output to JSON lines.
	LogJSON bool `koanf:"log_json"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// MatchesPath and DeliveriesPath locate the two CSV tables.
	MatchesPath    string `koanf:"matches_path"`
	DeliveriesPath string `koanf:"deliveries_path"`

	// DefaultTopN is used when a request omits a limit.
	DefaultTopN int `koanf:"default_top_n"`

	// MaxTopN caps GET /views/{id}?limit.
	MaxTopN int `koanf:"max_top_n"`

	// DeathOverLow and DeathOverHigh bound the death-overs window, inclusive.
	DeathOverLow  int `koanf:"death_over_low"`
	DeathOverHigh int `koanf:"death_over_high"`

	// PreviewRows is the default number of matches in the dataset overview.
	PreviewRows int `koanf:"preview_rows"`

	// MetricsEnabled turns Prometheus recording on or off.
	MetricsEnabled bool `koanf:"metrics_enabled"`

	// MetricsInterval is how often the system and dataset gauges refresh, e.g. "10s".
	MetricsInterval time.Duration `koanf:"metrics_interval"`
}

// New creates a Config holding the defaults.
func New() *Config {
	return &Config{
		LogLevel:       "info",
		Addr:           ":9080",
		MatchesPath:    "data/matches.csv",
		DeliveriesPath: "data/deliveries.csv",
		DefaultTopN:    10,
		MaxTopN:        100,
		DeathOverLow:   16,
		DeathOverHigh:  20,
		PreviewRows:    5,

		MetricsEnabled:  true,
		MetricsInterval: 10 * time.Second,
	}
}
