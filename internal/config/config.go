// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(ctx) to build a Config with defaults.
// - Functions accept context.Context as the first parameter.
// - External errors are wrapped with this package's sentinels.
package config

import (
	"context"
	"fmt"
	"strings"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects text or json log output.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// RecordsPath is an optional JSON file of weekly records loaded at start.
	RecordsPath string `koanf:"records_path"`

	// MaxFacts is the default number of facts returned per week.
	MaxFacts int `koanf:"max_facts"`

	// ChartLimit is the default number of chart and top-losing entries.
	ChartLimit int `koanf:"chart_limit"`

	// MaxBodyBytes caps POST /weeks request bodies.
	MaxBodyBytes int64 `koanf:"max_body_bytes"`

	// ReadOnly rejects ingestion over HTTP.
	ReadOnly bool `koanf:"read_only"`
}

// New creates a Config with defaults. Context is accepted first to satisfy
// the project-wide convention and is currently unused.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:     "info",
		LogFormat:    "text",
		Addr:         ":9080",
		MaxFacts:     4,
		ChartLimit:   10,
		MaxBodyBytes: 8 << 20,
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.Addr) == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.MaxFacts < 1:
		return fmt.Errorf("%w: max_facts must be at least 1, got %d", ErrInvalidConfig, c.MaxFacts)
	case c.ChartLimit < 1:
		return fmt.Errorf("%w: chart_limit must be at least 1, got %d", ErrInvalidConfig, c.ChartLimit)
	case c.MaxBodyBytes <= 0:
		return fmt.Errorf("%w: max_body_bytes must be positive, got %d", ErrInvalidConfig, c.MaxBodyBytes)
	}
	switch strings.ToLower(strings.TrimSpace(c.LogFormat)) {
	case "text", "json":
	default:
		return fmt.Errorf("%w: log_format must be text or json, got %q", ErrInvalidConfig, c.LogFormat)
	}
	return nil
}
