// Package config loads and validates the settings a cyphercore runner
// needs at startup: how deep a variable-length pattern may walk, how long
// a query may run, how many parsed statements are cached, and where its
// logs/metrics go.
// Following the pack's config.LoadFromFile/Validate shape (see
// DESIGN.md), a Config is built from defaults, overlaid with a YAML
// file, then validated once before use.
package config

import (
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/lattixdb/cyphercore/pkg/cerr"
)

// RunnerConfig bounds one Runner's resource usage and reports where its
// ambient output (logs, metrics) goes. Every field has a struct-tag
// validated invariant, the same idiom pkg/procedure.Registry.Register
// uses for guarding configuration shapes before they misbehave at call
// time.
type RunnerConfig struct {
	// MaxHops caps an unbounded variable-length relationship pattern
	// (`*..`) so a query can't request an effectively-infinite BFS.
	MaxHops int `yaml:"max_hops" validate:"gte=1,lte=1000"`

	// QueryTimeout bounds how long a single Run call may take before it
	// fails with cerr.KindQueryTimeout. cmd/cyphercore passes this to
	// Runner.WithQueryTimeout, which derives the deadline internally
	// around each Run call's execute phase.
	QueryTimeout time.Duration `yaml:"query_timeout" validate:"required"`

	// MaxCachedStatements caps how many distinct query texts
	// StatementCache retains before it starts evicting the
	// least-recently-used entry; 0 means unbounded (acceptable for a demo
	// binary, not for a long-lived server fielding arbitrary query text).
	// cmd/cyphercore passes this to Runner.WithMaxCachedStatements.
	MaxCachedStatements int `yaml:"max_cached_statements" validate:"gte=0"`

	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// LoggingConfig configures pkg/logging's structured event logger.
type LoggingConfig struct {
	// Level is one of "debug", "info", "warn", "error", written all
	// lower-case or all upper-case.
	Level string `yaml:"level" validate:"required,oneof=debug info warn error DEBUG INFO WARN ERROR"`
}

// MetricsConfig configures pkg/metrics's Registry.
type MetricsConfig struct {
	// Namespace prefixes every collector this module registers
	// (e.g. "cyphercore" -> cyphercore_queries_total).
	Namespace string `yaml:"namespace" validate:"required"`
}

// Default returns the configuration a fresh Runner should start from
// absent any file or environment override.
func Default() RunnerConfig {
	return RunnerConfig{
		MaxHops:             15,
		QueryTimeout:        30 * time.Second,
		MaxCachedStatements: 256,
		Logging:             LoggingConfig{Level: "info"},
		Metrics:             MetricsConfig{Namespace: "cyphercore"},
	}
}

// Load reads a YAML file at path, overlaying it onto Default(), and
// validates the result. A missing file is not an error — the caller
// gets Default() back, matching the pack's "config file is optional,
// defaults are always sane" convention.
func Load(path string) (RunnerConfig, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, cfg.Validate()
		}
		return RunnerConfig{}, cerr.Wrap("config.Load", cerr.KindGraphIOError, "reading "+path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return RunnerConfig{}, cerr.Wrap("config.Load", cerr.KindInvalidArgument, "parsing "+path, err)
	}
	return cfg, cfg.Validate()
}

// Validate checks every struct-tag invariant on cfg.
func (c RunnerConfig) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return cerr.Wrap("config.Validate", cerr.KindInvalidArgument, "invalid runner configuration", err)
	}
	return nil
}
