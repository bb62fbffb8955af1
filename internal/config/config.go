// Package config loads process configuration: defaults, an optional YAML
// file, then environment variables, in increasing precedence.
package config

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config contains process configuration.
type Config struct {
	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// DBPath locates the SQLite session history file. Empty disables
	// persistence entirely.
	DBPath string `koanf:"db_path"`

	// BatchSize bounds how many games one scheduler tick resolves.
	BatchSize int `koanf:"batch_size"`

	// TickIntervalMS paces the batch loop; it exists to make progress
	// watchable, not for correctness.
	TickIntervalMS int `koanf:"tick_interval_ms"`
}

// New returns the default configuration.
func New() *Config {
	return &Config{
		Addr:           ":8090",
		DBPath:         "fairsettle.db",
		BatchSize:      10,
		TickIntervalMS: 50,
	}
}

// Load builds a Config by layering defaults, an optional file, and env
// vars. Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if FAIRSETTLE_CONFIG is set
//  3. env (prefix FAIRSETTLE_)
func Load() (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("FAIRSETTLE_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, err
		}
	}

	// FAIRSETTLE_ADDR, FAIRSETTLE_BATCH_SIZE, ... map to flat koanf keys;
	// underscores are preserved to match the struct tags.
	envProvider := env.Provider("FAIRSETTLE_", ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, "fairsettle_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, err
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, err
	}

	if cfg.Addr == "" {
		return nil, errors.New("addr must not be empty")
	}
	if cfg.BatchSize < 1 {
		cfg.BatchSize = 1
	}
	if cfg.TickIntervalMS < 1 {
		cfg.TickIntervalMS = 1
	}
	return &cfg, nil
}

// TickInterval returns the batch pacing as a duration.
func (c *Config) TickInterval() time.Duration {
	return time.Duration(c.TickIntervalMS) * time.Millisecond
}
