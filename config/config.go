// Package config loads the reaper's optional configuration file.
//
// Config is stored at $XDG_CONFIG_HOME/fleetreap/config.yaml (defaults
// to ~/.config/fleetreap/config.yaml). File values act as flag
// defaults; a flag set on the command line always wins.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config mirrors the YAML file. The retention mode keys are pointers so
// an absent key stays distinguishable from an explicit zero: eviction
// scope must always be chosen deliberately, never defaulted.
type Config struct {
	Image           string `yaml:"image,omitempty"`
	MinAgeMinutes   *int64 `yaml:"min_age_minutes,omitempty"`
	ReapAll         *bool  `yaml:"reap_all,omitempty"`
	DryRun          bool   `yaml:"dry_run,omitempty"`
	IntervalSeconds int    `yaml:"interval_seconds,omitempty"`
	Strict          bool   `yaml:"strict,omitempty"`
	ClockCheck      bool   `yaml:"clock_check,omitempty"`
	LogLevel        string `yaml:"log_level,omitempty"`
}

// Path returns the config file location. It respects XDG_CONFIG_HOME,
// falling back to ~/.config/fleetreap/config.yaml.
func Path() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return filepath.Join(".config", "fleetreap", "config.yaml")
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "fleetreap", "config.yaml")
}

// Load reads the config file at path, or at Path() when path is empty.
// A missing file yields a zero Config, not an error.
func Load(path string) (*Config, error) {
	if path == "" {
		path = Path()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return &cfg, nil
}

// Interval converts interval_seconds to a duration. Zero means unset.
func (c *Config) Interval() time.Duration {
	return time.Duration(c.IntervalSeconds) * time.Second
}
