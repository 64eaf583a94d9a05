// This file is part of the CosmoScout VR ecosystem.
//
// SPDX-FileCopyrightText: German Aerospace Center (DLR) <cosmoscout@dlr.de>
// SPDX-License-Identifier: MIT

// Package config provides configuration management for gaia-stars with
// support for multiple configuration sources and a well-defined precedence
// order.
//
// Configuration sources (in precedence order, highest to lowest):
//  1. Command-line flags
//  2. Environment variables
//  3. Configuration file
//  4. Built-in defaults
//
// The package supports YAML configuration files and provides automatic
// discovery of configuration in standard locations.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadConfig loads configuration from multiple sources and applies them in
// the correct precedence order. If configPath is provided, it loads from
// that specific file. Otherwise, it searches standard locations:
//   - .gaia-stars.yaml (current directory)
//   - .gaia-stars.yml (current directory)
//   - ~/.config/gaia-stars/config.yaml
//   - ~/.config/gaia-stars/config.yml
//
// Environment variables are applied after loading the config file, allowing
// runtime overrides. Path expansion (~ and environment variables) is
// performed on the spool directory.
//
// Returns an error if the specified config file cannot be loaded, but will
// succeed with defaults if no config file is found in standard locations.
func LoadConfig(configPath string) (*Config, error) {
	// Start with defaults
	cfg := DefaultConfig()

	// Try to load config file if path is provided
	if configPath != "" {
		if err := loadConfigFile(configPath, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	} else {
		// Try default locations
		defaultPaths := []string{
			".gaia-stars.yaml",
			".gaia-stars.yml",
			filepath.Join(os.Getenv("HOME"), ".config", "gaia-stars", "config.yaml"),
			filepath.Join(os.Getenv("HOME"), ".config", "gaia-stars", "config.yml"),
		}

		for _, path := range defaultPaths {
			if _, err := os.Stat(path); err == nil {
				if err := loadConfigFile(path, cfg); err != nil {
					return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
				}
				break
			}
		}
	}

	// Apply environment variable overrides
	applyEnvOverrides(cfg)

	// Expand paths
	cfg.Defaults.SpoolDir = expandPath(cfg.Defaults.SpoolDir)

	return cfg, nil
}

// loadConfigFile reads and parses a YAML config file
func loadConfigFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(cfg *Config) {
	// Archive endpoints
	if url := os.Getenv("GAIA_ARCHIVE_URL"); url != "" {
		cfg.Archive.IndexURL = url
	}
	if url := os.Getenv("GAIA_CROSSMATCH_URL"); url != "" {
		cfg.Archive.CrossmatchURL = url
	}

	// Defaults
	if spoolDir := os.Getenv("GAIA_STARS_SPOOL_DIR"); spoolDir != "" {
		cfg.Defaults.SpoolDir = spoolDir
	}

	// Fetch settings
	if retries := os.Getenv("GAIA_STARS_MAX_RETRIES"); retries != "" {
		if n, err := strconv.Atoi(retries); err == nil && n >= 0 {
			cfg.Fetch.MaxRetries = n
		}
	}
	if rps := os.Getenv("GAIA_STARS_RPS"); rps != "" {
		if f, err := strconv.ParseFloat(rps, 64); err == nil && f > 0 {
			cfg.Fetch.RequestsPerSecond = f
		}
	}
}

// expandPath expands ~ and environment variables in paths
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home := os.Getenv("HOME")
		if home == "" {
			home = os.Getenv("USERPROFILE") // Windows
		}
		path = filepath.Join(home, path[2:])
	}
	return os.ExpandEnv(path)
}

// starCountPresets are the published sizes of the generated catalogues.
// They match the download variants offered by the csp-stars plugin.
var starCountPresets = map[string]int{
	"1m":   1_000_000,
	"2.5m": 2_500_000,
	"5m":   5_000_000,
	"10m":  10_000_000,
	"50m":  50_000_000,
}

// ParseStarCount converts a target-count spelling into a row count. It
// accepts the presets 1m, 2.5m, 5m, 10m, 50m (case-insensitive) as well as
// plain positive integers.
func ParseStarCount(s string) (int, error) {
	spelled := strings.ToLower(strings.TrimSpace(s))
	if n, ok := starCountPresets[spelled]; ok {
		return n, nil
	}

	n, err := strconv.Atoi(spelled)
	if err != nil {
		return 0, fmt.Errorf("invalid star count %q: expected 1m, 2.5m, 5m, 10m, 50m or a positive integer", s)
	}
	if n <= 0 {
		return 0, fmt.Errorf("star count must be positive, got: %d", n)
	}
	return n, nil
}

// Validate checks if the configuration contains valid values. This should
// be called after loading configuration to catch invalid settings early.
func (c *Config) Validate() error {
	if c.Archive.IndexURL == "" {
		return fmt.Errorf("archive index URL cannot be empty")
	}
	if _, err := ParseStarCount(c.Defaults.Stars); err != nil {
		return err
	}
	if c.Defaults.Output == "" {
		return fmt.Errorf("output path cannot be empty")
	}
	if c.Fetch.MaxRetries < 0 {
		return fmt.Errorf("max retries must not be negative, got: %d", c.Fetch.MaxRetries)
	}
	if c.Fetch.RequestsPerSecond <= 0 {
		return fmt.Errorf("requests per second must be positive, got: %g", c.Fetch.RequestsPerSecond)
	}
	if c.Fetch.ChunkLimit < 0 {
		return fmt.Errorf("chunk limit must not be negative, got: %d", c.Fetch.ChunkLimit)
	}
	if c.Quality.MaxSchemaDropRate < 0 || c.Quality.MaxSchemaDropRate > 1 {
		return fmt.Errorf("max schema drop rate must be between 0 and 1, got: %g", c.Quality.MaxSchemaDropRate)
	}
	return nil
}
