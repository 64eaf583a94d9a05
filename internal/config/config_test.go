// This file is part of the CosmoScout VR ecosystem.
//
// SPDX-FileCopyrightText: German Aerospace Center (DLR) <cosmoscout@dlr.de>
// SPDX-License-Identifier: MIT

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Archive.IndexURL != DefaultIndexURL {
		t.Errorf("IndexURL = %q, want %q", cfg.Archive.IndexURL, DefaultIndexURL)
	}
	if cfg.Defaults.Stars != "5m" {
		t.Errorf("Stars = %q, want 5m", cfg.Defaults.Stars)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults must validate: %v", err)
	}
}

func TestLoadConfig_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	content := `archive:
  index_url: https://mirror.example.org/gaia/gdr3/gaia_source
defaults:
  stars: 1m
  output: out.csv
fetch:
  max_retries: 7
  requests_per_second: 2.5
quality:
  max_schema_drop_rate: 0.05
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Archive.IndexURL != "https://mirror.example.org/gaia/gdr3/gaia_source" {
		t.Errorf("IndexURL = %q", cfg.Archive.IndexURL)
	}
	if cfg.Defaults.Stars != "1m" {
		t.Errorf("Stars = %q, want 1m", cfg.Defaults.Stars)
	}
	if cfg.Fetch.MaxRetries != 7 {
		t.Errorf("MaxRetries = %d, want 7", cfg.Fetch.MaxRetries)
	}
	if cfg.Quality.MaxSchemaDropRate != 0.05 {
		t.Errorf("MaxSchemaDropRate = %g, want 0.05", cfg.Quality.MaxSchemaDropRate)
	}
	// Unset fields keep defaults.
	if cfg.Archive.CrossmatchURL != DefaultCrossmatchURL {
		t.Errorf("CrossmatchURL = %q, want default", cfg.Archive.CrossmatchURL)
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("explicit missing config file should fail")
	}
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("GAIA_ARCHIVE_URL", "https://env.example.org/gaia")
	t.Setenv("GAIA_STARS_MAX_RETRIES", "9")
	t.Setenv("GAIA_STARS_RPS", "0.5")

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Archive.IndexURL != "https://env.example.org/gaia" {
		t.Errorf("IndexURL = %q, env override not applied", cfg.Archive.IndexURL)
	}
	if cfg.Fetch.MaxRetries != 9 {
		t.Errorf("MaxRetries = %d, want 9", cfg.Fetch.MaxRetries)
	}
	if cfg.Fetch.RequestsPerSecond != 0.5 {
		t.Errorf("RequestsPerSecond = %g, want 0.5", cfg.Fetch.RequestsPerSecond)
	}
}

func TestLoadConfig_IgnoresBadEnvValues(t *testing.T) {
	t.Setenv("GAIA_STARS_MAX_RETRIES", "minus one")
	t.Setenv("GAIA_STARS_RPS", "-3")

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Fetch.MaxRetries != DefaultConfig().Fetch.MaxRetries {
		t.Errorf("bad env retries should keep default, got %d", cfg.Fetch.MaxRetries)
	}
	if cfg.Fetch.RequestsPerSecond != DefaultConfig().Fetch.RequestsPerSecond {
		t.Errorf("negative env rps should keep default, got %g", cfg.Fetch.RequestsPerSecond)
	}
}

func TestParseStarCount(t *testing.T) {
	tests := []struct {
		input   string
		want    int
		wantErr bool
	}{
		{"1m", 1_000_000, false},
		{"2.5m", 2_500_000, false},
		{"5m", 5_000_000, false},
		{"10m", 10_000_000, false},
		{"50m", 50_000_000, false},
		{"5M", 5_000_000, false},
		{" 5m ", 5_000_000, false},
		{"42", 42, false},
		{"1000000", 1_000_000, false},
		{"0", 0, true},
		{"-5", 0, true},
		{"3m", 0, true},
		{"many", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseStarCount(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseStarCount(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseStarCount(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults are valid", func(c *Config) {}, false},
		{"empty index url", func(c *Config) { c.Archive.IndexURL = "" }, true},
		{"bad star count", func(c *Config) { c.Defaults.Stars = "a few" }, true},
		{"empty output", func(c *Config) { c.Defaults.Output = "" }, true},
		{"negative retries", func(c *Config) { c.Fetch.MaxRetries = -1 }, true},
		{"zero rps", func(c *Config) { c.Fetch.RequestsPerSecond = 0 }, true},
		{"negative chunk limit", func(c *Config) { c.Fetch.ChunkLimit = -1 }, true},
		{"drop rate above one", func(c *Config) { c.Quality.MaxSchemaDropRate = 1.5 }, true},
		{"drop rate below zero", func(c *Config) { c.Quality.MaxSchemaDropRate = -0.1 }, true},
		{"integer star count", func(c *Config) { c.Defaults.Stars = "123456" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
