// This file is part of the CosmoScout VR ecosystem.
//
// SPDX-FileCopyrightText: German Aerospace Center (DLR) <cosmoscout@dlr.de>
// SPDX-License-Identifier: MIT

// Package config types define the configuration structures used throughout
// gaia-stars. These types represent settings that can be loaded from YAML
// configuration files, environment variables, or command-line flags.
package config

// Config represents the complete configuration for gaia-stars.
// It consolidates settings from various sources and provides a unified
// interface for accessing configuration values throughout the application.
type Config struct {
	Archive  ArchiveConfig  `yaml:"archive"`
	Defaults DefaultsConfig `yaml:"defaults"`
	Fetch    FetchConfig    `yaml:"fetch"`
	Quality  QualityConfig  `yaml:"quality"`
}

// ArchiveConfig contains the remote endpoints of the ESA Gaia CDN mirror.
// Overriding these allows extraction from a local or alternative mirror.
type ArchiveConfig struct {
	// IndexURL is the directory index listing the gzipped catalogue chunks.
	IndexURL string `yaml:"index_url"`

	// CrossmatchURL is the gzipped Hipparcos-2 best-neighbour table used to
	// resolve hipparcos_id values. Leave empty to disable cross-matching.
	CrossmatchURL string `yaml:"crossmatch_url"`
}

// DefaultsConfig contains default values for settings that are usually
// given on the command line.
type DefaultsConfig struct {
	// Stars is the target star count: one of the presets 1m, 2.5m, 5m, 10m,
	// 50m, or a plain integer.
	Stars string `yaml:"stars"`

	// Output is the path of the generated CSV file.
	Output string `yaml:"output"`

	// SpoolDir is where downloaded chunks are spooled before parsing.
	// Empty means the system temp directory.
	SpoolDir string `yaml:"spool_dir"`
}

// FetchConfig controls the download behavior of the archive client.
type FetchConfig struct {
	// MaxRetries is the number of re-attempts for a failed chunk download.
	MaxRetries int `yaml:"max_retries"`

	// RequestsPerSecond caps the request rate against the CDN.
	RequestsPerSecond float64 `yaml:"requests_per_second"`

	// ChunkLimit stops the run after this many chunks. Zero parses the
	// whole catalogue; a small value is useful for smoke-testing a mirror.
	ChunkLimit int `yaml:"chunk_limit"`
}

// QualityConfig contains sanity thresholds applied while parsing.
type QualityConfig struct {
	// MaxSchemaDropRate is the per-chunk fraction of rows that may be
	// dropped for missing required fields before the run is aborted.
	MaxSchemaDropRate float64 `yaml:"max_schema_drop_rate"`
}

// Default endpoints of the ESA Gaia Data Release 3 mirror.
const (
	DefaultIndexURL      = "https://cdn.gea.esac.esa.int/Gaia/gdr3/gaia_source"
	DefaultCrossmatchURL = "https://cdn.gea.esac.esa.int/Gaia/gedr3/cross_match/hipparcos2_best_neighbour/Hipparcos2BestNeighbour.csv.gz"
)

// DefaultConfig returns the built-in defaults, the lowest layer of the
// precedence order.
func DefaultConfig() *Config {
	return &Config{
		Archive: ArchiveConfig{
			IndexURL:      DefaultIndexURL,
			CrossmatchURL: DefaultCrossmatchURL,
		},
		Defaults: DefaultsConfig{
			Stars:  "5m",
			Output: "gaia_brightest_stars.csv",
		},
		Fetch: FetchConfig{
			MaxRetries:        3,
			RequestsPerSecond: 4,
		},
		Quality: QualityConfig{
			MaxSchemaDropRate: 0.01,
		},
	}
}
