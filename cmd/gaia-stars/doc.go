// This file is part of the CosmoScout VR ecosystem.
//
// SPDX-FileCopyrightText: German Aerospace Center (DLR) <cosmoscout@dlr.de>
// SPDX-License-Identifier: MIT

// Package main implements the gaia-stars command-line interface.
// This tool downloads the Gaia DR3 star catalogue, filters it to the
// brightest stars by G-band mean magnitude, and writes a pipe-delimited
// CSV for the CosmoScout VR csp-stars plugin.
//
// The CLI supports:
//   - The published target sizes 1m, 2.5m, 5m, 10m and 50m, or any integer
//   - Optional Hipparcos-2 cross-matching for the hipparcos_id column
//   - Configuration via flags, environment variables or a YAML file
//   - Graceful error handling with appropriate exit codes
//
// Usage:
//
//	gaia-stars extract [flags]
//
// Example:
//
//	gaia-stars extract --stars 5m --output gaia_brightest_stars.csv
//
// Exit codes:
//   - 0: Success
//   - 1: General error
//   - 2: Output write error
//   - 3: Archive/network error
//   - 4: Catalogue schema sanity error
package main
