// This file is part of the CosmoScout VR ecosystem.
//
// SPDX-FileCopyrightText: German Aerospace Center (DLR) <cosmoscout@dlr.de>
// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	gaiaerrors "github.com/cosmoscout/gaia-stars/internal/errors"
)

var version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:   "gaia-stars",
		Short: "Extract the brightest stars from the Gaia DR3 catalogue",
		Long: `gaia-stars downloads the Gaia Data Release 3 star catalogue from the ESA
CDN mirror, selects the N brightest stars by G-band mean magnitude, and
writes a pipe-delimited CSV for the CosmoScout VR csp-stars plugin. Memory
stays bounded by the target star count, so the full catalogue of well over
a billion sources can be processed on a workstation.`,
		Version:       version,
		SilenceUsage:  true, // Don't show usage on error
		SilenceErrors: true, // We'll handle error printing ourselves
	}

	rootCmd.AddCommand(newExtractCommand())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(mapErrorToExitCode(err))
	}
}

// mapErrorToExitCode maps internal errors to appropriate exit codes
func mapErrorToExitCode(err error) int {
	if err == nil {
		return 0
	}

	if errors.Is(err, gaiaerrors.ErrWriteFailed) {
		return 2 // Output errors
	}

	if errors.Is(err, gaiaerrors.ErrFetchFailed) ||
		errors.Is(err, gaiaerrors.ErrNetworkFailure) ||
		errors.Is(err, gaiaerrors.ErrChunkNotFound) {
		return 3 // Archive/network errors
	}

	if errors.Is(err, gaiaerrors.ErrBadSchema) {
		return 4 // Catalogue sanity errors
	}

	return 1 // General error
}
