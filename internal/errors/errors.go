// This file is part of the CosmoScout VR ecosystem.
//
// SPDX-FileCopyrightText: German Aerospace Center (DLR) <cosmoscout@dlr.de>
// SPDX-License-Identifier: MIT

// Package errors defines sentinel errors for consistent error handling across the application.
// These errors map to specific exit codes in the CLI for proper scripting support.
package errors

import "errors"

// Sentinel errors for consistent error handling and exit code mapping
var (
	// ErrFetchFailed indicates the Gaia archive could not be fetched even
	// after the retry budget was exhausted. The run is aborted and no output
	// file is written. Maps to exit code 3.
	ErrFetchFailed = errors.New("gaia archive fetch failed")

	// ErrNetworkFailure indicates a transient network problem. Chunk fetches
	// failing with this error are retried with backoff.
	// Maps to exit code 3.
	ErrNetworkFailure = errors.New("network connection failed")

	// ErrChunkNotFound indicates a catalogue chunk or index page does not
	// exist on the archive mirror. Not retryable. Maps to exit code 3.
	ErrChunkNotFound = errors.New("catalogue chunk not found")

	// ErrWriteFailed indicates the output file could not be created or
	// written. Maps to exit code 2.
	ErrWriteFailed = errors.New("output write failed")

	// ErrBadSchema indicates the rate of rows dropped for missing required
	// fields exceeded the sanity threshold, which usually means the chunk
	// layout changed upstream. Maps to exit code 4.
	ErrBadSchema = errors.New("catalogue schema drop rate exceeded")
)
