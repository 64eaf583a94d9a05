// This file is part of the CosmoScout VR ecosystem.
//
// SPDX-FileCopyrightText: German Aerospace Center (DLR) <cosmoscout@dlr.de>
// SPDX-License-Identifier: MIT

// Package neterror classifies errors returned by the archive transport so the
// retry layer can decide whether re-fetching a chunk makes sense.
package neterror

import (
	"errors"
	"strings"

	gaiaerrors "github.com/cosmoscout/gaia-stars/internal/errors"
)

// Inspector provides methods for analyzing archive transport errors.
type Inspector interface {
	// IsNetworkError returns true if the error represents a network connectivity error.
	IsNetworkError(err error) bool

	// IsNotFoundError returns true if the error represents a resource not found error.
	IsNotFoundError(err error) bool

	// IsServerError returns true if the error represents a transient server-side failure.
	IsServerError(err error) bool

	// IsRetryable returns true if re-attempting the failed request may succeed.
	IsRetryable(err error) bool
}

// ArchiveErrorInspector implements the Inspector interface for errors
// produced while talking to the Gaia CDN mirror.
type ArchiveErrorInspector struct{}

// NewInspector creates a new ArchiveErrorInspector.
func NewInspector() Inspector {
	return &ArchiveErrorInspector{}
}

// IsNetworkError checks if the error is a network connectivity error.
func (i *ArchiveErrorInspector) IsNetworkError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gaiaerrors.ErrNetworkFailure) {
		return true
	}
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "connection reset") ||
		strings.Contains(errStr, "no such host") ||
		strings.Contains(errStr, "timeout") ||
		strings.Contains(errStr, "temporary failure") ||
		strings.Contains(errStr, "dial tcp") ||
		strings.Contains(errStr, "tls handshake") ||
		strings.Contains(errStr, "unexpected eof") ||
		strings.Contains(errStr, "network is unreachable")
}

// IsNotFoundError checks if the error is a not found error.
func (i *ArchiveErrorInspector) IsNotFoundError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gaiaerrors.ErrChunkNotFound) {
		return true
	}
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "404") ||
		strings.Contains(errStr, "not found")
}

// IsServerError checks if the error is a transient server-side failure.
func (i *ArchiveErrorInspector) IsServerError(err error) bool {
	if err == nil {
		return false
	}
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "429") ||
		strings.Contains(errStr, "502") ||
		strings.Contains(errStr, "503") ||
		strings.Contains(errStr, "504") ||
		strings.Contains(errStr, "bad gateway") ||
		strings.Contains(errStr, "service unavailable") ||
		strings.Contains(errStr, "gateway timeout")
}

// IsRetryable returns true for network and transient server errors.
// Not-found and other client-side errors are never retried.
func (i *ArchiveErrorInspector) IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if i.IsNotFoundError(err) {
		return false
	}
	return i.IsNetworkError(err) || i.IsServerError(err)
}
