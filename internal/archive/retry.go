// This file is part of the CosmoScout VR ecosystem.
//
// SPDX-FileCopyrightText: German Aerospace Center (DLR) <cosmoscout@dlr.de>
// SPDX-License-Identifier: MIT

package archive

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"time"

	gaiaerrors "github.com/cosmoscout/gaia-stars/internal/errors"
	"github.com/cosmoscout/gaia-stars/internal/neterror"
)

// RetryConfig configures the retry behavior for archive requests
type RetryConfig struct {
	// MaxRetries is the maximum number of retry attempts
	MaxRetries int
	// InitialBackoff is the initial backoff duration
	InitialBackoff time.Duration
	// MaxBackoff is the maximum backoff duration
	MaxBackoff time.Duration
	// BackoffMultiplier is the multiplier for exponential backoff
	BackoffMultiplier float64
}

// DefaultRetryConfig returns the default retry configuration
func DefaultRetryConfig() *RetryConfig {
	return &RetryConfig{
		MaxRetries:        3,
		InitialBackoff:    1 * time.Second,
		MaxBackoff:        30 * time.Second,
		BackoffMultiplier: 2.0,
	}
}

// RetryClient wraps an archive client with automatic retry logic for
// transient network and server errors using exponential backoff. Retries
// always re-fetch the whole chunk: the decompressed stream cannot be
// restarted mid-chunk.
type RetryClient struct {
	client    Client
	config    *RetryConfig
	inspector neterror.Inspector
}

// NewRetryClient creates a new RetryClient with the given configuration
func NewRetryClient(client Client, config *RetryConfig) Client {
	if config == nil {
		config = DefaultRetryConfig()
	}
	return &RetryClient{
		client:    client,
		config:    config,
		inspector: neterror.NewInspector(),
	}
}

// ListChunks implements the Client interface with retry logic
func (r *RetryClient) ListChunks(ctx context.Context) ([]Chunk, error) {
	var chunks []Chunk
	err := r.do(ctx, "archive index", func() error {
		var fetchErr error
		chunks, fetchErr = r.client.ListChunks(ctx)
		return fetchErr
	})
	if err != nil {
		return nil, err
	}
	return chunks, nil
}

// FetchChunk implements the Client interface with retry logic
func (r *RetryClient) FetchChunk(ctx context.Context, chunk Chunk) (io.ReadCloser, error) {
	var stream io.ReadCloser
	err := r.do(ctx, chunk.Name, func() error {
		var fetchErr error
		stream, fetchErr = r.client.FetchChunk(ctx, chunk)
		return fetchErr
	})
	if err != nil {
		return nil, err
	}
	return stream, nil
}

// do runs one request with retries. Exhausting the retry budget wraps the
// last error in ErrFetchFailed, which aborts the whole run.
func (r *RetryClient) do(ctx context.Context, what string, fn func() error) error {
	var lastErr error

	for attempt := 0; attempt <= r.config.MaxRetries; attempt++ {
		err := fn()
		if err == nil {
			return nil
		}

		lastErr = err

		// Don't retry on non-retryable errors
		if !r.inspector.IsRetryable(err) {
			return err
		}

		// Don't retry if context is cancelled
		if ctx.Err() != nil {
			return ctx.Err()
		}

		if attempt == r.config.MaxRetries {
			break
		}

		backoff := r.calculateBackoff(attempt)
		fmt.Fprintf(os.Stderr, "\n⚠️  Fetch of %s failed. Retrying in %v (attempt %d/%d)...\n",
			what, backoff.Round(time.Millisecond), attempt+1, r.config.MaxRetries)

		// Wait with context cancellation support
		select {
		case <-time.After(backoff):
			// Continue to next retry
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	return fmt.Errorf("%s failed after %d retries: %v: %w",
		what, r.config.MaxRetries, lastErr, gaiaerrors.ErrFetchFailed)
}

// calculateBackoff calculates the backoff duration for the given attempt
func (r *RetryClient) calculateBackoff(attempt int) time.Duration {
	// Calculate exponential backoff
	backoff := float64(r.config.InitialBackoff) * math.Pow(r.config.BackoffMultiplier, float64(attempt))

	// Apply max backoff limit
	if backoff > float64(r.config.MaxBackoff) {
		backoff = float64(r.config.MaxBackoff)
	}

	// Add jitter (±10%) to prevent thundering herd
	jitter := backoff * 0.1 * (2*float64(time.Now().UnixNano()%100)/100 - 1)
	backoff += jitter

	return time.Duration(backoff)
}
