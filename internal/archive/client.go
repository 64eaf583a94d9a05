// This file is part of the CosmoScout VR ecosystem.
//
// SPDX-FileCopyrightText: German Aerospace Center (DLR) <cosmoscout@dlr.de>
// SPDX-License-Identifier: MIT

package archive

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/klauspost/compress/gzip"
	"golang.org/x/time/rate"

	gaiaerrors "github.com/cosmoscout/gaia-stars/internal/errors"
)

// defaultUserAgent identifies the tool to the mirror operators.
const defaultUserAgent = "gaia-stars/dev"

// ClientConfig configures the HTTP archive client.
type ClientConfig struct {
	// IndexURL is the directory index listing the catalogue chunks.
	IndexURL string

	// SpoolDir is where chunk downloads are spooled before decompression.
	// Empty means the system temp directory.
	SpoolDir string

	// RequestsPerSecond caps the request rate against the mirror.
	// Zero or negative disables pacing.
	RequestsPerSecond float64

	// UserAgent overrides the User-Agent header sent with every request.
	UserAgent string
}

// HTTPClient implements the Client interface against a plain HTTPS file
// mirror. Each chunk is downloaded in full to a spool file before a
// decompressed stream over it is handed out, so a download failure is
// detected before any row of the chunk is parsed.
type HTTPClient struct {
	httpClient *http.Client
	indexURL   string
	spoolDir   string
	limiter    *rate.Limiter
}

// NewHTTPClient creates an archive client for the configured mirror. The
// client is configured with:
//   - A User-Agent header on every request for mirror operator compliance
//   - Client-side request pacing to stay polite against the public CDN
//   - Connection pooling sized for a single sequential download pipeline
func NewHTTPClient(cfg ClientConfig) *HTTPClient {
	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}

	transport := &http.Transport{
		MaxIdleConns:        4,
		MaxIdleConnsPerHost: 4,
		IdleConnTimeout:     90 * time.Second,
		ForceAttemptHTTP2:   true,
	}

	var limiter *rate.Limiter
	if cfg.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1)
	}

	return &HTTPClient{
		httpClient: &http.Client{
			Transport: &userAgentTransport{
				userAgent: userAgent,
				base:      transport,
			},
		},
		indexURL: cfg.IndexURL,
		spoolDir: cfg.SpoolDir,
		limiter:  limiter,
	}
}

// ListChunks fetches the directory index and extracts the chunk links.
func (c *HTTPClient) ListChunks(ctx context.Context) ([]Chunk, error) {
	resp, err := c.get(ctx, c.indexURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	chunks, err := parseIndex(c.indexURL, resp.Body)
	if err != nil {
		return nil, err
	}
	return chunks, nil
}

// FetchChunk downloads one chunk to a spool file and returns a gzip stream
// over it. The spool file is removed when the stream is closed.
func (c *HTTPClient) FetchChunk(ctx context.Context, chunk Chunk) (io.ReadCloser, error) {
	resp, err := c.get(ctx, chunk.URL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	spool, err := os.CreateTemp(c.spoolDir, "gaia-chunk-*.csv.gz")
	if err != nil {
		return nil, fmt.Errorf("failed to create spool file: %w", err)
	}

	if _, err := io.Copy(spool, resp.Body); err != nil {
		spool.Close()
		os.Remove(spool.Name())
		return nil, fmt.Errorf("download of %s interrupted: %v: %w",
			chunk.Name, err, gaiaerrors.ErrNetworkFailure)
	}

	if _, err := spool.Seek(0, io.SeekStart); err != nil {
		spool.Close()
		os.Remove(spool.Name())
		return nil, fmt.Errorf("failed to rewind spool file: %w", err)
	}

	gz, err := gzip.NewReader(spool)
	if err != nil {
		spool.Close()
		os.Remove(spool.Name())
		// A truncated or garbled download presents as a bad gzip header.
		return nil, fmt.Errorf("chunk %s is not valid gzip: %v: %w",
			chunk.Name, err, gaiaerrors.ErrNetworkFailure)
	}

	return &chunkStream{gz: gz, spool: spool}, nil
}

// get performs one paced request and maps non-success statuses to the
// sentinel error classes.
func (c *HTTPClient) get(ctx context.Context, url string) (*http.Response, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid request for %s: %w", url, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request to %s failed: %v: %w", url, err, gaiaerrors.ErrNetworkFailure)
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, statusError(url, resp.StatusCode)
	}
	return resp, nil
}

// statusError converts an HTTP status into the matching sentinel error.
func statusError(url string, code int) error {
	switch {
	case code == http.StatusNotFound:
		return fmt.Errorf("%s returned status 404: %w", url, gaiaerrors.ErrChunkNotFound)
	case code == http.StatusTooManyRequests || code >= 500:
		return fmt.Errorf("%s returned status %d: %w", url, code, gaiaerrors.ErrNetworkFailure)
	default:
		return fmt.Errorf("%s returned unexpected status %d", url, code)
	}
}

// chunkStream decompresses a spooled chunk and cleans up the spool file on
// Close.
type chunkStream struct {
	gz    *gzip.Reader
	spool *os.File
}

func (s *chunkStream) Read(p []byte) (int, error) {
	return s.gz.Read(p)
}

func (s *chunkStream) Close() error {
	gzErr := s.gz.Close()
	closeErr := s.spool.Close()
	removeErr := os.Remove(s.spool.Name())

	if gzErr != nil {
		return gzErr
	}
	if closeErr != nil {
		return closeErr
	}
	return removeErr
}

// userAgentTransport stamps the User-Agent header on every request.
type userAgentTransport struct {
	userAgent string
	base      http.RoundTripper
}

// RoundTrip implements http.RoundTripper.
func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req.Header.Set("User-Agent", t.userAgent)
	return t.base.RoundTrip(req)
}
