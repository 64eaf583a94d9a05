// This file is part of the CosmoScout VR ecosystem.
//
// SPDX-FileCopyrightText: German Aerospace Center (DLR) <cosmoscout@dlr.de>
// SPDX-License-Identifier: MIT

// Package archive provides a client for the ESA Gaia CDN mirror. The mirror
// is a plain HTTPS file server: a directory index page links to a few
// thousand gzipped CSV chunks that together hold the full catalogue.
//
// The package includes:
//   - A Client interface for listing and fetching catalogue chunks
//   - An HTTP implementation with request pacing and spooled downloads
//   - A RetryClient decorator adding exponential backoff for whole chunks
//   - A mock client for testing
//
// Basic usage:
//
//	client := archive.NewRetryClient(archive.NewHTTPClient(archive.ClientConfig{
//	    IndexURL: config.DefaultIndexURL,
//	}), nil)
//	chunks, err := client.ListChunks(ctx)
//	if err != nil {
//	    // Handle error
//	}
//	for _, chunk := range chunks {
//	    rc, err := client.FetchChunk(ctx, chunk)
//	    // Parse the decompressed stream, then rc.Close()
//	}
package archive
