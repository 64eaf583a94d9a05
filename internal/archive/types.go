// This file is part of the CosmoScout VR ecosystem.
//
// SPDX-FileCopyrightText: German Aerospace Center (DLR) <cosmoscout@dlr.de>
// SPDX-License-Identifier: MIT

package archive

import (
	"context"
	"io"
)

// Chunk identifies one gzipped CSV chunk of the catalogue.
type Chunk struct {
	// Name is the file name on the mirror, used in progress and diagnostics.
	Name string
	// URL is the absolute download location.
	URL string
}

// Client defines the interface for interacting with the Gaia archive mirror.
// This interface allows for easy mocking in tests.
type Client interface {
	// ListChunks discovers the compressed catalogue chunks by reading the
	// mirror's directory index. The returned order follows the index page
	// and is stable for a given mirror state.
	ListChunks(ctx context.Context) ([]Chunk, error)

	// FetchChunk downloads one chunk completely and returns a decompressed
	// stream over it. The stream is not restartable mid-chunk; a failed
	// chunk must be fetched again from the start. Closing the stream
	// releases the spooled download.
	FetchChunk(ctx context.Context, chunk Chunk) (io.ReadCloser, error)
}
