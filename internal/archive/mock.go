// This file is part of the CosmoScout VR ecosystem.
//
// SPDX-FileCopyrightText: German Aerospace Center (DLR) <cosmoscout@dlr.de>
// SPDX-License-Identifier: MIT

package archive

import (
	"context"
	"io"
	"strings"
)

// MockClient is a configurable mock implementation of the Client interface
// for testing. Unset function fields make the corresponding call a no-op
// success with zero values.
type MockClient struct {
	ListChunksFunc func(ctx context.Context) ([]Chunk, error)
	FetchChunkFunc func(ctx context.Context, chunk Chunk) (io.ReadCloser, error)

	// ListCalls and FetchCalls count invocations, useful for asserting
	// retry behavior.
	ListCalls  int
	FetchCalls int
}

// ListChunks implements the Client interface.
func (m *MockClient) ListChunks(ctx context.Context) ([]Chunk, error) {
	m.ListCalls++
	if m.ListChunksFunc != nil {
		return m.ListChunksFunc(ctx)
	}
	return nil, nil
}

// FetchChunk implements the Client interface.
func (m *MockClient) FetchChunk(ctx context.Context, chunk Chunk) (io.ReadCloser, error) {
	m.FetchCalls++
	if m.FetchChunkFunc != nil {
		return m.FetchChunkFunc(ctx, chunk)
	}
	return io.NopCloser(strings.NewReader("")), nil
}
