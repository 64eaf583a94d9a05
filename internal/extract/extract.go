// This file is part of the CosmoScout VR ecosystem.
//
// SPDX-FileCopyrightText: German Aerospace Center (DLR) <cosmoscout@dlr.de>
// SPDX-License-Identifier: MIT

// Package extract runs the fetch-filter-export pipeline: it walks the
// catalogue chunks, feeds every valid row through the bounded top-K
// selector, and writes the surviving stars as the final CSV.
package extract

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/cheggaaa/pb/v3"
	"golang.org/x/sync/errgroup"

	"github.com/cosmoscout/gaia-stars/internal/archive"
	"github.com/cosmoscout/gaia-stars/internal/catalog"
	"github.com/cosmoscout/gaia-stars/internal/crossmatch"
	gaiaerrors "github.com/cosmoscout/gaia-stars/internal/errors"
	"github.com/cosmoscout/gaia-stars/internal/output"
	"github.com/cosmoscout/gaia-stars/internal/selection"
)

// minRowsForSchemaCheck is the number of rows a chunk must contain before
// its schema drop rate is compared against the threshold, so a handful of
// bad rows in a tiny chunk cannot abort a run.
const minRowsForSchemaCheck = 1000

// Options configures one extraction run.
type Options struct {
	// TargetCount is the number of brightest stars to keep.
	TargetCount int

	// ChunkLimit stops after this many chunks; zero means all.
	ChunkLimit int

	// Crossmatch enables Hipparcos-2 cross-matching.
	Crossmatch bool

	// Progress enables the stderr progress bar.
	Progress bool

	// MaxSchemaDropRate aborts the run when a chunk drops a larger
	// fraction of its rows for schema violations.
	MaxSchemaDropRate float64
}

// Summary reports what one extraction run did.
type Summary struct {
	Chunks       int
	RowsScanned  int64
	RowsSkipped  int64
	SchemaDrops  int64
	RowsWritten  int
	CrossMatched int
	Elapsed      time.Duration
}

// Extractor wires an archive client to an output writer.
type Extractor struct {
	client        archive.Client
	crossmatchURL string
	opts          Options
}

// New creates an Extractor. The crossmatchURL may be empty, which disables
// cross-matching regardless of the option.
func New(client archive.Client, crossmatchURL string, opts Options) *Extractor {
	return &Extractor{
		client:        client,
		crossmatchURL: crossmatchURL,
		opts:          opts,
	}
}

// Run executes the pipeline and writes the result through w. The caller
// owns w: on success it must Close, on error discard. Nothing is written to
// w until all input has been consumed, so a fetch failure never produces a
// partial row set.
func (e *Extractor) Run(ctx context.Context, w output.StarWriter) (*Summary, error) {
	startTime := time.Now()

	chunks, err := e.client.ListChunks(ctx)
	if err != nil {
		return nil, err
	}
	if e.opts.ChunkLimit > 0 && len(chunks) > e.opts.ChunkLimit {
		chunks = chunks[:e.opts.ChunkLimit]
	}

	table := e.loadCrossmatch(ctx)

	summary := &Summary{Chunks: len(chunks)}
	topK := selection.New(e.opts.TargetCount)

	var bar *pb.ProgressBar
	if e.opts.Progress {
		bar = pb.Full.Start(len(chunks))
		bar.Set("prefix", "chunks ")
		bar.Set(pb.CleanOnFinish, true)
	}

	// Two-stage pipeline: the fetch goroutine downloads one chunk ahead
	// through a capacity-1 channel while this chunk is being parsed. The
	// selector stays owned by the parse stage alone.
	g, gctx := errgroup.WithContext(ctx)
	fetched := make(chan fetchedChunk, 1)

	g.Go(func() error {
		defer close(fetched)
		for _, chunk := range chunks {
			stream, fetchErr := e.client.FetchChunk(gctx, chunk)
			if fetchErr != nil {
				return fetchErr
			}
			select {
			case fetched <- fetchedChunk{chunk: chunk, stream: stream}:
			case <-gctx.Done():
				stream.Close()
				return gctx.Err()
			}
		}
		return nil
	})

	g.Go(func() error {
		for fc := range fetched {
			parseErr := e.consumeChunk(fc, topK, summary)
			fc.stream.Close()
			if parseErr != nil {
				return parseErr
			}
			if bar != nil {
				bar.Increment()
			}
		}
		return nil
	})

	err = g.Wait()
	if bar != nil {
		bar.Finish()
	}
	if err != nil {
		return nil, err
	}

	if err := e.writeStars(topK, table, w, summary); err != nil {
		return nil, err
	}

	summary.Elapsed = time.Since(startTime)
	return summary, nil
}

// fetchedChunk pairs a chunk with its decompressed stream.
type fetchedChunk struct {
	chunk  archive.Chunk
	stream io.ReadCloser
}

// consumeChunk feeds every valid row of one chunk into the selector and
// applies the per-chunk schema sanity check.
func (e *Extractor) consumeChunk(fc fetchedChunk, topK *selection.TopK, summary *Summary) error {
	parser := catalog.NewParser(fc.chunk.Name, fc.stream)

	for {
		star, err := parser.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return err
		}
		topK.Offer(star)
	}

	stats := parser.Stats()
	summary.RowsScanned += int64(stats.Rows)
	summary.RowsSkipped += int64(stats.Skipped)
	summary.SchemaDrops += int64(stats.SchemaDrops)

	if stats.Rows >= minRowsForSchemaCheck && stats.SchemaDropRate() > e.opts.MaxSchemaDropRate {
		return fmt.Errorf("chunk %s dropped %.2f%% of %d rows (threshold %.2f%%): %w",
			fc.chunk.Name, stats.SchemaDropRate()*100, stats.Rows,
			e.opts.MaxSchemaDropRate*100, gaiaerrors.ErrBadSchema)
	}
	return nil
}

// loadCrossmatch fetches and parses the best-neighbour table. Failure is
// not fatal: the run continues without hipparcos_id values, matching the
// behavior when the table is disabled.
func (e *Extractor) loadCrossmatch(ctx context.Context) *crossmatch.Table {
	if !e.opts.Crossmatch || e.crossmatchURL == "" {
		return nil
	}

	stream, err := e.client.FetchChunk(ctx, archive.Chunk{
		Name: "Hipparcos2BestNeighbour.csv.gz",
		URL:  e.crossmatchURL,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: cross-match table unavailable, hipparcos_id will be empty: %v\n", err)
		return nil
	}
	defer stream.Close()

	table, err := crossmatch.Load(stream)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: cross-match table unreadable, hipparcos_id will be empty: %v\n", err)
		return nil
	}
	return table
}

// writeStars drains the selector and emits the final rows, brightest first.
// Cross-match lookups happen here so only the kept rows pay for them.
func (e *Extractor) writeStars(topK *selection.TopK, table *crossmatch.Table, w output.StarWriter, summary *Summary) error {
	stars := topK.Drain()

	if err := w.WriteHeader(); err != nil {
		return err
	}
	for _, star := range stars {
		if table != nil {
			if hipID, ok := table.Lookup(star.SourceID); ok {
				star.HipparcosID = strconv.FormatInt(hipID, 10)
				summary.CrossMatched++
			}
		}
		if err := w.Write(star); err != nil {
			return err
		}
	}

	summary.RowsWritten = len(stars)
	return nil
}
