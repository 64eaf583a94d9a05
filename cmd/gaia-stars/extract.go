// This file is part of the CosmoScout VR ecosystem.
//
// SPDX-FileCopyrightText: German Aerospace Center (DLR) <cosmoscout@dlr.de>
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/cosmoscout/gaia-stars/internal/archive"
	"github.com/cosmoscout/gaia-stars/internal/config"
	"github.com/cosmoscout/gaia-stars/internal/extract"
	"github.com/cosmoscout/gaia-stars/internal/output"
)

// extractFlags holds the command-line values of the extract command. Empty
// string and negative int values mean "not set", deferring to config.
type extractFlags struct {
	stars        string
	outputFile   string
	configFile   string
	chunkLimit   int
	spoolDir     string
	noCrossmatch bool
	quiet        bool
}

// newExtractCommand builds the extract subcommand.
func newExtractCommand() *cobra.Command {
	var flags extractFlags

	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Download the catalogue and write the brightest-stars CSV",
		Long: `Download the Gaia DR3 catalogue chunk by chunk, keep the N brightest
stars by G-band mean magnitude, and write them as pipe-delimited CSV.

The target count accepts the published preset sizes 1m, 2.5m, 5m, 10m and
50m, or any plain positive integer. Stars without a defined magnitude are
ignored and never count toward the target.

When the Hipparcos-2 best-neighbour table is reachable, matching stars get
their hipparcos_id filled in; otherwise the column stays empty.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(cmd.Context(), flags)
		},
	}

	cmd.Flags().StringVar(&flags.stars, "stars", "", "Target star count: 1m, 2.5m, 5m, 10m, 50m or an integer")
	cmd.Flags().StringVar(&flags.outputFile, "output", "", "Output CSV path")
	cmd.Flags().StringVar(&flags.configFile, "config", "", "Config file path (default: .gaia-stars.yaml)")
	cmd.Flags().IntVar(&flags.chunkLimit, "chunks", -1, "Stop after this many chunks (0 = all)")
	cmd.Flags().StringVar(&flags.spoolDir, "spool-dir", "", "Directory for spooled chunk downloads")
	cmd.Flags().BoolVar(&flags.noCrossmatch, "no-crossmatch", false, "Skip Hipparcos-2 cross-matching")
	cmd.Flags().BoolVar(&flags.quiet, "quiet", false, "Suppress progress output")

	return cmd
}

// runExtract resolves configuration, wires the pipeline and runs it.
func runExtract(ctx context.Context, flags extractFlags) error {
	cfg, err := config.LoadConfig(flags.configFile)
	if err != nil {
		return err
	}

	// Flags take precedence over config and environment.
	if flags.stars != "" {
		cfg.Defaults.Stars = flags.stars
	}
	if flags.outputFile != "" {
		cfg.Defaults.Output = flags.outputFile
	}
	if flags.spoolDir != "" {
		cfg.Defaults.SpoolDir = flags.spoolDir
	}
	if flags.chunkLimit >= 0 {
		cfg.Fetch.ChunkLimit = flags.chunkLimit
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	targetCount, err := config.ParseStarCount(cfg.Defaults.Stars)
	if err != nil {
		return err
	}

	retryConfig := archive.DefaultRetryConfig()
	retryConfig.MaxRetries = cfg.Fetch.MaxRetries

	client := archive.NewRetryClient(archive.NewHTTPClient(archive.ClientConfig{
		IndexURL:          cfg.Archive.IndexURL,
		SpoolDir:          cfg.Defaults.SpoolDir,
		RequestsPerSecond: cfg.Fetch.RequestsPerSecond,
		UserAgent:         "gaia-stars/" + version,
	}), retryConfig)

	writer, err := output.NewFileWriter(cfg.Defaults.Output)
	if err != nil {
		return err
	}

	extractor := extract.New(client, cfg.Archive.CrossmatchURL, extract.Options{
		TargetCount:       targetCount,
		ChunkLimit:        cfg.Fetch.ChunkLimit,
		Crossmatch:        !flags.noCrossmatch,
		Progress:          !flags.quiet,
		MaxSchemaDropRate: cfg.Quality.MaxSchemaDropRate,
	})

	summary, err := extractor.Run(ctx, writer)
	if err != nil {
		// Discard the temp file so no partial catalogue survives the run.
		writer.Abort()
		return err
	}
	if err := writer.Close(); err != nil {
		writer.Abort()
		return err
	}

	if !flags.quiet {
		printSummary(cfg.Defaults.Output, summary)
	}
	return nil
}

// printSummary reports the run result on stderr, keeping stdout clean.
func printSummary(path string, summary *extract.Summary) {
	fmt.Fprintf(os.Stderr, "Wrote %s stars to %s (scanned %s rows in %d chunks, %s)\n",
		humanize.Comma(int64(summary.RowsWritten)), path,
		humanize.Comma(summary.RowsScanned), summary.Chunks,
		summary.Elapsed.Round(time.Second))
	if summary.CrossMatched > 0 {
		fmt.Fprintf(os.Stderr, "Cross-matched %s stars against Hipparcos-2\n",
			humanize.Comma(int64(summary.CrossMatched)))
	}
	if summary.SchemaDrops > 0 {
		fmt.Fprintf(os.Stderr, "Dropped %s rows with schema violations\n",
			humanize.Comma(summary.SchemaDrops))
	}
}
