// This file is part of the CosmoScout VR ecosystem.
//
// SPDX-FileCopyrightText: German Aerospace Center (DLR) <cosmoscout@dlr.de>
// SPDX-License-Identifier: MIT

package catalog

import (
	"errors"
	"io"
	"strings"
	"testing"

	gaiaerrors "github.com/cosmoscout/gaia-stars/internal/errors"
)

// chunk builds a minimal Gaia chunk: ECSV comment preamble, header, rows.
func chunk(header string, rows ...string) string {
	var b strings.Builder
	b.WriteString("# Gaia DR3 test chunk\n")
	b.WriteString("# comment lines are skipped\n")
	b.WriteString(header + "\n")
	for _, row := range rows {
		b.WriteString(row + "\n")
	}
	return b.String()
}

// fullHeader mirrors the column subset of a real chunk with a few extra
// columns around the wanted ones.
const fullHeader = "solution_id,source_id,ra,dec,parallax,pmra,phot_g_mean_mag,bp_rp"

func readAll(t *testing.T, p *Parser) []Star {
	t.Helper()
	var stars []Star
	for {
		star, err := p.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return stars
			}
			t.Fatalf("Next failed: %v", err)
		}
		stars = append(stars, star)
	}
}

func TestParser_HeaderMapping(t *testing.T) {
	// Columns deliberately reordered relative to fullHeader.
	input := chunk(
		"phot_g_mean_mag,bp_rp,source_id,dec,ra,parallax",
		"4.25,0.5,42,-1.25,310.5,12.75",
	)

	p := NewParser("reordered", strings.NewReader(input))
	p.Warnings = io.Discard
	stars := readAll(t, p)

	if len(stars) != 1 {
		t.Fatalf("got %d stars, want 1", len(stars))
	}
	got := stars[0]
	want := Star{
		SourceID: 42,
		RA:       "310.5",
		Dec:      "-1.25",
		Parallax: "12.75",
		MagText:  "4.25",
		Mag:      4.25,
		BpRp:     "0.5",
	}
	if got != want {
		t.Errorf("parsed star mismatch:\ngot:  %+v\nwant: %+v", got, want)
	}
}

func TestParser_RowPolicy(t *testing.T) {
	tests := []struct {
		name      string
		rows      []string
		wantIDs   []int64
		wantStats Stats
	}{
		{
			name: "valid rows pass through",
			rows: []string{
				"1,10,1.0,2.0,3.0,0.1,5.5,0.7",
				"1,11,4.0,5.0,6.0,0.1,2.5,0.8",
			},
			wantIDs:   []int64{10, 11},
			wantStats: Stats{Rows: 2},
		},
		{
			name: "null magnitude is skipped without schema drop",
			rows: []string{
				"1,10,1.0,2.0,3.0,0.1,null,0.7",
				"1,11,4.0,5.0,6.0,0.1,2.5,0.8",
			},
			wantIDs:   []int64{11},
			wantStats: Stats{Rows: 2, Skipped: 1},
		},
		{
			name: "missing source_id is a schema drop",
			rows: []string{
				"1,null,1.0,2.0,3.0,0.1,5.5,0.7",
			},
			wantIDs:   nil,
			wantStats: Stats{Rows: 1, SchemaDrops: 1},
		},
		{
			name: "unparsable source_id is a schema drop",
			rows: []string{
				"1,banana,1.0,2.0,3.0,0.1,5.5,0.7",
			},
			wantIDs:   nil,
			wantStats: Stats{Rows: 1, SchemaDrops: 1},
		},
		{
			name: "missing ra or dec is a schema drop",
			rows: []string{
				"1,10,null,2.0,3.0,0.1,5.5,0.7",
				"1,11,4.0,null,6.0,0.1,2.5,0.8",
			},
			wantIDs:   nil,
			wantStats: Stats{Rows: 2, SchemaDrops: 2},
		},
		{
			name: "optional parallax and bp_rp render empty",
			rows: []string{
				"1,10,1.0,2.0,null,0.1,5.5,null",
			},
			wantIDs:   []int64{10},
			wantStats: Stats{Rows: 1},
		},
		{
			name: "short row is a schema drop",
			rows: []string{
				"1,10,1.0",
			},
			wantIDs:   nil,
			wantStats: Stats{Rows: 1, SchemaDrops: 1},
		},
		{
			name: "unparsable magnitude is a schema drop",
			rows: []string{
				"1,10,1.0,2.0,3.0,0.1,bright,0.7",
			},
			wantIDs:   nil,
			wantStats: Stats{Rows: 1, SchemaDrops: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewParser("policy", strings.NewReader(chunk(fullHeader, tt.rows...)))
			p.Warnings = io.Discard
			stars := readAll(t, p)

			if len(stars) != len(tt.wantIDs) {
				t.Fatalf("got %d stars, want %d", len(stars), len(tt.wantIDs))
			}
			for i, s := range stars {
				if s.SourceID != tt.wantIDs[i] {
					t.Errorf("star %d: got source %d, want %d", i, s.SourceID, tt.wantIDs[i])
				}
			}
			if got := p.Stats(); got != tt.wantStats {
				t.Errorf("stats mismatch: got %+v, want %+v", got, tt.wantStats)
			}
		})
	}
}

func TestParser_OptionalFieldsEmpty(t *testing.T) {
	input := chunk(fullHeader, "1,10,1.0,2.0,null,0.1,5.5,null")
	p := NewParser("optional", strings.NewReader(input))
	p.Warnings = io.Discard

	stars := readAll(t, p)
	if len(stars) != 1 {
		t.Fatalf("got %d stars, want 1", len(stars))
	}
	if stars[0].Parallax != "" {
		t.Errorf("null parallax should be empty, got %q", stars[0].Parallax)
	}
	if stars[0].BpRp != "" {
		t.Errorf("null bp_rp should be empty, got %q", stars[0].BpRp)
	}
}

func TestParser_MissingRequiredColumn(t *testing.T) {
	input := chunk("solution_id,source_id,ra,dec,parallax,bp_rp", "1,10,1.0,2.0,3.0,0.7")

	p := NewParser("broken", strings.NewReader(input))
	p.Warnings = io.Discard

	_, err := p.Next()
	if err == nil {
		t.Fatal("expected error for missing phot_g_mean_mag column")
	}
	if !errors.Is(err, gaiaerrors.ErrBadSchema) {
		t.Errorf("error should wrap ErrBadSchema, got: %v", err)
	}
}

func TestParser_EmptyChunk(t *testing.T) {
	p := NewParser("empty", strings.NewReader("# only comments\n"))
	p.Warnings = io.Discard

	_, err := p.Next()
	if !errors.Is(err, gaiaerrors.ErrBadSchema) {
		t.Errorf("chunk without header should wrap ErrBadSchema, got: %v", err)
	}
}

func TestStats_SchemaDropRate(t *testing.T) {
	tests := []struct {
		name  string
		stats Stats
		want  float64
	}{
		{"no rows", Stats{}, 0},
		{"no drops", Stats{Rows: 100}, 0},
		{"ten percent", Stats{Rows: 100, SchemaDrops: 10}, 0.1},
		{"skips do not count", Stats{Rows: 100, Skipped: 50, SchemaDrops: 1}, 0.01},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.stats.SchemaDropRate(); got != tt.want {
				t.Errorf("SchemaDropRate() = %g, want %g", got, tt.want)
			}
		})
	}
}
