// This file is part of the CosmoScout VR ecosystem.
//
// SPDX-FileCopyrightText: German Aerospace Center (DLR) <cosmoscout@dlr.de>
// SPDX-License-Identifier: MIT

package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"

	gaiaerrors "github.com/cosmoscout/gaia-stars/internal/errors"
)

// nullField is how the Gaia CSV chunks spell an absent value.
const nullField = "null"

// maxWarnings caps the schema warnings printed per chunk so a structurally
// broken chunk does not flood stderr before the drop-rate check aborts.
const maxWarnings = 10

// columns of interest, discovered by name from the chunk header instead of
// hardcoding positions, so upstream column reordering cannot corrupt output.
var wantedColumns = []string{"source_id", "ra", "dec", "parallax", "phot_g_mean_mag", "bp_rp"}

// Stats accumulates per-chunk row accounting.
type Stats struct {
	// Rows is the number of data rows read, excluding comments and header.
	Rows int
	// Skipped counts rows without a defined phot_g_mean_mag. These are a
	// legitimate catalogue state, not schema violations.
	Skipped int
	// SchemaDrops counts rows missing a required field (source_id, ra, dec)
	// or carrying an unparsable value for it.
	SchemaDrops int
}

// SchemaDropRate returns the fraction of rows dropped for schema violations.
func (s Stats) SchemaDropRate() float64 {
	if s.Rows == 0 {
		return 0
	}
	return float64(s.SchemaDrops) / float64(s.Rows)
}

// Parser reads one decompressed Gaia chunk and yields valid star records.
// Chunks are ECSV: a preamble of #-comments, a comma-separated header row,
// then data rows with "null" for absent values.
type Parser struct {
	name      string
	r         *csv.Reader
	cols      map[string]int
	minFields int
	stats     Stats
	warnings  int

	// Warnings receives schema-drop diagnostics. Defaults to os.Stderr.
	Warnings io.Writer
}

// NewParser creates a Parser over a decompressed chunk. The name is used in
// diagnostics only.
func NewParser(name string, r io.Reader) *Parser {
	cr := csv.NewReader(r)
	cr.Comment = '#'
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true

	return &Parser{
		name:     name,
		r:        cr,
		Warnings: os.Stderr,
	}
}

// Next returns the next valid star record. Rows with an undefined magnitude
// are skipped silently; rows violating the schema are dropped with a warning.
// It returns io.EOF when the chunk is exhausted.
func (p *Parser) Next() (Star, error) {
	if p.cols == nil {
		if err := p.readHeader(); err != nil {
			return Star{}, err
		}
	}

	for {
		record, err := p.r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return Star{}, io.EOF
			}
			return Star{}, fmt.Errorf("chunk %s: %w", p.name, err)
		}
		p.stats.Rows++

		star, ok := p.parseRow(record)
		if !ok {
			continue
		}
		return star, nil
	}
}

// Stats returns the row accounting gathered so far.
func (p *Parser) Stats() Stats {
	return p.stats
}

// readHeader consumes the header row and maps the wanted column names to
// their positions.
func (p *Parser) readHeader() error {
	record, err := p.r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("chunk %s has no header row: %w", p.name, gaiaerrors.ErrBadSchema)
		}
		return fmt.Errorf("chunk %s: %w", p.name, err)
	}

	cols := make(map[string]int, len(wantedColumns))
	for idx, name := range record {
		for _, wanted := range wantedColumns {
			if name == wanted {
				cols[wanted] = idx
				break
			}
		}
	}

	for _, wanted := range wantedColumns {
		if _, ok := cols[wanted]; !ok {
			return fmt.Errorf("chunk %s header is missing column %q: %w", p.name, wanted, gaiaerrors.ErrBadSchema)
		}
	}

	p.cols = cols
	for _, idx := range cols {
		if idx+1 > p.minFields {
			p.minFields = idx + 1
		}
	}
	return nil
}

// parseRow converts one data row into a Star. It reports false when the row
// must not enter the candidate set.
func (p *Parser) parseRow(record []string) (Star, bool) {
	if len(record) < p.minFields {
		p.dropRow("truncated row (%d fields)", len(record))
		return Star{}, false
	}

	field := func(name string) (string, bool) {
		v := record[p.cols[name]]
		if v == "" || v == nullField {
			return "", false
		}
		return v, true
	}

	// An undefined magnitude excludes the row from the candidate set and
	// from the schema accounting: the star simply has no usable brightness.
	magText, ok := field("phot_g_mean_mag")
	if !ok {
		p.stats.Skipped++
		return Star{}, false
	}
	mag, err := strconv.ParseFloat(magText, 64)
	if err != nil || math.IsNaN(mag) {
		p.dropRow("unparsable phot_g_mean_mag %q", magText)
		return Star{}, false
	}

	idText, ok := field("source_id")
	if !ok {
		p.dropRow("missing source_id")
		return Star{}, false
	}
	sourceID, err := strconv.ParseInt(idText, 10, 64)
	if err != nil {
		p.dropRow("unparsable source_id %q", idText)
		return Star{}, false
	}

	ra, ok := field("ra")
	if !ok {
		p.dropRow("source %d: missing ra", sourceID)
		return Star{}, false
	}
	dec, ok := field("dec")
	if !ok {
		p.dropRow("source %d: missing dec", sourceID)
		return Star{}, false
	}

	// Optional columns render as empty output fields when absent.
	parallax, _ := field("parallax")
	bpRp, _ := field("bp_rp")

	return Star{
		SourceID: sourceID,
		RA:       ra,
		Dec:      dec,
		Parallax: parallax,
		MagText:  magText,
		Mag:      mag,
		BpRp:     bpRp,
	}, true
}

// dropRow records a schema violation and prints a capped warning.
func (p *Parser) dropRow(format string, args ...any) {
	p.stats.SchemaDrops++
	if p.warnings >= maxWarnings {
		return
	}
	p.warnings++
	fmt.Fprintf(p.Warnings, "warning: chunk %s row %d dropped: %s\n",
		p.name, p.stats.Rows, fmt.Sprintf(format, args...))
	if p.warnings == maxWarnings {
		fmt.Fprintf(p.Warnings, "warning: chunk %s: further schema warnings suppressed\n", p.name)
	}
}
