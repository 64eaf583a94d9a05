// This file is part of the CosmoScout VR ecosystem.
//
// SPDX-FileCopyrightText: German Aerospace Center (DLR) <cosmoscout@dlr.de>
// SPDX-License-Identifier: MIT

// Package crossmatch loads the Hipparcos-2 best-neighbour table published
// alongside Gaia, mapping Gaia source identifiers to their Hipparcos
// counterparts. Most stars have no counterpart; the table covers roughly a
// hundred thousand bright stars.
package crossmatch

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
)

// Column names in the best-neighbour table.
const (
	sourceIDColumn = "source_id"
	hipIDColumn    = "original_ext_source_id"
)

// Table maps Gaia source identifiers to Hipparcos-2 identifiers.
type Table struct {
	neighbours map[int64]int64
}

// Load parses a best-neighbour CSV. The relevant columns are located by
// header name; rows with unparsable identifiers are skipped.
func Load(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.Comment = '#'
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("cross-match table has no header: %w", err)
	}

	sourceIdx, hipIdx := -1, -1
	for idx, name := range header {
		switch name {
		case sourceIDColumn:
			sourceIdx = idx
		case hipIDColumn:
			hipIdx = idx
		}
	}
	if sourceIdx < 0 || hipIdx < 0 {
		return nil, fmt.Errorf("cross-match table header is missing %q or %q columns",
			sourceIDColumn, hipIDColumn)
	}

	neighbours := make(map[int64]int64)
	for {
		record, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("failed to read cross-match table: %w", err)
		}
		if sourceIdx >= len(record) || hipIdx >= len(record) {
			continue
		}

		sourceID, err := strconv.ParseInt(record[sourceIdx], 10, 64)
		if err != nil {
			continue
		}
		hipID, err := strconv.ParseInt(record[hipIdx], 10, 64)
		if err != nil {
			continue
		}
		neighbours[sourceID] = hipID
	}

	return &Table{neighbours: neighbours}, nil
}

// Lookup returns the Hipparcos-2 identifier for a Gaia source, if any.
func (t *Table) Lookup(sourceID int64) (int64, bool) {
	hipID, ok := t.neighbours[sourceID]
	return hipID, ok
}

// Len returns the number of cross-matched pairs in the table.
func (t *Table) Len() int {
	return len(t.neighbours)
}
