// This file is part of the CosmoScout VR ecosystem.
//
// SPDX-FileCopyrightText: German Aerospace Center (DLR) <cosmoscout@dlr.de>
// SPDX-License-Identifier: MIT

// Package catalog parses Gaia DR3 source chunks into star records.
package catalog

// Star is one Gaia DR3 source row reduced to the seven columns consumed by
// the csp-stars plugin. The floating-point columns keep the catalogue's own
// text so the output is byte-faithful to the archive; only the magnitude is
// additionally parsed, since it is the sole sort key.
type Star struct {
	// SourceID is the Gaia catalogue primary key, unique in the output set.
	SourceID int64

	// HipparcosID is the cross-matched Hipparcos-2 identifier. Empty when
	// no cross-match table is loaded or the star has no counterpart.
	HipparcosID string

	// RA and Dec are the right ascension and declination in degrees.
	RA  string
	Dec string

	// Parallax in milliarcseconds. Empty when the catalogue has no value;
	// negative values occur and are passed through.
	Parallax string

	// MagText is the G-band mean magnitude as written in the catalogue,
	// Mag its parsed value. Lower means brighter.
	MagText string
	Mag     float64

	// BpRp is the BP-RP color index. Empty when absent.
	BpRp string
}
