// This file is part of the CosmoScout VR ecosystem.
//
// SPDX-FileCopyrightText: German Aerospace Center (DLR) <cosmoscout@dlr.de>
// SPDX-License-Identifier: MIT

package output

import "github.com/cosmoscout/gaia-stars/internal/catalog"

// StarWriter defines the interface for writing the selected star set.
// This abstraction keeps the pipeline independent of the destination, so
// tests can write into a buffer while the CLI writes an atomic file.
type StarWriter interface {
	// WriteHeader writes the fixed column header. It must be called once,
	// before the first Write.
	WriteHeader() error

	// Write writes a single star row to the output.
	Write(star catalog.Star) error

	// Close flushes and closes the underlying writer and releases any
	// resources. This should be called when all writing is complete.
	Close() error
}
