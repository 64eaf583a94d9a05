// This file is part of the CosmoScout VR ecosystem.
//
// SPDX-FileCopyrightText: German Aerospace Center (DLR) <cosmoscout@dlr.de>
// SPDX-License-Identifier: MIT

// Package output writes the selected stars as pipe-delimited CSV. The
// column set and order are a fixed contract with the csp-stars plugin and
// must never change without a corresponding plugin update. Optional fields
// are rendered as empty fields, never as a literal "null".
package output

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/cosmoscout/gaia-stars/internal/catalog"
	gaiaerrors "github.com/cosmoscout/gaia-stars/internal/errors"
)

// Header is the fixed column contract of the generated CSV.
const Header = "source_id|hipparcos_id|ra|dec|parallax|phot_g_mean_mag|bp_rp"

// delimiter between fields. No field can contain it, so no quoting is needed.
const delimiter = "|"

// Writer streams star rows to an io.Writer in pipe-delimited CSV.
type Writer struct {
	mu        sync.Mutex
	w         *bufio.Writer
	count     int
	closeFunc func() error
}

// NewWriter creates a new CSV writer that writes to the specified output.
func NewWriter(w io.Writer) *Writer {
	return &Writer{
		w: bufio.NewWriterSize(w, 1<<20),
	}
}

// WriteHeader writes the fixed header line.
func (w *Writer) WriteHeader() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, err := w.w.WriteString(Header + "\n"); err != nil {
		return fmt.Errorf("failed to write header: %v: %w", err, gaiaerrors.ErrWriteFailed)
	}
	return nil
}

// Write writes a single star row. Floating-point columns are emitted with
// the catalogue's own text, absent optional values as empty fields.
func (w *Writer) Write(star catalog.Star) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	fields := [7]string{
		strconv.FormatInt(star.SourceID, 10),
		star.HipparcosID,
		star.RA,
		star.Dec,
		star.Parallax,
		star.MagText,
		star.BpRp,
	}

	if _, err := w.w.WriteString(strings.Join(fields[:], delimiter)); err != nil {
		return fmt.Errorf("failed to write row: %v: %w", err, gaiaerrors.ErrWriteFailed)
	}
	if err := w.w.WriteByte('\n'); err != nil {
		return fmt.Errorf("failed to write row: %v: %w", err, gaiaerrors.ErrWriteFailed)
	}

	w.count++
	return nil
}

// Count returns the number of rows written, excluding the header.
func (w *Writer) Count() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.count
}

// Close flushes buffered rows and closes the underlying writer if any.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.w.Flush(); err != nil {
		return fmt.Errorf("failed to flush output: %v: %w", err, gaiaerrors.ErrWriteFailed)
	}
	if w.closeFunc != nil {
		return w.closeFunc()
	}
	return nil
}
