// This file is part of the CosmoScout VR ecosystem.
//
// SPDX-FileCopyrightText: German Aerospace Center (DLR) <cosmoscout@dlr.de>
// SPDX-License-Identifier: MIT

package output

import (
	"bufio"
	"fmt"
	"os"

	gaiaerrors "github.com/cosmoscout/gaia-stars/internal/errors"
)

// FileWriter writes the CSV to a file using a write-to-temp-and-rename
// pattern: rows go to <path>.tmp and the final name only appears on Close.
// An aborted run therefore never leaves a partial catalogue behind for the
// plugin to pick up.
type FileWriter struct {
	Writer
	file     *os.File
	tempPath string
	path     string
}

// NewFileWriter creates a FileWriter targeting the given path. The caller
// must call Close on success or Abort on failure.
func NewFileWriter(path string) (*FileWriter, error) {
	tempPath := path + ".tmp"

	file, err := os.Create(tempPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file %s: %v: %w",
			tempPath, err, gaiaerrors.ErrWriteFailed)
	}

	fw := &FileWriter{
		file:     file,
		tempPath: tempPath,
		path:     path,
	}
	fw.w = bufio.NewWriterSize(file, 1<<20)
	fw.closeFunc = fw.finalize
	return fw, nil
}

// finalize syncs, closes and atomically renames the temp file into place.
func (fw *FileWriter) finalize() error {
	if err := fw.file.Sync(); err != nil {
		fw.file.Close()
		return fmt.Errorf("failed to sync output file: %v: %w", err, gaiaerrors.ErrWriteFailed)
	}
	if err := fw.file.Close(); err != nil {
		return fmt.Errorf("failed to close output file: %v: %w", err, gaiaerrors.ErrWriteFailed)
	}
	if err := os.Rename(fw.tempPath, fw.path); err != nil {
		return fmt.Errorf("failed to rename output file: %v: %w", err, gaiaerrors.ErrWriteFailed)
	}
	return nil
}

// Abort discards the temp file. Safe to call after a failed Close.
func (fw *FileWriter) Abort() error {
	fw.file.Close()
	if err := os.Remove(fw.tempPath); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
