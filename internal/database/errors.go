// Screenpick - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/screenpick

package database

import (
	"errors"
	"io"

	"github.com/rs/zerolog"
)

// ErrMissingFile is returned when a required CSV file does not exist.
var ErrMissingFile = errors.New("csv file not found")

// closeWithLog closes a resource and logs a failure.
//
//nolint:gocritic // hugeParam: logger passed by value for zerolog chaining
func closeWithLog(closer io.Closer, logger zerolog.Logger, resourceType string) {
	if closer == nil {
		return
	}
	if err := closer.Close(); err != nil {
		logger.Warn().Str("type", resourceType).Err(err).Msg("Failed to close resource")
	}
}

// closeQuietly closes a resource on an error path where the close error is
// not actionable.
func closeQuietly(closer io.Closer) {
	if closer != nil {
		_ = closer.Close()
	}
}
