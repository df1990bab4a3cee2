// Screenpick - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/screenpick

package config

import (
	"fmt"
	"net/url"
)

// validateOrigin checks that a CORS origin is a bare http(s) scheme and host.
func validateOrigin(origin string) error {
	u, err := url.Parse(origin)
	if err != nil {
		return fmt.Errorf("CORS_ORIGINS entry %q failed to parse: %w", origin, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("CORS_ORIGINS entry %q: scheme must be http or https", origin)
	}
	if u.Host == "" {
		return fmt.Errorf("CORS_ORIGINS entry %q: host is required", origin)
	}
	if (u.Path != "" && u.Path != "/") || u.RawQuery != "" {
		return fmt.Errorf("CORS_ORIGINS entry %q: origin must not contain a path or query", origin)
	}
	return nil
}
