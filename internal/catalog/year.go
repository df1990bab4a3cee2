// Screenpick - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/screenpick

package catalog

import (
	"regexp"
	"strconv"
)

// yearPattern matches the MovieLens "Title (1995)" suffix.
var yearPattern = regexp.MustCompile(`\((\d{4})\)\s*$`)

// ParseYear extracts the release year from a MovieLens style title.
// Returns 0 when the title has no trailing year.
func ParseYear(title string) int {
	match := yearPattern.FindStringSubmatch(title)
	if match == nil {
		return 0
	}
	year, err := strconv.Atoi(match[1])
	if err != nil {
		return 0
	}
	return year
}
