// Copyright 2025 The MeteorMap Authors
// SPDX-License-Identifier: Apache-2.0

package stats

import (
	"regexp"
	"strconv"
)

// The dataset stores years as "01/01/1880 12:00:00 AM"; other exports use a
// bare "1880".
var yearRegex = regexp.MustCompile(`(?:^|[^0-9])([0-9]{3,4})(?:[^0-9]|$)`)

// ParseYear extracts the calendar year from free-text year values.
func ParseYear(s string) (int, bool) {
	m := yearRegex.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}

	year, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}

	return year, true
}
