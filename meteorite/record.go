// Copyright 2025 The MeteorMap Authors
// SPDX-License-Identifier: Apache-2.0

// Package meteorite turns the NASA meteorite landings table into a clustered
// world map.
package meteorite

import (
	"github.com/jcodagnone/meteormap/spatial"
)

// UnknownYearLabel is the popup text for landings without a year.
const UnknownYearLabel = "Year Unknown"

// RawRecord is one input row projected to the two columns of interest.
type RawRecord struct {
	// Row is the 1-based data row number, header excluded.
	Row      int    `json:"row"`
	Year     string `json:"year"`
	Location string `json:"location"`
}

// Landing is a RawRecord whose location parsed into a usable point.
type Landing struct {
	RawRecord

	Point spatial.Point `json:"point"`
}

// Label returns the popup text shown for the landing.
func (l Landing) Label() string {
	if l.Year == "" {
		return UnknownYearLabel
	}

	return "Year: " + l.Year
}
