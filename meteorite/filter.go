// Copyright 2025 The MeteorMap Authors
// SPDX-License-Identifier: Apache-2.0

package meteorite

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/jcodagnone/meteormap/spatial"
)

// SentinelLocation is what the dataset records when no location is known.
// It is not the real origin.
const SentinelLocation = "(0.0, 0.0)"

// Status is the outcome of classifying a location string.
type Status int

const (
	// StatusValid the location parsed into a point.
	StatusValid Status = iota
	// StatusMissing the location is empty.
	StatusMissing
	// StatusSentinel the location is the "(0.0, 0.0)" placeholder.
	StatusSentinel
	// StatusMalformed the location isn't a bracketed pair of numbers.
	StatusMalformed
)

func (s Status) String() string {
	switch s {
	case StatusValid:
		return "valid"
	case StatusMissing:
		return "missing"
	case StatusSentinel:
		return "sentinel"
	case StatusMalformed:
		return "malformed"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

var (
	errBrackets  = errors.New(`expected "(<lat>, <lng>)"`)
	errPair      = errors.New(`expected two numbers separated by ", "`)
	errNotFinite = errors.New("coordinates must be finite numbers")
)

// ParseGeoLocation parses the "(<lat>, <lng>)" text used by the dataset. The
// first number is the latitude and the second the longitude.
func ParseGeoLocation(text string) (spatial.Point, error) {
	malformed := func(err error) error {
		return &Error{Type: ErrorTypeParse, Message: fmt.Sprintf("malformed location %q", text), Err: err}
	}

	if len(text) < 2 || text[0] != '(' || text[len(text)-1] != ')' {
		return spatial.Point{}, malformed(errBrackets)
	}

	parts := strings.Split(text[1:len(text)-1], ", ")
	if len(parts) != 2 {
		return spatial.Point{}, malformed(errPair)
	}

	var coords [2]float64

	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return spatial.Point{}, malformed(err)
		}

		coords[i] = v
	}

	p := spatial.Point{Lat: coords[0], Lng: coords[1]}
	if !p.Finite() {
		return spatial.Point{}, malformed(errNotFinite)
	}

	return p, nil
}

// Classify decides what to do with a location string. The point is only
// meaningful for StatusValid, and the error only for StatusMalformed.
func Classify(location string) (Status, spatial.Point, error) {
	switch location {
	case "":
		return StatusMissing, spatial.Point{}, nil
	case SentinelLocation:
		return StatusSentinel, spatial.Point{}, nil
	}

	p, err := ParseGeoLocation(location)
	if err != nil {
		return StatusMalformed, spatial.Point{}, err
	}

	return StatusValid, p, nil
}

// FilterMetrics counts records by classification.
type FilterMetrics struct {
	Total     int `json:"total"`
	Valid     int `json:"valid"`
	Missing   int `json:"missing"`
	Sentinel  int `json:"sentinel"`
	Malformed int `json:"malformed"`
}

// Invalid returns the number of records that won't be drawn.
func (m *FilterMetrics) Invalid() int {
	return m.Missing + m.Sentinel + m.Malformed
}

// Filter returns the records with a usable location, in input order. records
// is left untouched. A malformed location aborts with a parse error, unless
// opts.SkipMalformed is set, in which case the row is logged and dropped.
func Filter(records []RawRecord, opts *Options) ([]Landing, FilterMetrics, error) {
	metrics := FilterMetrics{Total: len(records)}
	landings := make([]Landing, 0, len(records))

	for _, record := range records {
		status, point, err := Classify(record.Location)

		switch status {
		case StatusMissing:
			metrics.Missing++
		case StatusSentinel:
			metrics.Sentinel++
		case StatusMalformed:
			var e *Error
			if errors.As(err, &e) {
				e.Row = record.Row
			}

			if !opts.SkipMalformed {
				return nil, metrics, err
			}

			metrics.Malformed++

			log.Printf("Skipping %s", err)
		case StatusValid:
			metrics.Valid++
			landings = append(landings, Landing{RawRecord: record, Point: point})
		}
	}

	return landings, metrics, nil
}
