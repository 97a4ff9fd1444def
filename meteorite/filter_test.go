// Copyright 2025 The MeteorMap Authors
// SPDX-License-Identifier: Apache-2.0

package meteorite

import (
	"testing"

	"github.com/jcodagnone/meteormap/spatial"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGeoLocation(t *testing.T) {
	tests := []struct {
		input    string
		expected spatial.Point
	}{
		{"(50.775, 6.08333)", spatial.Point{Lat: 50.775, Lng: 6.08333}},
		{"(-33.16667, -64.95)", spatial.Point{Lat: -33.16667, Lng: -64.95}},
		{"(54.21667, -113.0)", spatial.Point{Lat: 54.21667, Lng: -113}},
		{"(0.0, 12.5)", spatial.Point{Lat: 0, Lng: 12.5}},
		{"(-90, 180)", spatial.Point{Lat: -90, Lng: 180}},
		{"(1e1, 2)", spatial.Point{Lat: 10, Lng: 2}},
		{"(-1.94617, 354.47333)", spatial.Point{Lat: -1.94617, Lng: 354.47333}},
		{"(91.0, -180.5)", spatial.Point{Lat: 91, Lng: -180.5}},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			p, err := ParseGeoLocation(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, p)
		})
	}
}

func TestParseGeoLocation_Malformed(t *testing.T) {
	tests := []string{
		"50.775, 6.08333",
		"(50.775, 6.08333",
		"50.775, 6.08333)",
		"(50.775,6.08333)",
		"(50.775 6.08333)",
		"(1.0, 2.0, 3.0)",
		"(abc, 6.0)",
		"(1.0, )",
		"()",
		"(",
		"(NaN, 1.0)",
		"(1.0, Inf)",
		"(-Inf, 1.0)",
	}

	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			_, err := ParseGeoLocation(input)
			require.Error(t, err)
			assert.True(t, IsParseError(err), "got %v", err)
			assert.Contains(t, err.Error(), input)
		})
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		input  string
		status Status
	}{
		{"", StatusMissing},
		{"(0.0, 0.0)", StatusSentinel},
		{"(0, 0)", StatusValid},
		{"(0.0, 1.0)", StatusValid},
		{"(12.3, 45.6)", StatusValid},
		{"unknown", StatusMalformed},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			status, _, err := Classify(tc.input)
			assert.Equal(t, tc.status, status)
			assert.Equal(t, tc.status == StatusMalformed, err != nil)
		})
	}
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "valid", StatusValid.String())
	assert.Equal(t, "missing", StatusMissing.String())
	assert.Equal(t, "sentinel", StatusSentinel.String())
	assert.Equal(t, "malformed", StatusMalformed.String())
	assert.Equal(t, "Status(9)", Status(9).String())
}

func TestFilter(t *testing.T) {
	records := []RawRecord{
		{Row: 1, Year: "1880", Location: "(50.775, 6.08333)"},
		{Row: 2, Year: "1900", Location: ""},
		{Row: 3, Year: "1901", Location: SentinelLocation},
		{Row: 4, Year: "1902", Location: SentinelLocation},
		{Row: 5, Year: "", Location: "(-33.16667, -64.95)"},
		{Row: 6, Year: "1903", Location: ""},
	}
	original := append([]RawRecord(nil), records...)

	landings, metrics, err := Filter(records, DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, original, records, "input must not be modified")
	assert.Equal(t, FilterMetrics{Total: 6, Valid: 2, Missing: 2, Sentinel: 2}, metrics)
	assert.Equal(t, 4, metrics.Invalid())
	assert.Equal(t, []Landing{
		{RawRecord: records[0], Point: spatial.Point{Lat: 50.775, Lng: 6.08333}},
		{RawRecord: records[4], Point: spatial.Point{Lat: -33.16667, Lng: -64.95}},
	}, landings)
}

func TestFilter_ConsecutiveInvalidRows(t *testing.T) {
	// Removing elements while iterating skips the one right after each
	// removal; every invalid row here follows another invalid row.
	records := []RawRecord{
		{Row: 1, Location: ""},
		{Row: 2, Location: SentinelLocation},
		{Row: 3, Location: ""},
		{Row: 4, Location: SentinelLocation},
	}

	landings, metrics, err := Filter(records, DefaultOptions())
	require.NoError(t, err)
	assert.Empty(t, landings)
	assert.Equal(t, 0, metrics.Valid)
	assert.Equal(t, 4, metrics.Invalid())
}

func TestFilter_Malformed(t *testing.T) {
	records := []RawRecord{
		{Row: 1, Year: "1880", Location: "(50.775, 6.08333)"},
		{Row: 2, Year: "1881", Location: "(north, east)"},
		{Row: 3, Year: "1882", Location: "(1.0, 2.0)"},
	}

	t.Run("aborts by default", func(t *testing.T) {
		landings, _, err := Filter(records, DefaultOptions())
		require.Error(t, err)
		assert.Nil(t, landings)
		assert.True(t, IsParseError(err))

		var e *Error
		require.ErrorAs(t, err, &e)
		assert.Equal(t, 2, e.Row)
	})

	t.Run("skipped on request", func(t *testing.T) {
		opts := DefaultOptions()
		opts.SkipMalformed = true

		landings, metrics, err := Filter(records, opts)
		require.NoError(t, err)
		require.Len(t, landings, 2)
		assert.Equal(t, 1, landings[0].Row)
		assert.Equal(t, 3, landings[1].Row)
		assert.Equal(t, FilterMetrics{Total: 3, Valid: 2, Malformed: 1}, metrics)
	})
}

func TestLanding_Label(t *testing.T) {
	assert.Equal(t, "Year: 1999", Landing{RawRecord: RawRecord{Year: "1999"}}.Label())
	assert.Equal(t, "Year Unknown", Landing{RawRecord: RawRecord{Year: ""}}.Label())
	assert.Equal(t, "Year: 01/01/1880 12:00:00 AM", Landing{RawRecord: RawRecord{Year: "01/01/1880 12:00:00 AM"}}.Label())
}
