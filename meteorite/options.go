// Copyright 2025 The MeteorMap Authors
// SPDX-License-Identifier: Apache-2.0

package meteorite

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/jcodagnone/meteormap/webmap"
)

const (
	// DefaultInput is the file name of the NASA Open Data export.
	DefaultInput = "Meteorite_Landings.csv"
	// DefaultOutput is where the rendered map is written.
	DefaultOutput = "meteor_map.html"
	// DefaultYearColumn is the header of the year column.
	DefaultYearColumn = "year"
	// DefaultLocationColumn is the header of the coordinates column.
	DefaultLocationColumn = "GeoLocation"
	// DefaultZoom shows the whole world on a typical screen.
	DefaultZoom = 2
	// DefaultTitle is the document title.
	DefaultTitle = "Meteorite Landings"
)

// Options configures a pipeline run.
type Options struct {
	Input          string
	Output         string
	YearColumn     string
	LocationColumn string
	Delimiter      rune
	// SkipMalformed drops rows with unparsable coordinates instead of
	// aborting the run.
	SkipMalformed bool

	// Shapefile, when set, also stores the landings as a POINT shapefile.
	Shapefile string

	Title                   string
	Zoom                    int
	Tiles                   string
	ClusterRadius           int
	DisableClusteringAtZoom int
}

// DefaultOptions returns the options that reproduce the classic map.
func DefaultOptions() *Options {
	return &Options{
		Input:          DefaultInput,
		Output:         DefaultOutput,
		YearColumn:     DefaultYearColumn,
		LocationColumn: DefaultLocationColumn,
		Delimiter:      ',',
		Title:          DefaultTitle,
		Zoom:           DefaultZoom,
		Tiles:          webmap.DefaultTiles,
	}
}

// Validate checks the options for obvious mistakes before any I/O happens.
func (o *Options) Validate() error {
	var errs []error

	if o.YearColumn == "" {
		errs = append(errs, errors.New("year column can't be empty"))
	}

	if o.LocationColumn == "" {
		errs = append(errs, errors.New("location column can't be empty"))
	}

	if o.YearColumn != "" && o.YearColumn == o.LocationColumn {
		errs = append(errs, fmt.Errorf("year and location columns must differ (both %q)", o.YearColumn))
	}

	if o.Delimiter == 0 || o.Delimiter == '"' || o.Delimiter == '\r' || o.Delimiter == '\n' ||
		o.Delimiter == utf8.RuneError {
		errs = append(errs, fmt.Errorf("invalid delimiter %q", o.Delimiter))
	}

	if o.Zoom < 0 || o.Zoom > webmap.MaxZoom {
		errs = append(errs, fmt.Errorf("zoom must be between 0 and %d (got %d)", webmap.MaxZoom, o.Zoom))
	}

	if o.ClusterRadius < 0 {
		errs = append(errs, fmt.Errorf("cluster radius can't be negative (got %d)", o.ClusterRadius))
	}

	if o.DisableClusteringAtZoom < 0 || o.DisableClusteringAtZoom > webmap.MaxZoom {
		errs = append(errs, fmt.Errorf("disable clustering zoom must be between 0 and %d (got %d)",
			webmap.MaxZoom, o.DisableClusteringAtZoom))
	}

	if o.Shapefile != "" && !strings.HasSuffix(o.Shapefile, ShapefileExt) {
		errs = append(errs, fmt.Errorf("shapefile name must end in %s (got %q)", ShapefileExt, o.Shapefile))
	}

	if _, err := webmap.Tiles(o.Tiles); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}
