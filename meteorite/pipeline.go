// Copyright 2025 The MeteorMap Authors
// SPDX-License-Identifier: Apache-2.0

package meteorite

import (
	"fmt"
	"log"
)

// Metrics summarizes a pipeline run.
type Metrics struct {
	FilterMetrics

	Markers   int    `json:"markers"`
	Output    string `json:"output"`
	Shapefile string `json:"shapefile,omitempty"`
}

// Run loads opts.Input, filters it, renders the landings and saves the map
// to opts.Output. When opts.Shapefile is set the shapefile is written first.
// The first failure stops the run and no map is written.
func Run(opts *Options) (*Metrics, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	records, err := LoadFile(opts.Input, opts)
	if err != nil {
		return nil, err
	}

	log.Printf("Loaded %d records from %s", len(records), opts.Input)

	landings, filterMetrics, err := Filter(records, opts)
	if err != nil {
		return nil, err
	}

	log.Printf(
		"Filter phase complete - %d valid, %d missing, %d sentinel and %d malformed locations",
		filterMetrics.Valid,
		filterMetrics.Missing,
		filterMetrics.Sentinel,
		filterMetrics.Malformed,
	)

	m, err := NewLandingsMap(landings, opts)
	if err != nil {
		return nil, err
	}

	metrics := &Metrics{
		FilterMetrics: filterMetrics,
		Markers:       m.MarkerCount(),
		Output:        opts.Output,
	}

	if opts.Shapefile != "" {
		if err := WriteShapefile(opts.Shapefile, landings); err != nil {
			return nil, err
		}

		log.Printf("Wrote %d points to %s", len(landings), opts.Shapefile)
		metrics.Shapefile = opts.Shapefile
	}

	if err := m.Save(opts.Output); err != nil {
		return nil, &Error{Type: ErrorTypeWrite, Message: "saving map", Err: err}
	}

	return metrics, nil
}
