// Copyright 2025 The MeteorMap Authors
// SPDX-License-Identifier: Apache-2.0

package meteorite

import (
	"fmt"

	"github.com/jcodagnone/meteormap/spatial"
	"github.com/jcodagnone/meteormap/webmap"
)

// LandingIcon is the marker style for every landing.
var LandingIcon = webmap.Icon{Color: "red", Prefix: "fa", Glyph: "meteor", GlyphColor: "white"}

// NewLandingsMap builds a world map centered at the origin with one base
// layer and a single cluster layer holding a marker per landing.
func NewLandingsMap(landings []Landing, opts *Options) (*webmap.Map, error) {
	tiles, err := webmap.Tiles(opts.Tiles)
	if err != nil {
		return nil, fmt.Errorf("selecting base layer: %w", err)
	}

	cluster := webmap.NewMarkerCluster("Meteorite landings", webmap.ClusterOptions{
		MaxClusterRadius:        opts.ClusterRadius,
		DisableClusteringAtZoom: opts.DisableClusteringAtZoom,
	})

	for _, l := range landings {
		cluster.AddMarker(webmap.Marker{
			Point: l.Point,
			Popup: l.Label(),
			Icon:  LandingIcon,
		})
	}

	m := webmap.NewMap(webmap.Options{
		Title:  opts.Title,
		Center: spatial.Origin,
		Zoom:   opts.Zoom,
	})

	return m.AddTileLayer(tiles).AddMarkerCluster(cluster), nil
}
