// Copyright 2025 The MeteorMap Authors
// SPDX-License-Identifier: Apache-2.0

package webmap

import (
	"github.com/jcodagnone/meteormap/spatial"
)

// Icon styles a marker using Leaflet.awesome-markers.
type Icon struct {
	// Color is the marker body color (red, blue, green, ...).
	Color string `json:"color"`
	// Prefix selects the glyph font, "fa" for Font Awesome.
	Prefix string `json:"prefix"`
	// Glyph is the icon name within the font, without prefix.
	Glyph string `json:"icon"`
	// GlyphColor is the color of the glyph drawn on top of the marker.
	GlyphColor string `json:"iconColor"`
}

// Marker is a point on the map with an optional plain-text popup.
type Marker struct {
	Point spatial.Point
	Popup string
	Icon  Icon
}

// ClusterOptions tunes Leaflet.markercluster. Zero values keep the plugin
// defaults.
type ClusterOptions struct {
	// MaxClusterRadius is the maximum radius in pixels a cluster covers.
	MaxClusterRadius int `json:"maxClusterRadius,omitempty"`
	// DisableClusteringAtZoom shows every marker individually from this zoom on.
	DisableClusteringAtZoom int `json:"disableClusteringAtZoom,omitempty"`
}

// MarkerCluster groups nearby markers into a single badge at low zoom levels.
type MarkerCluster struct {
	name    string
	options ClusterOptions
	markers []Marker
}

// NewMarkerCluster creates an empty cluster layer.
func NewMarkerCluster(name string, opts ClusterOptions) *MarkerCluster {
	return &MarkerCluster{name: name, options: opts}
}

// AddMarker appends a marker. Insertion order is preserved in the output but
// has no visual effect since the layer regroups markers on every zoom change.
func (c *MarkerCluster) AddMarker(marker Marker) {
	c.markers = append(c.markers, marker)
}

// Len returns the number of markers in the cluster.
func (c *MarkerCluster) Len() int { return len(c.markers) }

// Name returns the layer name.
func (c *MarkerCluster) Name() string { return c.name }

// Options returns the clustering options.
func (c *MarkerCluster) Options() ClusterOptions { return c.options }

// Markers returns the markers in insertion order.
func (c *MarkerCluster) Markers() []Marker { return c.markers }
