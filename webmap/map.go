// Copyright 2025 The MeteorMap Authors
// SPDX-License-Identifier: Apache-2.0

// Package webmap builds interactive Leaflet maps and exports them as
// standalone HTML documents. Tiles, clustering and marker styling are
// performed in the browser by Leaflet and its plugins; this package only
// describes what to draw.
package webmap

import (
	"github.com/jcodagnone/meteormap/spatial"
)

// MaxZoom is the deepest zoom level any of the supported tile themes serve.
const MaxZoom = 20

// Options configures a new Map.
type Options struct {
	// Title is used for the document <title>.
	Title string
	// Center is the initial view center.
	Center spatial.Point
	// Zoom is the initial zoom level, between 0 and MaxZoom.
	Zoom int
}

// Map is an in-memory description of an interactive map.
type Map struct {
	title    string
	center   spatial.Point
	zoom     int
	tiles    []TileLayer
	clusters []*MarkerCluster
}

// NewMap creates an empty map. Out of range zoom levels are clamped.
func NewMap(opts Options) *Map {
	return &Map{
		title:  opts.Title,
		center: opts.Center,
		zoom:   min(max(opts.Zoom, 0), MaxZoom),
	}
}

// AddTileLayer stacks a base layer on top of the ones already added.
func (m *Map) AddTileLayer(layer TileLayer) *Map {
	m.tiles = append(m.tiles, layer)

	return m
}

// AddMarkerCluster attaches a clustering layer to the map.
func (m *Map) AddMarkerCluster(c *MarkerCluster) *Map {
	m.clusters = append(m.clusters, c)

	return m
}

// Zoom returns the initial zoom level.
func (m *Map) Zoom() int { return m.zoom }

// Center returns the initial view center.
func (m *Map) Center() spatial.Point { return m.center }

// TileLayers returns the base layers in the order they were added.
func (m *Map) TileLayers() []TileLayer { return m.tiles }

// MarkerClusters returns the clustering layers in the order they were added.
func (m *Map) MarkerClusters() []*MarkerCluster { return m.clusters }

// MarkerCount returns the number of markers across all clusters.
func (m *Map) MarkerCount() int {
	n := 0
	for _, c := range m.clusters {
		n += c.Len()
	}

	return n
}
