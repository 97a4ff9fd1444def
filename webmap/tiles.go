// Copyright 2025 The MeteorMap Authors
// SPDX-License-Identifier: Apache-2.0

package webmap

import (
	"fmt"
	"slices"
	"strings"
)

// TileLayer is a slippy-map base layer served from an XYZ template URL.
type TileLayer struct {
	Name        string `json:"name"`
	URL         string `json:"url"`
	Attribution string `json:"attribution"`
	Subdomains  string `json:"subdomains,omitempty"`
	MaxZoom     int    `json:"maxZoom"`
}

const (
	osmAttribution   = `&copy; <a href="https://www.openstreetmap.org/copyright">OpenStreetMap</a> contributors`
	cartoAttribution = osmAttribution + ` &copy; <a href="https://carto.com/attributions">CARTO</a>`
)

// DefaultTiles is the dark theme used when no other is requested.
const DefaultTiles = "cartodbdark_matter"

var knownTiles = map[string]TileLayer{
	"cartodbdark_matter": {
		Name:        "cartodbdark_matter",
		URL:         "https://{s}.basemaps.cartocdn.com/dark_all/{z}/{x}/{y}{r}.png",
		Attribution: cartoAttribution,
		Subdomains:  "abcd",
		MaxZoom:     20,
	},
	"cartodbpositron": {
		Name:        "cartodbpositron",
		URL:         "https://{s}.basemaps.cartocdn.com/light_all/{z}/{x}/{y}{r}.png",
		Attribution: cartoAttribution,
		Subdomains:  "abcd",
		MaxZoom:     20,
	},
	"openstreetmap": {
		Name:        "openstreetmap",
		URL:         "https://tile.openstreetmap.org/{z}/{x}/{y}.png",
		Attribution: osmAttribution,
		MaxZoom:     19,
	},
}

// aliases maps alternative spellings, after normalization, to a known theme.
var aliases = map[string]string{
	"cartodbdarkmatter":   "cartodbdark_matter",
	"dark_matter":         "cartodbdark_matter",
	"darkmatter":          "cartodbdark_matter",
	"positron":            "cartodbpositron",
	"osm":                 "openstreetmap",
	"openstreetmapmapnik": "openstreetmap",
}

func normalizeTileName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))

	return strings.NewReplacer(" ", "", ".", "", "-", "").Replace(name)
}

// Tiles returns the tile layer registered under name. Names are matched
// ignoring case, spaces, dots and dashes, so "CartoDB dark_matter" and
// "CartoDB.DarkMatter" both resolve to the dark theme.
func Tiles(name string) (TileLayer, error) {
	key := normalizeTileName(name)
	if alias, ok := aliases[key]; ok {
		key = alias
	}

	layer, ok := knownTiles[key]
	if !ok {
		return TileLayer{}, fmt.Errorf("unknown tile theme %q (available: %s)", name, strings.Join(TileNames(), ", "))
	}

	return layer, nil
}

// TileNames lists the canonical names of the available tile themes.
func TileNames() []string {
	names := make([]string, 0, len(knownTiles))
	for name := range knownTiles {
		names = append(names, name)
	}

	slices.Sort(names)

	return names
}
