// Copyright 2025 The MeteorMap Authors
// SPDX-License-Identifier: Apache-2.0

package webmap

import (
	"bufio"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"

	"github.com/jcodagnone/meteormap/spatial"
)

// DataElementID is the id of the <script> element carrying the map payload.
const DataElementID = "meteormap-data"

//go:embed templates/map.html.tmpl
var templatesFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templatesFS, "templates/map.html.tmpl"))

// Document is the JSON payload embedded in an exported map. The page script
// reads it back to build the Leaflet objects.
type Document struct {
	Title    string            `json:"title"`
	Center   spatial.Point     `json:"center"`
	Zoom     int               `json:"zoom"`
	Tiles    []TileLayer       `json:"tiles"`
	Clusters []DocumentCluster `json:"clusters"`
}

// DocumentCluster is the serialized form of a MarkerCluster. Icons are
// deduplicated and referenced from markers by index.
type DocumentCluster struct {
	Name    string           `json:"name"`
	Options ClusterOptions   `json:"options"`
	Icons   []Icon           `json:"icons"`
	Markers []DocumentMarker `json:"markers"`
}

// DocumentMarker is the serialized form of a Marker.
type DocumentMarker struct {
	Lat   float64 `json:"lat"`
	Lng   float64 `json:"lng"`
	Popup string  `json:"popup,omitempty"`
	Icon  int     `json:"icon"`
}

// MarkerCount returns the number of markers across all clusters.
func (d *Document) MarkerCount() int {
	n := 0
	for _, c := range d.Clusters {
		n += len(c.Markers)
	}

	return n
}

// WriteError reports that an exported document could not be delivered.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("writing map to %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// Document returns the payload that Render embeds in the page.
func (m *Map) Document() *Document {
	doc := &Document{
		Title:    m.title,
		Center:   m.center,
		Zoom:     m.zoom,
		Tiles:    make([]TileLayer, len(m.tiles)),
		Clusters: make([]DocumentCluster, 0, len(m.clusters)),
	}
	copy(doc.Tiles, m.tiles)

	for _, c := range m.clusters {
		dc := DocumentCluster{
			Name:    c.name,
			Options: c.options,
			Icons:   []Icon{},
			Markers: make([]DocumentMarker, 0, len(c.markers)),
		}
		iconIndex := make(map[Icon]int)

		for _, marker := range c.markers {
			idx, ok := iconIndex[marker.Icon]
			if !ok {
				idx = len(dc.Icons)
				iconIndex[marker.Icon] = idx
				dc.Icons = append(dc.Icons, marker.Icon)
			}

			dc.Markers = append(dc.Markers, DocumentMarker{
				Lat:   marker.Point.Lat,
				Lng:   marker.Point.Lng,
				Popup: marker.Popup,
				Icon:  idx,
			})
		}

		doc.Clusters = append(doc.Clusters, dc)
	}

	return doc
}

// Render writes the map as a standalone HTML page. The output only depends on
// the map contents, so rendering the same map twice yields identical bytes.
func (m *Map) Render(w io.Writer) error {
	// encoding/json escapes <, > and & so the payload can't close the
	// surrounding <script> element.
	data, err := json.Marshal(m.Document())
	if err != nil {
		return fmt.Errorf("marshaling map data: %w", err)
	}

	err = pageTemplate.Execute(w, struct {
		Title  string
		DataID string
		Data   template.JS
	}{
		Title:  m.title,
		DataID: DataElementID,
		Data:   template.JS(data), // #nosec G203 - json.Marshal output is HTML-safe
	})
	if err != nil {
		return fmt.Errorf("executing map template: %w", err)
	}

	return nil
}

// Save renders the map to path, replacing any existing file. The page is
// written to a temporary file next to path and renamed into place, so a failed
// run never leaves a truncated document behind.
func (m *Map) Save(path string) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".meteormap-*.html")
	if err != nil {
		return &WriteError{Path: path, Err: err}
	}

	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	bw := bufio.NewWriter(tmp)

	if err = m.Render(bw); err != nil {
		_ = tmp.Close()

		return &WriteError{Path: path, Err: err}
	}

	if err = errors.Join(bw.Flush(), tmp.Close()); err != nil {
		return &WriteError{Path: path, Err: err}
	}

	// #nosec G302 - exported maps are meant to be opened and shared
	if err = os.Chmod(tmp.Name(), 0o644); err != nil {
		return &WriteError{Path: path, Err: err}
	}

	if err = os.Rename(tmp.Name(), path); err != nil {
		return &WriteError{Path: path, Err: err}
	}

	return nil
}
