// Copyright 2025 The MeteorMap Authors
// SPDX-License-Identifier: Apache-2.0

package webmap

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/jcodagnone/meteormap/spatial"
	"github.com/jcodagnone/meteormap/utils/htmlutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

var redMeteor = Icon{Color: "red", Prefix: "fa", Glyph: "meteor", GlyphColor: "white"}

func newTestMap(t *testing.T, markers ...Marker) (*Map, *MarkerCluster) {
	t.Helper()

	tiles, err := Tiles(DefaultTiles)
	require.NoError(t, err)

	cluster := NewMarkerCluster("landings", ClusterOptions{})
	for _, m := range markers {
		cluster.AddMarker(m)
	}

	m := NewMap(Options{Title: "Test", Center: spatial.Origin, Zoom: 2}).
		AddTileLayer(tiles).
		AddMarkerCluster(cluster)

	return m, cluster
}

func render(t *testing.T, m *Map) []byte {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, m.Render(&buf))

	return buf.Bytes()
}

func TestNewMap_ClampsZoom(t *testing.T) {
	assert.Equal(t, 0, NewMap(Options{Zoom: -3}).Zoom())
	assert.Equal(t, MaxZoom, NewMap(Options{Zoom: 99}).Zoom())
	assert.Equal(t, 2, NewMap(Options{Zoom: 2}).Zoom())
}

func TestRender_EmptyCluster(t *testing.T) {
	m, _ := newTestMap(t)
	out := render(t, m)

	root, err := html.Parse(bytes.NewReader(out))
	require.NoError(t, err)
	assert.NotNil(t, htmlutils.ElementByID(root, "map"))

	doc, err := ReadDocument(bytes.NewReader(out))
	require.NoError(t, err)
	require.Len(t, doc.Clusters, 1)
	assert.Equal(t, 0, doc.MarkerCount())
	assert.NotNil(t, doc.Clusters[0].Markers)
	assert.Contains(t, string(out), `"markers":[]`)
}

func TestRender_Document(t *testing.T) {
	m, _ := newTestMap(t,
		Marker{Point: spatial.Point{Lat: 50.775, Lng: 6.08333}, Popup: "Year: 1880", Icon: redMeteor},
		Marker{Point: spatial.Point{Lat: -33.16667, Lng: -64.95}, Popup: "Year Unknown", Icon: redMeteor},
	)

	doc, err := ReadDocument(bytes.NewReader(render(t, m)))
	require.NoError(t, err)

	tiles, _ := Tiles(DefaultTiles)
	expected := &Document{
		Title:  "Test",
		Center: spatial.Origin,
		Zoom:   2,
		Tiles:  []TileLayer{tiles},
		Clusters: []DocumentCluster{{
			Name:  "landings",
			Icons: []Icon{redMeteor},
			Markers: []DocumentMarker{
				{Lat: 50.775, Lng: 6.08333, Popup: "Year: 1880"},
				{Lat: -33.16667, Lng: -64.95, Popup: "Year Unknown"},
			},
		}},
	}

	if diff := cmp.Diff(expected, doc); diff != "" {
		t.Errorf("document mismatch (-want +got):\n%s", diff)
	}
}

func TestRender_IconsAreDeduplicated(t *testing.T) {
	blue := Icon{Color: "blue", Prefix: "fa", Glyph: "star", GlyphColor: "white"}
	m, _ := newTestMap(t,
		Marker{Point: spatial.Point{Lat: 1, Lng: 1}, Icon: redMeteor},
		Marker{Point: spatial.Point{Lat: 2, Lng: 2}, Icon: blue},
		Marker{Point: spatial.Point{Lat: 3, Lng: 3}, Icon: redMeteor},
	)

	doc := m.Document()
	require.Len(t, doc.Clusters, 1)
	assert.Equal(t, []Icon{redMeteor, blue}, doc.Clusters[0].Icons)

	indexes := []int{}
	for _, marker := range doc.Clusters[0].Markers {
		indexes = append(indexes, marker.Icon)
	}

	assert.Equal(t, []int{0, 1, 0}, indexes)
}

func TestRender_PopupCannotBreakOutOfScript(t *testing.T) {
	popup := `Year: </script><script>alert(1)</script>`
	m, _ := newTestMap(t, Marker{Point: spatial.Point{Lat: 1, Lng: 2}, Popup: popup, Icon: redMeteor})
	out := render(t, m)

	assert.NotContains(t, string(out), "<script>alert(1)")

	doc, err := ReadDocument(bytes.NewReader(out))
	require.NoError(t, err)
	require.Equal(t, 1, doc.MarkerCount())
	assert.Equal(t, popup, doc.Clusters[0].Markers[0].Popup)
}

func TestRender_TitleIsEscaped(t *testing.T) {
	m := NewMap(Options{Title: "<b>Landings</b>"})
	out := string(render(t, m))

	assert.Contains(t, out, "<title>&lt;b&gt;Landings&lt;/b&gt;</title>")
}

func TestRender_Deterministic(t *testing.T) {
	build := func() *Map {
		m, _ := newTestMap(t,
			Marker{Point: spatial.Point{Lat: 10, Lng: 20}, Popup: "Year: 1999", Icon: redMeteor},
			Marker{Point: spatial.Point{Lat: -10, Lng: -20}, Popup: "Year Unknown", Icon: redMeteor},
		)

		return m
	}

	assert.Equal(t, render(t, build()), render(t, build()))
}

func TestRender_ClusterOptions(t *testing.T) {
	cluster := NewMarkerCluster("c", ClusterOptions{MaxClusterRadius: 40, DisableClusteringAtZoom: 9})
	m := NewMap(Options{}).AddMarkerCluster(cluster)
	out := string(render(t, m))

	assert.Contains(t, out, `"options":{"maxClusterRadius":40,"disableClusteringAtZoom":9}`)

	m = NewMap(Options{}).AddMarkerCluster(NewMarkerCluster("c", ClusterOptions{}))
	assert.Contains(t, string(render(t, m)), `"options":{}`)
}

func TestSave(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "map.html")
	require.NoError(t, os.WriteFile(path, []byte("stale"), 0o600))

	m, _ := newTestMap(t, Marker{Point: spatial.Point{Lat: 1, Lng: 1}, Popup: "Year: 2000", Icon: redMeteor})
	require.NoError(t, m.Save(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "<!DOCTYPE html>"))
	assert.Equal(t, render(t, m), data)

	doc, err := ReadDocumentFile(path)
	require.NoError(t, err)
	assert.Equal(t, 1, doc.MarkerCount())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files must not be left behind")
}

func TestSave_MissingDirectory(t *testing.T) {
	m, _ := newTestMap(t)
	path := filepath.Join(t.TempDir(), "missing", "map.html")

	err := m.Save(path)
	require.Error(t, err)

	var writeErr *WriteError
	require.True(t, errors.As(err, &writeErr))
	assert.Equal(t, path, writeErr.Path)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestReadDocument_NoData(t *testing.T) {
	_, err := ReadDocument(strings.NewReader("<html><body><p>hi</p></body></html>"))
	assert.ErrorIs(t, err, ErrNoMapData)
}

func TestMarkerCount(t *testing.T) {
	m, cluster := newTestMap(t, Marker{}, Marker{})
	second := NewMarkerCluster("other", ClusterOptions{})
	second.AddMarker(Marker{})
	m.AddMarkerCluster(second)

	assert.Equal(t, 2, cluster.Len())
	assert.Equal(t, 3, m.MarkerCount())
	assert.Equal(t, 3, m.Document().MarkerCount())
}

func TestReadPage_Title(t *testing.T) {
	m := NewMap(Options{Title: "Landings  <&>\n since 1880", Zoom: 2})

	page, err := ReadPage(bytes.NewReader(render(t, m)))
	require.NoError(t, err)

	assert.Equal(t, "Landings <&> since 1880", page.Title)
	assert.Equal(t, "Landings  <&>\n since 1880", page.Document.Title)
}

func TestReadPage_NoTitle(t *testing.T) {
	src := `<html><body><script type="application/json" id="` + DataElementID + `">{"title":"x"}</script></body></html>`

	page, err := ReadPage(strings.NewReader(src))
	require.NoError(t, err)
	assert.Empty(t, page.Title)
	assert.Equal(t, "x", page.Document.Title)
}
