// Copyright 2025 The MeteorMap Authors
// SPDX-License-Identifier: Apache-2.0

package stats

import (
	"database/sql"
	"testing"

	_ "github.com/duckdb/duckdb-go/v2"
	"github.com/jcodagnone/meteormap/meteorite"
	"github.com/jcodagnone/meteormap/spatial"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uber/h3-go/v4"
)

func setupTestDB(t *testing.T) (*sql.DB, LandingRepository) {
	t.Helper()

	db, err := sql.Open("duckdb", "")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := NewSQLLandingRepository(db)
	require.NoError(t, repo.CreateSchema())

	return db, repo
}

func landing(row int, year string, lat, lng float64) meteorite.Landing {
	return meteorite.Landing{
		RawRecord: meteorite.RawRecord{Row: row, Year: year},
		Point:     spatial.Point{Lat: lat, Lng: lng},
	}
}

var testLandings = []meteorite.Landing{
	landing(1, "01/01/1880 12:00:00 AM", 50.775, 6.08333),
	landing(2, "01/01/1881 12:00:00 AM", 50.776, 6.08334),
	landing(3, "01/01/1951 12:00:00 AM", 56.18333, 10.23333),
	landing(4, "", -33.16667, -64.95),
}

func TestSQLLandingRepository_SaveLandings(t *testing.T) {
	db, repo := setupTestDB(t)

	require.NoError(t, repo.SaveLandings(testLandings))

	var count int
	require.NoError(t, db.QueryRow("SELECT count(*) FROM landings").Scan(&count))
	assert.Equal(t, 4, count)

	var (
		point spatial.Point
		year  sql.NullInt16
		cell  int64
	)

	err := db.QueryRow("SELECT point, landing_year, h3_res3 FROM landings WHERE row_number = 1").Scan(&point, &year, &cell)
	require.NoError(t, err)
	assert.Equal(t, testLandings[0].Point, point)
	assert.Equal(t, sql.NullInt16{Int16: 1880, Valid: true}, year)

	expected, err := h3.LatLngToCell(h3.NewLatLng(50.775, 6.08333), 3)
	require.NoError(t, err)
	assert.Equal(t, int64(expected), cell)

	err = db.QueryRow("SELECT landing_year FROM landings WHERE row_number = 4").Scan(&year)
	require.NoError(t, err)
	assert.False(t, year.Valid)
}

func TestSQLLandingRepository_SaveLandingsReplaces(t *testing.T) {
	_, repo := setupTestDB(t)

	require.NoError(t, repo.SaveLandings(testLandings))
	require.NoError(t, repo.SaveLandings(testLandings[:1]))

	s, err := repo.Summary()
	require.NoError(t, err)
	assert.Equal(t, 1, s.Landings)
}

func TestSQLLandingRepository_Summary(t *testing.T) {
	_, repo := setupTestDB(t)

	s, err := repo.Summary()
	require.NoError(t, err)
	assert.Equal(t, &Summary{}, s)

	require.NoError(t, repo.SaveLandings(testLandings))

	s, err = repo.Summary()
	require.NoError(t, err)
	assert.Equal(t, &Summary{Landings: 4, WithYear: 3, MinYear: 1880, MaxYear: 1951}, s)
}

func TestSQLLandingRepository_TopCells(t *testing.T) {
	_, repo := setupTestDB(t)
	require.NoError(t, repo.SaveLandings(testLandings))

	cells, err := repo.TopCells(2, 10)
	require.NoError(t, err)
	require.Len(t, cells, 3)

	aachen, err := h3.LatLngToCell(h3.NewLatLng(50.775, 6.08333), 2)
	require.NoError(t, err)

	assert.Equal(t, aachen, cells[0].Cell)
	assert.Equal(t, 2, cells[0].Count)
	assert.InDelta(t, 50.7755, cells[0].Centroid.Lat, 1e-9)
	assert.InDelta(t, 6.083335, cells[0].Centroid.Lng, 1e-9)
	assert.Equal(t, 1, cells[1].Count)
	assert.Equal(t, 1, cells[2].Count)

	cells, err = repo.TopCells(2, 1)
	require.NoError(t, err)
	assert.Len(t, cells, 1)
}

func TestSQLLandingRepository_TopCellsValidation(t *testing.T) {
	_, repo := setupTestDB(t)

	_, err := repo.TopCells(0, 10)
	require.Error(t, err)

	_, err = repo.TopCells(MaxResolution+1, 10)
	require.Error(t, err)

	_, err = repo.TopCells(3, 0)
	require.Error(t, err)
}

func TestSQLLandingRepository_Decades(t *testing.T) {
	_, repo := setupTestDB(t)
	require.NoError(t, repo.SaveLandings(testLandings))

	decades, err := repo.Decades()
	require.NoError(t, err)
	assert.Equal(t, []DecadeCount{
		{Decade: 1880, Count: 2},
		{Decade: 1950, Count: 1},
	}, decades)
}
