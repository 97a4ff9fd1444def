// Copyright 2025 The MeteorMap Authors
// SPDX-License-Identifier: Apache-2.0

// Package stats indexes landings in DuckDB to summarize where and when they
// were recorded.
package stats

import (
	"database/sql"
	"errors"
	"fmt"
	"log"

	"github.com/jcodagnone/meteormap/meteorite"
	"github.com/jcodagnone/meteormap/spatial"
	"github.com/uber/h3-go/v4"
)

const (
	// MinResolution is the coarsest H3 resolution indexed.
	MinResolution = 1
	// MaxResolution is the finest H3 resolution indexed.
	MaxResolution = 6
)

// Summary describes the stored landings as a whole.
type Summary struct {
	Landings int `json:"landings"`
	WithYear int `json:"with_year"`
	MinYear  int `json:"min_year"`
	MaxYear  int `json:"max_year"`
}

// CellCount is the number of landings inside an H3 cell.
type CellCount struct {
	Cell  h3.Cell `json:"cell"`
	Count int     `json:"count"`
	// Centroid is the mean position of the landings in the cell.
	Centroid spatial.Point `json:"centroid"`
}

// DecadeCount is the number of landings recorded in a decade.
type DecadeCount struct {
	Decade int `json:"decade"`
	Count  int `json:"count"`
}

// LandingRepository stores landings for aggregate queries.
type LandingRepository interface {
	// CreateSchema creates the landings table.
	CreateSchema() error
	// SaveLandings replaces the stored landings with the given ones.
	SaveLandings(landings []meteorite.Landing) error
	// Summary returns totals over the stored landings.
	Summary() (*Summary, error)
	// TopCells returns the most populated cells at the given resolution.
	TopCells(resolution, limit int) ([]CellCount, error)
	// Decades returns the number of landings per decade, oldest first.
	Decades() ([]DecadeCount, error)
}

type sqlLandingRepository struct {
	db *sql.DB
}

// NewSQLLandingRepository creates a repository backed by db.
func NewSQLLandingRepository(db *sql.DB) LandingRepository {
	return &sqlLandingRepository{db: db}
}

func (r *sqlLandingRepository) CreateSchema() error {
	_, err := r.db.Exec(`
		CREATE TABLE IF NOT EXISTS landings (
			row_number INTEGER PRIMARY KEY,
			year_text VARCHAR NOT NULL,
			landing_year SMALLINT,
			point VARCHAR NOT NULL,
			lat DOUBLE NOT NULL,
			lng DOUBLE NOT NULL,
			h3_res1 BIGINT NOT NULL,
			h3_res2 BIGINT NOT NULL,
			h3_res3 BIGINT NOT NULL,
			h3_res4 BIGINT NOT NULL,
			h3_res5 BIGINT NOT NULL,
			h3_res6 BIGINT NOT NULL
		);
	`)

	return err
}

// cellsFor indexes p at every stored resolution.
func cellsFor(p spatial.Point) ([MaxResolution]int64, error) {
	var cells [MaxResolution]int64

	latLng := h3.NewLatLng(p.Lat, p.Lng)

	for res := MinResolution; res <= MaxResolution; res++ {
		cell, err := h3.LatLngToCell(latLng, res)
		if err != nil {
			return cells, fmt.Errorf("error converting to h3 cell at res %d: %w", res, err)
		}

		cells[res-1] = int64(cell)
	}

	return cells, nil
}

func (r *sqlLandingRepository) SaveLandings(landings []meteorite.Landing) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}

	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			log.Printf("failed to rollback landings transaction: %v", err)
		}
	}()

	if _, err := tx.Exec("DELETE FROM landings"); err != nil {
		return fmt.Errorf("deleting landings: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO landings (
			row_number, year_text, landing_year, point, lat, lng,
			h3_res1, h3_res2, h3_res3, h3_res4, h3_res5, h3_res6
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	for _, l := range landings {
		cells, err := cellsFor(l.Point)
		if err != nil {
			return fmt.Errorf("indexing row %d: %w", l.Row, err)
		}

		var year sql.NullInt16
		if y, ok := ParseYear(l.Year); ok {
			year.Int16 = int16(y) // #nosec G115 - ParseYear yields at most four digits
			year.Valid = true
		}

		if _, err := stmt.Exec(
			l.Row,
			l.Year,
			year,
			l.Point,
			l.Point.Lat,
			l.Point.Lng,
			cells[0], cells[1], cells[2], cells[3], cells[4], cells[5],
		); err != nil {
			return fmt.Errorf("inserting row %d: %w", l.Row, err)
		}
	}

	return tx.Commit()
}

func (r *sqlLandingRepository) Summary() (*Summary, error) {
	var s Summary

	err := r.db.QueryRow(`
		SELECT
			count(*),
			count(landing_year),
			coalesce(min(landing_year), 0),
			coalesce(max(landing_year), 0)
		FROM landings
	`).Scan(&s.Landings, &s.WithYear, &s.MinYear, &s.MaxYear)
	if err != nil {
		return nil, fmt.Errorf("summarizing landings: %w", err)
	}

	return &s, nil
}

func (r *sqlLandingRepository) TopCells(resolution, limit int) ([]CellCount, error) {
	if resolution < MinResolution || resolution > MaxResolution {
		return nil, fmt.Errorf("resolution must be between %d and %d (got %d)", MinResolution, MaxResolution, resolution)
	}

	if limit <= 0 {
		return nil, fmt.Errorf("limit must be positive (got %d)", limit)
	}

	// The column name can't be a parameter; resolution was validated above.
	column := fmt.Sprintf("h3_res%d", resolution)

	rows, err := r.db.Query(fmt.Sprintf(`
		SELECT %[1]s, count(*) AS n, avg(lat), avg(lng)
		FROM landings
		GROUP BY %[1]s
		ORDER BY n DESC, %[1]s
		LIMIT ?
	`, column), limit) // #nosec G201 - column is built from a validated integer
	if err != nil {
		return nil, fmt.Errorf("querying cells: %w", err)
	}
	defer rows.Close()

	var cells []CellCount

	for rows.Next() {
		var (
			c    CellCount
			cell int64
		)

		if err := rows.Scan(&cell, &c.Count, &c.Centroid.Lat, &c.Centroid.Lng); err != nil {
			return nil, fmt.Errorf("scanning cell: %w", err)
		}

		c.Cell = h3.Cell(cell)
		cells = append(cells, c)
	}

	return cells, rows.Err()
}

func (r *sqlLandingRepository) Decades() ([]DecadeCount, error) {
	rows, err := r.db.Query(`
		SELECT CAST(landing_year - landing_year % 10 AS INTEGER) AS decade, count(*)
		FROM landings
		WHERE landing_year IS NOT NULL
		GROUP BY decade
		ORDER BY decade
	`)
	if err != nil {
		return nil, fmt.Errorf("querying decades: %w", err)
	}
	defer rows.Close()

	var decades []DecadeCount

	for rows.Next() {
		var d DecadeCount
		if err := rows.Scan(&d.Decade, &d.Count); err != nil {
			return nil, fmt.Errorf("scanning decade: %w", err)
		}

		decades = append(decades, d)
	}

	return decades, rows.Err()
}
