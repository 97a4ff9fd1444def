// Copyright 2025 The MeteorMap Authors
//
// SPDX-License-Identifier: Apache-2.0
package spatial

import (
	"database/sql/driver"
	"fmt"
	"math"

	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/wkt"
)

// Point represents a geographical point with latitude and longitude.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Origin is the point where the equator meets the prime meridian.
var Origin = Point{}

// Geom returns p as a 2D geometry. Geometries order axes as (x y), that is
// longitude first.
func (p Point) Geom() *geom.Point {
	return geom.NewPointFlat(geom.XY, []float64{p.Lng, p.Lat})
}

// String returns a WKT representation of the Point.
func (p Point) String() string {
	s, err := wkt.Marshal(p.Geom())
	if err != nil {
		// XY points always encode
		return fmt.Sprintf("POINT (%g %g)", p.Lng, p.Lat)
	}

	return s
}

// Finite reports whether both coordinates are real numbers. Values outside
// the WGS84 ranges are finite: longitudes such as 354.47 wrap around the
// globe on a web map.
func (p Point) Finite() bool {
	return !math.IsNaN(p.Lat) && !math.IsNaN(p.Lng) && !math.IsInf(p.Lat, 0) && !math.IsInf(p.Lng, 0)
}

// Value implements the driver.Valuer interface for database serialization.
func (p Point) Value() (driver.Value, error) {
	return wkt.Marshal(p.Geom())
}

// Scan implements the sql.Scanner interface for database deserialization.
func (p *Point) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		p.Lat, p.Lng = 0, 0

		return nil
	case []byte:
		return p.parseWKT(string(v))
	case string:
		return p.parseWKT(v)
	default:
		return fmt.Errorf("spatial: unsupported type for Point scan: %T", value)
	}
}

func (p *Point) parseWKT(s string) error {
	g, err := wkt.Unmarshal(s)
	if err != nil {
		return fmt.Errorf("spatial: invalid WKT point %q: %w", s, err)
	}

	pt, ok := g.(*geom.Point)
	if !ok || pt.Layout() != geom.XY || pt.Empty() {
		return fmt.Errorf("spatial: %q is not a 2D point", s)
	}

	p.Lng, p.Lat = pt.X(), pt.Y()

	return nil
}
