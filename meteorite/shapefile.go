// Copyright 2025 The MeteorMap Authors
// SPDX-License-Identifier: Apache-2.0

package meteorite

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/jonas-p/go-shp"
)

// ShapefileExt is the required suffix of shapefile paths. It is lowercase
// because the sibling .shx and .dbf files are always created lowercase.
const ShapefileExt = ".shp"

// Shapefile attribute columns, in DBF order.
const (
	shpFieldRow = iota
	shpFieldYear
)

// maxYearWidth is the DBF width in bytes of the year column. Longer values
// are cut on a rune boundary.
const maxYearWidth = 32

var landingFields = []shp.Field{
	shp.NumberField("ROW", 10),
	shp.StringField("YEAR", maxYearWidth),
}

// WriteShapefile stores landings as a POINT shapefile at path (plus the
// sibling .shx and .dbf files), one shape per landing with its data row and
// year as attributes.
func WriteShapefile(path string, landings []Landing) error {
	if !strings.HasSuffix(path, ShapefileExt) {
		return &Error{Type: ErrorTypeWrite, Message: "shapefile name must end in " + ShapefileExt, Path: path}
	}

	w, err := shp.Create(path, shp.POINT)
	if err != nil {
		return &Error{Type: ErrorTypeWrite, Message: "creating shapefile", Path: path, Err: err}
	}
	defer w.Close()

	if err := w.SetFields(landingFields); err != nil {
		return &Error{Type: ErrorTypeWrite, Message: "creating shapefile attributes", Path: path, Err: err}
	}

	for _, l := range landings {
		idx := int(w.Write(&shp.Point{X: l.Point.Lng, Y: l.Point.Lat}))

		year := truncateUTF8(l.Year, maxYearWidth)

		if err := w.WriteAttribute(idx, shpFieldRow, l.Row); err != nil {
			return &Error{Type: ErrorTypeWrite, Message: "writing row attribute", Path: path, Row: l.Row, Err: err}
		}

		if err := w.WriteAttribute(idx, shpFieldYear, year); err != nil {
			return &Error{Type: ErrorTypeWrite, Message: fmt.Sprintf("writing year %q", year), Path: path, Row: l.Row, Err: err}
		}
	}

	return nil
}

// truncateUTF8 cuts s to at most n bytes without splitting a rune.
func truncateUTF8(s string, n int) string {
	if len(s) <= n {
		return s
	}

	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}

	return s[:n]
}
