// Copyright 2025 The MeteorMap Authors
// SPDX-License-Identifier: Apache-2.0

package meteorite

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/jcodagnone/meteormap/utils/textutils"
)

// LoadFile reads the records stored at path. The file is closed before
// returning, whatever the outcome.
func LoadFile(path string, opts *Options) ([]RawRecord, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, &Error{Type: ErrorTypeFileAccess, Message: "opening input", Path: path, Err: err}
	}
	defer f.Close()

	var r io.Reader = f

	bar := newBytesBar(f, "Loading "+filepath.Base(path))
	if bar != nil {
		r = io.TeeReader(f, bar)
	}

	records, err := Load(r, opts)

	if bar != nil {
		if ferr := bar.Finish(); ferr != nil {
			log.Printf("finishing progress bar: %v", ferr)
		}
	}

	if err != nil {
		var e *Error
		if errors.As(err, &e) && e.Path == "" {
			e.Path = path
		}

		return nil, err
	}

	return records, nil
}

// Load reads delimited text from r. The first row is the header; every other
// row yields one RawRecord, in input order, carrying only the year and
// location columns named in opts. Rows shorter than the header are padded
// with empty fields.
func Load(r io.Reader, opts *Options) ([]RawRecord, error) {
	reader := csv.NewReader(textutils.NewUTF8Reader(r))
	reader.Comma = opts.Delimiter
	reader.FieldsPerRecord = -1
	reader.ReuseRecord = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, &Error{Type: ErrorTypeSchema, Message: "input is empty, expected a header row"}
	}

	if err != nil {
		return nil, &Error{Type: ErrorTypeFileAccess, Message: "reading header", Err: err}
	}

	header = append([]string(nil), header...)

	yearIdx, err := columnIndex(header, opts.YearColumn)
	if err != nil {
		return nil, err
	}

	locationIdx, err := columnIndex(header, opts.LocationColumn)
	if err != nil {
		return nil, err
	}

	var records []RawRecord

	for row := 1; ; row++ {
		fields, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, &Error{Type: ErrorTypeFileAccess, Message: "reading input", Row: row, Err: err}
		}

		records = append(records, RawRecord{
			Row:      row,
			Year:     field(fields, yearIdx),
			Location: field(fields, locationIdx),
		})
	}

	return records, nil
}

func field(fields []string, idx int) string {
	if idx < len(fields) {
		return fields[idx]
	}

	return ""
}

// columnIndex finds name in header. An exact match wins; otherwise names are
// compared case and accent insensitively.
func columnIndex(header []string, name string) (int, error) {
	for i, h := range header {
		if h == name {
			return i, nil
		}
	}

	folded := textutils.LowerASCIIFolding(name)
	for i, h := range header {
		if textutils.LowerASCIIFolding(h) == folded {
			return i, nil
		}
	}

	return -1, &Error{
		Type:    ErrorTypeSchema,
		Message: fmt.Sprintf("missing column %q (found: %s)", name, strings.Join(header, ", ")),
	}
}
