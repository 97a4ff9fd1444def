// Copyright 2025 The MeteorMap Authors
// SPDX-License-Identifier: Apache-2.0

// Package textutils provides small text helpers shared by the commands.
package textutils

import (
	"io"
	"strconv"
	"strings"
	"unicode"

	xunicode "golang.org/x/text/encoding/unicode"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// LowerASCIIFolding normalizes a string by removing accents, lowercasing, and trimming spaces.
func LowerASCIIFolding(s string) string {
	s, _, _ = transform.String(
		transform.Chain(
			norm.NFD,
			runes.Remove(runes.In(unicode.Mn)),
			norm.NFC,
		),
		strings.TrimSpace(strings.ToLower(s)),
	)

	return s
}

// NewUTF8Reader returns a reader that yields UTF-8 text. A leading byte order
// mark is consumed, and UTF-16 input announced by its BOM is transcoded.
// Spreadsheet exports often start with one, which would otherwise end up
// glued to the first header name.
func NewUTF8Reader(r io.Reader) io.Reader {
	return transform.NewReader(r, xunicode.BOMOverride(xunicode.UTF8.NewDecoder()))
}

// FormatInt formats an integer with commas for human readability.
func FormatInt(n int64) string {
	in := strconv.FormatInt(n, 10)

	numOfDigits := len(in)
	if n < 0 {
		numOfDigits-- // First character is the - sign (not a digit)
	}

	numOfCommas := (numOfDigits - 1) / 3

	out := make([]byte, len(in)+numOfCommas)
	if n < 0 {
		in, out[0] = in[1:], '-'
	}

	for i, j, k := len(in)-1, len(out)-1, 0; ; i, j = i-1, j-1 {
		out[j] = in[i]
		if i == 0 {
			return string(out)
		}

		if k++; k == 3 {
			j, k = j-1, 0
			out[j] = ','
		}
	}
}
