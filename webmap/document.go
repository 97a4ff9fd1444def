// Copyright 2025 The MeteorMap Authors
// SPDX-License-Identifier: Apache-2.0

package webmap

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jcodagnone/meteormap/utils/htmlutils"
	"golang.org/x/net/html"
)

// ErrNoMapData is returned when a page has no embedded map payload.
var ErrNoMapData = errors.New("no map data found in document")

// Page is an exported map read back from HTML.
type Page struct {
	// Title is the text of the page <title>, which may differ from the
	// payload title if the file was edited by hand.
	Title    string
	Document *Document
}

// pageTitle returns the whitespace-normalized text of the first <title>.
func pageTitle(node *html.Node) string {
	titles := htmlutils.ElementsByTag(node, "title")
	if len(titles) == 0 {
		return ""
	}

	var sb strings.Builder
	htmlutils.Node2string(titles[0], &sb)

	return sb.String()
}

// ReadPage parses an exported page and returns its title and payload.
func ReadPage(r io.Reader) (*Page, error) {
	node, err := htmlutils.AsNode(r)
	if err != nil {
		return nil, err
	}

	script := htmlutils.ElementByID(node, DataElementID)
	if script == nil {
		return nil, ErrNoMapData
	}

	var doc Document
	if err := json.Unmarshal([]byte(htmlutils.RawText(script)), &doc); err != nil {
		return nil, fmt.Errorf("decoding map data: %w", err)
	}

	return &Page{Title: pageTitle(node), Document: &doc}, nil
}

// ReadPageFile is ReadPage for a file on disk.
func ReadPageFile(path string) (*Page, error) {
	f, err := os.Open(path) // #nosec G304 - path is provided by the user
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	return ReadPage(f)
}

// ReadDocument parses an exported page and returns its embedded payload.
func ReadDocument(r io.Reader) (*Document, error) {
	page, err := ReadPage(r)
	if err != nil {
		return nil, err
	}

	return page.Document, nil
}

// ReadDocumentFile is ReadDocument for a file on disk.
func ReadDocumentFile(path string) (*Document, error) {
	page, err := ReadPageFile(path)
	if err != nil {
		return nil, err
	}

	return page.Document, nil
}
