// Copyright 2025 The MeteorMap Authors
// SPDX-License-Identifier: Apache-2.0

package meteorite

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
)

// DefaultSourceURL is the CSV export of the NASA Open Data landings dataset.
const DefaultSourceURL = "https://data.nasa.gov/api/views/gh4g-b5fk/rows.csv?accessType=DOWNLOAD"

// Fetch downloads url into path, replacing any existing file, and returns the
// number of bytes written. The body is staged in a temporary file next to path
// so an interrupted download keeps the previous copy.
func Fetch(ctx context.Context, client *http.Client, url, path string) (n int64, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, &Error{Type: ErrorTypeDownload, Message: "building request", Err: err}
	}

	resp, err := client.Do(req)
	if err != nil {
		return 0, &Error{Type: ErrorTypeDownload, Message: "requesting " + url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, &Error{
			Type:    ErrorTypeDownload,
			Message: "requesting " + url,
			Err:     fmt.Errorf("unexpected status %s", resp.Status),
		}
	}

	writeErr := func(err error) error {
		return &Error{Type: ErrorTypeWrite, Message: "saving download", Path: path, Err: err}
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".meteormap-*.csv")
	if err != nil {
		return 0, writeErr(err)
	}

	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	var body io.Reader = resp.Body

	bar := newDownloadBar(resp.ContentLength, "Downloading "+filepath.Base(path))
	if bar != nil {
		body = io.TeeReader(resp.Body, bar)
	}

	bw := bufio.NewWriter(tmp)
	n, err = io.Copy(bw, body)

	if bar != nil {
		if ferr := bar.Finish(); ferr != nil {
			log.Printf("finishing progress bar: %v", ferr)
		}
	}

	if err != nil {
		_ = tmp.Close()

		return 0, &Error{Type: ErrorTypeDownload, Message: "reading " + url, Err: err}
	}

	if err = errors.Join(bw.Flush(), tmp.Close()); err != nil {
		return 0, writeErr(err)
	}

	// #nosec G302 - the dataset is public
	if err = os.Chmod(tmp.Name(), 0o644); err != nil {
		return 0, writeErr(err)
	}

	if err = os.Rename(tmp.Name(), path); err != nil {
		return 0, writeErr(err)
	}

	return n, nil
}
