// Copyright 2025 The MeteorMap Authors
// SPDX-License-Identifier: Apache-2.0

// Package httputils provides the HTTP client used to fetch datasets.
package httputils

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httputil"
	"strings"
	"time"
)

// TracingTransport writes every request and response it sees to Writer.
type TracingTransport struct {
	Transport http.RoundTripper
	Writer    io.Writer
	// DumpBody includes response bodies in the trace. Datasets are large, so
	// the dump is abbreviated.
	DumpBody bool
}

// abbreviate prefixes each line and caps both the number of lines and their width.
func abbreviate(lines []string, prefix rune) []string {
	const maxLines, maxChars = 64, 256

	if len(lines) > maxLines {
		lines = append(lines[:maxLines], "…")
	}

	for i, line := range lines {
		if len(line) > maxChars {
			line = line[:maxChars] + "…"
		}

		lines[i] = fmt.Sprintf("%c %s", prefix, line)
	}

	return lines
}

func (t *TracingTransport) dumpRequest(req *http.Request) error {
	dump, err := httputil.DumpRequestOut(req, true)
	if err != nil {
		return fmt.Errorf("tracing HTTP request: %w", err)
	}

	lines := abbreviate(strings.Split(strings.TrimRight(string(dump), "\r\n"), "\n"), '>')
	_, err = fmt.Fprintln(t.Writer, strings.Join(lines, "\n"))

	return err
}

func (t *TracingTransport) dumpResponse(resp *http.Response, duration time.Duration) error {
	dump, err := httputil.DumpResponse(resp, t.DumpBody)
	if err != nil {
		return fmt.Errorf("tracing HTTP response: %w", err)
	}

	if _, err := fmt.Fprintf(t.Writer, "< RESPONSE: [%v]\n", duration); err != nil {
		return fmt.Errorf("tracing HTTP response: %w", err)
	}

	lines := abbreviate(strings.Split(strings.TrimRight(string(dump), "\r\n"), "\n"), '<')
	_, err = fmt.Fprintln(t.Writer, strings.Join(lines, "\n"))

	return err
}

// RoundTrip implements the http.RoundTripper interface.
func (t *TracingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.Writer == nil {
		return t.Transport.RoundTrip(req)
	}

	if err := t.dumpRequest(req); err != nil {
		return nil, err
	}

	start := time.Now()

	resp, err := t.Transport.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	if err := t.dumpResponse(resp, time.Since(start)); err != nil {
		resp.Body.Close()

		return nil, err
	}

	return resp, nil
}

// HeaderTransport sets fixed headers on every request.
type HeaderTransport struct {
	Transport http.RoundTripper
	Headers   map[string]string
}

// RoundTrip implements the http.RoundTripper interface.
func (t *HeaderTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	for k, v := range t.Headers {
		req.Header.Set(k, v)
	}

	return t.Transport.RoundTrip(req)
}

// ClientOptions configures NewClient.
type ClientOptions struct {
	UserAgent string
	// Timeout bounds the whole exchange, body included. Zero means no limit.
	Timeout time.Duration
	// Trace receives a dump of every exchange when not nil.
	Trace     io.Writer
	TraceBody bool
}

// NewClient builds a client that identifies itself with opts.UserAgent and
// optionally traces its traffic.
func NewClient(opts ClientOptions) *http.Client {
	var transport http.RoundTripper = http.DefaultTransport

	if opts.Trace != nil {
		transport = &TracingTransport{Transport: transport, Writer: opts.Trace, DumpBody: opts.TraceBody}
	}

	if opts.UserAgent != "" {
		transport = &HeaderTransport{Transport: transport, Headers: map[string]string{"User-Agent": opts.UserAgent}}
	}

	return &http.Client{Transport: transport, Timeout: opts.Timeout}
}
