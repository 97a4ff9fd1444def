// Copyright 2025 The MeteorMap Authors
// SPDX-License-Identifier: Apache-2.0

package meteorite

import (
	"errors"
	"fmt"
)

// ErrorType classifies pipeline failures.
type ErrorType int

const (
	// ErrorTypeUnknown unclassified failure.
	ErrorTypeUnknown ErrorType = iota
	// ErrorTypeFileAccess the input can't be opened or read.
	ErrorTypeFileAccess
	// ErrorTypeSchema an expected column is missing from the header.
	ErrorTypeSchema
	// ErrorTypeParse a location string is malformed.
	ErrorTypeParse
	// ErrorTypeWrite the output document can't be written.
	ErrorTypeWrite
	// ErrorTypeDownload the dataset can't be fetched.
	ErrorTypeDownload
)

func (t ErrorType) String() string {
	switch t {
	case ErrorTypeFileAccess:
		return "file access error"
	case ErrorTypeSchema:
		return "schema error"
	case ErrorTypeParse:
		return "parse error"
	case ErrorTypeWrite:
		return "write error"
	case ErrorTypeDownload:
		return "download error"
	default:
		return "unknown error"
	}
}

// Error is returned by every stage of the pipeline.
type Error struct {
	Type    ErrorType
	Message string
	// Path is the file involved, if any.
	Path string
	// Row is the 1-based data row (header excluded), or 0 when not row specific.
	Row int
	Err error
}

func (e *Error) Error() string {
	msg := e.Message
	if e.Row > 0 {
		msg = fmt.Sprintf("row %d: %s", e.Row, msg)
	}

	if e.Path != "" {
		msg = fmt.Sprintf("%s: %s", e.Path, msg)
	}

	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}

	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

func isType(err error, t ErrorType) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Type == t
	}

	return false
}

// IsFileAccessError reports whether err is caused by an unreadable input.
func IsFileAccessError(err error) bool { return isType(err, ErrorTypeFileAccess) }

// IsSchemaError reports whether err is caused by a missing column.
func IsSchemaError(err error) bool { return isType(err, ErrorTypeSchema) }

// IsParseError reports whether err is caused by a malformed location.
func IsParseError(err error) bool { return isType(err, ErrorTypeParse) }

// IsWriteError reports whether err is caused by an undeliverable output.
func IsWriteError(err error) bool { return isType(err, ErrorTypeWrite) }

// IsDownloadError reports whether err is caused by a failed dataset download.
func IsDownloadError(err error) bool { return isType(err, ErrorTypeDownload) }
