// Copyright 2025 The MeteorMap Authors
// SPDX-License-Identifier: Apache-2.0

package meteorite

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
)

// newBytesBar returns a progress bar sized to f, or nil when stderr isn't a
// terminal.
func newBytesBar(f *os.File, description string) *progressbar.ProgressBar {
	size := int64(-1)
	if info, err := f.Stat(); err == nil && info.Mode().IsRegular() {
		size = info.Size()
	}

	return newDownloadBar(size, description)
}

// newDownloadBar returns a progress bar for length bytes, which is -1 when
// unknown, or nil when stderr isn't a terminal.
func newDownloadBar(length int64, description string) *progressbar.ProgressBar {
	if !isatty.IsTerminal(os.Stderr.Fd()) {
		return nil
	}

	return progressbar.NewOptions64(length,
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowBytes(true),
		progressbar.OptionClearOnFinish(),
	)
}
