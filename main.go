// Copyright 2025 The MeteorMap Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"github.com/jcodagnone/meteormap/cmd"
)

var Version = "development"

func main() {
	cmd.Execute(Version)
}
