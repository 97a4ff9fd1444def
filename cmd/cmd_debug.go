// Copyright 2025 The MeteorMap Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/jcodagnone/meteormap/meteorite"
	"github.com/jcodagnone/meteormap/spatial"
	"github.com/spf13/cobra"
)

// isTerminal reports whether f is a character device. When in doubt
// we say that it isn't.
func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}

	return (info.Mode() & os.ModeCharDevice) != 0
}

type geolocationResult struct {
	Status string         `json:"status"`
	Point  *spatial.Point `json:"point,omitempty"`
}

var debugCmd = &cobra.Command{
	Use:   "debug",
	Short: "Dev tools",
}

var debugGeolocationCmd = &cobra.Command{
	Use:   "geolocation",
	Short: "Classifies GeoLocation values the way the map filter does",
	Long: `Reads one GeoLocation value per line, and prints the value followed by its
classification.

$ echo '(50.775, 6.08333)' | meteormap debug geolocation
(50.775, 6.08333)		{"status":"valid","point":{"lat":50.775,"lng":6.08333}}
	`,
	Run: func(_ *cobra.Command, _ []string) {
		input := os.Stdin
		if isTerminal(input) {
			fmt.Fprintln(os.Stderr, "Enter locations to classify, one per line…")
		}
		scanner := bufio.NewScanner(input)
		for scanner.Scan() {
			location := scanner.Text()
			status, point, err := meteorite.Classify(location)
			if err != nil {
				fmt.Printf("%s\t%q\n", location, err)

				continue
			}

			result := geolocationResult{Status: status.String()}
			if status == meteorite.StatusValid {
				result.Point = &point
			}

			if s, err := json.Marshal(result); err == nil {
				fmt.Printf("%s\t\t%s\n", location, s)
			} else {
				log.Fatal(err)
			}
		}
		if err := scanner.Err(); err != nil {
			fmt.Fprintf(os.Stderr, "Error reading input: %s\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(debugCmd)
	debugCmd.AddCommand(debugGeolocationCmd)
	debugCmd.AddCommand(debugDocumentCmd)
}
