// Copyright 2025 The MeteorMap Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/jcodagnone/meteormap/meteorite"
	"github.com/jcodagnone/meteormap/utils/textutils"
	"github.com/jcodagnone/meteormap/webmap"
	"github.com/spf13/cobra"
)

var (
	renderOptions   = meteorite.DefaultOptions()
	renderDelimiter string
)

// parseDelimiter accepts a single character, or "tab" and `\t` for tabs.
func parseDelimiter(s string) (rune, error) {
	switch strings.ToLower(s) {
	case "tab", `\t`:
		return '\t', nil
	}

	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError || size != len(s) {
		return 0, fmt.Errorf("delimiter must be a single character (got %q)", s)
	}

	return r, nil
}

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Renders the landings with known coordinates into an HTML map",
	Long: `Reads the landings export, drops the rows without coordinates or with the
(0.0, 0.0) placeholder, and writes a standalone HTML page with a clustered
marker per landing.

Examples:
  meteormap render
  meteormap render --input ./Meteorite_Landings.csv --output ./meteor_map.html
  meteormap render --tiles openstreetmap --disable-clustering-at-zoom 8`,
	Args: cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		delimiter, err := parseDelimiter(renderDelimiter)
		if err != nil {
			return err
		}

		renderOptions.Delimiter = delimiter

		metrics, err := meteorite.Run(renderOptions)
		if err != nil {
			return err
		}

		fmt.Printf("☄️  %s landings read\n", textutils.FormatInt(int64(metrics.Total)))
		fmt.Printf("✅ %s with coordinates\n", textutils.FormatInt(int64(metrics.Valid)))
		fmt.Printf("🚫 %s dropped (%s missing, %s at (0.0, 0.0), %s malformed)\n",
			textutils.FormatInt(int64(metrics.Invalid())),
			textutils.FormatInt(int64(metrics.Missing)),
			textutils.FormatInt(int64(metrics.Sentinel)),
			textutils.FormatInt(int64(metrics.Malformed)),
		)
		fmt.Printf("🗺️  %s markers written to %s\n", textutils.FormatInt(int64(metrics.Markers)), metrics.Output)
		if metrics.Shapefile != "" {
			fmt.Printf("📐 %s points written to %s\n", textutils.FormatInt(int64(metrics.Valid)), metrics.Shapefile)
		}

		return nil
	},
}

// addInputFlags registers the flags shared by every command that reads the export.
func addInputFlags(cmd *cobra.Command, opts *meteorite.Options, delimiter *string) {
	cmd.Flags().StringVar(
		&opts.Input,
		"input",
		meteorite.DefaultInput,
		"Landings export to read",
	)
	cmd.Flags().StringVar(
		&opts.YearColumn,
		"year-column",
		meteorite.DefaultYearColumn,
		"Header of the column holding the landing year",
	)
	cmd.Flags().StringVar(
		&opts.LocationColumn,
		"location-column",
		meteorite.DefaultLocationColumn,
		"Header of the column holding the \"(lat, lng)\" coordinates",
	)
	cmd.Flags().StringVar(
		delimiter,
		"delimiter",
		",",
		"Field delimiter of the input file. Use \"tab\" for tab separated files",
	)
	cmd.Flags().BoolVar(
		&opts.SkipMalformed,
		"skip-malformed",
		false,
		"Drops rows with unparsable coordinates instead of failing",
	)
}

func init() {
	rootCmd.AddCommand(renderCmd)
	addInputFlags(renderCmd, renderOptions, &renderDelimiter)
	renderCmd.Flags().StringVar(
		&renderOptions.Output,
		"output",
		meteorite.DefaultOutput,
		"HTML file to write",
	)
	renderCmd.Flags().StringVar(
		&renderOptions.Shapefile,
		"shapefile",
		"",
		"Also writes the landings as a POINT shapefile (.shp) to this path",
	)
	renderCmd.Flags().StringVar(
		&renderOptions.Title,
		"title",
		meteorite.DefaultTitle,
		"Title of the HTML page",
	)
	renderCmd.Flags().IntVar(
		&renderOptions.Zoom,
		"zoom",
		meteorite.DefaultZoom,
		"Initial zoom level",
	)
	renderCmd.Flags().StringVar(
		&renderOptions.Tiles,
		"tiles",
		webmap.DefaultTiles,
		fmt.Sprintf("Base layer, one of: %s", strings.Join(webmap.TileNames(), ", ")),
	)
	renderCmd.Flags().IntVar(
		&renderOptions.ClusterRadius,
		"cluster-radius",
		0,
		"Maximum radius in pixels a cluster covers. 0 keeps the Leaflet default",
	)
	renderCmd.Flags().IntVar(
		&renderOptions.DisableClusteringAtZoom,
		"disable-clustering-at-zoom",
		0,
		"Zoom level from which markers are no longer clustered. 0 never disables clustering",
	)
}
