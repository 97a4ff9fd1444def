// Copyright 2025 The MeteorMap Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"database/sql"
	"fmt"
	"log"
	"strings"

	_ "github.com/duckdb/duckdb-go/v2" // register duckdb driver
	"github.com/jcodagnone/meteormap/meteorite"
	"github.com/jcodagnone/meteormap/stats"
	"github.com/jcodagnone/meteormap/utils/textutils"
	"github.com/spf13/cobra"
)

type statsFlags struct {
	DbPath     string
	Resolution int
	Top        int
}

var (
	statsOptions   = meteorite.DefaultOptions()
	statsDelimiter string
	statsConfig    = &statsFlags{}
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarizes where and when the landings were recorded",
	Long: `Loads the landings with known coordinates into DuckDB, indexes them with H3
and prints the busiest cells and the landings per decade.

Examples:
  meteormap stats
  meteormap stats --db ./db/landings.duckdb --resolution 2 --top 20`,
	Args: cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		delimiter, err := parseDelimiter(statsDelimiter)
		if err != nil {
			return err
		}

		statsOptions.Delimiter = delimiter
		if err := statsOptions.Validate(); err != nil {
			return fmt.Errorf("invalid options: %w", err)
		}

		if statsConfig.Resolution < stats.MinResolution || statsConfig.Resolution > stats.MaxResolution {
			return fmt.Errorf("resolution must be between %d and %d", stats.MinResolution, stats.MaxResolution)
		}

		records, err := meteorite.LoadFile(statsOptions.Input, statsOptions)
		if err != nil {
			return err
		}

		landings, metrics, err := meteorite.Filter(records, statsOptions)
		if err != nil {
			return err
		}

		db, err := sql.Open("duckdb", statsConfig.DbPath)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer db.Close()

		repo := stats.NewSQLLandingRepository(db)
		if err := repo.CreateSchema(); err != nil {
			return fmt.Errorf("creating table: %w", err)
		}

		if err := repo.SaveLandings(landings); err != nil {
			return fmt.Errorf("saving landings: %w", err)
		}

		log.Printf("Stored %d landings (%d rows dropped)", len(landings), metrics.Invalid())

		summary, err := repo.Summary()
		if err != nil {
			return err
		}

		cells, err := repo.TopCells(statsConfig.Resolution, statsConfig.Top)
		if err != nil {
			return err
		}

		decades, err := repo.Decades()
		if err != nil {
			return err
		}

		printSummary(summary, &metrics)
		printCells(cells, statsConfig.Resolution)
		printDecades(decades)

		return nil
	},
}

func printSummary(s *stats.Summary, m *meteorite.FilterMetrics) {
	fmt.Printf("☄️  %s landings read, %s with coordinates\n",
		textutils.FormatInt(int64(m.Total)),
		textutils.FormatInt(int64(s.Landings)),
	)

	if s.WithYear > 0 {
		fmt.Printf("📅 %s with a year, from %d to %d\n", textutils.FormatInt(int64(s.WithYear)), s.MinYear, s.MaxYear)
	}
}

func printCells(cells []stats.CellCount, resolution int) {
	a, b, c, d := strings.Repeat("─", 2), strings.Repeat("─", 15), strings.Repeat("─", 8), strings.Repeat("─", 22)
	fmt.Printf("\nBusiest H3 cells at resolution %d:\n", resolution)
	fmt.Printf("╭─%2s─┬─%-15s─┬─%8s─┬─%-22s╮\n", a, b, c, d)
	fmt.Printf("│ %2s │ %-15s │ %8s │ %-22s│\n", "#", "Cell", "Landings", "Centroid (lat, lng)")
	fmt.Printf("├─%2s─┼─%-15s─┼─%8s─┼─%-22s┤\n", a, b, c, d)

	for i, cell := range cells {
		centroid := fmt.Sprintf("(%.4f, %.4f)", cell.Centroid.Lat, cell.Centroid.Lng)
		fmt.Printf("│ %2d │ %-15s │ %8s │ %-22s│\n", i+1, cell.Cell, textutils.FormatInt(int64(cell.Count)), centroid)
	}

	fmt.Printf("╰─%2s─┴─%-15s─┴─%8s─┴─%-22s╯\n", a, b, c, d)
}

func printDecades(decades []stats.DecadeCount) {
	if len(decades) == 0 {
		return
	}

	a, b := strings.Repeat("─", 6), strings.Repeat("─", 8)
	fmt.Println("\nLandings per decade:")
	fmt.Printf("╭─%6s─┬─%8s─╮\n", a, b)
	fmt.Printf("│ %6s │ %8s │\n", "Decade", "Landings")
	fmt.Printf("├─%6s─┼─%8s─┤\n", a, b)

	for _, d := range decades {
		fmt.Printf("│ %5ds │ %8s │\n", d.Decade, textutils.FormatInt(int64(d.Count)))
	}

	fmt.Printf("╰─%6s─┴─%8s─╯\n", a, b)
}

func init() {
	rootCmd.AddCommand(statsCmd)
	addInputFlags(statsCmd, statsOptions, &statsDelimiter)
	statsCmd.Flags().StringVar(
		&statsConfig.DbPath,
		"db",
		"",
		"DuckDB file where the landings are stored. Empty keeps them in memory",
	)
	statsCmd.Flags().IntVar(
		&statsConfig.Resolution,
		"resolution",
		3,
		"H3 resolution used to group landings",
	)
	statsCmd.Flags().IntVar(
		&statsConfig.Top,
		"top",
		10,
		"Number of cells to list",
	)
}
