// Copyright 2025 The MeteorMap Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/jcodagnone/meteormap/webmap"
	"github.com/spf13/cobra"
)

var debugDocumentFull bool

type documentSummary struct {
	PageTitle string         `json:"page_title"`
	Title     string         `json:"title"`
	Zoom      int            `json:"zoom"`
	Tiles     []string       `json:"tiles"`
	Clusters  map[string]int `json:"clusters"`
	Markers   int            `json:"markers"`
}

func summarizePage(page *webmap.Page) *documentSummary {
	doc := page.Document
	s := &documentSummary{
		PageTitle: page.Title,
		Title:     doc.Title,
		Zoom:      doc.Zoom,
		Clusters:  make(map[string]int, len(doc.Clusters)),
		Markers:   doc.MarkerCount(),
	}

	for _, t := range doc.Tiles {
		s.Tiles = append(s.Tiles, t.Name)
	}

	for _, c := range doc.Clusters {
		s.Clusters[c.Name] += len(c.Markers)
	}

	return s
}

var debugDocumentCmd = &cobra.Command{
	Use:   "document [file]",
	Short: "Reads a rendered map and prints its embedded data as JSON.",
	Long: `Reads a page written by "meteormap render" from a file or from stdin, and
prints a summary of the map it embeds. With --full the whole payload is printed.

Examples:
  meteormap debug document ./meteor_map.html
  cat ./meteor_map.html | meteormap debug document --full`,
	Args: cobra.MaximumNArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		var (
			page *webmap.Page
			err  error
		)

		if len(args) > 0 {
			page, err = webmap.ReadPageFile(args[0])
		} else {
			if isTerminal(os.Stdin) {
				fmt.Fprintln(os.Stderr, "Reading from stdin. Paste HTML and press Ctrl+D to finish.")
			}
			page, err = webmap.ReadPage(os.Stdin)
		}
		if err != nil {
			log.Fatalf("error reading document: %v", err)
		}

		var v any = summarizePage(page)
		if debugDocumentFull {
			v = page.Document
		}

		output, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			log.Fatalf("error marshalling json: %v", err)
		}

		fmt.Println(string(output))
	},
}

func init() {
	debugDocumentCmd.Flags().BoolVar(
		&debugDocumentFull,
		"full",
		false,
		"Prints every marker instead of a summary",
	)
}
