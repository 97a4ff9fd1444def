// Copyright 2025 The MeteorMap Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/jcodagnone/meteormap/meteorite"
	"github.com/jcodagnone/meteormap/utils/httputils"
	"github.com/jcodagnone/meteormap/utils/textutils"
	"github.com/spf13/cobra"
)

type fetchFlags struct {
	URL           string
	Output        string
	Timeout       time.Duration
	TraceHTTP     bool
	TraceHTTPBody bool
}

var fetchOptions = &fetchFlags{}

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Downloads the landings export from NASA Open Data",
	Long: `Downloads the landings CSV so that "meteormap render" can read it. An existing
file is only replaced once the download completes.

Examples:
  meteormap fetch
  meteormap fetch --output ./data/Meteorite_Landings.csv --trace-http`,
	Args: cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		var trace io.Writer
		if fetchOptions.TraceHTTP || fetchOptions.TraceHTTPBody {
			trace = os.Stderr
		}

		client := httputils.NewClient(httputils.ClientOptions{
			UserAgent: fmt.Sprintf("meteormap/%s (+https://github.com/jcodagnone/meteormap)", Version),
			Timeout:   fetchOptions.Timeout,
			Trace:     trace,
			TraceBody: fetchOptions.TraceHTTPBody,
		})

		log.Printf("Downloading %s", fetchOptions.URL)

		n, err := meteorite.Fetch(ctx, client, fetchOptions.URL, fetchOptions.Output)
		if err != nil {
			return err
		}

		fmt.Printf("📥 %s bytes written to %s\n", textutils.FormatInt(n), fetchOptions.Output)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(fetchCmd)
	fetchCmd.Flags().StringVar(
		&fetchOptions.URL,
		"url",
		meteorite.DefaultSourceURL,
		"Location of the landings export",
	)
	fetchCmd.Flags().StringVar(
		&fetchOptions.Output,
		"output",
		meteorite.DefaultInput,
		"File where the export is stored",
	)
	fetchCmd.Flags().DurationVar(
		&fetchOptions.Timeout,
		"timeout",
		5*time.Minute,
		"Maximum time for the whole download. 0 disables the limit",
	)
	fetchCmd.Flags().BoolVar(
		&fetchOptions.TraceHTTP,
		"trace-http",
		false,
		"Display HTTP requests-responses",
	)
	fetchCmd.Flags().BoolVar(
		&fetchOptions.TraceHTTPBody,
		"trace-http-body",
		false,
		"Display HTTP requests-responses bodies",
	)
}
