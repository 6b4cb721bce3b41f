// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/jcodagnone/coordparse/extract"
	"github.com/jcodagnone/coordparse/utils/httputils"
)

var extractOptions struct {
	json    bool
	timeout time.Duration
	merge   float64
}

var extractCmd = &cobra.Command{
	Use:   "extract FILE|URL",
	Short: "Print the coordinates found in an HTML document",
	Long: `Reads an HTML document from a local file or an http(s) URL, splits it into
text fragments (paragraphs, list items, table cells...) and prints every
coordinate that parses.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, p, err := setup(cmd)
		if err != nil {
			return err
		}

		src := args[0]

		var found []extract.Found

		if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
			client := httputils.NewClient(log.Logger, extractOptions.timeout, "coordparse/"+Version)

			found, err = extract.FromURL(p, client, src)
		} else {
			f, ferr := os.Open(src)
			if ferr != nil {
				return fmt.Errorf("opening document: %w", ferr)
			}
			defer f.Close()

			found, err = extract.FromReader(p, f)
		}

		if err != nil {
			return err
		}

		log.Debug().Str("source", src).Int("found", len(found)).Msg("extraction done")

		if extractOptions.merge > 0 {
			clusters := extract.Cluster(found, extractOptions.merge)
			merged := make([]extract.Found, 0, len(clusters))

			for _, c := range clusters {
				merged = append(merged, c[0])
			}

			log.Debug().Int("found", len(found)).Int("merged", len(merged)).Msg("merged nearby coordinates")

			found = merged
		}

		out := cmd.OutOrStdout()
		prec := p.Precision()

		for _, f := range found {
			if extractOptions.json {
				b, err := json.Marshal(f)
				if err != nil {
					return err
				}

				fmt.Fprintf(out, "%s\n", b)

				continue
			}

			fmt.Fprintf(out, "%.*f\t%.*f\t%s\t%s\n", prec, f.Point.Lat, prec, f.Point.Lng, f.Format, f.Text)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(extractCmd)
	extractCmd.Flags().BoolVar(&extractOptions.json, "json", false, "Print one JSON object per coordinate")
	extractCmd.Flags().Float64Var(
		&extractOptions.merge,
		"merge",
		0,
		"Report once the coordinates closer than this many meters to each other",
	)
	extractCmd.Flags().DurationVar(&extractOptions.timeout, "timeout", 30*time.Second, "HTTP timeout when fetching a URL")
}
