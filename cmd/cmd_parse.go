// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jcodagnone/coordparse/coords"
)

var parseOptions struct {
	json bool
	h3   int
}

type parseOutput struct {
	Input     string   `json:"input"`
	Format    string   `json:"format,omitempty"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
	H3        string   `json:"h3,omitempty"`
	Error     string   `json:"error,omitempty"`
	Type      string   `json:"type,omitempty"`
}

// parseOne parses text and writes one line to w. It reports whether the
// text was parsed.
func parseOne(w io.Writer, p *coords.Parser, text string) (bool, error) {
	out := parseOutput{Input: text}

	res, err := p.Match(text)
	if err != nil {
		out.Error = err.Error()
		out.Type = coords.TypeOf(err).String()
	} else {
		lat, lng := res.Point.Lat, res.Point.Lng
		out.Format = res.Format
		out.Latitude, out.Longitude = &lat, &lng

		if parseOptions.h3 >= 0 {
			cell, err := res.Point.Cell(parseOptions.h3)
			if err != nil {
				return false, err
			}

			out.H3 = strconv.FormatUint(cell, 16)
		}
	}

	if parseOptions.json {
		b, err := json.Marshal(out)
		if err != nil {
			return false, err
		}

		_, err = fmt.Fprintf(w, "%s\n", b)

		return out.Error == "", err
	}

	if out.Error != "" {
		_, err = fmt.Fprintf(w, "%s\t%q\n", text, out.Error)

		return false, err
	}

	prec := p.Precision()
	line := fmt.Sprintf("%s\t%s\t%.*f\t%.*f", text, out.Format, prec, *out.Latitude, prec, *out.Longitude)

	if out.H3 != "" {
		line += "\t" + out.H3
	}

	_, err = fmt.Fprintln(w, line)

	return true, err
}

var parseCmd = &cobra.Command{
	Use:   "parse [TEXT...]",
	Short: "Parse coordinates given as arguments or one per line on stdin",
	Long: `Parses every argument, or every stdin line when there are none, and prints
the input followed by the matching format and the decimal latitude and longitude.

$ coordparse parse 'N400723 W0740723'
N400723 W0740723	dms-block-prefixed-hemisphere	40.123	-74.123
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, p, err := setup(cmd)
		if err != nil {
			return err
		}

		failed := 0
		out := cmd.OutOrStdout()

		handle := func(text string) error {
			ok, err := parseOne(out, p, text)
			if !ok {
				failed++
			}

			return err
		}

		if len(args) > 0 {
			for _, arg := range args {
				if err := handle(arg); err != nil {
					return err
				}
			}
		} else {
			input := os.Stdin
			if isTerminal(input) {
				fmt.Fprintln(os.Stderr, "Enter coordinates to parse, one per line…")
			}

			scanner := bufio.NewScanner(input)
			for scanner.Scan() {
				if err := handle(scanner.Text()); err != nil {
					return err
				}
			}

			if err := scanner.Err(); err != nil {
				return fmt.Errorf("reading input: %w", err)
			}
		}

		if failed > 0 {
			return fmt.Errorf("%d input(s) could not be parsed", failed)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().BoolVar(&parseOptions.json, "json", false, "Print one JSON object per input")
	parseCmd.Flags().IntVar(&parseOptions.h3, "h3", -1, "Add the H3 cell at this resolution (0 to 15)")
}
