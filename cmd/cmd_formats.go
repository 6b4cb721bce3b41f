// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jcodagnone/coordparse/coords"
)

var formatsMatch string

var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "List the formats the parser understands",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		_, p, err := setup(cmd)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()

		if formatsMatch != "" {
			text := coords.Normalize(formatsMatch)
			n := 0

			for _, f := range p.Formats() {
				if f.CanParse(text) {
					fmt.Fprintln(out, f.Name())
					n++
				}
			}

			if n == 0 {
				return fmt.Errorf("no format accepts %q", formatsMatch)
			}

			return nil
		}

		a, b := strings.Repeat("─", 40), strings.Repeat("─", 40)
		fmt.Fprintf(out, "╭─%-40s─┬─%-40s╮\n", a, b)
		fmt.Fprintf(out, "│ %-40s │ %-40s│\n", "Format", "Examples")
		fmt.Fprintf(out, "├─%-40s─┼─%-40s┤\n", a, b)

		for _, f := range p.Formats() {
			var examples []string
			if g, ok := f.(*coords.Grammar); ok {
				examples = g.Examples()
			}

			if len(examples) == 0 {
				examples = []string{""}
			}

			for i, ex := range examples {
				name := f.Name()
				if i > 0 {
					name = ""
				}

				fmt.Fprintf(out, "│ %-40s │ %-40s│\n", name, ex)
			}
		}

		fmt.Fprintf(out, "╰─%-40s─┴─%-40s╯\n", a, b)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(formatsCmd)
	formatsCmd.Flags().StringVar(&formatsMatch, "match", "", "Only list the formats accepting this text")
}
