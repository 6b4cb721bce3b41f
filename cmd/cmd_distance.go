// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var distanceCmd = &cobra.Command{
	Use:   "distance FROM TO",
	Short: "Great-circle distance in meters between two coordinates",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, p, err := setup(cmd)
		if err != nil {
			return err
		}

		from, err := p.Parse(args[0])
		if err != nil {
			return fmt.Errorf("parsing FROM: %w", err)
		}

		to, err := p.Parse(args[1])
		if err != nil {
			return fmt.Errorf("parsing TO: %w", err)
		}

		_, err = fmt.Fprintf(cmd.OutOrStdout(), "%.1f\n", from.HaversineDistance(&to))

		return err
	},
}

func init() {
	rootCmd.AddCommand(distanceCmd)
}
