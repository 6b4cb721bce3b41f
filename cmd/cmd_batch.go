// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/jcodagnone/coordparse/batch"
	"github.com/jcodagnone/coordparse/store"
)

var batchOptions struct {
	dbPath   string
	maxProcs int
	dryRun   bool
}

var batchCmd = &cobra.Command{
	Use:   "batch FILE|-",
	Short: "Parse every line of a file and store the results",
	Long: `Parses one coordinate per line (blank lines and lines starting with # are
skipped) and stores every result, parsed or not, in DuckDB under a new run.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, p, err := setup(cmd)
		if err != nil {
			return err
		}

		source := args[0]

		var r io.Reader = os.Stdin
		if source != "-" {
			f, err := os.Open(source)
			if err != nil {
				return fmt.Errorf("opening input: %w", err)
			}
			defer f.Close()

			r = f
		}

		lines, err := batch.ReadLines(r)
		if err != nil {
			return err
		}

		opts := batch.Options{
			H3Resolution: cfg.H3Resolution,
			MaxProcs:     batchOptions.maxProcs,
			Logger:       log.Logger,
		}

		if isatty.IsTerminal(os.Stderr.Fd()) {
			bar := progressbar.NewOptions(len(lines),
				progressbar.OptionSetDescription("Parsing "+source),
				progressbar.OptionSetWriter(os.Stderr),
				progressbar.OptionShowCount(),
				progressbar.OptionClearOnFinish(),
			)
			opts.Progress = func() {
				if err := bar.Add(1); err != nil {
					log.Warn().Err(err).Msg("updating progress bar")
				}
			}
		}

		results, summary := batch.Process(p, lines, opts)

		if !batchOptions.dryRun {
			dbPath := cfg.Store.Path
			if cmd.Flags().Changed("db") {
				dbPath = batchOptions.dbPath
			}

			if err := save(dbPath, source, results); err != nil {
				return err
			}
		}

		_, err = fmt.Fprintln(cmd.OutOrStdout(), summary)

		return err
	},
}

func save(dbPath, source string, results []*store.Result) error {
	repo, err := store.Open(dbPath)
	if err != nil {
		return err
	}
	defer repo.DB().Close()

	run, err := repo.CreateRun(source)
	if err != nil {
		return err
	}

	if err := repo.SaveResults(run.ID, results); err != nil {
		return err
	}

	log.Info().Str("run", run.ID).Str("db", dbPath).Int("results", len(results)).Msg("results stored")

	return nil
}

var batchRunsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List the stored batch runs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		dbPath := cfg.Store.Path
		if cmd.Flags().Changed("db") {
			dbPath = batchOptions.dbPath
		}

		repo, err := store.Open(dbPath)
		if err != nil {
			return err
		}
		defer repo.DB().Close()

		runs, err := repo.Runs()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, run := range runs {
			fmt.Fprintf(out, "%s\t%s\t%s\t%d\t%d\n",
				run.ID, run.CreatedAt.Format("2006-01-02 15:04:05"), run.Source, run.Total, run.Failed)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(batchCmd)
	batchCmd.AddCommand(batchRunsCmd)
	batchCmd.PersistentFlags().StringVar(&batchOptions.dbPath, "db", "coordparse.duckdb", "DuckDB file where results are stored")
	batchCmd.Flags().IntVar(
		&batchOptions.maxProcs,
		"max-procs",
		0,
		"Max number of concurrent parses. Defaults to the number of CPUs",
	)
	batchCmd.Flags().BoolVar(&batchOptions.dryRun, "dry-run", false, "Print the summary without storing results")
}
