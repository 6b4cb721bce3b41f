// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/jcodagnone/coordparse/config"
	"github.com/jcodagnone/coordparse/coords"
)

var rootOptions struct {
	verbose    bool
	configPath string
	envFile    string
	precision  int
}

func newLogger(w io.Writer, verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}

	return zerolog.New(zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: "2006-01-02 15:04:05",
		NoColor:    !isTerminal(w),
	}).Level(level).With().Timestamp().Logger()
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)

	return ok && isatty.IsTerminal(f.Fd())
}

var rootCmd = &cobra.Command{
	Use:   "coordparse",
	Short: "reads geographic coordinates written in many notations",
	Long: `
coordparse reads latitude/longitude pairs written in decimal, degrees-minutes
or degrees-minutes-seconds notation, with hemisphere letters or signs, and
reports them as decimal degrees.
`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		log.Logger = newLogger(os.Stderr, rootOptions.verbose)
	},
}

// loadConfig resolves the settings: defaults, then the config file, then the
// environment, then the flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.Default()

	if rootOptions.configPath != "" {
		var err error

		cfg, err = config.Load(rootOptions.configPath)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
	}

	if err := cfg.LoadEnv(rootOptions.envFile); err != nil {
		return nil, fmt.Errorf("loading environment: %w", err)
	}

	if cmd.Flags().Changed("precision") {
		cfg.Precision = rootOptions.precision
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// newParser builds the parser described by cfg.
func newParser(cfg *config.Config) (*coords.Parser, error) {
	opts, err := cfg.ParserOptions(log.Logger)
	if err != nil {
		return nil, err
	}

	return coords.NewParser(opts)
}

func setup(cmd *cobra.Command) (*config.Config, *coords.Parser, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}

	p, err := newParser(cfg)
	if err != nil {
		return nil, nil, err
	}

	log.Debug().Int("precision", p.Precision()).Int("formats", len(p.Formats())).Msg("parser ready")

	return cfg, p, nil
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&rootOptions.verbose, "verbose", "v", false, "Log debug messages")
	rootCmd.PersistentFlags().StringVar(&rootOptions.configPath, "config", "", "YAML or TOML config file")
	rootCmd.PersistentFlags().StringVar(&rootOptions.envFile, "env", ".env", "Environment file with COORDPARSE_* overrides")
	rootCmd.PersistentFlags().IntVarP(
		&rootOptions.precision,
		"precision",
		"p",
		coords.DefaultPrecision,
		fmt.Sprintf("Decimal places of the output (0 to %d)", coords.MaxPrecision),
	)
}

var Version = "dev"

func Execute(version string) {
	Version = version
	rootCmd.Version = version

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
