// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

// Package config loads coordparse settings from YAML or TOML files and from
// the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/jcodagnone/coordparse/coords"
	"github.com/jcodagnone/coordparse/spatial"
)

// Environment variables read by LoadEnv.
const (
	EnvPrecision    = "COORDPARSE_PRECISION"
	EnvAddr         = "COORDPARSE_ADDR"
	EnvDB           = "COORDPARSE_DB"
	EnvH3Resolution = "COORDPARSE_H3_RESOLUTION"
)

// DefaultH3Resolution is roughly a city block.
const DefaultH3Resolution = 9

// Config is the full set of settings.
type Config struct {
	Precision    int            `yaml:"precision" toml:"precision"`
	Normalize    bool           `yaml:"normalize" toml:"normalize"`
	Extend       bool           `yaml:"extend" toml:"extend"`
	H3Resolution int            `yaml:"h3_resolution" toml:"h3_resolution"`
	Formats      []FormatConfig `yaml:"formats" toml:"formats"`
	Server       ServerConfig   `yaml:"server" toml:"server"`
	Store        StoreConfig    `yaml:"store" toml:"store"`
}

// FormatConfig declares an additional grammar.
type FormatConfig struct {
	Name      string       `yaml:"name" toml:"name"`
	Notation  string       `yaml:"notation" toml:"notation"`
	Pattern   string       `yaml:"pattern" toml:"pattern"`
	Latitude  coords.Roles `yaml:"latitude" toml:"latitude"`
	Longitude coords.Roles `yaml:"longitude" toml:"longitude"`
	Examples  []string     `yaml:"examples" toml:"examples"`
}

type ServerConfig struct {
	Addr string `yaml:"addr" toml:"addr"`
}

type StoreConfig struct {
	Path string `yaml:"path" toml:"path"`
}

// Default returns the settings used when nothing is configured.
func Default() *Config {
	return &Config{
		Precision:    coords.DefaultPrecision,
		Normalize:    true,
		Extend:       true,
		H3Resolution: DefaultH3Resolution,
		Server:       ServerConfig{Addr: "localhost:8080"},
		Store:        StoreConfig{Path: "coordparse.duckdb"},
	}
}

// Load reads path on top of Default. The decoder is chosen by extension:
// .yaml, .yml or .toml.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, cfg)
	case ".toml":
		err = toml.Unmarshal(b, cfg)
	default:
		return nil, fmt.Errorf("unsupported config format %q (want .yaml, .yml or .toml)", ext)
	}

	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}

	return cfg, nil
}

// LoadEnv loads envFile into the process environment, if it exists, and
// applies the COORDPARSE_* overrides to c.
func (c *Config) LoadEnv(envFile string) error {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("loading %s: %w", envFile, err)
		}
	}

	if v, ok := os.LookupEnv(EnvPrecision); ok {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s: %w", EnvPrecision, err)
		}

		c.Precision = n
	}

	if v, ok := os.LookupEnv(EnvH3Resolution); ok {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s: %w", EnvH3Resolution, err)
		}

		c.H3Resolution = n
	}

	if v := os.Getenv(EnvAddr); v != "" {
		c.Server.Addr = v
	}

	if v := os.Getenv(EnvDB); v != "" {
		c.Store.Path = v
	}

	return nil
}

// Validate checks the ranges of every setting.
func (c *Config) Validate() error {
	if c.Precision < 0 || c.Precision > coords.MaxPrecision {
		return fmt.Errorf("precision must be within the range of 0 to %d (got: %d)", coords.MaxPrecision, c.Precision)
	}

	if c.H3Resolution < 0 || c.H3Resolution > spatial.MaxH3Resolution {
		return fmt.Errorf("h3_resolution must be within the range of 0 to %d (got: %d)", spatial.MaxH3Resolution, c.H3Resolution)
	}

	if strings.TrimSpace(c.Server.Addr) == "" {
		return errors.New("server.addr is required")
	}

	seen := map[string]bool{}
	for _, name := range coords.FormatNames() {
		seen[name] = true
	}

	for i, f := range c.Formats {
		if strings.TrimSpace(f.Name) == "" {
			return fmt.Errorf("formats[%d].name is required", i)
		}

		if seen[f.Name] {
			return fmt.Errorf("formats[%d].name %q is already defined", i, f.Name)
		}

		seen[f.Name] = true
	}

	return nil
}

// Grammars compiles the user-declared formats.
func (c *Config) Grammars() ([]coords.Format, error) {
	formats := make([]coords.Format, 0, len(c.Formats))

	for i, f := range c.Formats {
		notation, err := coords.ParseNotation(f.Notation)
		if err != nil {
			return nil, fmt.Errorf("formats[%d]: %w", i, err)
		}

		g, err := coords.NewGrammar(f.Name, notation, f.Pattern, f.Latitude, f.Longitude, f.Examples...)
		if err != nil {
			return nil, fmt.Errorf("formats[%d]: %w", i, err)
		}

		for _, ex := range f.Examples {
			if !g.CanParse(ex) {
				return nil, fmt.Errorf("formats[%d]: example %q does not match %s", i, ex, f.Name)
			}
		}

		formats = append(formats, g)
	}

	return formats, nil
}

// ParserOptions validates c and builds the options of a coords.Parser.
func (c *Config) ParserOptions(logger zerolog.Logger) (coords.Options, error) {
	if err := c.Validate(); err != nil {
		return coords.Options{}, err
	}

	formats, err := c.Grammars()
	if err != nil {
		return coords.Options{}, err
	}

	return coords.Options{
		Precision: c.Precision,
		Formats:   formats,
		Extend:    c.Extend,
		Normalize: c.Normalize,
		Logger:    logger,
	}, nil
}
