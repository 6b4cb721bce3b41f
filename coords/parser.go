// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

// Package coords turns free-form coordinate text such as
// `40°7'23"N 74°7'23"W` or "N4007.38 W07407.38" into a decimal
// latitude/longitude pair.
//
// Each supported notation is a Format. A Parser holds an ordered list of
// formats and dispatches the text to the first one whose CanParse accepts it;
// the catalog is written so that at most one format accepts any text.
package coords

import (
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/jcodagnone/coordparse/spatial"
)

// DefaultPrecision is the number of fractional digits kept by a Parser
// built from DefaultOptions.
const DefaultPrecision = 3

// Options configures a Parser.
type Options struct {
	// Precision is the number of fractional digits, 0 to MaxPrecision.
	Precision int

	// Formats replaces the catalog, or extends it when Extend is set. An
	// empty list means DefaultFormats.
	Formats []Format
	Extend  bool

	// Normalize runs Normalize on the text before dispatch.
	Normalize bool

	Logger zerolog.Logger
}

// DefaultOptions returns the options used by the command line and the server
// unless configured otherwise.
func DefaultOptions() Options {
	return Options{
		Precision: DefaultPrecision,
		Normalize: true,
		Logger:    zerolog.Nop(),
	}
}

// Result is a successful parse together with the format that produced it.
type Result struct {
	Format string        `json:"format"`
	Point  spatial.Point `json:"point"`
}

// Parser dispatches coordinate text to the first matching format and
// remembers the last coordinate it produced. It is safe for concurrent use.
type Parser struct {
	precision int
	normalize bool
	formats   []Format
	log       zerolog.Logger

	mu   sync.Mutex
	last *spatial.Point
}

// NewParser validates opts and returns a parser in the unresolved state.
func NewParser(opts Options) (*Parser, error) {
	if err := checkPrecision(opts.Precision); err != nil {
		return nil, err
	}

	for i, f := range opts.Formats {
		if f == nil {
			return nil, inputError("formats[%d] must not be nil", i)
		}
	}

	var formats []Format

	switch {
	case len(opts.Formats) == 0:
		formats = DefaultFormats()
	case opts.Extend:
		formats = append(DefaultFormats(), opts.Formats...)
	default:
		formats = append([]Format(nil), opts.Formats...)
	}

	return &Parser{
		precision: opts.Precision,
		normalize: opts.Normalize,
		formats:   formats,
		log:       opts.Logger,
	}, nil
}

// Precision returns the configured number of fractional digits.
func (p *Parser) Precision() int {
	return p.precision
}

// Formats returns a copy of the formats in dispatch order.
func (p *Parser) Formats() []Format {
	return append([]Format(nil), p.formats...)
}

// FindFormat returns the first format that accepts text as given, without
// normalization.
func (p *Parser) FindFormat(text string) (Format, error) {
	for _, f := range p.formats {
		if f.CanParse(text) {
			return f, nil
		}
	}

	return nil, noMatchError()
}

// Parse converts text into a coordinate. The error of the selected format is
// returned unchanged; no other format is tried after it.
func (p *Parser) Parse(text string) (spatial.Point, error) {
	r, err := p.Match(text)
	if err != nil {
		return spatial.Point{}, err
	}

	return r.Point, nil
}

// Match is Parse, also reporting which format recognized the text.
func (p *Parser) Match(text string) (Result, error) {
	r, err := p.match(text)

	p.mu.Lock()
	if err != nil {
		p.last = nil
	} else {
		pt := r.Point
		p.last = &pt
	}
	p.mu.Unlock()

	return r, err
}

func (p *Parser) match(text string) (Result, error) {
	if err := checkInput(text); err != nil {
		return Result{}, err
	}

	if p.normalize {
		text = Normalize(text)
	}

	f, err := p.FindFormat(text)
	if err != nil {
		p.log.Debug().Str("input", text).Msg("no format matched")

		return Result{}, err
	}

	pt, err := f.Parse(text, p.precision)
	if err != nil {
		p.log.Debug().Str("input", text).Str("format", f.Name()).Err(err).Msg("parse failed")

		return Result{}, err
	}

	p.log.Debug().Str("input", text).Str("format", f.Name()).Stringer("point", pt).Msg("parsed")

	return Result{Format: f.Name(), Point: pt}, nil
}

// Last returns the coordinate of the most recent successful parse. The
// second value is false before any parse, after a failed one and after Reset.
func (p *Parser) Last() (spatial.Point, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.last == nil {
		return spatial.Point{}, false
	}

	return *p.last, true
}

// Reset clears the last coordinate and resets every format that keeps state.
func (p *Parser) Reset() {
	p.mu.Lock()
	p.last = nil
	p.mu.Unlock()

	for _, f := range p.formats {
		if r, ok := f.(Resetter); ok {
			r.Reset()
		}
	}
}

// checkInput rejects text that is not a string in the Go sense. Blank text is
// a string no format accepts.
func checkInput(text string) error {
	switch {
	case !utf8.ValidString(text):
		return inputError("coordinate string must be valid UTF-8")
	case strings.TrimSpace(text) == "":
		return noMatchError()
	}

	return nil
}

// ParseOnce builds a parser from opts and parses text with it. Failures are
// wrapped with the offending text; the *Error stays reachable through
// errors.As.
func ParseOnce(text string, opts Options) (spatial.Point, error) {
	p, err := NewParser(opts)
	if err != nil {
		return spatial.Point{}, err
	}

	pt, err := p.Parse(text)
	if err != nil {
		return spatial.Point{}, fmt.Errorf("coordinate string %q could not be parsed: %w", text, err)
	}

	return pt, nil
}
