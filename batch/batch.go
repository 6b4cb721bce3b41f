// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

// Package batch parses many coordinate lines concurrently and turns them into
// store results.
package batch

import (
	"bufio"
	"fmt"
	"io"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/jcodagnone/coordparse/coords"
	"github.com/jcodagnone/coordparse/store"
)

// Line is one input line and its 1-based position in the source.
type Line struct {
	Number int
	Text   string
}

// Options tune Process.
type Options struct {
	// H3Resolution is the resolution of the cell stored with every point;
	// negative disables cells.
	H3Resolution int
	// MaxProcs bounds the number of concurrent parses. Defaults to the number
	// of CPUs.
	MaxProcs int
	// Progress, when set, is called once per processed line.
	Progress func()
	Logger   zerolog.Logger
}

// Summary counts the outcome of a batch.
type Summary struct {
	Total    int
	Parsed   int
	Failed   int
	ByFormat map[string]int
}

func (s Summary) String() string {
	names := make([]string, 0, len(s.ByFormat))
	for name := range s.ByFormat {
		names = append(names, name)
	}

	sort.Strings(names)

	var sb strings.Builder

	fmt.Fprintf(&sb, "%d lines, %d parsed, %d failed", s.Total, s.Parsed, s.Failed)

	for _, name := range names {
		fmt.Fprintf(&sb, "\n  %-40s %d", name, s.ByFormat[name])
	}

	return sb.String()
}

// ReadLines reads r, skipping blank lines and lines starting with '#'.
func ReadLines(r io.Reader) ([]Line, error) {
	var lines []Line

	scanner := bufio.NewScanner(r)
	n := 0

	for scanner.Scan() {
		n++

		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		lines = append(lines, Line{Number: n, Text: text})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading line %d: %w", n+1, err)
	}

	return lines, nil
}

// Process parses every line with parser. Results come back in input order;
// lines that fail carry the error and its category.
func Process(parser *coords.Parser, lines []Line, opts Options) ([]*store.Result, Summary) {
	maxProcs := opts.MaxProcs
	if maxProcs <= 0 {
		maxProcs = runtime.NumCPU()
	}

	results := make([]*store.Result, len(lines))

	var (
		wg        sync.WaitGroup
		progress  sync.Mutex
		semaphore = make(chan struct{}, maxProcs)
	)

	for i, line := range lines {
		wg.Add(1)

		go func(i int, line Line) {
			defer wg.Done()
			semaphore <- struct{}{}

			defer func() { <-semaphore }()

			results[i] = parseLine(parser, line, opts)

			if opts.Progress != nil {
				progress.Lock()
				opts.Progress()
				progress.Unlock()
			}
		}(i, line)
	}

	wg.Wait()

	summary := Summary{Total: len(results), ByFormat: map[string]int{}}

	for _, r := range results {
		if r.Error != "" {
			summary.Failed++

			continue
		}

		summary.Parsed++
		summary.ByFormat[r.Format]++
	}

	return results, summary
}

func parseLine(parser *coords.Parser, line Line, opts Options) *store.Result {
	ret := &store.Result{Line: line.Number, Input: line.Text}

	res, err := parser.Match(line.Text)
	if err != nil {
		ret.Error = err.Error()
		ret.ErrorType = coords.TypeOf(err).String()
		opts.Logger.Debug().Int("line", line.Number).Err(err).Msg("line failed")

		return ret
	}

	pt := res.Point
	ret.Format = res.Format
	ret.Point = &pt

	if opts.H3Resolution >= 0 {
		cell, err := pt.Cell(opts.H3Resolution)
		if err != nil {
			opts.Logger.Warn().Int("line", line.Number).Err(err).Msg("computing h3 cell")
		} else {
			ret.H3Cell = cell
		}
	}

	return ret
}
