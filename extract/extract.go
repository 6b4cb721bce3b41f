// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

// Package extract finds coordinates in free text and HTML documents.
package extract

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"golang.org/x/net/html"

	"github.com/jcodagnone/coordparse/coords"
	"github.com/jcodagnone/coordparse/spatial"
	"github.com/jcodagnone/coordparse/utils/htmlutils"
)

// Found is a coordinate located in a document.
type Found struct {
	Fragment string        `json:"fragment"`
	Text     string        `json:"text"`
	Format   string        `json:"format"`
	Point    spatial.Point `json:"point"`
}

// FromText returns every coordinate in text. Within each candidate run the
// longest token window that parses wins and scanning resumes after it, so
// "1200, 40.1, -74.2" yields 40.1, -74.2 and "1.1, 2.2, 3.3, 4.4" yields two
// coordinates.
func FromText(parser *coords.Parser, text string) []Found {
	var ret []Found

	for _, candidate := range htmlutils.Candidates(text) {
		tokens := strings.Fields(candidate)

		for i := 0; i < len(tokens); {
			next := i + 1

			for j := len(tokens); j > i; j-- {
				s := strings.TrimRight(strings.Join(tokens[i:j], " "), ",")

				res, err := parser.Match(s)
				if err != nil {
					continue
				}

				ret = append(ret, Found{Fragment: text, Text: s, Format: res.Format, Point: res.Point})
				next = j

				break
			}

			i = next
		}
	}

	return ret
}

// FromHTML returns every coordinate in the text fragments of n.
func FromHTML(parser *coords.Parser, n *html.Node) ([]Found, error) {
	fragments, err := htmlutils.Fragments(n)
	if err != nil {
		return nil, err
	}

	var ret []Found
	for _, f := range fragments {
		ret = append(ret, FromText(parser, f)...)
	}

	return ret, nil
}

// FromReader parses r as an HTML document.
func FromReader(parser *coords.Parser, r io.Reader) ([]Found, error) {
	n, err := htmlutils.AsNode(r)
	if err != nil {
		return nil, err
	}

	return FromHTML(parser, n)
}

// FromURL fetches url with client and extracts the coordinates of the page.
func FromURL(parser *coords.Parser, client *http.Client, url string) ([]Found, error) {
	resp, err := client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	r, err := htmlutils.AsReader(resp)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", url, err)
	}

	return FromReader(parser, r)
}
