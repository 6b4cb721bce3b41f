// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

// Package htmlutils extracts text that may hold coordinates from HTML
// documents.
package htmlutils

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"golang.org/x/net/html/charset"
)

// ErrCharsetMismatch is returned by Node2string when the document was decoded
// with the wrong charset.
var ErrCharsetMismatch = errors.New("charset mismatch")

// Node2string appends the text below n to sb, separating text nodes with a
// single space. Scripts and styles are skipped.
func Node2string(n *html.Node, sb *strings.Builder) error {
	switch n.Type {
	case html.TextNode:
		tmp := strings.Join(strings.Fields(n.Data), " ")

		// a REPLACEMENT CHARACTER (U+FFFD) means the document is being read
		// in the wrong charset
		if strings.ContainsRune(tmp, utf8.RuneError) {
			return fmt.Errorf("%w: `%s'", ErrCharsetMismatch, tmp)
		}

		if len(tmp) > 0 {
			if sb.Len() != 0 {
				sb.WriteByte(' ')
			}

			sb.WriteString(tmp)
		}
	case html.ElementNode:
		if skipped(n) {
			return nil
		}

		fallthrough
	default:
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			if err := Node2string(child, sb); err != nil {
				return err
			}
		}
	}

	return nil
}

func skipped(n *html.Node) bool {
	switch n.DataAtom {
	case atom.Script, atom.Style, atom.Noscript, atom.Template, atom.Head:
		return true
	default:
		return false
	}
}

// blocks are the elements whose text is reported as its own fragment.
var blocks = map[atom.Atom]bool{
	atom.P: true, atom.Li: true, atom.Td: true, atom.Th: true, atom.Dd: true, atom.Dt: true,
	atom.H1: true, atom.H2: true, atom.H3: true, atom.H4: true, atom.H5: true, atom.H6: true,
	atom.Pre: true, atom.Blockquote: true, atom.Figcaption: true, atom.Caption: true,
	atom.Address: true, atom.Title: true,
}

// inline elements do not break a fragment.
var inline = map[atom.Atom]bool{
	atom.A: true, atom.Abbr: true, atom.B: true, atom.Code: true, atom.Em: true,
	atom.I: true, atom.Mark: true, atom.Small: true, atom.Span: true, atom.Strong: true,
	atom.Sub: true, atom.Sup: true, atom.U: true, atom.Time: true, atom.Data: true,
}

// Fragments returns the text of every block element (paragraphs, list items,
// table cells, headings...) in document order. Text outside any block is
// grouped by its closest non-inline parent.
func Fragments(n *html.Node) ([]string, error) {
	var (
		out []string
		sb  strings.Builder
	)

	flush := func() {
		if s := strings.TrimSpace(sb.String()); s != "" {
			out = append(out, s)
		}

		sb.Reset()
	}

	var walk func(*html.Node) error

	walk = func(n *html.Node) error {
		if n.Type == html.ElementNode && blocks[n.DataAtom] {
			flush()

			if err := Node2string(n, &sb); err != nil {
				return err
			}

			flush()

			return nil
		}

		breaks := n.Type == html.ElementNode && !inline[n.DataAtom]

		switch {
		case n.Type == html.TextNode:
			return Node2string(n, &sb)
		case n.Type == html.ElementNode && skipped(n) && n.DataAtom != atom.Head:
			return nil
		case breaks:
			flush()
		}

		for child := n.FirstChild; child != nil; child = child.NextSibling {
			if err := walk(child); err != nil {
				return err
			}
		}

		if breaks {
			flush()
		}

		return nil
	}

	if err := walk(n); err != nil {
		return nil, err
	}

	flush()

	return out, nil
}

// candidateRegex finds runs of characters that can make up a coordinate: an
// optional leading hemisphere letter or sign, then digits mixed with
// separators, symbols and hemisphere letters of either case. A letter only
// ends a run at a word boundary.
var candidateRegex = regexp.MustCompile(
	`(?:\b(?i:[NSEW])\s*|-)?\d[\d\s°º˚'′’"″”:.,NSEWnsew-]*(?:[\d°º˚'′’"″”]|(?i:[NSEW])\b)`,
)

// Candidates returns the substrings of text that look like coordinates. The
// result still needs a real parse; it only narrows prose down to the parts
// worth trying.
func Candidates(text string) []string {
	var out []string

	for _, m := range candidateRegex.FindAllString(text, -1) {
		m = strings.Trim(m, " ,.")
		if strings.ContainsAny(m, "0123456789") && len(m) >= 3 {
			out = append(out, m)
		}
	}

	return out
}

// Validates that response seems to be an HTML response.
func hasHTMLContentType(media string) bool {
	const expectedMedia = "text/html"

	return strings.EqualFold(
		expectedMedia,
		media[0:min(len(media), len(expectedMedia))],
	)
}

// AsReader converts an HTTP response body to an io.Reader with the correct charset.
func AsReader(resp *http.Response) (io.Reader, error) {
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d", resp.StatusCode)
	}

	media := resp.Header.Get("Content-Type")
	if !hasHTMLContentType(media) {
		return nil, fmt.Errorf("media type is %s", media)
	}

	return charset.NewReader(resp.Body, media)
}

// AsNode parses an io.Reader as an HTML node.
func AsNode(r io.Reader) (*html.Node, error) {
	n, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing body as HTML: %w", err)
	}

	return n, nil
}
