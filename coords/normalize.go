// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

package coords

import (
	"strings"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// symbols maps typographic variants to the ASCII marks the grammars expect.
// It runs before NFKC, which would otherwise turn º into "o" and ″ into two
// primes.
var symbols = strings.NewReplacer(
	"′", "'",
	"’", "'",
	"‘", "'",
	"´", "'",
	"″", `"`,
	"”", `"`,
	"“", `"`,
	"º", "°",
	"˚", "°",
)

// Normalize rewrites text copied from documents into the plain shape the
// catalog grammars are written for: compatibility and full-width forms
// folded, typographic primes and quotes mapped to ' and ", a doubled ' read as
// ", whitespace collapsed to single spaces and letters upper-cased.
func Normalize(text string) string {
	s := symbols.Replace(text)

	t := transform.Chain(norm.NFKC, width.Fold)
	if folded, _, err := transform.String(t, s); err == nil {
		s = folded
	}

	s = strings.ReplaceAll(s, "''", `"`)
	s = strings.Join(strings.Fields(s), " ")

	return strings.ToUpper(s)
}
