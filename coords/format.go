// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

package coords

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/jcodagnone/coordparse/spatial"
)

// Format recognizes one textual coordinate notation.
//
// CanParse is purely syntactic and never fails; Parse performs the semantic
// validation and returns a *Error on failure.
type Format interface {
	// Name identifies the notation, e.g. "dms-block-prefixed-hemisphere".
	Name() string

	// CanParse reports whether the whole text matches the notation.
	CanParse(text string) bool

	// Parse converts text into a coordinate rounded to precision digits.
	Parse(text string, precision int) (spatial.Point, error)
}

// Resetter is implemented by formats that keep per-call state.
type Resetter interface {
	Reset()
}

// DefaultFormatPrecision is used by Grammar.ParseDefault.
const DefaultFormatPrecision = 5

// MaxPrecision is the largest number of fractional digits a parse may keep.
const MaxPrecision = 15

// Notation is the component layout shared by a family of formats.
type Notation int

const (
	// NotationDecimal has a single decimal-degree number per axis.
	NotationDecimal Notation = iota
	// NotationDM has integer degrees and decimal minutes.
	NotationDM
	// NotationDMS has integer degrees, integer minutes and decimal seconds.
	NotationDMS
)

var notationNames = []string{"decimal", "dm", "dms"}

func (n Notation) String() string {
	if int(n) >= 0 && int(n) < len(notationNames) {
		return notationNames[n]
	}

	return fmt.Sprintf("Notation(%d)", int(n))
}

// ParseNotation is the inverse of Notation.String.
func ParseNotation(s string) (Notation, error) {
	for i, name := range notationNames {
		if strings.EqualFold(s, name) {
			return Notation(i), nil
		}
	}

	return 0, inputError("notation must be one of %s (got: %q)", strings.Join(notationNames, ", "), s)
}

// Roles maps capture groups of a grammar to the components of one axis.
// Zero means the component is absent.
//
// Block points at a packed digit run (e.g. "400723") that is split according
// to the notation; when set, Degrees, Minutes and Seconds must be zero.
type Roles struct {
	Degrees    int `yaml:"degrees,omitempty" toml:"degrees,omitempty" json:"degrees,omitempty"`
	Minutes    int `yaml:"minutes,omitempty" toml:"minutes,omitempty" json:"minutes,omitempty"`
	Seconds    int `yaml:"seconds,omitempty" toml:"seconds,omitempty" json:"seconds,omitempty"`
	Hemisphere int `yaml:"hemisphere,omitempty" toml:"hemisphere,omitempty" json:"hemisphere,omitempty"`
	Block      int `yaml:"block,omitempty" toml:"block,omitempty" json:"block,omitempty"`
}

func (r Roles) indexes() []int {
	return []int{r.Degrees, r.Minutes, r.Seconds, r.Hemisphere, r.Block}
}

// Grammar is a Format driven by an anchored regular expression and a
// capture-group-to-role mapping. It holds no mutable state.
type Grammar struct {
	name     string
	notation Notation
	re       *regexp.Regexp
	lat      Roles
	lon      Roles
	examples []string
}

// NewGrammar compiles pattern and checks that the roles are consistent with
// the notation.
func NewGrammar(name string, notation Notation, pattern string, lat, lon Roles, examples ...string) (*Grammar, error) {
	if strings.TrimSpace(name) == "" {
		return nil, inputError("format name must not be empty")
	}

	if !strings.HasPrefix(pattern, "^") || !strings.HasSuffix(pattern, "$") {
		return nil, inputError("format %s: pattern must be anchored with ^ and $", name)
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, &Error{Type: ErrorTypeInput, Message: "format " + name + ": invalid pattern", Err: err}
	}

	g := &Grammar{
		name:     name,
		notation: notation,
		re:       re,
		lat:      lat,
		lon:      lon,
		examples: examples,
	}

	for _, axis := range []Axis{Latitude, Longitude} {
		if err := g.checkRoles(axis); err != nil {
			return nil, err
		}
	}

	return g, nil
}

// MustGrammar is like NewGrammar but panics on error.
func MustGrammar(name string, notation Notation, pattern string, lat, lon Roles, examples ...string) *Grammar {
	g, err := NewGrammar(name, notation, pattern, lat, lon, examples...)
	if err != nil {
		panic(err)
	}

	return g
}

func (g *Grammar) roles(axis Axis) Roles {
	if axis == Longitude {
		return g.lon
	}

	return g.lat
}

func (g *Grammar) checkRoles(axis Axis) error {
	r := g.roles(axis)
	groups := g.re.NumSubexp()

	for _, idx := range r.indexes() {
		if idx < 0 || idx > groups {
			return inputError("format %s: %s role references group %d, pattern has %d", g.name, axis, idx, groups)
		}
	}

	if r.Block != 0 {
		if r.Degrees != 0 || r.Minutes != 0 || r.Seconds != 0 {
			return inputError("format %s: %s block role excludes degrees, minutes and seconds roles", g.name, axis)
		}

		if g.notation == NotationDecimal {
			return inputError("format %s: decimal notation has no packed block", g.name)
		}

		return nil
	}

	if r.Degrees == 0 {
		return inputError("format %s: %s needs a degrees role", g.name, axis)
	}

	switch g.notation {
	case NotationDecimal:
		if r.Minutes != 0 || r.Seconds != 0 {
			return inputError("format %s: decimal notation takes no minutes or seconds", g.name)
		}
	case NotationDM:
		if r.Minutes == 0 || r.Seconds != 0 {
			return inputError("format %s: dm notation takes degrees and minutes", g.name)
		}
	case NotationDMS:
		if r.Minutes == 0 || r.Seconds == 0 {
			return inputError("format %s: dms notation takes degrees, minutes and seconds", g.name)
		}
	default:
		return inputError("format %s: unknown notation %s", g.name, g.notation)
	}

	return nil
}

// Name implements Format.
func (g *Grammar) Name() string { return g.name }

// Notation returns the component layout.
func (g *Grammar) Notation() Notation { return g.notation }

// Pattern returns the source of the regular expression.
func (g *Grammar) Pattern() string { return g.re.String() }

// Examples returns sample inputs accepted by the grammar.
func (g *Grammar) Examples() []string {
	return append([]string(nil), g.examples...)
}

// CanParse implements Format.
func (g *Grammar) CanParse(text string) bool {
	return g.re.MatchString(text)
}

// ParseDefault parses with DefaultFormatPrecision.
func (g *Grammar) ParseDefault(text string) (spatial.Point, error) {
	return g.Parse(text, DefaultFormatPrecision)
}

// Parse implements Format.
func (g *Grammar) Parse(text string, precision int) (spatial.Point, error) {
	if err := checkPrecision(precision); err != nil {
		return spatial.Point{}, err
	}

	m := g.re.FindStringSubmatch(text)
	if m == nil {
		return spatial.Point{}, mismatchError()
	}

	lat, err := g.axisValue(m, Latitude)
	if err != nil {
		return spatial.Point{}, err
	}

	lon, err := g.axisValue(m, Longitude)
	if err != nil {
		return spatial.Point{}, err
	}

	return spatial.Point{
		Lat: Round(lat, precision),
		Lng: Round(lon, precision),
	}, nil
}

func checkPrecision(precision int) error {
	if precision < 0 || precision > MaxPrecision {
		return inputError("precision must be within the range of 0 to %d", MaxPrecision)
	}

	return nil
}

// components are the raw tokens of one axis.
type components struct {
	degrees, minutes, seconds string
}

// axisValue extracts, validates and converts one axis of a match.
func (g *Grammar) axisValue(m []string, axis Axis) (float64, error) {
	r := g.roles(axis)

	var hemi Hemisphere

	if r.Hemisphere != 0 {
		h, err := ParseHemisphere(strings.ToUpper(strings.TrimSpace(m[r.Hemisphere])))
		if err != nil {
			return 0, err
		}

		if h.Axis() != axis {
			return 0, inputError("direction %s is not valid for %s", h, axis)
		}

		hemi = h
	}

	c := components{
		degrees: group(m, r.Degrees),
		minutes: group(m, r.Minutes),
		seconds: group(m, r.Seconds),
	}

	if r.Block != 0 {
		var err error

		c, err = g.splitBlock(m[r.Block], axis)
		if err != nil {
			return 0, err
		}
	}

	// The sign comes either from the hemisphere letter or from the token,
	// never from both.
	negative := false

	switch {
	case strings.HasPrefix(c.degrees, "-"):
		if hemi != "" {
			return 0, &Error{Type: ErrorTypeStructural, Message: fmt.Sprintf("%s has both a sign and a hemisphere", axis)}
		}

		negative = true
		c.degrees = c.degrees[1:]
	case strings.HasPrefix(c.degrees, "+"):
		c.degrees = c.degrees[1:]
	}

	signed := hemi == ""
	if hemi == "" {
		hemi = hemisphereFor(axis, negative)
	}

	var (
		v   float64
		err error
	)

	switch g.notation {
	case NotationDecimal:
		v, err = g.decimal(c, hemi)
	case NotationDM:
		v, err = g.dm(c, axis, hemi, signed)
	case NotationDMS:
		v, err = g.dms(c, axis, hemi, signed)
	default:
		err = inputError("format %s: unknown notation %s", g.name, g.notation)
	}

	if err != nil {
		return 0, err
	}

	if err := enforceAxis(axis, v); err != nil {
		return 0, err
	}

	return v, nil
}

func group(m []string, idx int) string {
	if idx == 0 {
		return ""
	}

	return strings.TrimSpace(m[idx])
}

func hemisphereFor(axis Axis, negative bool) Hemisphere {
	switch {
	case axis == Latitude && negative:
		return South
	case axis == Latitude:
		return North
	case negative:
		return West
	default:
		return East
	}
}

// enforceSignedDegrees range-checks the degrees token including its sign so
// that signed notations report the -max..max bound.
func enforceSignedDegrees(deg float64, axis Axis, hemi Hemisphere, signed bool) error {
	if signed {
		return EnforceDegrees(hemi.Sign()*deg, axis, true)
	}

	return EnforceDegrees(deg, axis, false)
}

func (g *Grammar) decimal(c components, hemi Hemisphere) (float64, error) {
	v, err := number(c.degrees)
	if err != nil {
		return 0, err
	}

	return hemi.Sign() * v, nil
}

func (g *Grammar) dm(c components, axis Axis, hemi Hemisphere, signed bool) (float64, error) {
	deg, err := integer(c.degrees)
	if err != nil {
		return 0, err
	}

	minutes, err := number(c.minutes)
	if err != nil {
		return 0, err
	}

	if err := enforceSignedDegrees(float64(deg), axis, hemi, signed); err != nil {
		return 0, err
	}

	if err := EnforceMinutes(minutes); err != nil {
		return 0, err
	}

	return DMToDecimal(DM{Degrees: deg, Minutes: minutes, Direction: hemi})
}

func (g *Grammar) dms(c components, axis Axis, hemi Hemisphere, signed bool) (float64, error) {
	deg, err := integer(c.degrees)
	if err != nil {
		return 0, err
	}

	minutes, err := integer(c.minutes)
	if err != nil {
		return 0, err
	}

	seconds, err := number(c.seconds)
	if err != nil {
		return 0, err
	}

	if err := enforceSignedDegrees(float64(deg), axis, hemi, signed); err != nil {
		return 0, err
	}

	if err := EnforceMinutes(float64(minutes)); err != nil {
		return 0, err
	}

	if err := EnforceSeconds(seconds); err != nil {
		return 0, err
	}

	return DMSToDecimal(DMS{Degrees: deg, Minutes: minutes, Seconds: seconds, Direction: hemi})
}

func number(token string) (float64, error) {
	v, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return 0, &Error{Type: ErrorTypeStructural, Message: fmt.Sprintf("invalid number %q", token), Err: err}
	}

	return v, nil
}

func integer(token string) (int, error) {
	v, err := strconv.Atoi(token)
	if err != nil {
		return 0, &Error{Type: ErrorTypeStructural, Message: fmt.Sprintf("invalid integer %q", token), Err: err}
	}

	return v, nil
}

// Packed digit runs. DM blocks carry the fraction on the minutes, DMS blocks
// on the seconds.
var (
	dmLatitudeBlock   = regexp.MustCompile(`^(\d{1,2})(\d{2}(?:\.\d+)?)$`)
	dmLongitudeBlock  = regexp.MustCompile(`^(\d{1,3})(\d{2}(?:\.\d+)?)$`)
	dmsLatitudeBlock  = regexp.MustCompile(`^(\d{2})(\d{2})(\d{2}(?:\.\d+)?)$`)
	dmsLongitudeBlock = regexp.MustCompile(`^(\d{3})(\d{2})(\d{2}(?:\.\d+)?)$`)
)

// splitBlock decomposes a packed token such as "4007.38" or "0740723".
func (g *Grammar) splitBlock(token string, axis Axis) (components, error) {
	token = strings.TrimSpace(token)

	var re *regexp.Regexp

	switch {
	case g.notation == NotationDM && axis == Latitude:
		re = dmLatitudeBlock
	case g.notation == NotationDM:
		re = dmLongitudeBlock
	case axis == Latitude:
		re = dmsLatitudeBlock
	default:
		re = dmsLongitudeBlock
	}

	m := re.FindStringSubmatch(token)
	if m == nil {
		return components{}, structuralError(token)
	}

	if g.notation == NotationDM {
		return components{degrees: m[1], minutes: m[2]}, nil
	}

	return components{degrees: m[1], minutes: m[2], seconds: m[3]}, nil
}
