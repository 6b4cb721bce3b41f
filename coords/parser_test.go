// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

package coords

import (
	"bytes"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcodagnone/coordparse/spatial"
)

func newTestParser(t *testing.T, precision int) *Parser {
	t.Helper()

	opts := DefaultOptions()
	opts.Precision = precision

	p, err := NewParser(opts)
	require.NoError(t, err)

	return p
}

func TestParserScenarios(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		precision int
		want      spatial.Point
		wantErr   string
		check     func(error) bool
	}{
		{
			name: "dms block prefixed", input: "N400723 W0740723", precision: 5,
			want: spatial.Point{Lat: 40.12306, Lng: -74.12306},
		},
		{
			name: "dm symbol suffixed", input: "40°07'N 74°07'W", precision: 5,
			want: spatial.Point{Lat: 40.11667, Lng: -74.11667},
		},
		{
			name: "decimal suffixed at four digits", input: "1.23412312N 5.6782356E", precision: 4,
			want: spatial.Point{Lat: 1.2341, Lng: 5.6782},
		},
		{
			name: "latitude out of range", input: "91.234, 5.678", precision: 3,
			wantErr: "latitude must be within the range of -90 to 90", check: IsRangeError,
		},
		{
			name: "decimal signed", input: "1.234, 5.678", precision: 3,
			want: spatial.Point{Lat: 1.234, Lng: 5.678},
		},
		{
			name: "not a coordinate", input: "not a coordinate", precision: 3,
			wantErr: "no format found for the given coordinate string", check: IsNoMatchingFormat,
		},
		{
			name: "blank", input: "   ", precision: 3,
			wantErr: "no format found for the given coordinate string", check: IsNoMatchingFormat,
		},
		{
			name: "empty", input: "", precision: 3,
			wantErr: "no format found for the given coordinate string", check: IsNoMatchingFormat,
		},
		{
			name: "invalid utf8", input: "40\xff, 5", precision: 3,
			wantErr: "coordinate string must be valid UTF-8", check: IsInputError,
		},
		{
			name: "long fraction", input: "1." + strings.Repeat("2", 300) + ", 5.678", precision: 3,
			want: spatial.Point{Lat: 1.222, Lng: 5.678},
		},
		{
			name: "typographic marks", input: "40º 07′ 23″ n, 74º 07′ 23″ w", precision: 5,
			want: spatial.Point{Lat: 40.12306, Lng: -74.12306},
		},
		{
			name: "doubled primes and full width digits", input: "４０°7'23''N ７４°7'23''W", precision: 5,
			want: spatial.Point{Lat: 40.12306, Lng: -74.12306},
		},
		{
			name: "lower case hemisphere", input: "n4007.38 w07407.38", precision: 3,
			want: spatial.Point{Lat: 40.123, Lng: -74.123},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestParser(t, tt.precision)

			got, err := p.Parse(tt.input)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.EqualError(t, err, tt.wantErr)
				assert.True(t, tt.check(err), "unexpected error type %s", TypeOf(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewParserPrecision(t *testing.T) {
	for _, precision := range []int{-1, 16, 100} {
		_, err := NewParser(Options{Precision: precision})
		require.Error(t, err)
		assert.EqualError(t, err, "precision must be within the range of 0 to 15")
		assert.True(t, IsInputError(err))
	}

	for _, precision := range []int{0, 15} {
		p, err := NewParser(Options{Precision: precision})
		require.NoError(t, err)
		assert.Equal(t, precision, p.Precision())
	}
}

func TestNewParserNilFormat(t *testing.T) {
	_, err := NewParser(Options{Precision: 3, Formats: []Format{nil}})
	assert.True(t, IsInputError(err))
}

func TestParserWithoutNormalization(t *testing.T) {
	p, err := NewParser(Options{Precision: 3})
	require.NoError(t, err)

	_, err = p.Parse("n4007.38 w07407.38")
	assert.True(t, IsNoMatchingFormat(err))

	got, err := p.Parse("N4007.38 W07407.38")
	require.NoError(t, err)
	assert.Equal(t, spatial.Point{Lat: 40.123, Lng: -74.123}, got)
}

func TestParserMatch(t *testing.T) {
	p := newTestParser(t, 5)

	r, err := p.Match("400723N 0740723W")
	require.NoError(t, err)
	assert.Equal(t, "dms-block-suffixed-hemisphere", r.Format)
	assert.Equal(t, spatial.Point{Lat: 40.12306, Lng: -74.12306}, r.Point)
}

func TestParserFindFormat(t *testing.T) {
	p := newTestParser(t, 3)

	f, err := p.FindFormat("40:07.38N 74:07.38W")
	require.NoError(t, err)
	assert.Equal(t, "dm-colon-suffixed-hemisphere", f.Name())

	_, err = p.FindFormat("40:07.38n 74:07.38w")
	assert.True(t, IsNoMatchingFormat(err))
}

func TestParserDoesNotFallBack(t *testing.T) {
	first := MustGrammar("strict", NotationDecimal, `^(\d+) (\d+)$`, Roles{Degrees: 1}, Roles{Degrees: 2})
	second := MustGrammar("lenient", NotationDecimal, `^(\d+) (\d+)$`, Roles{Degrees: 2}, Roles{Degrees: 1})

	p, err := NewParser(Options{Precision: 3, Formats: []Format{first, second}})
	require.NoError(t, err)

	// "lenient" would accept 120 45, but "strict" matched first.
	_, err = p.Parse("120 45")
	assert.EqualError(t, err, "latitude must be within the range of -90 to 90")
}

func TestParserFormatsReplaceAndExtend(t *testing.T) {
	custom := MustGrammar("pipe", NotationDecimal, `^(-?\d+(?:\.\d+)?)\|(-?\d+(?:\.\d+)?)$`, Roles{Degrees: 1}, Roles{Degrees: 2})

	replaced, err := NewParser(Options{Precision: 3, Formats: []Format{custom}})
	require.NoError(t, err)
	require.Len(t, replaced.Formats(), 1)

	_, err = replaced.Parse("1.234, 5.678")
	assert.True(t, IsNoMatchingFormat(err))

	got, err := replaced.Parse("1.234|-5.678")
	require.NoError(t, err)
	assert.Equal(t, spatial.Point{Lat: 1.234, Lng: -5.678}, got)

	extended, err := NewParser(Options{Precision: 3, Formats: []Format{custom}, Extend: true})
	require.NoError(t, err)

	formats := extended.Formats()
	require.Len(t, formats, len(DefaultFormats())+1)
	assert.Equal(t, "pipe", formats[len(formats)-1].Name())

	_, err = extended.Parse("1.234, 5.678")
	require.NoError(t, err)

	_, err = extended.Parse("1.234|5.678")
	require.NoError(t, err)
}

func TestParserFormatsIsACopy(t *testing.T) {
	p := newTestParser(t, 3)

	formats := p.Formats()
	formats[0] = nil

	assert.NotNil(t, p.Formats()[0])
}

func TestParserLastState(t *testing.T) {
	p := newTestParser(t, 3)

	_, ok := p.Last()
	assert.False(t, ok, "new parser is unresolved")

	want, err := p.Parse("1.234, 5.678")
	require.NoError(t, err)

	got, ok := p.Last()
	require.True(t, ok)
	assert.Equal(t, want, got)

	_, err = p.Parse("not a coordinate")
	require.Error(t, err)

	_, ok = p.Last()
	assert.False(t, ok, "failed parse leaves the parser unresolved")

	_, err = p.Parse("N 1.234, E 5.678")
	require.NoError(t, err)

	p.Reset()

	_, ok = p.Last()
	assert.False(t, ok, "reset parser is unresolved")
}

// countingFormat records calls and forgets them on Reset.
type countingFormat struct {
	*Grammar
	calls  int
	resets int
}

func (c *countingFormat) Parse(text string, precision int) (spatial.Point, error) {
	c.calls++

	return c.Grammar.Parse(text, precision)
}

func (c *countingFormat) Reset() {
	c.calls = 0
	c.resets++
}

func TestParserResetForwardsToFormats(t *testing.T) {
	stateful := &countingFormat{
		Grammar: MustGrammar("semicolon", NotationDecimal, `^(-?\d+(?:\.\d+)?);(-?\d+(?:\.\d+)?)$`, Roles{Degrees: 1}, Roles{Degrees: 2}),
	}

	p, err := NewParser(Options{Precision: 3, Formats: []Format{stateful}, Extend: true})
	require.NoError(t, err)

	_, err = p.Parse("1;2")
	require.NoError(t, err)
	_, err = p.Parse("3;4")
	require.NoError(t, err)
	assert.Equal(t, 2, stateful.calls)

	p.Reset()

	assert.Equal(t, 0, stateful.calls)
	assert.Equal(t, 1, stateful.resets)
}

func TestParserLogsSelectedFormat(t *testing.T) {
	var buf bytes.Buffer

	opts := DefaultOptions()
	opts.Logger = zerolog.New(&buf).Level(zerolog.DebugLevel)

	p, err := NewParser(opts)
	require.NoError(t, err)

	_, err = p.Parse("1.234N 5.678E")
	require.NoError(t, err)

	assert.Contains(t, buf.String(), `"format":"decimal-suffixed-hemisphere"`)
}

func TestParserConcurrentUse(t *testing.T) {
	p := newTestParser(t, 5)

	inputs := []string{"N400723 W0740723", "40°07'N 74°07'W", "1.234, 5.678", "S 3436.208, W 5822.9"}

	var wg sync.WaitGroup

	for i := range 8 {
		wg.Add(1)

		go func(i int) {
			defer wg.Done()

			for j := range 50 {
				_, err := p.Parse(inputs[(i+j)%len(inputs)])
				assert.NoError(t, err)
			}
		}(i)
	}

	wg.Wait()

	_, ok := p.Last()
	assert.True(t, ok)
}

func TestParseOnce(t *testing.T) {
	got, err := ParseOnce("N400723 W0740723", Options{Precision: 5, Normalize: true})
	require.NoError(t, err)
	assert.Equal(t, spatial.Point{Lat: 40.12306, Lng: -74.12306}, got)

	_, err = ParseOnce("not a coordinate", DefaultOptions())
	require.Error(t, err)
	assert.EqualError(t, err, `coordinate string "not a coordinate" could not be parsed: no format found for the given coordinate string`)

	var e *Error
	require.True(t, errors.As(err, &e))
	assert.Equal(t, ErrorTypeNoMatchingFormat, e.Type)

	_, err = ParseOnce("1, 2", Options{Precision: 99})
	assert.True(t, IsInputError(err))
}
