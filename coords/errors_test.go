// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

package coords

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

type errorCheckTestCase struct {
	name string
	err  error
	want bool
}

func runErrorCheckTest(t *testing.T, tests []errorCheckTestCase, checkFunc func(error) bool) {
	t.Helper()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := checkFunc(tt.err); got != tt.want {
				t.Errorf("checkFunc() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsFormatMismatch(t *testing.T) {
	runErrorCheckTest(t, []errorCheckTestCase{
		{name: "single format mismatch", err: mismatchError(), want: true},
		{name: "no matching format", err: noMatchError(), want: true},
		{name: "wrapped", err: fmt.Errorf("parsing: %w", noMatchError()), want: true},
		{name: "range error", err: rangeError("latitude", -90, 90, ""), want: false},
		{name: "foreign error", err: errors.New("invalid coordinate string"), want: false},
		{name: "nil", err: nil, want: false},
	}, IsFormatMismatch)
}

func TestIsNoMatchingFormat(t *testing.T) {
	runErrorCheckTest(t, []errorCheckTestCase{
		{name: "no matching format", err: noMatchError(), want: true},
		{name: "single format mismatch", err: mismatchError(), want: false},
	}, IsNoMatchingFormat)
}

func TestIsRangeError(t *testing.T) {
	runErrorCheckTest(t, []errorCheckTestCase{
		{name: "range", err: rangeError("minutes", 0, 60, " (exclusive)"), want: true},
		{name: "wrapped", err: fmt.Errorf("x: %w", rangeError("latitude", -90, 90, "")), want: true},
		{name: "input", err: inputError("bad"), want: false},
	}, IsRangeError)
}

func TestIsStructuralError(t *testing.T) {
	runErrorCheckTest(t, []errorCheckTestCase{
		{name: "structural", err: structuralError("12345"), want: true},
		{name: "mismatch", err: mismatchError(), want: false},
	}, IsStructuralError)
}

func TestIsInputError(t *testing.T) {
	runErrorCheckTest(t, []errorCheckTestCase{
		{name: "input", err: inputError("precision must be within the range of 0 to %d", 15), want: true},
		{name: "structural", err: structuralError("1"), want: false},
	}, IsInputError)
}

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{rangeError("latitude", -90, 90, ""), "latitude must be within the range of -90 to 90"},
		{rangeError("latitude degrees", 0, 90, ""), "latitude degrees must be within the range of 0 to 90"},
		{rangeError("seconds", 0, 60, " (exclusive)"), "seconds must be within the range of 0 to 60 (exclusive)"},
		{structuralError("4007"), `invalid block "4007"`},
		{mismatchError(), "invalid coordinate string"},
		{noMatchError(), "no format found for the given coordinate string"},
		{&Error{Type: ErrorTypeInput, Message: "outer", Err: errors.New("inner")}, "outer: inner"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.EqualError(t, tt.err, tt.want)
		})
	}
}

func TestRangeErrorBounds(t *testing.T) {
	err := EnforceDegrees(181, Longitude, true)

	var e *Error
	if assert.ErrorAs(t, err, &e) {
		assert.Equal(t, ErrorTypeRange, e.Type)
		assert.Equal(t, "longitude degrees", e.Field)
		assert.Equal(t, -180.0, e.Min)
		assert.Equal(t, 180.0, e.Max)
	}
}

func TestErrorTypeString(t *testing.T) {
	assert.Equal(t, "range", ErrorTypeRange.String())
	assert.Equal(t, "no_matching_format", TypeOf(noMatchError()).String())
	assert.Equal(t, "unknown", TypeOf(errors.New("x")).String())
	assert.Equal(t, "ErrorType(42)", ErrorType(42).String())
}
