// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

package coords

import (
	"errors"
	"fmt"
)

// ErrorType classifies parsing failures.
type ErrorType int

const (
	// ErrorTypeUnknown is never produced by this package.
	ErrorTypeUnknown ErrorType = iota
	// ErrorTypeInput means an argument or option has the wrong shape.
	ErrorTypeInput
	// ErrorTypeFormatMismatch means the text does not satisfy the grammar of
	// the format asked to parse it.
	ErrorTypeFormatMismatch
	// ErrorTypeNoMatchingFormat means no configured format accepts the text.
	ErrorTypeNoMatchingFormat
	// ErrorTypeRange means a component is outside its legal domain.
	ErrorTypeRange
	// ErrorTypeStructural means a packed or delimited sub-token did not match
	// its expected layout.
	ErrorTypeStructural
)

var errorTypeNames = map[ErrorType]string{
	ErrorTypeUnknown:          "unknown",
	ErrorTypeInput:            "input",
	ErrorTypeFormatMismatch:   "format_mismatch",
	ErrorTypeNoMatchingFormat: "no_matching_format",
	ErrorTypeRange:            "range",
	ErrorTypeStructural:       "structural",
}

func (t ErrorType) String() string {
	if name, ok := errorTypeNames[t]; ok {
		return name
	}

	return fmt.Sprintf("ErrorType(%d)", int(t))
}

// Error is returned by every failing operation of this package.
type Error struct {
	Type    ErrorType
	Message string
	Err     error

	// Field, Min and Max are only set for range violations.
	Field string
	Min   float64
	Max   float64
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}

	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func inputError(format string, args ...any) *Error {
	return &Error{Type: ErrorTypeInput, Message: fmt.Sprintf(format, args...)}
}

func mismatchError() *Error {
	return &Error{Type: ErrorTypeFormatMismatch, Message: "invalid coordinate string"}
}

func noMatchError() *Error {
	return &Error{Type: ErrorTypeNoMatchingFormat, Message: "no format found for the given coordinate string"}
}

func structuralError(token string) *Error {
	return &Error{Type: ErrorTypeStructural, Message: fmt.Sprintf("invalid block %q", token)}
}

// rangeError formats the message as "<field> must be within the range of <min> to <max><suffix>".
func rangeError(field string, lo, hi float64, suffix string) *Error {
	return &Error{
		Type:    ErrorTypeRange,
		Message: fmt.Sprintf("%s must be within the range of %g to %g%s", field, lo, hi, suffix),
		Field:   field,
		Min:     lo,
		Max:     hi,
	}
}

func errorType(err error) ErrorType {
	var e *Error
	if errors.As(err, &e) {
		return e.Type
	}

	return ErrorTypeUnknown
}

// TypeOf returns the category of err, or ErrorTypeUnknown when err does not
// come from this package.
func TypeOf(err error) ErrorType {
	return errorType(err)
}

// IsInputError reports whether err is an input shape failure.
func IsInputError(err error) bool {
	return errorType(err) == ErrorTypeInput
}

// IsFormatMismatch reports whether the text was not recognized, either by a
// single format or by the whole catalog.
func IsFormatMismatch(err error) bool {
	t := errorType(err)

	return t == ErrorTypeFormatMismatch || t == ErrorTypeNoMatchingFormat
}

// IsNoMatchingFormat reports whether no configured format accepted the text.
func IsNoMatchingFormat(err error) bool {
	return errorType(err) == ErrorTypeNoMatchingFormat
}

// IsRangeError reports whether a component was out of range.
func IsRangeError(err error) bool {
	return errorType(err) == ErrorTypeRange
}

// IsStructuralError reports whether a sub-token failed its micro-grammar.
func IsStructuralError(err error) bool {
	return errorType(err) == ErrorTypeStructural
}
