// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

package coords

import (
	"math"
)

// Axis identifies which half of a coordinate pair a value belongs to.
type Axis int

const (
	// Latitude is the north-south axis, bounded by 90.
	Latitude Axis = iota
	// Longitude is the east-west axis, bounded by 180.
	Longitude
)

// Max returns the largest absolute value allowed on the axis.
func (a Axis) Max() float64 {
	if a == Longitude {
		return 180
	}

	return 90
}

func (a Axis) String() string {
	if a == Longitude {
		return "longitude"
	}

	return "latitude"
}

// EnforceDegrees checks the degrees component of a coordinate. Unsigned
// values must lie in [0, max]; signed values in [-max, max].
func EnforceDegrees(v float64, axis Axis, signed bool) error {
	hi := axis.Max()

	lo := 0.0
	if signed {
		lo = -hi
	}

	if math.IsNaN(v) || v < lo || v > hi {
		return rangeError(axis.String()+" degrees", lo, hi, "")
	}

	return nil
}

// EnforceMinutes checks 0 <= v < 60.
func EnforceMinutes(v float64) error {
	return enforceSexagesimal("minutes", v)
}

// EnforceSeconds checks 0 <= v < 60.
func EnforceSeconds(v float64) error {
	return enforceSexagesimal("seconds", v)
}

func enforceSexagesimal(field string, v float64) error {
	if math.IsNaN(v) || v < 0 || v >= 60 {
		return rangeError(field, 0, 60, " (exclusive)")
	}

	return nil
}

// EnforceLatitude checks a fully assembled latitude.
func EnforceLatitude(v float64) error {
	return enforceAxis(Latitude, v)
}

// EnforceLongitude checks a fully assembled longitude.
func EnforceLongitude(v float64) error {
	return enforceAxis(Longitude, v)
}

func enforceAxis(axis Axis, v float64) error {
	hi := axis.Max()
	if math.IsNaN(v) || v < -hi || v > hi {
		return rangeError(axis.String(), -hi, hi, "")
	}

	return nil
}
