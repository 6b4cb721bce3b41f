// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

package coords

import (
	"math"
	"strconv"
	"strings"
)

// Hemisphere is the one-letter direction that encodes the sign of a value.
type Hemisphere string

// Hemisphere letters.
const (
	North Hemisphere = "N"
	South Hemisphere = "S"
	East  Hemisphere = "E"
	West  Hemisphere = "W"
)

// ParseHemisphere accepts a single N, S, E or W letter.
func ParseHemisphere(s string) (Hemisphere, error) {
	switch h := Hemisphere(s); h {
	case North, South, East, West:
		return h, nil
	default:
		return "", inputError("direction must be one of N, S, E, W (got: %q)", s)
	}
}

// Axis returns Latitude for N/S and Longitude for E/W.
func (h Hemisphere) Axis() Axis {
	if h == East || h == West {
		return Longitude
	}

	return Latitude
}

// Sign returns -1 for the southern and western hemispheres, 1 otherwise.
func (h Hemisphere) Sign() float64 {
	if h == South || h == West {
		return -1
	}

	return 1
}

// DMS is a degrees, minutes, seconds value with its hemisphere.
type DMS struct {
	Degrees   int
	Minutes   int
	Seconds   float64
	Direction Hemisphere
}

// DM is a degrees, decimal minutes value with its hemisphere.
type DM struct {
	Degrees   int
	Minutes   float64
	Direction Hemisphere
}

// DMSToDecimal converts dms to signed decimal degrees.
func DMSToDecimal(dms DMS) (float64, error) {
	if _, err := ParseHemisphere(string(dms.Direction)); err != nil {
		return 0, err
	}

	if dms.Degrees < 0 || dms.Minutes < 0 {
		return 0, inputError("dms degrees and minutes must not be negative")
	}

	if math.IsNaN(dms.Seconds) || math.IsInf(dms.Seconds, 0) || dms.Seconds < 0 {
		return 0, inputError("dms seconds must be a finite, non-negative number")
	}

	v := float64(dms.Degrees) + float64(dms.Minutes)/60 + dms.Seconds/3600

	return dms.Direction.Sign() * v, nil
}

// DMToDecimal converts dm to signed decimal degrees.
func DMToDecimal(dm DM) (float64, error) {
	if _, err := ParseHemisphere(string(dm.Direction)); err != nil {
		return 0, err
	}

	if dm.Degrees < 0 {
		return 0, inputError("dm degrees must not be negative")
	}

	if math.IsNaN(dm.Minutes) || math.IsInf(dm.Minutes, 0) || dm.Minutes < 0 {
		return 0, inputError("dm minutes must be a finite, non-negative number")
	}

	v := float64(dm.Degrees) + dm.Minutes/60

	return dm.Direction.Sign() * v, nil
}

// Round rounds v to precision fractional digits, half away from zero.
//
// The rounding works on the shortest decimal representation of v, so the
// result is the float closest to the decimal a human would write: Round of
// 1.005 at 2 digits is 1.01 even though 1.005 is stored as 1.00499999...
func Round(v float64, precision int) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}

	if v == 0 {
		return 0
	}

	if precision < 0 {
		precision = 0
	}

	s := strconv.FormatFloat(math.Abs(v), 'f', -1, 64)

	intPart, frac, _ := strings.Cut(s, ".")
	if len(frac) <= precision {
		return v
	}

	digits := []byte(intPart + frac[:precision])
	if frac[precision] >= '5' {
		i := len(digits) - 1
		for ; i >= 0; i-- {
			if digits[i] != '9' {
				digits[i]++

				break
			}

			digits[i] = '0'
		}

		if i < 0 {
			digits = append([]byte{'1'}, digits...)
		}
	}

	n := len(digits) - precision

	out := string(digits[:n])
	if precision > 0 {
		out += "." + string(digits[n:])
	}

	r, err := strconv.ParseFloat(out, 64)
	if err != nil {
		// out is built from digits only
		panic(err)
	}

	if r == 0 {
		return 0
	}

	if v < 0 {
		return -r
	}

	return r
}
