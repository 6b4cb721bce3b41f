// Copyright 2025 The ChapaUY Authors
//
// SPDX-License-Identifier: Apache-2.0

// Package spatial holds the coordinate value produced by the parsers and the
// small amount of geometry the tools built on top of them need.
package spatial

import (
	"database/sql/driver"
	"fmt"
	"math"
	"strings"

	"github.com/uber/h3-go/v4"
)

const earthRadius = 6371e3 // meters

// MaxH3Resolution is the finest H3 resolution.
const MaxH3Resolution = 15

// Point represents a WGS84 coordinate in signed decimal degrees.
type Point struct {
	Lat float64 `json:"latitude"`
	Lng float64 `json:"longitude"`
}

// String returns the WKT representation of the Point.
func (p Point) String() string {
	return fmt.Sprintf("POINT(%g %g)", p.Lng, p.Lat)
}

// Value implements the driver.Valuer interface for database serialization.
func (p Point) Value() (driver.Value, error) {
	return p.String(), nil
}

// Scan implements the sql.Scanner interface for database deserialization.
func (p *Point) Scan(value any) error {
	if value == nil {
		p.Lat, p.Lng = 0, 0

		return nil
	}

	switch v := value.(type) {
	case []byte:
		return p.scanWKT(string(v))
	case string:
		return p.scanWKT(v)
	case map[string]any:
		x, okX := v["x"].(float64)
		y, okY := v["y"].(float64)

		if !okX || !okY {
			return fmt.Errorf("spatial: invalid map for point: expected 'x' and 'y' float64 fields, got %+v", v)
		}

		p.Lng = x
		p.Lat = y

		return nil
	default:
		return fmt.Errorf("spatial: unsupported type for Point scan: %T", value)
	}
}

// scanWKT accepts both "POINT(lng lat)" and DuckDB's "POINT (lng lat)".
func (p *Point) scanWKT(s string) error {
	s = strings.Replace(strings.TrimSpace(s), "POINT (", "POINT(", 1)

	_, err := fmt.Sscanf(s, "POINT(%g %g)", &p.Lng, &p.Lat)
	if err != nil {
		return fmt.Errorf("spatial: invalid WKT point %q: %w", s, err)
	}

	return nil
}

// Validate checks the global latitude and longitude bounds.
func (p Point) Validate() error {
	if math.IsNaN(p.Lat) || p.Lat < -90 || p.Lat > 90 {
		return fmt.Errorf("latitude must be within the range of -90 to 90 (got: %g)", p.Lat)
	}

	if math.IsNaN(p.Lng) || p.Lng < -180 || p.Lng > 180 {
		return fmt.Errorf("longitude must be within the range of -180 to 180 (got: %g)", p.Lng)
	}

	return nil
}

// Cell returns the H3 cell containing the point at the given resolution.
func (p Point) Cell(resolution int) (uint64, error) {
	if resolution < 0 || resolution > MaxH3Resolution {
		return 0, fmt.Errorf("h3 resolution must be within the range of 0 to %d (got: %d)", MaxH3Resolution, resolution)
	}

	if err := p.Validate(); err != nil {
		return 0, err
	}

	cell, err := h3.LatLngToCell(h3.NewLatLng(p.Lat, p.Lng), resolution)
	if err != nil {
		return 0, fmt.Errorf("converting to h3 cell at res %d: %w", resolution, err)
	}

	return uint64(cell), nil
}

// HaversineDistance calculates the distance between two points on Earth in meters.
func (p *Point) HaversineDistance(other *Point) float64 {
	lat1 := p.Lat * math.Pi / 180
	lat2 := other.Lat * math.Pi / 180
	dLat := (other.Lat - p.Lat) * math.Pi / 180
	dLng := (other.Lng - p.Lng) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadius * c
}
