// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

package spatial

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPointString(t *testing.T) {
	p := Point{Lat: -34.9011, Lng: -56.1645}
	assert.Equal(t, "POINT(-56.1645 -34.9011)", p.String())
}

func TestPointScan(t *testing.T) {
	tests := []struct {
		name    string
		input   any
		want    Point
		wantErr bool
	}{
		{"nil", nil, Point{}, false},
		{"duckdb bytes", []byte("POINT (-56.1645 -34.9011)"), Point{Lat: -34.9011, Lng: -56.1645}, false},
		{"wkt string", "POINT(5.678 1.234)", Point{Lat: 1.234, Lng: 5.678}, false},
		{"struct map", map[string]any{"x": 5.678, "y": 1.234}, Point{Lat: 1.234, Lng: 5.678}, false},
		{"map missing y", map[string]any{"x": 5.678}, Point{}, true},
		{"garbage", "LINESTRING(0 0, 1 1)", Point{}, true},
		{"unsupported", 42, Point{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p Point

			err := p.Scan(tt.input)
			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.InDelta(t, tt.want.Lat, p.Lat, 1e-9)
			assert.InDelta(t, tt.want.Lng, p.Lng, 1e-9)
		})
	}
}

func TestPointValueRoundTrip(t *testing.T) {
	in := Point{Lat: 40.12306, Lng: -74.12306}

	v, err := in.Value()
	require.NoError(t, err)

	var out Point
	require.NoError(t, out.Scan(v))
	assert.Equal(t, in, out)
}

func TestPointValidate(t *testing.T) {
	assert.NoError(t, Point{Lat: 90, Lng: -180}.Validate())
	assert.Error(t, Point{Lat: 90.0000001, Lng: 0}.Validate())
	assert.EqualError(t, Point{Lat: 0, Lng: 180.5}.Validate(), "longitude must be within the range of -180 to 180 (got: 180.5)")
	assert.EqualError(t, Point{Lat: -91, Lng: 0}.Validate(), "latitude must be within the range of -90 to 90 (got: -91)")

	_, err := Point{Lat: 95, Lng: 0}.Cell(9)
	assert.EqualError(t, err, "latitude must be within the range of -90 to 90 (got: 95)")
}

func TestPointCell(t *testing.T) {
	p := Point{Lat: -34.9011, Lng: -56.1645}

	cell, err := p.Cell(8)
	require.NoError(t, err)
	assert.NotZero(t, cell)

	again, err := p.Cell(8)
	require.NoError(t, err)
	assert.Equal(t, cell, again)

	coarse, err := p.Cell(1)
	require.NoError(t, err)
	assert.NotEqual(t, cell, coarse)

	_, err = p.Cell(16)
	assert.Error(t, err)
}

func TestHaversineDistance(t *testing.T) {
	montevideo := &Point{Lat: -34.9011, Lng: -56.1645}
	buenosAires := &Point{Lat: -34.6037, Lng: -58.3816}

	d := montevideo.HaversineDistance(buenosAires)
	assert.InDelta(t, 205_000, d, 3_000)
	assert.Zero(t, montevideo.HaversineDistance(montevideo))
}
