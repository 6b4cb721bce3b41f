// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jcodagnone/coordparse/coords"
	"github.com/jcodagnone/coordparse/spatial"
)

// ParseResult is the outcome of parsing one input. Either the coordinate
// fields or Error and Type are set.
type ParseResult struct {
	Input     string   `json:"input"`
	Format    string   `json:"format,omitempty"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
	H3        string   `json:"h3,omitempty"`
	Error     string   `json:"error,omitempty"`
	Type      string   `json:"type,omitempty"`
}

// FormatInfo describes one format of the parser.
type FormatInfo struct {
	Name     string   `json:"name"`
	Notation string   `json:"notation,omitempty"`
	Examples []string `json:"examples,omitempty"`
}

type DistanceResult struct {
	From   ParseResult `json:"from"`
	To     ParseResult `json:"to"`
	Meters float64     `json:"meters"`
}

func (s *Server) resolve(input string) ParseResult {
	ret := ParseResult{Input: input}

	res, err := s.parser.Match(input)
	if err != nil {
		ret.Error = err.Error()
		ret.Type = coords.TypeOf(err).String()

		return ret
	}

	lat, lng := res.Point.Lat, res.Point.Lng
	ret.Format = res.Format
	ret.Latitude = &lat
	ret.Longitude = &lng

	cell, err := res.Point.Cell(s.h3Resolution)
	if err != nil {
		s.log.Warn().Err(err).Str("input", input).Msg("computing h3 cell")
	} else {
		ret.H3 = fmt.Sprintf("%x", cell)
	}

	return ret
}

func (s *Server) parse(ctx *gin.Context) {
	q, ok := ctx.GetQuery("q")
	if !ok || strings.TrimSpace(q) == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "q query parameter is required"})

		return
	}

	ret := s.resolve(q)
	if ret.Error != "" {
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": ret.Error, "type": ret.Type})

		return
	}

	ctx.JSON(http.StatusOK, ret)
}

func (s *Server) parseBatch(ctx *gin.Context) {
	var inputs []string
	if err := ctx.ShouldBindJSON(&inputs); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "body must be a JSON array of strings"})

		return
	}

	if len(inputs) > MaxBatchSize {
		ctx.JSON(http.StatusRequestEntityTooLarge, gin.H{
			"error": fmt.Sprintf("at most %d inputs per request (got: %d)", MaxBatchSize, len(inputs)),
		})

		return
	}

	results := make([]ParseResult, len(inputs))
	for i, input := range inputs {
		results[i] = s.resolve(input)
	}

	ctx.JSON(http.StatusOK, results)
}

// describer is implemented by formats that can tell their notation and
// sample inputs, like *coords.Grammar.
type describer interface {
	Notation() coords.Notation
	Examples() []string
}

func (s *Server) listFormats(ctx *gin.Context) {
	formats := s.parser.Formats()
	ret := make([]FormatInfo, 0, len(formats))

	for _, f := range formats {
		info := FormatInfo{Name: f.Name()}
		if d, ok := f.(describer); ok {
			info.Notation = d.Notation().String()
			info.Examples = d.Examples()
		}

		ret = append(ret, info)
	}

	ctx.JSON(http.StatusOK, ret)
}

func (s *Server) distance(ctx *gin.Context) {
	from, to := ctx.Query("from"), ctx.Query("to")
	if strings.TrimSpace(from) == "" || strings.TrimSpace(to) == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "from and to query parameters are required"})

		return
	}

	ret := DistanceResult{From: s.resolve(from), To: s.resolve(to)}

	for _, r := range []struct {
		field string
		res   ParseResult
	}{{"from", ret.From}, {"to", ret.To}} {
		if r.res.Error != "" {
			ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": r.res.Error, "type": r.res.Type, "field": r.field})

			return
		}
	}

	a := spatial.Point{Lat: *ret.From.Latitude, Lng: *ret.From.Longitude}
	b := spatial.Point{Lat: *ret.To.Latitude, Lng: *ret.To.Longitude}
	ret.Meters = a.HaversineDistance(&b)

	ctx.JSON(http.StatusOK, ret)
}
