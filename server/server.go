// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

// Package server exposes a coordinate parser over HTTP.
package server

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/jcodagnone/coordparse/coords"
	"github.com/jcodagnone/coordparse/spatial"
)

// MaxBatchSize is the largest number of inputs accepted by one batch request.
const MaxBatchSize = 1000

type Server struct {
	parser       *coords.Parser
	h3Resolution int
	log          zerolog.Logger
}

// New returns a server answering with parser. Parsed points are reported with
// their H3 cell at h3Resolution.
func New(parser *coords.Parser, h3Resolution int, logger zerolog.Logger) (*Server, error) {
	if parser == nil {
		return nil, errors.New("parser is required")
	}

	if h3Resolution < 0 || h3Resolution > spatial.MaxH3Resolution {
		return nil, fmt.Errorf("h3 resolution must be within the range of 0 to %d (got: %d)", spatial.MaxH3Resolution, h3Resolution)
	}

	return &Server{
		parser:       parser,
		h3Resolution: h3Resolution,
		log:          logger,
	}, nil
}

// Router builds the gin engine with every route registered.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(RequestLogger(s.log), gin.Recovery())

	r.GET("/api/parse", s.parse)
	r.POST("/api/parse/batch", s.parseBatch)
	r.GET("/api/formats", s.listFormats)
	r.GET("/api/distance", s.distance)

	return r
}

// Run listens on addr until the server fails.
func (s *Server) Run(addr string) error {
	s.log.Info().Str("addr", addr).Int("formats", len(s.parser.Formats())).Msg("Starting HTTP API")

	return s.Router().Run(addr)
}
