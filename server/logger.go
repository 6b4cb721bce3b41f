// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

package server

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RequestLogger is a middleware to log HTTP requests.
func RequestLogger(logger zerolog.Logger) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()

		ctx.Next()

		event := logger.Info()
		if status := ctx.Writer.Status(); status >= 500 {
			event = logger.Error()
		}

		event.
			Str("method", ctx.Request.Method).
			Str("path", ctx.Request.URL.Path).
			Int("status", ctx.Writer.Status()).
			Str("ip", ctx.ClientIP()).
			Dur("duration", time.Since(start)).
			Msg("Request processed")
	}
}
