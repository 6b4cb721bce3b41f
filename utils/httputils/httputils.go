// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

// Package httputils provides utility functions for working with HTTP.
package httputils

import (
	"fmt"
	"net/http"
	"net/http/httputil"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

/////////////////////////////////////////
/// RountTrippers

// LoggingRoundTripper logs every HTTP transaction. When the logger is at debug
// level the request and the response are dumped too.
type LoggingRoundTripper struct {
	Transport http.RoundTripper
	Logger    zerolog.Logger
	DumpBody  bool
}

// reduce the content the lines.
func abbreviate(lines []string, prefix rune) []string {
	const maxLines, maxChars = 2048, 512

	for i, line := range lines {
		if i >= maxLines {
			break
		}

		if strings.HasPrefix(strings.ToLower(line), "authorization:") {
			line = "Authorization: …"
		}

		lines[i] = fmt.Sprintf("%c %s", prefix, strings.TrimRight(line, "\r"))
	}

	if len(lines) > maxLines {
		lines = lines[:maxLines]
		lines = append(lines, "…")
	}

	for i, line := range lines {
		if len(line) > maxChars {
			lines[i] = line[0:maxChars] + "…"
		}
	}

	return lines
}

func (t *LoggingRoundTripper) dumpRequest(req *http.Request) (string, error) {
	dump, err := httputil.DumpRequestOut(req, true)
	if err != nil {
		return "", fmt.Errorf("tracing HTTP request: %w", err)
	}

	return strings.Join(abbreviate(strings.Split(string(dump), "\n"), '>'), "\n"), nil
}

func (t *LoggingRoundTripper) dumpResponse(resp *http.Response) (string, error) {
	dump, err := httputil.DumpResponse(resp, t.DumpBody)
	if err != nil {
		return "", fmt.Errorf("tracing HTTP response: %w", err)
	}

	return strings.Join(abbreviate(strings.Split(string(dump), "\n"), '<'), "\n"), nil
}

func (t *LoggingRoundTripper) transport() http.RoundTripper {
	if t.Transport == nil {
		return http.DefaultTransport
	}

	return t.Transport
}

// RoundTrip implements the http.RoundTripper interface.
func (t *LoggingRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	dump := t.Logger.GetLevel() <= zerolog.DebugLevel && zerolog.GlobalLevel() <= zerolog.DebugLevel

	if dump {
		s, err := t.dumpRequest(req)
		if err != nil {
			return nil, err
		}

		t.Logger.Debug().Str("url", req.URL.String()).Msg("request\n" + s)
	}

	start := time.Now()

	resp, err := t.transport().RoundTrip(req)
	if err != nil {
		t.Logger.Warn().Err(err).Str("method", req.Method).Str("url", req.URL.String()).Msg("fetch failed")

		return nil, err
	}

	elapsed := time.Since(start)

	if dump {
		s, err := t.dumpResponse(resp)
		if err != nil {
			return nil, err
		}

		t.Logger.Debug().Dur("elapsed", elapsed).Msg("response\n" + s)
	}

	t.Logger.Info().
		Str("method", req.Method).
		Str("url", req.URL.String()).
		Int("status", resp.StatusCode).
		Dur("elapsed", elapsed).
		Msg("fetched")

	return resp, nil
}

// AppendRequestHeadersRoundTripper adds headers to the request.
type AppendRequestHeadersRoundTripper struct {
	Transport http.RoundTripper
	Headers   map[string]string
}

// RoundTrip implements the http.RoundTripper interface.
func (t *AppendRequestHeadersRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	for k, v := range t.Headers {
		req.Header.Set(k, v)
	}

	resp, err := t.Transport.RoundTrip(req)

	return resp, err
}

// NewClient returns a client that sends userAgent on every request and logs
// the transactions to logger.
func NewClient(logger zerolog.Logger, timeout time.Duration, userAgent string) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &AppendRequestHeadersRoundTripper{
			Transport: &LoggingRoundTripper{
				Transport: http.DefaultTransport,
				Logger:    logger,
				DumpBody:  false,
			},
			Headers: map[string]string{
				"User-Agent": userAgent,
				"Accept":     "text/html,application/xhtml+xml,text/plain;q=0.9",
			},
		},
	}
}
