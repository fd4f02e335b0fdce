// Marquee - Content-Similarity Movie Recommender
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package poster

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/metrics"
)

// DefaultRetryStatuses are the gateway and server errors worth retrying.
var DefaultRetryStatuses = map[int]bool{
	http.StatusInternalServerError: true,
	http.StatusBadGateway:          true,
	http.StatusServiceUnavailable:  true,
	http.StatusGatewayTimeout:      true,
}

// RetryTransport is an http.RoundTripper that retries idempotent requests
// answered with a retryable status.
//
// Attempt n (1-based) that needs a retry waits BackoffBase * 2^(n-1) before
// the next attempt: 0.5s, 1s, 2s, 4s with the defaults. Transport errors,
// including timeouts, are returned immediately, and any other status is
// returned as-is. When attempts run out the last response is returned
// unchanged so the caller sees the real status.
//
// Each attempt gets its own AttemptTimeout, which also bounds reading the
// returned body.
type RetryTransport struct {
	Base           http.RoundTripper
	MaxAttempts    int
	BackoffBase    time.Duration
	AttemptTimeout time.Duration
	RetryStatuses  map[int]bool
}

// RoundTrip implements http.RoundTripper.
func (t *RetryTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}
	statuses := t.RetryStatuses
	if statuses == nil {
		statuses = DefaultRetryStatuses
	}
	maxAttempts := t.MaxAttempts
	if maxAttempts < 1 || (req.Body != nil && req.Body != http.NoBody && req.GetBody == nil) {
		maxAttempts = 1
	}

	for attempt := 1; ; attempt++ {
		resp, err := t.attempt(base, req)
		if err != nil {
			return nil, err
		}
		if !statuses[resp.StatusCode] || attempt >= maxAttempts {
			return resp, nil
		}

		metrics.PosterRetries.WithLabelValues(strconv.Itoa(resp.StatusCode)).Inc()
		drainAndClose(resp.Body)

		delay := t.BackoffBase * time.Duration(1<<uint(attempt-1))
		logging.Ctx(req.Context()).Debug().
			Int("status", resp.StatusCode).
			Int("attempt", attempt).
			Dur("backoff", delay).
			Msg("Retrying metadata request")

		select {
		case <-time.After(delay):
		case <-req.Context().Done():
			return nil, req.Context().Err()
		}

		if req.GetBody != nil {
			body, err := req.GetBody()
			if err != nil {
				return nil, err
			}
			req = req.Clone(req.Context())
			req.Body = body
		}
	}
}

func (t *RetryTransport) attempt(base http.RoundTripper, req *http.Request) (*http.Response, error) {
	if t.AttemptTimeout <= 0 {
		return base.RoundTrip(req)
	}

	ctx, cancel := context.WithTimeout(req.Context(), t.AttemptTimeout)
	resp, err := base.RoundTrip(req.WithContext(ctx))
	if err != nil {
		cancel()
		return nil, err
	}
	resp.Body = &cancelOnClose{ReadCloser: resp.Body, cancel: cancel}
	return resp, nil
}

// cancelOnClose releases an attempt's timeout context once its body is
// closed.
type cancelOnClose struct {
	io.ReadCloser
	cancel context.CancelFunc
}

func (c *cancelOnClose) Close() error {
	err := c.ReadCloser.Close()
	c.cancel()
	return err
}

// drainAndClose lets the connection be reused.
func drainAndClose(body io.ReadCloser) {
	_, _ = io.Copy(io.Discard, io.LimitReader(body, 64*1024))
	_ = body.Close()
}
