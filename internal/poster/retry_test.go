// Marquee - Content-Similarity Movie Recommender
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package poster

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func statusResponse(code int) *http.Response {
	return &http.Response{
		StatusCode: code,
		Body:       io.NopCloser(strings.NewReader("")),
		Header:     make(http.Header),
	}
}

func TestRetryTransport(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		statuses   []int
		maxAttempt int
		wantStatus int
		wantCalls  int
	}{
		{"success first try", []int{200}, 5, 200, 1},
		{"503 five times", []int{503, 503, 503, 503, 503}, 5, 503, 5},
		{"504 then success", []int{504, 200}, 5, 200, 2},
		{"500 502 503 then success", []int{500, 502, 503, 200}, 5, 200, 4},
		{"429 not retried", []int{429}, 5, 429, 1},
		{"404 not retried", []int{404}, 5, 404, 1},
		{"single attempt", []int{503}, 1, 503, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			calls := 0
			rt := &RetryTransport{
				MaxAttempts: tt.maxAttempt,
				BackoffBase: time.Microsecond,
				Base: roundTripFunc(func(*http.Request) (*http.Response, error) {
					code := tt.statuses[len(tt.statuses)-1]
					if calls < len(tt.statuses) {
						code = tt.statuses[calls]
					}
					calls++
					return statusResponse(code), nil
				}),
			}

			req, _ := http.NewRequest(http.MethodGet, "http://tmdb.test/movie/1", http.NoBody)
			resp, err := rt.RoundTrip(req)
			if err != nil {
				t.Fatalf("RoundTrip() error = %v", err)
			}
			_ = resp.Body.Close()
			if resp.StatusCode != tt.wantStatus {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
			if calls != tt.wantCalls {
				t.Errorf("calls = %d, want %d", calls, tt.wantCalls)
			}
		})
	}
}

func TestRetryTransportTransportErrorNotRetried(t *testing.T) {
	t.Parallel()

	calls := 0
	boom := errors.New("connection reset")
	rt := &RetryTransport{
		MaxAttempts: 5,
		Base: roundTripFunc(func(*http.Request) (*http.Response, error) {
			calls++
			return nil, boom
		}),
	}

	req, _ := http.NewRequest(http.MethodGet, "http://tmdb.test/movie/1", http.NoBody)
	if _, err := rt.RoundTrip(req); !errors.Is(err, boom) {
		t.Fatalf("RoundTrip() error = %v, want %v", err, boom)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestRetryTransportBackoffHonoursContext(t *testing.T) {
	t.Parallel()

	rt := &RetryTransport{
		MaxAttempts: 5,
		BackoffBase: time.Hour,
		Base: roundTripFunc(func(*http.Request) (*http.Response, error) {
			return statusResponse(http.StatusServiceUnavailable), nil
		}),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, "http://tmdb.test/movie/1", http.NoBody)

	start := time.Now()
	if _, err := rt.RoundTrip(req); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("RoundTrip() error = %v, want deadline exceeded", err)
	}
	if time.Since(start) > 5*time.Second {
		t.Error("backoff wait ignored context cancellation")
	}
}
