// Marquee - Content-Similarity Movie Recommender
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package poster

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/tomtom215/marquee/internal/config"
	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/metrics"
)

const (
	breakerName = "tmdb-api"

	// maxResponseBytes bounds how much of a details response is decoded.
	maxResponseBytes = 1 << 20
)

// movieDetails is the subset of the TMDB movie details payload we read.
type movieDetails struct {
	PosterPath *string `json:"poster_path"`
}

// Client performs single poster lookups against the TMDB v3 API.
//
// One Client, and therefore one http.Client with its connection pool and
// retry policy, is built at startup and shared by every lookup.
type Client struct {
	http         *http.Client
	baseURL      string
	imageBaseURL string
	apiKey       string
	language     string
	limiter      *rate.Limiter
	cb           *gobreaker.CircuitBreaker[Result]
}

// NewClient builds a Client from configuration.
func NewClient(cfg *config.PosterConfig) *Client {
	base := http.DefaultTransport.(*http.Transport).Clone()
	base.MaxIdleConnsPerHost = cfg.MaxConcurrency

	c := &Client{
		http: &http.Client{
			Transport: &RetryTransport{
				Base:           base,
				MaxAttempts:    cfg.MaxAttempts,
				BackoffBase:    cfg.BackoffBase,
				AttemptTimeout: cfg.Timeout,
			},
		},
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		imageBaseURL: strings.TrimRight(cfg.ImageBaseURL, "/"),
		apiKey:       cfg.APIKey,
		language:     cfg.Language,
	}
	if cfg.RateLimit > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst)
	}
	if cfg.BreakerEnabled {
		c.cb = newBreaker(cfg.BreakerTimeout)
	}
	return c
}

// newBreaker opens after at least 10 requests in a one-minute window with a
// failure ratio of 60% or more, and probes again after timeout.
func newBreaker(timeout time.Duration) *gobreaker.CircuitBreaker[Result] {
	metrics.CircuitBreakerState.WithLabelValues(breakerName).Set(0)

	return gobreaker.NewCircuitBreaker[Result](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 10 {
				return false
			}
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			if ratio >= 0.6 {
				logging.Warn().
					Uint32("failures", counts.TotalFailures).
					Float64("failure_rate", ratio*100).
					Msg("[CIRCUIT BREAKER] Opening circuit")
				return true
			}
			return false
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr, toStr := stateToString(from), stateToString(to)
			logging.Info().Str("breaker", name).Str("from", fromStr).Str("to", toStr).Msg("[CIRCUIT BREAKER] State transition")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()
		},
	})
}

// Fetch looks up the poster for movieID.
//
// The returned error is non-nil only when no request was made (breaker
// open, or ctx ended while waiting for the rate limiter). Such outcomes are
// transient and must not be memoized. Every attempted lookup returns a
// Result and a nil error, even when the lookup itself failed.
func (c *Client) Fetch(ctx context.Context, movieID int64) (Result, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return failed(movieID, err), err
		}
	}

	if c.cb == nil {
		return c.lookup(ctx, movieID), nil
	}

	res, err := c.cb.Execute(func() (Result, error) {
		r := c.lookup(ctx, movieID)
		if r.Status == StatusFailed {
			return r, r.Err
		}
		return r, nil
	})
	switch {
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		metrics.CircuitBreakerRequests.WithLabelValues(breakerName, "rejected").Inc()
		logging.Ctx(ctx).Warn().Int64("movie_id", movieID).Err(err).Msg("[CIRCUIT BREAKER] Poster lookup rejected")
		return failed(movieID, fmt.Errorf("%w: %v", ErrUnavailable, err)), ErrUnavailable
	case err != nil:
		metrics.CircuitBreakerRequests.WithLabelValues(breakerName, "failure").Inc()
		return res, nil
	default:
		metrics.CircuitBreakerRequests.WithLabelValues(breakerName, "success").Inc()
		return res, nil
	}
}

// BreakerState reports the circuit breaker state, or "disabled".
func (c *Client) BreakerState() string {
	if c.cb == nil {
		return "disabled"
	}
	return stateToString(c.cb.State())
}

// detailsURL builds {base}/movie/{id}?api_key=...&language=...
func (c *Client) detailsURL(movieID int64) string {
	q := url.Values{}
	q.Set("api_key", c.apiKey)
	q.Set("language", c.language)
	return c.baseURL + "/movie/" + strconv.FormatInt(movieID, 10) + "?" + q.Encode()
}

// imageURL joins the image base and a poster path with exactly one slash.
func (c *Client) imageURL(posterPath string) string {
	return c.imageBaseURL + "/" + strings.TrimLeft(posterPath, "/")
}

// lookup performs one logical request (the transport may retry it) and
// classifies the outcome. It never returns an error.
func (c *Client) lookup(ctx context.Context, movieID int64) Result {
	start := time.Now()
	res := c.doLookup(ctx, movieID)
	metrics.RecordPosterLookup(res.Status.String(), time.Since(start))
	return res
}

func (c *Client) doLookup(ctx context.Context, movieID int64) Result {
	log := logging.Ctx(ctx)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.detailsURL(movieID), http.NoBody)
	if err != nil {
		return failed(movieID, fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		err = redactURLError(err)
		log.Warn().Int64("movie_id", movieID).Err(err).Msg("Poster request failed")
		return failed(movieID, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		snippet := readBodyForError(resp.Body)
		log.Warn().Int64("movie_id", movieID).Int("status", resp.StatusCode).Str("body", snippet).Msg("Poster lookup returned non-200")
		if resp.StatusCode == http.StatusNotFound {
			return missing(movieID)
		}
		return failed(movieID, fmt.Errorf("%w: HTTP %d", ErrStatus, resp.StatusCode))
	}

	var details movieDetails
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&details); err != nil {
		log.Warn().Int64("movie_id", movieID).Err(err).Msg("Poster response was not valid JSON")
		return failed(movieID, fmt.Errorf("%w: %v", ErrDecode, err))
	}

	if details.PosterPath == nil || *details.PosterPath == "" {
		log.Debug().Int64("movie_id", movieID).Msg("Movie has no poster")
		return missing(movieID)
	}
	return found(movieID, c.imageURL(*details.PosterPath))
}

// redactURLError strips the request URL, which carries the API key, from
// errors returned by http.Client.
func redactURLError(err error) error {
	var uerr *url.Error
	if errors.As(err, &uerr) {
		return fmt.Errorf("%s: %w", uerr.Op, uerr.Err)
	}
	return err
}

// readBodyForError reads up to 512 bytes of body for diagnostics.
func readBodyForError(body io.Reader) string {
	b, err := io.ReadAll(io.LimitReader(body, 512))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(b))
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}
