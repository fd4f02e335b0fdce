// Marquee - Content-Similarity Movie Recommender
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/tomtom215/marquee/internal/logging"
)

// ErrMissingAPIKey is returned when no TMDB credential is configured.
var ErrMissingAPIKey = errors.New("TMDB_API_KEY (or API_KEY) is required: set it in the environment or in a .env file")

var validCatalogFormats = map[string]bool{"json": true, "duckdb": true}

var validLogFormats = map[string]bool{"json": true, "console": true}

// Validate checks that required configuration is present and valid.
func (c *Config) Validate() error {
	if err := c.validatePoster(); err != nil {
		return err
	}
	if err := c.validateCatalog(); err != nil {
		return err
	}
	if err := c.validateRecommend(); err != nil {
		return err
	}
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateSecurity(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validatePoster() error {
	p := &c.Poster
	if strings.TrimSpace(p.APIKey) == "" {
		return ErrMissingAPIKey
	}
	if err := validateBaseURL(p.BaseURL, "TMDB_BASE_URL"); err != nil {
		return err
	}
	if err := validateBaseURL(p.ImageBaseURL, "TMDB_IMAGE_BASE_URL"); err != nil {
		return err
	}
	if p.Timeout <= 0 {
		return fmt.Errorf("POSTER_TIMEOUT must be positive, got %s", p.Timeout)
	}
	if p.MaxAttempts < 1 || p.MaxAttempts > 10 {
		return fmt.Errorf("POSTER_MAX_ATTEMPTS must be between 1 and 10, got %d", p.MaxAttempts)
	}
	if p.BackoffBase < 0 || p.BackoffBase > time.Minute {
		return fmt.Errorf("POSTER_BACKOFF_BASE must be between 0 and 1m, got %s", p.BackoffBase)
	}
	if p.RateLimit < 0 {
		return fmt.Errorf("POSTER_RATE_LIMIT must not be negative")
	}
	if p.RateLimit > 0 && p.RateBurst < 1 {
		return fmt.Errorf("POSTER_RATE_BURST must be at least 1 when POSTER_RATE_LIMIT is set")
	}
	if p.MaxConcurrency < 1 {
		return fmt.Errorf("POSTER_MAX_CONCURRENCY must be at least 1, got %d", p.MaxConcurrency)
	}
	if p.BreakerEnabled && p.BreakerTimeout <= 0 {
		return fmt.Errorf("POSTER_BREAKER_TIMEOUT must be positive when the breaker is enabled")
	}
	return nil
}

func (c *Config) validateCatalog() error {
	if !validCatalogFormats[c.Catalog.Format] {
		return fmt.Errorf("CATALOG_FORMAT must be one of: json, duckdb")
	}
	if c.Catalog.MoviesPath == "" {
		return fmt.Errorf("CATALOG_MOVIES_PATH is required")
	}
	if c.Catalog.SimilarityPath == "" {
		return fmt.Errorf("CATALOG_SIMILARITY_PATH is required")
	}
	return nil
}

func (c *Config) validateRecommend() error {
	if c.Recommend.TopK < 1 {
		return fmt.Errorf("RECOMMEND_TOP_K must be at least 1")
	}
	if c.Recommend.GenreLimit < 1 {
		return fmt.Errorf("RECOMMEND_GENRE_LIMIT must be at least 1")
	}
	if c.Recommend.SearchLimit < 1 {
		return fmt.Errorf("RECOMMEND_SEARCH_LIMIT must be at least 1")
	}
	return nil
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if wt := c.Server.WriteTimeout; wt > 0 && wt < c.PageBudget() {
		return fmt.Errorf("SERVER_WRITE_TIMEOUT (%s) is shorter than the worst-case poster page time %s; raise it or lower POSTER_TIMEOUT/POSTER_MAX_ATTEMPTS",
			wt, c.PageBudget())
	}
	return nil
}

func (c *Config) validateSecurity() error {
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < 1 {
		return fmt.Errorf("RATE_LIMIT_REQS must be at least 1")
	}
	if c.Security.RateLimitWindow <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	if !logging.ValidLevel(c.Logging.Level) {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if c.Logging.Format != "" && !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}

// validateBaseURL accepts an http(s) URL with a host and no query string.
// Unlike a server address, a path such as /3 is allowed.
func validateBaseURL(rawURL, fieldName string) error {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("%s failed to parse URL: %w", fieldName, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("%s scheme must be http or https, got: %q", fieldName, parsed.Scheme)
	}
	if parsed.Host == "" {
		return fmt.Errorf("%s host is required", fieldName)
	}
	if parsed.RawQuery != "" {
		return fmt.Errorf("%s should not contain query parameters", fieldName)
	}
	return nil
}
