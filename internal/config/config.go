// Marquee - Content-Similarity Movie Recommender
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package config loads Marquee configuration from defaults, an optional
// YAML file, a .env file and the process environment, in that order of
// increasing precedence. See LoadWithKoanf.
package config

import "time"

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Catalog   CatalogConfig   `koanf:"catalog"`
	Poster    PosterConfig    `koanf:"poster"`
	Recommend RecommendConfig `koanf:"recommend"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// ServerConfig holds HTTP listener settings.
//
// WriteTimeout defaults to the worst-case poster page time (see
// Config.PageBudget) plus WriteTimeoutSlack, so a page waiting on a slow
// TMDB is never cut off mid-response. An explicit SERVER_WRITE_TIMEOUT
// shorter than PageBudget is rejected.
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	Environment     string        `koanf:"environment"` // development, staging, production
}

// CatalogConfig locates the precomputed catalog and similarity artifacts.
//
// Environment Variables:
//   - CATALOG_FORMAT: json or duckdb (default: json)
//   - CATALOG_MOVIES_PATH: movie list file
//   - CATALOG_SIMILARITY_PATH: similarity matrix file
type CatalogConfig struct {
	Format         string `koanf:"format"`
	MoviesPath     string `koanf:"movies_path"`
	SimilarityPath string `koanf:"similarity_path"`
}

// PosterConfig configures the TMDB poster lookup.
//
// Environment Variables:
//   - TMDB_API_KEY (alias API_KEY): required
//   - TMDB_BASE_URL, TMDB_IMAGE_BASE_URL, TMDB_LANGUAGE
//   - POSTER_TIMEOUT: per-request timeout (default: 10s)
//   - POSTER_MAX_ATTEMPTS: attempts including the first (default: 5)
//   - POSTER_BACKOFF_BASE: delay before the first retry (default: 500ms)
//   - POSTER_RATE_LIMIT / POSTER_RATE_BURST: outbound requests per second (0 disables)
//   - POSTER_MAX_CONCURRENCY: parallel lookups per batch (default: 5)
//   - POSTER_BREAKER_ENABLED, POSTER_BREAKER_TIMEOUT
//   - POSTER_WARMUP_ENABLED: pre-resolve genre pages at startup (default: false)
type PosterConfig struct {
	APIKey         string        `koanf:"api_key"`
	BaseURL        string        `koanf:"base_url"`
	ImageBaseURL   string        `koanf:"image_base_url"`
	Language       string        `koanf:"language"`
	Timeout        time.Duration `koanf:"timeout"`
	MaxAttempts    int           `koanf:"max_attempts"`
	BackoffBase    time.Duration `koanf:"backoff_base"`
	RateLimit      float64       `koanf:"rate_limit"`
	RateBurst      int           `koanf:"rate_burst"`
	MaxConcurrency int           `koanf:"max_concurrency"`
	BreakerEnabled bool          `koanf:"breaker_enabled"`
	BreakerTimeout time.Duration `koanf:"breaker_timeout"`
	WarmupEnabled  bool          `koanf:"warmup_enabled"`
}

// RecommendConfig holds result sizes for the recommendation views.
type RecommendConfig struct {
	TopK        int `koanf:"top_k"`
	GenreLimit  int `koanf:"genre_limit"`
	SearchLimit int `koanf:"search_limit"`
}

// SecurityConfig holds inbound rate limiting and CORS settings.
// The service performs no authentication.
type SecurityConfig struct {
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// WriteTimeoutSlack is added to PageBudget for the derived write timeout.
const WriteTimeoutSlack = 10 * time.Second

// LookupBudget is the longest a single poster lookup can take: every
// attempt hitting its timeout, plus the backoff between attempts.
func (p *PosterConfig) LookupBudget() time.Duration {
	if p.MaxAttempts < 1 {
		return p.Timeout
	}
	backoff := p.BackoffBase * time.Duration((1<<uint(p.MaxAttempts-1))-1)
	return time.Duration(p.MaxAttempts)*p.Timeout + backoff
}

// PageBudget is the longest a page of posters can take to resolve. The
// largest page (TopK or GenreLimit) runs in waves of MaxConcurrency lookups.
func (c *Config) PageBudget() time.Duration {
	page := c.Recommend.GenreLimit
	if c.Recommend.TopK > page {
		page = c.Recommend.TopK
	}
	concurrency := c.Poster.MaxConcurrency
	if concurrency < 1 {
		concurrency = 1
	}
	waves := (page + concurrency - 1) / concurrency
	if waves < 1 {
		waves = 1
	}
	return time.Duration(waves) * c.Poster.LookupBudget()
}

// Load is the entry point used by cmd/server.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
