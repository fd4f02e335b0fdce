// Marquee - Content-Similarity Movie Recommender
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package recommend

import (
	"fmt"
)

// Config contains the limits applied by the recommendation engine.
type Config struct {
	// TopK is how many similar movies Recommend returns.
	TopK int `json:"top_k"`

	// GenreLimit is how many movies a genre browse returns.
	GenreLimit int `json:"genre_limit"`
}

// DefaultConfig returns the limits used by the web UI.
func DefaultConfig() *Config {
	return &Config{
		TopK:       5,
		GenreLimit: 10,
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.TopK < 1 {
		return fmt.Errorf("top_k must be at least 1, got %d", c.TopK)
	}
	if c.GenreLimit < 1 {
		return fmt.Errorf("genre_limit must be at least 1, got %d", c.GenreLimit)
	}
	return nil
}

// Clone returns a copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}
