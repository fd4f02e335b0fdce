// Marquee - Content-Similarity Movie Recommender
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"context"
	"errors"
	"time"

	"github.com/tomtom215/marquee/internal/cache"
	"github.com/tomtom215/marquee/internal/config"
	"github.com/tomtom215/marquee/internal/poster"
	"github.com/tomtom215/marquee/internal/recommend"
)

// Version is reported by the health endpoint. It is overridden at build
// time with -ldflags "-X github.com/tomtom215/marquee/internal/api.Version=...".
var Version = "dev"

// PosterLookup resolves single posters and reports memo statistics.
// *poster.Resolver implements it.
type PosterLookup interface {
	Resolve(ctx context.Context, movieID int64) poster.Result
	CacheStats() cache.Stats
}

// BreakerReporter exposes the poster client's circuit breaker state.
// *poster.Client implements it.
type BreakerReporter interface {
	BreakerState() string
}

// Handler serves the JSON API and the HTML UI.
type Handler struct {
	engine    *recommend.Engine
	posters   PosterLookup
	breaker   BreakerReporter
	config    *config.Config
	startTime time.Time
}

// NewHandler creates a handler.
//
// Dependencies:
//   - engine: ranking and genre browse over the loaded catalog
//   - posters: single poster lookups for /movies/{movieID}/poster
//   - breaker: optional, reported by /health
//   - cfg: result sizes for search and recommendations
func NewHandler(engine *recommend.Engine, posters PosterLookup, breaker BreakerReporter, cfg *config.Config) (*Handler, error) {
	if engine == nil {
		return nil, errors.New("recommendation engine is required")
	}
	if posters == nil {
		return nil, errors.New("poster lookup is required")
	}
	if cfg == nil {
		return nil, errors.New("config is required")
	}
	return &Handler{
		engine:    engine,
		posters:   posters,
		breaker:   breaker,
		config:    cfg,
		startTime: time.Now(),
	}, nil
}
