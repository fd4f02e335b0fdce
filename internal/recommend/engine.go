// Marquee - Content-Similarity Movie Recommender
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package recommend

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/marquee/internal/catalog"
	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/metrics"
	"github.com/tomtom215/marquee/internal/poster"
)

const (
	kindSimilar = "similar"
	kindGenre   = "genre"
)

// PosterSource resolves posters for a batch of movie ids. The returned
// slice must be index-aligned with ids. *poster.Resolver implements it.
type PosterSource interface {
	ResolveAll(ctx context.Context, ids []int64) []poster.Result
}

// Recommendation is one ranked result.
type Recommendation struct {
	Movie  catalog.Movie
	Score  float64
	Poster poster.Result
}

// Entry is one genre browse result.
type Entry struct {
	Movie  catalog.Movie
	Poster poster.Result
}

// Scored pairs a catalog position with its similarity to the query movie.
type Scored struct {
	Index int
	Score float64
}

// Engine answers similarity and genre queries against one catalog.
// It holds no mutable state and is safe for concurrent use.
type Engine struct {
	config  *Config
	catalog *catalog.Catalog
	posters PosterSource
	logger  zerolog.Logger
}

// NewEngine creates a recommendation engine.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, cat *catalog.Catalog, posters PosterSource, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if cat == nil {
		return nil, errors.New("catalog is required")
	}
	if posters == nil {
		return nil, errors.New("poster source is required")
	}

	return &Engine{
		config:  cfg.Clone(),
		catalog: cat,
		posters: posters,
		logger:  logger.With().Str("component", "recommend").Logger(),
	}, nil
}

// Catalog returns the catalog the engine ranks against.
func (e *Engine) Catalog() *catalog.Catalog {
	return e.catalog
}

// Config returns a copy of the engine configuration.
func (e *Engine) Config() *Config {
	return e.config.Clone()
}

// Recommend returns up to TopK movies most similar to the movie titled
// title, best first, each with its poster.
//
// title must match a catalog title exactly; otherwise the error wraps
// catalog.ErrNotFound.
func (e *Engine) Recommend(ctx context.Context, title string) ([]Recommendation, error) {
	start := time.Now()
	log := e.requestLogger(ctx)

	ranked, err := e.Similar(title, e.config.TopK)
	if err != nil {
		metrics.RecordRecommendation(kindSimilar, outcomeFor(err, 1), time.Since(start))
		log.Debug().Str("title", title).Err(err).Msg("Recommendation lookup failed")
		return nil, err
	}

	ids := make([]int64, len(ranked))
	for i, s := range ranked {
		ids[i] = e.catalog.Movie(s.Index).ID
	}
	posters := e.posters.ResolveAll(ctx, ids)

	recs := make([]Recommendation, len(ranked))
	for i, s := range ranked {
		recs[i] = Recommendation{
			Movie:  e.catalog.Movie(s.Index),
			Score:  s.Score,
			Poster: posters[i],
		}
	}

	metrics.RecordRecommendation(kindSimilar, outcomeFor(nil, len(recs)), time.Since(start))
	log.Debug().
		Str("title", title).
		Int("results", len(recs)).
		Dur("duration", time.Since(start)).
		Msg("Recommendations generated")

	return recs, nil
}

// Similar returns the k highest-scoring movies for title without resolving
// posters.
func (e *Engine) Similar(title string, k int) ([]Scored, error) {
	i, err := e.catalog.IndexOf(title)
	if err != nil {
		return nil, err
	}
	return Rank(e.catalog.Similarities(i), i, k), nil
}

// Rank orders every position of scores except self by descending score and
// returns the first k. Equal scores keep ascending position order.
func Rank(scores []float64, self, k int) []Scored {
	ranked := make([]Scored, 0, len(scores))
	for j, s := range scores {
		if j == self {
			continue
		}
		ranked = append(ranked, Scored{Index: j, Score: s})
	}

	sort.SliceStable(ranked, func(a, b int) bool {
		return ranked[a].Score > ranked[b].Score
	})

	if k >= 0 && len(ranked) > k {
		ranked = ranked[:k]
	}
	return ranked
}

// BrowseGenre returns the first GenreLimit catalog movies matching g, in
// catalog order, each with its poster. The "All" genre returns the head of
// the catalog unfiltered. No matches is an empty slice, not an error.
func (e *Engine) BrowseGenre(ctx context.Context, g Genre) []Entry {
	start := time.Now()
	log := e.requestLogger(ctx)

	var movies []catalog.Movie
	if g.All() {
		movies = head(e.catalog.Movies(), e.config.GenreLimit)
	} else {
		movies = FilterByGenre(e.catalog.Movies(), g.Keyword, e.config.GenreLimit)
	}

	entries := e.withPosters(ctx, movies)

	metrics.RecordRecommendation(kindGenre, outcomeFor(nil, len(entries)), time.Since(start))
	log.Debug().
		Str("genre", g.Name).
		Int("results", len(entries)).
		Msg("Genre browse completed")

	return entries
}

// Posters resolves posters for movies, preserving order.
func (e *Engine) Posters(ctx context.Context, movies []catalog.Movie) []Entry {
	return e.withPosters(ctx, movies)
}

func (e *Engine) withPosters(ctx context.Context, movies []catalog.Movie) []Entry {
	if len(movies) == 0 {
		return []Entry{}
	}

	ids := make([]int64, len(movies))
	for i, m := range movies {
		ids[i] = m.ID
	}
	posters := e.posters.ResolveAll(ctx, ids)

	entries := make([]Entry, len(movies))
	for i, m := range movies {
		entries[i] = Entry{Movie: m, Poster: posters[i]}
	}
	return entries
}

func (e *Engine) requestLogger(ctx context.Context) zerolog.Logger {
	ctxLog := e.logger.With()
	if id := logging.RequestIDFromContext(ctx); id != "" {
		ctxLog = ctxLog.Str("request_id", id)
	}
	return ctxLog.Logger()
}

func head(movies []catalog.Movie, n int) []catalog.Movie {
	if len(movies) > n {
		movies = movies[:n]
	}
	out := make([]catalog.Movie, len(movies))
	copy(out, movies)
	return out
}

func outcomeFor(err error, n int) string {
	switch {
	case errors.Is(err, catalog.ErrNotFound):
		return "not_found"
	case err != nil:
		return "error"
	case n == 0:
		return "empty"
	default:
		return "ok"
	}
}
