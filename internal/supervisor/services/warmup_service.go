// Marquee - Content-Similarity Movie Recommender
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/thejerf/suture/v4"

	"github.com/tomtom215/marquee/internal/poster"
	"github.com/tomtom215/marquee/internal/recommend"
)

// GenreBrowser resolves a genre page with posters. *recommend.Engine
// implements it.
type GenreBrowser interface {
	BrowseGenre(ctx context.Context, g recommend.Genre) []recommend.Entry
}

// WarmupSummary counts poster outcomes across one warm-up pass.
type WarmupSummary struct {
	Genres  int
	Movies  int
	Found   int
	Missing int
	Failed  int
}

// PosterWarmupService resolves the first page of every genre once, so the
// poster memo is populated before visitors arrive. It runs a single pass
// and then asks the supervisor not to restart it.
type PosterWarmupService struct {
	browser GenreBrowser
	genres  []recommend.Genre
	logger  zerolog.Logger
	name    string
	done    chan WarmupSummary
}

// NewPosterWarmupService creates the service.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewPosterWarmupService(browser GenreBrowser, genres []recommend.Genre, logger zerolog.Logger) *PosterWarmupService {
	return &PosterWarmupService{
		browser: browser,
		genres:  genres,
		logger:  logger.With().Str("service", "poster-warmup").Logger(),
		name:    "poster-warmup",
		done:    make(chan WarmupSummary, 1),
	}
}

// Serve implements suture.Service.
func (s *PosterWarmupService) Serve(ctx context.Context) error {
	start := time.Now()
	s.logger.Info().Int("genres", len(s.genres)).Msg("poster warm-up starting")

	var sum WarmupSummary
	for _, g := range s.genres {
		if err := ctx.Err(); err != nil {
			s.logger.Info().Str("genre", g.Name).Msg("poster warm-up interrupted")
			return err
		}
		entries := s.browser.BrowseGenre(ctx, g)
		sum.Genres++
		for _, e := range entries {
			sum.Movies++
			switch e.Poster.Status {
			case poster.StatusFound:
				sum.Found++
			case poster.StatusMissing:
				sum.Missing++
			default:
				sum.Failed++
			}
		}
	}

	s.logger.Info().
		Int("genres", sum.Genres).
		Int("movies", sum.Movies).
		Int("found", sum.Found).
		Int("missing", sum.Missing).
		Int("failed", sum.Failed).
		Dur("duration", time.Since(start)).
		Msg("poster warm-up complete")

	select {
	case s.done <- sum:
	default:
	}
	return suture.ErrDoNotRestart
}

// Done receives the summary once the pass completes.
func (s *PosterWarmupService) Done() <-chan WarmupSummary {
	return s.done
}

// String implements fmt.Stringer.
func (s *PosterWarmupService) String() string {
	return s.name
}
