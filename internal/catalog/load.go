// Marquee - Content-Similarity Movie Recommender
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/metrics"
)

// Supported artifact formats.
const (
	FormatJSON   = "json"
	FormatDuckDB = "duckdb"
)

// Source locates the two artifacts that make up a catalog.
type Source struct {
	Format         string
	MoviesPath     string
	SimilarityPath string
}

// Load reads the movie table and similarity matrix described by src and
// validates them together. Any error is fatal for the caller: the service
// cannot run without a catalog.
func Load(ctx context.Context, src Source) (*Catalog, error) {
	start := time.Now()

	var (
		movies []Movie
		matrix *Matrix
		err    error
	)
	switch src.Format {
	case FormatJSON, "":
		movies, matrix, err = loadJSON(src.MoviesPath, src.SimilarityPath)
	case FormatDuckDB:
		movies, matrix, err = loadDuckDB(ctx, src.MoviesPath, src.SimilarityPath)
	default:
		return nil, fmt.Errorf("unsupported catalog format %q", src.Format)
	}
	if err != nil {
		return nil, err
	}

	c, err := New(movies, matrix)
	if err != nil {
		return nil, err
	}

	metrics.CatalogMovies.Set(float64(c.Len()))
	logging.Info().
		Str("format", src.Format).
		Str("movies_path", src.MoviesPath).
		Str("similarity_path", src.SimilarityPath).
		Int("movies", c.Len()).
		Int("tagged", c.TaggedCount()).
		Dur("elapsed", time.Since(start)).
		Msg("Catalog loaded")
	return c, nil
}
