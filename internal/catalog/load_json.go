// Marquee - Content-Similarity Movie Recommender
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package catalog

import (
	"bytes"
	"fmt"
	"os"

	"github.com/goccy/go-json"

	"github.com/tomtom215/marquee/internal/logging"
)

// jsonMovie is the on-disk row. Tags stays raw so a null, numeric or
// missing value can be told apart from a string.
type jsonMovie struct {
	ID    *int64          `json:"movie_id"`
	Title *string         `json:"title"`
	Tags  json.RawMessage `json:"tags"`
}

func loadJSON(moviesPath, similarityPath string) ([]Movie, *Matrix, error) {
	movies, err := readJSONMovies(moviesPath)
	if err != nil {
		return nil, nil, err
	}
	matrix, err := readJSONMatrix(similarityPath)
	if err != nil {
		return nil, nil, err
	}
	return movies, matrix, nil
}

func readJSONMovies(path string) ([]Movie, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from operator configuration
	if err != nil {
		return nil, fmt.Errorf("failed to read movies file: %w", err)
	}

	var rows []jsonMovie
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("%w: movies file %s: %v", ErrSchema, path, err)
	}

	movies := make([]Movie, len(rows))
	untagged := 0
	for i, row := range rows {
		if row.ID == nil {
			return nil, fmt.Errorf("%w: movies row %d has no movie_id", ErrSchema, i)
		}
		if row.Title == nil {
			return nil, fmt.Errorf("%w: movies row %d has no title", ErrSchema, i)
		}
		movies[i] = Movie{ID: *row.ID, Title: *row.Title, Tags: decodeTags(row.Tags)}
		if movies[i].Tags == nil {
			untagged++
		}
	}
	if untagged > 0 {
		logging.Warn().Int("rows", untagged).Str("path", path).Msg("Movies without a tag string will never match a genre")
	}
	return movies, nil
}

// decodeTags returns nil unless raw is a JSON string.
func decodeTags(raw json.RawMessage) *string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '"' {
		return nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil
	}
	return &s
}

func readJSONMatrix(path string) (*Matrix, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from operator configuration
	if err != nil {
		return nil, fmt.Errorf("failed to read similarity file: %w", err)
	}

	var rows [][]float64
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("%w: similarity file %s: %v", ErrSchema, path, err)
	}
	return NewMatrix(rows)
}
