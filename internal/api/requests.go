// Marquee - Content-Similarity Movie Recommender
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

// RecommendRequest represents the validated query parameters for
// GET /api/v1/recommendations. Title must match a catalog title exactly.
type RecommendRequest struct {
	Title string `json:"title" validate:"required,notblank,max=500"`
}

// SearchRequest represents the validated query parameters for
// GET /api/v1/movies.
//
// Fields:
//   - Query: Case-insensitive title prefix (empty lists the catalog head)
//   - Limit: Maximum suggestions (1-100)
type SearchRequest struct {
	Query string `json:"q" validate:"max=200"`
	Limit int    `json:"limit" validate:"min=1,max=100"`
}

// PosterRequest represents the path parameters for
// GET /api/v1/movies/{movieID}/poster.
type PosterRequest struct {
	MovieID int64 `json:"movie_id" validate:"gt=0"`
}

// GenreMoviesRequest represents the path parameters for
// GET /api/v1/genres/{genre}/movies.
type GenreMoviesRequest struct {
	Genre string `json:"genre" validate:"required,notblank,max=64"`
}
