// Marquee - Content-Similarity Movie Recommender
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package models

import "time"

// MovieView is a catalog movie as returned by list endpoints.
type MovieView struct {
	MovieID      int64  `json:"movie_id"`
	Title        string `json:"title"`
	PosterURL    string `json:"poster_url"`
	PosterStatus string `json:"poster_status,omitempty"`
}

// RecommendationView is one ranked recommendation.
type RecommendationView struct {
	MovieView
	Rank  int     `json:"rank"`
	Score float64 `json:"score"`
}

// RecommendationsResponse is the payload of GET /api/v1/recommendations.
type RecommendationsResponse struct {
	Title           string               `json:"title"`
	Recommendations []RecommendationView `json:"recommendations"`
}

// GenreView is one entry of the genre selector.
type GenreView struct {
	Name    string `json:"name"`
	Slug    string `json:"slug"`
	Keyword string `json:"keyword,omitempty"`
}

// GenreMoviesResponse is the payload of GET /api/v1/genres/{genre}/movies.
// Message is set when no movie matched.
type GenreMoviesResponse struct {
	Genre   GenreView   `json:"genre"`
	Movies  []MovieView `json:"movies"`
	Message string      `json:"message,omitempty"`
}

// TitleMatch is one typeahead suggestion.
type TitleMatch struct {
	MovieID int64  `json:"movie_id"`
	Title   string `json:"title"`
}

// PosterView is the full outcome of a poster lookup.
type PosterView struct {
	MovieID int64  `json:"movie_id"`
	Status  string `json:"status"`
	URL     string `json:"url"`
	Error   string `json:"error,omitempty"`
}

// HealthResponse is the payload of GET /api/v1/health.
type HealthResponse struct {
	Status        string      `json:"status"`
	Version       string      `json:"version"`
	Uptime        float64     `json:"uptime_seconds"`
	CatalogMovies int         `json:"catalog_movies"`
	TaggedMovies  int         `json:"tagged_movies"`
	PosterCache   CacheHealth `json:"poster_cache"`
	PosterBreaker string      `json:"poster_breaker"`
	Timestamp     time.Time   `json:"timestamp"`
}

// CacheHealth summarises the poster memo.
type CacheHealth struct {
	Entries int64   `json:"entries"`
	Hits    int64   `json:"hits"`
	Misses  int64   `json:"misses"`
	HitRate float64 `json:"hit_rate"`
}
