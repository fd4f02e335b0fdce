// Marquee - Content-Similarity Movie Recommender
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/marquee/internal/catalog"
	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/models"
	"github.com/tomtom215/marquee/internal/recommend"
)

// Genres handles GET /api/v1/genres.
// Returns the selector entries in display order, "All" first.
func (h *Handler) Genres(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	views := make([]models.GenreView, len(recommend.Genres))
	for i, g := range recommend.Genres {
		views[i] = toGenreView(g)
	}
	respondSuccess(w, r, views, start)
}

// GenreMovies handles GET /api/v1/genres/{genre}/movies.
// {genre} is a slug ("science-fiction") or display name. "all" returns the
// head of the catalog unfiltered.
func (h *Handler) GenreMovies(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	req := GenreMoviesRequest{Genre: chi.URLParam(r, "genre")}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondValidationError(w, apiErr)
		return
	}

	genre, ok := recommend.LookupGenre(req.Genre)
	if !ok {
		respondError(w, http.StatusNotFound, ErrCodeNotFound, fmt.Sprintf("Unknown genre: %s", req.Genre), nil)
		return
	}

	entries := h.engine.BrowseGenre(r.Context(), genre)

	resp := models.GenreMoviesResponse{
		Genre:  toGenreView(genre),
		Movies: make([]models.MovieView, len(entries)),
	}
	for i, e := range entries {
		resp.Movies[i] = toMovieView(e)
	}
	if len(entries) == 0 {
		resp.Message = "No movies found for genre: " + genre.Name
	}

	respondSuccess(w, r, resp, start)
}

// SearchMovies handles GET /api/v1/movies?q=&limit=.
// Returns catalog titles starting with q, ignoring case, in catalog order.
// Titles returned here are valid input for /recommendations.
func (h *Handler) SearchMovies(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	req := SearchRequest{
		Query: r.URL.Query().Get("q"),
		Limit: getIntParam(r, "limit", h.config.Recommend.SearchLimit),
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondValidationError(w, apiErr)
		return
	}

	movies := h.engine.Catalog().SearchTitles(req.Query, req.Limit)
	matches := make([]models.TitleMatch, len(movies))
	for i, m := range movies {
		matches[i] = models.TitleMatch{MovieID: m.ID, Title: m.Title}
	}

	respondSuccess(w, r, matches, start)
}

// MoviePoster handles GET /api/v1/movies/{movieID}/poster.
// Any positive id is accepted; the lookup does not require catalog
// membership. Lookup failures are reported in the payload, not as HTTP
// errors.
func (h *Handler) MoviePoster(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	raw := chi.URLParam(r, "movieID")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "movie_id must be an integer", nil)
		return
	}
	req := PosterRequest{MovieID: id}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondValidationError(w, apiErr)
		return
	}

	res := h.posters.Resolve(r.Context(), req.MovieID)
	respondSuccess(w, r, toPosterView(res), start)
}

// Recommendations handles GET /api/v1/recommendations?title=.
// Returns up to TopK similar movies, best first. An unknown title is 404.
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	req := RecommendRequest{Title: r.URL.Query().Get("title")}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondValidationError(w, apiErr)
		return
	}

	recs, err := h.engine.Recommend(r.Context(), req.Title)
	if errors.Is(err, catalog.ErrNotFound) {
		respondError(w, http.StatusNotFound, ErrCodeNotFound, err.Error(), nil)
		return
	}
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Str("title", sanitizeLogValue(req.Title)).Msg("Recommendation failed")
		respondError(w, http.StatusInternalServerError, ErrCodeInternalError, "Failed to generate recommendations", err)
		return
	}

	resp := models.RecommendationsResponse{
		Title:           req.Title,
		Recommendations: make([]models.RecommendationView, len(recs)),
	}
	for i, rec := range recs {
		resp.Recommendations[i] = toRecommendationView(i+1, rec)
	}

	respondSuccess(w, r, resp, start)
}
