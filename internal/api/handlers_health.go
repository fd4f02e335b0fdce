// Marquee - Content-Similarity Movie Recommender
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/marquee/internal/models"
)

// Health handles health check requests.
// Returns catalog size, poster cache statistics and breaker state. The
// service reports "degraded" while the poster breaker is open: pages still
// render, but without posters.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	cat := h.engine.Catalog()
	stats := h.posters.CacheStats()

	breakerState := "disabled"
	if h.breaker != nil {
		breakerState = h.breaker.BreakerState()
	}

	status := "healthy"
	if breakerState == "open" {
		status = "degraded"
	}

	hitRate := 0.0
	if lookups := stats.Hits + stats.Misses; lookups > 0 {
		hitRate = float64(stats.Hits) / float64(lookups) * 100
	}

	health := models.HealthResponse{
		Status:        status,
		Version:       Version,
		Uptime:        time.Since(h.startTime).Seconds(),
		CatalogMovies: cat.Len(),
		TaggedMovies:  cat.TaggedCount(),
		PosterCache: models.CacheHealth{
			Entries: stats.TotalKeys,
			Hits:    stats.Hits,
			Misses:  stats.Misses,
			HitRate: hitRate,
		},
		PosterBreaker: breakerState,
		Timestamp:     time.Now(),
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   health,
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}

// HealthLive handles liveness probe requests (Kubernetes-style)
// Returns 200 OK if the process is alive, regardless of dependencies
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: map[string]interface{}{
			"alive":  true,
			"uptime": time.Since(h.startTime).Seconds(),
		},
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}

// HealthReady handles readiness probe requests (Kubernetes-style)
// Returns 200 OK once a non-empty catalog is loaded. Poster service
// availability does not affect readiness.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	n := h.engine.Catalog().Len()
	if n == 0 {
		respondError(w, http.StatusServiceUnavailable, ErrCodeNotReady, "Catalog not loaded", nil)
		return
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: map[string]interface{}{
			"ready":          true,
			"catalog_movies": n,
		},
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}
