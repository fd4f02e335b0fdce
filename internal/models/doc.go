// Marquee - Content-Similarity Movie Recommender
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package models defines the JSON shapes served by the HTTP API.

Domain types live with the code that owns them (catalog.Movie,
poster.Result, recommend.Recommendation). This package holds only their
wire representations and the response envelope, so that API field names
can change without touching ranking or lookup code.

Key Components:

  - APIResponse: Standard response envelope with Metadata and APIError
  - MovieView: A catalog movie with its resolved poster
  - RecommendationView: A MovieView plus its similarity score
  - PosterView: The full outcome of one poster lookup
  - HealthResponse: Liveness, readiness and cache statistics

Poster fields:

PosterURL is empty whenever no image can be shown, whether the movie has
no poster or the lookup failed. PosterStatus keeps that distinction
("found", "missing", "failed") for clients that care.
*/
package models
