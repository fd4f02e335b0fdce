// Marquee - Content-Similarity Movie Recommender
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package middleware provides HTTP middleware shared by the API and UI routes.

Key Components:

  - RequestID: UUID-based request tracking, propagated into the logging context
  - PrometheusMetrics: HTTP request/response instrumentation

Both are Chi-compatible (func(http.Handler) http.Handler) and are installed
by api.Router.SetupChi:

	r.Use(middleware.RequestID)
	r.Route("/api/v1", func(r chi.Router) {
	    r.Use(middleware.PrometheusMetrics)
	    ...
	})

Request ID:

An incoming X-Request-ID header is reused when present; otherwise a UUID v4
is generated. The ID is echoed in the response header and stored in the
request context, where logging.Ctx picks it up:

	func handler(w http.ResponseWriter, r *http.Request) {
	    logging.Ctx(r.Context()).Info().Msg("Processing request")
	}

Metrics Labels:

PrometheusMetrics labels requests by the matched Chi route pattern
(/api/v1/movies/{movieID}/poster) rather than the raw path, keeping
api_requests_total cardinality bounded by the number of routes.
*/
package middleware
