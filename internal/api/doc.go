// Marquee - Content-Similarity Movie Recommender
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package api provides the HTTP layer for Marquee: a JSON API under /api/v1
and a server-rendered HTML page at /.

Key Components:

  - Router: Chi route configuration and middleware stack
  - Handler: JSON endpoints over the recommendation engine and poster resolver
  - UI: the genre browser and "Discover Movies Like..." page
  - ChiMiddleware: CORS (go-chi/cors) and per-IP rate limiting (go-chi/httprate)

Endpoints:

1. Health (/api/v1/health):
  - GET /live - process is up
  - GET /ready - catalog loaded
  - GET / - catalog size, poster cache statistics, breaker state

2. Catalog and recommendations (/api/v1):
  - GET /genres - selector entries, "All" first
  - GET /genres/{genre}/movies - up to GenreLimit matching movies with posters
  - GET /movies?q=&limit= - title typeahead
  - GET /movies/{movieID}/poster - single poster lookup outcome
  - GET /recommendations?title= - TopK similar movies with posters

3. HTML (/):
  - GET /?genre=&title= - genre grid or recommendations
  - POST /settings/theme - light/dark preference cookie

4. Observability:
  - GET /metrics - Prometheus exposition

Usage Example:

	handler, err := api.NewHandler(engine, resolver, client, cfg)
	if err != nil {
	    return err
	}
	ui, err := api.NewUI(handler)
	if err != nil {
	    return err
	}
	router := api.NewRouter(handler, ui, &cfg.Security)
	srv := &http.Server{Addr: ":8080", Handler: router.SetupChi()}

Response Format:

Every JSON endpoint answers with the same envelope:

	{
	    "status": "success",
	    "data": { ... },
	    "metadata": {"timestamp": "...", "query_time_ms": 3, "request_id": "..."}
	}

Errors set status to "error" and carry {"code", "message", "details"}.
Poster failures are never HTTP errors: they surface as an empty poster_url
with poster_status "missing" or "failed".
*/
package api
