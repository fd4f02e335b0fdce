// Marquee - Content-Similarity Movie Recommender
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package main is the entry point for the Marquee server.

Marquee serves content-similarity movie recommendations from a precomputed
catalog and similarity matrix, decorated with poster images looked up from
TMDB.

# Application Architecture

	RootSupervisor ("marquee")
	├── BackgroundSupervisor ("background-layer")
	│   └── Poster warm-up (optional, POSTER_WARMUP_ENABLED=true)
	└── APISupervisor ("api-layer")
	    └── HTTP Server (JSON API, HTML page, /metrics)

Component initialization order:

 1. Configuration: Koanf v2 with defaults, config.yaml, .env and environment
 2. Logging: zerolog with the configured level and format
 3. Catalog: movie table and similarity matrix (JSON or DuckDB), validated
 4. Poster client: TMDB with retries, rate limiting and a circuit breaker
 5. Resolver: per-process memo with in-flight deduplication
 6. Engine: ranking and genre browse
 7. HTTP: Chi router under the supervisor tree

Any failure in steps 1 to 3 is fatal: the server never starts without a
credential and a valid catalog.

# Configuration

Required:
  - TMDB_API_KEY (or API_KEY): TMDB v3 API key

Common:
  - CATALOG_FORMAT, CATALOG_MOVIES_PATH, CATALOG_SIMILARITY_PATH
  - HTTP_PORT, HTTP_HOST
  - LOG_LEVEL, LOG_FORMAT
  - RECOMMEND_TOP_K, RECOMMEND_GENRE_LIMIT

# Example Usage

	export TMDB_API_KEY=your-key
	export CATALOG_MOVIES_PATH=data/movies.json
	export CATALOG_SIMILARITY_PATH=data/similarity.json
	./marquee

Columnar artifacts:

	export CATALOG_FORMAT=duckdb
	export CATALOG_MOVIES_PATH=data/movies.parquet
	export CATALOG_SIMILARITY_PATH=data/similarity.parquet
	./marquee

# Signal Handling

SIGINT and SIGTERM cancel the supervisor tree. The HTTP server stops
accepting connections and drains in-flight requests for up to
SERVER_SHUTDOWN_TIMEOUT.
*/
package main
