// Marquee - Content-Similarity Movie Recommender
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package services provides suture.Service wrappers for Marquee components.

Each wrapper implements:

	type Service interface {
	    Serve(ctx context.Context) error
	}

# Available Services

HTTP Server (HTTPServerService):
  - Wraps *http.Server with graceful shutdown
  - Converts the blocking ListenAndServe into Serve
  - Listener failures are returned so the supervisor restarts the server

Poster Warm-up (PosterWarmupService):
  - Browses every genre once, filling the poster memo
  - Logs found/missing/failed counts for the pass
  - Returns suture.ErrDoNotRestart when finished
*/
package services
