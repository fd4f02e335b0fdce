// Marquee - Content-Similarity Movie Recommender
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package supervisor runs Marquee's long-lived services under a suture v4 tree.

# Overview

	RootSupervisor ("marquee")
	├── BackgroundSupervisor ("background-layer")
	│   └── PosterWarmupService (if POSTER_WARMUP_ENABLED)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

Crashed services are restarted with suture's backoff. Supervisor events
(starts, failures, restarts) are logged through sutureslog, bridged to
zerolog by logging.NewSlogLogger.

# Usage Example

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddAPIService(services.NewHTTPServerService(srv, cfg.Server.ShutdownTimeout, logging.Logger()))
	if cfg.Poster.WarmupEnabled {
	    tree.AddBackgroundService(services.NewPosterWarmupService(engine, recommend.Genres, logging.Logger()))
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
	    return err
	}

A service that finishes its work returns suture.ErrDoNotRestart so the
supervisor removes it instead of restarting it.
*/
package supervisor
