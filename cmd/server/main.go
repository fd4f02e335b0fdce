// Marquee - Content-Similarity Movie Recommender
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/marquee/internal/api"
	"github.com/tomtom215/marquee/internal/cache"
	"github.com/tomtom215/marquee/internal/catalog"
	"github.com/tomtom215/marquee/internal/config"
	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/poster"
	"github.com/tomtom215/marquee/internal/recommend"
	"github.com/tomtom215/marquee/internal/supervisor"
	"github.com/tomtom215/marquee/internal/supervisor/services"
)

//nolint:gocyclo // Main initialization function with sequential setup steps
func main() {
	// Load configuration first to get logging settings
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("catalog_format", cfg.Catalog.Format).
		Str("movies_path", cfg.Catalog.MoviesPath).
		Str("similarity_path", cfg.Catalog.SimilarityPath).
		Str("environment", cfg.Server.Environment).
		Msg("Starting Marquee")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cat, err := catalog.Load(ctx, catalog.Source{
		Format:         cfg.Catalog.Format,
		MoviesPath:     cfg.Catalog.MoviesPath,
		SimilarityPath: cfg.Catalog.SimilarityPath,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load catalog")
	}

	client := poster.NewClient(&cfg.Poster)
	resolver := poster.NewResolver(client, cache.NewMemo[int64, poster.Result](poster.CacheName), cfg.Poster.MaxConcurrency)

	engine, err := recommend.NewEngine(&recommend.Config{
		TopK:       cfg.Recommend.TopK,
		GenreLimit: cfg.Recommend.GenreLimit,
	}, cat, resolver, logging.Logger())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create recommendation engine")
	}
	recommend.LogGenreCoverage(logging.WithComponent("catalog"), cat)

	handler, err := api.NewHandler(engine, resolver, client, cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create API handler")
	}
	ui, err := api.NewUI(handler)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to parse page template")
	}
	router := api.NewRouter(handler, ui, &cfg.Security)

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router.SetupChi(),
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       60 * time.Second,
	}

	// Bridges zerolog to slog for sutureslog
	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		FailureThreshold: 5,
		FailureBackoff:   15 * time.Second,
		ShutdownTimeout:  cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout, logging.WithComponent("http")))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	if cfg.Poster.WarmupEnabled {
		tree.AddBackgroundService(services.NewPosterWarmupService(engine, recommend.Genres, logging.WithComponent("warmup")))
		logging.Info().Msg("Poster warm-up service added")
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("Starting supervisor tree...")
	errCh := tree.ServeBackground(ctx)

	var serveErr error
	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish...")
		serveErr = <-errCh
	case serveErr = <-errCh:
	}
	if serveErr != nil && !errors.Is(serveErr, context.Canceled) {
		logging.Error().Err(serveErr).Msg("Supervisor tree error")
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	if len(unstopped) > 0 {
		logging.Warn().Int("count", len(unstopped)).Msg("Services failed to stop within timeout")
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
		}
	}

	logging.Info().Msg("Marquee stopped")
}
