// Travel Journal - Destination Catalog and Recommendation Service
// Copyright 2026 Fiyas N. (Fiyas-N)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Fiyas-N/travel-journal-sub000

// Package main is the entry point for the travel journal server.
//
// The server hosts a community destination catalog with per-user
// recommendations, trending flags, ratings, likes and bookmarks.
//
// # Application Architecture
//
// Components initialize in the following order:
//
//  1. Configuration: layered koanf v2 loading (defaults, config.yaml, env)
//  2. Logging: zerolog, JSON or console format
//  3. Catalog store: BadgerDB key-value store wrapped in a circuit breaker
//  4. Recommendation engine: scoring, mixing and trending over the catalog
//  5. Authentication: JWT bearer tokens (HS256)
//  6. HTTP server: chi REST API under /api/v1 plus /metrics
//  7. Supervisor tree: suture v4 running the server and background refresh
//
// # Configuration
//
// Required:
//   - JWT_SECRET: 32+ character secret for token signing
//
// Common:
//   - HTTP_PORT: listen port (default 8080)
//   - BADGER_PATH: catalog store directory; empty means in-memory
//   - LOG_LEVEL: trace|debug|info|warn|error (default info)
//   - CONFIG_PATH: explicit config file location
//
// # Signal Handling
//
// The server shuts down gracefully on SIGINT and SIGTERM: it stops
// accepting connections, drains in-flight requests within the configured
// timeout, then closes the store.
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

	"github.com/Fiyas-N/travel-journal-sub000/internal/api"
	"github.com/Fiyas-N/travel-journal-sub000/internal/auth"
	"github.com/Fiyas-N/travel-journal-sub000/internal/catalog"
	"github.com/Fiyas-N/travel-journal-sub000/internal/config"
	"github.com/Fiyas-N/travel-journal-sub000/internal/logging"
	"github.com/Fiyas-N/travel-journal-sub000/internal/recommend"
	"github.com/Fiyas-N/travel-journal-sub000/internal/supervisor"
	"github.com/Fiyas-N/travel-journal-sub000/internal/supervisor/services"
)

func main() {
	// Load configuration first to get logging settings.
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
		Str("db_path", cfg.Database.Path).
		Int("port", cfg.Server.Port).
		Msg("Configuration loaded")

	db, err := catalog.OpenBadger(cfg.Database.Path)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open catalog store")
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing catalog store")
		}
	}()
	if cfg.Database.Path == "" {
		logging.Warn().Msg("BADGER_PATH is empty, catalog store is in-memory and will not survive restarts")
	}

	// The circuit breaker shields reads from a struggling store; writes
	// pass through so user actions are never silently dropped.
	store := catalog.NewBreakerStore(catalog.NewBadgerStore(db), logging.Logger())

	engine, err := recommend.NewEngine(&cfg.Recommend, logging.Logger())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create recommendation engine")
	}
	engine.SetProvider(store)
	logging.Info().
		Int("default_k", cfg.Recommend.DefaultK).
		Bool("cache_enabled", cfg.Recommend.CacheEnabled).
		Msg("Recommendation engine initialized")

	jwtManager, err := auth.NewJWTManager(&cfg.Security)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize authentication")
	}

	handler := api.NewHandler(cfg, store, engine)
	router := api.NewRouter(cfg, handler, jwtManager)

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router.Setup(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       120 * time.Second,
	}

	tree := supervisor.NewTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())

	tree.AddBackgroundService(services.NewTrendingRefresherService(
		store, engine, services.TrendingRefresherConfig{}, logging.Logger()))

	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("Starting supervisor tree")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	// Drain the error channel until the supervisor has fully stopped.
	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	logging.Info().Msg("Application stopped gracefully")
}
