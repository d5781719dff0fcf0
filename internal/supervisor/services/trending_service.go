// Travel Journal - Destination Catalog and Recommendation Service
// Copyright 2026 Fiyas N. (Fiyas-N)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Fiyas-N/travel-journal-sub000

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/Fiyas-N/travel-journal-sub000/internal/models"
	"github.com/Fiyas-N/travel-journal-sub000/internal/recommend"
)

// CatalogReader is the slice of the store the refresher needs.
type CatalogReader interface {
	FetchAllDestinations(ctx context.Context) ([]models.Destination, error)
}

// TrendingEngine is the slice of the recommendation engine the refresher
// needs. Defined here to avoid a supervisor->api dependency.
type TrendingEngine interface {
	TrendingIDs(ctx context.Context, catalog []models.Destination) (map[string]struct{}, recommend.TrendingSource)
}

// TrendingRefresherConfig holds configuration for the trending refresher.
type TrendingRefresherConfig struct {
	// Interval is how often to recompute trending. Defaults to 5m.
	Interval time.Duration

	// FetchTimeout bounds a single refresh cycle. Defaults to 30s.
	FetchTimeout time.Duration
}

// TrendingRefresherService periodically recomputes the trending set so the
// popularity signal stays warm between requests and degraded-mode
// fallbacks surface in logs even on an idle instance.
type TrendingRefresherService struct {
	store  CatalogReader
	engine TrendingEngine
	config TrendingRefresherConfig
	logger zerolog.Logger
	name   string
}

// NewTrendingRefresherService creates a trending refresher service.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewTrendingRefresherService(store CatalogReader, engine TrendingEngine, cfg TrendingRefresherConfig, logger zerolog.Logger) *TrendingRefresherService {
	if cfg.Interval <= 0 {
		cfg.Interval = 5 * time.Minute
	}
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = 30 * time.Second
	}
	return &TrendingRefresherService{
		store:  store,
		engine: engine,
		config: cfg,
		logger: logger.With().Str("service", "trending-refresher").Logger(),
		name:   "trending-refresher",
	}
}

// Serve implements suture.Service. A failed refresh is logged and retried
// on the next tick; it never crashes the service.
func (s *TrendingRefresherService) Serve(ctx context.Context) error {
	s.logger.Info().
		Dur("interval", s.config.Interval).
		Msg("trending refresher starting")

	// Warm the signal once at startup before settling into the ticker.
	s.refresh(ctx)

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("trending refresher shutting down")
			return ctx.Err()

		case <-ticker.C:
			s.refresh(ctx)
		}
	}
}

func (s *TrendingRefresherService) refresh(ctx context.Context) {
	refreshCtx, cancel := context.WithTimeout(ctx, s.config.FetchTimeout)
	defer cancel()

	start := time.Now()
	catalog, err := s.store.FetchAllDestinations(refreshCtx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("trending refresh failed (will retry on schedule)")
		return
	}

	trending, source := s.engine.TrendingIDs(refreshCtx, catalog)

	s.logger.Debug().
		Int("catalog_size", len(catalog)).
		Int("trending", len(trending)).
		Str("source", string(source)).
		Dur("duration", time.Since(start)).
		Msg("trending refresh complete")
}

// String returns the service name for logging.
func (s *TrendingRefresherService) String() string {
	return s.name
}
