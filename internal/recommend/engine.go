// Travel Journal - Destination Catalog and Recommendation Service
// Copyright 2026 Fiyas N. (Fiyas-N)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Fiyas-N/travel-journal-sub000

package recommend

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/Fiyas-N/travel-journal-sub000/internal/metrics"
	"github.com/Fiyas-N/travel-journal-sub000/internal/models"
)

// Note: this package depends on no other internal package except models and
// metrics. The CatalogProvider interface keeps the catalog store decoupled
// without circular imports.

// CatalogProvider defines the read contract the engine needs from the
// catalog store. All I/O happens through it, ahead of the pure computation;
// the provider is expected to return normalized records.
type CatalogProvider interface {
	// FetchAllDestinations returns the full destination catalog.
	FetchAllDestinations(ctx context.Context) ([]models.Destination, error)

	// FetchAllUserProfiles returns all user profiles, used for the
	// bookmark-popularity trending signal.
	FetchAllUserProfiles(ctx context.Context) ([]models.UserProfile, error)

	// FetchUserProfile returns a single user's profile.
	FetchUserProfile(ctx context.Context, uid string) (models.UserProfile, error)
}

// Engine orchestrates recommendation requests: it fetches snapshots from the
// catalog store, runs the pure mix computation, attaches trending flags and
// caches responses. It is safe for concurrent use.
type Engine struct {
	config   *Config
	logger   zerolog.Logger
	provider CatalogProvider

	cache   map[string]cacheEntry
	cacheMu sync.RWMutex

	// rng drives the display shuffle only (protected for concurrent use).
	rng   *rand.Rand
	rngMu sync.Mutex

	requestCount      atomic.Int64
	cacheHits         atomic.Int64
	cacheMisses       atomic.Int64
	trendingFallbacks atomic.Int64
	errorCount        atomic.Int64
}

// cacheEntry holds a cached response in deterministic (pre-shuffle) order.
type cacheEntry struct {
	response  *Response
	expiresAt time.Time
}

// NewEngine creates a recommendation engine.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = 42
	}

	return &Engine{
		config: cfg,
		logger: logger.With().Str("component", "recommend").Logger(),
		cache:  make(map[string]cacheEntry),
		rng:    rand.New(rand.NewSource(seed)), //nolint:gosec // math/rand is fine for display shuffling
	}, nil
}

// SetProvider sets the catalog provider.
func (e *Engine) SetProvider(p CatalogProvider) {
	e.provider = p
}

// Recommend generates the recommendation mix for a user.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) Recommend(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	e.requestCount.Add(1)
	metrics.RecommendationRequests.Inc()
	defer func() {
		metrics.RecommendationLatency.Observe(time.Since(start).Seconds())
	}()

	req, err := e.prepareRequest(req)
	if err != nil {
		e.errorCount.Add(1)
		return nil, err
	}

	logger := e.logger.With().
		Str("request_id", req.RequestID).
		Str("uid", req.UID).
		Logger()
	logger.Debug().Int("count", req.Count).Msg("processing recommendation request")

	if resp := e.tryCachedResponse(req, start); resp != nil {
		logger.Debug().Msg("cache hit")
		return e.finishResponse(resp), nil
	}

	if e.provider == nil {
		e.errorCount.Add(1)
		return nil, fmt.Errorf("catalog provider not set")
	}

	profile, err := e.provider.FetchUserProfile(ctx, req.UID)
	if err != nil {
		e.errorCount.Add(1)
		return nil, fmt.Errorf("fetch user profile: %w", err)
	}

	catalog, err := e.provider.FetchAllDestinations(ctx)
	if err != nil {
		e.errorCount.Add(1)
		return nil, fmt.Errorf("fetch destinations: %w", err)
	}

	// Self-authored destinations never reach scoring, whichever legacy
	// owner field matches.
	candidates := excludeOwned(catalog, req.UID)

	items := BuildMix(candidates, &profile, req.Count)
	if e.config.BackfillEnabled {
		items = Backfill(items, candidates, &profile, req.Count)
	}

	source := e.attachTrending(ctx, catalog, items, logger)

	resp := &Response{
		Items:           items,
		TotalCandidates: len(candidates),
		Metadata: ResponseMetadata{
			RequestID:      req.RequestID,
			UID:            req.UID,
			TrendingSource: source,
			LatencyMS:      time.Since(start).Milliseconds(),
			CacheHit:       false,
			Timestamp:      time.Now(),
		},
	}

	e.storeCache(req, resp)

	logger.Debug().
		Int("candidates", len(candidates)).
		Int("returned", len(items)).
		Str("trending_source", string(source)).
		Int64("latency_ms", resp.Metadata.LatencyMS).
		Msg("recommendation complete")

	return e.finishResponse(resp), nil
}

// TrendingIDs computes the current trending id set, falling back from
// bookmark counts to like counts when profiles cannot be fetched. The
// fallback is logged and counted, never surfaced as a user-facing error.
func (e *Engine) TrendingIDs(ctx context.Context, catalog []models.Destination) (map[string]struct{}, TrendingSource) {
	if e.provider == nil {
		return map[string]struct{}{}, TrendingUnavailable
	}

	profiles, err := e.provider.FetchAllUserProfiles(ctx)
	if err != nil {
		e.trendingFallbacks.Add(1)
		metrics.TrendingFallbacks.Inc()
		e.logger.Warn().Err(err).Msg("profile scan failed, trending falls back to like counts")
		return TrendingByLikes(catalog, e.config.TrendingTopN), TrendingByLikeCount
	}

	return ComputeTrending(catalog, profiles, e.config.TrendingTopN), TrendingByBookmarks
}

// GetMetrics returns a snapshot of the engine counters.
func (e *Engine) GetMetrics() Metrics {
	return Metrics{
		RequestCount:      e.requestCount.Load(),
		CacheHits:         e.cacheHits.Load(),
		CacheMisses:       e.cacheMisses.Load(),
		TrendingFallbacks: e.trendingFallbacks.Load(),
		ErrorCount:        e.errorCount.Load(),
	}
}

// GetConfig returns a copy of the current configuration.
func (e *Engine) GetConfig() *Config {
	return e.config.Clone()
}

// prepareRequest applies defaults and rejects invalid arguments outright
// rather than producing silently wrong scores.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) prepareRequest(req Request) (Request, error) {
	if req.UID == "" {
		return req, fmt.Errorf("uid is required")
	}
	if req.Count < 0 {
		return req, fmt.Errorf("count must be >= 0, got %d", req.Count)
	}
	if req.Count == 0 {
		req.Count = e.config.DefaultK
	}
	if req.Count > e.config.MaxK {
		req.Count = e.config.MaxK
	}
	if req.RequestID == "" {
		req.RequestID = e.generateRequestID()
	}
	return req, nil
}

// attachTrending flags trending items on the engine's own copies.
func (e *Engine) attachTrending(ctx context.Context, catalog []models.Destination, items []Recommendation, logger zerolog.Logger) TrendingSource {
	trending, source := e.TrendingIDs(ctx, catalog)
	if source == TrendingUnavailable {
		logger.Warn().Msg("trending unavailable")
		return source
	}
	for i := range items {
		if _, ok := trending[items[i].ID]; ok {
			items[i].Trending = true
		}
	}
	return source
}

// finishResponse applies the display shuffle to the response that leaves
// the engine. The cached copy keeps the deterministic order.
func (e *Engine) finishResponse(resp *Response) *Response {
	if !e.config.ShuffleEnabled || len(resp.Items) < 2 {
		return resp
	}
	e.rngMu.Lock()
	Shuffle(resp.Items, e.rng)
	e.rngMu.Unlock()
	return resp
}

// tryCachedResponse returns a copy of a valid cached response, or nil.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) tryCachedResponse(req Request, start time.Time) *Response {
	if !e.config.CacheEnabled {
		return nil
	}

	key := cacheKey(req)

	e.cacheMu.RLock()
	entry, ok := e.cache[key]
	e.cacheMu.RUnlock()

	if !ok || time.Now().After(entry.expiresAt) {
		e.cacheMisses.Add(1)
		return nil
	}

	e.cacheHits.Add(1)
	items := make([]Recommendation, len(entry.response.Items))
	copy(items, entry.response.Items)

	meta := entry.response.Metadata
	meta.CacheHit = true
	meta.LatencyMS = time.Since(start).Milliseconds()

	return &Response{
		Items:           items,
		TotalCandidates: entry.response.TotalCandidates,
		Metadata:        meta,
	}
}

// storeCache stores a response, evicting expired entries at capacity. The
// entry holds its own copy of the items: the caller's slice is shuffled in
// place by finishResponse after caching, and the cached order must stay
// deterministic.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) storeCache(req Request, resp *Response) {
	if !e.config.CacheEnabled {
		return
	}

	items := make([]Recommendation, len(resp.Items))
	copy(items, resp.Items)

	e.cacheMu.Lock()
	defer e.cacheMu.Unlock()

	if len(e.cache) >= e.config.CacheMaxEntries {
		now := time.Now()
		for key, entry := range e.cache {
			if now.After(entry.expiresAt) {
				delete(e.cache, key)
			}
		}
	}

	e.cache[cacheKey(req)] = cacheEntry{
		response: &Response{
			Items:           items,
			TotalCandidates: resp.TotalCandidates,
			Metadata:        resp.Metadata,
		},
		expiresAt: time.Now().Add(e.config.CacheTTL),
	}
}

// InvalidateCache drops all cached responses. Called after catalog writes
// so bookmark and rating changes show up immediately.
func (e *Engine) InvalidateCache() {
	e.cacheMu.Lock()
	e.cache = make(map[string]cacheEntry)
	e.cacheMu.Unlock()
}

// generateRequestID generates a unique request id for tracing.
func (e *Engine) generateRequestID() string {
	e.rngMu.Lock()
	n := e.rng.Intn(10000)
	e.rngMu.Unlock()
	return fmt.Sprintf("rec-%d-%d", time.Now().UnixNano(), n)
}

// cacheKey derives the cache key for a request.
//
//nolint:gocritic // hugeParam: req passed by value for simplicity
func cacheKey(req Request) string {
	return fmt.Sprintf("rec:%s:%d", req.UID, req.Count)
}

// excludeOwned filters out destinations authored by uid, comparing both
// legacy owner fields.
func excludeOwned(catalog []models.Destination, uid string) []models.Destination {
	out := make([]models.Destination, 0, len(catalog))
	for i := range catalog {
		if catalog[i].OwnedBy(uid) {
			continue
		}
		out = append(out, catalog[i])
	}
	return out
}
