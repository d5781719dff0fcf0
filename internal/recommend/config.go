// Travel Journal - Destination Catalog and Recommendation Service
// Copyright 2026 Fiyas N. (Fiyas-N)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Fiyas-N/travel-journal-sub000

package recommend

import (
	"fmt"
	"time"
)

// Config contains the operational configuration of the recommendation
// engine. The scoring constants themselves are not configurable: the
// sentinel/cap design only works with fixed, disjoint bands.
type Config struct {
	// DefaultK is the result size used when a request does not specify one.
	DefaultK int `json:"default_k" koanf:"default_k"`

	// MaxK caps the requestable result size.
	MaxK int `json:"max_k" koanf:"max_k"`

	// TrendingTopN is how many destinations carry the trending flag.
	TrendingTopN int `json:"trending_top_n" koanf:"trending_top_n"`

	// CacheEnabled toggles the per-user response cache.
	CacheEnabled bool `json:"cache_enabled" koanf:"cache_enabled"`

	// CacheTTL is how long a cached response stays valid.
	CacheTTL time.Duration `json:"cache_ttl" koanf:"cache_ttl"`

	// CacheMaxEntries bounds the response cache.
	CacheMaxEntries int `json:"cache_max_entries" koanf:"cache_max_entries"`

	// ShuffleEnabled applies a fair shuffle to returned items for display.
	// The deterministic order is always what gets cached.
	ShuffleEnabled bool `json:"shuffle_enabled" koanf:"shuffle_enabled"`

	// BackfillEnabled pads short results with the highest-rated remaining
	// destinations regardless of score band (legacy display behavior).
	BackfillEnabled bool `json:"backfill_enabled" koanf:"backfill_enabled"`

	// Seed drives the display shuffle RNG. Zero selects a fixed default so
	// behavior stays reproducible.
	Seed int64 `json:"seed" koanf:"seed"`
}

// DefaultConfig returns production-ready defaults.
func DefaultConfig() *Config {
	return &Config{
		DefaultK:        10,
		MaxK:            30,
		TrendingTopN:    3,
		CacheEnabled:    true,
		CacheTTL:        5 * time.Minute,
		CacheMaxEntries: 1000,
		ShuffleEnabled:  false,
		BackfillEnabled: false,
		Seed:            0,
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.DefaultK < 1 {
		return fmt.Errorf("default_k must be >= 1, got %d", c.DefaultK)
	}
	if c.MaxK < c.DefaultK {
		return fmt.Errorf("max_k (%d) must be >= default_k (%d)", c.MaxK, c.DefaultK)
	}
	if c.TrendingTopN < 0 {
		return fmt.Errorf("trending_top_n must be >= 0, got %d", c.TrendingTopN)
	}
	if c.CacheEnabled {
		if c.CacheTTL <= 0 {
			return fmt.Errorf("cache_ttl must be positive when cache is enabled, got %s", c.CacheTTL)
		}
		if c.CacheMaxEntries < 1 {
			return fmt.Errorf("cache_max_entries must be >= 1 when cache is enabled, got %d", c.CacheMaxEntries)
		}
	}
	return nil
}

// Clone returns a copy of the configuration.
func (c *Config) Clone() *Config {
	out := *c
	return &out
}
