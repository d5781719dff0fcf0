// Travel Journal - Destination Catalog and Recommendation Service
// Copyright 2026 Fiyas N. (Fiyas-N)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Fiyas-N/travel-journal-sub000

package recommend

import (
	"time"

	"github.com/Fiyas-N/travel-journal-sub000/internal/models"
)

// Type classifies why a destination was recommended. The three types are
// mutually exclusive; each destination is assigned exactly one per run.
type Type int

const (
	// TypeDiscovery marks a destination with no preference or similarity
	// signal, included to diversify the mix.
	TypeDiscovery Type = iota
	// TypeSimilarity marks a destination sharing location or category
	// attributes with the user's bookmarks.
	TypeSimilarity
	// TypePreference marks a destination whose category the user explicitly
	// opted into.
	TypePreference
)

// String returns the wire name of the recommendation type.
func (t Type) String() string {
	switch t {
	case TypePreference:
		return "preference"
	case TypeSimilarity:
		return "similarity"
	case TypeDiscovery:
		return "discovery"
	default:
		return "unknown"
	}
}

// MarshalJSON serializes the type as its wire name.
func (t Type) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.String() + `"`), nil
}

// Recommendation is a destination augmented with its score, category and
// display flags. It is ephemeral: computed fresh per request, never stored.
type Recommendation struct {
	models.Destination

	// SimilarityScore is the deterministic integer score: 10 for a
	// preference match, 1-9 for similarity, 0 for discovery.
	SimilarityScore int `json:"similarity_score"`

	// Type is the score band the destination fell into.
	Type Type `json:"recommendation_type"`

	// Trending is a display flag set on the caller's copy; it never feeds
	// back into scoring.
	Trending bool `json:"trending,omitempty"`
}

// Request describes a recommendation request.
type Request struct {
	// UID is the user to recommend for.
	UID string `json:"uid"`

	// Count is the desired result size. Defaults to Config.DefaultK when
	// zero and is clamped to Config.MaxK.
	Count int `json:"count,omitempty"`

	// RequestID is a unique identifier for tracing. Generated when empty.
	RequestID string `json:"request_id,omitempty"`
}

// TrendingSource identifies which popularity signal produced the trending
// flags on a response.
type TrendingSource string

const (
	// TrendingByBookmarks is the primary signal: bookmark counts across all
	// user profiles.
	TrendingByBookmarks TrendingSource = "bookmarks"
	// TrendingByLikeCount is the degraded-mode signal used when profiles
	// cannot be fetched.
	TrendingByLikeCount TrendingSource = "likes"
	// TrendingUnavailable means no trending flags could be attached.
	TrendingUnavailable TrendingSource = "unavailable"
)

// Response is the result of a recommendation request.
type Response struct {
	// Items is the ordered recommendation list.
	Items []Recommendation `json:"items"`

	// TotalCandidates is the number of catalog destinations considered
	// after self-authored and bookmarked entries were excluded.
	TotalCandidates int `json:"total_candidates"`

	// Metadata carries timing and diagnostic information.
	Metadata ResponseMetadata `json:"metadata"`
}

// ResponseMetadata carries timing and diagnostic information.
type ResponseMetadata struct {
	// RequestID is the unique request identifier.
	RequestID string `json:"request_id"`

	// UID is the user the recommendations are for.
	UID string `json:"uid"`

	// TrendingSource says which popularity signal flagged trending items.
	TrendingSource TrendingSource `json:"trending_source"`

	// LatencyMS is the total recommendation latency in milliseconds.
	LatencyMS int64 `json:"latency_ms"`

	// CacheHit indicates whether the result was served from cache.
	CacheHit bool `json:"cache_hit"`

	// Timestamp is when the response was generated.
	Timestamp time.Time `json:"timestamp"`
}

// Metrics is a snapshot of engine counters for observability.
type Metrics struct {
	// RequestCount is the total number of recommendation requests.
	RequestCount int64 `json:"request_count"`

	// CacheHits is the number of cache hits.
	CacheHits int64 `json:"cache_hits"`

	// CacheMisses is the number of cache misses.
	CacheMisses int64 `json:"cache_misses"`

	// TrendingFallbacks counts degraded-mode switches to like counts.
	TrendingFallbacks int64 `json:"trending_fallbacks"`

	// ErrorCount is the total number of failed requests.
	ErrorCount int64 `json:"error_count"`
}
