// Travel Journal - Destination Catalog and Recommendation Service
// Copyright 2026 Fiyas N. (Fiyas-N)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Fiyas-N/travel-journal-sub000

package recommend

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"

	"github.com/Fiyas-N/travel-journal-sub000/internal/models"
)

// mockProvider implements CatalogProvider for testing.
type mockProvider struct {
	destinations    []models.Destination
	profiles        []models.UserProfile
	profilesByUID   map[string]models.UserProfile
	destinationsErr error
	profilesErr     error
	profileErr      error
	profileCalls    int32
}

func (m *mockProvider) FetchAllDestinations(ctx context.Context) ([]models.Destination, error) {
	if m.destinationsErr != nil {
		return nil, m.destinationsErr
	}
	return m.destinations, nil
}

func (m *mockProvider) FetchAllUserProfiles(ctx context.Context) ([]models.UserProfile, error) {
	if m.profilesErr != nil {
		return nil, m.profilesErr
	}
	return m.profiles, nil
}

func (m *mockProvider) FetchUserProfile(ctx context.Context, uid string) (models.UserProfile, error) {
	atomic.AddInt32(&m.profileCalls, 1)
	if m.profileErr != nil {
		return models.UserProfile{}, m.profileErr
	}
	if p, ok := m.profilesByUID[uid]; ok {
		return p, nil
	}
	return models.UserProfile{UID: uid}, nil
}

func testEngine(t *testing.T, cfg *Config, provider CatalogProvider) *Engine {
	t.Helper()
	engine, err := NewEngine(cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	engine.SetProvider(provider)
	return engine
}

func TestEngineRecommend(t *testing.T) {
	provider := &mockProvider{
		destinations: []models.Destination{
			{ID: "mine", Category: models.CategoryBeach, CreatorID: "u1", AverageRating: 5},
			{ID: "mine-legacy", Category: models.CategoryBeach, AddedByID: "u1", AverageRating: 5},
			{ID: "x", Category: models.CategoryBeach, Country: "India", AverageRating: 4.5},
			{ID: "y", Category: models.CategoryBeach, Country: "India", AverageRating: 3.0},
		},
		profilesByUID: map[string]models.UserProfile{
			"u1": {UID: "u1", Preferences: []string{models.CategoryBeach}},
		},
	}
	engine := testEngine(t, nil, provider)

	resp, err := engine.Recommend(context.Background(), Request{UID: "u1", Count: 10})
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}

	t.Run("self-authored destinations excluded via either owner field", func(t *testing.T) {
		for i := range resp.Items {
			if resp.Items[i].ID == "mine" || resp.Items[i].ID == "mine-legacy" {
				t.Errorf("self-authored %q appeared in output", resp.Items[i].ID)
			}
		}
	})

	t.Run("candidates counted after exclusion", func(t *testing.T) {
		if resp.TotalCandidates != 2 {
			t.Errorf("TotalCandidates = %d, want 2", resp.TotalCandidates)
		}
	})

	t.Run("order follows rating within the band", func(t *testing.T) {
		if len(resp.Items) != 2 || resp.Items[0].ID != "x" || resp.Items[1].ID != "y" {
			t.Fatalf("items = %v, want [x y]", itemIDs(resp.Items))
		}
	})

	t.Run("metadata populated", func(t *testing.T) {
		if resp.Metadata.RequestID == "" || resp.Metadata.UID != "u1" {
			t.Error("metadata missing request id or uid")
		}
		if resp.Metadata.TrendingSource != TrendingByBookmarks {
			t.Errorf("trending source = %s, want bookmarks", resp.Metadata.TrendingSource)
		}
	})
}

func TestEngineRecommendDeterminism(t *testing.T) {
	provider := &mockProvider{
		destinations: []models.Destination{
			{ID: "a", Category: models.CategoryCity, AverageRating: 2},
			{ID: "b", Category: models.CategoryNature, AverageRating: 2},
			{ID: "c", Category: models.CategoryBeach, AverageRating: 1},
		},
	}
	cfg := DefaultConfig()
	cfg.CacheEnabled = false
	engine := testEngine(t, cfg, provider)

	first, err := engine.Recommend(context.Background(), Request{UID: "u9", Count: 3, RequestID: "r"})
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	second, err := engine.Recommend(context.Background(), Request{UID: "u9", Count: 3, RequestID: "r"})
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}

	if !reflect.DeepEqual(first.Items, second.Items) {
		t.Error("identical inputs produced different outputs")
	}
}

func TestEngineTrendingFallback(t *testing.T) {
	provider := &mockProvider{
		destinations: []models.Destination{
			{ID: "liked", Category: models.CategoryCity, Likes: 50},
			{ID: "quiet", Category: models.CategoryCity, Likes: 0},
		},
		profilesErr: errors.New("profiles unavailable"),
	}
	engine := testEngine(t, nil, provider)

	resp, err := engine.Recommend(context.Background(), Request{UID: "u1"})
	if err != nil {
		t.Fatalf("fallback must not fail the request: %v", err)
	}
	if resp.Metadata.TrendingSource != TrendingByLikeCount {
		t.Errorf("trending source = %s, want likes", resp.Metadata.TrendingSource)
	}

	var likedFlag bool
	for i := range resp.Items {
		if resp.Items[i].ID == "liked" && resp.Items[i].Trending {
			likedFlag = true
		}
	}
	if !likedFlag {
		t.Error("most-liked destination did not carry the trending flag")
	}
	if got := engine.GetMetrics().TrendingFallbacks; got != 1 {
		t.Errorf("TrendingFallbacks = %d, want 1", got)
	}
}

func TestEngineErrors(t *testing.T) {
	t.Run("missing uid rejected", func(t *testing.T) {
		engine := testEngine(t, nil, &mockProvider{})
		if _, err := engine.Recommend(context.Background(), Request{}); err == nil {
			t.Error("expected error for empty uid")
		}
	})

	t.Run("negative count rejected", func(t *testing.T) {
		engine := testEngine(t, nil, &mockProvider{})
		if _, err := engine.Recommend(context.Background(), Request{UID: "u1", Count: -1}); err == nil {
			t.Error("expected error for negative count")
		}
	})

	t.Run("destination fetch failure surfaces", func(t *testing.T) {
		engine := testEngine(t, nil, &mockProvider{destinationsErr: errors.New("boom")})
		if _, err := engine.Recommend(context.Background(), Request{UID: "u1"}); err == nil {
			t.Error("expected error when destinations cannot be fetched")
		}
	})

	t.Run("profile fetch failure surfaces", func(t *testing.T) {
		engine := testEngine(t, nil, &mockProvider{profileErr: errors.New("boom")})
		if _, err := engine.Recommend(context.Background(), Request{UID: "u1"}); err == nil {
			t.Error("expected error when the profile cannot be fetched")
		}
	})

	t.Run("no provider", func(t *testing.T) {
		engine, err := NewEngine(nil, zerolog.Nop())
		if err != nil {
			t.Fatalf("NewEngine: %v", err)
		}
		if _, err := engine.Recommend(context.Background(), Request{UID: "u1"}); err == nil {
			t.Error("expected error with no provider set")
		}
	})
}

func TestEngineEmptyCatalog(t *testing.T) {
	engine := testEngine(t, nil, &mockProvider{})

	resp, err := engine.Recommend(context.Background(), Request{UID: "u1", Count: 10})
	if err != nil {
		t.Fatalf("empty catalog must not error: %v", err)
	}
	if len(resp.Items) != 0 {
		t.Errorf("len = %d, want 0", len(resp.Items))
	}
}

func TestEngineCache(t *testing.T) {
	provider := &mockProvider{
		destinations: []models.Destination{{ID: "a", Category: models.CategoryCity}},
	}
	engine := testEngine(t, nil, provider)

	first, err := engine.Recommend(context.Background(), Request{UID: "u1", Count: 5})
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if first.Metadata.CacheHit {
		t.Error("first request must not be a cache hit")
	}

	second, err := engine.Recommend(context.Background(), Request{UID: "u1", Count: 5})
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if !second.Metadata.CacheHit {
		t.Error("second identical request must be a cache hit")
	}
	if !reflect.DeepEqual(first.Items, second.Items) {
		t.Error("cached items differ from the original response")
	}

	engine.InvalidateCache()
	third, err := engine.Recommend(context.Background(), Request{UID: "u1", Count: 5})
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if third.Metadata.CacheHit {
		t.Error("request after invalidation must recompute")
	}
}

func TestEngineCacheKeepsDeterministicOrderWithShuffle(t *testing.T) {
	destinations := make([]models.Destination, 12)
	for i := range destinations {
		destinations[i] = models.Destination{
			ID:            fmt.Sprintf("d%02d", i),
			Category:      models.CategoryCity,
			AverageRating: float64(len(destinations)-i) / 3.0,
		}
	}
	provider := &mockProvider{
		destinations: destinations,
		profilesByUID: map[string]models.UserProfile{
			"u1": {UID: "u1", Preferences: []string{models.CategoryCity}},
		},
	}
	cfg := DefaultConfig()
	cfg.ShuffleEnabled = true
	engine := testEngine(t, cfg, provider)

	resp, err := engine.Recommend(context.Background(), Request{UID: "u1", Count: 12})
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}

	profile := provider.profilesByUID["u1"]
	want := itemIDs(BuildMix(destinations, &profile, 12))

	cachedItems := func() []Recommendation {
		engine.cacheMu.RLock()
		defer engine.cacheMu.RUnlock()
		entry, ok := engine.cache[cacheKey(Request{UID: "u1", Count: 12})]
		if !ok {
			t.Fatal("no cache entry stored")
		}
		return entry.response.Items
	}

	cached := cachedItems()
	if &cached[0] == &resp.Items[0] {
		t.Error("cached entry shares its items slice with the shuffled response")
	}
	if got := itemIDs(cached); !reflect.DeepEqual(got, want) {
		t.Errorf("cached order = %v, want deterministic %v", got, want)
	}

	// A cache hit shuffles its own copy; the stored order must not move.
	if _, err := engine.Recommend(context.Background(), Request{UID: "u1", Count: 12}); err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if got := itemIDs(cachedItems()); !reflect.DeepEqual(got, want) {
		t.Errorf("cached order after hit = %v, want deterministic %v", got, want)
	}
}

func TestEngineCountClamping(t *testing.T) {
	destinations := make([]models.Destination, 60)
	for i := range destinations {
		destinations[i] = models.Destination{ID: string(rune('A' + i%26)) + string(rune('a' + i/26)), Category: models.CategoryCity}
	}
	provider := &mockProvider{destinations: destinations}
	cfg := DefaultConfig()
	cfg.DefaultK = 4
	cfg.MaxK = 6
	engine := testEngine(t, cfg, provider)

	t.Run("zero count uses default", func(t *testing.T) {
		resp, err := engine.Recommend(context.Background(), Request{UID: "u1"})
		if err != nil {
			t.Fatalf("Recommend: %v", err)
		}
		if len(resp.Items) > 4 {
			t.Errorf("len = %d, want <= default 4", len(resp.Items))
		}
	})

	t.Run("count clamped to max", func(t *testing.T) {
		resp, err := engine.Recommend(context.Background(), Request{UID: "u1", Count: 100})
		if err != nil {
			t.Fatalf("Recommend: %v", err)
		}
		if len(resp.Items) > 6 {
			t.Errorf("len = %d, want <= max 6", len(resp.Items))
		}
	})
}

func itemIDs(items []Recommendation) []string {
	ids := make([]string, len(items))
	for i := range items {
		ids[i] = items[i].ID
	}
	return ids
}
