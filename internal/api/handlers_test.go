// Travel Journal - Destination Catalog and Recommendation Service
// Copyright 2026 Fiyas N. (Fiyas-N)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Fiyas-N/travel-journal-sub000

package api

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/Fiyas-N/travel-journal-sub000/internal/auth"
	"github.com/Fiyas-N/travel-journal-sub000/internal/catalog"
	"github.com/Fiyas-N/travel-journal-sub000/internal/config"
	"github.com/Fiyas-N/travel-journal-sub000/internal/models"
	"github.com/Fiyas-N/travel-journal-sub000/internal/recommend"
)

type testEnv struct {
	server *httptest.Server
	store  *catalog.BadgerStore
	engine *recommend.Engine
	jwt    *auth.JWTManager
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := catalog.OpenBadger("")
	if err != nil {
		t.Fatalf("OpenBadger: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	store := catalog.NewBadgerStore(db)

	cfg := &config.Config{
		API: config.APIConfig{
			DefaultPageSize: 20,
			MaxPageSize:     100,
		},
		Security: config.SecurityConfig{
			JWTSecret:         "0123456789abcdef0123456789abcdef",
			SessionTimeout:    time.Hour,
			RateLimitDisabled: true,
			CORSOrigins:       []string{"*"},
		},
		Recommend: *recommend.DefaultConfig(),
	}

	engine, err := recommend.NewEngine(&cfg.Recommend, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	engine.SetProvider(store)

	jwtManager, err := auth.NewJWTManager(&cfg.Security)
	if err != nil {
		t.Fatalf("NewJWTManager: %v", err)
	}

	handler := NewHandler(cfg, store, engine)
	router := NewRouter(cfg, handler, jwtManager)
	server := httptest.NewServer(router.Setup())
	t.Cleanup(server.Close)

	return &testEnv{server: server, store: store, engine: engine, jwt: jwtManager}
}

func (e *testEnv) token(t *testing.T, uid string) string {
	t.Helper()
	token, err := e.jwt.GenerateToken(uid)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	return token
}

func (e *testEnv) request(t *testing.T, method, path, token string, body interface{}) *http.Response {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, e.server.URL+path, reader)
	if err != nil {
		t.Fatalf("NewRequest: %v", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := e.server.Client().Do(req)
	if err != nil {
		t.Fatalf("request %s %s: %v", method, path, err)
	}
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func seedDestination(t *testing.T, env *testEnv, dest models.Destination) {
	t.Helper()
	if err := env.store.PutDestination(context.Background(), dest); err != nil {
		t.Fatalf("seed destination %s: %v", dest.ID, err)
	}
}

func TestAuthRequired(t *testing.T) {
	env := newTestEnv(t)

	paths := []struct{ method, path string }{
		{http.MethodGet, "/api/v1/recommendations"},
		{http.MethodGet, "/api/v1/destinations"},
		{http.MethodPut, "/api/v1/bookmarks"},
	}
	for _, p := range paths {
		resp := env.request(t, p.method, p.path, "", nil)
		if resp.StatusCode != http.StatusUnauthorized {
			t.Errorf("%s %s without token: status %d, want 401", p.method, p.path, resp.StatusCode)
		}
	}

	t.Run("garbage token", func(t *testing.T) {
		resp := env.request(t, http.MethodGet, "/api/v1/recommendations", "bogus", nil)
		if resp.StatusCode != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", resp.StatusCode)
		}
	})
}

func TestHealthEndpoints(t *testing.T) {
	env := newTestEnv(t)

	for _, path := range []string{"/api/v1/health", "/api/v1/health/live", "/api/v1/health/ready"} {
		resp := env.request(t, http.MethodGet, path, "", nil)
		if resp.StatusCode != http.StatusOK {
			t.Errorf("GET %s: status %d, want 200", path, resp.StatusCode)
		}
	}
}

func TestRecommendationsEndpoint(t *testing.T) {
	env := newTestEnv(t)
	token := env.token(t, "u1")

	seedDestination(t, env, models.Destination{
		ID: "mine", Name: "My Spot", Category: models.CategoryBeach, CreatorID: "u1",
	})
	seedDestination(t, env, models.Destination{
		ID: "other", Name: "Kovalam", Category: models.CategoryBeach, Country: "India",
	})

	resp := env.request(t, http.MethodGet, "/api/v1/recommendations?count=5", token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var body recommend.Response
	decodeBody(t, resp, &body)

	if body.Metadata.UID != "u1" {
		t.Errorf("metadata uid = %q, want u1", body.Metadata.UID)
	}
	for i := range body.Items {
		if body.Items[i].ID == "mine" {
			t.Error("self-authored destination appeared in recommendations")
		}
	}
	if len(body.Items) != 1 || body.Items[0].ID != "other" {
		t.Errorf("unexpected items: %+v", body.Items)
	}

	t.Run("invalid count rejected", func(t *testing.T) {
		resp := env.request(t, http.MethodGet, "/api/v1/recommendations?count=abc", token, nil)
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", resp.StatusCode)
		}
	})

	t.Run("count above engine max rejected", func(t *testing.T) {
		maxK := env.engine.GetConfig().MaxK
		resp := env.request(t, http.MethodGet,
			fmt.Sprintf("/api/v1/recommendations?count=%d", maxK+1), token, nil)
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", resp.StatusCode)
		}
	})

	t.Run("count at engine max accepted", func(t *testing.T) {
		maxK := env.engine.GetConfig().MaxK
		resp := env.request(t, http.MethodGet,
			fmt.Sprintf("/api/v1/recommendations?count=%d", maxK), token, nil)
		if resp.StatusCode != http.StatusOK {
			t.Errorf("status = %d, want 200", resp.StatusCode)
		}
	})
}

func TestDestinationLifecycle(t *testing.T) {
	env := newTestEnv(t)
	creator := env.token(t, "author")
	rater := env.token(t, "visitor")

	resp := env.request(t, http.MethodPost, "/api/v1/destinations", creator, map[string]interface{}{
		"name":     "Bekal Fort",
		"category": models.CategoryCultural,
		"country":  "India",
		"state":    "Kerala",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status = %d, want 201", resp.StatusCode)
	}
	var created models.Destination
	decodeBody(t, resp, &created)
	if created.ID == "" {
		t.Fatal("created destination has no id")
	}
	if created.CreatorID != "author" {
		t.Errorf("creator = %q, want author", created.CreatorID)
	}
	if created.District != models.UnknownLocation {
		t.Errorf("absent district = %q, want normalized Unknown", created.District)
	}

	t.Run("get by id", func(t *testing.T) {
		resp := env.request(t, http.MethodGet, "/api/v1/destinations/"+created.ID, rater, nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("get status = %d, want 200", resp.StatusCode)
		}
	})

	t.Run("rate", func(t *testing.T) {
		resp := env.request(t, http.MethodPost, "/api/v1/destinations/"+created.ID+"/rating", rater,
			map[string]int{"stars": 5})
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("rate status = %d, want 200", resp.StatusCode)
		}

		got, err := env.store.GetDestination(context.Background(), created.ID)
		if err != nil {
			t.Fatalf("GetDestination: %v", err)
		}
		if got.AverageRating != 5 {
			t.Errorf("average = %v, want 5", got.AverageRating)
		}
	})

	t.Run("invalid rating rejected", func(t *testing.T) {
		resp := env.request(t, http.MethodPost, "/api/v1/destinations/"+created.ID+"/rating", rater,
			map[string]int{"stars": 6})
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", resp.StatusCode)
		}
	})

	t.Run("like", func(t *testing.T) {
		resp := env.request(t, http.MethodPost, "/api/v1/destinations/"+created.ID+"/like", rater, nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("like status = %d, want 200", resp.StatusCode)
		}
	})

	t.Run("unknown id yields 404", func(t *testing.T) {
		resp := env.request(t, http.MethodGet, "/api/v1/destinations/ghost", rater, nil)
		if resp.StatusCode != http.StatusNotFound {
			t.Errorf("status = %d, want 404", resp.StatusCode)
		}
	})

	t.Run("invalid category rejected", func(t *testing.T) {
		resp := env.request(t, http.MethodPost, "/api/v1/destinations", creator, map[string]interface{}{
			"name":     "Nowhere",
			"category": "volcano",
		})
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", resp.StatusCode)
		}
	})
}

func TestListDestinationsTrendingFlags(t *testing.T) {
	env := newTestEnv(t)
	token := env.token(t, "viewer")

	seedDestination(t, env, models.Destination{ID: "a", Name: "A", Category: models.CategoryCity})
	seedDestination(t, env, models.Destination{ID: "b", Name: "B", Category: models.CategoryCity})
	if err := env.store.PutUserProfile(context.Background(), models.UserProfile{
		UID: "fan", SavedDestinationIDs: []string{"b"},
	}); err != nil {
		t.Fatalf("PutUserProfile: %v", err)
	}

	resp := env.request(t, http.MethodGet, "/api/v1/destinations", token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var body listDestinationsResponse
	decodeBody(t, resp, &body)
	if body.Total != 2 {
		t.Fatalf("total = %d, want 2", body.Total)
	}

	flags := map[string]bool{}
	for _, item := range body.Items {
		flags[item.ID] = item.Trending
	}
	if !flags["b"] {
		t.Error("bookmarked destination b not flagged trending")
	}
}

func TestListDestinationsPagination(t *testing.T) {
	env := newTestEnv(t)
	token := env.token(t, "viewer")

	for _, id := range []string{"a", "b", "c"} {
		seedDestination(t, env, models.Destination{ID: id, Name: id, Category: models.CategoryCity})
	}

	t.Run("limit bounds the page, total counts the catalog", func(t *testing.T) {
		resp := env.request(t, http.MethodGet, "/api/v1/destinations?limit=2", token, nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d, want 200", resp.StatusCode)
		}
		var body listDestinationsResponse
		decodeBody(t, resp, &body)
		if len(body.Items) != 2 || body.Total != 3 {
			t.Errorf("items = %d, total = %d, want 2 and 3", len(body.Items), body.Total)
		}
		if body.Limit != 2 || body.Offset != 0 {
			t.Errorf("echoed limit/offset = %d/%d, want 2/0", body.Limit, body.Offset)
		}
	})

	t.Run("offset selects the next page", func(t *testing.T) {
		resp := env.request(t, http.MethodGet, "/api/v1/destinations?limit=2&offset=2", token, nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d, want 200", resp.StatusCode)
		}
		var body listDestinationsResponse
		decodeBody(t, resp, &body)
		if len(body.Items) != 1 || body.Items[0].ID != "c" {
			t.Errorf("second page = %+v, want just c", body.Items)
		}
	})

	t.Run("offset past the end is an empty page", func(t *testing.T) {
		resp := env.request(t, http.MethodGet, "/api/v1/destinations?offset=50", token, nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d, want 200", resp.StatusCode)
		}
		var body listDestinationsResponse
		decodeBody(t, resp, &body)
		if len(body.Items) != 0 || body.Total != 3 {
			t.Errorf("items = %d, total = %d, want 0 and 3", len(body.Items), body.Total)
		}
	})

	t.Run("limit clamped to the configured maximum", func(t *testing.T) {
		resp := env.request(t, http.MethodGet, "/api/v1/destinations?limit=9999", token, nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d, want 200", resp.StatusCode)
		}
		var body listDestinationsResponse
		decodeBody(t, resp, &body)
		if body.Limit != 100 {
			t.Errorf("limit = %d, want clamped 100", body.Limit)
		}
	})

	t.Run("invalid limit rejected", func(t *testing.T) {
		for _, raw := range []string{"abc", "0", "-1"} {
			resp := env.request(t, http.MethodGet, "/api/v1/destinations?limit="+raw, token, nil)
			if resp.StatusCode != http.StatusBadRequest {
				t.Errorf("limit=%s: status = %d, want 400", raw, resp.StatusCode)
			}
		}
	})

	t.Run("invalid offset rejected", func(t *testing.T) {
		resp := env.request(t, http.MethodGet, "/api/v1/destinations?offset=-1", token, nil)
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", resp.StatusCode)
		}
	})
}

func TestSetBookmarks(t *testing.T) {
	env := newTestEnv(t)
	token := env.token(t, "u1")

	resp := env.request(t, http.MethodPut, "/api/v1/bookmarks", token, map[string][]string{
		"savedDestinationIds": {"a", "b", "a", ""},
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var body setBookmarksResponse
	decodeBody(t, resp, &body)
	if len(body.SavedDestinationIDs) != 2 {
		t.Errorf("deduped list = %v, want [a b]", body.SavedDestinationIDs)
	}

	profile, err := env.store.FetchUserProfile(context.Background(), "u1")
	if err != nil {
		t.Fatalf("FetchUserProfile: %v", err)
	}
	if len(profile.SavedDestinationIDs) != 2 {
		t.Errorf("stored bookmarks = %v, want 2 entries", profile.SavedDestinationIDs)
	}
}

func TestBookmarkedExcludedFromRecommendations(t *testing.T) {
	env := newTestEnv(t)
	token := env.token(t, "u1")

	seedDestination(t, env, models.Destination{ID: "saved", Name: "Saved", Category: models.CategoryNature})
	seedDestination(t, env, models.Destination{ID: "fresh", Name: "Fresh", Category: models.CategoryNature})

	resp := env.request(t, http.MethodPut, "/api/v1/bookmarks", token, map[string][]string{
		"savedDestinationIds": {"saved"},
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("bookmark status = %d, want 200", resp.StatusCode)
	}

	resp = env.request(t, http.MethodGet, "/api/v1/recommendations", token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("recommend status = %d, want 200", resp.StatusCode)
	}
	var body recommend.Response
	decodeBody(t, resp, &body)
	for i := range body.Items {
		if body.Items[i].ID == "saved" {
			t.Error("bookmarked destination appeared in recommendations")
		}
	}
}
