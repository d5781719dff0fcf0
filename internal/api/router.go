// Travel Journal - Destination Catalog and Recommendation Service
// Copyright 2026 Fiyas N. (Fiyas-N)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Fiyas-N/travel-journal-sub000

package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Fiyas-N/travel-journal-sub000/internal/auth"
	"github.com/Fiyas-N/travel-journal-sub000/internal/config"
)

// Router assembles the HTTP surface.
type Router struct {
	handler *Handler
	mw      *ChiMiddleware
	jwt     *auth.JWTManager
}

// NewRouter builds a Router from the application wiring.
func NewRouter(cfg *config.Config, handler *Handler, jwtManager *auth.JWTManager) *Router {
	mw := NewChiMiddleware(
		cfg.Security.CORSOrigins,
		cfg.Security.RateLimitReqs,
		cfg.Security.RateLimitWindow,
		cfg.Security.RateLimitDisabled,
	)
	return &Router{handler: handler, mw: mw, jwt: jwtManager}
}

// Setup configures all HTTP routes.
func (router *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware, applied to every route in order.
	r.Use(RequestID())
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.mw.CORS())

	// Health endpoints: permissive rate limiting, no auth, so monitoring
	// probes always get through.
	r.Route("/api/v1/health", func(r chi.Router) {
		r.Use(router.mw.RateLimitHealth())
		r.Get("/", router.handler.Health)
		r.Get("/live", router.handler.HealthLive)
		r.Get("/ready", router.handler.HealthReady)
	})

	// Recommendations: read-only, authenticated.
	r.Route("/api/v1/recommendations", func(r chi.Router) {
		r.Use(router.mw.RateLimit())
		r.Use(PrometheusMetrics)
		r.Use(Authenticate(router.jwt))

		r.Get("/", router.handler.Recommendations)
	})

	// Destination catalog: reads on the default budget, writes stricter.
	r.Route("/api/v1/destinations", func(r chi.Router) {
		r.Use(router.mw.RateLimit())
		r.Use(PrometheusMetrics)
		r.Use(Authenticate(router.jwt))

		r.Get("/", router.handler.ListDestinations)
		r.Get("/{id}", router.handler.GetDestination)

		r.Group(func(r chi.Router) {
			r.Use(router.mw.RateLimitWrite())
			r.Post("/", router.handler.CreateDestination)
			r.Post("/{id}/rating", router.handler.RateDestination)
			r.Post("/{id}/like", router.handler.LikeDestination)
		})
	})

	// Bookmark write-back.
	r.Route("/api/v1/bookmarks", func(r chi.Router) {
		r.Use(router.mw.RateLimitWrite())
		r.Use(PrometheusMetrics)
		r.Use(Authenticate(router.jwt))

		r.Put("/", router.handler.SetBookmarks)
	})

	// Observability.
	r.Handle("/metrics", promhttp.Handler())

	return r
}

// chiRouteContext returns the matched route pattern, or "".
func chiRouteContext(ctx context.Context) string {
	if rctx := chi.RouteContext(ctx); rctx != nil {
		return rctx.RoutePattern()
	}
	return ""
}
