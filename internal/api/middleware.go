// Travel Journal - Destination Catalog and Recommendation Service
// Copyright 2026 Fiyas N. (Fiyas-N)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Fiyas-N/travel-journal-sub000

package api

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/google/uuid"

	"github.com/Fiyas-N/travel-journal-sub000/internal/auth"
	"github.com/Fiyas-N/travel-journal-sub000/internal/logging"
	"github.com/Fiyas-N/travel-journal-sub000/internal/metrics"
)

type contextKey string

// uidContextKey carries the authenticated user id through the request.
const uidContextKey contextKey = "uid"

// UIDFromContext returns the authenticated user id, or "" when the request
// did not pass authentication.
func UIDFromContext(ctx context.Context) string {
	uid, _ := ctx.Value(uidContextKey).(string)
	return uid
}

// ChiMiddleware provides Chi-compatible middleware factories built on the
// production-hardened Chi ecosystem implementations.
type ChiMiddleware struct {
	corsHandler       func(http.Handler) http.Handler
	rateLimitReqs     int
	rateLimitWindow   time.Duration
	rateLimitDisabled bool
}

// NewChiMiddleware builds the middleware factory from security settings.
func NewChiMiddleware(corsOrigins []string, rateLimitReqs int, rateLimitWindow time.Duration, rateLimitDisabled bool) *ChiMiddleware {
	corsHandler := cors.Handler(cors.Options{
		AllowedOrigins: corsOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
		MaxAge:         86400,
	})

	return &ChiMiddleware{
		corsHandler:       corsHandler,
		rateLimitReqs:     rateLimitReqs,
		rateLimitWindow:   rateLimitWindow,
		rateLimitDisabled: rateLimitDisabled,
	}
}

// CORS returns the CORS middleware (go-chi/cors). Must be global so
// OPTIONS preflight requests are handled on every route.
func (m *ChiMiddleware) CORS() func(http.Handler) http.Handler {
	return m.corsHandler
}

// RateLimit returns the default per-IP rate limiter (go-chi/httprate).
func (m *ChiMiddleware) RateLimit() func(http.Handler) http.Handler {
	if m.rateLimitDisabled {
		return func(next http.Handler) http.Handler { return next }
	}
	return httprate.Limit(m.rateLimitReqs, m.rateLimitWindow,
		httprate.WithKeyFuncs(httprate.KeyByIP))
}

// RateLimitWrite returns a stricter limiter for write endpoints.
func (m *ChiMiddleware) RateLimitWrite() func(http.Handler) http.Handler {
	if m.rateLimitDisabled {
		return func(next http.Handler) http.Handler { return next }
	}
	return httprate.LimitByIP(30, time.Minute)
}

// RateLimitHealth returns a permissive limiter for health endpoints so
// monitoring probes never starve.
func (m *ChiMiddleware) RateLimitHealth() func(http.Handler) http.Handler {
	if m.rateLimitDisabled {
		return func(next http.Handler) http.Handler { return next }
	}
	return httprate.LimitByIP(1000, time.Minute)
}

// RequestID ensures every request carries an X-Request-ID header, echoed on
// the response and attached to the request logger context.
func RequestID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := r.Header.Get("X-Request-ID")
			if requestID == "" {
				requestID = uuid.NewString()
			}
			w.Header().Set("X-Request-ID", requestID)

			logger := logging.With().Str("request_id", requestID).Logger()
			ctx := logger.WithContext(r.Context())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Authenticate verifies the Authorization bearer token and stores the uid
// in the request context. Requests without a valid token get 401.
func Authenticate(jwtManager *auth.JWTManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				respondError(w, http.StatusUnauthorized, CodeUnauthorized,
					"missing bearer token", nil)
				return
			}

			claims, err := jwtManager.ValidateToken(token)
			if err != nil {
				logging.Debug().Err(err).Msg("token validation failed")
				respondError(w, http.StatusUnauthorized, CodeUnauthorized,
					"invalid or expired token", nil)
				return
			}

			ctx := context.WithValue(r.Context(), uidContextKey, claims.UID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// PrometheusMetrics records request counts and latencies per route.
func PrometheusMetrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := &statusResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(ww, r)

		path := routePattern(r)
		metrics.HTTPRequestsTotal.WithLabelValues(r.Method, path, strconv.Itoa(ww.statusCode)).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(r.Method, path).Observe(time.Since(start).Seconds())
	})
}

// routePattern returns the matched Chi route pattern so metrics labels
// stay low-cardinality (no raw ids in labels).
func routePattern(r *http.Request) string {
	if rctx := chiRouteContext(r.Context()); rctx != "" {
		return rctx
	}
	return r.URL.Path
}

// statusResponseWriter wraps http.ResponseWriter to capture the status code.
type statusResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

// WriteHeader captures the status code and calls the underlying WriteHeader.
func (w *statusResponseWriter) WriteHeader(code int) {
	w.statusCode = code
	w.ResponseWriter.WriteHeader(code)
}
