// Travel Journal - Destination Catalog and Recommendation Service
// Copyright 2026 Fiyas N. (Fiyas-N)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Fiyas-N/travel-journal-sub000

package api

import (
	"net/http"
	"time"

	"github.com/Fiyas-N/travel-journal-sub000/internal/catalog"
	"github.com/Fiyas-N/travel-journal-sub000/internal/config"
	"github.com/Fiyas-N/travel-journal-sub000/internal/recommend"
)

// Handler holds the dependencies every endpoint needs.
type Handler struct {
	store   catalog.Store
	engine  *recommend.Engine
	cfg     *config.Config
	started time.Time
}

// NewHandler creates a Handler.
func NewHandler(cfg *config.Config, store catalog.Store, engine *recommend.Engine) *Handler {
	return &Handler{
		store:   store,
		engine:  engine,
		cfg:     cfg,
		started: time.Now(),
	}
}

// healthResponse is the body of the health endpoints.
type healthResponse struct {
	Status        string `json:"status"`
	UptimeSeconds int64  `json:"uptime_seconds"`
}

// Health reports overall service health, including store reachability.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if _, err := h.store.FetchAllDestinations(r.Context()); err != nil {
		respondJSON(w, http.StatusServiceUnavailable, healthResponse{
			Status:        "degraded",
			UptimeSeconds: int64(time.Since(h.started).Seconds()),
		})
		return
	}
	respondJSON(w, http.StatusOK, healthResponse{
		Status:        "ok",
		UptimeSeconds: int64(time.Since(h.started).Seconds()),
	})
}

// HealthLive is the liveness probe: the process is up and serving.
func (h *Handler) HealthLive(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "alive"})
}

// HealthReady is the readiness probe: the store answers reads.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	if _, err := h.store.FetchAllDestinations(r.Context()); err != nil {
		respondError(w, http.StatusServiceUnavailable, CodeStoreUnavailable,
			"catalog store is not ready", nil)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}
