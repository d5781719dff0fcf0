// Travel Journal - Destination Catalog and Recommendation Service
// Copyright 2026 Fiyas N. (Fiyas-N)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Fiyas-N/travel-journal-sub000

package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Fiyas-N/travel-journal-sub000/internal/catalog"
	"github.com/Fiyas-N/travel-journal-sub000/internal/config"
	"github.com/Fiyas-N/travel-journal-sub000/internal/logging"
	"github.com/Fiyas-N/travel-journal-sub000/internal/models"
	"github.com/Fiyas-N/travel-journal-sub000/internal/validation"
)

// destinationView is a catalog record as listed, with the transient
// trending flag attached to the copy.
type destinationView struct {
	models.Destination
	Trending bool `json:"trending,omitempty"`
}

// listDestinationsResponse is the body of GET /api/v1/destinations.
type listDestinationsResponse struct {
	Items          []destinationView `json:"items"`
	Total          int               `json:"total"`
	Limit          int               `json:"limit"`
	Offset         int               `json:"offset"`
	TrendingSource string            `json:"trending_source"`
}

// ListDestinations serves a page of the catalog with trending flags
// attached. Total always counts the whole catalog; trending is computed
// over the whole catalog too, so the flags do not shift between pages.
func (h *Handler) ListDestinations(w http.ResponseWriter, r *http.Request) {
	limit, offset, err := pageParams(r, &h.cfg.API)
	if err != nil {
		respondError(w, http.StatusBadRequest, CodeValidationError, err.Error(), nil)
		return
	}

	all, err := h.store.FetchAllDestinations(r.Context())
	if err != nil {
		logging.Err(err).Msg("catalog listing failed")
		respondError(w, http.StatusServiceUnavailable, CodeStoreUnavailable,
			"catalog is temporarily unavailable, try again", nil)
		return
	}

	trending, source := h.engine.TrendingIDs(r.Context(), all)

	page := pageSlice(all, limit, offset)
	items := make([]destinationView, len(page))
	for i := range page {
		_, isTrending := trending[page[i].ID]
		items[i] = destinationView{Destination: page[i], Trending: isTrending}
	}

	respondJSON(w, http.StatusOK, listDestinationsResponse{
		Items:          items,
		Total:          len(all),
		Limit:          limit,
		Offset:         offset,
		TrendingSource: string(source),
	})
}

// pageParams resolves limit/offset query parameters against the API page
// size settings: limit defaults to the configured page size and is capped
// at the maximum.
func pageParams(r *http.Request, cfg *config.APIConfig) (limit, offset int, err error) {
	limit = cfg.DefaultPageSize
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 1 {
			return 0, 0, fmt.Errorf("limit must be a positive integer")
		}
	}
	if limit > cfg.MaxPageSize {
		limit = cfg.MaxPageSize
	}

	if raw := r.URL.Query().Get("offset"); raw != "" {
		offset, err = strconv.Atoi(raw)
		if err != nil || offset < 0 {
			return 0, 0, fmt.Errorf("offset must be a non-negative integer")
		}
	}
	return limit, offset, nil
}

// pageSlice returns the [offset, offset+limit) window of the catalog.
func pageSlice(all []models.Destination, limit, offset int) []models.Destination {
	if offset >= len(all) {
		return nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end]
}

// GetDestination serves GET /api/v1/destinations/{id}.
func (h *Handler) GetDestination(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	dest, err := h.store.GetDestination(r.Context(), id)
	if errors.Is(err, catalog.ErrNotFound) {
		respondError(w, http.StatusNotFound, CodeNotFound, "destination not found", nil)
		return
	}
	if err != nil {
		logging.Err(err).Str("id", id).Msg("destination fetch failed")
		respondError(w, http.StatusServiceUnavailable, CodeStoreUnavailable,
			"catalog is temporarily unavailable, try again", nil)
		return
	}

	respondJSON(w, http.StatusOK, dest)
}

// createDestinationRequest is the body of POST /api/v1/destinations.
type createDestinationRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=200"`
	Description string `json:"description" validate:"max=5000"`
	Category    string `json:"category" validate:"required,destcategory"`
	Country     string `json:"country" validate:"max=100"`
	State       string `json:"state" validate:"max=100"`
	District    string `json:"district" validate:"max=100"`
}

// CreateDestination adds a destination authored by the requesting user.
func (h *Handler) CreateDestination(w http.ResponseWriter, r *http.Request) {
	uid := UIDFromContext(r.Context())

	var req createDestinationRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, CodeValidationError, err.Error(), nil)
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		apiErr := verr.ToAPIError()
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, apiErr.Details)
		return
	}

	raw := models.RawDestination{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Country:     req.Country,
		State:       req.State,
		District:    req.District,
		CreatorID:   uid,
	}
	dest := raw.Normalize()

	if err := h.store.PutDestination(r.Context(), dest); err != nil {
		logging.Err(err).Str("uid", uid).Msg("destination create failed")
		respondError(w, http.StatusServiceUnavailable, CodeStoreUnavailable,
			"catalog is temporarily unavailable, try again", nil)
		return
	}

	// The catalog changed; cached recommendations are stale.
	h.engine.InvalidateCache()

	respondJSON(w, http.StatusCreated, dest)
}

// rateDestinationRequest is the body of POST /api/v1/destinations/{id}/rating.
type rateDestinationRequest struct {
	Stars int `json:"stars" validate:"required,gte=1,lte=5"`
}

// RateDestination records the requesting user's 1-5 star rating.
func (h *Handler) RateDestination(w http.ResponseWriter, r *http.Request) {
	uid := UIDFromContext(r.Context())
	id := chi.URLParam(r, "id")

	var req rateDestinationRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, CodeValidationError, err.Error(), nil)
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		apiErr := verr.ToAPIError()
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, apiErr.Details)
		return
	}

	err := h.store.RateDestination(r.Context(), id, uid, req.Stars)
	if errors.Is(err, catalog.ErrNotFound) {
		respondError(w, http.StatusNotFound, CodeNotFound, "destination not found", nil)
		return
	}
	if err != nil {
		logging.Err(err).Str("id", id).Msg("rating write failed")
		respondError(w, http.StatusServiceUnavailable, CodeStoreUnavailable,
			"catalog is temporarily unavailable, try again", nil)
		return
	}

	h.engine.InvalidateCache()
	respondJSON(w, http.StatusOK, map[string]string{"status": "rated"})
}

// LikeDestination increments the like counter on a destination.
func (h *Handler) LikeDestination(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	err := h.store.LikeDestination(r.Context(), id)
	if errors.Is(err, catalog.ErrNotFound) {
		respondError(w, http.StatusNotFound, CodeNotFound, "destination not found", nil)
		return
	}
	if err != nil {
		logging.Err(err).Str("id", id).Msg("like write failed")
		respondError(w, http.StatusServiceUnavailable, CodeStoreUnavailable,
			"catalog is temporarily unavailable, try again", nil)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "liked"})
}
