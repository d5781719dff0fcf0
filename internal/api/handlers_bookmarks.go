// Travel Journal - Destination Catalog and Recommendation Service
// Copyright 2026 Fiyas N. (Fiyas-N)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Fiyas-N/travel-journal-sub000

package api

import (
	"net/http"

	"github.com/Fiyas-N/travel-journal-sub000/internal/logging"
	"github.com/Fiyas-N/travel-journal-sub000/internal/models"
)

// setBookmarksRequest is the body of PUT /api/v1/bookmarks. The list
// replaces the user's bookmarks wholesale; duplicates are dropped.
type setBookmarksRequest struct {
	SavedDestinationIDs []string `json:"savedDestinationIds"`
}

// setBookmarksResponse echoes the stored, deduplicated list.
type setBookmarksResponse struct {
	SavedDestinationIDs []string `json:"savedDestinationIds"`
}

// SetBookmarks replaces the requesting user's bookmark list.
func (h *Handler) SetBookmarks(w http.ResponseWriter, r *http.Request) {
	uid := UIDFromContext(r.Context())

	var req setBookmarksRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, CodeValidationError, err.Error(), nil)
		return
	}

	deduped := models.DedupeIDs(req.SavedDestinationIDs)
	if err := h.store.SetSavedDestinations(r.Context(), uid, deduped); err != nil {
		logging.Err(err).Str("uid", uid).Msg("bookmark write failed")
		respondError(w, http.StatusServiceUnavailable, CodeStoreUnavailable,
			"bookmarks are temporarily unavailable, try again", nil)
		return
	}

	// Bookmarks drive similarity scoring; the user's cached mix is stale.
	h.engine.InvalidateCache()

	respondJSON(w, http.StatusOK, setBookmarksResponse{SavedDestinationIDs: deduped})
}
