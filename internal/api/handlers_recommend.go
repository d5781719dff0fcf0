// Travel Journal - Destination Catalog and Recommendation Service
// Copyright 2026 Fiyas N. (Fiyas-N)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Fiyas-N/travel-journal-sub000

package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/Fiyas-N/travel-journal-sub000/internal/logging"
	"github.com/Fiyas-N/travel-journal-sub000/internal/recommend"
)

// Recommendations serves GET /api/v1/recommendations?count=N for the
// authenticated user. Count defaults to the engine's configured size; the
// upper bound is the engine's own MaxK so the two can never disagree.
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	uid := UIDFromContext(r.Context())

	count := 0
	if raw := r.URL.Query().Get("count"); raw != "" {
		var err error
		count, err = strconv.Atoi(raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, CodeValidationError,
				"count must be an integer", nil)
			return
		}
	}
	if maxK := h.engine.GetConfig().MaxK; count < 0 || count > maxK {
		respondError(w, http.StatusBadRequest, CodeValidationError,
			fmt.Sprintf("count must be between 0 and %d", maxK), nil)
		return
	}

	resp, err := h.engine.Recommend(r.Context(), recommend.Request{
		UID:       uid,
		Count:     count,
		RequestID: w.Header().Get("X-Request-ID"),
	})
	if err != nil {
		logging.Err(err).Str("uid", uid).Msg("recommendation request failed")
		respondError(w, http.StatusServiceUnavailable, CodeStoreUnavailable,
			"recommendations are temporarily unavailable, try again", nil)
		return
	}

	respondJSON(w, http.StatusOK, resp)
}
