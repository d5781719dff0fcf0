// Travel Journal - Destination Catalog and Recommendation Service
// Copyright 2026 Fiyas N. (Fiyas-N)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Fiyas-N/travel-journal-sub000

package api

import (
	"fmt"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/Fiyas-N/travel-journal-sub000/internal/logging"
)

// Error codes used in the API error envelope.
const (
	CodeValidationError  = "VALIDATION_ERROR"
	CodeUnauthorized     = "UNAUTHORIZED"
	CodeNotFound         = "NOT_FOUND"
	CodeStoreUnavailable = "STORE_UNAVAILABLE"
	CodeInternalError    = "INTERNAL_ERROR"
)

// APIError is the error envelope every failed request returns.
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// errorResponse wraps APIError for the response body.
type errorResponse struct {
	Error APIError `json:"error"`
}

// respondJSON writes v as a JSON response with the given status.
func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Err(err).Msg("failed to encode response")
	}
}

// respondError writes the error envelope with the given status.
func respondError(w http.ResponseWriter, status int, code, message string, details map[string]interface{}) {
	respondJSON(w, status, errorResponse{Error: APIError{
		Code:    code,
		Message: message,
		Details: details,
	}})
}

// decodeJSON decodes a request body into v, with a size cap so a hostile
// body cannot exhaust memory.
func decodeJSON(r *http.Request, v interface{}) error {
	const maxBodySize = 1 << 20 // 1MB
	r.Body = http.MaxBytesReader(nil, r.Body, maxBodySize)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	return nil
}
