// Travel Journal - Destination Catalog and Recommendation Service
// Copyright 2026 Fiyas N. (Fiyas-N)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Fiyas-N/travel-journal-sub000

// Package api provides the HTTP surface: recommendations, the destination
// catalog, bookmark write-back, and health endpoints, routed with Chi.
//
// Request flow:
//
//	request-id -> real-ip -> recover -> CORS -> rate limit -> metrics ->
//	JWT auth -> handler
//
// All data routes require a bearer token; the uid inside the token is the
// identity every operation is keyed on. Responses use a single error
// envelope (see errors.go) and the goccy/go-json codec throughout.
package api
