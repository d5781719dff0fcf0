// Travel Journal - Destination Catalog and Recommendation Service
// Copyright 2026 Fiyas N. (Fiyas-N)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Fiyas-N/travel-journal-sub000

// Package models defines the canonical destination and user profile types
// shared by the catalog store, the recommendation engine, and the HTTP API.
//
// Catalog documents originate from a schemaless document store and arrive in
// legacy shapes: optional location fields, two historical owner-id field
// names, ratings that may be absent entirely. All of that variance is
// absorbed here, at the boundary, by the Raw* decoding types and their
// Normalize methods. Downstream code (scoring in particular) only ever sees
// canonical records and never branches on missing fields.
package models
