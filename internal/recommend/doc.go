// Travel Journal - Destination Catalog and Recommendation Service
// Copyright 2026 Fiyas N. (Fiyas-N)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Fiyas-N/travel-journal-sub000

// Package recommend implements the destination recommendation engine.
//
// # Algorithm
//
// Every candidate destination receives a deterministic integer score for the
// requesting user:
//
//   - exactly 10 when the destination's category is one of the user's stated
//     preferences (a sentinel value; nothing else is added on this branch)
//   - otherwise the sum of similarity points against the user's bookmarked
//     destinations (+1 country, +1 state, +1 district, +3 category per
//     bookmark), capped at 9 so it can never collide with the sentinel
//   - 0 when there is no signal at all
//
// The cap guarantees three disjoint score bands, and categorization branches
// purely on the band: {10} preference, {1..9} similarity, {0} discovery.
//
// BuildMix partitions scored candidates into the three buckets, sorts each
// bucket by average rating (stable, so catalog order breaks ties), and fills
// a 40/40/20 quota with ceiling rounding absorbed by the discovery share.
// Buckets are never backfilled from one another; the legacy padding behavior
// survives only as the explicit optional Backfill post-processing step.
//
// Trending is a separate, user-independent calculation: the top-N
// destinations by bookmark count across all user profiles, falling back to
// raw like counts when profiles cannot be fetched.
//
// # Design Principles
//
//   - Deterministic: identical inputs produce identical output, pre-shuffle
//   - Pure: the scoring and mix functions perform no I/O and never mutate
//     their inputs; all fetching happens in the Engine before they run
//   - Explainable: the integer score and the category badge tell the user
//     exactly why a destination was recommended
//
// # Usage
//
//	cfg := recommend.DefaultConfig()
//	engine, err := recommend.NewEngine(cfg, logger)
//	engine.SetProvider(store)
//
//	resp, err := engine.Recommend(ctx, recommend.Request{UID: uid, Count: 10})
//
// # Thread Safety
//
// The Engine is safe for concurrent use. The pure functions are safe by
// construction.
package recommend
