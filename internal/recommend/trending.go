// Travel Journal - Destination Catalog and Recommendation Service
// Copyright 2026 Fiyas N. (Fiyas-N)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Fiyas-N/travel-journal-sub000

package recommend

import (
	"sort"

	"github.com/Fiyas-N/travel-journal-sub000/internal/models"
)

// ComputeTrending returns the ids of the topN destinations by bookmark
// count across all user profiles. Ties are broken by original catalog
// position (earliest wins), so a tie straddling the topN boundary resolves
// stably against input order. Fewer than topN destinations means all of
// them are returned.
//
// The function is side-effect free: it never mutates the catalog. Callers
// attach a trending flag to their own copies for display.
func ComputeTrending(catalog []models.Destination, profiles []models.UserProfile, topN int) map[string]struct{} {
	if topN <= 0 || len(catalog) == 0 {
		return map[string]struct{}{}
	}

	counts := BookmarkCounts(catalog, profiles)
	return topIDs(catalog, func(d *models.Destination) int { return counts[d.ID] }, topN)
}

// TrendingByLikes ranks by the raw like counter instead of bookmark counts.
// It is the degraded-mode signal for when user profiles cannot be fetched;
// the same stable tie-break rule applies.
func TrendingByLikes(catalog []models.Destination, topN int) map[string]struct{} {
	if topN <= 0 || len(catalog) == 0 {
		return map[string]struct{}{}
	}
	return topIDs(catalog, func(d *models.Destination) int { return d.Likes }, topN)
}

// BookmarkCounts computes the transient bookmark count of every catalog
// destination by scanning all user profiles' saved lists. Ids saved by a
// profile but absent from the catalog are ignored.
func BookmarkCounts(catalog []models.Destination, profiles []models.UserProfile) map[string]int {
	known := make(map[string]struct{}, len(catalog))
	for i := range catalog {
		known[catalog[i].ID] = struct{}{}
	}

	counts := make(map[string]int, len(catalog))
	for i := range profiles {
		for _, id := range profiles[i].SavedDestinationIDs {
			if _, ok := known[id]; ok {
				counts[id]++
			}
		}
	}
	return counts
}

// topIDs returns the id set of the topN destinations by the given signal,
// descending, with catalog-order tie-break.
func topIDs(catalog []models.Destination, signal func(*models.Destination) int, topN int) map[string]struct{} {
	order := make([]int, len(catalog))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return signal(&catalog[order[a]]) > signal(&catalog[order[b]])
	})

	if topN > len(order) {
		topN = len(order)
	}

	ids := make(map[string]struct{}, topN)
	for _, idx := range order[:topN] {
		ids[catalog[idx].ID] = struct{}{}
	}
	return ids
}
