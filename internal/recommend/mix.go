// Travel Journal - Destination Catalog and Recommendation Service
// Copyright 2026 Fiyas N. (Fiyas-N)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Fiyas-N/travel-journal-sub000

package recommend

import (
	"math"
	"math/rand"
	"sort"

	"github.com/Fiyas-N/travel-journal-sub000/internal/models"
)

// Quota shares for the recommendation mix. The discovery share is whatever
// remains after both ceilings, clamped at zero, so rounding error is always
// absorbed by discovery.
const (
	preferenceShare = 0.4
	similarityShare = 0.4
)

// BuildMix produces the ranked, categorized recommendation list for a user.
//
// The catalog must already exclude destinations owned by the requesting
// user (the Engine does this). Bookmarked destinations are resolved into
// their full records for similarity scoring and are not themselves
// candidates. Inputs are never mutated; every returned Recommendation
// carries its own copy of the destination record.
//
// Buckets are filled independently: a short bucket is never topped up from
// another band. Use Backfill for the legacy padding behavior.
func BuildMix(catalog []models.Destination, profile *models.UserProfile, targetCount int) []Recommendation {
	if targetCount <= 0 || len(catalog) == 0 {
		return []Recommendation{}
	}

	savedDetails := savedDestinationDetails(catalog, profile)

	var preference, similarity, discovery []Recommendation
	for i := range catalog {
		dest := &catalog[i]
		if profile.HasSaved(dest.ID) {
			continue
		}

		score := ScoreForUser(dest, profile, savedDetails)
		rec := Recommendation{
			Destination:     dest.Clone(),
			SimilarityScore: score,
			Type:            Categorize(score),
		}

		switch rec.Type {
		case TypePreference:
			preference = append(preference, rec)
		case TypeSimilarity:
			similarity = append(similarity, rec)
		case TypeDiscovery:
			discovery = append(discovery, rec)
		}
	}

	sortByRating(preference)
	sortByRating(similarity)
	sortByRating(discovery)

	preferenceTarget := int(math.Ceil(float64(targetCount) * preferenceShare))
	similarityTarget := int(math.Ceil(float64(targetCount) * similarityShare))
	discoveryTarget := targetCount - preferenceTarget - similarityTarget
	if discoveryTarget < 0 {
		discoveryTarget = 0
	}

	out := make([]Recommendation, 0, targetCount)
	out = append(out, take(preference, preferenceTarget)...)
	out = append(out, take(similarity, similarityTarget)...)
	out = append(out, take(discovery, discoveryTarget)...)
	return out
}

// Backfill pads a short mix with the highest-rated remaining destinations
// regardless of score band, each tagged with its real category. This is the
// legacy call site's display enhancement, deliberately kept out of BuildMix;
// it preserves the no-duplicates and no-bookmarked-candidates invariants.
func Backfill(mix []Recommendation, catalog []models.Destination, profile *models.UserProfile, targetCount int) []Recommendation {
	if len(mix) >= targetCount {
		return mix
	}

	used := make(map[string]struct{}, len(mix))
	for i := range mix {
		used[mix[i].ID] = struct{}{}
	}

	savedDetails := savedDestinationDetails(catalog, profile)

	var remaining []Recommendation
	for i := range catalog {
		dest := &catalog[i]
		if _, taken := used[dest.ID]; taken {
			continue
		}
		if profile.HasSaved(dest.ID) {
			continue
		}
		score := ScoreForUser(dest, profile, savedDetails)
		remaining = append(remaining, Recommendation{
			Destination:     dest.Clone(),
			SimilarityScore: score,
			Type:            Categorize(score),
		})
	}
	sortByRating(remaining)

	out := append(append([]Recommendation(nil), mix...), take(remaining, targetCount-len(mix))...)
	return out
}

// Shuffle reorders recommendations in place with a fair Fisher-Yates
// shuffle. Shuffling is a display concern only; it must run after any
// caching of the deterministic order.
func Shuffle(recs []Recommendation, rng *rand.Rand) {
	for i := len(recs) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		recs[i], recs[j] = recs[j], recs[i]
	}
}

// savedDestinationDetails resolves the profile's bookmark ids into full
// catalog records, in bookmark-list order. Unresolvable ids are skipped.
func savedDestinationDetails(catalog []models.Destination, profile *models.UserProfile) []models.Destination {
	if len(profile.SavedDestinationIDs) == 0 {
		return nil
	}

	byID := make(map[string]*models.Destination, len(catalog))
	for i := range catalog {
		byID[catalog[i].ID] = &catalog[i]
	}

	details := make([]models.Destination, 0, len(profile.SavedDestinationIDs))
	for _, id := range profile.SavedDestinationIDs {
		if dest, ok := byID[id]; ok {
			details = append(details, *dest)
		}
	}
	return details
}

// sortByRating sorts a bucket by average rating descending. The sort is
// stable so catalog-order ties are preserved, keeping the mix deterministic.
func sortByRating(recs []Recommendation) {
	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].AverageRating > recs[j].AverageRating
	})
}

func take(recs []Recommendation, n int) []Recommendation {
	if n > len(recs) {
		n = len(recs)
	}
	return recs[:n]
}
