// Travel Journal - Destination Catalog and Recommendation Service
// Copyright 2026 Fiyas N. (Fiyas-N)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Fiyas-N/travel-journal-sub000

package recommend

import "github.com/Fiyas-N/travel-journal-sub000/internal/models"

// Score bands. PreferenceScore is a sentinel: a preference match is always
// exactly 10 and the similarity accumulator is capped at 9, so the bands
// {10}, {1..9} and {0} can never overlap.
const (
	// PreferenceScore is assigned when the destination's category is in the
	// user's preference set.
	PreferenceScore = 10

	// SimilarityCap is the maximum value of the similarity accumulator.
	SimilarityCap = 9
)

// Similarity points contributed by each bookmarked destination.
const (
	countryPoints  = 1
	statePoints    = 1
	districtPoints = 1
	categoryPoints = 3
)

// ScoreForUser computes the deterministic score of a destination for a user.
// savedDetails are the full records of the user's bookmarked destinations;
// a destination is never compared against itself.
func ScoreForUser(dest *models.Destination, profile *models.UserProfile, savedDetails []models.Destination) int {
	if profile.HasPreference(dest.Category) {
		return PreferenceScore
	}

	score := 0
	for i := range savedDetails {
		saved := &savedDetails[i]
		if saved.ID == dest.ID {
			continue
		}
		if saved.Country == dest.Country {
			score += countryPoints
		}
		if saved.State == dest.State {
			score += statePoints
		}
		if saved.District == dest.District {
			score += districtPoints
		}
		if saved.Category == dest.Category {
			score += categoryPoints
		}
	}

	if score > SimilarityCap {
		score = SimilarityCap
	}
	return score
}

// Categorize maps a score to its recommendation type. The bands are
// disjoint, so the branch is unambiguous.
func Categorize(score int) Type {
	switch {
	case score == PreferenceScore:
		return TypePreference
	case score >= 1:
		return TypeSimilarity
	default:
		return TypeDiscovery
	}
}
