// Travel Journal - Destination Catalog and Recommendation Service
// Copyright 2026 Fiyas N. (Fiyas-N)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Fiyas-N/travel-journal-sub000

package models

// UserProfile is a canonical user record as seen by the recommender.
type UserProfile struct {
	// UID is the opaque user identifier.
	UID string `json:"uid"`

	// Preferences is the set of categories the user opted into.
	// Normalization deduplicates it and drops unknown categories.
	Preferences []string `json:"preferences,omitempty"`

	// SavedDestinationIDs is the user's bookmark list. Normalization
	// deduplicates it; insertion order is preserved but irrelevant for
	// scoring.
	SavedDestinationIDs []string `json:"saved_destination_ids,omitempty"`
}

// HasPreference reports whether the user opted into the given category.
func (p *UserProfile) HasPreference(category string) bool {
	for _, c := range p.Preferences {
		if c == category {
			return true
		}
	}
	return false
}

// HasSaved reports whether the destination id is bookmarked.
func (p *UserProfile) HasSaved(id string) bool {
	for _, s := range p.SavedDestinationIDs {
		if s == id {
			return true
		}
	}
	return false
}

// Clone returns a deep copy.
func (p *UserProfile) Clone() UserProfile {
	out := *p
	if p.Preferences != nil {
		out.Preferences = append([]string(nil), p.Preferences...)
	}
	if p.SavedDestinationIDs != nil {
		out.SavedDestinationIDs = append([]string(nil), p.SavedDestinationIDs...)
	}
	return out
}
