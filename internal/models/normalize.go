// Travel Journal - Destination Catalog and Recommendation Service
// Copyright 2026 Fiyas N. (Fiyas-N)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Fiyas-N/travel-journal-sub000

package models

// RawDestination is the decoding shape for destination documents as stored.
// It tolerates every legacy variant: absent location fields, absent ratings,
// and the two historical owner-id field names (creatorId and addedById)
// written by different versions of the client.
type RawDestination struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Description   string         `json:"description"`
	Category      string         `json:"category"`
	Country       string         `json:"country"`
	State         string         `json:"state"`
	District      string         `json:"district"`
	Ratings       map[string]int `json:"ratings"`
	AverageRating *float64       `json:"averageRating"`
	Likes         int            `json:"likes"`
	CreatorID     string         `json:"creatorId"`
	AddedByID     string         `json:"addedById"`
}

// Normalize maps a raw document into a canonical Destination. Absent
// location fields become UnknownLocation, ratings out of the 1-5 range are
// dropped, and the average is recomputed from the surviving ratings so a
// stale stored average can never disagree with the ratings map.
func (r *RawDestination) Normalize() Destination {
	d := Destination{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Category:    r.Category,
		Country:     orUnknown(r.Country),
		State:       orUnknown(r.State),
		District:    orUnknown(r.District),
		Likes:       r.Likes,
		CreatorID:   r.CreatorID,
		AddedByID:   r.AddedByID,
	}

	if len(r.Ratings) > 0 {
		d.Ratings = make(map[string]int, len(r.Ratings))
		for uid, stars := range r.Ratings {
			if stars < 1 || stars > 5 {
				continue
			}
			d.Ratings[uid] = stars
		}
		if len(d.Ratings) == 0 {
			d.Ratings = nil
		}
	}
	d.RecomputeAverage()

	return d
}

// RawProfile is the decoding shape for user profile documents.
type RawProfile struct {
	UID                 string   `json:"uid"`
	Preferences         []string `json:"preferences"`
	SavedDestinationIDs []string `json:"savedDestinationIds"`
}

// Normalize maps a raw profile into a canonical UserProfile. Preferences
// outside the category vocabulary are dropped; both lists are deduplicated
// preserving first occurrence.
func (r *RawProfile) Normalize() UserProfile {
	p := UserProfile{UID: r.UID}

	seen := make(map[string]struct{}, len(r.Preferences))
	for _, c := range r.Preferences {
		if !IsValidCategory(c) {
			continue
		}
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		p.Preferences = append(p.Preferences, c)
	}

	seenIDs := make(map[string]struct{}, len(r.SavedDestinationIDs))
	for _, id := range r.SavedDestinationIDs {
		if id == "" {
			continue
		}
		if _, dup := seenIDs[id]; dup {
			continue
		}
		seenIDs[id] = struct{}{}
		p.SavedDestinationIDs = append(p.SavedDestinationIDs, id)
	}

	return p
}

// DedupeIDs removes duplicates from an id list preserving first occurrence.
// Used when the presentation layer writes bookmark lists back.
func DedupeIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func orUnknown(s string) string {
	if s == "" {
		return UnknownLocation
	}
	return s
}
