// Travel Journal - Destination Catalog and Recommendation Service
// Copyright 2026 Fiyas N. (Fiyas-N)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Fiyas-N/travel-journal-sub000

package models

import "sort"

// Destination categories form a fixed vocabulary. Anything outside it is
// rejected at the API boundary, never stored.
const (
	CategoryBeach     = "beach"
	CategoryMountain  = "mountain"
	CategoryCultural  = "cultural"
	CategoryAdventure = "adventure"
	CategoryCity      = "city"
	CategoryNature    = "nature"
)

// UnknownLocation is the normalized value for absent location fields.
const UnknownLocation = "Unknown"

// Categories lists the full category vocabulary in stable order.
func Categories() []string {
	return []string{
		CategoryBeach,
		CategoryMountain,
		CategoryCultural,
		CategoryAdventure,
		CategoryCity,
		CategoryNature,
	}
}

// IsValidCategory reports whether c belongs to the category vocabulary.
func IsValidCategory(c string) bool {
	switch c {
	case CategoryBeach, CategoryMountain, CategoryCultural,
		CategoryAdventure, CategoryCity, CategoryNature:
		return true
	default:
		return false
	}
}

// Destination is a canonical catalog record.
type Destination struct {
	// ID is the opaque unique identifier of the destination.
	ID string `json:"id"`

	// Name is the display name.
	Name string `json:"name"`

	// Description is the display description.
	Description string `json:"description,omitempty"`

	// Category is one of the fixed vocabulary values.
	Category string `json:"category"`

	// Country, State and District form the location hierarchy.
	// Normalization guarantees they are never empty (absent values become
	// UnknownLocation).
	Country  string `json:"country"`
	State    string `json:"state"`
	District string `json:"district"`

	// Ratings maps user id to a 1-5 star rating. Its key count is the
	// review count.
	Ratings map[string]int `json:"ratings,omitempty"`

	// AverageRating is derived from Ratings, in [0,5]. Zero when unrated.
	AverageRating float64 `json:"average_rating"`

	// Likes is a raw like counter. It is the secondary popularity signal
	// used when bookmark counts cannot be computed.
	Likes int `json:"likes"`

	// CreatorID and AddedByID are the two historical owner-id fields.
	// A destination is self-authored for a user when EITHER matches.
	CreatorID string `json:"creator_id,omitempty"`
	AddedByID string `json:"added_by_id,omitempty"`
}

// ReviewCount returns the number of ratings recorded for the destination.
func (d *Destination) ReviewCount() int {
	return len(d.Ratings)
}

// OwnedBy reports whether uid authored this destination, checking both
// legacy owner fields. An empty uid never owns anything.
func (d *Destination) OwnedBy(uid string) bool {
	if uid == "" {
		return false
	}
	return d.CreatorID == uid || d.AddedByID == uid
}

// RecomputeAverage derives AverageRating from the Ratings map.
func (d *Destination) RecomputeAverage() {
	if len(d.Ratings) == 0 {
		d.AverageRating = 0
		return
	}
	sum := 0
	for _, stars := range d.Ratings {
		sum += stars
	}
	d.AverageRating = float64(sum) / float64(len(d.Ratings))
}

// Clone returns a deep copy. The recommendation engine works on copies so
// caller-supplied snapshots are never mutated.
func (d *Destination) Clone() Destination {
	out := *d
	if d.Ratings != nil {
		out.Ratings = make(map[string]int, len(d.Ratings))
		for k, v := range d.Ratings {
			out.Ratings[k] = v
		}
	}
	return out
}

// RaterIDs returns the ids of users who rated the destination, sorted for
// deterministic iteration.
func (d *Destination) RaterIDs() []string {
	ids := make([]string, 0, len(d.Ratings))
	for id := range d.Ratings {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
