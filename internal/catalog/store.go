// Travel Journal - Destination Catalog and Recommendation Service
// Copyright 2026 Fiyas N. (Fiyas-N)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Fiyas-N/travel-journal-sub000

// Package catalog implements the destination/user document store backing
// the recommendation engine and the HTTP API.
//
// Records live in BadgerDB as JSON documents under typed key prefixes.
// Documents are decoded through the models.Raw* shapes so every legacy
// field variant is normalized before anything downstream sees it. A
// circuit-breaker wrapper (BreakerStore) protects read paths so a sick
// store degrades to the engine's fallback behavior instead of cascading.
package catalog

import (
	"context"
	"errors"

	"github.com/Fiyas-N/travel-journal-sub000/internal/models"
)

// ErrNotFound is returned when a requested document does not exist.
var ErrNotFound = errors.New("catalog: not found")

// Store is the catalog contract consumed by the engine and the API.
// Fetch failures are surfaced as errors, never swallowed; the caller
// decides between retry, fallback, or a user-facing "try again" state.
type Store interface {
	// FetchAllDestinations returns the full normalized catalog.
	FetchAllDestinations(ctx context.Context) ([]models.Destination, error)

	// FetchAllUserProfiles returns all normalized user profiles.
	FetchAllUserProfiles(ctx context.Context) ([]models.UserProfile, error)

	// FetchUserProfile returns one user's profile. A user with no stored
	// document gets an empty profile, not an error.
	FetchUserProfile(ctx context.Context, uid string) (models.UserProfile, error)

	// GetDestination returns one destination or ErrNotFound.
	GetDestination(ctx context.Context, id string) (models.Destination, error)

	// PutDestination creates or replaces a destination document.
	PutDestination(ctx context.Context, dest models.Destination) error

	// RateDestination records uid's 1-5 star rating and recomputes the
	// average.
	RateDestination(ctx context.Context, id, uid string, stars int) error

	// LikeDestination increments the raw like counter.
	LikeDestination(ctx context.Context, id string) error

	// SetSavedDestinations replaces uid's bookmark list. The list is
	// deduplicated before storage.
	SetSavedDestinations(ctx context.Context, uid string, ids []string) error

	// PutUserProfile creates or replaces a user profile document.
	PutUserProfile(ctx context.Context, profile models.UserProfile) error
}
