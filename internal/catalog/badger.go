// Travel Journal - Destination Catalog and Recommendation Service
// Copyright 2026 Fiyas N. (Fiyas-N)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Fiyas-N/travel-journal-sub000

package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/Fiyas-N/travel-journal-sub000/internal/metrics"
	"github.com/Fiyas-N/travel-journal-sub000/internal/models"
)

// Key prefixes for BadgerDB storage.
const (
	destKeyPrefix = "dest:"
	userKeyPrefix = "user:"
)

// BadgerStore implements Store on BadgerDB. Documents are stored as JSON;
// reads decode through the models.Raw* shapes so legacy documents written
// by old clients normalize transparently.
type BadgerStore struct {
	db *badger.DB
}

// NewBadgerStore creates a store on an open Badger database.
func NewBadgerStore(db *badger.DB) *BadgerStore {
	return &BadgerStore{db: db}
}

// OpenBadger opens (or creates) a Badger database at path. An empty path
// opens an in-memory database, which the tests use.
func OpenBadger(path string) (*badger.DB, error) {
	var opts badger.Options
	if path == "" {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		opts = badger.DefaultOptions(path)
	}
	opts = opts.WithLogger(nil)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger at %q: %w", path, err)
	}
	return db, nil
}

// FetchAllDestinations returns the full normalized catalog in key order,
// which is stable across calls and is the tie-break order for trending.
func (s *BadgerStore) FetchAllDestinations(ctx context.Context) ([]models.Destination, error) {
	defer s.observe("fetch_all_destinations", time.Now())

	var out []models.Destination
	err := s.db.View(func(txn *badger.Txn) error {
		return s.scanPrefix(ctx, txn, destKeyPrefix, func(val []byte) error {
			var raw models.RawDestination
			if err := json.Unmarshal(val, &raw); err != nil {
				return fmt.Errorf("decode destination: %w", err)
			}
			out = append(out, raw.Normalize())
			return nil
		})
	})
	if err != nil {
		metrics.CatalogOperations.WithLabelValues("fetch_all_destinations", "error").Inc()
		return nil, err
	}

	metrics.CatalogOperations.WithLabelValues("fetch_all_destinations", "ok").Inc()
	return out, nil
}

// FetchAllUserProfiles returns all normalized user profiles.
func (s *BadgerStore) FetchAllUserProfiles(ctx context.Context) ([]models.UserProfile, error) {
	defer s.observe("fetch_all_profiles", time.Now())

	var out []models.UserProfile
	err := s.db.View(func(txn *badger.Txn) error {
		return s.scanPrefix(ctx, txn, userKeyPrefix, func(val []byte) error {
			var raw models.RawProfile
			if err := json.Unmarshal(val, &raw); err != nil {
				return fmt.Errorf("decode profile: %w", err)
			}
			out = append(out, raw.Normalize())
			return nil
		})
	})
	if err != nil {
		metrics.CatalogOperations.WithLabelValues("fetch_all_profiles", "error").Inc()
		return nil, err
	}

	metrics.CatalogOperations.WithLabelValues("fetch_all_profiles", "ok").Inc()
	return out, nil
}

// FetchUserProfile returns uid's profile. A missing document yields an
// empty profile: a brand-new user is a valid zero state, not an error.
func (s *BadgerStore) FetchUserProfile(ctx context.Context, uid string) (models.UserProfile, error) {
	defer s.observe("fetch_profile", time.Now())

	var profile models.UserProfile
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(userKeyPrefix + uid))
		if errors.Is(err, badger.ErrKeyNotFound) {
			profile = models.UserProfile{UID: uid}
			return nil
		}
		if err != nil {
			return fmt.Errorf("get profile: %w", err)
		}
		return item.Value(func(val []byte) error {
			var raw models.RawProfile
			if err := json.Unmarshal(val, &raw); err != nil {
				return fmt.Errorf("decode profile: %w", err)
			}
			profile = raw.Normalize()
			return nil
		})
	})
	if err != nil {
		metrics.CatalogOperations.WithLabelValues("fetch_profile", "error").Inc()
		return models.UserProfile{}, err
	}

	metrics.CatalogOperations.WithLabelValues("fetch_profile", "ok").Inc()
	return profile, nil
}

// GetDestination returns one destination or ErrNotFound.
func (s *BadgerStore) GetDestination(ctx context.Context, id string) (models.Destination, error) {
	defer s.observe("get_destination", time.Now())

	var dest models.Destination
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(destKeyPrefix + id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("get destination: %w", err)
		}
		return item.Value(func(val []byte) error {
			var raw models.RawDestination
			if err := json.Unmarshal(val, &raw); err != nil {
				return fmt.Errorf("decode destination: %w", err)
			}
			dest = raw.Normalize()
			return nil
		})
	})
	if err != nil {
		status := "error"
		if errors.Is(err, ErrNotFound) {
			status = "not_found"
		}
		metrics.CatalogOperations.WithLabelValues("get_destination", status).Inc()
		return models.Destination{}, err
	}

	metrics.CatalogOperations.WithLabelValues("get_destination", "ok").Inc()
	return dest, nil
}

// PutDestination creates or replaces a destination document.
func (s *BadgerStore) PutDestination(ctx context.Context, dest models.Destination) error {
	defer s.observe("put_destination", time.Now())

	if dest.ID == "" {
		return fmt.Errorf("destination id is required")
	}

	data, err := json.Marshal(destToRaw(&dest))
	if err != nil {
		return fmt.Errorf("marshal destination: %w", err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(destKeyPrefix+dest.ID), data)
	})
	if err != nil {
		metrics.CatalogOperations.WithLabelValues("put_destination", "error").Inc()
		return fmt.Errorf("put destination: %w", err)
	}

	metrics.CatalogOperations.WithLabelValues("put_destination", "ok").Inc()
	return nil
}

// RateDestination records uid's rating and recomputes the average inside
// a single read-modify-write transaction.
func (s *BadgerStore) RateDestination(ctx context.Context, id, uid string, stars int) error {
	defer s.observe("rate_destination", time.Now())

	if stars < 1 || stars > 5 {
		return fmt.Errorf("rating must be 1-5, got %d", stars)
	}
	if uid == "" {
		return fmt.Errorf("rater uid is required")
	}

	err := s.updateDestination(id, func(dest *models.Destination) {
		if dest.Ratings == nil {
			dest.Ratings = make(map[string]int, 1)
		}
		dest.Ratings[uid] = stars
		dest.RecomputeAverage()
	})
	if err != nil {
		metrics.CatalogOperations.WithLabelValues("rate_destination", "error").Inc()
		return err
	}

	metrics.CatalogOperations.WithLabelValues("rate_destination", "ok").Inc()
	return nil
}

// LikeDestination increments the raw like counter.
func (s *BadgerStore) LikeDestination(ctx context.Context, id string) error {
	defer s.observe("like_destination", time.Now())

	err := s.updateDestination(id, func(dest *models.Destination) {
		dest.Likes++
	})
	if err != nil {
		metrics.CatalogOperations.WithLabelValues("like_destination", "error").Inc()
		return err
	}

	metrics.CatalogOperations.WithLabelValues("like_destination", "ok").Inc()
	return nil
}

// SetSavedDestinations replaces uid's bookmark list, deduplicated.
func (s *BadgerStore) SetSavedDestinations(ctx context.Context, uid string, ids []string) error {
	defer s.observe("set_saved", time.Now())

	if uid == "" {
		return fmt.Errorf("uid is required")
	}

	err := s.db.Update(func(txn *badger.Txn) error {
		key := []byte(userKeyPrefix + uid)

		profile := models.UserProfile{UID: uid}
		item, err := txn.Get(key)
		if err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("get profile: %w", err)
		}
		if err == nil {
			if err := item.Value(func(val []byte) error {
				var raw models.RawProfile
				if err := json.Unmarshal(val, &raw); err != nil {
					return fmt.Errorf("decode profile: %w", err)
				}
				profile = raw.Normalize()
				return nil
			}); err != nil {
				return err
			}
		}

		profile.SavedDestinationIDs = models.DedupeIDs(ids)

		data, err := json.Marshal(profileToRaw(&profile))
		if err != nil {
			return fmt.Errorf("marshal profile: %w", err)
		}
		return txn.Set(key, data)
	})
	if err != nil {
		metrics.CatalogOperations.WithLabelValues("set_saved", "error").Inc()
		return err
	}

	metrics.BookmarkWrites.Inc()
	metrics.CatalogOperations.WithLabelValues("set_saved", "ok").Inc()
	return nil
}

// PutUserProfile creates or replaces a user profile document.
func (s *BadgerStore) PutUserProfile(ctx context.Context, profile models.UserProfile) error {
	defer s.observe("put_profile", time.Now())

	if profile.UID == "" {
		return fmt.Errorf("profile uid is required")
	}

	data, err := json.Marshal(profileToRaw(&profile))
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(userKeyPrefix+profile.UID), data)
	})
	if err != nil {
		metrics.CatalogOperations.WithLabelValues("put_profile", "error").Inc()
		return fmt.Errorf("put profile: %w", err)
	}

	metrics.CatalogOperations.WithLabelValues("put_profile", "ok").Inc()
	return nil
}

// scanPrefix iterates values under a key prefix, honoring ctx cancellation
// between items.
func (s *BadgerStore) scanPrefix(ctx context.Context, txn *badger.Txn, prefix string, fn func(val []byte) error) error {
	opts := badger.DefaultIteratorOptions
	opts.Prefix = []byte(prefix)

	it := txn.NewIterator(opts)
	defer it.Close()

	for it.Rewind(); it.Valid(); it.Next() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := it.Item().Value(fn); err != nil {
			return err
		}
	}
	return nil
}

// updateDestination runs a read-modify-write cycle on one destination.
func (s *BadgerStore) updateDestination(id string, mutate func(*models.Destination)) error {
	return s.db.Update(func(txn *badger.Txn) error {
		key := []byte(destKeyPrefix + id)

		item, err := txn.Get(key)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("get destination: %w", err)
		}

		var dest models.Destination
		if err := item.Value(func(val []byte) error {
			var raw models.RawDestination
			if err := json.Unmarshal(val, &raw); err != nil {
				return fmt.Errorf("decode destination: %w", err)
			}
			dest = raw.Normalize()
			return nil
		}); err != nil {
			return err
		}

		mutate(&dest)

		data, err := json.Marshal(destToRaw(&dest))
		if err != nil {
			return fmt.Errorf("marshal destination: %w", err)
		}
		return txn.Set(key, data)
	})
}

func (s *BadgerStore) observe(op string, start time.Time) {
	metrics.CatalogOperationDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

// destToRaw maps a canonical record back to the stored document shape so
// documents round-trip with the field names the original clients wrote.
func destToRaw(d *models.Destination) models.RawDestination {
	avg := d.AverageRating
	return models.RawDestination{
		ID:            d.ID,
		Name:          d.Name,
		Description:   d.Description,
		Category:      d.Category,
		Country:       d.Country,
		State:         d.State,
		District:      d.District,
		Ratings:       d.Ratings,
		AverageRating: &avg,
		Likes:         d.Likes,
		CreatorID:     d.CreatorID,
		AddedByID:     d.AddedByID,
	}
}

func profileToRaw(p *models.UserProfile) models.RawProfile {
	return models.RawProfile{
		UID:                 p.UID,
		Preferences:         p.Preferences,
		SavedDestinationIDs: p.SavedDestinationIDs,
	}
}
