// Travel Journal - Destination Catalog and Recommendation Service
// Copyright 2026 Fiyas N. (Fiyas-N)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Fiyas-N/travel-journal-sub000

package catalog

import (
	"context"
	"errors"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"
	"github.com/rs/zerolog"

	"github.com/Fiyas-N/travel-journal-sub000/internal/metrics"
	"github.com/Fiyas-N/travel-journal-sub000/internal/models"
)

// BreakerStore wraps a Store with a circuit breaker on the read paths the
// recommendation pages depend on. When the store is sick the breaker opens
// and fetches fail fast; the engine then degrades (trending by likes)
// instead of stalling every page on a dying database.
//
// Writes pass through unwrapped: a rejected bookmark write is a user-facing
// error the presentation layer must see, not something to fail fast on.
//
// The breaker uses real time for its interval and timeout calculations.
// Tests exercise the wrapped store directly or drive failures through a
// failing inner store.
type BreakerStore struct {
	inner Store
	cb    *gobreaker.CircuitBreaker[any]
	name  string
}

// NewBreakerStore wraps inner with a circuit breaker. The breaker opens at
// a 60% failure rate over at least 10 requests and probes recovery after
// 30 seconds.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewBreakerStore(inner Store, logger zerolog.Logger) *BreakerStore {
	const cbName = "catalog-store"
	log := logger.With().Str("component", "catalog-breaker").Logger()

	metrics.CircuitBreakerState.WithLabelValues(cbName).Set(0) // 0 = closed

	cb := gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        cbName,
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 10 {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			if failureRatio >= 0.6 {
				log.Warn().
					Uint32("failures", counts.TotalFailures).
					Float64("failure_rate", failureRatio*100).
					Msg("opening catalog circuit")
				return true
			}
			return false
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr, toStr := stateToString(from), stateToString(to)
			log.Info().Str("from", fromStr).Str("to", toStr).Msg("catalog circuit state transition")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()
		},
	})

	return &BreakerStore{inner: inner, cb: cb, name: cbName}
}

func (b *BreakerStore) execute(fn func() (any, error)) (any, error) {
	result, err := b.cb.Execute(fn)
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.CircuitBreakerRequests.WithLabelValues(b.name, "rejected").Inc()
		} else {
			metrics.CircuitBreakerRequests.WithLabelValues(b.name, "failure").Inc()
		}
		return nil, err
	}
	metrics.CircuitBreakerRequests.WithLabelValues(b.name, "success").Inc()
	return result, nil
}

// FetchAllDestinations fetches through the breaker.
func (b *BreakerStore) FetchAllDestinations(ctx context.Context) ([]models.Destination, error) {
	result, err := b.execute(func() (any, error) {
		return b.inner.FetchAllDestinations(ctx)
	})
	if err != nil {
		return nil, err
	}
	return result.([]models.Destination), nil
}

// FetchAllUserProfiles fetches through the breaker.
func (b *BreakerStore) FetchAllUserProfiles(ctx context.Context) ([]models.UserProfile, error) {
	result, err := b.execute(func() (any, error) {
		return b.inner.FetchAllUserProfiles(ctx)
	})
	if err != nil {
		return nil, err
	}
	return result.([]models.UserProfile), nil
}

// FetchUserProfile fetches through the breaker.
func (b *BreakerStore) FetchUserProfile(ctx context.Context, uid string) (models.UserProfile, error) {
	result, err := b.execute(func() (any, error) {
		return b.inner.FetchUserProfile(ctx, uid)
	})
	if err != nil {
		return models.UserProfile{}, err
	}
	return result.(models.UserProfile), nil
}

// GetDestination fetches through the breaker. ErrNotFound is a valid
// answer, not a store failure, so it does not count against the breaker.
func (b *BreakerStore) GetDestination(ctx context.Context, id string) (models.Destination, error) {
	result, err := b.execute(func() (any, error) {
		dest, err := b.inner.GetDestination(ctx, id)
		if errors.Is(err, ErrNotFound) {
			return notFoundResult{}, nil
		}
		return dest, err
	})
	if err != nil {
		return models.Destination{}, err
	}
	if _, missing := result.(notFoundResult); missing {
		return models.Destination{}, ErrNotFound
	}
	return result.(models.Destination), nil
}

// notFoundResult carries ErrNotFound through the breaker as a success.
type notFoundResult struct{}

// PutDestination passes through to the inner store.
func (b *BreakerStore) PutDestination(ctx context.Context, dest models.Destination) error {
	return b.inner.PutDestination(ctx, dest)
}

// RateDestination passes through to the inner store.
func (b *BreakerStore) RateDestination(ctx context.Context, id, uid string, stars int) error {
	return b.inner.RateDestination(ctx, id, uid, stars)
}

// LikeDestination passes through to the inner store.
func (b *BreakerStore) LikeDestination(ctx context.Context, id string) error {
	return b.inner.LikeDestination(ctx, id)
}

// SetSavedDestinations passes through to the inner store.
func (b *BreakerStore) SetSavedDestinations(ctx context.Context, uid string, ids []string) error {
	return b.inner.SetSavedDestinations(ctx, uid, ids)
}

// PutUserProfile passes through to the inner store.
func (b *BreakerStore) PutUserProfile(ctx context.Context, profile models.UserProfile) error {
	return b.inner.PutUserProfile(ctx, profile)
}

// State returns the current breaker state for health reporting.
func (b *BreakerStore) State() gobreaker.State {
	return b.cb.State()
}

func stateToString(s gobreaker.State) string {
	switch s {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}

func stateToFloat(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}
