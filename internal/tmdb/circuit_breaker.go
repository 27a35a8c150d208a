// SilverScreened - Movie Social Tracking and Recommendations
// Copyright 2026 Saphal Katuwal
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/SaphalKatuwal/SilverScreened

package tmdb

import (
	"context"
	"errors"
	"fmt"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/SaphalKatuwal/SilverScreened/internal/logging"
	"github.com/SaphalKatuwal/SilverScreened/internal/metrics"
	"github.com/SaphalKatuwal/SilverScreened/internal/models"
)

// BreakerName labels the TMDB circuit breaker in metrics.
const BreakerName = "tmdb-api"

// CircuitBreakerGateway wraps a Gateway with a circuit breaker.
//
// Configuration:
//   - Max 3 requests in half-open state
//   - 1 minute measurement window
//   - 2 minute timeout before attempting recovery
//   - Opens after 60% failure rate with minimum 10 requests
//
// Not found, validation and caller cancellation do not count as failures.
type CircuitBreakerGateway struct {
	next Gateway
	cb   *gobreaker.CircuitBreaker[interface{}]
	name string
}

// NewCircuitBreakerGateway wraps next.
func NewCircuitBreakerGateway(next Gateway) *CircuitBreakerGateway {
	return newCircuitBreakerGateway(next, BreakerName, 2*time.Minute)
}

func newCircuitBreakerGateway(next Gateway, name string, openTimeout time.Duration) *CircuitBreakerGateway {
	metrics.CircuitBreakerState.WithLabelValues(name).Set(0) // 0 = closed
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(0)

	cb := gobreaker.NewCircuitBreaker[interface{}](gobreaker.Settings{
		Name:        name,
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     openTimeout,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 10 {
				return false
			}

			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			shouldTrip := failureRatio >= 0.6

			if shouldTrip {
				logging.Warn().Str("breaker", name).Uint32("failures", counts.TotalFailures).Float64("failure_rate", failureRatio*100).Msg("[CIRCUIT BREAKER] Opening circuit")
			}
			return shouldTrip
		},

		IsSuccessful: isSuccessful,

		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr := stateToString(from)
			toStr := stateToString(to)

			logging.Info().Str("breaker", name).Str("from", fromStr).Str("to", toStr).Msg("[CIRCUIT BREAKER] State transition")

			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()

			if to == gobreaker.StateClosed {
				metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(0)
			}
		},
	})

	return &CircuitBreakerGateway{
		next: next,
		cb:   cb,
		name: name,
	}
}

// isSuccessful reports whether err says nothing about TMDB's health.
func isSuccessful(err error) bool {
	return err == nil ||
		errors.Is(err, models.ErrNotFound) ||
		errors.Is(err, models.ErrValidation) ||
		errors.Is(err, context.Canceled)
}

// State returns the breaker's current state.
func (g *CircuitBreakerGateway) State() gobreaker.State {
	return g.cb.State()
}

// execute runs fn under the breaker and keeps the metrics current.
func (g *CircuitBreakerGateway) execute(fn func() (interface{}, error)) (interface{}, error) {
	result, err := g.cb.Execute(fn)

	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.CircuitBreakerRequests.WithLabelValues(g.name, "rejected").Inc()
			logging.Warn().Err(err).Str("breaker", g.name).Msg("[CIRCUIT BREAKER] Request rejected")
			return nil, models.Upstream("Movie service unavailable", err)
		}
		if !isSuccessful(err) {
			metrics.CircuitBreakerRequests.WithLabelValues(g.name, "failure").Inc()
			counts := g.cb.Counts()
			metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(g.name).Set(float64(counts.ConsecutiveFailures))
			return nil, err
		}
	}

	metrics.CircuitBreakerRequests.WithLabelValues(g.name, "success").Inc()
	if err == nil {
		metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(g.name).Set(0)
	}
	return result, err
}

// castResult type-asserts the breaker result.
func castResult[T any](result interface{}, err error) (*T, error) {
	if err != nil {
		return nil, err
	}
	typed, ok := result.(*T)
	if !ok {
		return nil, fmt.Errorf("circuit breaker: unexpected result type %T", result)
	}
	return typed, nil
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
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

func stateToString(state gobreaker.State) string {
	switch state {
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

// Search finds movies with circuit breaker protection.
func (g *CircuitBreakerGateway) Search(ctx context.Context, query string, page int) (*models.MoviePage, error) {
	return castResult[models.MoviePage](g.execute(func() (interface{}, error) {
		return g.next.Search(ctx, query, page)
	}))
}

// Popular lists popular movies with circuit breaker protection.
func (g *CircuitBreakerGateway) Popular(ctx context.Context, page int) (*models.MoviePage, error) {
	return castResult[models.MoviePage](g.execute(func() (interface{}, error) {
		return g.next.Popular(ctx, page)
	}))
}

// TopRated lists top rated movies with circuit breaker protection.
func (g *CircuitBreakerGateway) TopRated(ctx context.Context, page int) (*models.MoviePage, error) {
	return castResult[models.MoviePage](g.execute(func() (interface{}, error) {
		return g.next.TopRated(ctx, page)
	}))
}

// Discover queries discover with circuit breaker protection.
func (g *CircuitBreakerGateway) Discover(ctx context.Context, filter DiscoverFilter) (*models.MoviePage, error) {
	return castResult[models.MoviePage](g.execute(func() (interface{}, error) {
		return g.next.Discover(ctx, filter)
	}))
}

// MovieDetail fetches a movie with circuit breaker protection.
func (g *CircuitBreakerGateway) MovieDetail(ctx context.Context, id string) (*models.MovieDetail, error) {
	return castResult[models.MovieDetail](g.execute(func() (interface{}, error) {
		return g.next.MovieDetail(ctx, id)
	}))
}

// MovieDetailFull fetches a movie with credits and videos with circuit
// breaker protection.
func (g *CircuitBreakerGateway) MovieDetailFull(ctx context.Context, id string) (*models.MovieDetail, error) {
	return castResult[models.MovieDetail](g.execute(func() (interface{}, error) {
		return g.next.MovieDetailFull(ctx, id)
	}))
}

// Ping checks TMDB with circuit breaker protection.
func (g *CircuitBreakerGateway) Ping(ctx context.Context) error {
	_, err := g.execute(func() (interface{}, error) {
		return nil, g.next.Ping(ctx)
	})
	return err
}

var _ Gateway = (*CircuitBreakerGateway)(nil)
