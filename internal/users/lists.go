// SilverScreened - Movie Social Tracking and Recommendations
// Copyright 2026 Saphal Katuwal
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/SaphalKatuwal/SilverScreened

package users

import (
	"context"
	"fmt"

	"github.com/SaphalKatuwal/SilverScreened/internal/models"
)

const (
	MinRating = 1
	MaxRating = 5
)

// AddToWatchlist adds movieID unless it is already listed.
func (s *Service) AddToWatchlist(ctx context.Context, userID, movieID string) error {
	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return err
	}
	if user.InWatchlist(movieID) {
		return nil
	}

	now := s.now()
	if err := s.users.AddToWatchlist(ctx, userID, models.WatchlistEntry{MovieID: movieID, AddedAt: now}); err != nil {
		return err
	}
	s.publish(ctx, &models.Activity{
		Type:       models.ActivityWatchlist,
		UserID:     userID,
		MovieID:    movieID,
		OccurredAt: now,
	})
	return nil
}

// RemoveFromWatchlist removes movieID; absent movies are ignored.
func (s *Service) RemoveFromWatchlist(ctx context.Context, userID, movieID string) error {
	return s.users.RemoveFromWatchlist(ctx, userID, movieID)
}

// MarkWatched logs movieID with the current time unless already logged.
func (s *Service) MarkWatched(ctx context.Context, userID, movieID string) error {
	now := s.now()
	added, err := s.users.AddWatched(ctx, userID, models.WatchedEntry{MovieID: movieID, WatchedAt: now})
	if err != nil {
		return err
	}
	if added {
		s.publish(ctx, &models.Activity{
			Type:       models.ActivityWatch,
			UserID:     userID,
			MovieID:    movieID,
			OccurredAt: now,
		})
	}
	return nil
}

// Rate stores the user's rating for movieID, replacing any previous one.
func (s *Service) Rate(ctx context.Context, userID, movieID string, rating int) error {
	if rating < MinRating || rating > MaxRating {
		return models.Validation(fmt.Sprintf("Rating must be between %d and %d", MinRating, MaxRating))
	}
	if err := s.users.SetRating(ctx, userID, movieID, rating); err != nil {
		return err
	}
	s.publish(ctx, &models.Activity{
		Type:    models.ActivityRating,
		UserID:  userID,
		MovieID: movieID,
		Rating:  rating,
	})
	return nil
}

// Rating returns the user's rating for movieID, or 0.
func (s *Service) Rating(ctx context.Context, userID, movieID string) (int, error) {
	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return 0, err
	}
	return user.Ratings[movieID], nil
}
