// SilverScreened - Movie Social Tracking and Recommendations
// Copyright 2026 Saphal Katuwal
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/SaphalKatuwal/SilverScreened

package users

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/SaphalKatuwal/SilverScreened/internal/models"
)

// UserWithFollowing loads userID and each followed user, in following
// order, with that user's reviews rated at least minRating. Follow edges
// to deleted users are skipped.
func (s *Service) UserWithFollowing(ctx context.Context, userID string, minRating int) (*models.User, []models.FollowedUser, error) {
	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	following, err := s.users.GetUsers(ctx, user.Following)
	if err != nil {
		return nil, nil, fmt.Errorf("load following: %w", err)
	}

	out := make([]models.FollowedUser, len(following))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.MaxConcurrency)
	for i, f := range following {
		g.Go(func() error {
			reviews, err := s.reviews.ListReviewsByUser(gctx, f.ID, minRating)
			if err != nil {
				return fmt.Errorf("reviews of %s: %w", f.ID, err)
			}
			out[i] = models.FollowedUser{User: f, Reviews: reviews}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return user, out, nil
}

// UserWithReviews loads userID and all of the user's reviews, oldest first.
func (s *Service) UserWithReviews(ctx context.Context, userID string) (*models.User, []*models.Review, error) {
	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	reviews, err := s.reviews.ListReviewsByUser(ctx, userID, 0)
	if err != nil {
		return nil, nil, fmt.Errorf("list reviews: %w", err)
	}
	return user, reviews, nil
}
