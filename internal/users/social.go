// SilverScreened - Movie Social Tracking and Recommendations
// Copyright 2026 Saphal Katuwal
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/SaphalKatuwal/SilverScreened

package users

import (
	"context"

	"github.com/SaphalKatuwal/SilverScreened/internal/models"
)

// Follow adds targetID to userID's following list. Both users must exist.
func (s *Service) Follow(ctx context.Context, userID, targetID string) error {
	if userID == targetID {
		return models.Validation("You cannot follow yourself")
	}
	if _, err := s.users.GetUser(ctx, targetID); err != nil {
		return err
	}

	added, err := s.users.AddFollowing(ctx, userID, targetID)
	if err != nil {
		return err
	}
	if added {
		s.publish(ctx, &models.Activity{
			Type:         models.ActivityFollow,
			UserID:       userID,
			TargetUserID: targetID,
		})
	}
	return nil
}

// Unfollow removes targetID from userID's following list if present.
func (s *Service) Unfollow(ctx context.Context, userID, targetID string) error {
	return s.users.RemoveFollowing(ctx, userID, targetID)
}

// Friends returns the followed users that follow back.
func (s *Service) Friends(ctx context.Context, userID string) ([]models.UserSummary, error) {
	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	following, err := s.users.GetUsers(ctx, user.Following)
	if err != nil {
		return nil, err
	}

	friends := make([]models.UserSummary, 0, len(following))
	for _, u := range following {
		if u.IsFollowing(userID) {
			friends = append(friends, u.Summary())
		}
	}
	return friends, nil
}

// Followers returns every user following userID.
func (s *Service) Followers(ctx context.Context, userID string) ([]models.UserSummary, error) {
	followers, err := s.users.ListFollowers(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]models.UserSummary, len(followers))
	for i, u := range followers {
		out[i] = u.Summary()
	}
	return out, nil
}

// Suggested returns users that are neither userID nor already followed.
func (s *Service) Suggested(ctx context.Context, userID string) ([]models.SuggestedUser, error) {
	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	exclude := append([]string{userID}, user.Following...)
	candidates, err := s.users.ListUsers(ctx, exclude, s.cfg.SuggestedLimit)
	if err != nil {
		return nil, err
	}

	out := make([]models.SuggestedUser, len(candidates))
	for i, u := range candidates {
		out[i] = models.SuggestedUser{
			UserSummary:  u.Summary(),
			WatchedCount: len(u.WatchedMovies),
		}
	}
	return out, nil
}
