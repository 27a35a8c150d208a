// SilverScreened - Movie Social Tracking and Recommendations
// Copyright 2026 Saphal Katuwal
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/SaphalKatuwal/SilverScreened

package recommend

import (
	"context"

	"github.com/SaphalKatuwal/SilverScreened/internal/models"
	"github.com/SaphalKatuwal/SilverScreened/internal/tmdb"
)

// Recommendation kinds, used as metric labels.
const (
	KindSocial = "social"
	KindGenre  = "genre"
)

// Directory resolves users and their social graph.
// Both methods return an error matching models.ErrNotFound for unknown users.
type Directory interface {
	// UserWithFollowing returns the user and each followed user, in
	// following order, with only their reviews rated at least minRating.
	UserWithFollowing(ctx context.Context, userID string, minRating int) (*models.User, []models.FollowedUser, error)

	// UserWithReviews returns the user and all of the user's reviews.
	UserWithReviews(ctx context.Context, userID string) (*models.User, []*models.Review, error)
}

// Catalog is the subset of the movie gateway the aggregator needs.
type Catalog interface {
	MovieDetail(ctx context.Context, id string) (*models.MovieDetail, error)
	Discover(ctx context.Context, filter tmdb.DiscoverFilter) (*models.MoviePage, error)
}

// Result is the response body of the recommendations endpoint.
type Result struct {
	Social []*models.MovieDetail  `json:"social"`
	Genre  []models.MovieSummary `json:"genre"`
}

