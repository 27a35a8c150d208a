// SilverScreened - Movie Social Tracking and Recommendations
// Copyright 2026 Saphal Katuwal
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/SaphalKatuwal/SilverScreened

package database

import (
	"context"
	"fmt"

	"github.com/SaphalKatuwal/SilverScreened/internal/config"
	"github.com/SaphalKatuwal/SilverScreened/internal/models"
)

// Collection names, also used as metric labels.
const (
	collUsers   = "users"
	collReviews = "reviews"
)

// UserStore persists user documents.
type UserStore interface {
	// CreateUser inserts u and assigns u.ID.
	CreateUser(ctx context.Context, u *models.User) error
	GetUser(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	// GetUsers returns the users that exist among ids, in ids order.
	GetUsers(ctx context.Context, ids []string) ([]*models.User, error)
	// ListUsers returns up to limit users whose IDs are not in exclude.
	ListUsers(ctx context.Context, exclude []string, limit int) ([]*models.User, error)
	// ListFollowers returns every user whose following list contains id.
	ListFollowers(ctx context.Context, id string) ([]*models.User, error)

	// UpdateProfile applies the non-empty fields of upd and returns the
	// stored user.
	UpdateProfile(ctx context.Context, id string, upd models.ProfileUpdate) (*models.User, error)
	// AddToWatchlist appends entry unless the movie is already listed.
	AddToWatchlist(ctx context.Context, id string, entry models.WatchlistEntry) error
	RemoveFromWatchlist(ctx context.Context, id, movieID string) error
	// AddWatched appends entry unless the movie is already logged and
	// reports whether it did.
	AddWatched(ctx context.Context, id string, entry models.WatchedEntry) (bool, error)
	SetRating(ctx context.Context, id, movieID string, rating int) error
	// AddFollowing appends targetID to id's following list unless present
	// and reports whether it did.
	AddFollowing(ctx context.Context, id, targetID string) (bool, error)
	RemoveFollowing(ctx context.Context, id, targetID string) error
}

// ReviewStore persists review documents.
type ReviewStore interface {
	// CreateReview inserts r and assigns r.ID.
	CreateReview(ctx context.Context, r *models.Review) error
	GetReview(ctx context.Context, id string) (*models.Review, error)
	// ListReviewsByMovie returns a movie's reviews oldest first.
	ListReviewsByMovie(ctx context.Context, movieID string) ([]*models.Review, error)
	// ListReviewsByUser returns a user's reviews rated at least minRating,
	// oldest first. A minRating of 0 returns all.
	ListReviewsByUser(ctx context.Context, userID string, minRating int) ([]*models.Review, error)
	// UpdateReview replaces the stored rating, comment and updatedAt of r.
	UpdateReview(ctx context.Context, r *models.Review) error
	DeleteReview(ctx context.Context, id string) error
}

// Store is a complete backend.
type Store interface {
	UserStore
	ReviewStore
	Ping(ctx context.Context) error
	Close() error
}

// Driver names accepted by Open.
const (
	DriverMongo  = "mongo"
	DriverBadger = "badger"
)

// Open connects the backend selected by cfg.Driver.
func Open(ctx context.Context, cfg *config.DatabaseConfig) (Store, error) {
	switch cfg.Driver {
	case DriverMongo:
		s, err := NewMongoStore(ctx, cfg.MongoURI, cfg.MongoDatabase, cfg.ConnectTimeout)
		if err != nil {
			return nil, err
		}
		return s, nil
	case DriverBadger:
		s, err := OpenBadger(cfg.BadgerPath, cfg.BadgerInMemory)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

var (
	_ Store = (*BadgerStore)(nil)
	_ Store = (*MongoStore)(nil)
)
