// SilverScreened - Movie Social Tracking and Recommendations
// Copyright 2026 Saphal Katuwal
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/SaphalKatuwal/SilverScreened

package reviews

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/SaphalKatuwal/SilverScreened/internal/database"
	"github.com/SaphalKatuwal/SilverScreened/internal/events"
	"github.com/SaphalKatuwal/SilverScreened/internal/logging"
	"github.com/SaphalKatuwal/SilverScreened/internal/models"
)

const (
	MinRating = 1
	MaxRating = 5

	msgReviewNotFound = "Review not found"
	msgNotOwner       = "Unauthorized"
)

// CreateRequest carries a new review.
type CreateRequest struct {
	MovieID string
	Rating  int
	Comment string
}

// Service implements review operations.
type Service struct {
	reviews   database.ReviewStore
	users     database.UserStore
	publisher events.Publisher
	now       func() time.Time
}

// NewService creates the review service. users resolves review authors.
func NewService(reviews database.ReviewStore, users database.UserStore) *Service {
	return &Service{
		reviews: reviews,
		users:   users,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// SetPublisher enables review activity events.
func (s *Service) SetPublisher(p events.Publisher) {
	s.publisher = p
}

// Create stores a review by userID.
func (s *Service) Create(ctx context.Context, userID string, req CreateRequest) (*models.Review, error) {
	if err := validateRating(req.Rating); err != nil {
		return nil, err
	}
	movieID := strings.TrimSpace(req.MovieID)
	if movieID == "" {
		return nil, models.Validation("Movie ID is required")
	}

	now := s.now()
	review := &models.Review{
		UserID:    userID,
		MovieID:   movieID,
		Rating:    req.Rating,
		Comment:   strings.TrimSpace(req.Comment),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.reviews.CreateReview(ctx, review); err != nil {
		return nil, fmt.Errorf("create review: %w", err)
	}

	if s.publisher != nil {
		_ = s.publisher.Publish(ctx, &models.Activity{
			Type:       models.ActivityReview,
			UserID:     userID,
			MovieID:    movieID,
			Rating:     review.Rating,
			OccurredAt: now,
		})
	}
	return review, nil
}

// ListByMovie returns a movie's reviews, oldest first, with author
// summaries. Reviews by deleted users have no author.
func (s *Service) ListByMovie(ctx context.Context, movieID string) ([]*models.Review, error) {
	reviews, err := s.reviews.ListReviewsByMovie(ctx, movieID)
	if err != nil {
		return nil, err
	}
	if len(reviews) == 0 {
		return []*models.Review{}, nil
	}

	seen := make(map[string]struct{}, len(reviews))
	ids := make([]string, 0, len(reviews))
	for _, r := range reviews {
		if _, ok := seen[r.UserID]; !ok {
			seen[r.UserID] = struct{}{}
			ids = append(ids, r.UserID)
		}
	}

	authors, err := s.users.GetUsers(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load review authors: %w", err)
	}
	byID := make(map[string]models.UserSummary, len(authors))
	for _, u := range authors {
		byID[u.ID] = u.Summary()
	}

	for _, r := range reviews {
		if author, ok := byID[r.UserID]; ok {
			r.Author = &author
		}
	}
	return reviews, nil
}

// Update changes rating and/or comment of a review owned by userID.
func (s *Service) Update(ctx context.Context, userID, reviewID string, upd models.ReviewUpdate) (*models.Review, error) {
	review, err := s.owned(ctx, userID, reviewID)
	if err != nil {
		return nil, err
	}

	if upd.Rating != nil {
		if err := validateRating(*upd.Rating); err != nil {
			return nil, err
		}
		review.Rating = *upd.Rating
	}
	if upd.Comment != nil {
		review.Comment = strings.TrimSpace(*upd.Comment)
	}
	review.UpdatedAt = s.now()

	if err := s.reviews.UpdateReview(ctx, review); err != nil {
		return nil, fmt.Errorf("update review: %w", err)
	}
	return review, nil
}

// Delete removes a review owned by userID.
func (s *Service) Delete(ctx context.Context, userID, reviewID string) error {
	if _, err := s.owned(ctx, userID, reviewID); err != nil {
		return err
	}
	if err := s.reviews.DeleteReview(ctx, reviewID); err != nil {
		return fmt.Errorf("delete review: %w", err)
	}
	logging.Ctx(ctx).Info().Str("review_id", reviewID).Str("user_id", userID).Msg("Review deleted")
	return nil
}

func (s *Service) owned(ctx context.Context, userID, reviewID string) (*models.Review, error) {
	review, err := s.reviews.GetReview(ctx, reviewID)
	if errors.Is(err, models.ErrNotFound) {
		return nil, models.NotFound(msgReviewNotFound)
	}
	if err != nil {
		return nil, err
	}
	if review.UserID != userID {
		return nil, models.Forbidden(msgNotOwner)
	}
	return review, nil
}

func validateRating(rating int) error {
	if rating < MinRating || rating > MaxRating {
		return models.Validation(fmt.Sprintf("Rating must be between %d and %d", MinRating, MaxRating))
	}
	return nil
}
