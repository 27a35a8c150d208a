// SilverScreened - Movie Social Tracking and Recommendations
// Copyright 2026 Saphal Katuwal
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/SaphalKatuwal/SilverScreened

package users

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/SaphalKatuwal/SilverScreened/internal/logging"
	"github.com/SaphalKatuwal/SilverScreened/internal/models"
)

// Sort orders for WatchedDetails.
const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// WatchedDetails returns one page of the watched log with movie details.
// A page past the end is empty. Any failed detail fetch fails the page.
func (s *Service) WatchedDetails(ctx context.Context, userID string, page, limit int, order string) (*models.WatchedPage, error) {
	order = strings.ToLower(strings.TrimSpace(order))
	switch order {
	case "":
		order = SortDesc
	case SortAsc, SortDesc:
	default:
		return nil, models.Validation("Sort must be asc or desc")
	}
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = s.cfg.DefaultPageSize
	}
	if limit > s.cfg.MaxPageSize {
		limit = s.cfg.MaxPageSize
	}

	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	reviews, err := s.reviews.ListReviewsByUser(ctx, userID, 0)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}

	// Reviews are oldest first, so the latest rating per movie wins.
	reviewRatings := make(map[string]int, len(reviews))
	for _, r := range reviews {
		reviewRatings[r.MovieID] = r.Rating
	}

	entries := append([]models.WatchedEntry(nil), user.WatchedMovies...)
	sort.SliceStable(entries, func(i, j int) bool {
		if order == SortAsc {
			return entries[i].WatchedAt.Before(entries[j].WatchedAt)
		}
		return entries[i].WatchedAt.After(entries[j].WatchedAt)
	})

	total := len(entries)
	result := &models.WatchedPage{
		Movies:     []models.WatchedMovie{},
		Total:      total,
		Page:       page,
		TotalPages: (total + limit - 1) / limit,
	}

	start := (page - 1) * limit
	if start >= total {
		return result, nil
	}
	end := start + limit
	if end > total {
		end = total
	}
	window := entries[start:end]

	movies := make([]models.WatchedMovie, len(window))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.MaxConcurrency)
	for i, entry := range window {
		g.Go(func() error {
			detail, err := s.catalog.MovieDetail(gctx, entry.MovieID)
			if err != nil {
				return fmt.Errorf("movie %s: %w", entry.MovieID, err)
			}
			row := models.WatchedMovie{
				MovieID:     entry.MovieID,
				Title:       detail.Title,
				Poster:      detail.PosterPath,
				ReleaseDate: detail.ReleaseDate,
				LoggedDate:  entry.WatchedAt,
			}
			if rating, ok := reviewRatings[entry.MovieID]; ok {
				row.Rating = &rating
			}
			movies[i] = row
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result.Movies = movies
	return result, nil
}

// Activity returns the user's most recent watch, watchlist and review
// entries, newest first. Titles are resolved best-effort.
func (s *Service) Activity(ctx context.Context, userID string) ([]models.Activity, error) {
	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	reviews, err := s.reviews.ListReviewsByUser(ctx, userID, 0)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}

	items := make([]models.Activity, 0, len(user.WatchedMovies)+len(user.Watchlist)+len(reviews))
	for _, w := range user.WatchedMovies {
		items = append(items, models.Activity{Type: models.ActivityWatch, UserID: userID, MovieID: w.MovieID, OccurredAt: w.WatchedAt})
	}
	for _, w := range user.Watchlist {
		items = append(items, models.Activity{Type: models.ActivityWatchlist, UserID: userID, MovieID: w.MovieID, OccurredAt: w.AddedAt})
	}
	for _, r := range reviews {
		items = append(items, models.Activity{ID: r.ID, Type: models.ActivityReview, UserID: userID, MovieID: r.MovieID, Rating: r.Rating, OccurredAt: r.CreatedAt})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].OccurredAt.After(items[j].OccurredAt)
	})
	if len(items) > s.cfg.ActivityLimit {
		items = items[:s.cfg.ActivityLimit]
	}

	s.resolveTitles(ctx, items)
	return items, nil
}

func (s *Service) resolveTitles(ctx context.Context, items []models.Activity) {
	var g errgroup.Group
	g.SetLimit(s.cfg.MaxConcurrency)
	for i := range items {
		g.Go(func() error {
			detail, err := s.catalog.MovieDetail(ctx, items[i].MovieID)
			if err != nil {
				logging.Ctx(ctx).Debug().Err(err).Str("movie_id", items[i].MovieID).Msg("Activity title lookup failed")
				return nil
			}
			items[i].MovieTitle = detail.Title
			return nil
		})
	}
	_ = g.Wait()
}
