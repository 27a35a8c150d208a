// SilverScreened - Movie Social Tracking and Recommendations
// Copyright 2026 Saphal Katuwal
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/SaphalKatuwal/SilverScreened

package recommend

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/SaphalKatuwal/SilverScreened/internal/logging"
	"github.com/SaphalKatuwal/SilverScreened/internal/metrics"
	"github.com/SaphalKatuwal/SilverScreened/internal/models"
	"github.com/SaphalKatuwal/SilverScreened/internal/tmdb"
)

const sortPopularity = "popularity.desc"

// Aggregator produces social and genre recommendations.
// It holds no per-request state and is safe for concurrent use.
type Aggregator struct {
	config    *Config
	directory Directory
	catalog   Catalog
	logger    zerolog.Logger
}

// NewAggregator creates an aggregator. A nil cfg uses DefaultConfig.
func NewAggregator(directory Directory, catalog Catalog, cfg *Config) (*Aggregator, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &Aggregator{
		config:    cfg,
		directory: directory,
		catalog:   catalog,
		logger:    logging.WithComponent("recommend"),
	}, nil
}

// Recommend runs both paths concurrently under the configured timeout.
// If either path fails, no lists are returned.
func (a *Aggregator) Recommend(ctx context.Context, userID string) (*Result, error) {
	ctx, cancel := context.WithTimeout(ctx, a.config.Timeout)
	defer cancel()

	var result Result
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		social, err := a.Social(gctx, userID)
		if err != nil {
			return err
		}
		result.Social = social
		return nil
	})
	g.Go(func() error {
		genre, err := a.Genre(gctx, userID)
		if err != nil {
			return err
		}
		result.Genre = genre
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &result, nil
}

// Social returns details of movies watched or highly rated by the users
// userID follows, excluding movies userID has watched.
func (a *Aggregator) Social(ctx context.Context, userID string) (movies []*models.MovieDetail, err error) {
	start := time.Now()
	var candidates []string
	defer func() {
		metrics.RecordRecommendation(KindSocial, len(candidates), time.Since(start), err)
	}()

	user, following, err := a.directory.UserWithFollowing(ctx, userID, a.config.HighRating)
	if err != nil {
		return nil, err
	}

	candidates = socialCandidates(user, following, a.config.SocialLimit)
	if len(candidates) == 0 {
		return []*models.MovieDetail{}, nil
	}

	movies, err = a.fetchDetails(ctx, candidates)
	if err != nil {
		return nil, err
	}

	a.logger.Debug().
		Str("user_id", userID).
		Int("following", len(following)).
		Int("returned", len(movies)).
		Msg("social recommendations built")
	return movies, nil
}

// socialCandidates unions watched movies of every followed user with
// their highly rated movies, in that order, drops duplicates and movies
// user has watched, and keeps the first limit IDs.
func socialCandidates(user *models.User, following []models.FollowedUser, limit int) []string {
	watched := user.WatchedSet()
	seen := make(map[string]struct{})
	out := make([]string, 0, limit)

	add := func(id string) bool {
		if _, ok := seen[id]; ok {
			return true
		}
		seen[id] = struct{}{}
		if _, ok := watched[id]; ok {
			return true
		}
		out = append(out, id)
		return len(out) < limit
	}

	for _, f := range following {
		for _, w := range f.User.WatchedMovies {
			if !add(w.MovieID) {
				return out
			}
		}
	}
	for _, f := range following {
		for _, r := range f.Reviews {
			if !add(r.MovieID) {
				return out
			}
		}
	}
	return out
}

// Genre returns popular movies in the genres most common among the user's
// recent interactions, excluding movies the user has watched.
func (a *Aggregator) Genre(ctx context.Context, userID string) (movies []models.MovieSummary, err error) {
	start := time.Now()
	var seeds []string
	defer func() {
		metrics.RecordRecommendation(KindGenre, len(seeds), time.Since(start), err)
	}()

	user, reviews, err := a.directory.UserWithReviews(ctx, userID)
	if err != nil {
		return nil, err
	}

	seeds = recentMovies(user, reviews, a.config.GenreSeedLimit)
	if len(seeds) == 0 {
		return []models.MovieSummary{}, nil
	}

	details, err := a.fetchDetails(ctx, seeds)
	if err != nil {
		return nil, err
	}

	genres := topGenres(details, a.config.TopGenres)
	if len(genres) == 0 {
		return []models.MovieSummary{}, nil
	}

	page, err := a.catalog.Discover(ctx, tmdb.DiscoverFilter{GenreIDs: genres, SortBy: sortPopularity})
	if err != nil {
		return nil, upstream("discover movies", err)
	}

	watched := user.WatchedSet()
	movies = make([]models.MovieSummary, 0, a.config.GenreLimit)
	for _, m := range page.Results {
		if _, ok := watched[strconv.Itoa(m.ID)]; ok {
			continue
		}
		movies = append(movies, m)
		if len(movies) == a.config.GenreLimit {
			break
		}
	}

	a.logger.Debug().
		Str("user_id", userID).
		Ints("genres", genres).
		Int("returned", len(movies)).
		Msg("genre recommendations built")
	return movies, nil
}

type interaction struct {
	movieID string
	at      time.Time
}

// recentMovies returns up to limit distinct movie IDs from the user's
// watched entries and reviews, newest first. Entries with equal
// timestamps keep watched-before-review insertion order.
func recentMovies(user *models.User, reviews []*models.Review, limit int) []string {
	all := make([]interaction, 0, len(user.WatchedMovies)+len(reviews))
	for _, w := range user.WatchedMovies {
		all = append(all, interaction{movieID: w.MovieID, at: w.WatchedAt})
	}
	for _, r := range reviews {
		all = append(all, interaction{movieID: r.MovieID, at: r.CreatedAt})
	}
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].at.After(all[j].at)
	})

	seen := make(map[string]struct{}, limit)
	out := make([]string, 0, limit)
	for _, it := range all {
		if len(out) == limit {
			break
		}
		if _, ok := seen[it.movieID]; ok {
			continue
		}
		seen[it.movieID] = struct{}{}
		out = append(out, it.movieID)
	}
	return out
}

// topGenres counts genre IDs across details and returns the n most
// frequent. Equal counts keep first-encountered order.
func topGenres(details []*models.MovieDetail, n int) []int {
	counts := make(map[int]int)
	var order []int
	for _, d := range details {
		for _, id := range d.GenreIDs() {
			if _, ok := counts[id]; !ok {
				order = append(order, id)
			}
			counts[id]++
		}
	}
	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if len(order) > n {
		order = order[:n]
	}
	return order
}

// fetchDetails loads ids in parallel and returns them in ids order. The
// first failure cancels the remaining calls.
func (a *Aggregator) fetchDetails(ctx context.Context, ids []string) ([]*models.MovieDetail, error) {
	out := make([]*models.MovieDetail, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.config.MaxConcurrency)
	for i, id := range ids {
		g.Go(func() error {
			d, err := a.catalog.MovieDetail(gctx, id)
			if err != nil {
				return upstream("fetch movie "+id, err)
			}
			out[i] = d
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// upstream classifies a catalog failure as an upstream error, keeping the
// original message when it already is one.
func upstream(op string, err error) error {
	if errors.Is(err, models.ErrUpstream) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return models.Upstream(op+" failed", err)
}
