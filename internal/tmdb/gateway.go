// SilverScreened - Movie Social Tracking and Recommendations
// Copyright 2026 Saphal Katuwal
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/SaphalKatuwal/SilverScreened

package tmdb

import (
	"context"
	"strconv"
	"strings"

	"github.com/SaphalKatuwal/SilverScreened/internal/models"
)

// DefaultSortBy is the discover ordering used when none is given.
const DefaultSortBy = "popularity.desc"

// Gateway is the movie metadata surface used by the server.
type Gateway interface {
	Search(ctx context.Context, query string, page int) (*models.MoviePage, error)
	Popular(ctx context.Context, page int) (*models.MoviePage, error)
	TopRated(ctx context.Context, page int) (*models.MoviePage, error)
	Discover(ctx context.Context, filter DiscoverFilter) (*models.MoviePage, error)
	MovieDetail(ctx context.Context, id string) (*models.MovieDetail, error)
	// MovieDetailFull is MovieDetail with credits and videos appended.
	MovieDetailFull(ctx context.Context, id string) (*models.MovieDetail, error)
	Ping(ctx context.Context) error
}

// DiscoverFilter selects movies from /discover/movie. Zero values are
// omitted from the request.
type DiscoverFilter struct {
	GenreIDs  []int
	MinRating float64
	// Decade is the first year of a decade, e.g. 1990.
	Decade int
	SortBy string
	Page   int
}

// params returns the TMDB query parameters for f.
func (f DiscoverFilter) params() map[string]string {
	p := make(map[string]string)
	if len(f.GenreIDs) > 0 {
		ids := make([]string, len(f.GenreIDs))
		for i, g := range f.GenreIDs {
			ids[i] = strconv.Itoa(g)
		}
		p["with_genres"] = strings.Join(ids, ",")
	}
	if f.MinRating > 0 {
		p["vote_average.gte"] = strconv.FormatFloat(f.MinRating, 'f', -1, 64)
	}
	if f.Decade > 0 {
		p["primary_release_date.gte"] = strconv.Itoa(f.Decade) + "-01-01"
		p["primary_release_date.lte"] = strconv.Itoa(f.Decade+9) + "-12-31"
	}
	p["sort_by"] = f.SortBy
	if f.SortBy == "" {
		p["sort_by"] = DefaultSortBy
	}
	if f.Page > 0 {
		p["page"] = strconv.Itoa(f.Page)
	}
	return p
}

// validMovieID reports whether id is a TMDB numeric ID.
func validMovieID(id string) bool {
	if id == "" || len(id) > 10 {
		return false
	}
	for _, r := range id {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
