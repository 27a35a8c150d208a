// SilverScreened - Movie Social Tracking and Recommendations
// Copyright 2026 Saphal Katuwal
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/SaphalKatuwal/SilverScreened

package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/SaphalKatuwal/SilverScreened/internal/tmdb"
	"github.com/SaphalKatuwal/SilverScreened/internal/validation"
)

// SearchMovies proxies a TMDB title search.
func (h *Handler) SearchMovies(w http.ResponseWriter, r *http.Request) {
	q := SearchQuery{
		Query: strings.TrimSpace(r.URL.Query().Get("query")),
		Page:  getIntParam(r, "page", 1),
	}
	if !validateOrRespond(w, r, &q) {
		return
	}

	page, err := h.movies.Search(r.Context(), q.Query, q.Page)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	NewResponseWriter(w, r).Success(page)
}

// PopularMovies returns TMDB's popular list.
func (h *Handler) PopularMovies(w http.ResponseWriter, r *http.Request) {
	page, err := h.movies.Popular(r.Context(), clampPage(getIntParam(r, "page", 1)))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	NewResponseWriter(w, r).Success(page)
}

// TopRatedMovies returns TMDB's top rated list.
func (h *Handler) TopRatedMovies(w http.ResponseWriter, r *http.Request) {
	page, err := h.movies.TopRated(r.Context(), clampPage(getIntParam(r, "page", 1)))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	NewResponseWriter(w, r).Success(page)
}

// DiscoverMovies filters TMDB's catalog.
//
// Query parameters:
//   - genre: comma-separated genre IDs, any of which may match
//   - rating: minimum vote average (0-10)
//   - decade: first year of a decade, "1990" or "1990s"
//   - page: result page (default 1)
func (h *Handler) DiscoverMovies(w http.ResponseWriter, r *http.Request) {
	decade, err := parseDecade(r.URL.Query().Get("decade"))
	if err != nil {
		NewResponseWriter(w, r).BadRequest("Invalid decade")
		return
	}

	q := DiscoverQuery{
		Genre:  r.URL.Query().Get("genre"),
		Rating: getFloatParam(r, "rating", 0),
		Decade: decade,
		Page:   getIntParam(r, "page", 1),
	}
	if !validateOrRespond(w, r, &q) {
		return
	}

	genres, err := parseGenreIDs(q.Genre)
	if err != nil {
		NewResponseWriter(w, r).BadRequest("Invalid genre")
		return
	}

	page, err := h.movies.Discover(r.Context(), tmdb.DiscoverFilter{
		GenreIDs:  genres,
		MinRating: q.Rating,
		Decade:    q.Decade,
		Page:      q.Page,
	})
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	NewResponseWriter(w, r).Success(page)
}

// MovieDetail returns a movie with credits and videos.
func (h *Handler) MovieDetail(w http.ResponseWriter, r *http.Request) {
	id := pathParam(r, "id")
	if !validation.IsMovieID(id) {
		NewResponseWriter(w, r).BadRequest("Invalid movie ID")
		return
	}

	detail, err := h.movies.MovieDetailFull(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	NewResponseWriter(w, r).Success(detail)
}

// clampPage keeps list pages within TMDB's accepted range.
func clampPage(page int) int {
	switch {
	case page < 1:
		return 1
	case page > 500:
		return 500
	default:
		return page
	}
}

// parseDecade accepts "1990" or "1990s" and rounds down to the decade.
func parseDecade(s string) (int, error) {
	s = strings.TrimSuffix(strings.ToLower(strings.TrimSpace(s)), "s")
	if s == "" {
		return 0, nil
	}
	year, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	return year - year%10, nil
}
