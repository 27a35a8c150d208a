// SilverScreened - Movie Social Tracking and Recommendations
// Copyright 2026 Saphal Katuwal
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/SaphalKatuwal/SilverScreened

package models

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestErrorKinds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		kind error
	}{
		{"not found", NotFound("User not found"), ErrNotFound},
		{"validation", Validation("bad"), ErrValidation},
		{"conflict", Conflict("Email already exists"), ErrConflict},
		{"unauthorized", Unauthorized("Invalid credentials"), ErrUnauthorized},
		{"forbidden", Forbidden("Unauthorized"), ErrForbidden},
		{"upstream", Upstream("tmdb", errors.New("timeout")), ErrUpstream},
	}

	kinds := []error{ErrNotFound, ErrValidation, ErrConflict, ErrUnauthorized, ErrForbidden, ErrUpstream}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			wrapped := fmt.Errorf("layer: %w", tt.err)
			for _, k := range kinds {
				if got := errors.Is(wrapped, k); got != (k == tt.kind) {
					t.Errorf("expected errors.Is(%v)=%v, got %v", k, k == tt.kind, got)
				}
			}
		})
	}
}

func TestErrorMessage(t *testing.T) {
	t.Parallel()

	cause := errors.New("connection reset")
	err := fmt.Errorf("fetch: %w", Upstream("Failed to fetch movie", cause))

	if got := Message(err); got != "Failed to fetch movie" {
		t.Errorf("expected user-facing message, got %q", got)
	}
	if !errors.Is(err, cause) {
		t.Error("expected cause to be reachable through Unwrap")
	}
	if got := err.Error(); got != "fetch: Failed to fetch movie: connection reset" {
		t.Errorf("expected full chain, got %q", got)
	}
	if got := Message(errors.New("plain")); got != "plain" {
		t.Errorf("expected plain, got %q", got)
	}
}

func TestUserHelpers(t *testing.T) {
	t.Parallel()

	u := &User{
		ID:            "u1",
		Email:         "a@example.com",
		Username:      "ann",
		WatchedMovies: []WatchedEntry{{MovieID: "27205", WatchedAt: time.Now()}},
		Watchlist:     []WatchlistEntry{{MovieID: "155"}},
		Following:     []string{"u2"},
	}

	if !u.HasWatched("27205") || u.HasWatched("155") {
		t.Error("expected HasWatched to match the watched log only")
	}
	if _, ok := u.WatchedSet()["27205"]; !ok {
		t.Error("expected 27205 in watched set")
	}
	if !u.InWatchlist("155") || u.InWatchlist("27205") {
		t.Error("expected InWatchlist to match the watchlist only")
	}
	if !u.IsFollowing("u2") || u.IsFollowing("u3") {
		t.Error("expected IsFollowing to match the following list only")
	}
	if s := u.Summary(); s.ID != "u1" || s.Username != "ann" {
		t.Errorf("expected summary of u1, got %+v", s)
	}
}

func TestMovieDetailGenreIDs(t *testing.T) {
	t.Parallel()

	d := &MovieDetail{Genres: []Genre{{ID: 28, Name: "Action"}, {ID: 12, Name: "Adventure"}}}
	ids := d.GenreIDs()
	if len(ids) != 2 || ids[0] != 28 || ids[1] != 12 {
		t.Errorf("expected [28 12], got %v", ids)
	}
}
