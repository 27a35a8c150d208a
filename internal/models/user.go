// SilverScreened - Movie Social Tracking and Recommendations
// Copyright 2026 Saphal Katuwal
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/SaphalKatuwal/SilverScreened

package models

import "time"

// MaxFavoriteFilms caps User.FavoriteFilms.
const MaxFavoriteFilms = 5

// User is a registered account. PasswordHash never leaves the server.
type User struct {
	ID             string           `json:"id"`
	Email          string           `json:"email"`
	Username       string           `json:"username"`
	PasswordHash   string           `json:"-"`
	Location       string           `json:"location,omitempty"`
	Bio            string           `json:"bio,omitempty"`
	ProfilePicture string           `json:"profilePicture"`
	FavoriteFilms  []string         `json:"favoriteFilms"`
	Watchlist      []WatchlistEntry `json:"watchlist"`
	WatchedMovies  []WatchedEntry   `json:"watchedMovies"`
	Ratings        map[string]int   `json:"ratings,omitempty"`
	Following      []string         `json:"following"`
	CreatedAt      time.Time        `json:"createdAt"`
}

// WatchlistEntry is a movie the user intends to watch.
type WatchlistEntry struct {
	MovieID string    `json:"movieId"`
	AddedAt time.Time `json:"addedAt"`
}

// WatchedEntry is a logged viewing.
type WatchedEntry struct {
	MovieID   string    `json:"movieId"`
	WatchedAt time.Time `json:"watchedAt"`
}

// HasWatched reports whether movieID is in the watched log.
func (u *User) HasWatched(movieID string) bool {
	for _, w := range u.WatchedMovies {
		if w.MovieID == movieID {
			return true
		}
	}
	return false
}

// WatchedSet returns the watched movie IDs as a set.
func (u *User) WatchedSet() map[string]struct{} {
	set := make(map[string]struct{}, len(u.WatchedMovies))
	for _, w := range u.WatchedMovies {
		set[w.MovieID] = struct{}{}
	}
	return set
}

// InWatchlist reports whether movieID is on the watchlist.
func (u *User) InWatchlist(movieID string) bool {
	for _, w := range u.Watchlist {
		if w.MovieID == movieID {
			return true
		}
	}
	return false
}

// IsFollowing reports whether u follows userID.
func (u *User) IsFollowing(userID string) bool {
	for _, id := range u.Following {
		if id == userID {
			return true
		}
	}
	return false
}

// Summary returns the public subset of u.
func (u *User) Summary() UserSummary {
	return UserSummary{
		ID:             u.ID,
		Email:          u.Email,
		Username:       u.Username,
		ProfilePicture: u.ProfilePicture,
	}
}

// UserSummary is how other users appear in lists.
type UserSummary struct {
	ID             string `json:"id"`
	Email          string `json:"email"`
	Username       string `json:"username"`
	ProfilePicture string `json:"profilePicture,omitempty"`
}

// SuggestedUser is a follow suggestion.
type SuggestedUser struct {
	UserSummary
	WatchedCount int `json:"watchedCount"`
}

// ProfileUpdate carries optional profile changes. Nil or empty fields
// keep the stored value.
type ProfileUpdate struct {
	Username       string
	Location       string
	Bio            string
	ProfilePicture string
	FavoriteFilms  []string
}

// FollowedUser is a followed account with its highly rated reviews.
type FollowedUser struct {
	User    *User
	Reviews []*Review
}

// WatchedMovie is one row of the paginated watched log.
type WatchedMovie struct {
	MovieID     string    `json:"movieId"`
	Title       string    `json:"title"`
	Poster      string    `json:"poster"`
	ReleaseDate string    `json:"releaseDate"`
	LoggedDate  time.Time `json:"loggedDate"`
	Rating      *int      `json:"rating"`
}

// WatchedPage is a page of WatchedMovie rows.
type WatchedPage struct {
	Movies     []WatchedMovie `json:"movies"`
	Total      int            `json:"total"`
	Page       int            `json:"page"`
	TotalPages int            `json:"totalPages"`
}
