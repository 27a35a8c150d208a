// SilverScreened - Movie Social Tracking and Recommendations
// Copyright 2026 Saphal Katuwal
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/SaphalKatuwal/SilverScreened

package api

import (
	"context"
	"net/http"

	"github.com/SaphalKatuwal/SilverScreened/internal/logging"
	"github.com/SaphalKatuwal/SilverScreened/internal/models"
)

// Profile returns the authenticated user.
func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	user, err := h.users.Profile(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	NewResponseWriter(w, r).Success(user)
}

// UpdateProfile applies the non-empty fields of the body.
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req UpdateProfileRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user, err := h.users.UpdateProfile(r.Context(), userID, models.ProfileUpdate{
		Username:       req.Username,
		Location:       req.Location,
		Bio:            req.Bio,
		ProfilePicture: req.ProfilePicture,
		FavoriteFilms:  req.FavoriteFilms,
	})
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	NewResponseWriter(w, r).Success(user)
}

// AddToWatchlist adds a movie to the watchlist.
func (h *Handler) AddToWatchlist(w http.ResponseWriter, r *http.Request) {
	h.movieAction(w, r, h.users.AddToWatchlist, "Added to watchlist")
}

// RemoveFromWatchlist removes a movie from the watchlist.
func (h *Handler) RemoveFromWatchlist(w http.ResponseWriter, r *http.Request) {
	h.movieAction(w, r, h.users.RemoveFromWatchlist, "Removed from watchlist")
}

// MarkWatched logs a movie as watched.
func (h *Handler) MarkWatched(w http.ResponseWriter, r *http.Request) {
	h.movieAction(w, r, h.users.MarkWatched, "Marked as watched")
}

// movieAction runs a {movieId} body against one of the list operations.
func (h *Handler) movieAction(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, userID, movieID string) error, message string) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req MovieRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := op(r.Context(), userID, req.MovieID); err != nil {
		respondServiceError(w, r, err)
		return
	}
	NewResponseWriter(w, r).Success(messageResponse{Message: message})
}

// Follow follows the user named by followId.
func (h *Handler) Follow(w http.ResponseWriter, r *http.Request) {
	h.followAction(w, r, h.users.Follow, "Followed user")
}

// Unfollow stops following the user named by followId.
func (h *Handler) Unfollow(w http.ResponseWriter, r *http.Request) {
	h.followAction(w, r, h.users.Unfollow, "Unfollowed user")
}

func (h *Handler) followAction(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, userID, targetID string) error, message string) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req FollowRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := op(r.Context(), userID, req.FollowID); err != nil {
		respondServiceError(w, r, err)
		return
	}
	NewResponseWriter(w, r).Success(messageResponse{Message: message})
}

// Friends returns mutual follows.
func (h *Handler) Friends(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	friends, err := h.users.Friends(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	NewResponseWriter(w, r).Success(friends)
}

// Followers returns users following the caller.
func (h *Handler) Followers(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	followers, err := h.users.Followers(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	NewResponseWriter(w, r).Success(followers)
}

// Suggested returns users the caller might follow.
func (h *Handler) Suggested(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	suggested, err := h.users.Suggested(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	NewResponseWriter(w, r).Success(suggested)
}

// WatchedDetails returns a page of the watched log.
//
// Query parameters: page (default 1), limit (default from api config),
// sort (asc or desc, default desc).
func (h *Handler) WatchedDetails(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	page, err := h.users.WatchedDetails(r.Context(), userID,
		getIntParam(r, "page", 1),
		getIntParam(r, "limit", 0),
		r.URL.Query().Get("sort"),
	)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	NewResponseWriter(w, r).Success(page)
}

// Activity returns the caller's recent activity.
func (h *Handler) Activity(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	items, err := h.users.Activity(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	NewResponseWriter(w, r).Success(items)
}

// ActivityStream upgrades to a websocket that receives the activity of
// users the caller follows.
func (h *Handler) ActivityStream(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	if h.hub == nil {
		NewResponseWriter(w, r).ServiceUnavailable("Activity stream is not available")
		return
	}

	if err := h.hub.Accept(w, r, userID, h.upgrader); err != nil {
		logging.Ctx(r.Context()).Debug().Err(err).Msg("Activity stream not established")
	}
}
