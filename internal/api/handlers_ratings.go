// SilverScreened - Movie Social Tracking and Recommendations
// Copyright 2026 Saphal Katuwal
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/SaphalKatuwal/SilverScreened

package api

import (
	"net/http"

	"github.com/SaphalKatuwal/SilverScreened/internal/validation"
)

// RatingResponse is the caller's rating of one movie; 0 means unrated.
type RatingResponse struct {
	MovieID string `json:"movieId"`
	Rating  int    `json:"rating"`
}

// Rate stores the caller's rating of a movie.
func (h *Handler) Rate(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req RateRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.users.Rate(r.Context(), userID, req.MovieID, req.Rating); err != nil {
		respondServiceError(w, r, err)
		return
	}
	NewResponseWriter(w, r).Success(RatingResponse{MovieID: req.MovieID, Rating: req.Rating})
}

// Rating returns the caller's rating of a movie.
func (h *Handler) Rating(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	movieID := pathParam(r, "movieId")
	if !validation.IsMovieID(movieID) {
		NewResponseWriter(w, r).BadRequest("Invalid movie ID")
		return
	}

	rating, err := h.users.Rating(r.Context(), userID, movieID)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	NewResponseWriter(w, r).Success(RatingResponse{MovieID: movieID, Rating: rating})
}
