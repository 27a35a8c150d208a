// SilverScreened - Movie Social Tracking and Recommendations
// Copyright 2026 Saphal Katuwal
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/SaphalKatuwal/SilverScreened

package api

import (
	"net/http"

	"github.com/SaphalKatuwal/SilverScreened/internal/models"
	"github.com/SaphalKatuwal/SilverScreened/internal/reviews"
	"github.com/SaphalKatuwal/SilverScreened/internal/validation"
)

// CreateReview stores a review by the caller.
func (h *Handler) CreateReview(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req CreateReviewRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	review, err := h.reviews.Create(r.Context(), userID, reviews.CreateRequest{
		MovieID: req.MovieID,
		Rating:  req.Rating,
		Comment: req.Comment,
	})
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	NewResponseWriter(w, r).Created(review)
}

// MovieReviews lists a movie's reviews, oldest first.
func (h *Handler) MovieReviews(w http.ResponseWriter, r *http.Request) {
	movieID := pathParam(r, "movieId")
	if !validation.IsMovieID(movieID) {
		NewResponseWriter(w, r).BadRequest("Invalid movie ID")
		return
	}

	list, err := h.reviews.ListByMovie(r.Context(), movieID)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	NewResponseWriter(w, r).Success(list)
}

// UpdateReview edits a review owned by the caller.
func (h *Handler) UpdateReview(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req UpdateReviewRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	review, err := h.reviews.Update(r.Context(), userID, pathParam(r, "id"), models.ReviewUpdate{
		Rating:  req.Rating,
		Comment: req.Comment,
	})
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	NewResponseWriter(w, r).Success(review)
}

// DeleteReview removes a review owned by the caller.
func (h *Handler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	if err := h.reviews.Delete(r.Context(), userID, pathParam(r, "id")); err != nil {
		respondServiceError(w, r, err)
		return
	}
	NewResponseWriter(w, r).Success(messageResponse{Message: "Review deleted"})
}
