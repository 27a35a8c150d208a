// SilverScreened - Movie Social Tracking and Recommendations
// Copyright 2026 Saphal Katuwal
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/SaphalKatuwal/SilverScreened

// Request bodies and query parameters, validated with go-playground/validator
// tags before they reach a service:
//   - required: field must be present and non-zero
//   - min,max: numeric bounds or string/slice length
//   - oneof: value must be one of the listed options
//   - movieid: numeric TMDB movie ID (registered in internal/validation)
//   - omitempty: skip validation if field is empty/zero

package api

// RegisterRequest is the body of POST /api/auth/register.
// ProfilePicture is the object key returned by the upload endpoint. The
// password length and picture presence are checked by the user service,
// after duplicate accounts.
type RegisterRequest struct {
	Email          string `json:"email" validate:"required,email,max=254"`
	Username       string `json:"username" validate:"required,min=1,max=50"`
	Password       string `json:"password" validate:"required,max=72"`
	ProfilePicture string `json:"profilePicture" validate:"max=512"`
}

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,max=254"`
	Password string `json:"password" validate:"required,max=72"`
}

// UploadRequest is the body of POST /api/uploads/profile-picture.
type UploadRequest struct {
	ContentType string `json:"contentType" validate:"required,max=100"`
}

// UpdateProfileRequest is the body of PUT /api/users/profile. Empty
// fields keep the stored value; the favorites cap is enforced by the
// user service so its message matches the rest of the API.
type UpdateProfileRequest struct {
	Username       string   `json:"username" validate:"omitempty,max=50"`
	Location       string   `json:"location" validate:"omitempty,max=100"`
	Bio            string   `json:"bio" validate:"omitempty,max=500"`
	ProfilePicture string   `json:"profilePicture" validate:"omitempty,max=512"`
	FavoriteFilms  []string `json:"favoriteFilms" validate:"omitempty,dive,movieid"`
}

// MovieRequest is the body of the watchlist and watched endpoints.
type MovieRequest struct {
	MovieID string `json:"movieId" validate:"required,movieid"`
}

// FollowRequest is the body of the follow and unfollow endpoints.
type FollowRequest struct {
	FollowID string `json:"followId" validate:"required,max=64"`
}

// CreateReviewRequest is the body of POST /api/reviews.
type CreateReviewRequest struct {
	MovieID string `json:"movieId" validate:"required,movieid"`
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"omitempty,max=5000"`
}

// UpdateReviewRequest is the body of PUT /api/reviews/{id}. Absent fields
// are left unchanged.
type UpdateReviewRequest struct {
	Rating  *int    `json:"rating" validate:"omitempty,min=1,max=5"`
	Comment *string `json:"comment" validate:"omitempty,max=5000"`
}

// RateRequest is the body of POST /api/ratings.
type RateRequest struct {
	MovieID string `json:"movieId" validate:"required,movieid"`
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
}

// SearchQuery holds the query of GET /api/movies/search.
type SearchQuery struct {
	Query string `json:"query" validate:"required,max=200"`
	Page  int    `json:"page" validate:"min=1,max=500"`
}

// DiscoverQuery holds the query of GET /api/movies/discover.
type DiscoverQuery struct {
	Genre  string  `json:"genre" validate:"omitempty,max=100"`
	Rating float64 `json:"rating" validate:"min=0,max=10"`
	Decade int     `json:"decade" validate:"omitempty,min=1870,max=2100"`
	Page   int     `json:"page" validate:"min=1,max=500"`
}
