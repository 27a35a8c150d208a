// SilverScreened - Movie Social Tracking and Recommendations
// Copyright 2026 Saphal Katuwal
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/SaphalKatuwal/SilverScreened

package api

import (
	"net/http"

	"github.com/SaphalKatuwal/SilverScreened/internal/models"
	"github.com/SaphalKatuwal/SilverScreened/internal/storage"
	"github.com/SaphalKatuwal/SilverScreened/internal/users"
)

// RegisterResponse acknowledges a new account.
type RegisterResponse struct {
	Message string `json:"message"`
	UserID  string `json:"userId"`
}

// LoginResponse carries the session token.
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresIn int64        `json:"expiresIn"`
	User      *models.User `json:"user"`
}

// Register creates an account.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user, err := h.users.Register(r.Context(), users.RegisterRequest{
		Email:          req.Email,
		Username:       req.Username,
		Password:       req.Password,
		ProfilePicture: req.ProfilePicture,
	})
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	NewResponseWriter(w, r).Created(RegisterResponse{
		Message: "User registered",
		UserID:  user.ID,
	})
}

// Login exchanges credentials for a bearer token.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	result, err := h.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	NewResponseWriter(w, r).Success(LoginResponse{
		Token:     result.Token,
		ExpiresIn: result.ExpiresIn,
		User:      result.User,
	})
}

// PresignProfilePicture returns a presigned PUT URL for a profile picture.
// The returned object key is then sent as profilePicture.
func (h *Handler) PresignProfilePicture(w http.ResponseWriter, r *http.Request) {
	if h.presigner == nil {
		respondServiceError(w, r, storage.ErrDisabled)
		return
	}

	var req UploadRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	upload, err := h.presigner.PresignProfilePicture(r.Context(), req.ContentType)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	NewResponseWriter(w, r).Success(upload)
}
