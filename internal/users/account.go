// SilverScreened - Movie Social Tracking and Recommendations
// Copyright 2026 Saphal Katuwal
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/SaphalKatuwal/SilverScreened

package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/SaphalKatuwal/SilverScreened/internal/logging"
	"github.com/SaphalKatuwal/SilverScreened/internal/models"
)

// MinPasswordLength is the shortest accepted password.
const MinPasswordLength = 6

const msgInvalidCredentials = "Invalid credentials"

// RegisterRequest carries a new account.
type RegisterRequest struct {
	Email          string
	Username       string
	Password       string
	ProfilePicture string
}

// LoginResult is returned by a successful login.
type LoginResult struct {
	Token     string
	ExpiresIn int64
	User      *models.User
}

// Register creates an account. Duplicate emails are reported before
// duplicate usernames.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*models.User, error) {
	email := normalizeEmail(req.Email)
	username := strings.TrimSpace(req.Username)
	if email == "" || username == "" {
		return nil, models.Validation("Email and username are required")
	}
	if len(req.Password) < MinPasswordLength {
		return nil, models.Validation(fmt.Sprintf("Password must be at least %d characters", MinPasswordLength))
	}

	if err := s.ensureAvailable(ctx, email, username); err != nil {
		return nil, err
	}

	if strings.TrimSpace(req.ProfilePicture) == "" {
		return nil, models.Validation("Profile picture is required")
	}

	hash, err := s.passwords.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:          email,
		Username:       username,
		PasswordHash:   hash,
		ProfilePicture: strings.TrimSpace(req.ProfilePicture),
		FavoriteFilms:  []string{},
		Watchlist:      []models.WatchlistEntry{},
		WatchedMovies:  []models.WatchedEntry{},
		Following:      []string{},
		CreatedAt:      s.now(),
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.security.LogRegistered(user.ID, email, logging.ClientIPFromContext(ctx))
	return user, nil
}

func (s *Service) ensureAvailable(ctx context.Context, email, username string) error {
	if _, err := s.users.GetUserByEmail(ctx, email); err == nil {
		return models.Conflict("Email already exists")
	} else if !errors.Is(err, models.ErrNotFound) {
		return fmt.Errorf("lookup email: %w", err)
	}

	if _, err := s.users.GetUserByUsername(ctx, username); err == nil {
		return models.Conflict("Username already exists")
	} else if !errors.Is(err, models.ErrNotFound) {
		return fmt.Errorf("lookup username: %w", err)
	}
	return nil
}

// Login checks credentials and issues a session token. Unknown emails and
// wrong passwords fail identically.
func (s *Service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = normalizeEmail(email)
	ip := logging.ClientIPFromContext(ctx)

	user, err := s.users.GetUserByEmail(ctx, email)
	if errors.Is(err, models.ErrNotFound) {
		s.security.LogLoginFailure(email, ip, "unknown email")
		return nil, models.Unauthorized(msgInvalidCredentials)
	}
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	if !s.passwords.Verify(user.PasswordHash, password) {
		s.security.LogLoginFailure(email, ip, "password mismatch")
		return nil, models.Unauthorized(msgInvalidCredentials)
	}

	token, err := s.tokens.GenerateToken(user.ID)
	if err != nil {
		return nil, err
	}

	s.security.LogLoginSuccess(user.ID, email, ip)
	return &LoginResult{
		Token:     token,
		ExpiresIn: int64(s.tokens.Timeout().Seconds()),
		User:      user,
	}, nil
}

// Profile returns the user. The password hash is never serialized.
func (s *Service) Profile(ctx context.Context, userID string) (*models.User, error) {
	return s.users.GetUser(ctx, userID)
}

// UpdateProfile applies the non-empty fields of upd.
func (s *Service) UpdateProfile(ctx context.Context, userID string, upd models.ProfileUpdate) (*models.User, error) {
	if len(upd.FavoriteFilms) > models.MaxFavoriteFilms {
		return nil, models.Validation(fmt.Sprintf("Maximum %d favorite films allowed", models.MaxFavoriteFilms))
	}

	upd.Username = strings.TrimSpace(upd.Username)
	upd.Location = strings.TrimSpace(upd.Location)
	upd.Bio = strings.TrimSpace(upd.Bio)
	upd.ProfilePicture = strings.TrimSpace(upd.ProfilePicture)

	user, err := s.users.UpdateProfile(ctx, userID, upd)
	if err != nil {
		return nil, err
	}

	logging.Ctx(ctx).Info().Str("user_id", userID).Msg("Profile updated")
	return user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
