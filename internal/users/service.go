// SilverScreened - Movie Social Tracking and Recommendations
// Copyright 2026 Saphal Katuwal
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/SaphalKatuwal/SilverScreened

package users

import (
	"context"
	"time"

	"github.com/SaphalKatuwal/SilverScreened/internal/auth"
	"github.com/SaphalKatuwal/SilverScreened/internal/database"
	"github.com/SaphalKatuwal/SilverScreened/internal/events"
	"github.com/SaphalKatuwal/SilverScreened/internal/logging"
	"github.com/SaphalKatuwal/SilverScreened/internal/models"
)

// Catalog resolves movie details.
type Catalog interface {
	MovieDetail(ctx context.Context, id string) (*models.MovieDetail, error)
}

// Config holds list sizes and fan-out limits.
type Config struct {
	DefaultPageSize int
	MaxPageSize     int
	MaxConcurrency  int
	SuggestedLimit  int
	ActivityLimit   int
}

// DefaultConfig returns production defaults.
func DefaultConfig() Config {
	return Config{
		DefaultPageSize: 10,
		MaxPageSize:     50,
		MaxConcurrency:  10,
		SuggestedLimit:  5,
		ActivityLimit:   5,
	}
}

// Service implements the user directory.
type Service struct {
	users     database.UserStore
	reviews   database.ReviewStore
	catalog   Catalog
	tokens    *auth.JWTManager
	passwords *auth.PasswordHasher
	publisher events.Publisher
	security  *logging.SecurityLogger
	cfg       Config
	now       func() time.Time
}

// NewService creates the user directory. Zero config values take defaults.
func NewService(
	users database.UserStore,
	reviews database.ReviewStore,
	catalog Catalog,
	tokens *auth.JWTManager,
	passwords *auth.PasswordHasher,
	cfg Config,
) *Service {
	def := DefaultConfig()
	if cfg.DefaultPageSize <= 0 {
		cfg.DefaultPageSize = def.DefaultPageSize
	}
	if cfg.MaxPageSize <= 0 {
		cfg.MaxPageSize = def.MaxPageSize
	}
	if cfg.MaxConcurrency <= 0 {
		cfg.MaxConcurrency = def.MaxConcurrency
	}
	if cfg.SuggestedLimit <= 0 {
		cfg.SuggestedLimit = def.SuggestedLimit
	}
	if cfg.ActivityLimit <= 0 {
		cfg.ActivityLimit = def.ActivityLimit
	}

	return &Service{
		users:     users,
		reviews:   reviews,
		catalog:   catalog,
		tokens:    tokens,
		passwords: passwords,
		security:  logging.NewSecurityLogger(),
		cfg:       cfg,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// SetPublisher enables activity events.
func (s *Service) SetPublisher(p events.Publisher) {
	s.publisher = p
}

// publish emits activity best-effort; the bus logs its own failures.
func (s *Service) publish(ctx context.Context, activity *models.Activity) {
	if s.publisher == nil {
		return
	}
	_ = s.publisher.Publish(ctx, activity)
}
