// SilverScreened - Movie Social Tracking and Recommendations
// Copyright 2026 Saphal Katuwal
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/SaphalKatuwal/SilverScreened

package recommend

import (
	"fmt"
	"time"

	"github.com/SaphalKatuwal/SilverScreened/internal/config"
)

// Config tunes the aggregator.
type Config struct {
	// SocialLimit caps the social list.
	SocialLimit int `json:"social_limit"`

	// GenreSeedLimit is how many distinct recent interactions feed the
	// genre count.
	GenreSeedLimit int `json:"genre_seed_limit"`

	// TopGenres is how many genres are passed to discover.
	TopGenres int `json:"top_genres"`

	// GenreLimit caps the genre list.
	GenreLimit int `json:"genre_limit"`

	// HighRating is the minimum review rating that makes a followed user's
	// review a social candidate.
	HighRating int `json:"high_rating"`

	// MaxConcurrency bounds parallel catalog calls per request.
	MaxConcurrency int `json:"max_concurrency"`

	// Timeout bounds a full Recommend call.
	Timeout time.Duration `json:"timeout"`
}

// DefaultConfig returns the production defaults.
func DefaultConfig() *Config {
	return &Config{
		SocialLimit:    10,
		GenreSeedLimit: 10,
		TopGenres:      3,
		GenreLimit:     10,
		HighRating:     4,
		MaxConcurrency: 10,
		Timeout:        15 * time.Second,
	}
}

// FromSettings converts the application configuration section.
func FromSettings(s *config.RecommendConfig) *Config {
	if s == nil {
		return DefaultConfig()
	}
	return &Config{
		SocialLimit:    s.SocialLimit,
		GenreSeedLimit: s.GenreSeedLimit,
		TopGenres:      s.TopGenres,
		GenreLimit:     s.GenreLimit,
		HighRating:     s.HighRating,
		MaxConcurrency: s.MaxConcurrency,
		Timeout:        s.Timeout,
	}
}

// Validate checks that every limit is positive.
func (c *Config) Validate() error {
	checks := []struct {
		name  string
		value int
	}{
		{"social_limit", c.SocialLimit},
		{"genre_seed_limit", c.GenreSeedLimit},
		{"top_genres", c.TopGenres},
		{"genre_limit", c.GenreLimit},
		{"high_rating", c.HighRating},
		{"max_concurrency", c.MaxConcurrency},
	}
	for _, chk := range checks {
		if chk.value <= 0 {
			return fmt.Errorf("%s must be positive, got %d", chk.name, chk.value)
		}
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %v", c.Timeout)
	}
	return nil
}
