// SilverScreened - Movie Social Tracking and Recommendations
// Copyright 2026 Saphal Katuwal
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/SaphalKatuwal/SilverScreened

package main

import (
	"context"
	"errors"

	"github.com/SaphalKatuwal/SilverScreened/internal/api"
	"github.com/SaphalKatuwal/SilverScreened/internal/cache"
	"github.com/SaphalKatuwal/SilverScreened/internal/config"
	"github.com/SaphalKatuwal/SilverScreened/internal/database"
	"github.com/SaphalKatuwal/SilverScreened/internal/logging"
	"github.com/SaphalKatuwal/SilverScreened/internal/storage"
	"github.com/SaphalKatuwal/SilverScreened/internal/tmdb"
)

func openStore(ctx context.Context, cfg *config.DatabaseConfig) (database.Store, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()
	return database.Open(ctx, cfg)
}

// buildGateway stacks the TMDB client, circuit breaker and detail cache.
// The returned func releases the cache resources.
func buildGateway(ctx context.Context, cfg *config.Config) (tmdb.Gateway, func()) {
	var gateway tmdb.Gateway = tmdb.NewCircuitBreakerGateway(tmdb.NewClient(&cfg.TMDB))
	if cfg.Cache.DetailTTL <= 0 {
		return gateway, func() {}
	}

	var remote *cache.RedisCache
	if cfg.Cache.RedisURL != "" {
		r, err := cache.NewRedisCache(ctx, cfg.Cache.RedisURL, cfg.Cache.RedisPrefix)
		if err != nil {
			logging.Warn().Err(err).Msg("Redis unavailable; using the in-process detail cache only")
		} else {
			remote = r
		}
	}

	caching := tmdb.NewCachingGateway(gateway, cfg.Cache.DetailTTL, remote)
	return caching, func() {
		caching.Close()
		if remote != nil {
			_ = remote.Close()
		}
	}
}

// buildPresigner returns nil when uploads are disabled or misconfigured,
// which turns the upload endpoint into a 503.
func buildPresigner(ctx context.Context, cfg *config.StorageConfig) api.UploadPresigner {
	p, err := storage.NewPresigner(ctx, cfg)
	if errors.Is(err, storage.ErrDisabled) {
		logging.Info().Msg("Profile picture uploads disabled")
		return nil
	}
	if err != nil {
		logging.Error().Err(err).Msg("Failed to initialize S3 presigner; uploads disabled")
		return nil
	}
	return p
}
