// SilverScreened - Movie Social Tracking and Recommendations
// Copyright 2026 Saphal Katuwal
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/SaphalKatuwal/SilverScreened

package tmdb

import (
	"context"
	"errors"
	"time"

	"github.com/goccy/go-json"

	"github.com/SaphalKatuwal/SilverScreened/internal/cache"
	"github.com/SaphalKatuwal/SilverScreened/internal/logging"
	"github.com/SaphalKatuwal/SilverScreened/internal/models"
)

// CachingGateway is a read-through cache for movie details. Entries live
// for the configured TTL, which bounds how stale a detail can be.
type CachingGateway struct {
	next   Gateway
	local  *cache.Cache
	remote *cache.RedisCache
	ttl    time.Duration
}

// NewCachingGateway caches next's movie details for ttl. remote is
// optional and consulted after a local miss.
func NewCachingGateway(next Gateway, ttl time.Duration, remote *cache.RedisCache) *CachingGateway {
	return &CachingGateway{
		next:   next,
		local:  cache.New("tmdb_detail", ttl),
		remote: remote,
		ttl:    ttl,
	}
}

// Close stops the local cache's cleanup goroutine.
func (g *CachingGateway) Close() {
	g.local.Close()
}

func (g *CachingGateway) detail(ctx context.Context, key string, fetch func() (*models.MovieDetail, error)) (*models.MovieDetail, error) {
	if v, ok := g.local.Get(key); ok {
		return v.(*models.MovieDetail), nil
	}

	if g.remote != nil {
		if d, ok := g.remoteGet(ctx, key); ok {
			g.local.Set(key, d)
			return d, nil
		}
	}

	d, err := fetch()
	if err != nil {
		return nil, err
	}

	g.local.Set(key, d)
	if g.remote != nil {
		g.remoteSet(ctx, key, d)
	}
	return d, nil
}

func (g *CachingGateway) remoteGet(ctx context.Context, key string) (*models.MovieDetail, bool) {
	data, err := g.remote.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, cache.ErrMiss) {
			logging.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("Redis detail lookup failed")
		}
		return nil, false
	}
	var d models.MovieDetail
	if err := json.Unmarshal(data, &d); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("Discarding undecodable cached detail")
		return nil, false
	}
	return &d, true
}

func (g *CachingGateway) remoteSet(ctx context.Context, key string, d *models.MovieDetail) {
	data, err := json.Marshal(d)
	if err != nil {
		return
	}
	if err := g.remote.Set(ctx, key, data, g.ttl); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("Redis detail store failed")
	}
}

// MovieDetail returns a cached detail or fetches and caches it.
func (g *CachingGateway) MovieDetail(ctx context.Context, id string) (*models.MovieDetail, error) {
	return g.detail(ctx, "movie:"+id, func() (*models.MovieDetail, error) {
		return g.next.MovieDetail(ctx, id)
	})
}

// MovieDetailFull returns a cached full detail or fetches and caches it.
func (g *CachingGateway) MovieDetailFull(ctx context.Context, id string) (*models.MovieDetail, error) {
	return g.detail(ctx, "movie_full:"+id, func() (*models.MovieDetail, error) {
		return g.next.MovieDetailFull(ctx, id)
	})
}

// Search is not cached.
func (g *CachingGateway) Search(ctx context.Context, query string, page int) (*models.MoviePage, error) {
	return g.next.Search(ctx, query, page)
}

// Popular is not cached.
func (g *CachingGateway) Popular(ctx context.Context, page int) (*models.MoviePage, error) {
	return g.next.Popular(ctx, page)
}

// TopRated is not cached.
func (g *CachingGateway) TopRated(ctx context.Context, page int) (*models.MoviePage, error) {
	return g.next.TopRated(ctx, page)
}

// Discover is not cached.
func (g *CachingGateway) Discover(ctx context.Context, filter DiscoverFilter) (*models.MoviePage, error) {
	return g.next.Discover(ctx, filter)
}

// Ping is not cached.
func (g *CachingGateway) Ping(ctx context.Context) error {
	return g.next.Ping(ctx)
}

var _ Gateway = (*CachingGateway)(nil)
