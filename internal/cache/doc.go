// SilverScreened - Movie Social Tracking and Recommendations
// Copyright 2026 Saphal Katuwal
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/SaphalKatuwal/SilverScreened

/*
Package cache provides the two tiers behind the movie detail read-through
cache.

Cache is an in-process TTL map guarded by a RWMutex. A background
goroutine removes expired entries until Close is called. Hits, misses,
evictions and size are mirrored to the cache_* Prometheus collectors
under the cache's name.

RedisCache is an optional shared tier on go-redis. It stores opaque byte
values under a key prefix, so several API instances can share fetched
movie details. A Redis miss is reported as ErrMiss; connection failures
are returned as-is so callers can fall through to the origin.

	local := cache.New("movie_detail", 10*time.Minute)
	defer local.Close()

	remote, err := cache.NewRedisCache(ctx, "redis://localhost:6379/0", "silverscreened:")
*/
package cache
