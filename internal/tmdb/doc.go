// SilverScreened - Movie Social Tracking and Recommendations
// Copyright 2026 Saphal Katuwal
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/SaphalKatuwal/SilverScreened

/*
Package tmdb is the movie metadata gateway over TMDB's REST v3 API.

Gateway is the interface the rest of the server depends on. Three
implementations stack on top of each other:

  - Client speaks HTTP to TMDB. It authenticates with an api_key query
    parameter or a v4 read token, throttles itself with a token bucket and
    decodes responses with goccy/go-json.
  - CircuitBreakerGateway stops calling TMDB after sustained failures.
    A 404 counts as a successful call.
  - CachingGateway serves movie details from an in-process TTL cache,
    optionally backed by Redis. Lists and discover results are never
    cached, and neither are errors.

# Errors

A TMDB 404 returns an error matching models.ErrNotFound. Any other
non-2xx status, transport failure or open circuit returns
models.ErrUpstream.

# Discover

DiscoverFilter maps onto TMDB query parameters:

	GenreIDs   -> with_genres (comma joined, AND semantics)
	MinRating  -> vote_average.gte
	Decade     -> primary_release_date.gte / .lte for the ten years
	SortBy     -> sort_by (default popularity.desc)
*/
package tmdb
