// SilverScreened - Movie Social Tracking and Recommendations
// Copyright 2026 Saphal Katuwal
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/SaphalKatuwal/SilverScreened

/*
Package api provides the HTTP REST API layer for SilverScreened.

Every JSON endpoint answers with the same envelope:

	{
	  "success": true,
	  "data": {...},
	  "meta": {"request_id": "...", "timestamp": "...", "duration_ms": 3}
	}

Failures set success to false and carry an error object with a
machine-readable code, a human-readable message and the request ID.

Route Groups:

  - /api/health: liveness and readiness probes
  - /api/auth: registration and login (strict rate limit)
  - /api/uploads: presigned profile picture uploads (strict rate limit)
  - /api/users: profile, lists, social graph and the live activity stream
  - /api/movies: TMDB-backed search, lists, discover and details
  - /api/reviews: movie reviews
  - /api/ratings: per-user star ratings
  - /api/recommendations: social and genre recommendations

Error Mapping:

Service errors are classified with errors.Is against the kinds in
internal/models and mapped to 400, 401, 403, 404, 409 or 502. Anything
unclassified is logged and reported as a 500 DATABASE_ERROR without the
cause. The recommendations endpoint is the exception: any failure is a
500 that carries the underlying message.

Usage:

	handler := api.NewHandler(deps)
	router := api.NewRouter(handler, authMiddleware, cfg)
	srv := &http.Server{Handler: router.SetupChi()}
*/
package api
