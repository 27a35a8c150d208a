// SilverScreened - Movie Social Tracking and Recommendations
// Copyright 2026 Saphal Katuwal
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/SaphalKatuwal/SilverScreened

/*
Package middleware provides infrastructure HTTP middleware shared by every
route: request IDs, client IP capture and Prometheus instrumentation.

All middleware has the chi signature func(http.Handler) http.Handler and is
mounted globally by the API router:

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.ClientIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.PrometheusMetrics)

RequestID honours an incoming X-Request-ID header, echoes it on the response
and stores it in the request context together with a fresh correlation ID,
so logging.Ctx(ctx) loggers carry both.

ClientIP copies the remote address (already rewritten by chi's RealIP) into
the logging context. Security logs such as failed logins use it.

PrometheusMetrics labels requests by chi route pattern rather than raw path,
keeping label cardinality bounded for routes like /api/movies/{id}.
*/
package middleware
