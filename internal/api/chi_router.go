// SilverScreened - Movie Social Tracking and Recommendations
// Copyright 2026 Saphal Katuwal
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/SaphalKatuwal/SilverScreened

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/SaphalKatuwal/SilverScreened/internal/middleware"
)

// SetupChi configures all HTTP routes.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()
	r.NotFound(notFound)
	r.MethodNotAllowed(methodNotAllowed)

	// ========================
	// Global Middleware Stack
	// ========================
	r.Use(middleware.RequestID)        // X-Request-ID plus logging context
	r.Use(chimiddleware.RealIP)        // Extract real IP from X-Forwarded-For
	r.Use(middleware.ClientIP)         // Client IP into the logging context
	r.Use(RequestLogging())            // Debug-level access log
	r.Use(chimiddleware.Recoverer)     // Recover from panics
	r.Use(router.chiMiddleware.CORS()) // CORS must be global to handle OPTIONS preflight
	r.Use(chimiddleware.Compress(5, "application/json"))

	r.Get("/", router.handler.Root)
	r.Handle("/metrics", promhttp.Handler())

	// ========================
	// Health Endpoints
	// ========================
	r.Route("/api/health", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitHealth())
		r.Use(APISecurityHeaders())
		r.Get("/live", router.handler.HealthLive)
		r.Get("/ready", router.handler.HealthReady)
	})

	// ========================
	// Authentication Endpoints
	// ========================
	r.Route("/api/auth", func(r chi.Router) {
		r.Use(middleware.PrometheusMetrics)
		r.Use(APISecurityHeaders())
		r.Use(NoCache())

		r.With(router.chiMiddleware.RateLimitAuth()).Post("/register", router.handler.Register)
		r.With(router.chiMiddleware.RateLimitLogin()).Post("/login", router.handler.Login)
	})

	r.Route("/api/uploads", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitAuth())
		r.Use(middleware.PrometheusMetrics)
		r.Use(APISecurityHeaders())
		r.Post("/profile-picture", router.handler.PresignProfilePicture)
	})

	// ========================
	// User Endpoints
	// ========================
	r.Route("/api/users", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(middleware.PrometheusMetrics)
		r.Use(APISecurityHeaders())
		r.Use(NoCache())
		r.Use(router.middleware.Authenticate)

		r.Get("/profile", router.handler.Profile)
		r.Put("/profile", router.handler.UpdateProfile)

		r.Post("/watchlist/add", router.handler.AddToWatchlist)
		r.Post("/watchlist/remove", router.handler.RemoveFromWatchlist)
		r.Post("/watched", router.handler.MarkWatched)
		r.Get("/watched-details", router.handler.WatchedDetails)

		r.Post("/follow", router.handler.Follow)
		r.Post("/unfollow", router.handler.Unfollow)
		r.Get("/friends", router.handler.Friends)
		r.Get("/followers", router.handler.Followers)
		r.Get("/suggested", router.handler.Suggested)

		r.Get("/activity", router.handler.Activity)
		r.With(router.chiMiddleware.RateLimitWebSocket()).Get("/activity/stream", router.handler.ActivityStream)
	})

	// ========================
	// Movie Endpoints (TMDB proxy, public)
	// ========================
	r.Route("/api/movies", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(middleware.PrometheusMetrics)
		r.Use(APISecurityHeaders())

		r.Get("/search", router.handler.SearchMovies)
		r.Get("/popular", router.handler.PopularMovies)
		r.Get("/top-rated", router.handler.TopRatedMovies)
		r.Get("/discover", router.handler.DiscoverMovies)
		r.Get("/{id}", router.handler.MovieDetail)
	})

	// ========================
	// Review Endpoints
	// ========================
	r.Route("/api/reviews", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(middleware.PrometheusMetrics)
		r.Use(APISecurityHeaders())

		r.Get("/movie/{movieId}", router.handler.MovieReviews)

		r.Group(func(r chi.Router) {
			r.Use(router.middleware.Authenticate)
			r.Post("/", router.handler.CreateReview)
			r.Put("/{id}", router.handler.UpdateReview)
			r.Delete("/{id}", router.handler.DeleteReview)
		})
	})

	// ========================
	// Ratings and Recommendations
	// ========================
	r.Route("/api/ratings", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(middleware.PrometheusMetrics)
		r.Use(APISecurityHeaders())
		r.Use(NoCache())
		r.Use(router.middleware.Authenticate)

		r.Post("/", router.handler.Rate)
		r.Get("/{movieId}", router.handler.Rating)
	})

	r.Route("/api/recommendations", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(middleware.PrometheusMetrics)
		r.Use(APISecurityHeaders())
		r.Use(NoCache())
		r.Use(router.middleware.Authenticate)

		r.Get("/", router.handler.Recommendations)
	})

	return r
}
