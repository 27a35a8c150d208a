// SilverScreened - Movie Social Tracking and Recommendations
// Copyright 2026 Saphal Katuwal
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/SaphalKatuwal/SilverScreened

package api

import (
	"context"
	"time"

	"github.com/gorilla/websocket"

	"github.com/SaphalKatuwal/SilverScreened/internal/recommend"
	"github.com/SaphalKatuwal/SilverScreened/internal/reviews"
	"github.com/SaphalKatuwal/SilverScreened/internal/storage"
	"github.com/SaphalKatuwal/SilverScreened/internal/tmdb"
	"github.com/SaphalKatuwal/SilverScreened/internal/users"
	ws "github.com/SaphalKatuwal/SilverScreened/internal/websocket"
)

// Pinger reports backend reachability for readiness probes.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Recommender produces the two recommendation lists for a user.
type Recommender interface {
	Recommend(ctx context.Context, userID string) (*recommend.Result, error)
}

// UploadPresigner issues direct-upload URLs for profile pictures.
type UploadPresigner interface {
	PresignProfilePicture(ctx context.Context, contentType string) (*storage.Upload, error)
}

// Deps are the collaborators of Handler. Store, Presigner and Hub may be
// nil; the endpoints that need them then answer 503.
type Deps struct {
	Users       *users.Service
	Reviews     *reviews.Service
	Movies      tmdb.Gateway
	Recommender Recommender
	Presigner   UploadPresigner
	Hub         *ws.Hub
	Store       Pinger
	CORSOrigins []string
}

// Handler contains dependencies for API handlers
//
// Handler methods are split across multiple files:
//   - handlers.go: Handler struct and constructor (this file)
//   - handlers_helpers.go: decoding, validation and parameter helpers
//   - handlers_health.go: root banner and health probes
//   - handlers_auth.go: registration, login and upload presigning
//   - handlers_users.go: profile, lists, follows and the activity feed
//   - handlers_movies.go: TMDB proxy endpoints
//   - handlers_reviews.go: review CRUD
//   - handlers_ratings.go: per-user ratings
//   - handlers_recommend.go: recommendations
type Handler struct {
	users       *users.Service
	reviews     *reviews.Service
	movies      tmdb.Gateway
	recommender Recommender
	presigner   UploadPresigner
	hub         *ws.Hub
	upgrader    *websocket.Upgrader
	store       Pinger
	startTime   time.Time
}

// NewHandler creates a new API handler.
//
// Example:
//
//	handler := api.NewHandler(api.Deps{Users: userSvc, Reviews: reviewSvc, Movies: gateway, Recommender: agg})
//	router := api.NewRouter(handler, authMiddleware, cfg)
//	http.ListenAndServe(":5000", router.SetupChi())
func NewHandler(deps Deps) *Handler {
	return &Handler{
		users:       deps.Users,
		reviews:     deps.Reviews,
		movies:      deps.Movies,
		recommender: deps.Recommender,
		presigner:   deps.Presigner,
		hub:         deps.Hub,
		upgrader:    ws.NewUpgrader(deps.CORSOrigins),
		store:       deps.Store,
		startTime:   time.Now(),
	}
}
