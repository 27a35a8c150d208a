// SilverScreened - Movie Social Tracking and Recommendations
// Copyright 2026 Saphal Katuwal
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/SaphalKatuwal/SilverScreened

package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/SaphalKatuwal/SilverScreened/internal/api"
	"github.com/SaphalKatuwal/SilverScreened/internal/auth"
	"github.com/SaphalKatuwal/SilverScreened/internal/config"
	"github.com/SaphalKatuwal/SilverScreened/internal/events"
	"github.com/SaphalKatuwal/SilverScreened/internal/logging"
	"github.com/SaphalKatuwal/SilverScreened/internal/metrics"
	"github.com/SaphalKatuwal/SilverScreened/internal/recommend"
	"github.com/SaphalKatuwal/SilverScreened/internal/reviews"
	"github.com/SaphalKatuwal/SilverScreened/internal/supervisor"
	"github.com/SaphalKatuwal/SilverScreened/internal/supervisor/services"
	"github.com/SaphalKatuwal/SilverScreened/internal/users"
	ws "github.com/SaphalKatuwal/SilverScreened/internal/websocket"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

//nolint:gocyclo // sequential setup
func main() {
	cfg, err := config.LoadWithKoanf()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	metrics.SetAppInfo(version)
	logging.Info().
		Str("version", version).
		Str("environment", cfg.Server.Environment).
		Str("db_driver", cfg.Database.Driver).
		Msg("Starting SilverScreened")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, err := openStore(ctx, &cfg.Database)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer func() {
		if err := store.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}()
	logging.Info().Msg("Database initialized successfully")

	gateway, closeGateway := buildGateway(ctx, cfg)
	defer closeGateway()
	if err := gateway.Ping(ctx); err != nil {
		logging.Warn().Err(err).Msg("TMDB is not reachable yet; movie endpoints will fail until it is")
	}

	jwtManager, err := auth.NewJWTManager(&cfg.Security)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize JWT manager")
	}
	authMiddleware := auth.NewMiddleware(jwtManager, api.Unauthorized)

	if cfg.Security.RateLimitDisabled {
		logging.Warn().Msg("Rate limiting is DISABLED (DISABLE_RATE_LIMIT=true)")
	}
	if cfg.ShouldWarnAboutCORS() {
		logging.Warn().Msg("CORS allows any origin; set CORS_ORIGINS in production")
	}

	userSvc := users.NewService(store, store, gateway, jwtManager,
		auth.NewPasswordHasher(cfg.Security.BcryptCost),
		users.Config{
			DefaultPageSize: cfg.API.DefaultPageSize,
			MaxPageSize:     cfg.API.MaxPageSize,
		})
	reviewSvc := reviews.NewService(store, store)

	aggregator, err := recommend.NewAggregator(userSvc, gateway, recommend.FromSettings(&cfg.Recommend))
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize recommendation aggregator")
	}

	bus, err := events.NewBus(&cfg.Events, events.NewLogger())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize event bus")
	}
	defer func() {
		if err := bus.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing event bus")
		}
	}()
	userSvc.SetPublisher(bus)
	reviewSvc.SetPublisher(bus)

	hub := ws.NewHub()
	activityRouter := events.NewRouter(bus, events.NewFanout(userSvc, hub).Handle)

	handler := api.NewHandler(api.Deps{
		Users:       userSvc,
		Reviews:     reviewSvc,
		Movies:      gateway,
		Recommender: aggregator,
		Presigner:   buildPresigner(ctx, &cfg.Storage),
		Hub:         hub,
		Store:       store,
		CORSOrigins: cfg.Security.CORSOrigins,
	})
	router := api.NewRouter(handler, authMiddleware, cfg)
	server := services.NewHTTPServer(&cfg.Server, router.SetupChi())

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	tree.AddMessagingService(services.NewActivityHubService(hub))
	tree.AddMessagingService(activityRouter)
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Str("addr", server.Addr).Msg("Starting supervisor tree")
	errCh := tree.ServeBackground(ctx)

	// Receives exactly once, when the root supervisor returns.
	if err := <-errCh; err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("Supervisor tree error")
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
	}

	logging.Info().Msg("Application stopped gracefully")
}
