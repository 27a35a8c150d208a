// SilverScreened - Movie Social Tracking and Recommendations
// Copyright 2026 Saphal Katuwal
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/SaphalKatuwal/SilverScreened

/*
Package main is the entry point for the SilverScreened backend.

SilverScreened lets users keep a watchlist and a watched history, rate and
review films pulled from TMDB, follow each other, and receive social and
genre-based recommendations.

# Application Architecture

Long-running components run under a Suture v4 supervisor tree:

	RootSupervisor ("silverscreened")
	├── MessagingSupervisor ("messaging-layer")
	│   ├── Activity hub (websocket fan-out)
	│   └── Activity router (watermill consumer)
	└── APISupervisor ("api-layer")
	    └── HTTP Server

Component initialization order:

 1. Configuration: Koanf v2 with defaults, .env, config.yaml and environment
 2. Logging: zerolog, bridged to slog for the supervisor
 3. Database: MongoDB or BadgerDB behind database.Store
 4. TMDB gateway: rate-limited client, circuit breaker, detail cache
 5. Events: watermill bus (in-process GoChannel or NATS)
 6. Services: user directory, review store, recommendation aggregator
 7. HTTP: chi router, served by the supervised HTTP server

# Configuration

Common environment variables:

	PORT=5000
	JWT_SECRET=...                 # 32+ characters
	DB_DRIVER=mongo                # or badger
	MONGO_URI=mongodb://localhost:27017
	TMDB_API_KEY=...
	CACHE_REDIS_URL=redis://localhost:6379/0   # optional
	EVENTS_NATS_URL=nats://localhost:4222      # optional
	STORAGE_ENABLED=true                       # S3 profile picture uploads

# Signal Handling

SIGINT and SIGTERM cancel the root context. The HTTP server drains open
requests, the hub closes its websockets, and the database is closed last.
*/
package main
