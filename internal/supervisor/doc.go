// SilverScreened - Movie Social Tracking and Recommendations
// Copyright 2026 Saphal Katuwal
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/SaphalKatuwal/SilverScreened

/*
Package supervisor runs the long-lived parts of SilverScreened under a
suture v4 supervisor tree.

# Overview

Services are grouped into two layers so a failing websocket or event
consumer never takes the HTTP API down with it:

	RootSupervisor ("silverscreened")
	├── MessagingSupervisor ("messaging-layer")
	│   ├── ActivityHubService (websocket hub)
	│   └── events.Router (watermill consumer feeding the hub)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

Crashed services restart with suture's backoff. Cancelling the context
passed to Serve shuts the tree down, waiting up to ShutdownTimeout per
service.

# Usage

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
	    ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	tree.AddMessagingService(services.NewActivityHubService(hub))
	tree.AddMessagingService(router)
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	err = tree.Serve(ctx)

Supervisor events (start, failure, backoff) are logged through sutureslog,
which writes to the zerolog-backed slog handler from internal/logging.
*/
package supervisor
