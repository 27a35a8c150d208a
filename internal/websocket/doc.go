// SilverScreened - Movie Social Tracking and Recommendations
// Copyright 2026 Saphal Katuwal
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/SaphalKatuwal/SilverScreened

/*
Package websocket streams activity of followed users to connected clients.

Key Components:

  - Hub: tracks connected clients per user ID and delivers pre-encoded
    payloads to every connection of a user
  - Client: one connection with a read pump (client pings, pong deadline)
    and a write pump (queued payloads, keepalive pings)
  - Upgrader: gorilla/websocket upgrader whose origin check uses the CORS
    allow list

Architecture:

	events.Router ──► Fanout ──► Hub.SendToUser(followerID, payload)
	                               │
	                 ┌─────────────┼─────────────┐
	                 │             │             │
	             Client(ben)   Client(ben)   Client(cat)

A user may hold several connections (tabs, devices); each receives the
payload. A client whose send buffer is full is disconnected.

Message Types:

  - activity: {"type":"activity","data":<Activity>} pushed by the server
  - ping / pong: application-level keepalive initiated by the client

Usage Example:

	hub := websocket.NewHub()
	tree.AddMessagingService(services.NewWebSocketHubService(hub))

	upgrader := websocket.NewUpgrader(cfg.Security.CORSOrigins)
	r.Get("/api/users/activity/stream", func(w http.ResponseWriter, r *http.Request) {
	    userID, _ := auth.UserIDFromContext(r.Context())
	    if err := hub.Accept(w, r, userID, upgrader); err != nil {
	        return
	    }
	})
*/
package websocket
