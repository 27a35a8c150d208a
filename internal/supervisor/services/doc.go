// SilverScreened - Movie Social Tracking and Recommendations
// Copyright 2026 Saphal Katuwal
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/SaphalKatuwal/SilverScreened

/*
Package services adapts SilverScreened components to suture.Service.

  - HTTPServerService runs an *http.Server and shuts it down gracefully
    when the supervisor context ends.
  - ActivityHubService runs the websocket hub that pushes followed users'
    activity to connected clients.

The event router in internal/events implements suture.Service itself and
is added to the tree directly.
*/
package services
