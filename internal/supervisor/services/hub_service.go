// SilverScreened - Movie Social Tracking and Recommendations
// Copyright 2026 Saphal Katuwal
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/SaphalKatuwal/SilverScreened

package services

import (
	"context"
)

// ContextHub matches *websocket.Hub's run loop.
type ContextHub interface {
	RunWithContext(ctx context.Context) error
}

// ActivityHubService runs the activity websocket hub under suture.
//
//	hub := websocket.NewHub()
//	tree.AddMessagingService(services.NewActivityHubService(hub))
type ActivityHubService struct {
	hub  ContextHub
	name string
}

// NewActivityHubService wraps hub.
func NewActivityHubService(hub ContextHub) *ActivityHubService {
	return &ActivityHubService{
		hub:  hub,
		name: "activity-hub",
	}
}

// Serve delegates to the hub, which closes every client on shutdown.
func (s *ActivityHubService) Serve(ctx context.Context) error {
	return s.hub.RunWithContext(ctx)
}

func (s *ActivityHubService) String() string {
	return s.name
}
