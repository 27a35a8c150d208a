// SilverScreened - Movie Social Tracking and Recommendations
// Copyright 2026 Saphal Katuwal
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/SaphalKatuwal/SilverScreened

package events

import (
	"context"
	"fmt"

	"github.com/goccy/go-json"

	"github.com/SaphalKatuwal/SilverScreened/internal/logging"
	"github.com/SaphalKatuwal/SilverScreened/internal/metrics"
	"github.com/SaphalKatuwal/SilverScreened/internal/models"
)

// MessageTypeActivity is the envelope type pushed to websocket clients.
const MessageTypeActivity = "activity"

// FollowerSource resolves who follows a user.
type FollowerSource interface {
	Followers(ctx context.Context, userID string) ([]models.UserSummary, error)
}

// Sender delivers a payload to every connection of a user and reports
// how many connections received it.
type Sender interface {
	SendToUser(userID string, payload []byte) int
}

// Envelope is the websocket message shape.
type Envelope struct {
	Type string           `json:"type"`
	Data *models.Activity `json:"data"`
}

// Fanout pushes each activity to the actor's connected followers.
type Fanout struct {
	followers FollowerSource
	sender    Sender
}

// NewFanout creates a Fanout.
func NewFanout(followers FollowerSource, sender Sender) *Fanout {
	return &Fanout{followers: followers, sender: sender}
}

// Handle is a HandlerFunc.
func (f *Fanout) Handle(ctx context.Context, activity *models.Activity) error {
	followers, err := f.followers.Followers(ctx, activity.UserID)
	if err != nil {
		return fmt.Errorf("resolve followers of %s: %w", activity.UserID, err)
	}
	if len(followers) == 0 {
		return nil
	}

	payload, err := json.Marshal(Envelope{Type: MessageTypeActivity, Data: activity})
	if err != nil {
		return fmt.Errorf("encode activity: %w", err)
	}

	delivered := 0
	for _, follower := range followers {
		delivered += f.sender.SendToUser(follower.ID, payload)
	}
	if delivered > 0 {
		metrics.EventsDelivered.Add(float64(delivered))
	}

	logging.Ctx(ctx).Debug().
		Str("type", string(activity.Type)).
		Str("user_id", activity.UserID).
		Int("followers", len(followers)).
		Int("delivered", delivered).
		Msg("Activity fanned out")
	return nil
}
