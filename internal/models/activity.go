// SilverScreened - Movie Social Tracking and Recommendations
// Copyright 2026 Saphal Katuwal
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/SaphalKatuwal/SilverScreened

package models

import "time"

// ActivityType names what happened.
type ActivityType string

const (
	ActivityWatch     ActivityType = "watch"
	ActivityWatchlist ActivityType = "watchlist"
	ActivityReview    ActivityType = "review"
	ActivityRating    ActivityType = "rating"
	ActivityFollow    ActivityType = "follow"
)

// Activity is published on the event bus and returned by the activity feed.
type Activity struct {
	ID           string       `json:"id"`
	Type         ActivityType `json:"type"`
	UserID       string       `json:"userId"`
	MovieID      string       `json:"movieId,omitempty"`
	MovieTitle   string       `json:"movieTitle,omitempty"`
	TargetUserID string       `json:"targetUserId,omitempty"`
	Rating       int          `json:"rating,omitempty"`
	OccurredAt   time.Time    `json:"timestamp"`
}
