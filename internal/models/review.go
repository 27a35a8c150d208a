// SilverScreened - Movie Social Tracking and Recommendations
// Copyright 2026 Saphal Katuwal
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/SaphalKatuwal/SilverScreened

package models

import "time"

// Review is a user's rated comment on a movie.
type Review struct {
	ID        string       `json:"id"`
	UserID    string       `json:"userId"`
	MovieID   string       `json:"movieId"`
	Rating    int          `json:"rating"`
	Comment   string       `json:"comment"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
	Author    *UserSummary `json:"author,omitempty"`
}

// ReviewUpdate holds optional review changes.
type ReviewUpdate struct {
	Rating  *int
	Comment *string
}
