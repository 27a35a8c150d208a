// SilverScreened - Movie Social Tracking and Recommendations
// Copyright 2026 Saphal Katuwal
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/SaphalKatuwal/SilverScreened

package database

import (
	"errors"
	"time"

	"github.com/SaphalKatuwal/SilverScreened/internal/metrics"
	"github.com/SaphalKatuwal/SilverScreened/internal/models"
)

// Messages shared by both backends.
const (
	msgUserNotFound   = "User not found"
	msgReviewNotFound = "Review not found"
	msgEmailTaken     = "Email already exists"
	msgUsernameTaken  = "Username already exists"
)

// observe records an operation's latency. Classified errors such as
// not found do not count as failures.
func observe(operation, collection string, start time.Time, errp *error) {
	var err error
	if errp != nil {
		err = *errp
	}
	var classified *models.Error
	if errors.As(err, &classified) {
		err = nil
	}
	metrics.RecordDBOperation(operation, collection, time.Since(start), err)
}
