// SilverScreened - Movie Social Tracking and Recommendations
// Copyright 2026 Saphal Katuwal
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/SaphalKatuwal/SilverScreened

// Package reviews manages movie reviews. Only the author may edit or
// delete a review; listings attach the author's public summary.
package reviews
