// SilverScreened - Movie Social Tracking and Recommendations
// Copyright 2026 Saphal Katuwal
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/SaphalKatuwal/SilverScreened

/*
Package models defines the records shared across SilverScreened.

Stored records:

  - User: account, profile, watchlist, watched log, ratings and the
    following list. Followers and reviews are derived, never stored here.
  - Review: a rated comment on one movie, owned by one user.

External records, shaped after TMDB's JSON:

  - MovieDetail: a single movie from /movie/{id}
  - MovieSummary: an item of a search, list or discover page
  - MoviePage: one page of MovieSummary results

Activity is the event published when a user interacts with a movie or
another user.

Errors returned by services are classified with the sentinel kinds in
errors.go (ErrNotFound, ErrValidation and so on) and tested with
errors.Is.
*/
package models
