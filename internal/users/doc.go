// SilverScreened - Movie Social Tracking and Recommendations
// Copyright 2026 Saphal Katuwal
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/SaphalKatuwal/SilverScreened

/*
Package users is the user directory: accounts, profiles, the watchlist and
watched log, per-movie ratings and the follow graph.

The Service sits on database.UserStore and database.ReviewStore. It
resolves movie titles through a Catalog (usually the cached TMDB gateway)
and, when a publisher is set, emits an activity event for every watch,
watchlist addition, rating and follow.

Key Operations:

  - Register, Login: bcrypt password hashes and HS256 session tokens
  - Profile, UpdateProfile: at most five favorite films, unique usernames
  - AddToWatchlist, RemoveFromWatchlist, MarkWatched: set semantics
  - Rate, Rating: one rating per movie, 0 when unrated
  - Follow, Unfollow, Friends, Followers, Suggested
  - WatchedDetails: paginated watched log with movie details
  - Activity: the five most recent watch, watchlist and review entries
  - UserWithFollowing, UserWithReviews: the recommendation inputs

Errors carry models error kinds (NotFound, Validation, Conflict,
Unauthorized) so the HTTP layer can map them to status codes.
*/
package users
