// SilverScreened - Movie Social Tracking and Recommendations
// Copyright 2026 Saphal Katuwal
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/SaphalKatuwal/SilverScreened

// Package recommend builds the two personalized movie lists served by
// /api/recommendations.
//
// # Social
//
// Social recommendations come from the people a user follows: every movie
// they have watched, then every movie they reviewed highly, in follow order.
// Duplicates and movies the requesting user has already watched are
// removed, and details for the first SocialLimit candidates are fetched
// from the catalog in parallel.
//
// # Genre
//
// Genre recommendations look at the user's most recent distinct
// interactions (watched entries and reviews), count the genres of those
// movies, and ask the catalog to discover popular titles in the top
// genres. Ties between equally frequent genres keep the order in which
// the genres were first encountered.
//
// # Failure Model
//
// Both paths are all-or-nothing. The first failed catalog call cancels the
// remaining fetches and the whole request fails; partial lists are never
// returned. Nothing is persisted.
//
// # Usage
//
//	agg, err := recommend.NewAggregator(usersService, gateway, recommend.FromSettings(&cfg.Recommend))
//	if err != nil {
//	    return err
//	}
//	result, err := agg.Recommend(ctx, userID)
package recommend
