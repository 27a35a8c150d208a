// SilverScreened - Movie Social Tracking and Recommendations
// Copyright 2026 Saphal Katuwal
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/SaphalKatuwal/SilverScreened

/*
Package validation validates request structs with go-playground/validator.

A single validator instance is created on first use and caches struct
metadata. Field names in messages come from the json tag so they match
what the client sent.

Custom tags:

  - movieid: a TMDB movie ID, i.e. 1 to 10 decimal digits

Example:

	type addWatchlistRequest struct {
	    MovieID string `json:"movieId" validate:"required,movieid"`
	}

	if verr := validation.ValidateStruct(&req); verr != nil {
	    api.NewResponseWriter(w, r).ValidationError(verr)
	    return
	}
*/
package validation
