// SilverScreened - Movie Social Tracking and Recommendations
// Copyright 2026 Saphal Katuwal
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/SaphalKatuwal/SilverScreened

package api

import (
	"net/http"

	"github.com/SaphalKatuwal/SilverScreened/internal/logging"
	"github.com/SaphalKatuwal/SilverScreened/internal/models"
)

// Recommendations returns {social, genre} for the caller. Any failure is
// a 500 carrying the underlying message.
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	result, err := h.recommender.Recommend(r.Context(), userID)
	if err != nil {
		logging.CtxErr(r.Context(), err).Msg("Recommendations failed")
		NewResponseWriter(w, r).InternalError(models.Message(err))
		return
	}
	NewResponseWriter(w, r).Success(result)
}
