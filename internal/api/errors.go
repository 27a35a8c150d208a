// SilverScreened - Movie Social Tracking and Recommendations
// Copyright 2026 Saphal Katuwal
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/SaphalKatuwal/SilverScreened

package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/SaphalKatuwal/SilverScreened/internal/logging"
	"github.com/SaphalKatuwal/SilverScreened/internal/models"
	"github.com/SaphalKatuwal/SilverScreened/internal/storage"
)

// errorStatus maps an error kind to its HTTP status and code.
type errorStatus struct {
	kind   error
	status int
	code   string
}

var errorStatuses = []errorStatus{
	{models.ErrValidation, http.StatusBadRequest, ErrCodeBadRequest},
	{models.ErrUnauthorized, http.StatusUnauthorized, ErrCodeUnauthorized},
	{models.ErrForbidden, http.StatusForbidden, ErrCodeForbidden},
	{models.ErrNotFound, http.StatusNotFound, ErrCodeNotFound},
	{models.ErrConflict, http.StatusConflict, ErrCodeConflict},
	{models.ErrUpstream, http.StatusBadGateway, ErrCodeExternalServiceFail},
}

// respondServiceError writes err using the models error taxonomy.
// Unclassified errors are logged and hidden behind DATABASE_ERROR.
func respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	rw := NewResponseWriter(w, r)

	if errors.Is(err, storage.ErrDisabled) {
		rw.ServiceUnavailable("Profile picture uploads are not configured")
		return
	}
	if errors.Is(err, context.DeadlineExceeded) {
		rw.Error(http.StatusGatewayTimeout, ErrCodeExternalServiceFail, "Request timed out")
		return
	}

	s, ok := classify(err)
	if !ok {
		rw.DatabaseError(err)
		return
	}
	if s.status >= http.StatusInternalServerError {
		logging.CtxErr(r.Context(), err).Str("path", r.URL.Path).Msg("Upstream failure")
	}
	rw.Error(s.status, s.code, models.Message(err))
}

// classify picks the status for err. The outermost *models.Error decides,
// so an upstream failure caused by a TMDB 404 stays an upstream failure.
func classify(err error) (errorStatus, bool) {
	var e *models.Error
	if errors.As(err, &e) {
		for _, s := range errorStatuses {
			if e.Kind == s.kind {
				return s, true
			}
		}
	}
	for _, s := range errorStatuses {
		if errors.Is(err, s.kind) {
			return s, true
		}
	}
	return errorStatus{}, false
}
