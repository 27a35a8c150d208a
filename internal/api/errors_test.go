// SilverScreened - Movie Social Tracking and Recommendations
// Copyright 2026 Saphal Katuwal
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/SaphalKatuwal/SilverScreened

package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"

	"github.com/SaphalKatuwal/SilverScreened/internal/models"
	"github.com/SaphalKatuwal/SilverScreened/internal/storage"
)

func TestRespondServiceError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantCode    string
		wantMessage string
	}{
		{"validation", models.Validation("Rating must be between 1 and 5"), http.StatusBadRequest, ErrCodeBadRequest, "Rating must be between 1 and 5"},
		{"unauthorized", models.Unauthorized("Invalid credentials"), http.StatusUnauthorized, ErrCodeUnauthorized, "Invalid credentials"},
		{"forbidden", models.Forbidden("Unauthorized"), http.StatusForbidden, ErrCodeForbidden, "Unauthorized"},
		{"not found", models.NotFound("User not found"), http.StatusNotFound, ErrCodeNotFound, "User not found"},
		{"conflict", models.Conflict("Email already exists"), http.StatusConflict, ErrCodeConflict, "Email already exists"},
		{"wrapped conflict", fmt.Errorf("create user: %w", models.Conflict("Username already exists")), http.StatusConflict, ErrCodeConflict, "Username already exists"},
		{"upstream", models.Upstream("TMDB request failed", errors.New("dial tcp")), http.StatusBadGateway, ErrCodeExternalServiceFail, "TMDB request failed"},
		{"upstream caused by not found", models.Upstream("movie detail failed", models.NotFound("Movie not found")), http.StatusBadGateway, ErrCodeExternalServiceFail, "movie detail failed"},
		{"storage disabled", storage.ErrDisabled, http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "Profile picture uploads are not configured"},
		{"deadline", fmt.Errorf("fetch: %w", context.DeadlineExceeded), http.StatusGatewayTimeout, ErrCodeExternalServiceFail, "Request timed out"},
		{"unclassified", errors.New("badger: closed"), http.StatusInternalServerError, ErrCodeDatabaseError, "A database error occurred"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodGet, "/api/test", nil)
			rec := httptest.NewRecorder()
			respondServiceError(rec, req, tt.err)

			if rec.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, rec.Code)
			}
			var resp APIResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if resp.Success || resp.Error == nil {
				t.Fatalf("expected error envelope, got %s", rec.Body.String())
			}
			if resp.Error.Code != tt.wantCode {
				t.Errorf("expected code %s, got %s", tt.wantCode, resp.Error.Code)
			}
			if resp.Error.Message != tt.wantMessage {
				t.Errorf("expected message %q, got %q", tt.wantMessage, resp.Error.Message)
			}
		})
	}
}

func TestClassify_Unknown(t *testing.T) {
	t.Parallel()

	if _, ok := classify(errors.New("plain")); ok {
		t.Error("expected plain error to be unclassified")
	}
	if s, ok := classify(models.ErrNotFound); !ok || s.status != http.StatusNotFound {
		t.Errorf("expected bare sentinel to classify as 404, got %+v", s)
	}
}
