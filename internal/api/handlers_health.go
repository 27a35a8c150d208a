// SilverScreened - Movie Social Tracking and Recommendations
// Copyright 2026 Saphal Katuwal
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/SaphalKatuwal/SilverScreened

package api

import (
	"context"
	"net/http"
	"time"
)

// readyTimeout bounds each dependency check of the readiness probe.
const readyTimeout = 2 * time.Second

// HealthStatus is the body of the health endpoints.
type HealthStatus struct {
	Status            string  `json:"status"`
	DatabaseConnected bool    `json:"database_connected"`
	TMDBConnected     bool    `json:"tmdb_connected"`
	Uptime            float64 `json:"uptime"`
}

// Root answers GET / with a plain-text banner.
func (h *Handler) Root(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("SilverScreened Backend Running"))
}

// HealthLive reports that the process is serving requests.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(HealthStatus{
		Status: "alive",
		Uptime: time.Since(h.startTime).Seconds(),
	})
}

// HealthReady checks the document store and TMDB. The store is required;
// an unreachable TMDB only degrades the status.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	status := HealthStatus{
		Status:            "healthy",
		DatabaseConnected: ping(r.Context(), h.store),
		Uptime:            time.Since(h.startTime).Seconds(),
	}
	if h.movies != nil {
		status.TMDBConnected = ping(r.Context(), h.movies)
	}

	rw := NewResponseWriter(w, r)
	switch {
	case !status.DatabaseConnected:
		status.Status = "unavailable"
		rw.ErrorWithDetails(http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "Database unavailable", status)
		return
	case !status.TMDBConnected:
		status.Status = "degraded"
	}
	rw.Success(status)
}

func ping(ctx context.Context, p Pinger) bool {
	if p == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(ctx, readyTimeout)
	defer cancel()
	return p.Ping(ctx) == nil
}
