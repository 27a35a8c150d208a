// SilverScreened - Movie Social Tracking and Recommendations
// Copyright 2026 Saphal Katuwal
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/SaphalKatuwal/SilverScreened

package websocket

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gorilla/websocket"
)

// NewUpgrader returns an upgrader accepting the given origins. "*" allows
// any origin. Requests without an Origin header (non-browser clients) are
// accepted.
func NewUpgrader(allowedOrigins []string) *websocket.Upgrader {
	allowAll := false
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, o := range allowedOrigins {
		o = strings.TrimRight(strings.TrimSpace(o), "/")
		if o == "*" {
			allowAll = true
		}
		allowed[strings.ToLower(o)] = struct{}{}
	}

	return &websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" || allowAll {
				return true
			}
			_, ok := allowed[strings.ToLower(strings.TrimRight(origin, "/"))]
			return ok
		},
	}
}

// Accept upgrades the request and registers the connection for userID.
// The upgrader has already written an error response when err is non-nil.
func (h *Hub) Accept(w http.ResponseWriter, r *http.Request, userID string, upgrader *websocket.Upgrader) error {
	if userID == "" {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return fmt.Errorf("websocket: missing user")
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return fmt.Errorf("websocket upgrade: %w", err)
	}

	client := NewClient(h, conn, userID)
	select {
	case h.Register <- client:
	case <-r.Context().Done():
		_ = conn.Close()
		return r.Context().Err()
	}
	client.Start()
	return nil
}
