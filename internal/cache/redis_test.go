// SilverScreened - Movie Social Tracking and Recommendations
// Copyright 2026 Saphal Katuwal
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/SaphalKatuwal/SilverScreened

package cache

import (
	"context"
	"testing"
)

func TestNewRedisCache_InvalidURL(t *testing.T) {
	t.Parallel()

	if _, err := NewRedisCache(context.Background(), "http://not-redis", "p:"); err == nil {
		t.Error("expected error for non-redis scheme")
	}
}

func TestNewRedisCache_Unreachable(t *testing.T) {
	t.Parallel()

	// Port 1 is reserved and refuses connections on loopback.
	_, err := NewRedisCache(context.Background(), "redis://127.0.0.1:1/0", "p:")
	if err == nil {
		t.Error("expected ping failure for unreachable server")
	}
}
