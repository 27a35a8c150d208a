// SilverScreened - Movie Social Tracking and Recommendations
// Copyright 2026 Saphal Katuwal
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/SaphalKatuwal/SilverScreened

package config

import (
	"strings"
	"testing"
	"time"
)

// validConfig returns defaults plus the settings that have no default.
func validConfig() *Config {
	cfg := defaultConfig()
	cfg.Security.JWTSecret = strings.Repeat("s", 32)
	cfg.TMDB.APIKey = "tmdb-key"
	cfg.Database.MongoURI = "mongodb://localhost:27017"
	return cfg
}

func TestValidate_Defaults(t *testing.T) {
	t.Parallel()

	if err := validConfig().Validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"port zero", func(c *Config) { c.Server.Port = 0 }, "PORT"},
		{"short jwt secret", func(c *Config) { c.Security.JWTSecret = "short" }, "JWT_SECRET"},
		{"bcrypt cost too high", func(c *Config) { c.Security.BcryptCost = 40 }, "BCRYPT_COST"},
		{"wildcard cors in production", func(c *Config) {
			c.Security.CORSOrigins = []string{"*"}
			c.Server.Environment = "production"
		}, "CORS_ORIGINS"},
		{"rate limit window too small", func(c *Config) { c.Security.RateLimitWindow = time.Millisecond }, "RATE_LIMIT_WINDOW"},
		{"max page below default", func(c *Config) { c.API.MaxPageSize = 5 }, "API_MAX_PAGE_SIZE"},
		{"unknown driver", func(c *Config) { c.Database.Driver = "sqlite" }, "DB_DRIVER"},
		{"mongo without uri", func(c *Config) { c.Database.MongoURI = "" }, "MONGO_URI"},
		{"mongo bad scheme", func(c *Config) { c.Database.MongoURI = "http://db" }, "MONGO_URI"},
		{"badger without path", func(c *Config) {
			c.Database.Driver = "badger"
			c.Database.BadgerPath = ""
		}, "BADGER_PATH"},
		{"no tmdb credentials", func(c *Config) { c.TMDB.APIKey = "" }, "TMDB_API_KEY"},
		{"bad tmdb base url", func(c *Config) { c.TMDB.BaseURL = "ftp://tmdb" }, "TMDB_BASE_URL"},
		{"negative cache ttl", func(c *Config) { c.Cache.DetailTTL = -time.Second }, "CACHE_DETAIL_TTL"},
		{"zero top genres", func(c *Config) { c.Recommend.TopGenres = 0 }, "RECOMMEND_TOP_GENRES"},
		{"high rating above five", func(c *Config) { c.Recommend.HighRating = 6 }, "RECOMMEND_HIGH_RATING"},
		{"storage without bucket", func(c *Config) { c.Storage.Enabled = true }, "STORAGE_BUCKET"},
		{"bad nats scheme", func(c *Config) { c.Events.NATSURL = "http://nats:4222" }, "EVENTS_NATS_URL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatalf("expected error containing %q, got nil", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestValidate_AcceptedVariants(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"read token only", func(c *Config) {
			c.TMDB.APIKey = ""
			c.TMDB.ReadToken = "bearer"
		}},
		{"badger in memory", func(c *Config) {
			c.Database.Driver = "badger"
			c.Database.BadgerPath = ""
			c.Database.BadgerInMemory = true
		}},
		{"cache disabled", func(c *Config) { c.Cache.DetailTTL = 0 }},
		{"rate limit disabled", func(c *Config) {
			c.Security.RateLimitDisabled = true
			c.Security.RateLimitReqs = 0
		}},
		{"nats url", func(c *Config) { c.Events.NATSURL = "nats://127.0.0.1:4222" }},
		{"storage with endpoint", func(c *Config) {
			c.Storage.Enabled = true
			c.Storage.Bucket = "avatars"
			c.Storage.Endpoint = "http://minio:9000"
		}},
		{"wildcard cors in development", func(c *Config) { c.Security.CORSOrigins = []string{"*"} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := validConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err != nil {
				t.Errorf("expected no error, got %v", err)
			}
		})
	}
}

func TestListenAddr(t *testing.T) {
	t.Parallel()

	s := ServerConfig{Host: "0.0.0.0", Port: 5000}
	if got := s.ListenAddr(); got != "0.0.0.0:5000" {
		t.Errorf("expected 0.0.0.0:5000, got %s", got)
	}
}

func TestIsProduction(t *testing.T) {
	t.Parallel()

	for env, want := range map[string]bool{"production": true, "PROD": true, "development": false, "": false} {
		c := &Config{Server: ServerConfig{Environment: env}}
		if got := c.IsProduction(); got != want {
			t.Errorf("expected %v for %q, got %v", want, env, got)
		}
	}
}
