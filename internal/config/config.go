// SilverScreened - Movie Social Tracking and Recommendations
// Copyright 2026 Saphal Katuwal
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/SaphalKatuwal/SilverScreened

package config

import (
	"net"
	"strconv"
	"time"
)

// Config is the full application configuration.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
	API       APIConfig       `koanf:"api"`
	Database  DatabaseConfig  `koanf:"database"`
	TMDB      TMDBConfig      `koanf:"tmdb"`
	Cache     CacheConfig     `koanf:"cache"`
	Recommend RecommendConfig `koanf:"recommend"`
	Storage   StorageConfig   `koanf:"storage"`
	Events    EventsConfig    `koanf:"events"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	Environment     string        `koanf:"environment"`
}

// SecurityConfig holds authentication and request-shaping settings.
type SecurityConfig struct {
	JWTSecret         string        `koanf:"jwt_secret"`
	SessionTimeout    time.Duration `koanf:"session_timeout"`
	BcryptCost        int           `koanf:"bcrypt_cost"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// LoggingConfig mirrors logging.Config without the output writer.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// APIConfig holds pagination limits.
type APIConfig struct {
	DefaultPageSize int `koanf:"default_page_size"`
	MaxPageSize     int `koanf:"max_page_size"`
}

// DatabaseConfig selects and configures the document store.
type DatabaseConfig struct {
	// Driver is "mongo" or "badger".
	Driver         string        `koanf:"driver"`
	MongoURI       string        `koanf:"mongo_uri"`
	MongoDatabase  string        `koanf:"mongo_database"`
	BadgerPath     string        `koanf:"badger_path"`
	BadgerInMemory bool          `koanf:"badger_in_memory"`
	ConnectTimeout time.Duration `koanf:"connect_timeout"`
}

// TMDBConfig configures the movie metadata client.
type TMDBConfig struct {
	BaseURL   string        `koanf:"base_url"`
	APIKey    string        `koanf:"api_key"`
	ReadToken string        `koanf:"read_token"`
	Language  string        `koanf:"language"`
	Timeout   time.Duration `koanf:"timeout"`
	// RateLimit is requests per second; 0 disables limiting.
	RateLimit float64 `koanf:"rate_limit"`
	RateBurst int     `koanf:"rate_burst"`
}

// CacheConfig configures the movie detail read-through cache.
type CacheConfig struct {
	// DetailTTL of 0 disables caching.
	DetailTTL   time.Duration `koanf:"detail_ttl"`
	RedisURL    string        `koanf:"redis_url"`
	RedisPrefix string        `koanf:"redis_prefix"`
}

// RecommendConfig tunes the recommendation aggregator.
type RecommendConfig struct {
	SocialLimit    int           `koanf:"social_limit"`
	GenreSeedLimit int           `koanf:"genre_seed_limit"`
	TopGenres      int           `koanf:"top_genres"`
	GenreLimit     int           `koanf:"genre_limit"`
	HighRating     int           `koanf:"high_rating"`
	MaxConcurrency int           `koanf:"max_concurrency"`
	Timeout        time.Duration `koanf:"timeout"`
}

// StorageConfig configures presigned profile picture uploads.
type StorageConfig struct {
	Enabled       bool          `koanf:"enabled"`
	Bucket        string        `koanf:"bucket"`
	Region        string        `koanf:"region"`
	Endpoint      string        `koanf:"endpoint"`
	AccessKey     string        `koanf:"access_key"`
	SecretKey     string        `koanf:"secret_key"`
	PublicBaseURL string        `koanf:"public_base_url"`
	PresignTTL    time.Duration `koanf:"presign_ttl"`
}

// EventsConfig configures the activity event bus.
type EventsConfig struct {
	// NATSURL selects the NATS transport; empty means in-process gochannel.
	NATSURL string `koanf:"nats_url"`
	Topic   string `koanf:"topic"`
	Buffer  int64  `koanf:"buffer"`
}

// ListenAddr returns host:port for the HTTP server.
func (c *ServerConfig) ListenAddr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}
