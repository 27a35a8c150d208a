// SilverScreened - Movie Social Tracking and Recommendations
// Copyright 2026 Saphal Katuwal
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/SaphalKatuwal/SilverScreened

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the YAML files searched, first match wins.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/silverscreened/config.yaml",
	"/etc/silverscreened/config.yml",
}

// ConfigPathEnvVar overrides the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// DotEnvFile is loaded into the process environment when present.
var DotEnvFile = ".env"

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            5000,
			Host:            "0.0.0.0",
			Timeout:         30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			Environment:     "development",
		},
		Security: SecurityConfig{
			JWTSecret:       "",
			SessionTimeout:  time.Hour,
			BcryptCost:      10,
			RateLimitReqs:   100,
			RateLimitWindow: time.Minute,
			CORSOrigins:     []string{"http://localhost:3000"},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		API: APIConfig{
			DefaultPageSize: 10,
			MaxPageSize:     50,
		},
		Database: DatabaseConfig{
			Driver:         "mongo",
			MongoDatabase:  "silverscreened",
			BadgerPath:     "/data/badger",
			ConnectTimeout: 10 * time.Second,
		},
		TMDB: TMDBConfig{
			BaseURL:   "https://api.themoviedb.org/3",
			Language:  "en-US",
			Timeout:   10 * time.Second,
			RateLimit: 40,
			RateBurst: 20,
		},
		Cache: CacheConfig{
			DetailTTL:   10 * time.Minute,
			RedisPrefix: "silverscreened:",
		},
		Recommend: RecommendConfig{
			SocialLimit:    10,
			GenreSeedLimit: 10,
			TopGenres:      3,
			GenreLimit:     10,
			HighRating:     4,
			MaxConcurrency: 10,
			Timeout:        15 * time.Second,
		},
		Storage: StorageConfig{
			Region:     "us-east-1",
			PresignTTL: 15 * time.Minute,
		},
		Events: EventsConfig{
			Topic:  "silverscreened.activity",
			Buffer: 256,
		},
	}
}

// LoadWithKoanf loads configuration from defaults, .env, an optional YAML
// file and the environment, in that order, and validates the result.
func LoadWithKoanf() (*Config, error) {
	if err := loadDotEnv(DotEnvFile); err != nil {
		return nil, err
	}

	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// loadDotEnv copies path into the environment without overriding
// variables that are already set. A missing file is not an error.
func loadDotEnv(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// sliceConfigPaths arrive from the environment as comma-separated strings.
var sliceConfigPaths = []string{
	"security.cors_origins",
}

func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}
		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if err := k.Set(path, trimmed); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// envMappings maps environment variable names (lowercased) to koanf paths.
var envMappings = map[string]string{
	// Server
	"port":             "server.port",
	"http_host":        "server.host",
	"http_timeout":     "server.timeout",
	"shutdown_timeout": "server.shutdown_timeout",
	"environment":      "server.environment",

	// Security
	"jwt_secret":          "security.jwt_secret",
	"session_timeout":     "security.session_timeout",
	"bcrypt_cost":         "security.bcrypt_cost",
	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",
	"cors_origins":        "security.cors_origins",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",

	// API
	"api_default_page_size": "api.default_page_size",
	"api_max_page_size":     "api.max_page_size",

	// Database
	"db_driver":          "database.driver",
	"mongo_uri":          "database.mongo_uri",
	"mongo_database":     "database.mongo_database",
	"badger_path":        "database.badger_path",
	"badger_in_memory":   "database.badger_in_memory",
	"db_connect_timeout": "database.connect_timeout",

	// TMDB
	"tmdb_base_url":   "tmdb.base_url",
	"tmdb_api_key":    "tmdb.api_key",
	"tmdb_read_token": "tmdb.read_token",
	"tmdb_language":   "tmdb.language",
	"tmdb_timeout":    "tmdb.timeout",
	"tmdb_rate_limit": "tmdb.rate_limit",
	"tmdb_rate_burst": "tmdb.rate_burst",

	// Cache
	"cache_detail_ttl":   "cache.detail_ttl",
	"cache_redis_url":    "cache.redis_url",
	"cache_redis_prefix": "cache.redis_prefix",

	// Recommendations
	"recommend_timeout":          "recommend.timeout",
	"recommend_max_concurrency":  "recommend.max_concurrency",
	"recommend_social_limit":     "recommend.social_limit",
	"recommend_genre_seed_limit": "recommend.genre_seed_limit",
	"recommend_top_genres":       "recommend.top_genres",
	"recommend_genre_limit":      "recommend.genre_limit",
	"recommend_high_rating":      "recommend.high_rating",

	// Storage
	"storage_enabled":         "storage.enabled",
	"storage_bucket":          "storage.bucket",
	"storage_region":          "storage.region",
	"storage_endpoint":        "storage.endpoint",
	"storage_access_key":      "storage.access_key",
	"storage_secret_key":      "storage.secret_key",
	"storage_public_base_url": "storage.public_base_url",
	"storage_presign_ttl":     "storage.presign_ttl",

	// Events
	"events_nats_url": "events.nats_url",
	"events_topic":    "events.topic",
	"events_buffer":   "events.buffer",
}

// envTransformFunc maps an environment variable name to its koanf path.
// Unknown variables map to "" and are skipped.
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
