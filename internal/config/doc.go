// SilverScreened - Movie Social Tracking and Recommendations
// Copyright 2026 Saphal Katuwal
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/SaphalKatuwal/SilverScreened

/*
Package config loads and validates SilverScreened configuration.

Sources are layered with koanf, later layers overriding earlier ones:

 1. Built-in defaults (defaultConfig)
 2. A .env file in the working directory, copied into the process
    environment by godotenv (existing variables win)
 3. An optional YAML file (CONFIG_PATH, ./config.yaml,
    /etc/silverscreened/config.yaml)
 4. Environment variables

Only environment variables listed in envTransformFunc are read, so
unrelated variables never leak into the configuration.

Required settings:

  - JWT_SECRET: at least 32 characters
  - TMDB_API_KEY or TMDB_READ_TOKEN
  - MONGO_URI when DB_DRIVER=mongo (the default)

Usage:

	cfg, err := config.LoadWithKoanf()
	if err != nil {
	    logging.Fatal().Err(err).Msg("invalid configuration")
	}
*/
package config
