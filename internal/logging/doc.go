// SilverScreened - Movie Social Tracking and Recommendations
// Copyright 2026 Saphal Katuwal
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/SaphalKatuwal/SilverScreened

/*
Package logging provides the zerolog-backed logger used across SilverScreened.

A single global logger is configured once at startup by Init and is then
reached through the level helpers (Info, Warn, Error, Debug, Fatal) or,
inside request handling, through Ctx which stamps request_id and
correlation_id onto every event.

Quick start:

	logging.Init(logging.Config{Level: "info", Format: "json"})
	logging.Info().Str("addr", ":5000").Msg("listening")
	logging.Ctx(r.Context()).Warn().Err(err).Msg("tmdb lookup failed")

Configuration (via internal/config):

  - LOG_LEVEL: trace, debug, info, warn, error (default: info)
  - LOG_FORMAT: json or console (default: json)
  - LOG_CALLER: include file:line (default: false)

Libraries that want a *slog.Logger (suture's event hook, watermill) get one
from NewSlogLogger, which writes through the same zerolog instance.

Authentication events (registration, login) go through SecurityLogger,
which masks e-mail addresses and tokens before they are written.
*/
package logging
