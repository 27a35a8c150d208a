// SilverScreened - Movie Social Tracking and Recommendations
// Copyright 2026 Saphal Katuwal
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/SaphalKatuwal/SilverScreened

package logging

import (
	"strings"

	"github.com/rs/zerolog"
)

// SecurityEvent is an authentication-related event for the audit trail.
type SecurityEvent struct {
	Event     string
	UserID    string
	Email     string
	IPAddress string
	Success   bool
	Reason    string
}

// SecurityLogger writes SecurityEvents with identifying fields masked.
type SecurityLogger struct {
	logger zerolog.Logger
}

// NewSecurityLogger returns a SecurityLogger tagged component=auth.
func NewSecurityLogger() *SecurityLogger {
	return &SecurityLogger{logger: With().Str("component", "auth").Logger()}
}

// NewSecurityLoggerWithLogger is NewSecurityLogger over a caller-supplied logger.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewSecurityLoggerWithLogger(logger zerolog.Logger) *SecurityLogger {
	return &SecurityLogger{logger: logger.With().Str("component", "auth").Logger()}
}

// LogEvent writes event.
func (l *SecurityLogger) LogEvent(event *SecurityEvent) {
	e := l.logger.Info()
	if !event.Success {
		e = l.logger.Warn()
	}
	e = e.Str("event", event.Event).Bool("success", event.Success)

	if event.UserID != "" {
		e = e.Str("user_id", event.UserID)
	}
	if event.Email != "" {
		e = e.Str("email", SanitizeEmail(event.Email))
	}
	if event.IPAddress != "" {
		e = e.Str("ip", event.IPAddress)
	}
	if event.Reason != "" {
		e = e.Str("reason", truncateString(event.Reason, 200))
	}
	e.Msg("security event")
}

// LogRegistered records a new account.
func (l *SecurityLogger) LogRegistered(userID, email, ip string) {
	l.LogEvent(&SecurityEvent{Event: "register", UserID: userID, Email: email, IPAddress: ip, Success: true})
}

// LogLoginSuccess records a successful login.
func (l *SecurityLogger) LogLoginSuccess(userID, email, ip string) {
	l.LogEvent(&SecurityEvent{Event: "login", UserID: userID, Email: email, IPAddress: ip, Success: true})
}

// LogLoginFailure records a rejected login.
func (l *SecurityLogger) LogLoginFailure(email, ip, reason string) {
	l.LogEvent(&SecurityEvent{Event: "login", Email: email, IPAddress: ip, Reason: reason})
}

// SanitizeToken keeps the first and last four characters of token.
//
//	"eyJhbGciOiJIUzI1NiJ9.e30.abc" -> "eyJh...cabc"
func SanitizeToken(token string) string {
	if token == "" {
		return ""
	}
	if len(token) <= 12 {
		return "***"
	}
	return token[:4] + "..." + token[len(token)-4:]
}

// SanitizeEmail keeps the first two characters of the local part.
//
//	"jane.doe@example.com" -> "ja***@example.com"
func SanitizeEmail(email string) string {
	if email == "" {
		return ""
	}
	at := strings.Index(email, "@")
	if at <= 0 {
		return "***"
	}
	local, domain := email[:at], email[at:]
	if len(local) <= 2 {
		return "***" + domain
	}
	return local[:2] + "***" + domain
}

func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
