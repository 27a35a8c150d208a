// SilverScreened - Movie Social Tracking and Recommendations
// Copyright 2026 Saphal Katuwal
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/SaphalKatuwal/SilverScreened

package auth

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/SaphalKatuwal/SilverScreened/internal/logging"
)

type contextKey string

// ClaimsContextKey holds the validated *Claims.
const ClaimsContextKey contextKey = "claims"

// TokenCookieName is the cookie consulted when no Authorization header is sent.
const TokenCookieName = "token"

// UnauthorizedFunc writes a 401 response.
type UnauthorizedFunc func(w http.ResponseWriter, r *http.Request, message string)

// Middleware enforces authentication on wrapped handlers.
type Middleware struct {
	jwtManager   *JWTManager
	unauthorized UnauthorizedFunc
}

// NewMiddleware creates the middleware. A nil unauthorized writes a
// plain-text 401.
func NewMiddleware(jwtManager *JWTManager, unauthorized UnauthorizedFunc) *Middleware {
	if unauthorized == nil {
		unauthorized = func(w http.ResponseWriter, _ *http.Request, message string) {
			http.Error(w, message, http.StatusUnauthorized)
		}
	}
	return &Middleware{
		jwtManager:   jwtManager,
		unauthorized: unauthorized,
	}
}

// Authenticate rejects requests without a valid token and stores the
// claims in the request context.
func (m *Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, err := extractToken(r)
		if err != nil {
			m.unauthorized(w, r, "No token, authorization denied")
			return
		}

		claims, err := m.jwtManager.ValidateToken(token)
		if err != nil {
			logging.Ctx(r.Context()).Debug().Err(err).Msg("Token validation failed")
			m.unauthorized(w, r, "Token is not valid")
			return
		}

		ctx := ContextWithClaims(r.Context(), claims)
		ctx = logging.ContextWithLogger(ctx, logging.Ctx(ctx).With().Str("user_id", claims.UserID).Logger())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// extractToken reads the bearer token from the Authorization header or
// the token cookie.
func extractToken(r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		cookie, err := r.Cookie(TokenCookieName)
		if err != nil || cookie.Value == "" {
			return "", fmt.Errorf("unauthorized: missing token")
		}
		return cookie.Value, nil
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", fmt.Errorf("unauthorized: invalid authorization header")
	}

	return strings.TrimSpace(parts[1]), nil
}

// ContextWithClaims returns ctx carrying claims.
func ContextWithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, ClaimsContextKey, claims)
}

// UserIDFromContext returns the authenticated user ID.
func UserIDFromContext(ctx context.Context) (string, bool) {
	claims, ok := ctx.Value(ClaimsContextKey).(*Claims)
	if !ok || claims.UserID == "" {
		return "", false
	}
	return claims.UserID, true
}
