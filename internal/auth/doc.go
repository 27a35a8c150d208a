// SilverScreened - Movie Social Tracking and Recommendations
// Copyright 2026 Saphal Katuwal
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/SaphalKatuwal/SilverScreened

/*
Package auth provides token issuance, password hashing and the
authentication middleware.

Key Components:

  - JWTManager: HS256 tokens carrying a userId claim, valid for
    security.session_timeout (default 1h)
  - PasswordHasher: bcrypt at a configurable cost (default 10)
  - Middleware: rejects requests without a valid token and stores the
    authenticated user ID in the request context

Tokens are read from "Authorization: Bearer <token>" or, when the header
is absent, from a cookie named "token".

Usage Example:

	jwtManager, err := auth.NewJWTManager(&cfg.Security)
	if err != nil {
	    return err
	}
	token, err := jwtManager.GenerateToken(user.ID)

	mw := auth.NewMiddleware(jwtManager, nil)
	r.With(mw.Authenticate).Get("/api/users/profile", handler)

	// Inside the handler
	userID, ok := auth.UserIDFromContext(r.Context())
*/
package auth
